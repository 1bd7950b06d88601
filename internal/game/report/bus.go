package report

import "sync"

// Listener receives every published report.
type Listener func(*Report)

// ChangeListener receives the changes of one kind together with their report.
type ChangeListener func(*Report, Change)

type listenerEntry struct {
	handle   int
	listener Listener
}

type kindListener struct {
	handle   int
	kind     Kind
	callback ChangeListener
}

// Bus is a synchronous publish/subscribe hub for reports with per-kind filtering. Listeners are
// called in subscription order.
type Bus struct {
	mu            sync.RWMutex
	listeners     []listenerEntry
	kindListeners map[Kind][]kindListener
	nextHandle    int
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{
		kindListeners: make(map[Kind][]kindListener),
	}
}

// Subscribe registers a listener for all reports and returns a handle.
func (bus *Bus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners = append(bus.listeners, listenerEntry{handle: handle, listener: listener})
	return handle
}

// SubscribeKind registers a listener called once per change of the given kind.
func (bus *Bus) SubscribeKind(kind Kind, callback ChangeListener) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.kindListeners[kind] = append(bus.kindListeners[kind], kindListener{
		handle:   handle,
		kind:     kind,
		callback: callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the handle, whichever way it was registered.
func (bus *Bus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, l := range bus.listeners {
		if l.handle == handle {
			bus.listeners = append(bus.listeners[:i], bus.listeners[i+1:]...)
			break
		}
	}
	for kind, listeners := range bus.kindListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].handle == handle {
				bus.kindListeners[kind] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the report to all listeners synchronously. Empty reports are delivered too;
// kind listeners only see the changes they asked for.
func (bus *Bus) Publish(r *Report) {
	if r == nil {
		return
	}
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, l := range bus.listeners {
		l.listener(r)
	}
	for _, c := range r.Changes {
		for _, listener := range bus.kindListeners[c.Kind] {
			listener.callback(r, c)
		}
	}
}

// PublishBatch publishes the reports in order.
func (bus *Bus) PublishBatch(reports []*Report) {
	for _, r := range reports {
		bus.Publish(r)
	}
}
