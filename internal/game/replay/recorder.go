package replay

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Recorder keeps one journal per game while recording is enabled.
type Recorder struct {
	logger   *zap.Logger
	mu       sync.RWMutex
	journals map[int]*Journal
	enabled  map[int]bool
	saveDir  string
}

// NewRecorder creates a recorder that saves journals into saveDir.
func NewRecorder(logger *zap.Logger, saveDir string) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		logger:   logger,
		journals: make(map[int]*Journal),
		enabled:  make(map[int]bool),
		saveDir:  saveDir,
	}
}

// Start begins recording a game, discarding any earlier journal.
func (rr *Recorder) Start(gameID int) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	rr.journals[gameID] = NewJournal(gameID)
	rr.enabled[gameID] = true
	rr.logger.Info("started journal recording", zap.Int("game_id", gameID))
}

// Stop pauses recording. The journal is kept until saved or cleared.
func (rr *Recorder) Stop(gameID int) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	rr.enabled[gameID] = false
	rr.logger.Info("stopped journal recording", zap.Int("game_id", gameID))
}

// IsRecording reports whether messages of the game are recorded.
func (rr *Recorder) IsRecording(gameID int) bool {
	rr.mu.RLock()
	defer rr.mu.RUnlock()

	return rr.enabled[gameID]
}

// Record appends one encoded message if recording is enabled.
func (rr *Recorder) Record(gameID int, data []byte) {
	rr.mu.RLock()
	enabled := rr.enabled[gameID]
	journal := rr.journals[gameID]
	rr.mu.RUnlock()

	if !enabled || journal == nil {
		return
	}
	journal.Append(data)
	rr.logger.Debug("recorded message",
		zap.Int("game_id", gameID),
		zap.Int("entry_count", journal.Len()),
	)
}

// Journal returns the journal held for a game.
func (rr *Recorder) Journal(gameID int) (*Journal, bool) {
	rr.mu.RLock()
	defer rr.mu.RUnlock()

	j, ok := rr.journals[gameID]
	return j, ok
}

// Save writes the game's journal to disk and forgets it.
func (rr *Recorder) Save(gameID int) (string, error) {
	rr.mu.Lock()
	journal, ok := rr.journals[gameID]
	if !ok {
		rr.mu.Unlock()
		return "", fmt.Errorf("game %d: %w", gameID, ErrNoJournal)
	}
	delete(rr.journals, gameID)
	delete(rr.enabled, gameID)
	rr.mu.Unlock()

	path, err := journal.SaveToFile(rr.saveDir)
	if err != nil {
		return "", fmt.Errorf("failed to save journal: %w", err)
	}
	rr.logger.Info("saved journal to disk",
		zap.Int("game_id", gameID),
		zap.Int("entry_count", journal.Len()),
		zap.String("path", path),
	)
	return path, nil
}

// Load reads a saved journal of a game from the recorder's directory.
func (rr *Recorder) Load(gameID int) (*Journal, error) {
	j, err := LoadFile(filepath.Join(rr.saveDir, FileName(gameID)))
	if err != nil {
		return nil, err
	}
	rr.logger.Info("loaded journal from disk",
		zap.Int("game_id", gameID),
		zap.Int("entry_count", j.Len()),
	)
	return j, nil
}

// Clear forgets a game's journal without saving it.
func (rr *Recorder) Clear(gameID int) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	delete(rr.journals, gameID)
	delete(rr.enabled, gameID)
	rr.logger.Debug("cleared journal", zap.Int("game_id", gameID))
}

// Play feeds every message of the journal to apply in order, starting from the first one. It stops
// at the first error or when ctx is done.
func Play(ctx context.Context, j *Journal, apply func([]byte) error) error {
	j.Rewind()
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		entry, ok := j.Next()
		if !ok {
			return nil
		}
		if err := apply(entry); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
}
