package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/magefree/mage-client-go/internal/game/protocol"
	"github.com/magefree/mage-client-go/internal/game/replay"
)

var (
	addr         = flag.String("addr", ":4747", "listen address")
	snapshotPath = flag.String("snapshot", "", "YAML game state sent to every client on connect")
	journalPath  = flag.String("journal", "", "recorded journal streamed after the snapshot")
	interval     = flag.Duration("interval", 500*time.Millisecond, "delay between journal entries")
)

// replay-server feeds a recorded game to tabletop clients so the online mode can be tried without
// a game server.
func main() {
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	f, err := loadFeed()
	if err != nil {
		logger.Fatal("failed to load feed", zap.Error(err))
	}

	mux := http.NewServeMux()
	mux.Handle("/game", newHub(logger, f))
	srv := &http.Server{Addr: *addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("replay server listening",
		zap.String("addr", *addr),
		zap.Int("entries", len(f.entries)),
		zap.Bool("snapshot", f.snapshot != nil))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func loadFeed() (feed, error) {
	f := feed{interval: *interval}
	if *snapshotPath != "" {
		gs, err := protocol.LoadGameStateFile(*snapshotPath)
		if err != nil {
			return f, err
		}
		if f.snapshot, err = protocol.EncodeGameState(gs); err != nil {
			return f, err
		}
	}
	if *journalPath != "" {
		j, err := replay.LoadFile(*journalPath)
		if err != nil {
			return f, err
		}
		f.entries = j.Entries
	}
	return f, nil
}
