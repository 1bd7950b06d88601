package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/peterh/liner"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/magefree/mage-client-go/internal/config"
	"github.com/magefree/mage-client-go/internal/game/carddb"
	"github.com/magefree/mage-client-go/internal/game/protocol"
	"github.com/magefree/mage-client-go/internal/game/replay"
	"github.com/magefree/mage-client-go/internal/game/report"
	"github.com/magefree/mage-client-go/internal/game/session"
	"github.com/magefree/mage-client-go/internal/transport"
)

var (
	configPath   = flag.String("config", "config/config.yaml", "path to configuration file")
	journalPath  = flag.String("replay", "", "replay a recorded journal offline")
	snapshotPath = flag.String("snapshot", "", "load a YAML game state offline")
	interactive  = flag.Bool("interactive", false, "keep reading commands after an offline load")
	version      = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting tabletop client",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *journalPath != "" || *snapshotPath != "" {
		err = runOffline(ctx, logger, cfg)
	} else {
		err = runOnline(ctx, logger, cfg)
	}
	if err != nil && ctx.Err() == nil {
		logger.Error("client stopped", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("tabletop client stopped")
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

func loadCardDatabase(logger *zap.Logger, path string) *carddb.Database {
	if path == "" {
		return nil
	}
	db, err := carddb.LoadFile(path)
	if err != nil {
		logger.Warn("failed to load card database", zap.String("path", path), zap.Error(err))
		return nil
	}
	logger.Info("card database loaded", zap.String("path", path), zap.Int("cards", db.Len()))
	return db
}

// newSession builds the session shared by both modes. Prompts read their answers from lines.
func newSession(logger *zap.Logger, cfg *config.Config, sender session.Sender, recorder *replay.Recorder,
	out io.Writer, lines <-chan string) *session.Session {
	prompter := &linePrompter{out: out, lines: lines, interval: 100 * time.Millisecond}
	s := session.New(logger, session.Options{
		GameID:          cfg.Game.GameID,
		LocalPlayerID:   cfg.Game.PlayerID,
		Sender:          sender,
		Prompter:        prompter,
		CardDatabase:    loadCardDatabase(logger, cfg.Game.CardDatabase),
		DefaultTopCards: cfg.Game.DefaultTopCards,
		DefaultDieSides: cfg.Game.DefaultDieSides,
		Recorder:        recorder,
	})
	prompter.pump = s.PumpPending
	s.Bus().Subscribe(func(r *report.Report) {
		for _, c := range r.Changes {
			if c.Quiet || c.Kind == report.KindReorganizeZone {
				continue
			}
			palette.change.Fprintln(out, c.String())
		}
	})
	return s
}

func runOffline(ctx context.Context, logger *zap.Logger, cfg *config.Config) error {
	var lines <-chan string
	if *interactive {
		var closeInput func()
		lines, closeInput = readInput()
		defer closeInput()
	}
	s := newSession(logger, cfg, &echoSender{out: os.Stdout}, nil, os.Stdout, lines)

	if *snapshotPath != "" {
		gs, err := protocol.LoadGameStateFile(*snapshotPath)
		if err != nil {
			return err
		}
		s.HandleMessage(&gs)
	}
	if *journalPath != "" {
		j, err := replay.LoadFile(*journalPath)
		if err != nil {
			return err
		}
		err = replay.Play(ctx, j, func(data []byte) error {
			msg, err := protocol.DecodeServerMessage(data)
			if err != nil {
				return err
			}
			s.HandleMessage(msg)
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to replay journal: %w", err)
		}
		logger.Info("journal replayed", zap.Int("entries", j.Len()))
	}
	printState(os.Stdout, s)

	if !*interactive {
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Run(ctx) })
	g.Go(func() error {
		defer s.Close()
		return repl(ctx, s, lines, os.Stdout)
	})
	return g.Wait()
}

func runOnline(ctx context.Context, logger *zap.Logger, cfg *config.Config) error {
	var recorder *replay.Recorder
	if cfg.Replay.Enabled {
		recorder = replay.NewRecorder(logger, cfg.Replay.Directory)
		recorder.Start(cfg.Game.GameID)
		defer func() {
			if _, err := recorder.Save(cfg.Game.GameID); err != nil {
				logger.Warn("failed to save journal", zap.Error(err))
			}
		}()
	}

	lines, closeInput := readInput()
	defer closeInput()
	var s *session.Session
	client, err := transport.Dial(ctx, logger, transport.Config{
		URL:              cfg.Server.URL,
		HandshakeTimeout: cfg.Server.HandshakeTimeout,
		WriteWait:        cfg.Server.WriteWait,
		PongWait:         cfg.Server.PongWait,
		SendQueue:        cfg.Server.SendQueue,
	}, func(ctx context.Context, msg any) error {
		return s.Enqueue(ctx, msg)
	})
	if err != nil {
		return err
	}
	s = newSession(logger, cfg, client, recorder, os.Stdout, lines)
	s.AddPlayer(cfg.Game.PlayerID, cfg.Game.PlayerName)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Run(ctx) })
	g.Go(func() error {
		defer client.Close()
		return client.Run(ctx)
	})
	g.Go(func() error {
		defer s.Close()
		defer client.Close()
		return repl(ctx, s, lines, os.Stdout)
	})
	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// readInput feeds edited terminal lines into a channel that is closed at EOF or Ctrl-C. The
// returned func restores the terminal.
func readInput() (<-chan string, func()) {
	lines := make(chan string)
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	go func() {
		defer close(lines)
		for {
			input, err := line.Prompt("")
			if err != nil {
				return
			}
			if strings.TrimSpace(input) != "" {
				line.AppendHistory(input)
			}
			lines <- input
		}
	}()
	return lines, func() { line.Close() }
}

// echoSender prints outgoing commands instead of sending them.
type echoSender struct {
	out io.Writer
}

func (e *echoSender) Send(c protocol.CommandContainer) error {
	for _, cmd := range c.Commands {
		palette.sent.Fprintf(e.out, "-> %s %+v\n", cmd.Kind(), cmd)
	}
	return nil
}
