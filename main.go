package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/example/kanjideck/internal/config"
	"github.com/example/kanjideck/internal/database"
	"github.com/example/kanjideck/internal/deck"
	"github.com/example/kanjideck/internal/logging"
	"github.com/example/kanjideck/internal/scheduler"
	"github.com/example/kanjideck/internal/server"
	"github.com/example/kanjideck/internal/tui"
)

func main() {
	serve := flag.Bool("serve", false, "run the HTTP API instead of the terminal UI")
	flag.Parse()

	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if *serve {
		logger, err = logging.New(cfg.LogLevel)
	} else {
		// The TUI owns the terminal, so logs go to a file.
		if mkErr := os.MkdirAll(cfg.DataDir, 0755); mkErr != nil {
			log.Fatalf("Failed to create data directory: %v", mkErr)
		}
		logger, err = logging.NewFile(cfg.LogLevel, filepath.Join(cfg.DataDir, "kanjideck.log"))
	}
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseURL, cfg.DataDir)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	sessions := database.NewSessionRepository(db)

	decks := deck.NewRepository(cfg.DecksDir, logger)
	if err := decks.Load(); err != nil {
		logger.Fatal("failed to load decks", zap.Error(err))
	}

	if *serve {
		runServer(cfg, decks, sessions, logger)
		return
	}
	runTUI(cfg, decks, sessions, logger)
}

func runServer(cfg config.Config, decks *deck.Repository, sessions *database.SessionRepository, logger *zap.Logger) {
	retention := time.Duration(cfg.RetentionDays) * 24 * time.Hour
	sched := scheduler.New(sessions, retention, logger)
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.New(decks, sessions, cfg, logger).Router(),
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", zap.Error(err))
		}
	}()

	sig := <-sigChan
	logger.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}
}

func runTUI(cfg config.Config, decks *deck.Repository, sessions *database.SessionRepository, logger *zap.Logger) {
	recorder := database.NewRecorder(sessions, logger)

	p := tea.NewProgram(tui.New(decks, sessions, recorder, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Fatal("terminal ui error", zap.Error(err))
	}

	// Let the last fire-and-forget session write land before exiting.
	recorder.Wait()
}
