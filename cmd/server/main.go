package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"whodunit/internal/catalog"
	"whodunit/internal/config"
	"whodunit/internal/handlers"
	"whodunit/internal/store"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("")
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	defer logger.Sync()
	log := logger.Sugar()

	// Fail fast if the reference decks are broken.
	cat, err := catalog.New()
	if err != nil {
		log.Fatalw("failed to load reference catalog", "error", err)
	}

	s := store.NewMemoryStore(cfg.Game.RoomTTL, cfg.Game.RoomCodeLength)
	defer s.Close()

	h := handlers.New(s, cat, cfg, log)
	r := handlers.SetupRouter(h, cfg, nil)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Infow("starting server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorw("graceful shutdown failed", "error", err)
	}
}

func newLogger(cfg *config.ServerConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zcfg zap.Config
	if cfg.Server.LogFormat == "console" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
