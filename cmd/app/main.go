// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"honeypot-arena/internal/config"
	"honeypot-arena/internal/domain/model"
	"honeypot-arena/internal/domain/ports/adapter"
	clf "honeypot-arena/internal/infra/adapters/classifier"
	"honeypot-arena/internal/infra/api"
	"honeypot-arena/internal/infra/logging"
	"honeypot-arena/internal/infra/metrics"
	"honeypot-arena/internal/infra/sched"
	"honeypot-arena/internal/usecase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (noop classifier, console logs)")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Runtime.Dev {
		log.Printf("[DEV MODE] Enabled")
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Classifier adapter ----
	var classifier adapter.ClassifierAdapter
	if cfg.Gateway.URL != "" {
		classifier = clf.NewHTTPAdapter(
			cfg.Gateway.URL,
			cfg.Gateway.APIKey,
			cfg.Gateway.AnalyzeTimeout,
			cfg.Gateway.HealthTimeout,
			logger,
		)
		logger.Info().Str("url", cfg.Gateway.URL).Msg("classifier adapter: HTTP")
	} else {
		classifier = clf.NewNoopAdapter()
		logger.Warn().Msg("classifier adapter: noop (no gateway.url configured)")
	}

	// ---- Session engine ----
	sctx := model.SenderContext{
		Platform:     model.Platform(cfg.Session.Platform),
		SenderHeader: cfg.Session.SenderHeader,
		SenderNumber: cfg.Session.SenderNumber,
		InContacts:   cfg.Session.InContacts,
		Language:     cfg.Session.Language,
		Locale:       cfg.Session.Locale,
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	sessionUC := usecase.NewSessionUseCase(classifier, sctx, cfg.Session.HoneypotMode, rng, logger)

	// ---- Gateway health poller ----
	healthWorker := sched.NewHealthWorker(cfg.Gateway.HealthInterval, classifier, logger)
	go func() {
		if err := healthWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("health worker stopped")
		}
	}()

	// ---- HTTP server ----
	apiServer := api.NewServer(sessionUC, healthWorker.Up, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.API.Port),
		Handler: apiServer.Router(),
	}
	go func() {
		logger.Info().Int("port", cfg.API.Port).Msg("API server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server failed")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
		os.Exit(1)
	}
}
