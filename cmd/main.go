package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"textdigest/internal/config"
	"textdigest/internal/document"
	"textdigest/internal/pagetitle"
	"textdigest/internal/server"
	"textdigest/internal/translator"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.InfoContext(ctx, "No .env file is loaded",
			"error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load config",
			"error", err)

		return
	}
	log.InfoContext(ctx, "Config is loaded",
		"provider", cfg.Provider,
		"region", cfg.Region,
		"port", cfg.Port)

	trans := initTranslator(ctx, cfg, log)
	publisher := initPublisher(ctx, cfg, log)
	titles := pagetitle.NewFetcher(log)

	srv, err := server.New(trans, publisher, titles, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize server",
			"error", err)

		return
	}

	go func() {
		if startErr := srv.Start(cfg.Port); startErr != nil &&
			!errors.Is(startErr, http.ErrServerClosed) {
			log.ErrorContext(ctx, "Server stopped unexpectedly",
				"error", startErr,
				"port", cfg.Port)
		}
	}()
	log.InfoContext(ctx, "Server is started",
		"port", cfg.Port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	sig := <-c
	log.InfoContext(ctx, "Shutdown signal is received",
		"signal", sig.String())
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(ctx, "Failed to shut down server",
			"error", err)
	}
	log.InfoContext(ctx, "Server is stopped",
		"uptimeSeconds", time.Since(start).Seconds())
}

// initTranslator builds the configured model client. Bootstrap failure keeps
// the process alive: requests answer 500 until the configuration is fixed.
func initTranslator(
	ctx context.Context,
	cfg config.Config,
	log *slog.Logger,
) translator.Translator {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		t, err := translator.NewOpenAI(cfg.OpenAIAPIKey)
		if err != nil {
			log.ErrorContext(ctx, "Failed to create OpenAI translator",
				"error", err)

			return nil
		}

		log.InfoContext(ctx, "OpenAI translator is initialized")

		return t
	default:
		t, err := translator.NewGemini(ctx, cfg.ProjectID, cfg.Region)
		if err != nil {
			log.ErrorContext(ctx, "Failed to create Gemini translator",
				"error", err,
				"projectID", cfg.ProjectID,
				"region", cfg.Region)

			return nil
		}

		log.InfoContext(ctx, "Gemini translator is initialized",
			"projectID", cfg.ProjectID,
			"region", cfg.Region)

		return t
	}
}

func initPublisher(
	ctx context.Context,
	cfg config.Config,
	log *slog.Logger,
) server.Publisher {
	service, err := document.NewGoogleService(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create document service",
			"error", err)

		return nil
	}

	log.InfoContext(ctx, "Document service is initialized",
		"shareEmailConfigured", cfg.ShareEmail != "")

	return document.NewPublisher(service, cfg.ShareEmail, log)
}
