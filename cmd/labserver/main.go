package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labmate-project/labmate/internal/api"
	"github.com/labmate-project/labmate/internal/config"
	"github.com/labmate-project/labmate/internal/llm"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load("8000")

	// Backend selection happens once at startup. With no usable
	// candidate the server still comes up; generation requests report
	// the configuration error.
	stats := llm.NewStats(cfg.StatsWindow)
	gateway := llm.Instrument(llm.SelectGemini(llm.GeminiConfig{
		APIKey:        cfg.GeminiAPIKey,
		Model:         cfg.GeminiModel,
		BaseURL:       cfg.GeminiBaseURL,
		DisableV1Beta: cfg.GeminiDisableV1Beta,
		Timeout:       cfg.LLMTimeout,
	}, log), stats)

	srv := api.NewExperimentServer(gateway, stats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting labserver", "port", cfg.Port, "backend", gateway.Mode())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
