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
	"github.com/labmate-project/labmate/internal/assistant"
	"github.com/labmate-project/labmate/internal/config"
	"github.com/labmate-project/labmate/internal/llm"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load("8080")

	// One local Ollama client serves both chat and embeddings.
	ollama := llm.NewOllamaClient(llm.OllamaConfig{
		BaseURL:    cfg.OllamaURL,
		ChatModel:  cfg.OllamaChatModel,
		EmbedModel: cfg.OllamaEmbedModel,
		Timeout:    cfg.LLMTimeout,
	})

	stats := llm.NewStats(cfg.StatsWindow)
	gateway := llm.Instrument(ollama, stats)

	svc := assistant.New(gateway, ollama, cfg, log)
	srv := api.NewAssistantServer(svc, stats, log, cfg)

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

		ollama.Close()
	}()

	log.Info("starting assistant", "port", cfg.Port, "ollama", cfg.OllamaURL)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
