package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/labmate-project/labmate/internal/assistant"
	"github.com/labmate-project/labmate/internal/config"
	"github.com/labmate-project/labmate/internal/llm"
)

// ExperimentServer is the HTTP API of the experiment-extraction
// service: upload a manual, get segmented experiments back, and
// structure one experiment through the hosted backend.
type ExperimentServer struct {
	router  chi.Router
	gateway llm.Gateway
	stats   *llm.Stats
	log     *slog.Logger
	cfg     config.Config
}

// NewExperimentServer creates and configures the extraction server.
func NewExperimentServer(gateway llm.Gateway, stats *llm.Stats, log *slog.Logger, cfg config.Config) *ExperimentServer {
	s := &ExperimentServer{
		gateway: gateway,
		stats:   stats,
		log:     log,
		cfg:     cfg,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))
	r.Use(corsHandler(cfg))

	r.Get("/health", handleHealth)
	r.Post("/api/upload-file", s.handleUploadFile)
	r.Post("/api/generate", s.handleGenerate)
	r.Get("/api/stats/llm", handleLLMStats(stats))

	s.router = r
	return s
}

func (s *ExperimentServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// AssistantServer is the HTTP API of the retrieval-augmented
// assistant service.
type AssistantServer struct {
	router chi.Router
	svc    *assistant.Service
	stats  *llm.Stats
	log    *slog.Logger
	cfg    config.Config
}

// NewAssistantServer creates and configures the assistant server.
func NewAssistantServer(svc *assistant.Service, stats *llm.Stats, log *slog.Logger, cfg config.Config) *AssistantServer {
	s := &AssistantServer{
		svc:   svc,
		stats: stats,
		log:   log,
		cfg:   cfg,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))
	r.Use(corsHandler(cfg))

	r.Get("/health", handleHealth)
	r.Post("/api/process", s.handleProcess)
	r.Post("/api/generate/{task}", s.handleGenerateTask)
	r.Post("/api/ask", s.handleAsk)
	r.Get("/api/stats/llm", handleLLMStats(stats))

	s.router = r
	return s
}

func (s *AssistantServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func corsHandler(cfg config.Config) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleLLMStats(stats *llm.Stats) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stats.Snapshot())
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
