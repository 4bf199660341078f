package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/labmate-project/labmate/internal/assistant"
	"github.com/labmate-project/labmate/internal/llm"
	"github.com/labmate-project/labmate/internal/prompt"
)

func (s *AssistantServer) handleProcess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, "file exceeds max size", http.StatusRequestEntityTooLarge)
		return
	}

	res, err := s.svc.Process(r.Context(), data, sanitizeFilename(header.Filename))
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyDocument) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (s *AssistantServer) handleGenerateTask(w http.ResponseWriter, r *http.Request) {
	task, err := prompt.ParseTask(chi.URLParam(r, "task"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	text, err := s.svc.Generate(r.Context(), task)
	if err != nil {
		s.writeGenerationError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"answer": text})
}

type askRequest struct {
	Question string `json:"question"`
}

func (s *AssistantServer) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	text, err := s.svc.Ask(r.Context(), req.Question)
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyQuestion) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.writeGenerationError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"answer": text})
}

func (s *AssistantServer) writeGenerationError(w http.ResponseWriter, err error) {
	if errors.Is(err, assistant.ErrNoIndex) {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errors.Is(err, llm.ErrNoBackend) {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	jsonError(w, err.Error(), http.StatusBadGateway)
}
