package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labmate-project/labmate/internal/answer"
	"github.com/labmate-project/labmate/internal/llm"
	"github.com/labmate-project/labmate/internal/parser"
	"github.com/labmate-project/labmate/internal/prompt"
	"github.com/labmate-project/labmate/internal/segment"
)

// ExperimentInfo is one segmented experiment in the upload response.
// The preview is the first 300 characters of the body with newlines
// flattened to spaces.
type ExperimentInfo struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Preview string `json:"preview"`
	Text    string `json:"text"`
}

func (s *ExperimentServer) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	// Limit total request size, with headroom for form overhead.
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

	filename := sanitizeFilename(header.Filename)
	text, err := parser.ExtractText(data, filename)
	if err != nil {
		jsonError(w, "could not extract text: "+err.Error(), http.StatusBadRequest)
		return
	}

	records := segment.Experiments(text)
	if len(records) == 0 {
		jsonError(w, "no experiments found", http.StatusBadRequest)
		return
	}

	experiments := make([]ExperimentInfo, len(records))
	for i, rec := range records {
		experiments[i] = ExperimentInfo{
			ID:      i,
			Title:   rec.Title,
			Preview: preview(rec.Body, 300),
			Text:    rec.Body,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"experiments": experiments})
}

type generateRequest struct {
	ExperimentText string `json:"experiment_text"`
}

func (s *ExperimentServer) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.ExperimentText) == "" {
		jsonError(w, "experiment text is empty", http.StatusBadRequest)
		return
	}

	p, err := prompt.Build(prompt.TaskStructure, prompt.Input{Experiment: req.ExperimentText})
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	raw, err := s.gateway.Answer(r.Context(), p)
	if err != nil {
		if errors.Is(err, llm.ErrNoBackend) {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(answer.Normalize(raw))
}

// preview returns the first n characters of body with newlines
// replaced by spaces.
func preview(body string, n int) string {
	flat := strings.NewReplacer("\r", " ", "\n", " ").Replace(body)
	runes := []rune(flat)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}
