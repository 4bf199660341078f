// Package assistant runs the retrieval-augmented pipeline: process a
// manual into an index, then answer generation tasks grounded in
// retrieved chunks.
package assistant

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/labmate-project/labmate/internal/chunker"
	"github.com/labmate-project/labmate/internal/config"
	"github.com/labmate-project/labmate/internal/llm"
	"github.com/labmate-project/labmate/internal/parser"
	"github.com/labmate-project/labmate/internal/prompt"
	"github.com/labmate-project/labmate/internal/vectorstore"
)

// Input errors, rejected at the boundary before any backend call.
var (
	ErrEmptyDocument = errors.New("no text could be extracted from the document")
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrNoIndex is returned when a generation task runs before any
	// manual has been processed.
	ErrNoIndex = errors.New("no index has been built; process a manual first")
)

// Service wires parser, chunker, embedder, index, and gateway into the
// two assistant operations. Each request works against a fresh index
// handle; nothing is cached between calls.
type Service struct {
	gateway  llm.Gateway
	embedder llm.Embedder
	cfg      config.Config
	log      *slog.Logger
}

func New(gateway llm.Gateway, embedder llm.Embedder, cfg config.Config, log *slog.Logger) *Service {
	return &Service{
		gateway:  gateway,
		embedder: embedder,
		cfg:      cfg,
		log:      log,
	}
}

// ProcessResult reports what was indexed.
type ProcessResult struct {
	DocID  string `json:"doc_id"`
	Chunks int    `json:"chunks"`
}

// Process extracts text from an uploaded manual, splits it into
// overlapping chunks, embeds each chunk, and rebuilds the on-disk
// index wholesale.
func (s *Service) Process(ctx context.Context, data []byte, filename string) (ProcessResult, error) {
	text, err := parser.ExtractText(data, filename)
	if err != nil {
		return ProcessResult{}, fmt.Errorf("extract text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return ProcessResult{}, ErrEmptyDocument
	}

	chunks := chunker.Split(text, chunker.Config{
		ChunkSize:    s.cfg.ChunkSize,
		ChunkOverlap: s.cfg.ChunkOverlap,
	})
	if len(chunks) == 0 {
		return ProcessResult{}, ErrEmptyDocument
	}

	vectors := make([][]float64, len(chunks))
	for i, chunk := range chunks {
		vec, err := s.embedder.Embed(ctx, chunk)
		if err != nil {
			return ProcessResult{}, fmt.Errorf("embed chunk %d: %w", i, err)
		}
		vectors[i] = vec
	}

	docID := ContentHashHex(data)[:16]
	if err := vectorstore.Build(s.cfg.IndexPath, docID, chunks, vectors); err != nil {
		return ProcessResult{}, fmt.Errorf("build index: %w", err)
	}

	s.log.Info("manual processed", "doc_id", docID, "filename", filename, "chunks", len(chunks))
	return ProcessResult{DocID: docID, Chunks: len(chunks)}, nil
}

// Generate runs one retrieval-backed task (summary, procedure, viva,
// notes) against the current index.
func (s *Service) Generate(ctx context.Context, task prompt.Task) (string, error) {
	r, ok := prompt.RetrievalFor(task)
	if !ok {
		return "", fmt.Errorf("task %q does not retrieve", task)
	}

	context, err := s.retrieve(ctx, r.Query, r.TopK)
	if err != nil {
		return "", err
	}

	p, err := prompt.Build(task, prompt.Input{Context: context})
	if err != nil {
		return "", err
	}
	return s.gateway.Answer(ctx, p)
}

// Ask answers a free-form question grounded in the manual.
func (s *Service) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyQuestion
	}

	r, _ := prompt.RetrievalFor(prompt.TaskQuestion)
	context, err := s.retrieve(ctx, question, r.TopK)
	if err != nil {
		return "", err
	}

	p, err := prompt.Build(prompt.TaskQuestion, prompt.Input{
		Context:  context,
		Question: question,
	})
	if err != nil {
		return "", err
	}
	return s.gateway.Answer(ctx, p)
}

// retrieve embeds query, searches the index, and joins the matching
// chunks into one context block.
func (s *Service) retrieve(ctx context.Context, query string, topK int) (string, error) {
	store, err := vectorstore.Open(s.cfg.IndexPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoIndex, err)
	}
	defer store.Close()

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return "", fmt.Errorf("embed query: %w", err)
	}

	results, err := store.Search(vec, topK)
	if err != nil {
		return "", fmt.Errorf("search index: %w", err)
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, r.Chunk.Text)
	}
	return strings.Join(parts, "\n\n"), nil
}

// ContentHashHex computes SHA-256 of content and returns the hex string.
func ContentHashHex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
