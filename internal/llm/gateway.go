// Package llm abstracts the model backends: a hosted Gemini API with
// dual-client fallback, and a local Ollama server.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNoBackend marks the configuration error returned when no model
// backend could be initialized. Callers fail fast without a network
// call; the process itself stays up.
var ErrNoBackend = errors.New("no model backend configured")

// Gateway sends one prompt to the active backend and returns the raw
// response text. Calls are synchronous and are not retried here;
// retries, if wanted, belong to the caller.
type Gateway interface {
	Answer(ctx context.Context, prompt string) (string, error)
	Mode() string
}

// Embedder converts text into a numeric vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Factory constructs one backend candidate. It returns an error when
// the candidate cannot be initialized (missing key, disabled surface).
type Factory func() (Gateway, error)

// Select tries factories in order and returns the first backend that
// initializes. Selection happens once at startup; the result is
// treated as read-only afterwards. When every candidate fails, the
// returned gateway rejects every call with ErrNoBackend.
func Select(log *slog.Logger, factories ...Factory) Gateway {
	var lastErr error
	for _, f := range factories {
		gw, err := f()
		if err != nil {
			lastErr = err
			log.Warn("model backend unavailable", "error", err)
			continue
		}
		log.Info("model backend selected", "mode", gw.Mode())
		return gw
	}
	log.Error("no model backend could be initialized")
	return Unavailable(lastErr)
}

// Unavailable returns a gateway in the failed state: every Answer call
// reports the configuration error immediately.
func Unavailable(cause error) Gateway {
	return &unavailable{cause: cause}
}

type unavailable struct {
	cause error
}

func (u *unavailable) Answer(ctx context.Context, prompt string) (string, error) {
	if u.cause != nil {
		return "", fmt.Errorf("%w: %v", ErrNoBackend, u.cause)
	}
	return "", ErrNoBackend
}

func (u *unavailable) Mode() string { return "unavailable" }

// Instrument wraps a gateway so every call is recorded in stats.
func Instrument(gw Gateway, stats *Stats) Gateway {
	return &instrumented{gw: gw, stats: stats}
}

type instrumented struct {
	gw    Gateway
	stats *Stats
}

func (i *instrumented) Answer(ctx context.Context, prompt string) (string, error) {
	done := i.stats.Start()
	text, err := i.gw.Answer(ctx, prompt)
	done(err == nil)
	return text, err
}

func (i *instrumented) Mode() string { return i.gw.Mode() }
