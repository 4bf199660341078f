package chunker

import (
	"strings"
	"testing"
)

func TestSplit_SmallTextSingleChunk(t *testing.T) {
	text := "A single short paragraph about titration."
	chunks := Split(text, DefaultConfig())

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("expected text unchanged, got %q", chunks[0])
	}
}

func TestSplit_EmptyText(t *testing.T) {
	if got := Split("", DefaultConfig()); len(got) != 0 {
		t.Errorf("expected no chunks for empty text, got %d", len(got))
	}
	if got := Split("   \n\t", DefaultConfig()); len(got) != 0 {
		t.Errorf("expected no chunks for whitespace text, got %d", len(got))
	}
}

func TestSplit_LargeTextProducesMultipleChunks(t *testing.T) {
	para := strings.Repeat("The solution changes color at the endpoint. ", 10)
	text := strings.Repeat(para+"\n\n", 50)

	cfg := Config{ChunkSize: 2000, ChunkOverlap: 200}
	chunks := Split(text, cfg)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		// Boundary respecting splits may overflow slightly; a chunk more
		// than double the target means merging is broken.
		if len(c) > cfg.ChunkSize*2 {
			t.Errorf("chunk %d: length %d exceeds 2x target %d", i, len(c), cfg.ChunkSize)
		}
	}
}

func TestSplit_OrderPreserved(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		sb.WriteString(strings.Repeat("x", 40))
		sb.WriteString(" marker")
		sb.WriteString(strings.Repeat("y", 40))
		sb.WriteString("\n")
	}
	chunks := Split(sb.String(), Config{ChunkSize: 1000, ChunkOverlap: 100})

	// Every chunk's first occurrence in the source must be non-decreasing.
	last := -1
	src := sb.String()
	for i, c := range chunks {
		if len(c) < 40 {
			continue
		}
		pos := strings.Index(src, c[:40])
		if pos < last {
			t.Fatalf("chunk %d appears before chunk %d in source order", i, i-1)
		}
		last = pos
	}
}

func TestSplit_ConsecutiveChunksOverlap(t *testing.T) {
	words := make([]string, 800)
	for i := range words {
		words[i] = "w" + strings.Repeat("o", i%7) + "rd"
	}
	text := strings.Join(words, " ")

	cfg := Config{ChunkSize: 1000, ChunkOverlap: 200}
	chunks := Split(text, cfg)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		// The head of each chunk should repeat material from the tail of
		// the previous one.
		head := chunks[i]
		if len(head) > cfg.ChunkOverlap {
			head = head[:cfg.ChunkOverlap]
		}
		probe := head
		if j := strings.Index(probe, " "); j > 0 {
			probe = probe[:j]
		}
		if !strings.Contains(chunks[i-1], probe) {
			t.Errorf("chunk %d does not overlap chunk %d (probe %q)", i, i-1, probe)
		}
	}
}

func TestSplit_HardCutForUnbrokenText(t *testing.T) {
	text := strings.Repeat("a", 5000)
	cfg := Config{ChunkSize: 1000, ChunkOverlap: 100}
	chunks := Split(text, cfg)

	if len(chunks) < 5 {
		t.Fatalf("expected at least 5 chunks for 5000 unbroken chars, got %d", len(chunks))
	}
	var total int
	for _, c := range chunks {
		total += len(c)
	}
	if total < len(text) {
		t.Errorf("chunks lost content: %d chars total for %d input", total, len(text))
	}
}

func TestSplit_ZeroConfigFallsBackToDefaults(t *testing.T) {
	chunks := Split("hello world", Config{})
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk with zero config, got %d", len(chunks))
	}
}
