// Package chunker splits extracted text into fixed-size overlapping
// chunks for embedding and retrieval.
package chunker

import (
	"strings"
	"unicode/utf8"
)

// Config controls chunking behavior. Sizes are in characters; chunk
// identity is positional, so the same text and config always produce
// the same chunks in the same order.
type Config struct {
	ChunkSize    int // Target chunk size in characters.
	ChunkOverlap int // Characters carried over between consecutive chunks.
}

// DefaultConfig returns the defaults used for lab-manual indexing.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    10000,
		ChunkOverlap: 1000,
	}
}

// Split breaks text into overlapping chunks of approximately
// cfg.ChunkSize characters, preferring paragraph, then line, then word
// boundaries before cutting mid-word. Chunk order follows text order.
func Split(text string, cfg Config) []string {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 10000
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = cfg.ChunkSize / 10
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len(text) <= cfg.ChunkSize {
		return []string{text}
	}

	pieces := splitBySeparators(text, cfg.ChunkSize, []string{"\n\n", "\n", " "})
	return mergePieces(pieces, cfg)
}

// splitBySeparators recursively splits text at progressively finer
// separators until every piece fits within size. Separators stay
// attached to the preceding piece so no content is lost.
func splitBySeparators(text string, size int, seps []string) []string {
	if len(text) <= size {
		return []string{text}
	}
	if len(seps) == 0 {
		return hardCut(text, size)
	}

	var out []string
	for _, part := range strings.SplitAfter(text, seps[0]) {
		if part == "" {
			continue
		}
		if len(part) <= size {
			out = append(out, part)
			continue
		}
		out = append(out, splitBySeparators(part, size, seps[1:])...)
	}
	return out
}

// hardCut slices text into size-length chunks, backing off to a rune
// boundary so multi-byte characters are never split.
func hardCut(text string, size int) []string {
	var out []string
	for len(text) > size {
		cut := size
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		if cut == 0 {
			cut = size
		}
		out = append(out, text[:cut])
		text = text[cut:]
	}
	if text != "" {
		out = append(out, text)
	}
	return out
}

// mergePieces packs pieces back into chunks up to ChunkSize, seeding
// each new chunk with the tail of the previous one for overlap.
func mergePieces(pieces []string, cfg Config) []string {
	var chunks []string
	var current strings.Builder
	seeded := 0 // length of the overlap seed in current

	for _, p := range pieces {
		if current.Len() > seeded && current.Len()+len(p) > cfg.ChunkSize {
			chunk := current.String()
			chunks = append(chunks, chunk)
			current.Reset()
			tail := overlapTail(chunk, cfg.ChunkOverlap)
			current.WriteString(tail)
			seeded = len(tail)
		}
		current.WriteString(p)
	}
	if current.Len() > seeded {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// overlapTail returns roughly the last n characters of chunk, advanced
// to the next word boundary so overlaps start on a whole word.
func overlapTail(chunk string, n int) string {
	if n <= 0 || len(chunk) <= n {
		return ""
	}
	tail := chunk[len(chunk)-n:]
	if i := strings.IndexAny(tail, " \n"); i >= 0 && i+1 < len(tail) {
		tail = tail[i+1:]
	}
	return tail
}
