package vectorstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOpenSearchRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")

	chunks := []string{"acid base titration", "pendulum oscillation", "ohm's law circuit"}
	vectors := [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	require.NoError(t, Build(path, "hash-1", chunks, vectors))

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, "hash-1", store.DocHash())

	// A query near the second vector must rank its chunk first.
	results, err := store.Search([]float64{0.1, 0.9, 0.1}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "pendulum oscillation", results[0].Chunk.Text)
	assert.Equal(t, 1, results[0].Chunk.Index)
	assert.Greater(t, results[0].Score, results[1].Score)
	assert.NotEmpty(t, results[0].Chunk.ID)
}

func TestBuildOverwritesWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")

	require.NoError(t, Build(path, "old", []string{"a", "b", "c"}, [][]float64{{1, 0}, {0, 1}, {1, 1}}))
	require.NoError(t, Build(path, "new", []string{"only"}, [][]float64{{1, 0}}))

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, "new", store.DocHash())

	results, err := store.Search([]float64{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1, "rebuild must replace, not append")
	assert.Equal(t, "only", results[0].Chunk.Text)
}

func TestBuildValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")

	assert.Error(t, Build(path, "h", nil, nil), "empty chunks")
	assert.Error(t, Build(path, "h", []string{"a"}, nil), "length mismatch")
	assert.Error(t, Build(path, "h", []string{"a", "b"}, [][]float64{{1, 0}, {1}}), "ragged dimensions")
}

func TestOpenMissingIndex(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing-dir", "index.db"))
	assert.Error(t, err)
}

func TestSearchDefaultsTopK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")

	chunks := make([]string, 8)
	vectors := make([][]float64, 8)
	for i := range chunks {
		chunks[i] = "chunk"
		vectors[i] = []float64{float64(i + 1), 1}
	}
	require.NoError(t, Build(path, "h", chunks, vectors))

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	results, err := store.Search([]float64{1, 1}, 0)
	require.NoError(t, err)
	assert.Len(t, results, 5)
}
