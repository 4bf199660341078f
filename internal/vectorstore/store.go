// Package vectorstore persists chunk embeddings in a bbolt file and
// serves cosine-similarity search over them. The index is rebuilt
// wholesale on every (re)processing; readers open it fresh per request.
package vectorstore

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

var (
	bucketChunks  = []byte("chunks")
	bucketVectors = []byte("vectors")
	bucketMeta    = []byte("meta")

	keyDimension = []byte("dimension")
	keyDocHash   = []byte("doc_hash")
)

// Chunk is one indexed text segment.
type Chunk struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Result is a matching chunk with its cosine similarity score.
type Result struct {
	Chunk Chunk
	Score float64
}

// Build writes a brand-new index at path, replacing whatever was there.
// chunks and vectors are positionally paired; vectors are L2-normalized
// on write so search reduces to a dot product.
func Build(path, docHash string, chunks []string, vectors [][]float64) error {
	if len(chunks) == 0 {
		return fmt.Errorf("no chunks to index")
	}
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks and vectors length mismatch: %d vs %d", len(chunks), len(vectors))
	}
	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("vector %d: dimension %d, expected %d", i, len(v), dim)
		}
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return fmt.Errorf("open index: %w", err)
	}
	defer db.Close()

	return db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketChunks, bucketVectors, bucketMeta} {
			if tx.Bucket(name) != nil {
				if err := tx.DeleteBucket(name); err != nil {
					return err
				}
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}

		meta := tx.Bucket(bucketMeta)
		if err := meta.Put(keyDimension, []byte(fmt.Sprintf("%d", dim))); err != nil {
			return err
		}
		if err := meta.Put(keyDocHash, []byte(docHash)); err != nil {
			return err
		}

		cb := tx.Bucket(bucketChunks)
		vb := tx.Bucket(bucketVectors)
		for i, text := range chunks {
			key := []byte(fmt.Sprintf("%08d", i))

			data, err := json.Marshal(Chunk{
				ID:    uuid.NewString(),
				Index: i,
				Text:  text,
			})
			if err != nil {
				return err
			}
			if err := cb.Put(key, data); err != nil {
				return err
			}

			vec, err := json.Marshal(normalize(vectors[i]))
			if err != nil {
				return err
			}
			if err := vb.Put(key, vec); err != nil {
				return err
			}
		}
		return nil
	})
}

// Store is an open read handle on a built index.
type Store struct {
	db *bbolt.DB
}

// Open opens an existing index for searching. A missing or never-built
// index is an error; callers report it as "process a manual first".
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 5 * time.Second, ReadOnly: false})
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	missing := false
	db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketChunks) == nil || tx.Bucket(bucketVectors) == nil {
			missing = true
		}
		return nil
	})
	if missing {
		db.Close()
		return nil, fmt.Errorf("index at %s has not been built", path)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// DocHash returns the content hash of the document the index was built
// from.
func (s *Store) DocHash() string {
	var hash string
	s.db.View(func(tx *bbolt.Tx) error {
		if meta := tx.Bucket(bucketMeta); meta != nil {
			hash = string(meta.Get(keyDocHash))
		}
		return nil
	})
	return hash
}

// Search returns the topK chunks most similar to the query vector, in
// descending score order. The query is normalized here so callers can
// pass raw embeddings.
func (s *Store) Search(query []float64, topK int) ([]Result, error) {
	if topK <= 0 {
		topK = 5
	}
	q := normalize(query)

	var results []Result
	err := s.db.View(func(tx *bbolt.Tx) error {
		cb := tx.Bucket(bucketChunks)
		vb := tx.Bucket(bucketVectors)

		return vb.ForEach(func(key, raw []byte) error {
			var vec []float64
			if err := json.Unmarshal(raw, &vec); err != nil {
				return fmt.Errorf("decode vector %s: %w", key, err)
			}
			var chunk Chunk
			if err := json.Unmarshal(cb.Get(key), &chunk); err != nil {
				return fmt.Errorf("decode chunk %s: %w", key, err)
			}
			results = append(results, Result{Chunk: chunk, Score: dot(vec, q)})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func normalize(v []float64) []float64 {
	var norm float64
	for _, x := range v {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return v
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}
