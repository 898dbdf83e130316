// Package anchors stores precomputed anchor-verb embeddings on disk: a JSON
// manifest, one JSONL row per anchor, and a flat little-endian float32
// vector file.
package anchors

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/kamusis/verbmotion/internal/normalize"
)

const (
	manifestFile      = "anchors_manifest.json"
	defaultVectorFile = "vectors.f32"
	defaultAnchorFile = "anchors.jsonl"
)

// Manifest describes a store and how to interpret its vector file.
type Manifest struct {
	StoreVersion int    `json:"store_version"`
	CreatedAt    string `json:"created_at"`
	ModelID      string `json:"model_id"`
	Dim          int    `json:"dim"`
	Normalize    bool   `json:"normalize"`
	VectorFile   string `json:"vector_file"`
	AnchorsFile  string `json:"anchors_file"`
}

// Entry is one row of anchors.jsonl. Row i owns vectors[i*dim:(i+1)*dim].
type Entry struct {
	Verb       string `json:"verb"`
	TemplateID string `json:"template_id"`
	TextHash   string `json:"text_hash"`
	UpdatedAt  string `json:"updated_at"`
}

// Store is a loaded anchor set.
type Store struct {
	Manifest Manifest
	Entries  []Entry
	Vectors  []float32
}

// Vector returns row i's embedding. The slice aliases the store.
func (s *Store) Vector(i int) []float32 {
	d := s.Manifest.Dim
	return s.Vectors[i*d : (i+1)*d]
}

// Embeddings returns the verb → vector view consumed by the fallback tier.
func (s *Store) Embeddings() map[string][]float32 {
	out := make(map[string][]float32, len(s.Entries))
	for i, e := range s.Entries {
		out[e.Verb] = s.Vector(i)
	}
	return out
}

// TextHash returns the hex sha256 of the text embedded for verb.
func TextHash(verb string) string {
	h := sha256.Sum256([]byte(normalize.Key(verb)))
	return hex.EncodeToString(h[:])
}
