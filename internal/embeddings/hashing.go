package embeddings

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strconv"

	"github.com/kamusis/verbmotion/internal/normalize"
)

// DefaultHashingDim is the vector size of the hashing provider.
const DefaultHashingDim = 256

type hashingProvider struct {
	dim int
}

// NewHashing returns an offline provider that hashes character trigrams of
// the folded input into dim buckets and L2-normalises the counts. Words that
// share spelling score high; it carries no semantics beyond that.
func NewHashing(dim int) Provider {
	if dim <= 0 {
		dim = DefaultHashingDim
	}
	return &hashingProvider{dim: dim}
}

func (p *hashingProvider) ModelID() string { return "hashing:" + strconv.Itoa(p.dim) }

func (p *hashingProvider) Dim() int { return p.dim }

func (p *hashingProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := normalize.Key(text)
	if s == "" {
		return nil, fmt.Errorf("cannot embed empty text")
	}
	padded := "^" + s + "$"
	vec := make([]float32, p.dim)
	for i := 0; i+3 <= len(padded); i++ {
		h := fnv.New32a()
		_, _ = h.Write([]byte(padded[i : i+3]))
		vec[h.Sum32()%uint32(p.dim)]++
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec, nil
	}
	inv := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= inv
	}
	return vec, nil
}
