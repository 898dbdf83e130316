// Package fallback resolves verbs the hash table missed by cosine
// similarity against precomputed anchor embeddings. It only ever answers
// "no match" when anchors or a provider are missing.
package fallback

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kamusis/verbmotion/internal/anchors"
	"github.com/kamusis/verbmotion/internal/embeddings"
	"github.com/kamusis/verbmotion/internal/normalize"
)

// Threshold is the similarity a match must exceed.
const Threshold = 0.6

const defaultCacheSize = 256

var (
	// ErrDisposed is returned by calls made after Dispose.
	ErrDisposed = errors.New("embedding fallback disposed")
	// ErrDimensionMismatch indicates anchors of differing lengths.
	ErrDimensionMismatch = errors.New("anchor dimension mismatch")
)

// Anchor is one precomputed verb embedding and the template it stands for.
type Anchor struct {
	Verb       string
	TemplateID string
	Vector     []float32
}

// Match is the best anchor for a verb.
type Match struct {
	TemplateID string  `json:"template_id"`
	Verb       string  `json:"verb"`
	Score      float64 `json:"score"`
}

// Options configures a Fallback.
type Options struct {
	Logger    *zap.Logger
	CacheSize int
}

// Fallback is safe for concurrent use.
type Fallback struct {
	provider  embeddings.Provider
	logger    *zap.Logger
	cacheSize int

	mu       sync.Mutex
	anchors  []Anchor
	worker   *worker
	disposed bool

	ready atomic.Bool
}

// New returns a fallback backed by p. A nil provider leaves it disabled.
func New(p embeddings.Provider, opts Options) *Fallback {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	return &Fallback{provider: p, logger: opts.Logger, cacheSize: opts.CacheSize}
}

// Pair joins a verb → vector map with a verb → template id map. Verbs
// without a template are dropped. The result is sorted by verb.
func Pair(vectors map[string][]float32, templates map[string]string) []Anchor {
	out := make([]Anchor, 0, len(vectors))
	for verb, vec := range vectors {
		id, ok := templates[normalize.Key(verb)]
		if !ok {
			continue
		}
		out = append(out, Anchor{Verb: normalize.Key(verb), TemplateID: id, Vector: vec})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Verb < out[j].Verb })
	return out
}

// FromStore returns the anchors held by s.
func FromStore(s *anchors.Store) []Anchor {
	out := make([]Anchor, len(s.Entries))
	for i, e := range s.Entries {
		out[i] = Anchor{Verb: e.Verb, TemplateID: e.TemplateID, Vector: s.Vector(i)}
	}
	return out
}

// LoadAnchors replaces the anchor set. All vectors must share one
// non-zero length. An empty set disables matching.
func (f *Fallback) LoadAnchors(set []Anchor) error {
	dim := -1
	for _, a := range set {
		if len(a.Vector) == 0 {
			return fmt.Errorf("%w: %q is empty", ErrDimensionMismatch, a.Verb)
		}
		if dim >= 0 && len(a.Vector) != dim {
			return fmt.Errorf("%w: %q has %d dims, want %d", ErrDimensionMismatch, a.Verb, len(a.Vector), dim)
		}
		dim = len(a.Vector)
	}
	cp := make([]Anchor, len(set))
	copy(cp, set)

	f.mu.Lock()
	f.anchors = cp
	f.mu.Unlock()
	f.logger.Debug("anchors loaded", zap.Int("count", len(cp)), zap.Int("dim", dim))
	return nil
}

// AnchorCount reports how many anchors are loaded.
func (f *Fallback) AnchorCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.anchors)
}

// Enabled reports whether FindMatch can ever return a match.
func (f *Fallback) Enabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enabledLocked()
}

func (f *Fallback) enabledLocked() bool {
	return !f.disposed && f.provider != nil && len(f.anchors) > 0
}

// InitWorker starts the embedding worker and its warm-up request. It does
// nothing when the fallback is disabled or already started.
func (f *Fallback) InitWorker() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.workerLocked()
}

func (f *Fallback) workerLocked() *worker {
	if !f.enabledLocked() {
		return nil
	}
	if f.worker == nil {
		f.worker = newWorker(f.provider, f.cacheSize, f.logger, func() { f.ready.Store(true) })
		f.worker.start()
	}
	return f.worker
}

// IsReady reports whether the worker has finished warming up.
func (f *Fallback) IsReady() bool { return f.ready.Load() }

// FindMatch embeds verb on the worker and returns the most similar anchor
// when its score exceeds Threshold. It returns nil, nil when disabled or
// when nothing is close enough. ctx bounds the round trip.
func (f *Fallback) FindMatch(ctx context.Context, verb string) (*Match, error) {
	key := normalize.Key(verb)
	if key == "" {
		return nil, nil
	}

	f.mu.Lock()
	w := f.workerLocked()
	set := f.anchors
	f.mu.Unlock()
	if w == nil {
		return nil, nil
	}

	id := uuid.NewString()
	ch, err := w.request(ctx, id, key)
	if err != nil {
		return nil, err
	}

	var vec []float32
	select {
	case <-ctx.Done():
		w.forget(id)
		return nil, ctx.Err()
	case <-w.ctx.Done():
		return nil, ErrDisposed
	case m := <-ch:
		switch m := m.(type) {
		case embedResult:
			vec = m.Vector
		case embedError:
			return nil, fmt.Errorf("embed %q: %s", key, m.Message)
		default:
			return nil, fmt.Errorf("unexpected worker reply %T", m)
		}
	}
	return best(set, vec)
}

func best(set []Anchor, vec []float32) (*Match, error) {
	var top *Match
	for _, a := range set {
		s, err := anchors.Cosine(vec, a.Vector)
		if err != nil {
			return nil, fmt.Errorf("%w: query has %d dims, anchors %d", ErrDimensionMismatch, len(vec), len(a.Vector))
		}
		if top == nil || s > top.Score {
			top = &Match{TemplateID: a.TemplateID, Verb: a.Verb, Score: s}
		}
	}
	if top == nil || top.Score <= Threshold {
		return nil, nil
	}
	return top, nil
}

// Dispose stops the worker. The fallback stays disabled afterwards.
func (f *Fallback) Dispose() {
	f.mu.Lock()
	w := f.worker
	f.worker = nil
	f.disposed = true
	f.mu.Unlock()
	if w != nil {
		w.stop()
	}
	f.ready.Store(false)
}
