package anchors

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"github.com/kamusis/verbmotion/internal/embeddings"
	"github.com/kamusis/verbmotion/internal/normalize"
)

// BuildOptions controls anchor store building.
type BuildOptions struct {
	OutDir      string
	Force       bool
	Normalize   bool
	Concurrency int
	LockTimeout time.Duration
}

// Build embeds every anchor verb (verb → template id) and installs the
// result in opts.OutDir. Rows whose verb text hash matches an existing
// store built by the same model are reused unless Force is set.
func Build(ctx context.Context, prov embeddings.Provider, verbs map[string]string, opts BuildOptions) (*Store, error) {
	if opts.OutDir == "" {
		return nil, fmt.Errorf("out dir is required")
	}
	if len(verbs) == 0 {
		return nil, ErrEmpty
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.LockTimeout <= 0 {
		opts.LockTimeout = 10 * time.Second
	}

	unlock, err := lock(opts.OutDir+".lock", opts.LockTimeout)
	if err != nil {
		return nil, err
	}
	defer unlock()

	reuse := map[string][]float32{}
	if old, err := Load(opts.OutDir); err == nil && !opts.Force && old.Manifest.ModelID == prov.ModelID() {
		for i, e := range old.Entries {
			if e.TextHash == "" {
				continue
			}
			v := make([]float32, old.Manifest.Dim)
			copy(v, old.Vector(i))
			reuse[e.TextHash] = v
		}
	}

	keys := make([]string, 0, len(verbs))
	for v := range verbs {
		keys = append(keys, v)
	}
	sort.Strings(keys)

	now := time.Now().UTC().Format(time.RFC3339)
	entries := make([]Entry, len(keys))
	embs := make([][]float32, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, verb := range keys {
		h := TextHash(verb)
		entries[i] = Entry{Verb: normalize.Key(verb), TemplateID: verbs[verb], TextHash: h, UpdatedAt: now}
		if v, ok := reuse[h]; ok {
			embs[i] = v
			continue
		}
		i, verb := i, verb
		g.Go(func() error {
			emb, err := prov.Embed(gctx, normalize.Key(verb))
			if err != nil {
				return fmt.Errorf("embed %q: %w", verb, err)
			}
			if opts.Normalize {
				emb = NormalizeL2(emb)
			}
			embs[i] = emb
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dim := len(embs[0])
	vectors := make([]float32, 0, dim*len(embs))
	for i, e := range embs {
		if len(e) != dim {
			return nil, fmt.Errorf("%w: %q has %d dims, want %d", ErrVectorLengthMismatch, keys[i], len(e), dim)
		}
		vectors = append(vectors, e...)
	}

	manifest := Manifest{
		StoreVersion: 1,
		CreatedAt:    now,
		ModelID:      prov.ModelID(),
		Dim:          dim,
		Normalize:    opts.Normalize,
		VectorFile:   defaultVectorFile,
		AnchorsFile:  defaultAnchorFile,
	}

	tmp := opts.OutDir + ".tmp"
	_ = os.RemoveAll(tmp)
	if err := Write(tmp, manifest, entries, vectors); err != nil {
		_ = os.RemoveAll(tmp)
		return nil, err
	}
	if err := AtomicSwap(tmp, opts.OutDir); err != nil {
		return nil, fmt.Errorf("cannot install anchors into %s: %w", filepath.Clean(opts.OutDir), err)
	}
	return &Store{Manifest: manifest, Entries: entries, Vectors: vectors}, nil
}

func lock(path string, timeout time.Duration) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return func() {}, err
	}
	l := flock.New(path)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	locked, err := l.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return func() {}, fmt.Errorf("cannot acquire lock %s: %w", path, err)
	}
	if !locked {
		return func() {}, fmt.Errorf("another build holds %s", path)
	}
	return func() { _ = l.Unlock() }, nil
}
