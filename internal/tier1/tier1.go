// Package tier1 is the verb → template resolution pipeline: sentence
// extraction, exact hash lookup, then the embedding fallback on a miss.
package tier1

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kamusis/verbmotion/internal/adverb"
	"github.com/kamusis/verbmotion/internal/fallback"
	"github.com/kamusis/verbmotion/internal/library"
	"github.com/kamusis/verbmotion/internal/motion"
	"github.com/kamusis/verbmotion/internal/sentence"
	"github.com/kamusis/verbmotion/internal/verbhash"
)

// DefaultEmbeddingTimeout bounds one fallback round trip.
const DefaultEmbeddingTimeout = 10 * time.Second

// Source says which tier produced a result.
type Source string

const (
	SourceHash      Source = "hash"
	SourceEmbedding Source = "embedding"
)

// Matcher is the embedding tier.
type Matcher interface {
	FindMatch(ctx context.Context, verb string) (*fallback.Match, error)
	InitWorker()
	IsReady() bool
	Dispose()
}

// Result is one resolution.
type Result struct {
	TemplateID     string           `json:"template_id"`
	Template       *motion.Template `json:"template"`
	Overrides      motion.Overrides `json:"overrides"`
	Parsed         sentence.Parsed  `json:"parsed"`
	Source         Source           `json:"source"`
	LatencyMs      float64          `json:"latency_ms"`
	EmbeddingMatch *fallback.Match  `json:"embedding_match,omitempty"`
}

// Options wires an Orchestrator. Hash and Library are required; Parser
// defaults to a rule parser over Hash and Adverbs; a nil Matcher disables
// the embedding tier.
type Options struct {
	Parser  sentence.Parser
	Hash    *verbhash.Table
	Matcher Matcher
	Adverbs *adverb.Resolver
	Library *library.Library
	Timeout time.Duration
	Logger  *zap.Logger
}

// Orchestrator is safe for concurrent use.
type Orchestrator struct {
	parser  sentence.Parser
	hash    atomic.Pointer[verbhash.Table]
	matcher Matcher
	adverbs *adverb.Resolver
	library *library.Library
	timeout time.Duration
	logger  *zap.Logger
}

// New builds an orchestrator from opts.
func New(opts Options) *Orchestrator {
	if opts.Adverbs == nil {
		opts.Adverbs = adverb.NewResolver(adverb.DefaultTables())
	}
	if opts.Library == nil {
		opts.Library = library.New(nil, opts.Logger)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultEmbeddingTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	o := &Orchestrator{
		matcher: opts.Matcher,
		adverbs: opts.Adverbs,
		library: opts.Library,
		timeout: opts.Timeout,
		logger:  opts.Logger,
	}
	o.hash.Store(opts.Hash)
	o.parser = opts.Parser
	if o.parser == nil {
		o.parser = sentence.NewRuleParser(hashVerbs{o}, opts.Adverbs)
	}
	return o
}

// hashVerbs reads the current table at call time so SetHashTable also
// updates the default parser's vocabulary.
type hashVerbs struct{ o *Orchestrator }

func (h hashVerbs) Has(text string) bool { return h.o.hash.Load().Has(text) }

// SetHashTable swaps the verb table.
func (o *Orchestrator) SetHashTable(t *verbhash.Table) { o.hash.Store(t) }

// Resolve runs every tier. It returns nil when no verb is found or no tier
// knows it. Fallback failures, including timeouts and ctx cancellation,
// count as no match.
func (o *Orchestrator) Resolve(ctx context.Context, text string) *Result {
	return o.resolve(ctx, text, true)
}

// ResolveSync is Resolve without the embedding tier. It never blocks.
func (o *Orchestrator) ResolveSync(text string) *Result {
	return o.resolve(context.Background(), text, false)
}

func (o *Orchestrator) resolve(ctx context.Context, text string, embed bool) *Result {
	start := time.Now()
	parsed := o.parser.Parse(text)
	if parsed.Verb == "" {
		return nil
	}

	res := &Result{Parsed: parsed}
	if id, ok := o.hash.Load().Lookup(parsed.Verb); ok {
		res.TemplateID = id
		res.Source = SourceHash
	} else if embed {
		m := o.findMatch(ctx, parsed.Verb)
		if m == nil {
			return nil
		}
		res.TemplateID = m.TemplateID
		res.Source = SourceEmbedding
		res.EmbeddingMatch = m
	} else {
		return nil
	}

	if t, ok := o.library.Template(res.TemplateID); ok {
		res.Template = t
	} else {
		o.logger.Debug("resolved template is not loaded", zap.String("template_id", res.TemplateID))
	}
	res.Overrides = o.adverbs.Resolve(parsed.Adverb, res.Template)
	res.LatencyMs = float64(time.Since(start).Microseconds()) / 1000

	o.logger.Debug("resolved",
		zap.String("verb", parsed.Verb),
		zap.String("template_id", res.TemplateID),
		zap.String("source", string(res.Source)),
		zap.Float64("latency_ms", res.LatencyMs),
	)
	return res
}

func (o *Orchestrator) findMatch(ctx context.Context, verb string) *fallback.Match {
	if o.matcher == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	m, err := o.matcher.FindMatch(ctx, verb)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			o.logger.Debug("embedding fallback timed out", zap.String("verb", verb), zap.Duration("timeout", o.timeout))
		} else {
			o.logger.Debug("embedding fallback failed", zap.String("verb", verb), zap.Error(err))
		}
		return nil
	}
	return m
}

// InitEmbeddingWorker warms up the embedding tier, if any.
func (o *Orchestrator) InitEmbeddingWorker() {
	if o.matcher != nil {
		o.matcher.InitWorker()
	}
}

// IsEmbeddingReady reports whether the embedding tier has warmed up.
func (o *Orchestrator) IsEmbeddingReady() bool {
	return o.matcher != nil && o.matcher.IsReady()
}

// HashTableSize is the number of verb forms in the hash tier.
func (o *Orchestrator) HashTableSize() int { return o.hash.Load().Size() }

// Library returns the template library results are drawn from.
func (o *Orchestrator) Library() *library.Library { return o.library }

// Dispose releases the embedding worker.
func (o *Orchestrator) Dispose() {
	if o.matcher != nil {
		o.matcher.Dispose()
	}
}
