package tier1

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/kamusis/verbmotion/internal/fallback"
	"github.com/kamusis/verbmotion/internal/library"
	"github.com/kamusis/verbmotion/internal/motion"
	"github.com/kamusis/verbmotion/internal/verbhash"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func quadrupedTemplate() motion.Template {
	return motion.Template{
		ID:          "locomotion_quadruped",
		AnchorVerbs: []string{"run", "gallop", "trot"},
		WholeBody:   motion.Primitive{Primitive: "bounce"},
		PartRules: []motion.PartRule{
			{Pattern: "*leg*", Primitive: "gait_cycle", Params: motion.Params{"phase": "{{ index * 0.5 }}"}},
		},
		Defaults: motion.Defaults{
			Speed: 1,
			AdverbMap: map[string]motion.AdverbOverride{
				"quickly": {Speed: motion.Float(2.0)},
			},
		},
	}
}

func newOrchestrator(t *testing.T, m Matcher) *Orchestrator {
	t.Helper()
	lib := library.New(nil, nil)
	require.Empty(t, lib.LoadTemplates([]motion.Template{quadrupedTemplate()}))
	artifact, _ := verbhash.Generate([]verbhash.Anchor{
		{Verb: "run", TemplateID: "locomotion_quadruped"},
		{Verb: "gallop", TemplateID: "locomotion_quadruped"},
		{Verb: "trot", TemplateID: "locomotion_quadruped"},
	}, verbhash.DefaultIrregular())
	o := New(Options{Hash: verbhash.New(artifact), Library: lib, Matcher: m, Timeout: 50 * time.Millisecond})
	t.Cleanup(o.Dispose)
	return o
}

type stubMatcher struct {
	match *fallback.Match
	err   error
	wait  bool
	calls int
}

func (s *stubMatcher) FindMatch(ctx context.Context, _ string) (*fallback.Match, error) {
	s.calls++
	if s.wait {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.match, s.err
}
func (s *stubMatcher) InitWorker()   {}
func (s *stubMatcher) IsReady() bool { return true }
func (s *stubMatcher) Dispose()      {}

func TestResolveHash(t *testing.T) {
	o := newOrchestrator(t, nil)

	res := o.Resolve(context.Background(), "run quickly")
	require.NotNil(t, res)
	assert.Equal(t, "locomotion_quadruped", res.TemplateID)
	assert.Equal(t, SourceHash, res.Source)
	require.NotNil(t, res.Overrides.Speed)
	assert.Equal(t, 2.0, *res.Overrides.Speed)
	assert.Nil(t, res.Overrides.AmplitudeScale)
	require.NotNil(t, res.Template)
	assert.Equal(t, "quickly", res.Parsed.Adverb)
	assert.Nil(t, res.EmbeddingMatch)
}

func TestResolveConjugatedForm(t *testing.T) {
	o := newOrchestrator(t, nil)
	res := o.Resolve(context.Background(), "the horse is galloping")
	require.NotNil(t, res)
	assert.Equal(t, "galloping", res.Parsed.Verb)
	assert.Equal(t, SourceHash, res.Source)
}

func TestResolveUnknownIsNil(t *testing.T) {
	o := newOrchestrator(t, &stubMatcher{})
	assert.Nil(t, o.Resolve(context.Background(), "xyzzy"))
	assert.Nil(t, o.Resolve(context.Background(), ""))
}

func TestResolveSyncFast(t *testing.T) {
	m := &stubMatcher{match: &fallback.Match{TemplateID: "locomotion_quadruped", Score: 0.9}}
	o := newOrchestrator(t, m)

	res := o.ResolveSync("run")
	require.NotNil(t, res)
	assert.Equal(t, SourceHash, res.Source)
	assert.Less(t, res.LatencyMs, 100.0)

	assert.Nil(t, o.ResolveSync("sprint"))
	assert.Zero(t, m.calls)
}

func TestResolveEmbedding(t *testing.T) {
	m := &stubMatcher{match: &fallback.Match{TemplateID: "locomotion_quadruped", Verb: "run", Score: 0.8}}
	o := newOrchestrator(t, m)

	res := o.Resolve(context.Background(), "sprint slowly")
	require.NotNil(t, res)
	assert.Equal(t, SourceEmbedding, res.Source)
	assert.Equal(t, m.match, res.EmbeddingMatch)
	require.NotNil(t, res.Overrides.Speed)
	assert.Equal(t, 0.5, *res.Overrides.Speed)
}

func TestResolveFallbackFailuresAreNoMatch(t *testing.T) {
	assert.Nil(t, newOrchestrator(t, &stubMatcher{err: errors.New("boom")}).Resolve(context.Background(), "sprint"))
	assert.Nil(t, newOrchestrator(t, &stubMatcher{wait: true}).Resolve(context.Background(), "sprint"))
}

func TestResolveHashHitWithoutTemplate(t *testing.T) {
	o := New(Options{Hash: verbhash.New(map[string]string{"spin": "missing"})})
	res := o.Resolve(context.Background(), "spin quickly")
	require.NotNil(t, res)
	assert.Equal(t, "missing", res.TemplateID)
	assert.Nil(t, res.Template)
	require.NotNil(t, res.Overrides.Speed)
	assert.Equal(t, 1.8, *res.Overrides.Speed)
}

func TestRealFallbackWithoutAnchors(t *testing.T) {
	f := fallback.New(nil, fallback.Options{})
	o := newOrchestrator(t, f)
	o.InitEmbeddingWorker()
	assert.False(t, o.IsEmbeddingReady())
	assert.Nil(t, o.Resolve(context.Background(), "sprint"))
}

func TestSetHashTable(t *testing.T) {
	o := newOrchestrator(t, nil)
	assert.Greater(t, o.HashTableSize(), 3)

	o.SetHashTable(verbhash.New(map[string]string{"hop": "locomotion_quadruped"}))
	assert.Equal(t, 1, o.HashTableSize())
	assert.Nil(t, o.ResolveSync("run"))
	require.NotNil(t, o.ResolveSync("hop"))
}
