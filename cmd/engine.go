package cmd

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/kamusis/verbmotion/internal/adverb"
	"github.com/kamusis/verbmotion/internal/anchors"
	"github.com/kamusis/verbmotion/internal/config"
	"github.com/kamusis/verbmotion/internal/embeddings"
	"github.com/kamusis/verbmotion/internal/fallback"
	"github.com/kamusis/verbmotion/internal/library"
	"github.com/kamusis/verbmotion/internal/motion"
	"github.com/kamusis/verbmotion/internal/parser"
	"github.com/kamusis/verbmotion/internal/tier1"
	"github.com/kamusis/verbmotion/internal/verbhash"
)

// engine is everything a resolving command needs, loaded from cfg.
type engine struct {
	cfg      *config.Config
	adverbs  *adverb.Resolver
	parser   *parser.Parser
	library  *library.Library
	warnings []library.Warning
	orch     *tier1.Orchestrator
	hash     *verbhash.Table
	hashSrc  string
	matcher  *fallback.Fallback
	store    *anchors.Store
}

// loadLibrary reads and validates the templates directory.
func loadLibrary(cfg *config.Config) (*parser.Parser, *library.Library, []library.Warning, error) {
	p := parser.New(nil, nil, nil)
	templates, err := motion.LoadDir(cfg.TemplatesDir)
	if err != nil {
		return nil, nil, nil, err
	}
	lib := library.New(p, logger)
	warnings := lib.LoadTemplates(templates)
	return p, lib, warnings, nil
}

// loadHash reads the verb hash artifact, generating one from the library's
// anchor verbs when the artifact is missing.
func loadHash(cfg *config.Config, lib *library.Library) (*verbhash.Table, string, error) {
	t, err := verbhash.LoadFile(cfg.VerbHashFile)
	if err == nil {
		return t, cfg.VerbHashFile, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, "", err
	}
	artifact, _ := verbhash.Generate(verbhash.AnchorsFromMap(lib.AnchorVerbs()), verbhash.DefaultIrregular())
	logger.Debug("verb hash artifact missing, generated in memory", zap.String("path", cfg.VerbHashFile), zap.Int("forms", len(artifact)))
	return verbhash.New(artifact), "generated", nil
}

// loadMatcher builds the embedding tier. Any missing piece leaves it
// disabled; the reason is returned for doctor-style reporting. Stored
// vectors are paired with lib's current anchor verbs, so entries for verbs
// no longer in the library are dropped.
func loadMatcher(cfg *config.Config, lib *library.Library) (*fallback.Fallback, *anchors.Store, string) {
	embCfg, err := embeddings.LoadConfig()
	if err != nil {
		return fallback.New(nil, fallback.Options{Logger: logger}), nil, err.Error()
	}
	prov, err := embeddings.NewFromConfig(embCfg)
	if err != nil {
		return fallback.New(nil, fallback.Options{Logger: logger}), nil, err.Error()
	}
	f := fallback.New(prov, fallback.Options{Logger: logger, CacheSize: cfg.CacheSize})

	store, err := anchors.Load(cfg.AnchorsDir)
	if err != nil {
		return f, nil, "no anchor store: run 'verbmotion anchors build'"
	}
	if store.Manifest.ModelID != prov.ModelID() {
		return f, nil, fmt.Sprintf("embeddings model mismatch: anchors=%s provider=%s", store.Manifest.ModelID, prov.ModelID())
	}
	if err := f.LoadAnchors(fallback.Pair(store.Embeddings(), lib.AnchorVerbs())); err != nil {
		return f, nil, err.Error()
	}
	return f, store, ""
}

// loadEngine wires the full pipeline. withEmbeddings=false leaves the
// embedding tier out entirely.
func loadEngine(withEmbeddings bool) (*engine, error) {
	cfg, err := mustConfig()
	if err != nil {
		return nil, err
	}
	return newEngine(cfg, withEmbeddings)
}

func newEngine(cfg *config.Config, withEmbeddings bool) (*engine, error) {
	p, lib, warnings, err := loadLibrary(cfg)
	if err != nil {
		return nil, err
	}
	hash, src, err := loadHash(cfg, lib)
	if err != nil {
		return nil, err
	}

	e := &engine{
		cfg:      cfg,
		adverbs:  adverb.NewResolver(adverb.DefaultTables()),
		parser:   p,
		library:  lib,
		warnings: warnings,
		hash:     hash,
		hashSrc:  src,
	}
	opts := tier1.Options{
		Hash:    hash,
		Adverbs: e.adverbs,
		Library: lib,
		Timeout: cfg.EmbeddingTimeout,
		Logger:  logger,
	}
	if withEmbeddings {
		m, store, reason := loadMatcher(cfg, lib)
		if reason != "" {
			logger.Debug("embedding fallback disabled", zap.String("reason", reason))
		}
		e.matcher, e.store = m, store
		opts.Matcher = m
	}
	e.orch = tier1.New(opts)
	if ids := unloadedTargets(hash, lib); len(ids) > 0 {
		logger.Warn("verb hash points at templates that are not loaded; run 'verbmotion hashgen'", zap.Strings("template_ids", ids))
	}
	return e, nil
}

// unloadedTargets returns the template ids t maps to that lib does not hold.
func unloadedTargets(t *verbhash.Table, lib *library.Library) []string {
	var out []string
	for _, id := range t.TemplateIDs() {
		if _, ok := lib.Template(id); !ok {
			out = append(out, id)
		}
	}
	return out
}

// reload re-reads templates into the live library, then refreshes every
// tier keyed on template ids: the hash table is regenerated or re-read from
// its artifact, and stored anchor vectors are re-paired with the new anchor
// verbs. Forms or anchors that still point at unloaded templates are logged.
func (e *engine) reload() ([]library.Warning, error) {
	templates, err := motion.LoadDir(e.cfg.TemplatesDir)
	if err != nil {
		return nil, err
	}
	warnings := e.library.Reload(templates)
	verbs := e.library.AnchorVerbs()

	if e.hashSrc == "generated" {
		artifact, _ := verbhash.Generate(verbhash.AnchorsFromMap(verbs), verbhash.DefaultIrregular())
		e.hash = verbhash.New(artifact)
		e.orch.SetHashTable(e.hash)
	} else if t, err := verbhash.LoadFile(e.hashSrc); err != nil {
		logger.Warn("verb hash reread failed, keeping previous table", zap.String("path", e.hashSrc), zap.Error(err))
	} else {
		e.hash = t
		e.orch.SetHashTable(t)
	}
	if ids := unloadedTargets(e.hash, e.library); len(ids) > 0 {
		logger.Warn("verb hash points at templates that are not loaded; run 'verbmotion hashgen'", zap.Strings("template_ids", ids))
	}

	if e.matcher != nil && e.store != nil {
		set := fallback.Pair(e.store.Embeddings(), verbs)
		if err := e.matcher.LoadAnchors(set); err != nil {
			logger.Warn("anchor re-pairing failed", zap.Error(err))
		} else if missing := len(verbs) - len(set); missing > 0 {
			logger.Warn("anchor verbs without stored vectors; run 'verbmotion anchors build'", zap.Int("count", missing))
		}
	}
	return warnings, nil
}

func (e *engine) close() { e.orch.Dispose() }
