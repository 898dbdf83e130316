package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamusis/verbmotion/internal/anchors"
	"github.com/kamusis/verbmotion/internal/config"
	"github.com/kamusis/verbmotion/internal/embeddings"
	"github.com/kamusis/verbmotion/internal/fallback"
	"github.com/kamusis/verbmotion/internal/library"
	"github.com/kamusis/verbmotion/internal/parser"
	"github.com/kamusis/verbmotion/internal/verbhash"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run pre-flight environment checks",
	Long: `Check that verbmotion's config, templates, verb hash and embedding tier
are in place. Run this command when a phrase resolves unexpectedly.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(_ *cobra.Command, _ []string) error {
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}

	printSection("verbmotion doctor")
	fmt.Fprintln(stdout)

	// ── Check 1: config ─────────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ verbmotion.yaml ]")
	cfg, loadErr := loadConfig()
	if loadErr != nil {
		failD("cannot load config: %v — run 'verbmotion init' first", loadErr)
	} else {
		printOK("", fmt.Sprintf("valid YAML — embedding timeout %s, cache %d", cfg.EmbeddingTimeout, cfg.CacheSize))
	}
	fmt.Fprintln(stdout)
	if loadErr != nil {
		return fmt.Errorf("doctor found issues")
	}

	// ── Check 2: templates ──────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ Templates ]")
	var lib *library.Library
	if _, l, warnings, err := loadLibrary(cfg); err != nil {
		failD("cannot load templates: %v", err)
	} else {
		lib = l
		var errs int
		for _, w := range warnings {
			if w.Severity == parser.SeverityError {
				errs++
			}
		}
		switch {
		case lib.Size() == 0:
			failD("no templates in %s", cfg.TemplatesDir)
		case errs > 0:
			printWarn("", fmt.Sprintf("%d template(s) loaded, %d excluded by errors — run 'verbmotion validate'", lib.Size(), errs))
		default:
			printOK("", fmt.Sprintf("%d template(s), %d anchor verb(s)", lib.Size(), len(lib.AnchorVerbs())))
		}
	}
	fmt.Fprintln(stdout)

	// ── Check 3: verb hash ──────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ Verb hash ]")
	if t, err := verbhash.LoadFile(cfg.VerbHashFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			printWarn("", "artifact missing; generated in memory on each run — run 'verbmotion hashgen'")
		} else {
			failD("%v", err)
		}
	} else {
		printOK("", fmt.Sprintf("%d form(s) in %s", t.Size(), cfg.VerbHashFile))
		if lib != nil {
			for verb, id := range lib.AnchorVerbs() {
				if got, ok := t.Lookup(verb); !ok || got != id {
					printWarn("", "artifact is stale (anchor verbs changed) — run 'verbmotion hashgen'")
					break
				}
			}
		}
	}
	fmt.Fprintln(stdout)

	// ── Check 4: embedding fallback ─────────────────────────────────────────
	fmt.Fprintln(stdout, "[ Embedding fallback ]")
	checkEmbeddings(cfg, lib)
	fmt.Fprintln(stdout)

	// ── Summary ─────────────────────────────────────────────────────────────
	fmt.Fprintln(stdout, "===================")
	if allOK {
		fmt.Fprintln(stdout, "✓  All checks passed. verbmotion is ready to use.")
	} else {
		fmt.Fprintln(stderr, "✗  One or more checks failed. See details above.")
		return fmt.Errorf("doctor found issues")
	}
	return nil
}

// checkEmbeddings reports on the optional tier. Nothing here fails doctor:
// without it the engine resolves by hash only.
func checkEmbeddings(cfg *config.Config, lib *library.Library) {
	embCfg, err := embeddings.LoadConfig()
	if err != nil {
		printWarn("", fmt.Sprintf("cannot read embeddings config: %v", err))
		return
	}
	if embCfg.Provider == "" {
		printSkip("", fmt.Sprintf("disabled (%s not set)", config.KeyEmbeddingsProvider))
		return
	}
	prov, err := embeddings.NewFromConfig(embCfg)
	if err != nil {
		printWarn("", err.Error())
		return
	}
	printOK("", fmt.Sprintf("provider %s", prov.ModelID()))

	store, err := anchors.Load(cfg.AnchorsDir)
	if err != nil {
		printMiss("", fmt.Sprintf("no anchor store at %s — run 'verbmotion anchors build'", cfg.AnchorsDir))
		return
	}
	if store.Manifest.ModelID != prov.ModelID() {
		printWarn("", fmt.Sprintf("anchors built with %s, provider is %s — run 'verbmotion anchors build'", store.Manifest.ModelID, prov.ModelID()))
		return
	}
	printOK("", fmt.Sprintf("%d anchor(s), %d dims", len(store.Entries), store.Manifest.Dim))
	if lib == nil {
		return
	}
	verbs := lib.AnchorVerbs()
	var stale int
	for _, a := range fallback.FromStore(store) {
		if verbs[a.Verb] != a.TemplateID {
			stale++
		}
	}
	if stale > 0 {
		printWarn("", fmt.Sprintf("%d stored anchor(s) no longer match the library — run 'verbmotion anchors build'", stale))
	}
}
