package cmd

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamusis/verbmotion/internal/config"
)

//go:embed templates/*
var starterTemplates embed.FS

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create ~/.verbmotion with a config, dotenv template and starter templates",
	Long: `Initialize verbmotion at ~/.verbmotion/.

Existing files are never overwritten. Run 'verbmotion hashgen' afterwards to
write the verb hash artifact, and 'verbmotion anchors build' once an
embeddings provider is configured in ~/.verbmotion/.env.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var flagNoTemplates bool

func init() {
	initCmd.Flags().BoolVar(&flagNoTemplates, "no-templates", false, "Do not copy the starter templates")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	// ── 1. Resolve ~/.verbmotion directory ───────────────────────────────────
	home, err := config.HomeDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(home, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", home, err)
	}
	printOK("", fmt.Sprintf("verbmotion directory ready: %s", home))

	// ── 2. Write verbmotion.yaml if missing ──────────────────────────────────
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg, err := config.DefaultConfig()
		if err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("Config written: %s", cfgPath))
	} else {
		printSkip("", fmt.Sprintf("Config already exists: %s", cfgPath))
	}

	// ── 3. Dotenv template ───────────────────────────────────────────────────
	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}
	envPath, _ := config.DotEnvPath()
	printOK("", fmt.Sprintf("Dotenv ready: %s", envPath))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// ── 4. Starter templates ─────────────────────────────────────────────────
	if err := os.MkdirAll(cfg.TemplatesDir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", cfg.TemplatesDir, err)
	}
	if flagNoTemplates {
		printSkip("", "starter templates not copied (--no-templates)")
		return nil
	}
	written, skipped, err := copyStarterTemplates(cfg.TemplatesDir)
	if err != nil {
		return err
	}
	printOK("", fmt.Sprintf("Templates: %d written, %d already present in %s", written, skipped, cfg.TemplatesDir))
	fmt.Fprintln(stdout, "\n  Next: verbmotion hashgen && verbmotion resolve \"run quickly\"")
	return nil
}

// copyStarterTemplates writes the embedded templates into dir, leaving
// existing files alone.
func copyStarterTemplates(dir string) (written, skipped int, err error) {
	entries, err := fs.ReadDir(starterTemplates, "templates")
	if err != nil {
		return 0, 0, err
	}
	for _, e := range entries {
		dst := filepath.Join(dir, e.Name())
		if _, err := os.Stat(dst); err == nil {
			skipped++
			continue
		}
		b, err := starterTemplates.ReadFile(path.Join("templates", e.Name()))
		if err != nil {
			return written, skipped, err
		}
		if err := os.WriteFile(dst, b, 0o644); err != nil {
			return written, skipped, fmt.Errorf("cannot write %s: %w", dst, err)
		}
		written++
	}
	return written, skipped, nil
}
