package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamusis/verbmotion/internal/anchors"
	"github.com/kamusis/verbmotion/internal/embeddings"
)

var (
	flagAnchorsForce       bool
	flagAnchorsConcurrency int
	flagAnchorsTimeout     time.Duration
)

var anchorsCmd = &cobra.Command{
	Use:   "anchors",
	Short: "Manage the anchor embeddings used by the fallback tier",
}

var anchorsBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Embed every anchor verb with the configured provider",
	Long: `Build embeds the library's anchor verbs and installs the store at
anchors_dir. Verbs whose text is unchanged since the last build with the
same model are reused unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runAnchorsBuild,
}

var anchorsInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe the installed anchor store",
	Args:  cobra.NoArgs,
	RunE:  runAnchorsInfo,
}

func init() {
	anchorsBuildCmd.Flags().BoolVar(&flagAnchorsForce, "force", false, "Re-embed every verb")
	anchorsBuildCmd.Flags().IntVar(&flagAnchorsConcurrency, "concurrency", 4, "Parallel embedding requests")
	anchorsBuildCmd.Flags().DurationVar(&flagAnchorsTimeout, "timeout", 5*time.Minute, "Overall build timeout")
	anchorsCmd.AddCommand(anchorsBuildCmd, anchorsInfoCmd)
	rootCmd.AddCommand(anchorsCmd)
}

func runAnchorsBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := mustConfig()
	if err != nil {
		return err
	}
	_, lib, _, err := loadLibrary(cfg)
	if err != nil {
		return err
	}
	embCfg, err := embeddings.LoadConfig()
	if err != nil {
		return err
	}
	prov, err := embeddings.NewFromConfig(embCfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, flagAnchorsTimeout)
	defer cancel()

	start := time.Now()
	store, err := anchors.Build(ctx, prov, lib.AnchorVerbs(), anchors.BuildOptions{
		OutDir:      cfg.AnchorsDir,
		Force:       flagAnchorsForce,
		Normalize:   true,
		Concurrency: flagAnchorsConcurrency,
	})
	if err != nil {
		return err
	}
	printOK("", fmt.Sprintf("%d anchor(s), %d dims, model %s, in %s", len(store.Entries), store.Manifest.Dim, store.Manifest.ModelID, time.Since(start).Round(time.Millisecond)))
	printInfo("", fmt.Sprintf("installed at %s", cfg.AnchorsDir))
	return nil
}

func runAnchorsInfo(_ *cobra.Command, _ []string) error {
	cfg, err := mustConfig()
	if err != nil {
		return err
	}
	store, err := anchors.Load(cfg.AnchorsDir)
	if err != nil {
		printMiss("", fmt.Sprintf("no anchor store at %s", cfg.AnchorsDir))
		return err
	}
	printSection("Anchor store")
	printInfo("", fmt.Sprintf("model:   %s", store.Manifest.ModelID))
	printInfo("", fmt.Sprintf("dim:     %d", store.Manifest.Dim))
	printInfo("", fmt.Sprintf("created: %s", store.Manifest.CreatedAt))
	printInfo("", fmt.Sprintf("anchors: %d", len(store.Entries)))
	return nil
}
