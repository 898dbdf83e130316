package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamusis/verbmotion/internal/tier1"
)

var (
	flagResolveSync bool
	flagResolveJSON bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <text>",
	Short: "Resolve a phrase to a motion template",
	Long: `Resolve extracts the verb and adverb from text, looks the verb up in the
verb hash and, on a miss, asks the embedding fallback. --sync skips the
embedding tier.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&flagResolveSync, "sync", false, "Skip the embedding fallback")
	resolveCmd.Flags().BoolVar(&flagResolveJSON, "json", false, "Print the result as JSON")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	e, err := loadEngine(!flagResolveSync)
	if err != nil {
		return err
	}
	defer e.close()

	text := strings.Join(args, " ")
	res := resolveText(cmd.Context(), e, text, flagResolveSync)
	if flagResolveJSON {
		return printJSON(res)
	}
	printResult(text, res)
	if res == nil {
		return fmt.Errorf("no template for %q", text)
	}
	return nil
}

func resolveText(ctx context.Context, e *engine, text string, sync bool) *tier1.Result {
	if sync {
		return e.orch.ResolveSync(text)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return e.orch.Resolve(ctx, text)
}

func printResult(text string, res *tier1.Result) {
	if res == nil {
		printMiss("", fmt.Sprintf("no template for %q", text))
		return
	}
	printOK(res.TemplateID, fmt.Sprintf("via %s in %.2fms", res.Source, res.LatencyMs))
	printInfo("", fmt.Sprintf("verb=%q adverb=%q target=%q", res.Parsed.Verb, res.Parsed.Adverb, res.Parsed.TargetPart))
	if res.EmbeddingMatch != nil {
		printInfo("", fmt.Sprintf("nearest anchor %q, score %.3f", res.EmbeddingMatch.Verb, res.EmbeddingMatch.Score))
	}
	if res.Template == nil {
		printWarn("", "template is not loaded in the library")
	}
	if res.Overrides.Speed != nil {
		printInfo("", fmt.Sprintf("speed → %.2f", *res.Overrides.Speed))
	}
	if res.Overrides.AmplitudeScale != nil {
		printInfo("", fmt.Sprintf("amplitude → %.2f", *res.Overrides.AmplitudeScale))
	}
}
