package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamusis/verbmotion/internal/verbhash"
)

var (
	flagHashgenOut     string
	flagHashgenTimeout time.Duration
)

var hashgenCmd = &cobra.Command{
	Use:   "hashgen",
	Short: "Generate the verb hash artifact from the templates' anchor verbs",
	Long: `Hashgen expands every anchor verb into its conjugated forms (irregular
table first, then regular suffix rules) and writes the form → template id
map consumed by the hash tier. Forms claimed by two templates go to the
later one and are reported.`,
	Args: cobra.NoArgs,
	RunE: runHashgen,
}

func init() {
	hashgenCmd.Flags().StringVar(&flagHashgenOut, "out", "", "Output path (default: verb_hash_file from config)")
	hashgenCmd.Flags().DurationVar(&flagHashgenTimeout, "lock-timeout", 10*time.Second, "How long to wait for another writer")
	rootCmd.AddCommand(hashgenCmd)
}

func runHashgen(_ *cobra.Command, _ []string) error {
	cfg, err := mustConfig()
	if err != nil {
		return err
	}
	_, lib, warnings, err := loadLibrary(cfg)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		printWarn(w.TemplateID, w.Message)
	}

	artifact, collisions := verbhash.Generate(verbhash.AnchorsFromMap(lib.AnchorVerbs()), verbhash.DefaultIrregular())
	for _, c := range collisions {
		printWarn(c.Form, fmt.Sprintf("claimed by %s, now %s", c.Previous, c.Next))
	}

	out := flagHashgenOut
	if out == "" {
		out = cfg.VerbHashFile
	}
	if err := verbhash.WriteFile(out, artifact, flagHashgenTimeout); err != nil {
		return err
	}
	printOK("", fmt.Sprintf("%d form(s) for %d template(s) written to %s", len(artifact), lib.Size(), out))
	return nil
}
