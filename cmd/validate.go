package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kamusis/verbmotion/internal/library"
	"github.com/kamusis/verbmotion/internal/parser"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every template in the templates directory",
	Long: `Validate loads the templates directory the same way 'resolve' does and
reports every issue. It exits non-zero when any template has an error;
such templates are left out of the library at runtime.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	cfg, err := mustConfig()
	if err != nil {
		return err
	}
	_, lib, warnings, err := loadLibrary(cfg)
	if err != nil {
		return err
	}

	printSection("verbmotion validate")
	byID := map[string][]library.Warning{}
	for _, w := range warnings {
		byID[w.TemplateID] = append(byID[w.TemplateID], w)
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var errs int
	for _, id := range ids {
		printBullet(id)
		for _, w := range byID[id] {
			if w.Severity == parser.SeverityError {
				errs++
				printErr("", w.Message)
			} else {
				printWarn("", w.Message)
			}
		}
	}

	fmt.Fprintln(stdout)
	printOK("", fmt.Sprintf("%d template(s) loaded, %d anchor verb(s) from %s", lib.Size(), len(lib.AnchorVerbs()), cfg.TemplatesDir))
	if errs > 0 {
		return fmt.Errorf("%d template error(s)", errs)
	}
	return nil
}
