package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamusis/verbmotion/internal/motion"
	"github.com/kamusis/verbmotion/internal/parser"
	"github.com/kamusis/verbmotion/internal/primitive"
	"github.com/kamusis/verbmotion/internal/skeleton"
	"github.com/kamusis/verbmotion/internal/tier1"
)

var (
	flagPlanSubject string
	flagPlanSync    bool
	flagPlanJSON    bool
)

var planCmd = &cobra.Command{
	Use:   "plan <text>",
	Short: "Resolve a phrase and evaluate it against a subject's skeleton",
	Long: `Plan resolves text like 'resolve' does, picks the skeleton archetype for
--subject (horse → quadruped, eagle → bird, ...) and prints the motion plan.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&flagPlanSubject, "subject", "", "Noun whose skeleton archetype is animated")
	planCmd.Flags().BoolVar(&flagPlanSync, "sync", false, "Skip the embedding fallback")
	planCmd.Flags().BoolVar(&flagPlanJSON, "json", false, "Print the plan as JSON")
	rootCmd.AddCommand(planCmd)
}

type planOutput struct {
	Result    *tier1.Result     `json:"result"`
	Archetype string            `json:"archetype"`
	Parts     []motion.PartInfo `json:"parts"`
	Plan      *motion.Plan      `json:"plan"`
}

func runPlan(cmd *cobra.Command, args []string) error {
	e, err := loadEngine(!flagPlanSync)
	if err != nil {
		return err
	}
	defer e.close()

	text := strings.Join(args, " ")
	res := resolveText(cmd.Context(), e, text, flagPlanSync)
	if res == nil {
		printMiss("", fmt.Sprintf("no template for %q", text))
		return fmt.Errorf("no template for %q", text)
	}
	if res.Template == nil {
		return fmt.Errorf("template %s is not loaded", res.TemplateID)
	}

	arch := skeleton.ForNoun(flagPlanSubject)
	parts := arch.PartInfos()
	plan, err := e.parser.Parse(res.Template, parts, parser.Options{Overrides: &res.Overrides})
	if err != nil {
		return err
	}

	if flagPlanJSON {
		return printJSON(planOutput{Result: res, Archetype: arch.Name, Parts: parts, Plan: plan})
	}
	printResult(text, res)
	printPlan(arch.Name, parts, plan)
	return nil
}

func printPlan(archetype string, parts []motion.PartInfo, plan *motion.Plan) {
	names := primitiveNames()
	printSection(fmt.Sprintf("Plan (%s, speed ×%.2f)", archetype, plan.SpeedScale))
	if plan.WholeBody.Active {
		printOK("whole_body", describeEntry(names, plan.WholeBody.PrimitiveID, plan.WholeBody.Duration, plan.WholeBody.Params))
	} else {
		printSkip("whole_body", "inactive")
	}
	for _, p := range parts {
		entry := plan.Parts[p.ID]
		if entry == nil {
			printSkip(p.Name, "no motion")
			continue
		}
		printOK(p.Name, describeEntry(names, entry.PrimitiveID, entry.Duration, entry.Params))
	}
}

func primitiveNames() map[int]string {
	cat := primitive.Default()
	out := map[int]string{}
	for _, n := range cat.Names() {
		s, _ := cat.Lookup(n)
		out[s.ID] = s.Name
	}
	return out
}

func describeEntry(names map[int]string, id int, duration float64, params map[string]float64) string {
	var b strings.Builder
	b.WriteString(names[id])
	if duration > 0 {
		fmt.Fprintf(&b, " once for %.2fs", duration)
	} else {
		b.WriteString(" looping")
	}
	for _, k := range sortedKeys(params) {
		fmt.Fprintf(&b, " %s=%.3g", k, params[k])
	}
	return b.String()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
