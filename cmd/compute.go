package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bundlebench/bundlebench/internal/insight"
	"github.com/bundlebench/bundlebench/internal/schema"
)

// computeOutput is the full evaluation of one snapshot.
type computeOutput struct {
	Meta     schema.Meta       `json:"meta" yaml:"meta"`
	Outcomes []insight.Outcome `json:"outcomes" yaml:"outcomes"`
	Insights []insight.Insight `json:"insights" yaml:"insights"`
}

var computeCmd = &cobra.Command{
	Use:   "compute <file>",
	Short: "Evaluate the full insight catalog against a book of business",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now, err := referenceTime()
		if err != nil {
			return err
		}
		table, err := loadTable(args[0])
		if err != nil {
			return err
		}
		rep := insight.Evaluate(table, now)
		out := computeOutput{
			Meta:     table.Meta,
			Outcomes: rep.Outcomes,
			Insights: rep.Insights,
		}
		switch outputFormat() {
		case "markdown", "md":
			return writeOutput([]byte(renderMarkdown(out)))
		default:
			return emit(out)
		}
	},
}

// renderMarkdown is the human-readable per-rule summary table.
func renderMarkdown(out computeOutput) string {
	var sb strings.Builder
	sb.WriteString("# BundleBench report\n\n")
	fmt.Fprintf(&sb, "Snapshot `%s`: %d of %d rows kept.\n\n",
		out.Meta.SnapshotID, out.Meta.TotalKept, out.Meta.TotalRaw)
	if len(out.Meta.MissingRequired) > 0 {
		names := make([]string, len(out.Meta.MissingRequired))
		for i, f := range out.Meta.MissingRequired {
			names[i] = string(f)
		}
		fmt.Fprintf(&sb, "Missing required columns: %s\n\n", strings.Join(names, ", "))
	}
	sb.WriteString("| ID | Rule | Category | Severity | Matched | Summary |\n")
	sb.WriteString("|---:|------|----------|----------|--------:|---------|\n")
	for _, o := range out.Outcomes {
		fmt.Fprintf(&sb, "| %d | %s | %s | %s | %d | %s |\n",
			o.RuleID, o.Title, o.Category, o.Severity, len(o.Matched), o.Summary)
	}
	fmt.Fprintf(&sb, "\n%d insights across %d rules.\n", len(out.Insights), len(out.Outcomes))
	return sb.String()
}

func init() {
	rootCmd.AddCommand(computeCmd)
}
