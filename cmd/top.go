package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bundlebench/bundlebench/internal/insight"
	"github.com/bundlebench/bundlebench/internal/window"
)

var (
	topN          int
	topCategories []string
)

var topCmd = &cobra.Command{
	Use:   "top <file>",
	Short: "Rank upcoming insights for outreach",
	Long: `Ranks insights with a detection date inside the next 60 days by
severity, then impact, then date, and returns the top N.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now, err := referenceTime()
		if err != nil {
			return err
		}
		n := topN
		if !cmd.Flags().Changed("n") && cfg != nil && cfg.TopN > 0 {
			n = cfg.TopN
		}
		cats, err := parseCategories(topCategories)
		if err != nil {
			return err
		}
		table, err := loadTable(args[0])
		if err != nil {
			return err
		}
		rep := insight.Evaluate(table, now)
		items := window.FilterCategories(rep.Insights, cats)
		return emit(window.TopN(items, n, now))
	},
}

func init() {
	topCmd.Flags().IntVar(&topN, "n", 10, "number of insights to return")
	topCmd.Flags().StringSliceVar(&topCategories, "category", nil, "restrict to categories (repeatable)")
	rootCmd.AddCommand(topCmd)
}
