package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bundlebench/bundlebench/internal/insight"
	"github.com/bundlebench/bundlebench/internal/window"
)

var (
	windowsRange      int
	windowsCategories []string
)

var windowsCmd = &cobra.Command{
	Use:   "windows <file>",
	Short: "Split upcoming insights into two equal day-range windows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now, err := referenceTime()
		if err != nil {
			return err
		}
		rangeDays := windowsRange
		if !cmd.Flags().Changed("range") && cfg != nil && cfg.RangeDays > 0 {
			rangeDays = cfg.RangeDays
		}
		if rangeDays <= 0 {
			return fmt.Errorf("range must be positive, got %d", rangeDays)
		}
		cats, err := parseCategories(windowsCategories)
		if err != nil {
			return err
		}
		table, err := loadTable(args[0])
		if err != nil {
			return err
		}
		rep := insight.Evaluate(table, now)
		items := window.FilterCategories(rep.Insights, cats)
		return emit(window.DayRangeBins(items, rangeDays, now))
	},
}

func init() {
	windowsCmd.Flags().IntVar(&windowsRange, "range", 30, "window size in days (15, 30, 60 or 90)")
	windowsCmd.Flags().StringSliceVar(&windowsCategories, "category", nil, "restrict to categories (repeatable)")
	rootCmd.AddCommand(windowsCmd)
}
