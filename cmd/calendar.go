package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bundlebench/bundlebench/internal/insight"
	"github.com/bundlebench/bundlebench/internal/window"
)

var (
	calendarMonths     int
	calendarCategories []string
)

var calendarCmd = &cobra.Command{
	Use:   "calendar <file>",
	Short: "Bucket insights into consecutive calendar months",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now, err := referenceTime()
		if err != nil {
			return err
		}
		months := calendarMonths
		if !cmd.Flags().Changed("months") && cfg != nil && cfg.Months > 0 {
			months = cfg.Months
		}
		if months <= 0 {
			return fmt.Errorf("months must be positive, got %d", months)
		}
		cats, err := parseCategories(calendarCategories)
		if err != nil {
			return err
		}
		table, err := loadTable(args[0])
		if err != nil {
			return err
		}
		rep := insight.Evaluate(table, now)
		items := window.FilterCategories(rep.Insights, cats)
		return emit(window.CalendarBins(items, months, now))
	},
}

func init() {
	calendarCmd.Flags().IntVar(&calendarMonths, "months", 12, "number of calendar months")
	calendarCmd.Flags().StringSliceVar(&calendarCategories, "category", nil, "restrict to categories (repeatable)")
	rootCmd.AddCommand(calendarCmd)
}
