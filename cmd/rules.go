package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bundlebench/bundlebench/internal/insight"
)

var rulesCategory string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the insight rule catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		infos := insight.Catalog()
		if rulesCategory != "" {
			filtered := infos[:0]
			for _, r := range infos {
				if string(r.Category) == rulesCategory {
					filtered = append(filtered, r)
				}
			}
			infos = filtered
		}
		return emit(infos)
	},
}

func init() {
	rulesCmd.Flags().StringVar(&rulesCategory, "category", "", "filter by category name")
	rootCmd.AddCommand(rulesCmd)
}
