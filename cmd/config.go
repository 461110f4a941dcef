package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/bundlebench/bundlebench/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set BundleBench configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("months: %d\n", cfg.Months)
		fmt.Printf("range_days: %d\n", cfg.RangeDays)
		fmt.Printf("top_n: %d\n", cfg.TopN)
		if cfg.AsOf != "" {
			fmt.Printf("as_of: %s\n", cfg.AsOf)
		}
		fmt.Printf("format: %s\n", cfg.Format)
		if cfg.Sheet != "" {
			fmt.Printf("sheet: %s\n", cfg.Sheet)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "months":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for months: %v", val)
			}
			cfg.Months = i
		case "range_days":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for range_days: %v", val)
			}
			cfg.RangeDays = i
		case "top_n":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for top_n: %v", val)
			}
			cfg.TopN = i
		case "as_of":
			cfg.AsOf = val
		case "format":
			switch val {
			case "json", "yaml", "yml", "markdown", "md":
				cfg.Format = val
			default:
				return fmt.Errorf("invalid format: %s (use json, yaml or markdown)", val)
			}
		case "sheet":
			cfg.Sheet = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
