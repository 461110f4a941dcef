package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	cfgpkg "github.com/bundlebench/bundlebench/internal/config"
	"github.com/bundlebench/bundlebench/internal/ingest"
	"github.com/bundlebench/bundlebench/internal/insight"
	"github.com/bundlebench/bundlebench/internal/schema"
	"github.com/bundlebench/bundlebench/internal/utils"
)

var (
	// Global flags (wired later to config/viper)
	cfgFile    string
	debug      bool
	flagAsOf   string
	flagFormat string
	flagOut    string
	flagSheet  string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "bundlebench",
	Short: "BundleBench: household insight engine for independent agencies",
	Long: `BundleBench ingests a household book of business (CSV, TSV or XLSX),
normalizes it against the canonical schema, evaluates the fixed insight
catalog, and reports windowed and ranked results for renewal outreach.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.bundlebench/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagAsOf, "as-of", "", "reference date YYYY-MM-DD (overrides config; default today)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "output format: json or yaml (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagOut, "out", "", "write output to file instead of stdout")
	rootCmd.PersistentFlags().StringVar(&flagSheet, "sheet", "", "XLSX sheet name (default first sheet)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = &cfgpkg.Global{Months: 12, RangeDays: 30, TopN: 10, Format: "json"}
		return
	}
	cfg = c
	f := rootCmd.PersistentFlags()
	if f.Changed("as-of") {
		cfg.AsOf = flagAsOf
	}
	if f.Changed("format") {
		cfg.Format = flagFormat
	}
	if f.Changed("sheet") {
		cfg.Sheet = flagSheet
	}
}

// referenceTime resolves the injected "now" used by every evaluation so
// runs are reproducible under --as-of.
func referenceTime() (time.Time, error) {
	if cfg == nil || cfg.AsOf == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", cfg.AsOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse as-of date %q: %w", cfg.AsOf, err)
	}
	return t, nil
}

// loadTable runs the ingest and normalize pipeline for one input file,
// reporting resolution problems as warnings. A table with zero kept rows
// is a hard error.
func loadTable(path string) (schema.Table, error) {
	var src *ingest.Source
	var err error
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		sheet := flagSheet
		if sheet == "" && cfg != nil {
			sheet = cfg.Sheet
		}
		src, err = ingest.LoadXLSX(path, sheet, 0)
	} else {
		src, err = ingest.Load(path)
	}
	if err != nil {
		return schema.Table{}, err
	}
	res := schema.Resolve(src.Headers)
	if len(res.MissingRequired) > 0 {
		names := make([]string, len(res.MissingRequired))
		for i, f := range res.MissingRequired {
			names[i] = string(f)
		}
		fmt.Fprintf(os.Stderr, "⚠ Warning: missing required columns: %s\n", strings.Join(names, ", "))
	}
	if len(res.Unmapped) > 0 {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %d unmapped columns ignored: %s\n",
			len(res.Unmapped), strings.Join(res.Unmapped, ", "))
	}
	if debug {
		for h, f := range res.HeaderMap {
			fmt.Fprintf(os.Stderr, "  %s -> %s\n", h, f)
		}
	}
	table := schema.Normalize(src.Rows, res)
	if dropped := table.Meta.TotalRaw - table.Meta.TotalKept; dropped > 0 {
		fmt.Fprintf(os.Stderr, "⚠ Warning: dropped %d rows without household_id\n", dropped)
	}
	if len(table.Rows) == 0 {
		return schema.Table{}, fmt.Errorf("no usable household rows in %s", src.Name)
	}
	return table, nil
}

// parseCategories resolves --category values against the fixed category
// enum, case-insensitively.
func parseCategories(names []string) ([]insight.Category, error) {
	var out []insight.Category
	for _, name := range names {
		matched := false
		for _, c := range insight.Categories() {
			if strings.EqualFold(string(c), name) {
				out = append(out, c)
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("unknown category %q", name)
		}
	}
	return out, nil
}

// emit encodes v as JSON or YAML per config and writes it to --out
// (atomically) or stdout.
func emit(v any) error {
	format := outputFormat()
	var b []byte
	var err error
	switch format {
	case "json":
		b, err = utils.PrettyJSON(v)
	case "yaml", "yml":
		b, err = yaml.Marshal(v)
	case "markdown", "md":
		// Only compute renders markdown; other commands degrade to JSON.
		fmt.Fprintln(os.Stderr, "⚠ Warning: markdown output is only available for compute, falling back to json")
		b, err = utils.PrettyJSON(v)
	default:
		return fmt.Errorf("unknown format %q (use json or yaml)", format)
	}
	if err != nil {
		return err
	}
	return writeOutput(b)
}

// writeOutput sends encoded bytes to --out (atomically) or stdout.
func writeOutput(b []byte) error {
	if flagOut != "" {
		if err := utils.SafeWriteFile(flagOut, b); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", flagOut)
		return nil
	}
	fmt.Println(string(b))
	return nil
}

// outputFormat resolves the effective --format value.
func outputFormat() string {
	if cfg != nil && cfg.Format != "" {
		return strings.ToLower(cfg.Format)
	}
	return "json"
}
