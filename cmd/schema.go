package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bundlebench/bundlebench/internal/ingest"
	"github.com/bundlebench/bundlebench/internal/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect the canonical schema and check files against it",
}

var schemaFieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List canonical fields, kinds and accepted aliases",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, spec := range schema.Fields {
			req := ""
			if spec.Required {
				req = " (required)"
			}
			fmt.Printf("%-32s %-8s%s\n", spec.Field, spec.Kind, req)
			if len(spec.Aliases) > 1 {
				fmt.Printf("  aliases: %s\n", strings.Join(spec.Aliases, ", "))
			}
		}
		return nil
	},
}

var schemaCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Resolve a file's headers without evaluating insights",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := ingest.Load(args[0])
		if err != nil {
			return err
		}
		res := schema.Resolve(src.Headers)
		fmt.Printf("%s: %d columns, %d rows\n", src.Name, len(src.Headers), len(src.Rows))
		for _, h := range src.Headers {
			if canon, ok := res.HeaderMap[h]; ok {
				fmt.Printf("  %-32s -> %s\n", h, canon)
			}
		}
		for _, h := range res.Unmapped {
			fmt.Printf("  %-32s -> (unmapped)\n", h)
		}
		if len(res.MissingRequired) > 0 {
			names := make([]string, len(res.MissingRequired))
			for i, f := range res.MissingRequired {
				names[i] = string(f)
			}
			return fmt.Errorf("missing required columns: %s", strings.Join(names, ", "))
		}
		fmt.Println("All required columns present")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.AddCommand(schemaFieldsCmd)
	schemaCmd.AddCommand(schemaCheckCmd)
}
