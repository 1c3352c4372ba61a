package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iemejia/avro/internal/output"
	"github.com/iemejia/avro/internal/pipeline"
)

// catCmd represents the cat command
var catCmd = &cobra.Command{
	Use:   "cat [flags] file...",
	Short: "Dump records from Avro container files.",
	Long: `Dump records from Avro container files.
	Records are printed as JSON (one object per line), pretty JSON or CSV,
	optionally filtered, projected to a field subset, skipped and counted.
	Files are processed in the order given; - reads from standard input.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(getString(cmd, "format"))
		if err != nil {
			return err
		}

		opts := pipeline.CatOptions{
			Count:       getInt(cmd, "count"),
			Skip:        getInt(cmd, "skip"),
			Format:      format,
			Header:      getFlag(cmd, "header"),
			Filter:      getString(cmd, "filter"),
			Fields:      splitFields(getString(cmd, "fields")),
			PrintSchema: getFlag(cmd, "print-schema"),
		}

		return pipeline.Cat(opts, args, os.Stdout)
	},
}

// splitFields parses the comma-separated field allow-list.
func splitFields(raw string) []string {
	if raw == "" {
		return nil
	}

	var fields []string
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			fields = append(fields, name)
		}
	}

	return fields
}

func init() {
	rootCmd.AddCommand(catCmd)
	catCmd.Flags().IntP("count", "n", 0, "maximum number of records to print per file (0 = unbounded)")
	catCmd.Flags().IntP("skip", "s", 0, "number of records to skip per file before printing")
	catCmd.Flags().StringP("format", "f", "json", "output format: json, csv or json-pretty")
	catCmd.Flags().Bool("header", false, "print a CSV header row (csv format only)")
	catCmd.Flags().String("filter", "", "boolean filter expression (e.g. \"age > 1\")")
	catCmd.Flags().Bool("print-schema", false, "print each file's schema instead of its records")
	catCmd.Flags().String("fields", "", "comma-separated list of fields to print")
}
