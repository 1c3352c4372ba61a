package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/iemejia/avro/internal/pipeline"
)

// writeCmd represents the write command
var writeCmd = &cobra.Command{
	Use:   "write [flags] file...",
	Short: "Encode JSON or CSV records into an Avro container file.",
	Long: `Encode JSON or CSV records into an Avro container file.
	Input records are read from the given files, or standard input when none
	are given. JSON input is newline-delimited objects; CSV rows map onto the
	schema's fields by position. Values are coerced to the schema's types.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := pipeline.WriteOptions{
			SchemaPath: getString(cmd, "schema"),
			InputType:  getString(cmd, "input-type"),
			Output:     getString(cmd, "output"),
		}

		return pipeline.Write(opts, args, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)
	writeCmd.Flags().String("schema", "", "path to the JSON schema file (required)")
	writeCmd.Flags().String("input-type", "", "input format: json or csv (default: guessed from the first filename)")
	writeCmd.Flags().StringP("output", "o", "-", "output file path (- = standard output)")
}
