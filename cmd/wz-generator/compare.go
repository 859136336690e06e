package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"wz-generator/internal/casefile"
	"wz-generator/internal/discrepancy"
	"wz-generator/internal/engine"
)

var compareJSON bool

var compareCmd = &cobra.Command{
	Use:   "compare <case.json>",
	Short: "List the fields where the application and analysis records differ",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := readCase(args[0])
		if err != nil {
			return err
		}

		result := app.engine.CompareCase(c)

		if compareJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")

			return enc.Encode(result)
		}

		return printComparison(cmd.OutOrStdout(), result)
	},
}

func init() {
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "Print the full comparison as JSON")
}

func readCase(path string) (casefile.Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return casefile.Case{}, fmt.Errorf("failed to read case %s: %w", path, err)
	}

	c, err := casefile.Decode(data, casefile.WithSchema(app.schema))
	if err != nil {
		return casefile.Case{}, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

func printComparison(w io.Writer, result engine.Comparison) error {
	fmt.Fprintf(w, "Sprawa: %s (%s)\n", result.Case.Number, result.Case.Municipality)

	if len(result.Discrepancies) == 0 {
		fmt.Fprintln(w, "Brak rozbieżności.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "POLE\tWNIOSEK\tANALIZA")

		for _, d := range result.Discrepancies {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Label, d.Application, d.Analysis)
		}

		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "Rozbieżności: %d z %d pól\n", discrepancy.Mismatches(result.Rows), len(result.Rows))

	for _, msg := range result.Validation.Messages() {
		fmt.Fprintln(w, msg)
	}

	return nil
}
