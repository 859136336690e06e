package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wz-generator/internal/casefile"
)

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "Inspect cases kept in the cases directory",
}

var casesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved cases",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := store().List()
		if err != nil {
			return err
		}

		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}

		return nil
	},
}

var casesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Compare the records of a saved case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := store().Load(args[0])
		if err != nil {
			return err
		}

		return printComparison(cmd.OutOrStdout(), app.engine.CompareCase(c))
	},
}

func init() {
	casesCmd.AddCommand(casesListCmd)
	casesCmd.AddCommand(casesShowCmd)
}

func store() *casefile.FileStore {
	return casefile.NewFileStore(app.cfg.Paths.Cases, casefile.WithSchema(app.schema))
}
