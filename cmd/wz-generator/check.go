package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"wz-generator/internal/diagnostic"
	"wz-generator/internal/export"
	"wz-generator/internal/schema"
	"wz-generator/internal/template"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the field schema, municipality configuration and templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := &diagnostic.Diagnostics{}

		f, err := schema.LoadSource(app.cfg.Paths.Schema)
		if err != nil {
			return err
		}

		d.Merge(*schema.Validate(f))

		if app.templates != nil {
			d.Merge(*app.registry.Check(app.templates))
		}

		sel := template.NewSelector(app.registry, app.templates, app.log)

		for _, entry := range app.registry.Entries() {
			for _, kind := range template.Kinds() {
				s, err := sel.Resolve(entry.ID, kind)
				if err != nil {
					return err
				}

				d.Merge(*template.Lint(s.Root, app.schema, s.Source))
			}
		}

		switch conv := app.engine.Converter.(type) {
		case *export.Soffice:
			if !conv.Available() {
				d.AddWarning("export_unavailable", fmt.Sprintf("PDF export: %s not found, only DOCX can be generated", conv.Binary), "")
			}
		case export.Disabled:
			d.AddInfo("export_disabled", "PDF export is disabled", "")
		}

		printDiagnostics(cmd.OutOrStdout(), d)

		if err := d.Error(); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "OK")

		return nil
	},
}

func printDiagnostics(w io.Writer, d *diagnostic.Diagnostics) {
	for _, group := range [][]diagnostic.Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, item := range group {
			fmt.Fprintf(w, "%s: [%s] %s", item.Severity, item.Code, item.Message)

			if len(item.Suggestions) > 0 {
				fmt.Fprintf(w, " (did you mean %v?)", item.Suggestions)
			}

			fmt.Fprintln(w)
		}
	}
}
