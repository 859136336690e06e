package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"wz-generator/internal/document"
	"wz-generator/internal/engine"
	"wz-generator/internal/export"
	"wz-generator/internal/template"
)

var (
	renderKind   string
	renderFormat string
	renderOut    string
	renderAll    bool
)

var renderCmd = &cobra.Command{
	Use:   "render <case.json>",
	Short: "Render the documents of a saved case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := readCase(args[0])
		if err != nil {
			return err
		}

		format, err := template.ParseFormat(renderFormat)
		if err != nil {
			return err
		}

		kinds := template.Kinds()
		if !renderAll {
			kind, err := template.ParseKind(renderKind)
			if err != nil {
				return err
			}

			kinds = []template.Kind{kind}
		}

		arts, genErr := app.engine.GenerateAll(cmd.Context(), c, kinds, format)

		var verr *engine.ValidationError
		if errors.As(genErr, &verr) {
			for _, msg := range verr.Messages() {
				cmd.PrintErrln(msg)
			}

			return genErr
		}

		if arts == nil {
			return genErr
		}

		files := make([]document.File, len(arts))
		for i, a := range arts {
			files[i] = a.File

			if a.Fallback != "" {
				cmd.PrintErrf("%s: built-in template used (%s)\n", a.Kind, a.Fallback)
			}
		}

		if err := document.WriteFiles(files, renderOut); err != nil {
			return err
		}

		for _, f := range files {
			fmt.Fprintln(cmd.OutOrStdout(), f.Name)
		}

		if errors.Is(genErr, export.ErrUnavailable) {
			return fmt.Errorf("PDF export unavailable, DOCX written instead: %w", genErr)
		}

		return genErr
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderKind, "kind", "k", string(template.KindAnalysis), "Document kind: analysis or decision")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", string(template.FormatDOCX), "Output format: docx or pdf")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", ".", "Output directory")
	renderCmd.Flags().BoolVar(&renderAll, "all", false, "Render every document kind")
}
