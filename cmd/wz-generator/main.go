// Package main provides the CLI entrypoint for wz-generator.
//
// wz-generator reconciles the application ("wniosek") and analysis
// ("analiza") records of a WZ case and renders the analysis or decision
// document for the case's municipality:
//   - serve: run the HTTP API used by the form UI
//   - compare: list discrepancies of a saved case
//   - render: render documents of a saved case to files
//   - check: validate the schema, municipality configuration and templates
package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"wz-generator/internal/config"
	"wz-generator/internal/engine"
	"wz-generator/internal/export"
	"wz-generator/internal/logging"
	"wz-generator/internal/municipality"
	"wz-generator/internal/schema"
)

var (
	configPath string
	verbose    bool
)

// app is the state shared by the commands, built before any of them runs.
var app struct {
	cfg       *config.Config
	log       *logging.Logger
	schema    *schema.Schema
	registry  *municipality.Registry
	templates fs.FS
	engine    *engine.Engine
}

var rootCmd = &cobra.Command{
	Use:   "wz-generator",
	Short: "Reconcile WZ case records and render analysis and decision documents",
	Long: `wz-generator merges the application and analysis records of a
"warunki zabudowy" case, reports the fields where they disagree, and renders
the urban analysis or the decision from the municipality's template.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app.log != nil {
			app.log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: built-in settings)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(casesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	level, err := cfg.Logging.ZapLevel()
	if err != nil {
		return err
	}

	if verbose {
		level = zapcore.DebugLevel
	}

	log, err := logging.NewLevel(cfg.Logging.Mode, level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	s, err := schema.Load(cfg.Paths.Schema)
	if err != nil {
		return err
	}

	reg, err := municipality.Load(cfg.Paths.Municipalities)
	if err != nil {
		return err
	}

	var templates fs.FS
	if cfg.Paths.Templates != "" {
		templates = os.DirFS(cfg.Paths.Templates)
	}

	var conv export.Converter = export.Disabled{}
	if !cfg.Export.Disabled {
		conv = export.NewSoffice(cfg.Export.Binary, cfg.Export.Timeout(), log)
	}

	app.cfg, app.log, app.schema, app.registry, app.templates = cfg, log, s, reg, templates
	app.engine = engine.New(engine.Options{
		Schema:         s,
		Municipalities: reg,
		Templates:      templates,
		Converter:      conv,
		Logger:         log,
	})

	log.Debug("configuration loaded",
		"config", configPath,
		"schema_fields", len(s.Keys()),
		"municipalities", len(reg.Names()),
		"templates", cfg.Paths.Templates,
	)

	return nil
}
