package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"wz-generator/internal/casefile"
	"wz-generator/internal/server"
)

var serveStore bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := server.Options{
			Addr:        app.cfg.Server.Addr,
			Mode:        app.cfg.Server.Mode,
			CORSOrigins: app.cfg.Server.CORSOrigins,
			Logger:      app.log,
		}

		if serveStore {
			opts.Store = casefile.NewFileStore(app.cfg.Paths.Cases, casefile.WithSchema(app.schema))
		}

		return server.New(app.engine, opts).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveStore, "store", false, "Keep saved cases in the cases directory")
}
