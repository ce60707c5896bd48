package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vangoframework/vpmshell/internal/app"
	"github.com/vangoframework/vpmshell/internal/config"
	"github.com/vangoframework/vpmshell/internal/server"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg, os.Stdout)
			if err != nil {
				return err
			}
			defer a.Close()

			a.Logger.Info("starting", "environment", cfg.Environment, "base_url", cfg.BaseURL)
			return server.New(cfg.Addr(), a.Router, a.Logger).Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}
