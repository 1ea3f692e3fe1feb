package main

import (
	"cat_api/internal/config" // Application configuration
	"cat_api/internal/server" // HTTP server
	"os/signal"               // Shutdown signals
	"syscall"                 // Signal numbers

	"github.com/spf13/cobra" // CLI commands
)

// serveCmd runs the HTTP API until SIGINT or SIGTERM
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig() // Load configuration
		if err != nil {
			return err
		}
		if err := server.SetupLogger(cfg); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv, err := server.New(ctx, cfg)
		if err != nil {
			return err
		}
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
