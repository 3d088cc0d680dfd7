package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/verdict/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the classification HTTP API",
		Long: `Start the HTTP server exposing POST /v1/classify and GET /healthz.
Host, port, timeouts, and rate limits come from configuration.`,
		RunE: runServe,
	}

	cmd.Flags().IntP("port", "p", 0, "override HTTP server port")
	cmd.Flags().String("host", "", "override HTTP server host")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}
	if host := mustString(cmd, "host"); host != "" {
		cfg.Server.Host = host
	}

	eng, closeEngine, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer closeEngine()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Server, cfg.Engine, eng)
	return srv.Run(ctx)
}
