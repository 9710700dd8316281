// Package main runs the civic-mcp server: an MCP server that exposes
// CIViC clinical evidence search and lookup tools to agents over
// stdio. Protocol frames own stdout; diagnostics go to stderr.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oncotools/civic-mcp/internal/civic"
	"github.com/oncotools/civic-mcp/internal/config"
	"github.com/oncotools/civic-mcp/internal/mcp"
	"github.com/oncotools/civic-mcp/internal/tools"
)

const (
	serverName    = "civic-clinical-evidence-mcp"
	serverVersion = "1.0.0"
)

func main() {
	var verbose bool
	rootCmd := &cobra.Command{
		Use:          "civic-mcp",
		Short:        "MCP server for the CIViC clinical evidence database",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(verbose)
		},
	}
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(verbose bool) error {
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("config")
		return err
	}

	client := civic.NewClient(cfg)
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := mcp.NewServer(serverName, serverVersion, tools.NewRegistry(client, cfg.PageSize))
	log.Info("starting CIViC MCP server")
	if err := srv.Run(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("server")
		return err
	}
	log.Info("server stopped")
	return nil
}
