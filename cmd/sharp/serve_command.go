package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/denkfabrik-neueMedien/sharp/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Long: "Run the MCP server on stdin/stdout.\n\n" +
			"stdout carries the JSON-RPC stream; logs are written to stderr.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, ctx)
		},
	}
}

func runServe(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	srv := server.New(server.Options{
		Name:    cfg.Server.Name,
		Version: Version,
		Access:  cfg.AccessMode(),
		Logger:  ctx.logger.With("component", "mcp"),
	})
	if err := srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
