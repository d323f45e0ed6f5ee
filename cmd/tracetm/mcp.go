package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/aretw0/tracetm/internal/cli"
	"github.com/aretw0/tracetm/pkg/adapters/mcp"
	"github.com/aretw0/tracetm/pkg/observability"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp <machine>",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts tracetm as an MCP Server exposing the 'trace' and
'describe_machine' tools for one machine.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		transport, _ := cmd.Flags().GetString("transport")

		logger, closeLog, err := cli.CreateLogger(cfg.Debug, cfg.LogFile)
		if err != nil {
			return err
		}
		defer closeLog()

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		m, closeStore, err := cli.LoadMachine(sigCtx, args[0], cfg, logger, observability.LogHooks(logger))
		if err != nil {
			return err
		}
		defer closeStore()

		srv := mcp.NewServer(m, logger)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting tracetm MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			logger.Info("Starting tracetm MCP Server (SSE)", "port", cfg.Port)
			if err := srv.ServeSSE(sigCtx, cfg.Port); err != nil && err != http.ErrServerClosed {
				return err
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().IntP("port", "p", 8080, "Port to listen on (only for SSE)")
}
