package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	inframcp "github.com/felixgeelhaar/proposer/internal/infrastructure/mcp"
)

var (
	mcpTransport string
	mcpAddr      string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Proposer MCP server",
	Long: `Exposes the proposal pipeline as MCP tools so AI assistants can drive
it: workspace init, request and team management, breakdown, estimation,
generation, section edits and usage reporting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("PROPOSER_SKIP_MCP_START") == "true" {
			return nil
		}
		cwd, err := getProjectRoot()
		if err != nil {
			return fmt.Errorf("resolve project path: %w", err)
		}

		server, err := inframcp.NewServer(cwd)
		if err != nil {
			return fmt.Errorf("failed to start MCP server: %w", err)
		}

		switch strings.ToLower(mcpTransport) {
		case "stdio", "":
			return server.StartStdio()
		case "http":
			return server.StartHTTP(mcpAddr)
		default:
			return fmt.Errorf("unsupported transport: %s", mcpTransport)
		}
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpTransport, "transport", "stdio", "Transport to use (stdio, http)")
	mcpCmd.Flags().StringVar(&mcpAddr, "addr", ":8080", "Address for the http transport")
	RootCmd.AddCommand(mcpCmd)
}
