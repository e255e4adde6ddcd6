package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	lkamcp "github.com/buildvista/lookahead/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpProject string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the Lookahead MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Lookahead MCP server on stdio",
	Long: `Start the Lookahead MCP server on stdio transport.

The server exposes the analysis engine as MCP tools that AI assistants can
call: analyze_schedule, get_conflicts, get_risks, get_utilization.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		analyzer, projectID, err := buildAnalyzer(mcpProject)
		if err != nil {
			return err
		}

		srv := lkamcp.NewServer(analyzer, projectID, appVersion)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}

		return nil
	},
}

func init() {
	mcpServeCmd.Flags().StringVar(&mcpProject, "project", "", "path to the project snapshot YAML file")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
