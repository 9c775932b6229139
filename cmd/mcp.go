package cmd

import (
	"github.com/KaramelBytes/courtside/internal/mcptools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp [file]",
	Short: "Run the statistics tools as an MCP server over stdin/stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(argOrEmpty(args))
		if err != nil {
			return err
		}
		server, err := mcptools.NewServer(t, Version)
		if err != nil {
			return err
		}
		return server.Run(cmd.Context(), &mcp.StdioTransport{})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
