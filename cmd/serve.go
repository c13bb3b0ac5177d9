package cmd

import (
	"context"
	"fmt"

	"rez/internal/app"

	"github.com/spf13/cobra"
)

// serveDebug enables verbose logging across the application.
var serveDebug bool

// serveConfigPath specifies a custom configuration directory path.
// When set, config.yaml is read from this directory.
var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the rez server",
	Long: `Starts the MCP server and the browser-facing auth endpoints.

Both surfaces share one listener: MCP tool calls are served under /mcp
(streamable HTTP transport) while /auth/login and /pdf/* handle the
browser side of the login handshake and document downloads. With the
stdio transport, MCP runs over stdin/stdout and the listener carries
the auth endpoints only.

Configuration:
  rez reads config.yaml from the directory given by --config-path and
  applies CIT_BASE_URL, REZ_BASE_URL, REZ_HOST, REZ_PORT and
  REZ_TRANSPORT environment overrides on top.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	application, err := app.NewApplication(app.Config{
		Debug:      serveDebug,
		ConfigPath: serveConfigPath,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	serveCmd.Flags().StringVar(&serveConfigPath, "config-path", "", "Configuration directory path")
}
