package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the entry point when the application is called without any
// subcommands.
var rootCmd = &cobra.Command{
	Use:   "rez",
	Short: "MCP gateway to the CIT results portal",
	Long: `rez lets chat assistants read exam results, profiles and halltickets
from the CIT results portal on a student's behalf. Credentials never
pass through the assistant: the login tool hands out a short-lived
browser link, and the student authenticates against the portal
directly.`,
	SilenceUsage: true,
}

// SetVersion sets the version for the root command. It is called from
// the main package to inject the build version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "rez version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
