package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// appVersion is set at build time via -ldflags="-X main.appVersion=x.x.x"
var appVersion = "dev"

// getVersion returns the version string.
func getVersion() string {
	return appVersion
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mfdl version %s\n", getVersion())
		},
	}
}
