package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the downloader.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mfdl [links-file]",
		Short: "Batch-download MediaFire links with user-controlled Save As",
		Long: `mfdl opens each MediaFire link from a text file in a visible browser,
clicks the Download button, and waits for you to handle the native
Save As dialog before moving on.

How it works:
 1. Every link from the file is read (one URL per line, blank lines
    ignored).
 2. For each link the page opens in an incognito browser window and the
    Download button is clicked automatically. The Save As dialog appears;
    you choose where to save, then press ENTER in this console.
 3. After all links, the browser stays open until you confirm shutdown,
    so in-flight downloads have time to complete.

There is no headless mode: the whole point is that you see and handle
every Save As dialog yourself.`,
		Version:       getVersion(),
		Args:          cobra.MaximumNArgs(1),
		RunE:          runRootCmd,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().IntP("timeout", "t", 30, "Page-load timeout in seconds")
	cmd.Flags().StringP("config", "c", "", "Configuration file path (default: .mfdl.yaml in current or XDG config directory)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug output on the console")

	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}
