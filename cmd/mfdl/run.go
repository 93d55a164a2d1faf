package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/brandonEsquivel/MediaFireDownloader/internal/browser"
	"github.com/brandonEsquivel/MediaFireDownloader/internal/config"
	"github.com/brandonEsquivel/MediaFireDownloader/internal/links"
	mflog "github.com/brandonEsquivel/MediaFireDownloader/internal/log"
	"github.com/brandonEsquivel/MediaFireDownloader/internal/page"
	"github.com/brandonEsquivel/MediaFireDownloader/internal/popup"
	"github.com/brandonEsquivel/MediaFireDownloader/internal/report"
	"github.com/brandonEsquivel/MediaFireDownloader/internal/session"
)

// runRootCmd executes a download session.
func runRootCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// The links file must exist before anything else happens; a missing
	// file is the one case that exits non-zero.
	if _, err := os.Stat(cfg.LinksFile); err != nil {
		return fmt.Errorf("file not found: %s", cfg.LinksFile)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger, closer, err := mflog.New(os.Stderr, cfg.LogFile, verbose)
	if err != nil {
		return fmt.Errorf("could not open log file: %w", err)
	}
	defer closer.Close()

	return run(cfg, logger)
}

// buildConfig assembles the session configuration from defaults, the
// optional config file, and command flags, in that order of precedence.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.Default()

	cfgPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	explicit := cfgPath != ""
	if found := config.FindFile(cfgPath); found != "" {
		cf, err := config.LoadFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
		cfg.Apply(cf)
	} else if explicit {
		return nil, fmt.Errorf("configuration file not found: %s", cfgPath)
	}

	if cmd.Flags().Changed("timeout") {
		secs, err := cmd.Flags().GetInt("timeout")
		if err != nil {
			return nil, err
		}
		cfg.PageTimeout = time.Duration(secs) * time.Second
	}

	if len(args) > 0 {
		cfg.LinksFile = args[0]
	} else {
		path, err := promptLinksFile(cmd)
		if err != nil {
			return nil, err
		}
		cfg.LinksFile = path
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// promptLinksFile asks for the links file path when no argument was given.
func promptLinksFile(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Enter path to links .txt file: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("could not read links file path: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// run performs a full session: read links, launch the browser, walk the
// link loop, wait for the operator to authorize shutdown, then report.
func run(cfg *config.Config, logger *slog.Logger) error {
	all, err := links.ReadFile(cfg.LinksFile)
	if err != nil {
		return err
	}

	logger.Info(strings.Repeat("=", 60))
	logger.Info(fmt.Sprintf("Session started  |  Links to process: %d", len(all)))
	logger.Info(strings.Repeat("=", 60))

	if len(all) == 0 {
		logger.Warn("No links found in file. Exiting.")
		return nil
	}

	fmt.Println()
	fmt.Println("  Each link will open in the browser and click Download automatically.")
	fmt.Println("  A Save As dialog will appear — choose your folder and filename.")
	fmt.Println("  After saving, come back here and press ENTER to continue.")
	fmt.Println()

	sess, err := browser.New(cfg, logger)
	if err != nil {
		return err
	}

	rep := report.New(cfg.LinksFile, len(all))
	nav := page.New(cfg, logger)
	reaper := popup.New(sess.MainTarget, logger)
	proc := session.NewProcessor(nav, reaper, logger)
	gate := session.NewConsoleGate(os.Stdin, os.Stdout)

	// An interrupt ends the loop early but still runs the shutdown
	// confirmation, so outcomes gathered so far are kept and in-flight
	// downloads get their grace period. Notify stays registered so more
	// Ctrl-Cs land in the buffered channel instead of killing the
	// process and losing the summary.
	interrupt := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		close(interrupt)
	}()

	loop := session.NewLoop(proc, gate, rep, logger, os.Stdout, interrupt)
	if err := loop.Run(sess.Ctx, all); err != nil {
		logger.Warn("Skipping shutdown wait, browser already gone.")
	} else {
		loop.ConfirmShutdown()
	}

	sess.Close()
	logger.Info("Browser closed.")

	if err := rep.Write(os.Stdout, cfg.LogFile, time.Now()); err != nil {
		logger.Warn("could not write summary", "error", err)
	}
	logger.Info("Log saved to: " + cfg.LogFile)
	return nil
}
