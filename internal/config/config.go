package config

import (
	"errors"
	"time"
)

const (
	// DefaultPageTimeout is the page-load timeout applied to every
	// navigation and to the download-button presence wait.
	DefaultPageTimeout = 30 * time.Second

	// DefaultLogFile is the append-only session log written next to the
	// working directory.
	DefaultLogFile = "download_log.txt"

	// DefaultWindowWidth and DefaultWindowHeight size the browser window.
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 900
)

// Locator is one named element-location strategy. Locators are tried in
// order; the first one resolving to a visible element wins.
type Locator struct {
	Name string `yaml:"name"`
	CSS  string `yaml:"css"`
}

// Config holds all settings for a download session. It is built once in
// the command layer and passed into each component; there is no global
// configuration state.
type Config struct {
	// LinksFile is the path to the input file, one URL per line.
	LinksFile string

	// PageTimeout bounds every navigation and the button presence wait.
	PageTimeout time.Duration

	// LogFile is the append-only session log path.
	LogFile string

	// ExecPath is the browser executable. Empty means auto-detect.
	ExecPath string

	// ProfilePath is the browser user-data directory. Empty lets the
	// browser pick a throwaway one, which suits incognito sessions.
	ProfilePath string

	WindowWidth  int
	WindowHeight int

	// Locators is the ordered download-button search list,
	// most-specific-first.
	Locators []Locator

	// InvalidPhrases are case-insensitive substrings whose presence in the
	// rendered page marks the file as invalid or deleted.
	InvalidPhrases []string
}

// Default returns the standard configuration with the MediaFire locator
// list and invalid-page phrases.
func Default() *Config {
	return &Config{
		PageTimeout:  DefaultPageTimeout,
		LogFile:      DefaultLogFile,
		WindowWidth:  DefaultWindowWidth,
		WindowHeight: DefaultWindowHeight,
		Locators: []Locator{
			{Name: "id", CSS: "a#downloadButton"},
			{Name: "id-attribute", CSS: "a[id='downloadButton']"},
			{Name: "class", CSS: "a.download_link"},
			{Name: "nested", CSS: "div.download_link a"},
			{Name: "aria-label", CSS: "a[aria-label*='Download']"},
		},
		InvalidPhrases: []string{
			"invalid or deleted",
			"file not found",
			"this file has been deleted",
			"unavailable",
			"error occurred",
		},
	}
}

// Validate checks the configuration for values that would make a session
// unusable.
func (c *Config) Validate() error {
	if c.PageTimeout <= 0 {
		return errors.New("page timeout must be positive")
	}
	if c.LogFile == "" {
		return errors.New("log file path must not be empty")
	}
	if len(c.Locators) == 0 {
		return errors.New("at least one download-button locator is required")
	}
	for _, l := range c.Locators {
		if l.CSS == "" {
			return errors.New("locator " + l.Name + " has an empty selector")
		}
	}
	return nil
}
