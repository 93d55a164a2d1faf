package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the optional configuration file name, searched in
// the current directory and then the XDG config directory.
const DefaultConfigFile = ".mfdl.yaml"

// ErrConfigNotFound is returned when an explicitly requested
// configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML shape of the optional configuration file. Every field
// is optional; zero values leave the corresponding default untouched.
type File struct {
	TimeoutSeconds int       `yaml:"timeout_seconds"`
	LogFile        string    `yaml:"log_file"`
	ExecPath       string    `yaml:"exec_path"`
	ProfilePath    string    `yaml:"profile_path"`
	Locators       []Locator `yaml:"locators"`
	InvalidPhrases []string  `yaml:"invalid_phrases"`
}

// LoadFile reads and parses a configuration file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	return &cf, nil
}

// FindFile locates the configuration file. An explicit path is used as-is
// if it exists; otherwise the current directory and the XDG config
// directory are searched. Returns empty string when nothing is found.
func FindFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	p := filepath.Join(xdg.ConfigHome, "mfdl", DefaultConfigFile)
	if _, err := os.Stat(p); err == nil {
		return p
	}

	return ""
}

// Apply overlays non-zero file values onto the configuration.
func (c *Config) Apply(cf *File) {
	if cf == nil {
		return
	}
	if cf.TimeoutSeconds > 0 {
		c.PageTimeout = time.Duration(cf.TimeoutSeconds) * time.Second
	}
	if cf.LogFile != "" {
		c.LogFile = cf.LogFile
	}
	if cf.ExecPath != "" {
		c.ExecPath = cf.ExecPath
	}
	if cf.ProfilePath != "" {
		c.ProfilePath = cf.ProfilePath
	}
	if len(cf.Locators) > 0 {
		c.Locators = cf.Locators
	}
	if len(cf.InvalidPhrases) > 0 {
		c.InvalidPhrases = cf.InvalidPhrases
	}
}
