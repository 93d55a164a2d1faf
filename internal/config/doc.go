// Package config provides configuration for the MediaFire batch downloader.
// It defines the page-load timeout, log file location, the ordered list of
// download-button locators, and the invalid-page phrase list, with optional
// overrides from a YAML configuration file.
package config
