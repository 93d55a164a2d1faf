// Package log provides session logging for the MediaFire batch downloader.
// It builds a slog.Logger that writes INFO and above to the console and
// DEBUG and above to the append-only session log file.
package log
