// Package session drives the download run: the per-link processing
// routine, the operator-paced link loop, and the shutdown confirmation
// that keeps the browser alive until every download has finished.
package session
