// Package main provides the entry point for the MediaFire batch
// downloader CLI.
package main

func main() {
	Execute()
}
