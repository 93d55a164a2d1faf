// Package links reads the input file of MediaFire URLs, one per line.
package links

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Link is one URL taken from the input file. Ordinal is the 1-based
// position among non-blank lines; Line is the 1-based line number in the
// file, counting blank lines.
type Link struct {
	Ordinal int
	Line    int
	URL     string
}

// ReadFile parses the links file. Blank lines are skipped but still
// advance the line counter so reported line numbers match the file.
func ReadFile(path string) ([]Link, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open links file: %w", err)
	}
	defer f.Close()

	var out []Link
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		url := strings.TrimSpace(scanner.Text())
		if url == "" {
			continue
		}
		out = append(out, Link{
			Ordinal: len(out) + 1,
			Line:    line,
			URL:     url,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read links file: %w", err)
	}
	return out, nil
}
