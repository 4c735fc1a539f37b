package git

import "strings"

// cleanPhrase is what `git status` prints for a clean work tree
const cleanPhrase = "working tree clean"

// Entry is one changed path
type Entry struct {
	// Code is the two-letter XY porcelain status, e.g. " M" or "??"
	Code string
	Path string
}

// Status is a snapshot of a working tree.
type Status struct {
	Clean bool
	// Entries is empty when the status came from the text fallback
	Entries []Entry
}

func parsePorcelain(out string) Status {
	var entries []Entry
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(line) < 4 {
			entries = append(entries, Entry{Code: strings.TrimSpace(line)})
			continue
		}
		entries = append(entries, Entry{Code: line[:2], Path: line[3:]})
	}
	return Status{Clean: len(entries) == 0, Entries: entries}
}

func isCleanStatusText(out string) bool {
	return strings.Contains(out, cleanPhrase)
}
