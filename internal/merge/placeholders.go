package merge

import (
	"fmt"
	"regexp"
)

// Delimiters is the start/end marker pair that bounds placeholder names in
// template text. Both markers are treated as literal text, never as pattern
// syntax.
type Delimiters struct {
	Start string
	End   string
}

// DefaultDelimiters returns the conventional {{name}} marker pair.
func DefaultDelimiters() Delimiters {
	return Delimiters{Start: "{{", End: "}}"}
}

// Validate checks that both markers are non-empty.
func (d Delimiters) Validate() error {
	if d.Start == "" || d.End == "" {
		return fmt.Errorf("invalid delimiters: start and end markers must be non-empty")
	}
	return nil
}

// Wrap returns name surrounded by the marker pair, i.e. the literal token a
// template would contain for that placeholder.
func (d Delimiters) Wrap(name string) string {
	return d.Start + name + d.End
}

// ExtractPlaceholders scans text for non-overlapping, shortest-match
// substrings bounded by the delimiter pair and returns the names as an
// ordered list with duplicates removed, preserving first-occurrence order.
//
// The match is lazy and spans newlines, so multi-line tokens are found.
// Delimiter characters are escaped before matching, so marker pairs like
// "${" / "}" or "[[" / "]]" work as plain text.
func ExtractPlaceholders(text string, d Delimiters) []string {
	pattern := regexp.MustCompile(`(?s)` + regexp.QuoteMeta(d.Start) + `(.*?)` + regexp.QuoteMeta(d.End))

	var names []string
	seen := make(map[string]bool)
	for _, m := range pattern.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
