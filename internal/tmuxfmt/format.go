package tmuxfmt

import "strings"

// FieldSeparator delimits fields in tmux format strings. ASCII Unit
// Separator avoids collision with window titles and pane content.
const FieldSeparator = "\x1f"

// Join builds a tmux format string with the canonical delimiter.
func Join(fields ...string) string {
	return strings.Join(fields, FieldSeparator)
}

// SplitLine splits a formatted reply line, accepting a tab fallback for
// tmux builds configured with a different default separator.
func SplitLine(line string, maxParts int) []string {
	if maxParts <= 0 {
		return nil
	}
	if strings.Contains(line, FieldSeparator) {
		return strings.SplitN(line, FieldSeparator, maxParts)
	}
	if strings.Contains(line, "\t") {
		return strings.SplitN(line, "\t", maxParts)
	}
	return []string{line}
}
