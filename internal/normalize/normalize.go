// Package normalize cleans up extracted text before it reaches callers.
package normalize

import "strings"

// Clean right-trims every line, collapses runs of two or more blank lines
// into a single blank line, and strips leading and trailing blank lines.
// Leading indentation on non-blank lines is preserved. Idempotent.
func Clean(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	prevBlank := false
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t\r\f\v")
		blank := trimmed == ""
		if blank && prevBlank {
			continue
		}
		out = append(out, trimmed)
		prevBlank = blank
	}
	return strings.Trim(strings.Join(out, "\n"), "\n")
}
