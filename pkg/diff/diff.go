package diff

import (
	"bytes"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	maxDiffLines    = 10000
	truncateMessage = "... (diff truncated, exceeds 10,000 lines) ..."
)

// Unified renders a line-level diff of expected and actual with ---/+++
// headers, or "" when the content is identical. Diffs longer than 10,000
// lines are truncated with a marker.
func Unified(expected, actual []byte, expectedLabel, actualLabel string) string {
	if bytes.Equal(expected, actual) {
		return ""
	}

	dmp := diffmatchpatch.New()
	expectedChars, actualChars, lines := dmp.DiffLinesToChars(string(expected), string(actual))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(expectedChars, actualChars, false), lines)

	var buf strings.Builder
	buf.WriteString("--- " + expectedLabel + "\n")
	buf.WriteString("+++ " + actualLabel + "\n")

	written := 2
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range splitLines(d.Text) {
			if written >= maxDiffLines {
				buf.WriteString(truncateMessage + "\n")
				return buf.String()
			}
			buf.WriteString(prefix + line + "\n")
			written++
		}
	}

	return buf.String()
}

// splitLines drops the empty element after a trailing newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
