package rewrite

import "strings"

// Splice replaces exactly the lines [rng.Start, rng.End) of the original text
// with the block lines. Every byte outside that span, including its exact
// line endings, is preserved. The substitution is atomic: when the range does
// not fit the text, the original is returned unmodified.
func Splice(original string, start, end int, block []string) string {
	lines := splitAfterLines(original)

	if start < 0 || end < start || end > len(lines) || start > len(lines) {
		return original
	}

	eol := detectEOL(original)

	var b strings.Builder

	for _, line := range lines[:start] {
		b.WriteString(line)
	}

	for i, line := range block {
		b.WriteString(line)

		// The block always ends in a line terminator unless it lands at the
		// very end of a file that has none.
		if i < len(block)-1 || end < len(lines) || endsWithEOL(original) || original == "" {
			b.WriteString(eol)
		}
	}

	for _, line := range lines[end:] {
		b.WriteString(line)
	}

	return b.String()
}

// splitAfterLines splits text into lines, each keeping its terminator.
// A trailing line without a terminator is kept as-is.
func splitAfterLines(text string) []string {
	if text == "" {
		return nil
	}

	var lines []string

	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			lines = append(lines, text)
			break
		}

		lines = append(lines, text[:i+1])

		text = text[i+1:]
		if text == "" {
			break
		}
	}

	return lines
}

// detectEOL picks the line terminator for new lines: CRLF when the original
// uses it, LF otherwise.
func detectEOL(text string) string {
	if strings.Contains(text, "\r\n") {
		return "\r\n"
	}

	return "\n"
}

func endsWithEOL(text string) bool {
	return strings.HasSuffix(text, "\n")
}
