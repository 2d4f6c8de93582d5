// Package parse is a best-effort, line-oriented front-end for the Haskell
// surface: it extracts the module header, import declarations, free comments,
// and qualified-name occurrences, each with source line spans. It never fails;
// anything it does not recognize is simply not a reference or an import.
package parse

import (
	"regexp"
	"strings"

	"github.com/Sumatoshi-tech/fiximports/pkg/importmodel"
)

// comment is an internal comment with the start column of its first line,
// needed to strip trailing comments from import declaration text.
type comment struct {
	text      string
	startLine int
	startCol  int
	endLine   int
	ownLine   bool
}

// qualifiedRef matches a dotted chain of capitalized segments followed by the
// referenced name: an identifier, a capitalized constructor, or an operator.
// Group 1 is the chain including its trailing dot.
var qualifiedRef = regexp.MustCompile(
	`((?:[A-Z][A-Za-z0-9_']*\.)+)([a-z_][A-Za-z0-9_']*|[A-Z][A-Za-z0-9_']*|[!#$%&*+/<=>?@\\^|~:-]+)`,
)

// identChar reports whether b can appear inside an identifier.
func identChar(b byte) bool {
	return b == '_' || b == '\'' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// Parse scans one source file.
func Parse(text string) importmodel.Module {
	rawLines := splitLines(text)
	codeLines, comments := stripLines(rawLines)

	mod := importmodel.Module{}
	mod.Name, mod.HeaderEnd = moduleHeader(codeLines)

	declLines := make([]bool, len(rawLines))
	mod.Imports = scanImports(rawLines, codeLines, comments, declLines)

	mod.Comments = freeComments(comments, mod.Imports)
	mod.Refs = scanRefs(codeLines, declLines, mod.HeaderEnd)

	return mod
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	// A trailing terminator does not open a final empty line.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// stripLines blanks comments and literals out of every line, preserving
// column positions, and collects the comments with their spans.
func stripLines(rawLines []string) ([]string, []comment) {
	var (
		comments []comment
		current  *comment
	)

	codeLines := make([]string, len(rawLines))
	blockDepth := 0

	for lineNo, raw := range rawLines {
		code := []byte(raw)

		for i := 0; i < len(raw); i++ {
			if blockDepth > 0 {
				current.text += string(raw[i])

				switch {
				case strings.HasPrefix(raw[i:], "-}"):
					blockDepth--
					current.text += "}"

					if blockDepth == 0 {
						current.endLine = lineNo
						comments = append(comments, *current)
						current = nil
					}

					code[i], code[i+1] = ' ', ' '
					i++
				case strings.HasPrefix(raw[i:], "{-"):
					blockDepth++
					current.text += "-"

					code[i], code[i+1] = ' ', ' '
					i++
				default:
					code[i] = ' '
				}

				continue
			}

			switch {
			case strings.HasPrefix(raw[i:], "{-"):
				blockDepth++
				current = &comment{
					text:      "{",
					startLine: lineNo,
					startCol:  i,
					ownLine:   blankBefore(code, i),
				}
				code[i] = ' '
			case lineCommentAt(raw, i):
				comments = append(comments, comment{
					text:      raw[i:],
					startLine: lineNo,
					startCol:  i,
					endLine:   lineNo,
					ownLine:   blankBefore(code, i),
				})

				for j := i; j < len(raw); j++ {
					code[j] = ' '
				}

				i = len(raw)
			case raw[i] == '"':
				i = blankString(raw, code, i)
			case raw[i] == '\'' && (i == 0 || !identChar(raw[i-1])):
				i = blankChar(raw, code, i)
			}
		}

		if blockDepth > 0 {
			current.text += "\n"
		}

		codeLines[lineNo] = string(code)
	}

	// An unterminated block comment runs to end of file.
	if current != nil {
		current.text = strings.TrimSuffix(current.text, "\n")
		current.endLine = len(rawLines) - 1
		comments = append(comments, *current)
	}

	return codeLines, comments
}

// blankBefore reports whether only whitespace precedes position i on the
// blanked code line. Earlier comments on the line are already blanked, so
// this sees real code only.
func blankBefore(code []byte, i int) bool {
	return strings.TrimSpace(string(code[:i])) == ""
}

// lineCommentAt reports whether a "--" line comment starts at position i.
// Two or more dashes followed by an operator symbol form an operator, not a
// comment.
func lineCommentAt(raw string, i int) bool {
	if !strings.HasPrefix(raw[i:], "--") {
		return false
	}

	rest := strings.TrimLeft(raw[i:], "-")
	if rest == "" {
		return true
	}

	return !strings.ContainsRune(`!#$%&*+./<=>?@\^|~:`, rune(rest[0]))
}

// blankString blanks a string literal starting at i, honoring backslash
// escapes; an unterminated literal runs to end of line.
func blankString(raw string, code []byte, i int) int {
	code[i] = ' '

	for j := i + 1; j < len(raw); j++ {
		switch raw[j] {
		case '\\':
			code[j] = ' '

			if j+1 < len(raw) {
				code[j+1] = ' '
				j++
			}
		case '"':
			code[j] = ' '
			return j
		default:
			code[j] = ' '
		}
	}

	return len(raw)
}

// blankChar blanks a character literal when one actually starts at i;
// otherwise the apostrophe is left alone.
func blankChar(raw string, code []byte, i int) int {
	end := i + 2

	if i+1 < len(raw) && raw[i+1] == '\\' {
		for end = i + 2; end < len(raw) && raw[end] != '\''; end++ {
		}
	}

	if end >= len(raw) || raw[end] != '\'' {
		return i
	}

	for j := i; j <= end; j++ {
		code[j] = ' '
	}

	return end
}

// moduleHeader finds the module name and the line index just past the header
// (the line after the one containing the closing "where"). Returns 0 for a
// module without a header.
func moduleHeader(codeLines []string) (importmodel.ModulePath, int) {
	start := -1

	var name importmodel.ModulePath

	for lineNo, code := range codeLines {
		fields := strings.Fields(code)
		if len(fields) == 0 {
			continue
		}

		if fields[0] != "module" {
			// The header can only be preceded by blanks and pragmas.
			if start < 0 && !strings.HasPrefix(fields[0], "{-#") {
				return "", 0
			}

			continue
		}

		start = lineNo

		if len(fields) > 1 {
			name = importmodel.ModulePath(strings.TrimRight(fields[1], "("))
		}

		break
	}

	if start < 0 {
		return "", 0
	}

	for lineNo := start; lineNo < len(codeLines); lineNo++ {
		if containsWord(codeLines[lineNo], "where") {
			return name, lineNo + 1
		}
	}

	return name, start + 1
}

// containsWord reports whether code contains word delimited by non-identifier
// characters.
func containsWord(code, word string) bool {
	for i := 0; i+len(word) <= len(code); i++ {
		j := strings.Index(code[i:], word)
		if j < 0 {
			return false
		}

		at := i + j
		before := at == 0 || !identChar(code[at-1])
		after := at+len(word) == len(code) || !identChar(code[at+len(word)])

		if before && after {
			return true
		}

		i = at
	}

	return false
}

// scanImports collects import declarations with their raw text and spans,
// marking consumed lines in declLines. A declaration continues over indented
// follow-up lines and over anything inside unbalanced parentheses.
func scanImports(rawLines, codeLines []string, comments []comment, declLines []bool) []importmodel.ImportDecl {
	var decls []importmodel.ImportDecl

	for lineNo := 0; lineNo < len(rawLines); lineNo++ {
		code := codeLines[lineNo]
		if !strings.HasPrefix(code, "import") || !boundaryAfter(code, len("import")) {
			continue
		}

		start := lineNo
		depth := parenDelta(code)
		joined := code

		for lineNo+1 < len(rawLines) {
			next := codeLines[lineNo+1]
			indented := strings.TrimSpace(next) != "" && (next[0] == ' ' || next[0] == '\t')

			if depth <= 0 && !indented {
				break
			}

			lineNo++
			depth += parenDelta(next)
			joined += " " + next
		}

		for i := start; i <= lineNo; i++ {
			declLines[i] = true
		}

		decl := parseDeclHead(joined)
		decl.Span = importmodel.Span{StartLine: start, EndLine: lineNo}
		decl.Text = declText(rawLines, codeLines, comments, start, lineNo)

		decls = append(decls, decl)
	}

	return decls
}

func boundaryAfter(code string, i int) bool {
	return i >= len(code) || !identChar(code[i])
}

func parenDelta(code string) int {
	return strings.Count(code, "(") - strings.Count(code, ")")
}

// parseDeclHead parses "import [qualified] Path [as Alias] …" from the
// blanked declaration text.
func parseDeclHead(joined string) importmodel.ImportDecl {
	decl := importmodel.ImportDecl{}

	fields := strings.Fields(joined)
	i := 1

	if i < len(fields) && fields[i] == "qualified" {
		decl.Qualified = true
		i++
	}

	if i < len(fields) {
		decl.Path = importmodel.ModulePath(trimAtParen(fields[i]))
		i++
	}

	if i+1 < len(fields) && fields[i] == "as" {
		decl.Alias = trimAtParen(fields[i+1])
	}

	return decl
}

func trimAtParen(s string) string {
	if i := strings.IndexByte(s, '('); i >= 0 {
		return s[:i]
	}

	return s
}

// declText reconstructs the declaration's raw text, with a comment trailing
// on its last line stripped; the comment stays in the free-comment stream and
// is re-attached by the comment associator. A comment followed by more code
// on the same line is left in place.
func declText(rawLines, codeLines []string, comments []comment, start, end int) string {
	lines := append([]string(nil), rawLines[start:end+1]...)
	lastCode := codeLines[end]

	for _, c := range comments {
		if c.startLine != end || c.startCol > len(lines[end-start]) {
			continue
		}

		if strings.TrimSpace(lastCode[c.startCol:]) != "" {
			continue
		}

		lines[end-start] = strings.TrimRight(lines[end-start][:c.startCol], " \t")
	}

	return strings.Join(lines, "\n")
}

// freeComments converts internal comments to model comments, dropping the
// ones buried inside a declaration's span; a comment starting on a
// declaration's last line survives as its trailing comment.
func freeComments(comments []comment, decls []importmodel.ImportDecl) []importmodel.Comment {
	var out []importmodel.Comment

	for _, c := range comments {
		buried := false

		for _, decl := range decls {
			if c.startLine >= decl.Span.StartLine && c.startLine < decl.Span.EndLine {
				buried = true
				break
			}
		}

		if buried {
			continue
		}

		out = append(out, importmodel.Comment{
			Text:    c.text,
			Span:    importmodel.Span{StartLine: c.startLine, EndLine: c.endLine},
			OwnLine: c.ownLine,
		})
	}

	return out
}

// scanRefs finds qualified-name occurrences in body lines: everything past
// the module header that is not part of an import declaration.
func scanRefs(codeLines []string, declLines []bool, headerEnd int) []importmodel.Ref {
	var refs []importmodel.Ref

	for lineNo := headerEnd; lineNo < len(codeLines); lineNo++ {
		if declLines[lineNo] {
			continue
		}

		code := codeLines[lineNo]
		if strings.HasPrefix(code, "#") {
			// Preprocessor line; not module code.
			continue
		}

		for _, match := range qualifiedRef.FindAllStringSubmatchIndex(code, -1) {
			start := match[0]
			if start > 0 && (identChar(code[start-1]) || code[start-1] == '.') {
				continue
			}

			chain := code[match[2]:match[3]]

			refs = append(refs, importmodel.Ref{
				Qual: importmodel.Qualification(strings.TrimSuffix(chain, ".")),
				Span: importmodel.Span{StartLine: lineNo, EndLine: lineNo},
			})
		}
	}

	return refs
}
