// Package rewrite renders the final import block and splices it into the
// original source text.
package rewrite

import (
	"sort"
	"strings"

	"github.com/Sumatoshi-tech/fiximports/pkg/importmodel"
)

// Order is the import ordering configuration. First entries sort before
// everything, Last entries after everything; the rest sorts alphabetically.
// An entry matches a module path on exact equality, or as a prefix when the
// entry ends with a dot.
type Order struct {
	First []string
	Last  []string
}

// Section ranks within the ordered block.
const (
	sectionFirst = iota
	sectionMiddle
	sectionLast
)

// Format orders and groups the import lines and renders them as source lines.
// Declarations are partitioned into groups by top-level path segment, with one
// blank line between adjacent groups. Retained declarations re-emit their
// original text; synthesized ones are rendered from their structured fields.
func Format(order Order, lines []importmodel.ImportLine) []string {
	lines = append([]importmodel.ImportLine(nil), lines...)

	sort.SliceStable(lines, func(i, j int) bool {
		return less(order, lines[i].Decl.Path, lines[j].Decl.Path)
	})

	var (
		out     []string
		prevTop string
	)

	for i, line := range lines {
		top := line.Decl.Path.Top()
		if i > 0 && top != prevTop {
			out = append(out, "")
		}

		out = append(out, renderLine(line)...)
		prevTop = top
	}

	return out
}

// less orders two module paths per the Order configuration.
func less(order Order, a, b importmodel.ModulePath) bool {
	sectionA, rankA := classify(order, a)
	sectionB, rankB := classify(order, b)

	if sectionA != sectionB {
		return sectionA < sectionB
	}

	if rankA != rankB {
		return rankA < rankB
	}

	return a < b
}

// classify places a path into its section and its rank within the listed
// entries (alphabetical sorting resolves ties within one rank).
func classify(order Order, path importmodel.ModulePath) (int, int) {
	if rank, ok := matchList(order.First, path); ok {
		return sectionFirst, rank
	}

	if rank, ok := matchList(order.Last, path); ok {
		return sectionLast, rank
	}

	return sectionMiddle, 0
}

// matchList finds the first list entry matching the path. Membership requires
// exact equality, or the entry being a dot-terminated prefix of the path.
func matchList(entries []string, path importmodel.ModulePath) (int, bool) {
	for i, entry := range entries {
		if entry == string(path) {
			return i, true
		}

		if strings.HasSuffix(entry, ".") && strings.HasPrefix(string(path), entry) {
			return i, true
		}
	}

	return 0, false
}

// renderLine renders one declaration with its attached comments.
func renderLine(line importmodel.ImportLine) []string {
	var out []string

	declText := line.Decl.Text
	if declText == "" {
		declText = renderDecl(line.Decl)
	}

	var trailing []string

	for _, comment := range line.Comments {
		switch comment.Position {
		case importmodel.Above:
			out = append(out, strings.Split(comment.Text, "\n")...)
		case importmodel.Right:
			trailing = append(trailing, comment.Text)
		}
	}

	declLines := strings.Split(declText, "\n")
	if len(trailing) > 0 {
		declLines[len(declLines)-1] += " " + strings.Join(trailing, " ")
	}

	return append(out, declLines...)
}

// renderDecl renders a synthesized declaration.
func renderDecl(decl importmodel.ImportDecl) string {
	var b strings.Builder

	b.WriteString("import ")

	if decl.Qualified {
		b.WriteString("qualified ")
	}

	b.WriteString(string(decl.Path))

	if decl.Alias != "" && decl.Alias != string(decl.Path) {
		b.WriteString(" as ")
		b.WriteString(decl.Alias)
	}

	return b.String()
}
