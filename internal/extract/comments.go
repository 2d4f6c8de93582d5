package extract

import (
	"sort"

	"github.com/Sumatoshi-tech/fiximports/pkg/importmodel"
)

// AssociateComments attaches the free comments of the import block to the
// declarations they decorate, as a single left-to-right fold: for each
// declaration, comments ending strictly before its first line become Above
// comments; comments still starting at or before its last line become Right
// comments; anything left carries forward to the next declaration.
//
// No comment is split or reassigned backward. Comments remaining after the
// last declaration are dropped; that is a documented limitation.
func AssociateComments(decls []importmodel.ImportDecl, comments []importmodel.Comment) []importmodel.ImportLine {
	decls = append([]importmodel.ImportDecl(nil), decls...)
	comments = append([]importmodel.Comment(nil), comments...)

	sortByPosition(decls)
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].Span.StartLine < comments[j].Span.StartLine
	})

	lines := make([]importmodel.ImportLine, 0, len(decls))
	rest := comments

	for _, decl := range decls {
		line := importmodel.ImportLine{Decl: decl}

		for len(rest) > 0 && rest[0].Span.EndLine < decl.Span.StartLine {
			comment := rest[0]
			comment.Position = importmodel.Above
			line.Comments = append(line.Comments, comment)
			rest = rest[1:]
		}

		for len(rest) > 0 && rest[0].Span.StartLine <= decl.Span.EndLine {
			comment := rest[0]
			comment.Position = importmodel.Right
			line.Comments = append(line.Comments, comment)
			rest = rest[1:]
		}

		lines = append(lines, line)
	}

	return lines
}
