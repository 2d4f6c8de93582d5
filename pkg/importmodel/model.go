// Package importmodel defines the data model shared by the import-fixing
// pipeline: qualifications, module paths, candidates, declarations, comments,
// and source spans.
package importmodel

import "strings"

// Qualification is the short dotted name used at a reference site to name a
// module, e.g. "Map" in "Map.insert" or "Data.Map" in "Data.Map.insert".
// A Qualification is never empty.
type Qualification string

// Segments splits the qualification on dots.
func (q Qualification) Segments() []string {
	return strings.Split(string(q), ".")
}

// ModulePath is the full dot-separated identifier naming a source module.
// It always has at least one segment.
type ModulePath string

// Segments splits the path on dots.
func (p ModulePath) Segments() []string {
	return strings.Split(string(p), ".")
}

// SegmentCount returns the number of dot-separated segments.
func (p ModulePath) SegmentCount() int {
	return strings.Count(string(p), ".") + 1
}

// Top returns the first segment of the path, used for import grouping.
func (p ModulePath) Top() string {
	if i := strings.IndexByte(string(p), '.'); i >= 0 {
		return string(p)[:i]
	}

	return string(p)
}

// ProvenanceKind discriminates where a candidate comes from.
type ProvenanceKind int

// Candidate provenance kinds.
const (
	// ProvenanceLocal marks a module found in the local project tree.
	ProvenanceLocal ProvenanceKind = iota
	// ProvenancePackage marks a module exposed by an installed package.
	ProvenancePackage
)

// Provenance records whether a candidate comes from the local project tree or
// from an installed package, and which package when the latter.
type Provenance struct {
	Package string
	Kind    ProvenanceKind
}

// Local is the provenance of every project-local candidate.
func Local() Provenance {
	return Provenance{Kind: ProvenanceLocal}
}

// Package returns the provenance of a candidate exposed by the named package.
func Package(name string) Provenance {
	return Provenance{Kind: ProvenancePackage, Package: name}
}

// Candidate is a proposed resolution for a Qualification. Dir is the
// slash-separated directory of a local hit relative to its include directory;
// it is empty for package candidates and feeds path-affinity ranking.
type Candidate struct {
	Path       ModulePath
	Dir        string
	Provenance Provenance
}

// Span is an inclusive 0-based line interval covering a syntactic element.
type Span struct {
	StartLine int
	EndLine   int
}

// ImportDecl is one import declaration as parsed from the source file.
// Text holds the raw source slice; declarations the user wrote are re-emitted
// verbatim, so Text is authoritative for retained declarations. Synthesized
// declarations leave Text empty and are rendered from the structured fields.
type ImportDecl struct {
	Path      ModulePath
	Alias     string
	Text      string
	Qualified bool
	Span      Span
}

// Provides returns the name under which the imported module can be referenced
// qualified: the alias when present, the full path otherwise.
func (d ImportDecl) Provides() Qualification {
	if d.Alias != "" {
		return Qualification(d.Alias)
	}

	return Qualification(d.Path)
}

// CommentPosition tags where a comment sits relative to its import.
type CommentPosition int

// Comment positions.
const (
	// Above comments occupy the lines before the declaration.
	Above CommentPosition = iota
	// Right comments trail the declaration on its last line.
	Right
)

// Comment is a free comment inside the import block. OwnLine reports that
// nothing but whitespace precedes the comment on its first line; only such
// comments can belong to the import below them.
type Comment struct {
	Text     string
	Span     Span
	Position CommentPosition
	OwnLine  bool
}

// ImportLine pairs a declaration with the comments that decorate it.
type ImportLine struct {
	Decl     ImportDecl
	Comments []Comment
}

// BlockRange is the half-open line interval [Start, End) holding all import
// declarations of a module.
type BlockRange struct {
	Start int
	End   int
}

// Empty reports whether the range covers no lines.
func (r BlockRange) Empty() bool {
	return r.End <= r.Start
}

// Ref is one qualified-name occurrence in the module body.
type Ref struct {
	Qual Qualification
	Span Span
}

// Module is the parsed view of one source file, as produced by the front-end:
// qualified-name occurrences, import declarations, and free comments, all with
// source spans.
type Module struct {
	Name      ModulePath
	HeaderEnd int
	Imports   []ImportDecl
	Comments  []Comment
	Refs      []Ref
}
