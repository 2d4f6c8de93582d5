// Package engine wires extraction, resolution, and rewriting into the one
// operation fiximports performs: making a module's import block match its
// qualified-name usage.
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/Sumatoshi-tech/fiximports/internal/extract"
	"github.com/Sumatoshi-tech/fiximports/internal/locate"
	"github.com/Sumatoshi-tech/fiximports/internal/registry"
	"github.com/Sumatoshi-tech/fiximports/internal/resolve"
	"github.com/Sumatoshi-tech/fiximports/internal/rewrite"
	"github.com/Sumatoshi-tech/fiximports/pkg/alg/mapx"
	"github.com/Sumatoshi-tech/fiximports/pkg/config"
	"github.com/Sumatoshi-tech/fiximports/pkg/importmodel"
)

// Deps are the injected external collaborators: the local filesystem search
// and the package-registry query.
type Deps struct {
	Locator locate.Locator
	Lister  registry.Lister
}

// Result is a successful fix.
type Result struct {
	// Text is the full rewritten source. Equal to the input when no edit was
	// required.
	Text string
	// Added and Removed list the module paths of new and dropped imports.
	Added   []importmodel.ModulePath
	Removed []importmodel.ModulePath
	// Diagnostics carries non-fatal registry parse complaints.
	Diagnostics []string
	// Changed reports whether Text differs from the input.
	Changed bool
}

// ResolutionError reports every needed qualification that matched zero
// candidates. The operation is all-or-nothing: on resolution failure the
// original text is left untouched.
type ResolutionError struct {
	Quals []importmodel.Qualification
}

func (e *ResolutionError) Error() string {
	parts := make([]string, 0, len(e.Quals))
	for _, qual := range e.Quals {
		parts = append(parts, string(qual))
	}

	return "unresolved qualifications: " + strings.Join(parts, ", ")
}

// Fix rewrites the import block of one parsed module so it matches the
// module's qualified-name usage. It adds imports for used-but-missing
// qualifications and drops declarations no longer referenced; when neither is
// necessary the original text is returned unchanged.
//
// The candidate index is built fresh per invocation and only when at least
// one needed qualification has no local candidate; the registry is never
// queried speculatively.
func Fix(ctx context.Context, cfg *config.Config, filePath string, mod importmodel.Module, text string, deps Deps) (*Result, error) {
	ex := extract.Extract(mod, importmodel.Qualification(cfg.ImplicitQualification))

	result := &Result{Text: text}

	if len(ex.Needed) == 0 && len(ex.Dropped) == 0 {
		return result, nil
	}

	newDecls, err := resolveNeeded(ctx, cfg, filePath, ex.Needed, deps, result)
	if err != nil {
		return nil, err
	}

	for _, decl := range ex.Dropped {
		result.Removed = append(result.Removed, decl.Path)
	}

	rng := widenToLeadingComments(ex.Block, mod.Comments)

	lines := extract.AssociateComments(ex.Retained, commentsWithin(mod.Comments, rng))
	for _, decl := range newDecls {
		lines = append(lines, importmodel.ImportLine{Decl: decl})
	}

	order := rewrite.Order{First: cfg.ImportOrderFirst, Last: cfg.ImportOrderLast}
	block := rewrite.Format(order, lines)
	block = padBlock(block, text, rng)

	result.Text = rewrite.Splice(text, rng.Start, rng.End, block)
	result.Changed = result.Text != text

	return result, nil
}

// resolveNeeded maps every needed qualification to a new import declaration,
// consulting the local locator first and the package index lazily. All
// unresolved qualifications are reported together in one ResolutionError.
func resolveNeeded(ctx context.Context, cfg *config.Config, filePath string, needed []importmodel.Qualification, deps Deps, result *Result) ([]importmodel.ImportDecl, error) {
	if len(needed) == 0 {
		return nil, nil
	}

	locals := make(map[importmodel.Qualification][]importmodel.Candidate, len(needed))
	missing := false

	for _, qual := range needed {
		locals[qual] = deps.Locator.Find(qual)
		if len(locals[qual]) == 0 {
			missing = true
		}
	}

	var index registry.Index

	if missing {
		var err error

		index, err = buildIndex(ctx, deps.Lister, result)
		if err != nil {
			return nil, err
		}
	}

	prio := resolve.Priority{
		ModuleHigh:  toModulePaths(cfg.PrioModuleHigh),
		PackageHigh: cfg.PrioPackageHigh,
	}

	var (
		decls      []importmodel.ImportDecl
		unresolved []importmodel.Qualification
	)

	for _, qual := range needed {
		cands := append(locals[qual], index.Lookup(qual)...)

		winner, ok := resolve.Choose(prio, filePath, cands)
		if !ok {
			unresolved = append(unresolved, qual)
			continue
		}

		decl := importmodel.ImportDecl{Path: winner.Path, Qualified: true}
		if string(qual) != string(winner.Path) {
			decl.Alias = string(qual)
		}

		decls = append(decls, decl)
		result.Added = append(result.Added, winner.Path)
	}

	if len(unresolved) > 0 {
		return nil, &ResolutionError{Quals: unresolved}
	}

	return decls, nil
}

// buildIndex queries the registry and builds the candidate index, collecting
// parse diagnostics into the result.
func buildIndex(ctx context.Context, lister registry.Lister, result *Result) (registry.Index, error) {
	listing, err := lister.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query package registry: %w", err)
	}

	defer listing.Close()

	// A malformed tag usually repeats on every record of the dump; one
	// diagnostic per distinct complaint is enough.
	records, diags := registry.Parse(listing)
	result.Diagnostics = mapx.Unique(append(result.Diagnostics, diags...))

	return registry.BuildIndex(records), nil
}

// widenToLeadingComments grows the block upward over full-line comments
// sitting directly above the first declaration, so they travel with the
// import they decorate when the block is reordered. A blank line breaks the
// chain, and a comment trailing code on its line stays where it is: pulling
// that line into the block would splice away the code.
func widenToLeadingComments(block importmodel.BlockRange, comments []importmodel.Comment) importmodel.BlockRange {
	if block.Empty() {
		return block
	}

	for again := true; again; {
		again = false

		for _, comment := range comments {
			if comment.OwnLine && comment.Span.EndLine == block.Start-1 {
				block.Start = comment.Span.StartLine
				again = true
			}
		}
	}

	return block
}

// commentsWithin confines the free comments to the import block's line range.
func commentsWithin(comments []importmodel.Comment, block importmodel.BlockRange) []importmodel.Comment {
	var out []importmodel.Comment

	for _, comment := range comments {
		if comment.Span.StartLine >= block.Start && comment.Span.EndLine < block.End {
			out = append(out, comment)
		}
	}

	return out
}

// padBlock separates a freshly inserted block from non-blank neighbors. An
// existing block keeps its surroundings as they were.
func padBlock(block []string, text string, rng importmodel.BlockRange) []string {
	if !rng.Empty() || len(block) == 0 {
		return block
	}

	lines := strings.Split(text, "\n")

	if rng.Start > 0 && rng.Start-1 < len(lines) && strings.TrimSpace(lines[rng.Start-1]) != "" {
		block = append([]string{""}, block...)
	}

	if rng.Start < len(lines) && strings.TrimSpace(lines[rng.Start]) != "" {
		block = append(block, "")
	}

	return block
}

func toModulePaths(paths []string) []importmodel.ModulePath {
	out := make([]importmodel.ModulePath, 0, len(paths))
	for _, p := range paths {
		out = append(out, importmodel.ModulePath(p))
	}

	return out
}
