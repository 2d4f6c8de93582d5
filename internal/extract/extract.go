// Package extract computes needed, existing, and unused qualifications from a
// parsed module, plus the source line range of its import block.
package extract

import (
	"sort"

	"github.com/Sumatoshi-tech/fiximports/pkg/alg/mapx"
	"github.com/Sumatoshi-tech/fiximports/pkg/importmodel"
)

// Extraction is the result of analyzing one parsed module.
type Extraction struct {
	// Needed lists referenced qualifications no existing import provides,
	// in ascending order.
	Needed []importmodel.Qualification
	// Retained lists existing declarations to keep, in file order.
	Retained []importmodel.ImportDecl
	// Dropped lists existing declarations whose qualification is no longer
	// referenced, in file order.
	Dropped []importmodel.ImportDecl
	// Block is the half-open line range holding the import declarations.
	Block importmodel.BlockRange
}

// Extract never fails: a module with no imports and no qualified usage yields
// an empty extraction with an empty block range.
//
// The implicit qualification (the language's always-in-scope namespace) is
// never reported unused, because removing it changes program semantics.
func Extract(mod importmodel.Module, implicit importmodel.Qualification) Extraction {
	referenced := make(map[importmodel.Qualification]struct{}, len(mod.Refs))
	for _, ref := range mod.Refs {
		referenced[ref.Qual] = struct{}{}
	}

	provided := make(map[importmodel.Qualification]struct{}, len(mod.Imports))
	for _, decl := range mod.Imports {
		provided[decl.Provides()] = struct{}{}
	}

	needed := make(map[importmodel.Qualification]struct{})

	for qual := range referenced {
		if _, ok := provided[qual]; !ok {
			needed[qual] = struct{}{}
		}
	}

	ex := Extraction{
		Needed: mapx.SortedKeys(needed),
		Block:  blockRange(mod),
	}

	for _, decl := range mod.Imports {
		if retainDecl(decl, referenced, implicit) {
			ex.Retained = append(ex.Retained, decl)
		} else {
			ex.Dropped = append(ex.Dropped, decl)
		}
	}

	return ex
}

// retainDecl decides whether an existing declaration survives. Unqualified
// imports are always kept: their effect on the module's unqualified names
// cannot be determined from qualified usage alone. Qualified imports are kept
// only when their qualification is referenced or is the implicit one.
func retainDecl(decl importmodel.ImportDecl, referenced map[importmodel.Qualification]struct{}, implicit importmodel.Qualification) bool {
	if !decl.Qualified {
		return true
	}

	qual := decl.Provides()
	if qual == implicit {
		return true
	}

	_, ok := referenced[qual]

	return ok
}

// blockRange computes the half-open line interval of the import block: from
// the first declaration's line to one past the last declaration's line.
// Absent imports, the empty range sits immediately after the module header,
// or at line 0 for an empty module.
func blockRange(mod importmodel.Module) importmodel.BlockRange {
	if len(mod.Imports) == 0 {
		return importmodel.BlockRange{Start: mod.HeaderEnd, End: mod.HeaderEnd}
	}

	start := mod.Imports[0].Span.StartLine
	end := mod.Imports[0].Span.EndLine

	for _, decl := range mod.Imports[1:] {
		if decl.Span.StartLine < start {
			start = decl.Span.StartLine
		}

		if decl.Span.EndLine > end {
			end = decl.Span.EndLine
		}
	}

	return importmodel.BlockRange{Start: start, End: end + 1}
}

// sortByPosition orders declarations by their starting line.
func sortByPosition(decls []importmodel.ImportDecl) {
	sort.SliceStable(decls, func(i, j int) bool {
		return decls[i].Span.StartLine < decls[j].Span.StartLine
	})
}
