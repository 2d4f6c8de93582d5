package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/fiximports/pkg/importmodel"
)

func qualifiedDecl(path importmodel.ModulePath, alias string, start, end int) importmodel.ImportDecl {
	return importmodel.ImportDecl{
		Path:      path,
		Alias:     alias,
		Qualified: true,
		Span:      importmodel.Span{StartLine: start, EndLine: end},
	}
}

func refs(quals ...importmodel.Qualification) []importmodel.Ref {
	out := make([]importmodel.Ref, 0, len(quals))
	for _, q := range quals {
		out = append(out, importmodel.Ref{Qual: q})
	}

	return out
}

func TestExtractNeeded(t *testing.T) {
	t.Parallel()

	mod := importmodel.Module{
		Name:      "Main",
		HeaderEnd: 1,
		Imports: []importmodel.ImportDecl{
			qualifiedDecl("Data.Map", "Map", 2, 2),
		},
		Refs: refs("Map", "Set", "Text"),
	}

	ex := Extract(mod, "Prelude")

	assert.Equal(t, []importmodel.Qualification{"Set", "Text"}, ex.Needed)
	require.Len(t, ex.Retained, 1)
	assert.Empty(t, ex.Dropped)
}

func TestExtractUnusedDropped(t *testing.T) {
	t.Parallel()

	mod := importmodel.Module{
		Name:      "Main",
		HeaderEnd: 1,
		Imports: []importmodel.ImportDecl{
			qualifiedDecl("Data.Map", "Map", 2, 2),
			qualifiedDecl("Data.Set", "Set", 3, 3),
		},
		Refs: refs("Map"),
	}

	ex := Extract(mod, "Prelude")

	assert.Empty(t, ex.Needed)
	require.Len(t, ex.Dropped, 1)
	assert.Equal(t, importmodel.ModulePath("Data.Set"), ex.Dropped[0].Path)
}

func TestExtractImplicitNeverUnused(t *testing.T) {
	t.Parallel()

	mod := importmodel.Module{
		Name:      "Main",
		HeaderEnd: 1,
		Imports: []importmodel.ImportDecl{
			qualifiedDecl("Prelude", "", 2, 2),
		},
	}

	// Prelude is apparently unreferenced but removing it changes semantics.
	ex := Extract(mod, "Prelude")

	assert.Empty(t, ex.Dropped)
	require.Len(t, ex.Retained, 1)
}

func TestExtractUnqualifiedAlwaysRetained(t *testing.T) {
	t.Parallel()

	mod := importmodel.Module{
		Name:      "Main",
		HeaderEnd: 1,
		Imports: []importmodel.ImportDecl{
			{Path: "Control.Monad", Span: importmodel.Span{StartLine: 2, EndLine: 2}},
		},
	}

	ex := Extract(mod, "Prelude")

	require.Len(t, ex.Retained, 1)
	assert.Empty(t, ex.Dropped)
}

func TestExtractUnqualifiedProvidesQualification(t *testing.T) {
	t.Parallel()

	// A plain import also makes the module referenceable under its full path,
	// so the reference is not "needed".
	mod := importmodel.Module{
		Name:      "Main",
		HeaderEnd: 1,
		Imports: []importmodel.ImportDecl{
			{Path: "Data.Map", Span: importmodel.Span{StartLine: 2, EndLine: 2}},
		},
		Refs: refs("Data.Map"),
	}

	ex := Extract(mod, "Prelude")
	assert.Empty(t, ex.Needed)
}

func TestExtractBlockRange(t *testing.T) {
	t.Parallel()

	t.Run("spans_first_to_last_import", func(t *testing.T) {
		t.Parallel()

		mod := importmodel.Module{
			Name:      "Main",
			HeaderEnd: 1,
			Imports: []importmodel.ImportDecl{
				qualifiedDecl("Data.Map", "Map", 2, 2),
				qualifiedDecl("Data.Set", "Set", 4, 5),
			},
			Refs: refs("Map", "Set"),
		}

		ex := Extract(mod, "Prelude")
		assert.Equal(t, importmodel.BlockRange{Start: 2, End: 6}, ex.Block)
	})

	t.Run("no_imports_after_header", func(t *testing.T) {
		t.Parallel()

		mod := importmodel.Module{Name: "Main", HeaderEnd: 3}

		ex := Extract(mod, "Prelude")
		assert.Equal(t, importmodel.BlockRange{Start: 3, End: 3}, ex.Block)
		assert.True(t, ex.Block.Empty())
	})

	t.Run("empty_module", func(t *testing.T) {
		t.Parallel()

		ex := Extract(importmodel.Module{}, "Prelude")
		assert.Equal(t, importmodel.BlockRange{}, ex.Block)
	})
}
