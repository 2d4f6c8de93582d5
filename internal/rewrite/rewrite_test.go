package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/fiximports/pkg/importmodel"
)

func line(path importmodel.ModulePath, alias string) importmodel.ImportLine {
	return importmodel.ImportLine{
		Decl: importmodel.ImportDecl{Path: path, Alias: alias, Qualified: true},
	}
}

func TestFormatAlphabeticalWithoutLists(t *testing.T) {
	t.Parallel()

	out := Format(Order{}, []importmodel.ImportLine{
		line("Data.Set", "Set"),
		line("Data.Map", "Map"),
	})

	assert.Equal(t, []string{
		"import qualified Data.Map as Map",
		"import qualified Data.Set as Set",
	}, out)
}

func TestFormatGroupMembershipExactness(t *testing.T) {
	t.Parallel()

	t.Run("strict_prefix_entry_does_not_match", func(t *testing.T) {
		t.Parallel()

		// "Z" is neither equal to "Z.A" nor dot-terminated, so nothing
		// matches and the order is plain alphabetical.
		out := Format(Order{First: []string{"Z"}}, []importmodel.ImportLine{
			line("Z.A", ""),
			line("A", ""),
		})

		assert.Equal(t, []string{
			"import qualified A",
			"",
			"import qualified Z.A",
		}, out)
	})

	t.Run("dot_terminated_prefix_matches", func(t *testing.T) {
		t.Parallel()

		out := Format(Order{First: []string{"Z."}}, []importmodel.ImportLine{
			line("Z.A", ""),
			line("A", ""),
		})

		assert.Equal(t, []string{
			"import qualified Z.A",
			"",
			"import qualified A",
		}, out)
	})
}

func TestFormatFirstAndLastSections(t *testing.T) {
	t.Parallel()

	out := Format(Order{
		First: []string{"Prelude"},
		Last:  []string{"Test."},
	}, []importmodel.ImportLine{
		line("Test.Hspec", ""),
		line("Data.Map", "Map"),
		line("Prelude", ""),
	})

	assert.Equal(t, []string{
		"import qualified Prelude",
		"",
		"import qualified Data.Map as Map",
		"",
		"import qualified Test.Hspec",
	}, out)
}

func TestFormatGroupsByTopSegment(t *testing.T) {
	t.Parallel()

	out := Format(Order{}, []importmodel.ImportLine{
		line("Data.Map", "Map"),
		line("Control.Monad", ""),
		line("Data.Set", "Set"),
	})

	assert.Equal(t, []string{
		"import qualified Control.Monad",
		"",
		"import qualified Data.Map as Map",
		"import qualified Data.Set as Set",
	}, out)
}

func TestFormatRendersComments(t *testing.T) {
	t.Parallel()

	importLine := importmodel.ImportLine{
		Decl: importmodel.ImportDecl{
			Path:      "Data.Map",
			Alias:     "Map",
			Qualified: true,
			Text:      "import qualified Data.Map as Map",
		},
		Comments: []importmodel.Comment{
			{Position: importmodel.Above, Text: "-- the map we use"},
			{Position: importmodel.Right, Text: "-- strict"},
		},
	}

	out := Format(Order{}, []importmodel.ImportLine{importLine})

	assert.Equal(t, []string{
		"-- the map we use",
		"import qualified Data.Map as Map -- strict",
	}, out)
}

func TestFormatPreservesRetainedText(t *testing.T) {
	t.Parallel()

	// A user-written declaration is re-emitted verbatim, odd spacing and all.
	importLine := importmodel.ImportLine{
		Decl: importmodel.ImportDecl{
			Path:      "Data.Map",
			Alias:     "M",
			Qualified: true,
			Text:      "import qualified  Data.Map   as M (insert, lookup)",
		},
	}

	out := Format(Order{}, []importmodel.ImportLine{importLine})
	assert.Equal(t, []string{"import qualified  Data.Map   as M (insert, lookup)"}, out)
}

func TestFormatOmitsAliasEqualToPath(t *testing.T) {
	t.Parallel()

	out := Format(Order{}, []importmodel.ImportLine{line("Data.Map", "Data.Map")})
	assert.Equal(t, []string{"import qualified Data.Map"}, out)
}

func TestSpliceReplacesExactRange(t *testing.T) {
	t.Parallel()

	original := "module Main where\nimport Old\nmain :: IO ()\nmain = pure ()\n"

	got := Splice(original, 1, 2, []string{"import New"})
	assert.Equal(t, "module Main where\nimport New\nmain :: IO ()\nmain = pure ()\n", got)
}

func TestSplicePreservesBytesOutsideRange(t *testing.T) {
	t.Parallel()

	original := "a\n\nb\r\nimport Old\nc  \n"

	got := Splice(original, 3, 4, []string{"import New"})

	// Everything before line 3 and after line 4 is byte-identical.
	assert.Equal(t, "a\n\nb\r\n", got[:len("a\n\nb\r\n")])
	assert.Equal(t, "c  \n", got[len(got)-len("c  \n"):])
}

func TestSpliceCRLF(t *testing.T) {
	t.Parallel()

	original := "module Main where\r\nimport Old\r\nmain = ()\r\n"

	got := Splice(original, 1, 2, []string{"import New"})
	assert.Equal(t, "module Main where\r\nimport New\r\nmain = ()\r\n", got)
}

func TestSpliceInsertionAtEmptyRange(t *testing.T) {
	t.Parallel()

	original := "module Main where\nmain = ()\n"

	got := Splice(original, 1, 1, []string{"import New", ""})
	assert.Equal(t, "module Main where\nimport New\n\nmain = ()\n", got)
}

func TestSpliceRemoval(t *testing.T) {
	t.Parallel()

	original := "module Main where\nimport Old\nmain = ()\n"

	got := Splice(original, 1, 2, nil)
	assert.Equal(t, "module Main where\nmain = ()\n", got)
}

func TestSpliceOutOfRangeReturnsOriginal(t *testing.T) {
	t.Parallel()

	original := "one line\n"

	assert.Equal(t, original, Splice(original, 0, 5, []string{"x"}))
	assert.Equal(t, original, Splice(original, -1, 0, []string{"x"}))
}

func TestSpliceNoTrailingNewline(t *testing.T) {
	t.Parallel()

	original := "module Main where\nimport Old"

	got := Splice(original, 1, 2, []string{"import New"})
	assert.Equal(t, "module Main where\nimport New", got)
}

func TestSpliceEmptyOriginal(t *testing.T) {
	t.Parallel()

	got := Splice("", 0, 0, []string{"import New"})
	require.Equal(t, "import New\n", got)
}
