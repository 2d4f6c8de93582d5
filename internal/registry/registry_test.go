package registry

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/fiximports/pkg/importmodel"
)

const sampleListing = `name: containers
exposed: True
exposed-modules:
    Data.Map Data.Map.Strict
    Data.Set
---
name: hidden-base
exposed: False
exposed-modules:
    Hidden.Internal
---
name: text
exposed: True
exposed-modules: Data.Text
`

func TestParse(t *testing.T) {
	t.Parallel()

	records, diags := Parse(strings.NewReader(sampleListing))
	require.Len(t, records, 3)
	assert.Empty(t, diags)

	assert.Equal(t, "containers", records[0].Name)
	assert.True(t, records[0].Exposed)
	assert.Equal(t, []importmodel.ModulePath{"Data.Map", "Data.Map.Strict", "Data.Set"}, records[0].ExposedModules)

	assert.Equal(t, "hidden-base", records[1].Name)
	assert.False(t, records[1].Exposed)

	assert.Equal(t, "text", records[2].Name)
	assert.Equal(t, []importmodel.ModulePath{"Data.Text"}, records[2].ExposedModules)
}

func TestParseDiagnostics(t *testing.T) {
	t.Parallel()

	t.Run("unexpected_tag", func(t *testing.T) {
		t.Parallel()

		listing := "name: foo\nexposed: True\nfancy-field: whatever\n"

		records, diags := Parse(strings.NewReader(listing))
		require.Len(t, records, 1)
		require.Len(t, diags, 1)
		assert.Contains(t, diags[0], "fancy-field")
	})

	t.Run("malformed_line", func(t *testing.T) {
		t.Parallel()

		listing := "name: foo\nthis line has no colon or indent\nexposed: True\n"

		records, diags := Parse(strings.NewReader(listing))
		require.Len(t, records, 1)
		assert.True(t, records[0].Exposed)
		require.Len(t, diags, 1)
		assert.Contains(t, diags[0], "malformed record line")
	})

	t.Run("malformed_module_path", func(t *testing.T) {
		t.Parallel()

		listing := "name: foo\nexposed: True\nexposed-modules: Good.Path bad.path\n"

		records, diags := Parse(strings.NewReader(listing))
		require.Len(t, records, 1)
		assert.Equal(t, []importmodel.ModulePath{"Good.Path"}, records[0].ExposedModules)
		require.Len(t, diags, 1)
		assert.Contains(t, diags[0], "bad.path")
	})

	t.Run("nameless_record_discarded", func(t *testing.T) {
		t.Parallel()

		listing := "exposed: True\n---\nname: bar\nexposed: True\n"

		records, diags := Parse(strings.NewReader(listing))
		require.Len(t, records, 1)
		assert.Equal(t, "bar", records[0].Name)
		require.Len(t, diags, 1)
		assert.Contains(t, diags[0], "without a name")
	})
}

func TestBuildIndexSuffixes(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Name: "containers", Exposed: true, ExposedModules: []importmodel.ModulePath{"Data.Map.Strict"}},
	}

	index := BuildIndex(records)

	// A 3-segment path is reachable under exactly its 3 suffix qualifications.
	require.Len(t, index, 3)

	for _, qual := range []importmodel.Qualification{"Data.Map.Strict", "Map.Strict", "Strict"} {
		cands := index.Lookup(qual)
		require.Len(t, cands, 1, "qualification %q", qual)
		assert.Equal(t, importmodel.ModulePath("Data.Map.Strict"), cands[0].Path)
		assert.Equal(t, importmodel.Package("containers"), cands[0].Provenance)
	}
}

func TestBuildIndexOrderAndDuplicates(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Name: "first", Exposed: true, ExposedModules: []importmodel.ModulePath{"Data.Map"}},
		{Name: "second", Exposed: true, ExposedModules: []importmodel.ModulePath{"Data.Map"}},
		{Name: "hidden", Exposed: false, ExposedModules: []importmodel.ModulePath{"Data.Map"}},
	}

	index := BuildIndex(records)

	// Duplicates are preserved in enumeration order; hidden packages are not.
	cands := index.Lookup("Map")
	require.Len(t, cands, 2)
	assert.Equal(t, "first", cands[0].Provenance.Package)
	assert.Equal(t, "second", cands[1].Provenance.Package)
}

func TestStaticLister(t *testing.T) {
	t.Parallel()

	lister := StaticLister{Listing: sampleListing}

	rc, err := lister.List(context.Background())
	require.NoError(t, err)

	defer rc.Close()

	records, _ := Parse(rc)
	assert.Len(t, records, 3)
}
