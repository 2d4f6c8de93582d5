package registry

import (
	"strings"

	"github.com/Sumatoshi-tech/fiximports/pkg/importmodel"
)

// Index maps a qualification to the package candidates that could provide it.
// Candidate lists preserve package-enumeration order and keep duplicates;
// later tie-breaking depends on that order. The Index is an immutable
// snapshot built once per run and never cached across invocations.
type Index map[importmodel.Qualification][]importmodel.Candidate

// BuildIndex turns a registry enumeration into a candidate index. Non-exposed
// packages are discarded. Every non-empty dot-segment suffix of every exposed
// module path becomes a qualification key for that path, so a 3-segment path
// is reachable under 3 qualifications.
func BuildIndex(records []Record) Index {
	index := make(Index)

	for _, record := range records {
		if !record.Exposed {
			continue
		}

		for _, path := range record.ExposedModules {
			candidate := importmodel.Candidate{
				Provenance: importmodel.Package(record.Name),
				Path:       path,
			}

			for _, qual := range suffixes(path) {
				index[qual] = append(index[qual], candidate)
			}
		}
	}

	return index
}

// Lookup returns the candidates for a qualification in enumeration order.
func (ix Index) Lookup(qual importmodel.Qualification) []importmodel.Candidate {
	return ix[qual]
}

// suffixes returns every dot-segment suffix of path as a qualification,
// longest first.
func suffixes(path importmodel.ModulePath) []importmodel.Qualification {
	segments := path.Segments()
	quals := make([]importmodel.Qualification, 0, len(segments))

	for i := range segments {
		quals = append(quals, importmodel.Qualification(strings.Join(segments[i:], ".")))
	}

	return quals
}
