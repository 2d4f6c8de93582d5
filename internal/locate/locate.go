// Package locate finds project-local providers of a qualification by a
// depth-bounded filesystem search under the configured include directories.
package locate

import (
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/Sumatoshi-tech/fiximports/pkg/importmodel"
)

// maxDepth bounds how many directory levels below an include directory the
// search descends. The bound keeps the walk cheap and tolerates symlink
// cycles up to that depth.
const maxDepth = 4

// sourceExtensions are the file extensions that can hold a module.
var sourceExtensions = []string{".hs", ".lhs"}

// Locator searches an ordered list of include directories for local modules.
type Locator struct {
	Includes []string
}

// New returns a Locator over the given include directories, searched in order.
func New(includes []string) Locator {
	return Locator{Includes: includes}
}

// Find returns the local candidates for a qualification, in include-directory
// order and lexical walk order within each directory. A missing include
// directory contributes no matches rather than an error.
//
// The qualification's dot segments form a relative file path; a file matches
// when its path relative to the include directory equals that target or ends
// with it after a path separator. Only directories whose name begins with an
// upper-case letter are entered, per the module naming convention.
func (l Locator) Find(qual importmodel.Qualification) []importmodel.Candidate {
	target := path.Join(qual.Segments()...)

	var candidates []importmodel.Candidate

	for _, include := range l.Includes {
		candidates = append(candidates, searchInclude(include, target)...)
	}

	return candidates
}

// searchInclude walks one include directory collecting matches for target,
// a slash-separated module path without extension.
func searchInclude(include, target string) []importmodel.Candidate {
	var candidates []importmodel.Candidate

	root := os.DirFS(include)

	_ = fs.WalkDir(root, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Missing or unreadable directories degrade to no matches.
			if p == "." {
				return fs.SkipAll
			}

			return fs.SkipDir
		}

		if d.IsDir() {
			if p == "." {
				return nil
			}

			if depth(p) >= maxDepth || !upperInitial(d.Name()) {
				return fs.SkipDir
			}

			return nil
		}

		rel, ok := moduleRelPath(p)
		if !ok {
			return nil
		}

		if rel != target && !strings.HasSuffix(rel, "/"+target) {
			return nil
		}

		candidates = append(candidates, importmodel.Candidate{
			Provenance: importmodel.Local(),
			Path:       importmodel.ModulePath(strings.ReplaceAll(rel, "/", ".")),
			Dir:        relDir(rel),
		})

		return nil
	})

	return candidates
}

// moduleRelPath strips a recognized source extension from a walked file path.
func moduleRelPath(p string) (string, bool) {
	for _, ext := range sourceExtensions {
		if strings.HasSuffix(p, ext) {
			return strings.TrimSuffix(p, ext), true
		}
	}

	return "", false
}

// depth counts the path segments of a slash path relative to the walk root.
func depth(p string) int {
	return strings.Count(p, "/") + 1
}

// upperInitial reports whether the name starts with an upper-case letter.
func upperInitial(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

// relDir returns the directory part of a relative module path, empty for a
// module sitting directly in its include directory.
func relDir(rel string) string {
	dir := path.Dir(rel)
	if dir == "." {
		return ""
	}

	return dir
}
