// Package resolve picks one winning candidate per needed qualification.
package resolve

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/Sumatoshi-tech/fiximports/pkg/importmodel"
)

// Priority is the resolution priority configuration.
type Priority struct {
	// ModuleHigh lists module paths that win immediately on an exact match.
	ModuleHigh []importmodel.ModulePath
	// PackageHigh orders packages; unlisted packages rank below all listed
	// ones, in registry-enumeration order.
	PackageHigh []string
}

// key is the lexicographic ordering key of one candidate. Lower wins at every
// position; positions are compared left to right.
type key struct {
	override   int // 0 when the path exactly matches a ModuleHigh entry
	provenance int // 0 local, 1 package
	rank       int // locals: negated path affinity; packages: PackageHigh position
	segments   int // module path segment count, fewer preferred
}

func (k key) less(other key) bool {
	if k.override != other.override {
		return k.override < other.override
	}

	if k.provenance != other.provenance {
		return k.provenance < other.provenance
	}

	if k.rank != other.rank {
		return k.rank < other.rank
	}

	return k.segments < other.segments
}

// Choose returns the winning candidate for one qualification, or ok=false for
// an empty candidate list. It never fails otherwise: the precedence rules are
// total. When several candidates match the override list, the later key
// positions still discriminate among them, so a local override match beats a
// package one; the override short-circuits the rules only against
// non-matching candidates. Ties surviving every key position resolve by
// original enumeration order, which is stable but carries no meaning.
//
// filePath is the path of the file being fixed; its directory drives the
// path-affinity ranking among local candidates.
func Choose(prio Priority, filePath string, cands []importmodel.Candidate) (importmodel.Candidate, bool) {
	if len(cands) == 0 {
		return importmodel.Candidate{}, false
	}

	fileDir := dirSegments(filePath)

	best := 0
	bestKey := candidateKey(prio, fileDir, cands[0])

	for i := 1; i < len(cands); i++ {
		k := candidateKey(prio, fileDir, cands[i])
		if k.less(bestKey) {
			best = i
			bestKey = k
		}
	}

	return cands[best], true
}

func candidateKey(prio Priority, fileDir []string, cand importmodel.Candidate) key {
	k := key{
		override: 1,
		segments: cand.Path.SegmentCount(),
	}

	if slices.Contains(prio.ModuleHigh, cand.Path) {
		k.override = 0
	}

	if cand.Provenance.Kind == importmodel.ProvenanceLocal {
		k.rank = -affinity(fileDir, cand.Dir)
		return k
	}

	k.provenance = 1
	k.rank = packageRank(prio.PackageHigh, cand.Provenance.Package)

	return k
}

// affinity counts the directory segments shared between the fixed file's
// directory and the candidate's relative directory.
func affinity(fileDir []string, candDir string) int {
	candSegments := splitDir(candDir)

	n := 0
	for n < len(fileDir) && n < len(candSegments) && fileDir[n] == candSegments[n] {
		n++
	}

	return n
}

// packageRank positions a package in the explicit priority order; unlisted
// packages rank below every listed one.
func packageRank(packageHigh []string, name string) int {
	if i := slices.Index(packageHigh, name); i >= 0 {
		return i
	}

	return len(packageHigh)
}

func dirSegments(filePath string) []string {
	return splitDir(filepath.ToSlash(filepath.Dir(filePath)))
}

func splitDir(dir string) []string {
	dir = strings.TrimPrefix(dir, "./")
	if dir == "" || dir == "." {
		return nil
	}

	return strings.Split(dir, "/")
}
