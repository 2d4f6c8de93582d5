// Package registry reads the installed-package registry and builds the
// qualification candidate index from it.
package registry

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Sumatoshi-tech/fiximports/pkg/importmodel"
)

// Record is one installed package as reported by the registry: its name,
// whether it is exposed, and the module paths it exposes.
type Record struct {
	Name           string
	ExposedModules []importmodel.ModulePath
	Exposed        bool
}

// Recognized record tags.
const (
	tagName           = "name"
	tagExposed        = "exposed"
	tagExposedModules = "exposed-modules"
)

// recordSeparator terminates one registry record.
const recordSeparator = "---"

// field is one "tag: value" pair with any continuation lines folded in,
// kept in encounter order.
type field struct {
	tag    string
	values []string
}

// Parse reads a registry listing: blocks of "tag: value" pairs, values
// possibly continued on indented following lines, records separated by "---"
// lines. Unexpected tags and malformed lines are collected as non-fatal
// diagnostics; parsing continues with whatever is well-formed.
func Parse(r io.Reader) ([]Record, []string) {
	var (
		records     []Record
		diagnostics []string
		fields      []field
	)

	inField := false

	flush := func() {
		if len(fields) == 0 {
			return
		}

		record, diags := buildRecord(fields)
		diagnostics = append(diagnostics, diags...)

		if record != nil {
			records = append(records, *record)
		}

		fields = nil
		inField = false
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.TrimSpace(line) == recordSeparator:
			flush()
		case strings.TrimSpace(line) == "":
			inField = false
		case line[0] == ' ' || line[0] == '\t':
			// Continuation of the previous tag's value.
			if !inField {
				diagnostics = append(diagnostics, fmt.Sprintf("continuation line without a tag: %q", strings.TrimSpace(line)))
				continue
			}

			last := &fields[len(fields)-1]
			last.values = append(last.values, strings.TrimSpace(line))
		default:
			tag, value, ok := strings.Cut(line, ":")
			if !ok {
				diagnostics = append(diagnostics, fmt.Sprintf("malformed record line: %q", line))
				inField = false

				continue
			}

			fields = append(fields, field{
				tag:    strings.TrimSpace(tag),
				values: []string{strings.TrimSpace(value)},
			})
			inField = true
		}
	}

	scanErr := scanner.Err()
	if scanErr != nil {
		diagnostics = append(diagnostics, fmt.Sprintf("read registry listing: %v", scanErr))
	}

	flush()

	return records, diagnostics
}

// buildRecord assembles one Record from its fields in encounter order.
// Returns nil when the record is unusable (missing a name).
func buildRecord(fields []field) (*Record, []string) {
	var diagnostics []string

	record := &Record{}

	for _, f := range fields {
		switch f.tag {
		case tagName:
			record.Name = firstNonEmpty(f.values)
		case tagExposed:
			record.Exposed = strings.EqualFold(firstNonEmpty(f.values), "true")
		case tagExposedModules:
			paths, diags := parseModuleList(f.values)
			record.ExposedModules = append(record.ExposedModules, paths...)
			diagnostics = append(diagnostics, diags...)
		default:
			diagnostics = append(diagnostics, fmt.Sprintf("unexpected tag %q", f.tag))
		}
	}

	if record.Name == "" {
		diagnostics = append(diagnostics, "record without a name, discarded")
		return nil, diagnostics
	}

	return record, diagnostics
}

// parseModuleList splits accumulated exposed-modules values into module paths,
// discarding malformed entries with a diagnostic.
func parseModuleList(values []string) ([]importmodel.ModulePath, []string) {
	var (
		paths       []importmodel.ModulePath
		diagnostics []string
	)

	for _, value := range values {
		for _, token := range strings.Fields(value) {
			token = strings.TrimSuffix(token, ",")
			if token == "" {
				continue
			}

			if !validModulePath(token) {
				diagnostics = append(diagnostics, fmt.Sprintf("malformed module path %q", token))
				continue
			}

			paths = append(paths, importmodel.ModulePath(token))
		}
	}

	return paths, diagnostics
}

// validModulePath reports whether every dot segment is non-empty and starts
// with an upper-case letter.
func validModulePath(s string) bool {
	for _, segment := range strings.Split(s, ".") {
		if segment == "" {
			return false
		}

		first := segment[0]
		if first < 'A' || first > 'Z' {
			return false
		}
	}

	return true
}

func firstNonEmpty(values []string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
