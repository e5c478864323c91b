package manifest

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/arthur-debert/customs/pkg/errors"
	"github.com/blang/semver"
)

// Schema generations
const (
	SchemaV1 = 1
	SchemaV2 = 2

	DefaultSchema = SchemaV1
)

// Field names as they appear in the manifest file
const (
	FieldSchema       = "schema"
	FieldName         = "name"
	FieldVersion      = "version"
	FieldTarget       = "target"
	FieldDescription  = "description"
	FieldAuthors      = "authors"
	FieldDependencies = "dependencies"
)

var namePatterns = map[int]*regexp.Regexp{
	SchemaV1: regexp.MustCompile(`^[A-Za-z]+$`),
	SchemaV2: regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`),
}

var requiredFields = map[int][]string{
	SchemaV1: {FieldName, FieldVersion},
	SchemaV2: {FieldName, FieldVersion, FieldDescription, FieldAuthors},
}

// Requirement is a dependency version requirement such as ">=1.0.4 <2.0.0"
type Requirement struct {
	Expr  string
	Range semver.Range
}

// Manifest is the validated description of the package being built.
// It is produced once per build and only read afterwards.
type Manifest struct {
	Schema       int
	Name         string
	Version      semver.Version
	Target       string
	Description  string
	Authors      []string
	Dependencies map[string]Requirement

	// Path is the file the manifest was loaded from
	Path string
}

// ArchiveName returns the deterministic output file name: name@version.ext
func (m *Manifest) ArchiveName(ext string) string {
	return fmt.Sprintf("%s@%s.%s", m.Name, m.Version.String(), ext)
}

// TargetDir resolves the output directory against root. The manifest's
// target wins over fallback; absolute targets are returned as they are.
// A target that is root or one of its parents would prune the whole walk
// and is rejected.
func (m *Manifest) TargetDir(root, fallback string) (string, error) {
	target := m.Target
	if target == "" {
		target = fallback
	}
	dir := filepath.Join(root, target)
	if filepath.IsAbs(target) {
		dir = filepath.Clean(target)
	}
	if contains(dir, root) {
		return "", invalid(FieldTarget, "target %q would contain the project root %s", target, root).
			WithDetail(errors.DetailPath, dir)
	}
	return dir, nil
}

// contains reports whether path is dir or lies below it
func contains(dir, path string) bool {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// DependencyNames returns dependency names in sorted order
func (m *Manifest) DependencyNames() []string {
	names := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidName reports whether name is acceptable under the given schema
func ValidName(schema int, name string) bool {
	pattern, ok := namePatterns[schema]
	if !ok {
		return false
	}
	return pattern.MatchString(name)
}
