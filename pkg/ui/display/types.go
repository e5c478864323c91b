// Package display holds the view models rendered by every output format,
// and the conversions from pipeline results into them.
package display

import (
	"fmt"

	"github.com/arthur-debert/customs/pkg/archive"
	"github.com/arthur-debert/customs/pkg/build"
	"github.com/arthur-debert/customs/pkg/errors"
	"github.com/arthur-debert/customs/pkg/manifest"
)

// BuildReport is the outcome of one build
type BuildReport struct {
	BuildID      string   `json:"buildId"`
	Package      string   `json:"package,omitempty"`
	Version      string   `json:"version,omitempty"`
	Output       string   `json:"output,omitempty"`
	State        string   `json:"state"`
	FailedAt     string   `json:"failedAt,omitempty"`
	Canceled     bool     `json:"canceled"`
	DryRun       bool     `json:"dryRun"`
	OutputExists bool     `json:"outputExists,omitempty"`
	Files        int      `json:"files"`
	Dirs         int      `json:"dirs"`
	Bytes        int64    `json:"bytes"`
	Digest       string   `json:"digest,omitempty"`
	Entries      []string `json:"entries,omitempty"`
}

// ManifestReport is a validated manifest
type ManifestReport struct {
	Path         string       `json:"path"`
	Schema       int          `json:"schema"`
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Target       string       `json:"target,omitempty"`
	Description  string       `json:"description,omitempty"`
	Authors      []string     `json:"authors,omitempty"`
	Archive      string       `json:"archive"`
	Dependencies []Dependency `json:"dependencies,omitempty"`
}

// Dependency is one recorded requirement
type Dependency struct {
	Name        string `json:"name"`
	Requirement string `json:"requirement"`
}

// ArchiveListing is the content of a built archive
type ArchiveListing struct {
	Path    string         `json:"path"`
	Digest  string         `json:"digest,omitempty"`
	Entries []ArchiveEntry `json:"entries"`
}

// ArchiveEntry is one archive member
type ArchiveEntry struct {
	Name   string `json:"name"`
	Size   uint64 `json:"size"`
	Mode   string `json:"mode"`
	Dir    bool   `json:"dir"`
	Stored bool   `json:"stored"`
}

// ErrorReport is a failure in a form users can act on
type ErrorReport struct {
	Code    string                 `json:"code"`
	Stage   string                 `json:"stage"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// FromBuild converts a build result. A nil result gives an empty report.
func FromBuild(r *build.Result) *BuildReport {
	if r == nil {
		return &BuildReport{}
	}

	report := &BuildReport{
		BuildID:      r.BuildID,
		Output:       r.OutputPath,
		State:        r.State.String(),
		Canceled:     r.Canceled,
		DryRun:       r.DryRun,
		OutputExists: r.OutputExists,
	}
	if r.FailedAt != "" {
		report.FailedAt = r.FailedAt.String()
	}
	if r.Manifest != nil {
		report.Package = r.Manifest.Name
		report.Version = r.Manifest.Version.String()
	}
	if r.Archive != nil {
		report.Files = r.Archive.Files
		report.Dirs = r.Archive.Dirs
		report.Bytes = r.Archive.Bytes
		report.Digest = r.Archive.Digest
	}
	for _, e := range r.Entries {
		name := e.RelPath
		if e.IsDir {
			name += "/"
			report.Dirs++
		} else {
			report.Files++
			report.Bytes += e.Size
		}
		report.Entries = append(report.Entries, name)
	}
	return report
}

// FromManifest converts a loaded manifest. ext names the artifact extension.
func FromManifest(m *manifest.Manifest, ext string) *ManifestReport {
	report := &ManifestReport{
		Path:        m.Path,
		Schema:      m.Schema,
		Name:        m.Name,
		Version:     m.Version.String(),
		Target:      m.Target,
		Description: m.Description,
		Authors:     m.Authors,
		Archive:     m.ArchiveName(ext),
	}
	for _, name := range m.DependencyNames() {
		report.Dependencies = append(report.Dependencies, Dependency{
			Name:        name,
			Requirement: m.Dependencies[name].Expr,
		})
	}
	return report
}

// FromArchive converts the items of an archive. digest may be empty.
func FromArchive(path, digest string, items []archive.Item) *ArchiveListing {
	listing := &ArchiveListing{Path: path, Digest: digest, Entries: make([]ArchiveEntry, 0, len(items))}
	for _, it := range items {
		listing.Entries = append(listing.Entries, ArchiveEntry{
			Name:   it.Name,
			Size:   it.Size,
			Mode:   it.Mode.String(),
			Dir:    it.Mode.IsDir(),
			Stored: it.Stored,
		})
	}
	return listing
}

// FromError converts an error, naming the pipeline stage it belongs to
func FromError(err error) *ErrorReport {
	code := errors.GetErrorCode(err)
	return &ErrorReport{
		Code:    string(code),
		Stage:   errors.Stage(code),
		Message: err.Error(),
		Details: errors.GetErrorDetails(err),
	}
}

// Summary is the one-line outcome of a build
func (b *BuildReport) Summary() string {
	switch {
	case b.Canceled:
		return fmt.Sprintf("Build canceled: %s was left untouched", b.Output)
	case b.DryRun:
		return fmt.Sprintf("Dry run: %d files and %d directories would be written to %s", b.Files, b.Dirs, b.Output)
	case b.FailedAt != "":
		return fmt.Sprintf("Build failed during %s", b.FailedAt)
	default:
		return fmt.Sprintf("Built %s@%s: %d files, %d directories", b.Package, b.Version, b.Files, b.Dirs)
	}
}
