package display

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Painter applies a named style to text. Plain output uses NoPaint.
type Painter func(style, text string) string

// NoPaint returns text unchanged
func NoPaint(_, text string) string { return text }

// Write lays out a view model on w. Unknown values are printed with %+v.
func Write(w io.Writer, v interface{}, paint Painter) error {
	if paint == nil {
		paint = NoPaint
	}
	p := &printer{w: w, paint: paint}

	switch r := v.(type) {
	case *BuildReport:
		p.build(r)
	case *ManifestReport:
		p.manifest(r)
	case *ArchiveListing:
		p.listing(r)
	case *ErrorReport:
		p.error(r)
	default:
		p.line("%+v", v)
	}
	return p.err
}

type printer struct {
	w     io.Writer
	paint Painter
	err   error
}

func (p *printer) line(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) field(label, value string) {
	p.line("%s %s", p.paint("Label", label+":"), value)
}

func (p *printer) build(r *BuildReport) {
	if r.DryRun {
		p.line("%s", p.paint("DryRunBanner", "DRY RUN - nothing was written"))
		for _, e := range r.Entries {
			p.line("  %s", e)
		}
		if r.OutputExists {
			p.line("%s", p.paint("Warning", r.Output+" already exists and would be replaced"))
		}
	}

	switch {
	case r.Canceled:
		p.line("%s", p.paint("Warning", r.Summary()))
	case r.FailedAt != "":
		p.line("%s", p.paint("Error", r.Summary()))
	default:
		p.line("%s", p.paint("Success", r.Summary()))
	}
	if !r.Canceled && !r.DryRun && r.Output != "" {
		p.field("archive", p.paint("FilePath", r.Output))
		p.field("size", fmt.Sprintf("%d bytes", r.Bytes))
		if r.Digest != "" {
			p.field("digest", p.paint("Muted", r.Digest))
		}
	}
	p.field("build", p.paint("Muted", r.BuildID))
}

func (p *printer) manifest(r *ManifestReport) {
	p.line("%s %s", p.paint("Package", r.Name), r.Version)
	p.field("manifest", p.paint("FilePath", r.Path))
	p.field("schema", fmt.Sprintf("%d", r.Schema))
	if r.Description != "" {
		p.field("description", r.Description)
	}
	if len(r.Authors) > 0 {
		p.field("authors", strings.Join(r.Authors, ", "))
	}
	if r.Target != "" {
		p.field("target", r.Target)
	}
	p.field("archive", r.Archive)
	if len(r.Dependencies) > 0 {
		p.line("%s", p.paint("Header", "Dependencies"))
		for _, d := range r.Dependencies {
			p.line("  %s %s", d.Name, p.paint("Muted", d.Requirement))
		}
	}
}

func (p *printer) listing(r *ArchiveListing) {
	p.line("%s", p.paint("Header", r.Path))
	var files, dirs int
	for _, e := range r.Entries {
		if e.Dir {
			dirs++
		} else {
			files++
		}
		p.line("  %s %10d  %s", e.Mode, e.Size, e.Name)
	}
	p.line("%s", p.paint("Muted", fmt.Sprintf("%d files, %d directories", files, dirs)))
	if r.Digest != "" {
		p.field("digest", r.Digest)
	}
}

func (p *printer) error(r *ErrorReport) {
	p.line("%s", p.paint("Error", fmt.Sprintf("Error (%s): %s", r.Stage, r.Message)))

	keys := make([]string, 0, len(r.Details))
	for k := range r.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := r.Details[k].(type) {
		case []string:
			p.field(k, "")
			for _, item := range v {
				p.line("  %s", item)
			}
		default:
			p.field(k, fmt.Sprintf("%v", v))
		}
	}
}
