package topics

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// Renderer turns a topic's raw content into display text. ext is the topic
// file extension, dot included.
type Renderer interface {
	Render(content, ext string) string
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(content, ext string) string

// Render calls f
func (f RendererFunc) Render(content, ext string) string { return f(content, ext) }

// Plain shows topics exactly as written
var Plain = RendererFunc(func(content, _ string) string { return content })

// MarkdownRenderer renders .md topics with glamour. Other extensions, and
// any glamour failure, fall back to the raw content.
type MarkdownRenderer struct {
	style string
	width int

	once sync.Once
	term *glamour.TermRenderer
}

// NewMarkdownRenderer picks glamour's automatic style for a terminal and
// the unstyled "notty" style otherwise. width 0 keeps glamour's wrapping.
func NewMarkdownRenderer(interactive bool, width int) *MarkdownRenderer {
	style := "notty"
	if interactive {
		style = "auto"
	}
	return &MarkdownRenderer{style: style, width: width}
}

// Render implements Renderer
func (r *MarkdownRenderer) Render(content, ext string) string {
	if ext != ".md" {
		return content
	}
	r.once.Do(func() {
		opts := []glamour.TermRendererOption{glamour.WithStandardStyle(r.style)}
		if r.style == "auto" {
			opts = []glamour.TermRendererOption{glamour.WithAutoStyle()}
		}
		if r.width > 0 {
			opts = append(opts, glamour.WithWordWrap(r.width))
		}
		r.term, _ = glamour.NewTermRenderer(opts...)
	})
	if r.term == nil {
		return content
	}
	out, err := r.term.Render(content)
	if err != nil {
		return content
	}
	return out
}
