// Package terminal renders view models with the lipgloss theme
package terminal

import (
	"io"

	"github.com/arthur-debert/customs/pkg/ui/display"
	"github.com/arthur-debert/customs/pkg/ui/styles"
)

// Renderer paints view models for a color terminal
type Renderer struct {
	output io.Writer
	theme  *styles.Theme
}

// New creates a terminal renderer using the default theme
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w, theme: styles.Default()}, nil
}

// RenderResult renders a view model
func (r *Renderer) RenderResult(result interface{}) error {
	return display.Write(r.output, result, r.theme.Render)
}

// RenderError renders an error with its stage and details
func (r *Renderer) RenderError(err error) error {
	return display.Write(r.output, display.FromError(err), r.theme.Render)
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := io.WriteString(r.output, r.theme.Render("Info", msg)+"\n")
	return err
}
