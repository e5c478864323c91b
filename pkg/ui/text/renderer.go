// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/customs/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders a view model as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	return display.Write(r.output, result, display.NoPaint)
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	return display.Write(r.output, display.FromError(err), display.NoPaint)
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
