// Package styles holds the lipgloss theme of customs terminal output.
//
// Styles have semantic names (Success, Error, FilePath, ...) so renderers
// never pick colors themselves. The default theme is embedded from
// styles.yaml; colors adapt to light and dark terminals.
package styles

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var embeddedTheme []byte

type colorSpec struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

type styleSpec struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Width      int    `yaml:"width,omitempty"`
	MarginTop  int    `yaml:"marginTop,omitempty"`
}

type themeSpec struct {
	Colors map[string]colorSpec `yaml:"colors"`
	Styles map[string]styleSpec `yaml:"styles"`
}

// Theme maps semantic names to styles. The zero Theme renders text as is.
type Theme struct {
	styles map[string]lipgloss.Style
}

// Parse builds a theme from a YAML document. A foreground is either the
// name of an entry under colors or a literal color such as "#ff0000".
func Parse(data []byte) (*Theme, error) {
	var doc themeSpec
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}

	palette := make(map[string]lipgloss.TerminalColor, len(doc.Colors))
	for name, c := range doc.Colors {
		palette[name] = lipgloss.AdaptiveColor{Light: c.Light, Dark: c.Dark}
	}

	t := &Theme{styles: make(map[string]lipgloss.Style, len(doc.Styles))}
	for name, s := range doc.Styles {
		style := lipgloss.NewStyle().
			Bold(s.Bold).
			Italic(s.Italic).
			Underline(s.Underline)
		if s.Foreground != "" {
			color, ok := palette[s.Foreground]
			if !ok {
				if !strings.HasPrefix(s.Foreground, "#") {
					return nil, fmt.Errorf("style %s: unknown color %q", name, s.Foreground)
				}
				color = lipgloss.Color(s.Foreground)
			}
			style = style.Foreground(color)
		}
		if s.Width > 0 {
			style = style.Width(s.Width)
		}
		if s.MarginTop > 0 {
			style = style.MarginTop(s.MarginTop)
		}
		t.styles[name] = style
	}
	return t, nil
}

var (
	defaultOnce  sync.Once
	defaultTheme *Theme
)

// Default returns the embedded theme
func Default() *Theme {
	defaultOnce.Do(func() {
		t, err := Parse(embeddedTheme)
		if err != nil {
			t = &Theme{}
		}
		defaultTheme = t
	})
	return defaultTheme
}

// Has reports whether the theme defines name
func (t *Theme) Has(name string) bool {
	_, ok := t.styles[name]
	return ok
}

// Style returns the named style, or a plain style when unknown
func (t *Theme) Style(name string) lipgloss.Style {
	if s, ok := t.styles[name]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// Render applies the named style to text. Unknown names leave text as is.
func (t *Theme) Render(name, text string) string {
	s, ok := t.styles[name]
	if !ok {
		return text
	}
	return s.Render(text)
}
