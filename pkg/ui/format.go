package ui

import (
	"os"
	"strings"

	"github.com/arthur-debert/customs/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format names an output form as accepted by --output
type Format string

const (
	// FormatAuto resolves to term or text when the renderer is built
	FormatAuto     Format = "auto"
	FormatTerminal Format = "term"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

var formatAliases = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
	"json":     FormatJSON,
}

// Formats lists the canonical format names, for help and completion
func Formats() []string {
	return []string{string(FormatAuto), string(FormatTerminal), string(FormatText), string(FormatJSON)}
}

// String returns the canonical name
func (f Format) String() string {
	return string(f)
}

// ParseFormat accepts a canonical name or alias, case-insensitively
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown output format %q (want %s)",
		s, strings.Join(Formats(), ", ")).
		WithDetail(errors.DetailField, "output")
}

// DetectFormat picks term for a color-capable terminal and text for
// everything else, including when NO_COLOR is set
func DetectFormat(output *os.File) Format {
	_, noColor := os.LookupEnv("NO_COLOR")
	fd := output.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	if noColor || !tty || termenv.NewOutput(output).Profile == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
