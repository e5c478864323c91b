package customs

import (
	"os"
	"strings"
	"text/template"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// templateFuncs are the helpers available to the usage template. Bold is
// only emitted when styled is true.
func templateFuncs(styled bool) template.FuncMap {
	bold := func(s string) string {
		if !styled {
			return s
		}
		return pterm.Bold.Sprint(s)
	}
	return template.FuncMap{
		"bold":      bold,
		"upper":     strings.ToUpper,
		"boldUpper": func(s string) string { return bold(strings.ToUpper(s)) },
	}
}

func initTemplateFormatting() {
	cobra.AddTemplateFuncs(templateFuncs(stdoutIsTerminal()))
}
