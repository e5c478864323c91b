// Package confirmations provides console implementations of the yes/no
// prompt used before an existing artifact is replaced.
package confirmations

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/customs/pkg/logging"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// ConsoleDialog asks on the terminal. When stdin is not a terminal every
// prompt is declined without reading anything.
type ConsoleDialog struct {
	in          io.Reader
	out         io.Writer
	interactive bool
}

// NewConsoleDialog creates a dialog bound to the process's stdin/stdout
func NewConsoleDialog() *ConsoleDialog {
	return &ConsoleDialog{
		in:          os.Stdin,
		out:         os.Stdout,
		interactive: IsInteractive(os.Stdin),
	}
}

// NewLineDialog reads y/N answers line by line from in. It is used for
// scripted input and tests.
func NewLineDialog(in io.Reader, out io.Writer) *ConsoleDialog {
	return &ConsoleDialog{in: in, out: out}
}

// IsInteractive reports whether f is attached to a terminal
func IsInteractive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Confirm asks prompt and returns the answer. Anything but y/yes is a no.
func (d *ConsoleDialog) Confirm(prompt string) (bool, error) {
	logger := logging.GetLogger("confirmations")

	if d.interactive {
		ok, err := pterm.DefaultInteractiveConfirm.
			WithDefaultText(prompt).
			WithDefaultValue(false).
			Show()
		if err != nil {
			return false, fmt.Errorf("failed to read user input: %w", err)
		}
		return ok, nil
	}

	if d.in == os.Stdin {
		logger.Debug().Str("prompt", prompt).Msg("Not a terminal, declining")
		return false, nil
	}

	if _, err := fmt.Fprintf(d.out, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}
	line, err := bufio.NewReader(d.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
