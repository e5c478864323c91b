package customs

import (
	"io"

	"github.com/arthur-debert/customs/pkg/ui"
	"github.com/arthur-debert/customs/pkg/ui/text"
	"github.com/spf13/cobra"
)

const flagOutput = "output"

// newRenderer builds the renderer selected by --output. The flag is
// persistent on the root, so every command sees the same value.
func newRenderer(cmd *cobra.Command, w io.Writer) (ui.Renderer, error) {
	value, _ := cmd.Root().PersistentFlags().GetString(flagOutput)
	format, err := ui.ParseFormat(value)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, w)
}

// RenderError reports a failed command on stderr in the selected format
func RenderError(cmd *cobra.Command, err error) {
	w := cmd.ErrOrStderr()
	r, rErr := newRenderer(cmd, w)
	if rErr != nil {
		r, _ = text.New(w)
	}
	_ = r.RenderError(err)
}
