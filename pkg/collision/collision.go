// Package collision decides whether an existing artifact may be replaced.
package collision

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/customs/pkg/errors"
	"github.com/arthur-debert/customs/pkg/logging"
)

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(prompt string) (bool, error)

// Confirm calls f
func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// Always answers every prompt with the same value
type Always bool

// Confirm returns the fixed answer
func (a Always) Confirm(string) (bool, error) {
	return bool(a), nil
}

// Prompt is the question asked when outputPath already exists
func Prompt(outputPath string) string {
	return fmt.Sprintf("%s already exists. Overwrite?", filepath.Base(outputPath))
}

// Resolve reports whether the build may write outputPath.
// A missing file or autoYes proceeds without asking. Otherwise c is asked,
// and a nil c declines.
func Resolve(outputPath string, autoYes bool, c Confirmer) (bool, error) {
	logger := logging.GetLogger("collision").With().Str("output", outputPath).Logger()

	info, err := os.Stat(outputPath)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrIO, "failed to check %s", outputPath).
			WithDetail(errors.DetailPath, outputPath)
	}
	if info.IsDir() {
		return false, errors.Newf(errors.ErrIO, "%s exists and is a directory", outputPath).
			WithDetail(errors.DetailPath, outputPath)
	}

	if autoYes {
		logger.Debug().Msg("Overwriting existing artifact without asking")
		return true, nil
	}
	if c == nil {
		logger.Info().Msg("Existing artifact and no way to ask, declining")
		return false, nil
	}

	ok, err := c.Confirm(Prompt(outputPath))
	if err != nil {
		return false, errors.Wrap(err, errors.ErrInvalidInput, "failed to read confirmation")
	}
	logger.Debug().Bool("overwrite", ok).Msg("Collision resolved")
	return ok, nil
}
