package ignore

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/customs/pkg/errors"
	"github.com/arthur-debert/customs/pkg/logging"
)

// Mode selects where ignore rules come from
type Mode string

// Supported modes
const (
	// ModeAuto combines version control rules (when a repository exists) and
	// the flat file (when present)
	ModeAuto Mode = "auto"
	// ModeVCS uses version control rules only and requires a repository
	ModeVCS Mode = "vcs"
	// ModeFile uses the flat ignore file only
	ModeFile Mode = "file"
	// ModeNone includes everything except version control metadata
	ModeNone Mode = "none"
)

// ParseMode validates a mode name; the empty string means ModeAuto
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeVCS, ModeFile, ModeNone:
		return Mode(s), nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown ignore mode %q (want auto, vcs, file or none)", s)
}

// MatcherSource provides version control ignore rules
type MatcherSource interface {
	IgnoreMatcher() (Predicate, error)
}

// Options configure Resolve
type Options struct {
	Mode Mode
	// FileName is the flat ignore file relative to the root
	FileName string
	// VCS is nil when the project is not under version control
	VCS MatcherSource
}

// AlwaysIgnored is excluded under every mode
var AlwaysIgnored = Components{".git"}

// Resolve builds the predicate for one build
func Resolve(root string, opts Options) (Predicate, error) {
	logger := logging.GetLogger("ignore").With().Str("root", root).Str("mode", string(opts.Mode)).Logger()

	mode, err := ParseMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}
	fileName := opts.FileName
	if fileName == "" {
		fileName = DefaultFileName
	}

	var preds []Predicate
	preds = append(preds, AlwaysIgnored)

	if mode == ModeVCS || mode == ModeAuto {
		if opts.VCS == nil {
			if mode == ModeVCS {
				return nil, errors.New(errors.ErrRepoNotFound, "ignore mode \"vcs\" requires a git repository")
			}
		} else {
			matcher, err := opts.VCS.IgnoreMatcher()
			if err != nil {
				return nil, err
			}
			preds = append(preds, matcher)
			logger.Debug().Msg("Using version control ignore rules")
		}
	}

	if mode == ModeFile || mode == ModeAuto {
		path := filepath.Join(root, fileName)
		if _, statErr := os.Stat(path); statErr == nil {
			prefixes, err := LoadFlatFile(path)
			if err != nil {
				return nil, err
			}
			preds = append(preds, prefixes)
			logger.Debug().Str("file", path).Int("prefixes", len(prefixes)).Msg("Using flat ignore file")
		} else if mode == ModeFile {
			logger.Debug().Str("file", path).Msg("Ignore file not found, nothing is ignored")
		}
	}

	return Any(preds...), nil
}
