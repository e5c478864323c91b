// Package walker streams the files of a project tree in a stable order,
// pruning ignored directories and the build's own output directory.
package walker

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/customs/pkg/errors"
	"github.com/arthur-debert/customs/pkg/ignore"
	"github.com/arthur-debert/customs/pkg/logging"
)

// Entry is one file or directory to be archived
type Entry struct {
	// RelPath is relative to the walk root, with forward slashes
	RelPath string
	// AbsPath is where content is read from. For a followed symlink it is
	// the link target.
	AbsPath string
	IsDir   bool
	Mode    fs.FileMode
	Size    int64
}

// Options controls what the walk yields
type Options struct {
	// Ignore decides which paths are skipped. nil ignores nothing.
	Ignore ignore.Predicate
	// Exclude holds absolute paths pruned with everything below them
	Exclude []string
}

// Walk calls fn for every entry under root, depth first in lexical order.
// The root itself is not yielded. An error from fn stops the walk and is
// returned as is.
func Walk(root string, opts Options, fn func(Entry) error) error {
	logger := logging.GetLogger("walker").With().Str("root", root).Logger()

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to resolve %s", root)
	}
	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to resolve %s", root).
			WithDetail(errors.DetailPath, root)
	}

	pred := opts.Ignore
	if pred == nil {
		pred = ignore.Nop{}
	}
	excludes := cleanExcludes(opts.Exclude)

	var yielded, skipped int
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return errors.Wrapf(walkErr, errors.ErrIO, "failed to read %s", path).
				WithDetail(errors.DetailPath, path)
		}
		if path == absRoot {
			return nil
		}

		if isExcluded(path, excludes) {
			logger.Trace().Str("path", path).Msg("Pruned output directory")
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "failed to relativize %s", path)
		}
		rel = filepath.ToSlash(rel)

		if pred.Ignored(rel, d.IsDir()) {
			skipped++
			logger.Trace().Str("path", rel).Bool("dir", d.IsDir()).Msg("Ignored")
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		entry, ok, err := toEntry(realRoot, path, rel, d)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		yielded++
		return fn(entry)
	})
	if err != nil {
		return err
	}

	logger.Debug().Int("entries", yielded).Int("ignored", skipped).Msg("Walk complete")
	return nil
}

// Collect returns every entry Walk would yield
func Collect(root string, opts Options) ([]Entry, error) {
	var entries []Entry
	err := Walk(root, opts, func(e Entry) error {
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func toEntry(realRoot, path, rel string, d fs.DirEntry) (Entry, bool, error) {
	if d.Type()&fs.ModeSymlink != 0 {
		return symlinkEntry(realRoot, path, rel)
	}

	info, err := d.Info()
	if err != nil {
		return Entry{}, false, errors.Wrapf(err, errors.ErrIO, "failed to stat %s", path).
			WithDetail(errors.DetailPath, path)
	}
	if !info.IsDir() && !info.Mode().IsRegular() {
		logger := logging.GetLogger("walker")
		logger.Warn().Str("path", rel).Str("mode", info.Mode().String()).Msg("Skipping special file")
		return Entry{}, false, nil
	}

	e := Entry{
		RelPath: rel,
		AbsPath: path,
		IsDir:   info.IsDir(),
		Mode:    info.Mode(),
	}
	if !e.IsDir {
		e.Size = info.Size()
	}
	return e, true, nil
}

// symlinkEntry follows links that resolve to a regular file inside the
// root. Anything else is skipped with a warning.
func symlinkEntry(realRoot, path, rel string) (Entry, bool, error) {
	logger := logging.GetLogger("walker").With().Str("path", rel).Logger()

	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		logger.Warn().Err(err).Msg("Skipping dangling symlink")
		return Entry{}, false, nil
	}
	if !within(realRoot, target) {
		logger.Warn().Str("target", target).Msg("Skipping symlink pointing outside the project")
		return Entry{}, false, nil
	}
	info, err := os.Stat(target)
	if err != nil {
		return Entry{}, false, errors.Wrapf(err, errors.ErrIO, "failed to stat %s", target).
			WithDetail(errors.DetailPath, path)
	}
	if !info.Mode().IsRegular() {
		logger.Warn().Str("target", target).Msg("Skipping symlink to a non-regular file")
		return Entry{}, false, nil
	}

	return Entry{
		RelPath: rel,
		AbsPath: target,
		Mode:    info.Mode(),
		Size:    info.Size(),
	}, true, nil
}

func cleanExcludes(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		out = append(out, abs)
	}
	return out
}

func isExcluded(path string, excludes []string) bool {
	for _, e := range excludes {
		if within(e, path) {
			return true
		}
	}
	return false
}

// within reports whether path is dir or below it
func within(dir, path string) bool {
	if path == dir {
		return true
	}
	return strings.HasPrefix(path, dir+string(filepath.Separator))
}
