// Package archive writes the package artifact: a store-only zip whose bytes
// depend only on the entries given to it.
//
// Every entry carries the same fixed modification time, entries are written
// in the order the source yields them, and directories are recorded as
// "name/" entries. Two builds of an unchanged tree are byte-identical.
package archive

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/customs/pkg/errors"
	"github.com/arthur-debert/customs/pkg/internal/hashutil"
	"github.com/arthur-debert/customs/pkg/logging"
	"github.com/arthur-debert/customs/pkg/walker"
)

// Epoch is the modification time stamped on every entry
var Epoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Source feeds entries to the builder. It must call yield for each entry in
// order and return the first error yield returns.
type Source func(yield func(walker.Entry) error) error

// FromEntries adapts a slice to a Source
func FromEntries(entries []walker.Entry) Source {
	return func(yield func(walker.Entry) error) error {
		for _, e := range entries {
			if err := yield(e); err != nil {
				return err
			}
		}
		return nil
	}
}

// FromWalk streams entries straight from a tree walk
func FromWalk(root string, opts walker.Options) Source {
	return func(yield func(walker.Entry) error) error {
		return walker.Walk(root, opts, yield)
	}
}

// Options controls how the artifact is written
type Options struct {
	// Atomic writes to a temporary file next to the output and renames it
	// into place on success. A failed build then leaves any previous
	// artifact untouched.
	Atomic bool
	// PreserveTimes stamps entries with their on-disk modification time
	// instead of Epoch. The output is no longer reproducible.
	PreserveTimes bool
}

// Result summarizes a written archive
type Result struct {
	Path    string
	Entries int
	Files   int
	Dirs    int
	// Bytes is the total uncompressed content size
	Bytes int64
	// Digest is the sha256 of the written archive
	Digest string
}

// Build writes the entries of src to outputPath. The output directory must
// already exist.
func Build(outputPath string, src Source, opts Options) (*Result, error) {
	logger := logging.GetLogger("archive").With().
		Str("output", outputPath).
		Bool("atomic", opts.Atomic).
		Logger()

	dir := filepath.Dir(outputPath)
	var (
		file *os.File
		err  error
	)
	if opts.Atomic {
		file, err = os.CreateTemp(dir, "."+filepath.Base(outputPath)+".tmp-*")
	} else {
		file, err = os.Create(outputPath)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to create %s", outputPath).
			WithDetail(errors.DetailPath, outputPath)
	}
	tmpPath := file.Name()

	fail := func(err error) (*Result, error) {
		_ = file.Close()
		if opts.Atomic {
			_ = os.Remove(tmpPath)
		}
		return nil, err
	}

	result := &Result{Path: outputPath}
	digest := hashutil.New()
	zw := zip.NewWriter(io.MultiWriter(file, digest))

	err = src(func(e walker.Entry) error {
		return writeEntry(zw, e, opts, result)
	})
	if err != nil {
		logger.Debug().Err(err).Int("written", result.Entries).Msg("Archive aborted")
		return fail(err)
	}

	if err := zw.Close(); err != nil {
		return fail(errors.Wrap(err, errors.ErrIO, "failed to finalize archive").
			WithDetail(errors.DetailPath, outputPath))
	}
	if err := file.Close(); err != nil {
		return fail(errors.Wrap(err, errors.ErrIO, "failed to close archive").
			WithDetail(errors.DetailPath, outputPath))
	}

	if opts.Atomic {
		if err := os.Chmod(tmpPath, 0644); err != nil {
			_ = os.Remove(tmpPath)
			return nil, errors.Wrap(err, errors.ErrIO, "failed to set archive permissions").
				WithDetail(errors.DetailPath, tmpPath)
		}
		if err := os.Rename(tmpPath, outputPath); err != nil {
			_ = os.Remove(tmpPath)
			return nil, errors.Wrapf(err, errors.ErrIO, "failed to move archive into place at %s", outputPath).
				WithDetail(errors.DetailPath, outputPath)
		}
	}

	result.Digest = digest.String()

	logger.Info().
		Str("digest", result.Digest).
		Int("files", result.Files).
		Int("dirs", result.Dirs).
		Int64("bytes", result.Bytes).
		Msg("Archive written")

	return result, nil
}

func writeEntry(zw *zip.Writer, e walker.Entry, opts Options, result *Result) error {
	header := &zip.FileHeader{
		Name:     e.RelPath,
		Method:   zip.Store,
		Modified: Epoch,
	}

	if opts.PreserveTimes {
		if info, err := os.Stat(e.AbsPath); err == nil {
			header.Modified = info.ModTime().UTC().Truncate(time.Second)
		}
	}

	if e.IsDir {
		header.Name += "/"
		header.SetMode(fs.ModeDir | 0755)
		if _, err := zw.CreateHeader(header); err != nil {
			return writeError(err, e)
		}
		result.Dirs++
		result.Entries++
		return nil
	}

	perm := e.Mode.Perm()
	if perm == 0 {
		perm = 0644
	}
	header.SetMode(perm)

	w, err := zw.CreateHeader(header)
	if err != nil {
		return writeError(err, e)
	}

	src, err := os.Open(e.AbsPath)
	if err != nil {
		return writeError(err, e)
	}
	n, err := io.Copy(w, src)
	_ = src.Close()
	if err != nil {
		return writeError(err, e)
	}

	result.Files++
	result.Entries++
	result.Bytes += n
	return nil
}

func writeError(err error, e walker.Entry) error {
	return errors.Wrapf(err, errors.ErrArchiveWrite, "failed to add %s to archive", e.RelPath).
		WithDetail(errors.DetailPath, e.RelPath)
}
