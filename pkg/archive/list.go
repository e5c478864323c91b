package archive

import (
	"archive/zip"
	"io/fs"
	"time"

	"github.com/arthur-debert/customs/pkg/errors"
	"github.com/arthur-debert/customs/pkg/internal/hashutil"
)

// Item describes one entry of an existing archive
type Item struct {
	Name     string
	Size     uint64
	Mode     fs.FileMode
	Stored   bool
	Modified time.Time
}

// Items reads the central directory of the archive at path
func Items(path string) ([]Item, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to open archive %s", path).
			WithDetail(errors.DetailPath, path)
	}
	defer func() { _ = r.Close() }()

	items := make([]Item, 0, len(r.File))
	for _, f := range r.File {
		items = append(items, Item{
			Name:     f.Name,
			Size:     f.UncompressedSize64,
			Mode:     f.Mode(),
			Stored:   f.Method == zip.Store,
			Modified: f.Modified,
		})
	}
	return items, nil
}

// List returns the entry names of the archive at path, in archive order
func List(path string) ([]string, error) {
	items, err := Items(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names, nil
}

// Digest returns the sha256 of the archive file at path, formatted the same
// way as Result.Digest
func Digest(path string) (string, error) {
	digest, err := hashutil.File(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "failed to read archive %s", path).
			WithDetail(errors.DetailPath, path)
	}
	return digest, nil
}
