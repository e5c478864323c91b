// pkg/archive/archive_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: filesystem (t.TempDir)
// PURPOSE: Test deterministic store-only archive output and failure cleanup

package archive_test

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/customs/pkg/archive"
	"github.com/arthur-debert/customs/pkg/errors"
	"github.com/arthur-debert/customs/pkg/testutil"
	"github.com/arthur-debert/customs/pkg/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProject(t *testing.T) *testutil.TestProject {
	t.Helper()

	p := testutil.NewProject(t)
	p.AddFiles(map[string]string{
		"init.lua":     "return {}\n",
		"src/core.lua": "local M = {}\nreturn M\n",
	})
	p.AddExecutable("bin/run", "#!/bin/sh\necho hi\n")
	return p
}

func readEntry(t *testing.T, path, name string) []byte {
	t.Helper()

	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer func() { _ = rc.Close() }()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return data
	}
	t.Fatalf("entry %s not found", name)
	return nil
}

func TestBuild_WritesEntriesInOrder(t *testing.T) {
	p := sampleProject(t)
	out := filepath.Join(t.TempDir(), "demo@1.0.0.zip")

	result, err := archive.Build(out, archive.FromWalk(p.Root, walker.Options{}), archive.Options{Atomic: true})
	require.NoError(t, err)

	assert.Equal(t, out, result.Path)
	assert.Equal(t, 3, result.Files)
	assert.Equal(t, 2, result.Dirs)
	assert.Equal(t, 5, result.Entries)

	names, err := archive.List(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"bin/", "bin/run", "init.lua", "src/", "src/core.lua"}, names)

	assert.Equal(t, "local M = {}\nreturn M\n", string(readEntry(t, out, "src/core.lua")))
}

func TestBuild_StoreOnlyWithFixedTimesAndModes(t *testing.T) {
	p := sampleProject(t)
	out := filepath.Join(t.TempDir(), "out.zip")

	_, err := archive.Build(out, archive.FromWalk(p.Root, walker.Options{}), archive.Options{Atomic: true})
	require.NoError(t, err)

	items, err := archive.Items(out)
	require.NoError(t, err)
	for _, it := range items {
		assert.True(t, it.Stored, it.Name)
		assert.True(t, it.Modified.Equal(archive.Epoch), "%s modified at %s", it.Name, it.Modified)
	}

	modes := map[string]os.FileMode{}
	for _, it := range items {
		modes[it.Name] = it.Mode
	}
	assert.True(t, modes["bin/"].IsDir())
	assert.Equal(t, os.FileMode(0755), modes["bin/run"].Perm())
	assert.Equal(t, os.FileMode(0644), modes["init.lua"].Perm())

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestBuild_Deterministic(t *testing.T) {
	p := sampleProject(t)
	dir := t.TempDir()
	first := filepath.Join(dir, "a.zip")
	second := filepath.Join(dir, "b.zip")

	r1, err := archive.Build(first, archive.FromWalk(p.Root, walker.Options{}), archive.Options{Atomic: true})
	require.NoError(t, err)

	// Touch a file without changing content
	require.NoError(t, os.Chtimes(p.Path("init.lua"), archive.Epoch.AddDate(30, 0, 0), archive.Epoch.AddDate(30, 0, 0)))

	r2, err := archive.Build(second, archive.FromWalk(p.Root, walker.Options{}), archive.Options{Atomic: false})
	require.NoError(t, err)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b), "archives of an unchanged tree must be byte-identical")

	assert.Regexp(t, `^sha256:[0-9a-f]{64}$`, r1.Digest)
	assert.Equal(t, r1.Digest, r2.Digest)
	onDisk, err := archive.Digest(first)
	require.NoError(t, err)
	assert.Equal(t, r1.Digest, onDisk)
}

func TestBuild_PreserveTimes(t *testing.T) {
	p := sampleProject(t)
	stamp := time.Date(2020, 1, 2, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(p.Path("init.lua"), stamp, stamp))
	out := filepath.Join(t.TempDir(), "out.zip")

	_, err := archive.Build(out, archive.FromWalk(p.Root, walker.Options{}), archive.Options{PreserveTimes: true})
	require.NoError(t, err)

	items, err := archive.Items(out)
	require.NoError(t, err)
	modified := map[string]time.Time{}
	for _, it := range items {
		modified[it.Name] = it.Modified
	}
	assert.True(t, modified["init.lua"].Equal(stamp), "init.lua modified at %s", modified["init.lua"])
	assert.False(t, modified["src/core.lua"].Equal(archive.Epoch))
}

func TestBuild_EmptySource(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.zip")

	result, err := archive.Build(out, archive.FromEntries(nil), archive.Options{Atomic: true})
	require.NoError(t, err)
	assert.Zero(t, result.Entries)

	names, err := archive.List(out)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestBuild_AtomicFailureKeepsPreviousArtifact(t *testing.T) {
	p := sampleProject(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "demo@1.0.0.zip")
	require.NoError(t, os.WriteFile(out, []byte("previous"), 0644))

	entries, err := walker.Collect(p.Root, walker.Options{})
	require.NoError(t, err)
	entries = append(entries, walker.Entry{RelPath: "vanished.txt", AbsPath: filepath.Join(p.Root, "vanished.txt")})

	_, err = archive.Build(out, archive.FromEntries(entries), archive.Options{Atomic: true})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveWrite))
	assert.Equal(t, "vanished.txt", errors.GetErrorDetails(err)[errors.DetailPath])

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))

	leftovers, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, leftovers, 1, "temporary file must be removed")
}

func TestBuild_NonAtomicFailureLeavesPartialFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.zip")
	entries := []walker.Entry{{RelPath: "missing.txt", AbsPath: filepath.Join(t.TempDir(), "missing.txt")}}

	_, err := archive.Build(out, archive.FromEntries(entries), archive.Options{Atomic: false})
	require.Error(t, err)
	assert.FileExists(t, out)
}

func TestBuild_MissingOutputDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nope", "out.zip")

	_, err := archive.Build(out, archive.FromEntries(nil), archive.Options{Atomic: true})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrIO))
}

func TestList_NotAnArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0644))

	_, err := archive.List(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrIO))
}
