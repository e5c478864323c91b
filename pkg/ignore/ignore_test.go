// pkg/ignore/ignore_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: filesystem (t.TempDir)
// PURPOSE: Test predicates, flat ignore file parsing and policy resolution

package ignore_test

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/customs/pkg/errors"
	"github.com/arthur-debert/customs/pkg/ignore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	pred ignore.Predicate
	err  error
}

func (f fakeSource) IgnoreMatcher() (ignore.Predicate, error) { return f.pred, f.err }

func TestParseFlatFile(t *testing.T) {
	content := `
# dependency caches
node_modules/
./dist

   .cache
/secrets.txt
#not-a-rule
`
	got := ignore.ParseFlatFile([]byte(content))
	assert.Equal(t, ignore.Prefixes{"node_modules/", "dist", ".cache", "secrets.txt"}, got)
}

func TestParseFlatFile_Empty(t *testing.T) {
	assert.Empty(t, ignore.ParseFlatFile(nil))
	assert.Empty(t, ignore.ParseFlatFile([]byte("\n# only comments\n\n./\n")))
}

func TestPrefixes_IsPlainPrefixMatch(t *testing.T) {
	p := ignore.Prefixes{"node", "build/tmp"}

	tests := []struct {
		path string
		want bool
	}{
		{"node", true},
		{"node_modules", true}, // prefix collision, documented
		{"node_modules/pkg/index.js", true},
		{"build/tmp/x", true},
		{"build/output", false},
		{"src/node.lua", false},
		{"*.log", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Ignored(tt.path, false), tt.path)
	}
}

func TestPrefixes_TrailingSlashNamesDirectory(t *testing.T) {
	p := ignore.ParseFlatFile([]byte("build/\n"))

	assert.True(t, p.Ignored("build", true))
	assert.True(t, p.Ignored("build/out.zip", false))
	assert.False(t, p.Ignored("buildscripts", true))
	assert.False(t, p.Ignored("buildscripts/run.sh", false))
	assert.False(t, p.Ignored("build", false), "a file named build is not the directory")
}

func TestComponents_MatchAtAnyDepth(t *testing.T) {
	c := ignore.Components{".git"}

	assert.True(t, c.Ignored(".git", true))
	assert.True(t, c.Ignored("vendor/x/.git", true))
	assert.True(t, c.Ignored("vendor/x/.git/HEAD", false))
	assert.False(t, c.Ignored(".gitignore", false))
	assert.False(t, c.Ignored("vendor/x/.github/ci.yml", false))
}

func TestAny(t *testing.T) {
	assert.IsType(t, ignore.Nop{}, ignore.Any())
	assert.IsType(t, ignore.Nop{}, ignore.Any(nil, ignore.Nop{}))

	only := ignore.Prefixes{"a"}
	assert.Equal(t, only, ignore.Any(nil, only))

	combined := ignore.Any(ignore.Prefixes{"a"}, ignore.Func(func(p string, isDir bool) bool {
		return isDir && p == "b"
	}))
	assert.True(t, combined.Ignored("a/x", false))
	assert.True(t, combined.Ignored("b", true))
	assert.False(t, combined.Ignored("b", false))
	assert.False(t, combined.Ignored("c", false))
}

func TestClean(t *testing.T) {
	assert.Equal(t, "a/b", ignore.Clean("./a/b/"))
	assert.Equal(t, "a/b", ignore.Clean(`a\b`))
	assert.Equal(t, "", ignore.Clean("."))
	assert.Equal(t, "x", ignore.Clean("/x"))
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"auto", "vcs", "file", "none"} {
		mode, err := ignore.ParseMode(s)
		require.NoError(t, err)
		assert.Equal(t, ignore.Mode(s), mode)
	}

	mode, err := ignore.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ignore.ModeAuto, mode)

	_, err = ignore.ParseMode("glob")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestResolve(t *testing.T) {
	vcs := fakeSource{pred: ignore.Func(func(p string, _ bool) bool { return p == "vendor" })}

	withFile := func(t *testing.T) string {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, ignore.DefaultFileName), []byte("node_modules\n"), 0644))
		return root
	}

	t.Run("auto combines vcs and file", func(t *testing.T) {
		pred, err := ignore.Resolve(withFile(t), ignore.Options{Mode: ignore.ModeAuto, VCS: vcs})
		require.NoError(t, err)
		assert.True(t, pred.Ignored("vendor", true))
		assert.True(t, pred.Ignored("node_modules/x", false))
		assert.True(t, pred.Ignored(".git/HEAD", false))
		assert.False(t, pred.Ignored("src/main.lua", false))
	})

	t.Run("auto without sources only hides .git", func(t *testing.T) {
		pred, err := ignore.Resolve(t.TempDir(), ignore.Options{})
		require.NoError(t, err)
		assert.True(t, pred.Ignored(".git", true))
		assert.False(t, pred.Ignored("node_modules", true))
	})

	t.Run("vcs ignores the flat file", func(t *testing.T) {
		pred, err := ignore.Resolve(withFile(t), ignore.Options{Mode: ignore.ModeVCS, VCS: vcs})
		require.NoError(t, err)
		assert.True(t, pred.Ignored("vendor", true))
		assert.False(t, pred.Ignored("node_modules", true))
	})

	t.Run("vcs without repository fails", func(t *testing.T) {
		_, err := ignore.Resolve(t.TempDir(), ignore.Options{Mode: ignore.ModeVCS})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRepoNotFound))
	})

	t.Run("file ignores vcs rules", func(t *testing.T) {
		pred, err := ignore.Resolve(withFile(t), ignore.Options{Mode: ignore.ModeFile, VCS: vcs})
		require.NoError(t, err)
		assert.False(t, pred.Ignored("vendor", true))
		assert.True(t, pred.Ignored("node_modules", true))
	})

	t.Run("file with custom name", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, ".pkgignore"), []byte("docs/\n"), 0644))

		pred, err := ignore.Resolve(root, ignore.Options{Mode: ignore.ModeFile, FileName: ".pkgignore"})
		require.NoError(t, err)
		assert.True(t, pred.Ignored("docs/readme.md", false))
	})

	t.Run("none includes everything but .git", func(t *testing.T) {
		pred, err := ignore.Resolve(withFile(t), ignore.Options{Mode: ignore.ModeNone, VCS: vcs})
		require.NoError(t, err)
		assert.False(t, pred.Ignored("vendor", true))
		assert.False(t, pred.Ignored("node_modules", true))
		assert.True(t, pred.Ignored(".git", true))
		assert.True(t, pred.Ignored("vendor/x/.git", true))
	})

	t.Run("matcher errors propagate", func(t *testing.T) {
		boom := stderrors.New("boom")
		_, err := ignore.Resolve(t.TempDir(), ignore.Options{VCS: fakeSource{err: boom}})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := ignore.Resolve(t.TempDir(), ignore.Options{Mode: "glob"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestLoadFlatFile_Missing(t *testing.T) {
	prefixes, err := ignore.LoadFlatFile(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, prefixes)
}
