// pkg/testutil/project.go
// DEPENDENCIES: filesystem (t.TempDir)
// PURPOSE: Declarative project tree setup for build tests

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestProject is a project directory under test
type TestProject struct {
	Root string

	t *testing.T
}

// NewProject creates an empty project directory
func NewProject(t *testing.T) *TestProject {
	t.Helper()

	root := filepath.Join(t.TempDir(), "project")
	require.NoError(t, os.MkdirAll(root, 0755))
	return &TestProject{Root: root, t: t}
}

// Path joins a slash separated relative path onto the project root
func (p *TestProject) Path(rel string) string {
	return filepath.Join(p.Root, filepath.FromSlash(rel))
}

// AddFile writes a file, creating parent directories
func (p *TestProject) AddFile(rel, content string) string {
	p.t.Helper()

	path := p.Path(rel)
	require.NoError(p.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(p.t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// AddExecutable writes a file with the executable bit set
func (p *TestProject) AddExecutable(rel, content string) string {
	p.t.Helper()

	path := p.AddFile(rel, content)
	require.NoError(p.t, os.Chmod(path, 0755))
	return path
}

// AddDir creates an empty directory
func (p *TestProject) AddDir(rel string) string {
	p.t.Helper()

	path := p.Path(rel)
	require.NoError(p.t, os.MkdirAll(path, 0755))
	return path
}

// AddFiles writes every file of the map
func (p *TestProject) AddFiles(files map[string]string) {
	p.t.Helper()

	for rel, content := range files {
		p.AddFile(rel, content)
	}
}

// AddSymlink creates link pointing at target (kept as given)
func (p *TestProject) AddSymlink(rel, target string) string {
	p.t.Helper()

	path := p.Path(rel)
	require.NoError(p.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(p.t, os.Symlink(target, path))
	return path
}

// AddManifest writes manifest.toml with the given content
func (p *TestProject) AddManifest(content string) string {
	p.t.Helper()
	return p.AddFile("manifest.toml", content)
}

// AddIgnoreFile writes the flat ignore file
func (p *TestProject) AddIgnoreFile(content string) string {
	p.t.Helper()
	return p.AddFile(".customsignore", content)
}

// Remove deletes a path relative to the root
func (p *TestProject) Remove(rel string) {
	p.t.Helper()
	require.NoError(p.t, os.RemoveAll(p.Path(rel)))
}

// ReadFile returns the content of a project file
func (p *TestProject) ReadFile(rel string) []byte {
	p.t.Helper()

	data, err := os.ReadFile(p.Path(rel))
	require.NoError(p.t, err)
	return data
}

// Exists reports whether rel exists under the root
func (p *TestProject) Exists(rel string) bool {
	_, err := os.Lstat(p.Path(rel))
	return err == nil
}

// DemoManifest is the manifest of the canonical demo project
const DemoManifest = `name = "demo"
version = "1.2.0"

[dependencies]
core = ">=1.0.0"
`

// Demo builds the canonical project: a committed repository with sources,
// a node_modules directory excluded by .gitignore and the target directory
// ignored as well.
func Demo(t *testing.T) *TestProject {
	t.Helper()

	p := NewProject(t)
	p.AddManifest(DemoManifest)
	p.AddFiles(map[string]string{
		"init.lua":       "return require('demo.core')\n",
		"src/core.lua":   "local M = {}\nreturn M\n",
		"src/util.lua":   "return {}\n",
		"README.md":      "# demo\n",
		".gitignore":     "node_modules/\ntarget/\n",
		"docs/guide.md":  "guide\n",
		"assets/img.png": "\x89PNG\r\n\x1a\n",
	})
	p.InitRepo()
	p.AddFile("node_modules/left-pad/index.js", "module.exports = 1\n")
	return p
}
