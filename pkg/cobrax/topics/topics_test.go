package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"ignore-rules.md":       {Data: []byte("# Ignore rules\n\nPrefix matching.")},
		"manifest.txt":          {Data: []byte("Manifest fields")},
		"option-allow-dirty.md": {Data: []byte("Build with local changes")},
		"notes.json":            {Data: []byte("{}")},
		"nested/archives.md":    {Data: []byte("Store only")},
	}
}

func TestNew_ScansSupportedExtensions(t *testing.T) {
	tm, err := New(testFS(), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"archives", "ignore-rules", "manifest", "option-allow-dirty"}, tm.ListTopics())

	topic, ok := tm.GetTopic("manifest")
	require.True(t, ok)
	assert.Equal(t, "Manifest fields", topic.Content)

	_, ok = tm.GetTopic("notes")
	assert.False(t, ok)
}

func TestNew_CustomExtensions(t *testing.T) {
	tm, err := New(testFS(), Options{Extensions: []string{".json"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes"}, tm.ListTopics())
}

func TestGetTopic_FlagStyle(t *testing.T) {
	tm, err := New(testFS(), Options{})
	require.NoError(t, err)

	topic, ok := tm.GetTopic("--allow-dirty")
	require.True(t, ok)
	assert.Equal(t, "option-allow-dirty", topic.Name)
}

func TestShow(t *testing.T) {
	tm, err := New(testFS(), Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tm.Show(&buf, "customs", ""))
	assert.Contains(t, buf.String(), "General topics:\n  archives\n  ignore-rules\n  manifest\n")
	assert.Contains(t, buf.String(), "Option topics:\n  --allow-dirty\n")
	assert.Contains(t, buf.String(), "customs topics <topic>")

	buf.Reset()
	require.NoError(t, tm.Show(&buf, "customs", "manifest"))
	assert.Equal(t, "Manifest fields", buf.String())

	assert.Error(t, tm.Show(&buf, "customs", "nope"))
}

func TestShow_Empty(t *testing.T) {
	tm, err := New(fstest.MapFS{}, Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tm.Show(&buf, "customs", ""))
	assert.Equal(t, "No help topics available.\n", buf.String())
}

func TestInstall_HelpResolvesTopics(t *testing.T) {
	tm, err := New(testFS(), Options{})
	require.NoError(t, err)

	root := &cobra.Command{Use: "customs"}
	root.AddCommand(&cobra.Command{Use: "build", Short: "Build the package", Run: func(*cobra.Command, []string) {}})
	tm.Install(root)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"help", "manifest"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "Manifest fields", out.String())

	out.Reset()
	root.SetArgs([]string{"help", "build"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Build the package")
}

func TestMarkdownRenderer(t *testing.T) {
	r := NewMarkdownRenderer(false, 60)
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))

	rendered := r.Render("# Title\n\nBody", ".md")
	assert.Contains(t, rendered, "Title")
	assert.Contains(t, rendered, "Body")
}

func TestPlain(t *testing.T) {
	assert.Equal(t, "# raw", Plain.Render("# raw", ".md"))
}
