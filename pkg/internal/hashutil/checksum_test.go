package hashutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.zip")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	digest, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, "sha256:2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", digest)

	_, err = File(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestDigest_MatchesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	fromFile, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, New().String(), fromFile)

	d := New()
	_, _ = d.Write([]byte("hel"))
	_, _ = d.Write([]byte("lo"))
	assert.Equal(t, "sha256:2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", d.String())
}
