//go:build unix

package walker_test

import (
	"syscall"
	"testing"

	"github.com/arthur-debert/customs/pkg/testutil"
	"github.com/arthur-debert/customs/pkg/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk_SkipsSpecialFiles(t *testing.T) {
	p := testutil.NewProject(t)
	p.AddFile("init.lua", "x")
	require.NoError(t, syscall.Mkfifo(p.Path("pipe"), 0644))

	entries, err := walker.Collect(p.Root, walker.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"init.lua"}, relPaths(entries))
}
