// pkg/testutil/repo.go
// DEPENDENCIES: go-git
// PURPOSE: Create real git repositories for repository state tests

package testutil

import (
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

var testSignature = object.Signature{
	Name:  "Test User",
	Email: "test@example.com",
}

// InitRepo initializes a git repository at the project root and commits
// every file present.
func (p *TestProject) InitRepo() *gogit.Repository {
	p.t.Helper()

	repo, err := gogit.PlainInit(p.Root, false)
	require.NoError(p.t, err)
	p.Commit("initial commit")
	return repo
}

// InitRepoAt initializes the repository at dir, which must contain the
// project root, and commits every file.
func InitRepoAt(p *TestProject, dir string) *gogit.Repository {
	p.t.Helper()

	repo, err := gogit.PlainInit(dir, false)
	require.NoError(p.t, err)

	wt, err := repo.Worktree()
	require.NoError(p.t, err)
	require.NoError(p.t, wt.AddWithOptions(&gogit.AddOptions{All: true}))
	commit(p, wt, "initial commit")
	return repo
}

// Commit stages all changes in the project repository and commits them
func (p *TestProject) Commit(message string) {
	p.t.Helper()

	repo, err := gogit.PlainOpenWithOptions(p.Root, &gogit.PlainOpenOptions{DetectDotGit: true})
	require.NoError(p.t, err)
	wt, err := repo.Worktree()
	require.NoError(p.t, err)
	require.NoError(p.t, wt.AddWithOptions(&gogit.AddOptions{All: true}))
	commit(p, wt, message)
}

func commit(p *TestProject, wt *gogit.Worktree, message string) {
	p.t.Helper()

	sig := testSignature
	sig.When = time.Now()
	_, err := wt.Commit(message, &gogit.CommitOptions{Author: &sig, AllowEmptyCommits: true})
	require.NoError(p.t, err)
}
