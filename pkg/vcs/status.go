package vcs

import (
	"sort"
	"strings"

	"github.com/arthur-debert/customs/pkg/errors"
	gogit "github.com/go-git/go-git/v5"
)

// maxReportedPaths caps the dirty paths attached to a REPO_DIRTY error
const maxReportedPaths = 10

// StatusOptions tune what counts as a change
type StatusOptions struct {
	// IncludeUntracked makes untracked files count as changes
	IncludeUntracked bool
	// Exclude lists project-relative paths whose changes are not counted,
	// typically the build's own output directory
	Exclude []string
}

// Status is the working tree state of the project directory
type Status struct {
	Dirty bool
	// Paths are the changed paths relative to the project directory, sorted
	Paths []string
}

// StatusReader is the part of Repository the cleanliness check needs
type StatusReader interface {
	Status(opts StatusOptions) (*Status, error)
}

// Status computes the working tree status restricted to the project directory
func (r *Repository) Status(opts StatusOptions) (*Status, error) {
	st, err := r.worktree.Status()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRepoStatus, "failed to get repository status")
	}

	result := &Status{}
	for path, fs := range st {
		if fs.Staging == gogit.Unmodified && fs.Worktree == gogit.Unmodified {
			continue
		}
		untracked := fs.Worktree == gogit.Untracked && (fs.Staging == gogit.Untracked || fs.Staging == gogit.Unmodified)
		if untracked && !opts.IncludeUntracked {
			continue
		}

		rel, ok := r.projectRelative(path)
		if !ok || excluded(rel, opts.Exclude) {
			continue
		}
		result.Paths = append(result.Paths, rel)
	}

	sort.Strings(result.Paths)
	result.Dirty = len(result.Paths) > 0

	r.logger.Debug().
		Bool("dirty", result.Dirty).
		Int("changes", len(result.Paths)).
		Bool("includeUntracked", opts.IncludeUntracked).
		Msg("Computed repository status")

	return result, nil
}

// CheckClean fails with REPO_DIRTY when the project has changes
func CheckClean(reader StatusReader, opts StatusOptions) error {
	status, err := reader.Status(opts)
	if err != nil {
		return err
	}
	if !status.Dirty {
		return nil
	}

	reported := status.Paths
	if len(reported) > maxReportedPaths {
		reported = reported[:maxReportedPaths]
	}
	return errors.Newf(errors.ErrRepoDirty,
		"repository has %d uncommitted change(s); commit them or pass --allow-dirty", len(status.Paths)).
		WithDetail(errors.DetailPaths, reported)
}

func (r *Repository) projectRelative(path string) (string, bool) {
	if r.prefix == "" {
		return path, true
	}
	if !strings.HasPrefix(path, r.prefix+"/") {
		return "", false
	}
	return strings.TrimPrefix(path, r.prefix+"/"), true
}

func excluded(rel string, exclude []string) bool {
	for _, e := range exclude {
		if e == "" {
			continue
		}
		if rel == e || strings.HasPrefix(rel, e+"/") {
			return true
		}
	}
	return false
}
