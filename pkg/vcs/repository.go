package vcs

import (
	stderrors "errors"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/customs/pkg/errors"
	"github.com/arthur-debert/customs/pkg/ignore"
	"github.com/arthur-debert/customs/pkg/logging"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/rs/zerolog"
)

// Repository is a git working tree seen from a project directory
type Repository struct {
	repo     *gogit.Repository
	worktree *gogit.Worktree

	// prefix is the project directory relative to the worktree root, "" when they match
	prefix string

	logger zerolog.Logger
}

// Open opens the repository containing projectRoot. The repository may
// start in a parent directory.
func Open(projectRoot string) (*Repository, error) {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to resolve %s", projectRoot)
	}

	repo, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if stderrors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, errors.Newf(errors.ErrRepoNotFound, "no git repository found at %s", abs).
				WithDetail(errors.DetailPath, abs)
		}
		return nil, errors.Wrapf(err, errors.ErrRepoNotFound, "failed to open git repository at %s", abs).
			WithDetail(errors.DetailPath, abs)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRepoNotFound, "repository at %s has no working tree", abs).
			WithDetail(errors.DetailPath, abs)
	}

	root := wt.Filesystem.Root()
	prefix, err := relativeTo(root, abs)
	if err != nil {
		return nil, err
	}

	r := &Repository{
		repo:     repo,
		worktree: wt,
		prefix:   prefix,
		logger:   logging.GetLogger("vcs").With().Str("root", root).Str("prefix", prefix).Logger(),
	}
	// Status only reads the worktree's own rules, user excludes go in here
	wt.Excludes = append(wt.Excludes, r.userPatterns()...)
	r.logger.Debug().Int("userPatterns", len(wt.Excludes)).Msg("Opened repository")
	return r, nil
}

// userPatterns loads the files named by core.excludesFile in the system and
// global git config. Unreadable config is skipped.
func (r *Repository) userPatterns() []gitignore.Pattern {
	rootFS := osfs.New("/")
	var patterns []gitignore.Pattern
	sources := []struct {
		scope string
		load  func(billy.Filesystem) ([]gitignore.Pattern, error)
	}{
		{"system", gitignore.LoadSystemPatterns},
		{"global", gitignore.LoadGlobalPatterns},
	}
	for _, src := range sources {
		ps, err := src.load(rootFS)
		if err != nil {
			r.logger.Debug().Err(err).Str("scope", src.scope).Msg("Skipping user ignore rules")
			continue
		}
		patterns = append(patterns, ps...)
	}
	return patterns
}

// IgnoreMatcher returns the repository's ignore rules as a predicate over
// project-relative paths. It reads every nested .gitignore,
// .git/info/exclude and the user's core.excludesFile.
func (r *Repository) IgnoreMatcher() (ignore.Predicate, error) {
	repoPatterns, err := gitignore.ReadPatterns(r.worktree.Filesystem, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRepoStatus, "failed to read ignore rules")
	}
	// later patterns win, so repository rules override user excludes
	patterns := append(append([]gitignore.Pattern{}, r.worktree.Excludes...), repoPatterns...)
	r.logger.Debug().Int("patterns", len(patterns)).Msg("Loaded ignore patterns")

	matcher := gitignore.NewMatcher(patterns)
	prefix := r.prefix
	return ignore.Func(func(relPath string, isDir bool) bool {
		full := relPath
		if prefix != "" {
			full = prefix + "/" + relPath
		}
		return matcher.Match(strings.Split(full, "/"), isDir)
	}), nil
}

// relativeTo returns dir relative to root with forward slashes. Symlinks are
// resolved first so /tmp vs /private/tmp style aliases still line up.
func relativeTo(root, dir string) (string, error) {
	resolvedRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		resolvedRoot = root
	}
	resolvedDir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		resolvedDir = dir
	}
	rel, err := filepath.Rel(resolvedRoot, resolvedDir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", errors.Newf(errors.ErrRepoNotFound, "%s is outside repository %s", dir, root)
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}
