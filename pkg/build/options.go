package build

import (
	"github.com/arthur-debert/customs/pkg/collision"
	"github.com/arthur-debert/customs/pkg/config"
	"github.com/arthur-debert/customs/pkg/ignore"
	"github.com/arthur-debert/customs/pkg/vcs"
)

// Repository is what the pipeline needs from version control
type Repository interface {
	vcs.StatusReader
	ignore.MatcherSource
}

// RepoOpener opens the repository for a project root
type RepoOpener func(root string) (Repository, error)

// OpenGit opens a git repository with go-git
func OpenGit(root string) (Repository, error) {
	repo, err := vcs.Open(root)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// Options is the complete input of one build
type Options struct {
	// Root is the project directory
	Root string
	// ManifestPath overrides manifest discovery
	ManifestPath string
	// ManifestFiles are probed under Root when ManifestPath is empty
	ManifestFiles []string

	AllowDirty bool
	AutoYes    bool
	DryRun     bool

	IgnoreMode ignore.Mode
	IgnoreFile string

	UntrackedIsDirty bool
	Atomic           bool
	PreserveTimes    bool

	// Target is the output directory used when the manifest names none
	Target string
	// Extension of the artifact, without the dot
	Extension string

	// Confirmer is asked before overwriting. nil declines.
	Confirmer collision.Confirmer
	// OpenRepo defaults to OpenGit
	OpenRepo RepoOpener
}

// NewOptions fills Options from the resolved configuration
func NewOptions(root string, cfg *config.Config) Options {
	return Options{
		Root:             root,
		ManifestFiles:    cfg.Manifest.Files,
		IgnoreMode:       ignore.Mode(cfg.Ignore.Mode),
		IgnoreFile:       cfg.Ignore.File,
		UntrackedIsDirty: cfg.Repository.UntrackedIsDirty,
		Atomic:           cfg.Output.Atomic,
		PreserveTimes:    cfg.Output.PreserveTimes,
		Target:           cfg.Output.Target,
		Extension:        cfg.Output.Extension,
		OpenRepo:         OpenGit,
	}
}

func (o Options) withDefaults() Options {
	if o.Target == "" {
		o.Target = "target"
	}
	if o.Extension == "" {
		o.Extension = "zip"
	}
	if o.IgnoreFile == "" {
		o.IgnoreFile = ignore.DefaultFileName
	}
	if o.OpenRepo == nil {
		o.OpenRepo = OpenGit
	}
	return o
}
