package build

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/customs/pkg/archive"
	"github.com/arthur-debert/customs/pkg/collision"
	"github.com/arthur-debert/customs/pkg/errors"
	"github.com/arthur-debert/customs/pkg/ignore"
	"github.com/arthur-debert/customs/pkg/logging"
	"github.com/arthur-debert/customs/pkg/manifest"
	"github.com/arthur-debert/customs/pkg/vcs"
	"github.com/arthur-debert/customs/pkg/walker"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Result describes a finished, canceled or failed run
type Result struct {
	BuildID  string
	Manifest *manifest.Manifest
	// OutputPath is the artifact location, known once the manifest loaded
	OutputPath string

	State State
	// FailedAt is the stage that failed when State is StateFailed
	FailedAt State
	// Canceled is set when the user declined to overwrite
	Canceled bool
	DryRun   bool
	// OutputExists reports a pre-existing artifact seen by a dry run
	OutputExists bool

	Archive *archive.Result
	// Entries is filled by dry runs only
	Entries []walker.Entry
}

type run struct {
	opts   Options
	result *Result
	logger zerolog.Logger
}

// Run executes the pipeline. The Result is returned on failure too, with
// State set to StateFailed and FailedAt naming the stage. Declining an
// overwrite is not an error: Canceled is set and the error is nil.
func Run(opts Options) (*Result, error) {
	opts = opts.withDefaults()

	r := &run{
		opts:   opts,
		result: &Result{BuildID: uuid.NewString(), DryRun: opts.DryRun},
	}
	r.logger = logging.ForBuild("build", r.result.BuildID).With().
		Str("root", opts.Root).
		Logger()

	finish := logging.Track(r.logger, "build")
	err := r.execute()
	finish(err)
	if err != nil {
		r.result.FailedAt = r.result.State
		r.result.State = StateFailed
		r.logger.Info().
			Err(err).
			Str("stage", r.result.FailedAt.String()).
			Str("code", string(errors.GetErrorCode(err))).
			Msg("Build failed")
		return r.result, err
	}
	return r.result, nil
}

func (r *run) enter(s State) {
	r.result.State = s
	r.logger.Debug().Str("state", s.String()).Msg("Entering stage")
}

func (r *run) skip(s State, reason string) {
	r.logger.Info().Str("state", s.String()).Str("reason", reason).Msg("Skipping stage")
}

func (r *run) execute() error {
	opts := r.opts

	r.enter(StateLoadManifest)
	m, err := r.loadManifest()
	if err != nil {
		return err
	}
	r.result.Manifest = m

	targetDir, err := m.TargetDir(opts.Root, opts.Target)
	if err != nil {
		return err
	}
	r.result.OutputPath = filepath.Join(targetDir, m.ArchiveName(opts.Extension))
	r.logger = r.logger.With().
		Str("package", m.Name).
		Str("version", m.Version.String()).
		Logger()

	repo, repoErr := r.openRepo()

	if opts.AllowDirty {
		r.skip(StateCheckRepo, "dirty trees allowed")
	} else {
		r.enter(StateCheckRepo)
		if repoErr != nil {
			return repoErr
		}
		statusOpts := vcs.StatusOptions{
			IncludeUntracked: opts.UntrackedIsDirty,
			Exclude:          relativeExcludes(opts.Root, targetDir),
		}
		if err := vcs.CheckClean(repo, statusOpts); err != nil {
			return err
		}
	}

	r.enter(StateResolveIgnore)
	ignoreOpts := ignore.Options{Mode: opts.IgnoreMode, FileName: opts.IgnoreFile}
	if repo != nil {
		ignoreOpts.VCS = repo
	}
	pred, err := ignore.Resolve(opts.Root, ignoreOpts)
	if err != nil {
		return err
	}
	walkOpts := walker.Options{Ignore: pred, Exclude: []string{targetDir}}

	if opts.DryRun {
		return r.dryRun(walkOpts)
	}

	if opts.AutoYes {
		r.skip(StateCheckCollision, "overwrite pre-approved")
	} else {
		r.enter(StateCheckCollision)
		ok, err := collision.Resolve(r.result.OutputPath, false, opts.Confirmer)
		if err != nil {
			return err
		}
		if !ok {
			r.result.Canceled = true
			r.logger.Info().Str("output", r.result.OutputPath).Msg("Overwrite declined, build canceled")
			return nil
		}
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to create target directory %s", targetDir).
			WithDetail(errors.DetailPath, targetDir)
	}

	return r.writeArchive(walkOpts)
}

func (r *run) loadManifest() (*manifest.Manifest, error) {
	path := r.opts.ManifestPath
	if path == "" {
		found, err := manifest.Find(r.opts.Root, r.opts.ManifestFiles...)
		if err != nil {
			return nil, err
		}
		path = found
	}
	return manifest.Load(path)
}

// openRepo returns a nil Repository and the open error when the project is
// not under version control. Callers decide whether that is fatal.
func (r *run) openRepo() (Repository, error) {
	repo, err := r.opts.OpenRepo(r.opts.Root)
	if err != nil {
		r.logger.Debug().Err(err).Msg("No repository")
		return nil, err
	}
	return repo, nil
}

func (r *run) dryRun(walkOpts walker.Options) error {
	if _, err := os.Stat(r.result.OutputPath); err == nil {
		r.result.OutputExists = true
	}

	r.enter(StateWalk)
	entries, err := walker.Collect(r.opts.Root, walkOpts)
	if err != nil {
		return err
	}
	r.result.Entries = entries

	r.enter(StateDone)
	r.logger.Info().Int("entries", len(entries)).Msg("Dry run complete")
	return nil
}

func (r *run) writeArchive(walkOpts walker.Options) error {
	r.enter(StateWalk)

	// Entries stream from the walk into the archive, so the two stages
	// interleave. walkFailed tells them apart when something goes wrong.
	var walkFailed bool
	src := func(yield func(walker.Entry) error) error {
		var yieldErr error
		err := walker.Walk(r.opts.Root, walkOpts, func(e walker.Entry) error {
			if r.result.State != StateWriteArchive {
				r.enter(StateWriteArchive)
			}
			yieldErr = yield(e)
			return yieldErr
		})
		walkFailed = err != nil && yieldErr == nil
		return err
	}

	res, err := archive.Build(r.result.OutputPath, src, archive.Options{
		Atomic:        r.opts.Atomic,
		PreserveTimes: r.opts.PreserveTimes,
	})
	if err != nil {
		if walkFailed {
			r.result.State = StateWalk
		} else {
			r.result.State = StateWriteArchive
		}
		if !r.opts.Atomic {
			r.removePartial()
		}
		return err
	}
	r.result.Archive = res

	r.enter(StateDone)
	r.logger.Info().
		Str("output", res.Path).
		Int("files", res.Files).
		Int("dirs", res.Dirs).
		Msg("Build complete")
	return nil
}

// removePartial deletes a half-written artifact. Only regular files are
// touched.
func (r *run) removePartial() {
	info, err := os.Lstat(r.result.OutputPath)
	if err != nil || !info.Mode().IsRegular() {
		return
	}
	if err := os.Remove(r.result.OutputPath); err != nil {
		r.logger.Warn().Err(err).Msg("Failed to remove partial artifact")
		return
	}
	r.logger.Debug().Str("output", r.result.OutputPath).Msg("Removed partial artifact")
}

// relativeExcludes turns the target directory into a root-relative status
// exclusion. Targets outside the root need none.
func relativeExcludes(root, targetDir string) []string {
	rel, err := filepath.Rel(root, targetDir)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return nil
	}
	return []string{filepath.ToSlash(rel)}
}
