package build

// State is a pipeline stage
type State string

// Pipeline stages in execution order, plus the terminal failure state
const (
	StateLoadManifest   State = "load-manifest"
	StateCheckRepo      State = "check-repo"
	StateResolveIgnore  State = "resolve-ignore"
	StateCheckCollision State = "check-collision"
	StateWalk           State = "walk"
	StateWriteArchive   State = "write-archive"
	StateDone           State = "done"
	StateFailed         State = "failed"
)

// String returns the stage name
func (s State) String() string {
	return string(s)
}
