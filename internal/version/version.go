package version

import (
	"fmt"
	"runtime"
)

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/customs/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/customs/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/customs/internal/version.Date={{.Date}}
)

// Info is the build information in one struct
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// Get returns the build information of the running binary
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date, Go: runtime.Version()}
}

// String renders the multi-line form printed by the version command
func (i Info) String() string {
	return fmt.Sprintf("customs version %s\n  commit: %s\n  built:  %s\n  go:     %s\n", i.Version, i.Commit, i.Date, i.Go)
}
