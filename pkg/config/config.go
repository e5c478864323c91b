package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Ignore modes accepted by ignore.mode
const (
	IgnoreModeAuto = "auto"
	IgnoreModeVCS  = "vcs"
	IgnoreModeFile = "file"
	IgnoreModeNone = "none"
)

// Config is the resolved tool configuration for one invocation
type Config struct {
	Manifest   ManifestConfig   `koanf:"manifest"`
	Output     OutputConfig     `koanf:"output"`
	Ignore     IgnoreConfig     `koanf:"ignore"`
	Repository RepositoryConfig `koanf:"repository"`
}

// ManifestConfig lists the manifest file names probed in order
type ManifestConfig struct {
	Files []string `koanf:"files"`
}

// OutputConfig controls where and how archives are written
type OutputConfig struct {
	Target    string `koanf:"target"`
	Extension string `koanf:"extension"`
	Atomic    bool   `koanf:"atomic"`
	// PreserveTimes trades reproducible output for real modification times
	PreserveTimes bool `koanf:"preserve_times"`
}

// IgnoreConfig selects the ignore policy
type IgnoreConfig struct {
	Mode string `koanf:"mode"`
	File string `koanf:"file"`
}

// RepositoryConfig tunes the cleanliness check
type RepositoryConfig struct {
	UntrackedIsDirty bool `koanf:"untracked_is_dirty"`
}

// Validate rejects values the pipeline cannot act on
func (c *Config) Validate() error {
	switch c.Ignore.Mode {
	case IgnoreModeAuto, IgnoreModeVCS, IgnoreModeFile, IgnoreModeNone:
	default:
		return fmt.Errorf("ignore.mode must be one of auto, vcs, file, none (got %q)", c.Ignore.Mode)
	}
	if strings.TrimSpace(c.Output.Target) == "" {
		return fmt.Errorf("output.target cannot be empty")
	}
	if containsProjectRoot(c.Output.Target) {
		return fmt.Errorf("output.target %q would contain the project root", c.Output.Target)
	}
	if strings.TrimSpace(c.Output.Extension) == "" {
		return fmt.Errorf("output.extension cannot be empty")
	}
	if strings.ContainsAny(c.Output.Extension, `/\`) {
		return fmt.Errorf("output.extension cannot contain path separators")
	}
	if len(c.Manifest.Files) == 0 {
		return fmt.Errorf("manifest.files cannot be empty")
	}
	if c.Ignore.Mode == IgnoreModeFile && strings.TrimSpace(c.Ignore.File) == "" {
		return fmt.Errorf("ignore.file is required when ignore.mode is %q", IgnoreModeFile)
	}
	return nil
}

// containsProjectRoot reports whether a relative target resolves to the
// project root or one of its parents. Absolute targets depend on the root
// and are checked when the build resolves them.
func containsProjectRoot(target string) bool {
	if filepath.IsAbs(target) {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(filepath.Clean(target)), "/") {
		if part != "." && part != ".." {
			return false
		}
	}
	return true
}
