package customs

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Package a project into a reproducible archive"
	MsgBuildShort      = "Build the package archive"
	MsgCheckShort      = "Validate the manifest"
	MsgInspectShort    = "List the entries of a built archive"
	MsgTopicsShort     = "List documentation topics or show one"
	MsgTopicsLong      = "Display the documentation topics that go beyond command help, or show a single topic."
	MsgVersionShort    = "Print version information"
	MsgConfigShort     = "Print the default configuration"
	MsgConfigLong      = "Print the built-in configuration as TOML. Save it as .customs.toml in a project, or as config.toml under the user config directory, and edit what you need."
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgCanceled = "Nothing was written."

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagOutput     = "Output format: auto, term, text or json"
	MsgFlagPath       = "Project directory (defaults to the current directory)"
	MsgFlagAllowDirty = "Build even when the repository has uncommitted changes"
	MsgFlagYes        = "Replace an existing archive without asking"
	MsgFlagDryRun     = "Show what would be packaged without writing anything"
	MsgFlagIgnoreMode = "Where ignore rules come from: auto, vcs, file or none"
	MsgFlagNoAtomic   = "Write the archive in place instead of through a temporary file"

	MsgFlagPreserveTimes = "Stamp entries with file modification times (output is no longer reproducible)"

	// Error messages
	MsgErrWorkingDir = "failed to determine the current directory"
	MsgErrNoCommand  = "no command specified"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/build-long.txt
	msgBuildLongRaw string
	MsgBuildLong    = strings.TrimSpace(msgBuildLongRaw)

	//go:embed msgs/build-example.txt
	msgBuildExampleRaw string
	MsgBuildExample    = strings.TrimRight(msgBuildExampleRaw, "\n")

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/inspect-long.txt
	msgInspectLongRaw string
	MsgInspectLong    = strings.TrimSpace(msgInspectLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
