// Package logging configures zerolog for the customs binary. Library
// packages only ask for component loggers; the CLI decides verbosity.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AppName names the state and config directories
const AppName = "customs"

// levels is indexed by the number of -v flags
var levels = []zerolog.Level{
	zerolog.WarnLevel,
	zerolog.InfoLevel,
	zerolog.DebugLevel,
	zerolog.TraceLevel,
}

// Console receives the human readable log stream
var Console io.Writer = os.Stderr

var (
	mu      sync.Mutex
	logFile *os.File
)

// LevelFor returns the level for a -v count. Anything past -vvv is trace.
func LevelFor(verbosity int) zerolog.Level {
	if verbosity < 0 {
		verbosity = 0
	}
	if verbosity >= len(levels) {
		return zerolog.TraceLevel
	}
	return levels[verbosity]
}

// SetupLogger sets the global level and points the global logger at the
// console and the state log file. Calling it again replaces the previous
// file handle. Failing to open the log file only costs the file output.
func SetupLogger(verbosity int) {
	mu.Lock()
	defer mu.Unlock()

	zerolog.SetGlobalLevel(LevelFor(verbosity))

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        Console,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}}

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	path := FilePath()
	f, fileErr := openLogFile(path)
	if fileErr == nil {
		logFile = f
		writers = append(writers, f)
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", path).Msg("Log file unavailable, logging to console only")
	}
	log.Debug().Int("verbosity", verbosity).Str("logFile", path).Msg("Logger initialized")
}

// FilePath is where SetupLogger appends JSON log lines.
// XDG_STATE_HOME wins when set so tests and wrappers can redirect it.
func FilePath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = xdg.StateHome
	}
	if stateHome == "" {
		return AppName + ".log"
	}
	return filepath.Join(stateHome, AppName, AppName+".log")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

// GetLogger returns the global logger tagged with a component name
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// ForBuild tags a component logger with the id of one build, so every line
// of a run can be grepped out of the shared log file
func ForBuild(component, buildID string) zerolog.Logger {
	return log.With().Str("component", component).Str("buildID", buildID).Logger()
}

// Track logs the start of an operation at debug level. The returned func
// logs its duration, and the error when err is non-nil. Failures stay at
// debug too: reporting them to the user is the caller's job.
func Track(logger zerolog.Logger, operation string) func(err error) {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")

	return func(err error) {
		event := logger.Debug()
		if err != nil {
			event = event.Err(err)
		}
		event.Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation finished")
	}
}
