package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/customs/pkg/errors"
	"github.com/arthur-debert/customs/pkg/logging"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment override
	EnvPrefix = "CUSTOMS_"

	// ProjectConfigFile is the per-project config file name
	ProjectConfigFile = ".customs.toml"

	// UserConfigFile is the file name inside the user config directory
	UserConfigFile = "config.toml"
)

// Default returns the embedded defaults without reading any file
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(bytesProvider(defaultConfig), toml.Parser()); err != nil {
		// The defaults are compiled in; failing here is a programming error.
		panic(err)
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		panic(err)
	}
	return &cfg
}

// Load resolves the configuration for a project rooted at projectRoot.
// overrides are applied last, keyed by dotted path ("ignore.mode").
func Load(projectRoot string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(bytesProvider(defaultConfig), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config
	if err := loadFileIfExists(k, UserConfigPath()); err != nil {
		return nil, err
	}

	// 3. Project config
	if projectRoot != "" {
		if err := loadFileIfExists(k, filepath.Join(projectRoot, ProjectConfigFile)); err != nil {
			return nil, err
		}
	}

	// 4. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	// 5. Explicit overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid configuration")
	}

	logger := logging.GetLogger("config")
	logger.Debug().
		Str("projectRoot", projectRoot).
		Str("ignoreMode", cfg.Ignore.Mode).
		Str("target", cfg.Output.Target).
		Bool("atomic", cfg.Output.Atomic).
		Msg("Configuration loaded")

	return &cfg, nil
}

// UserConfigPath returns the user-level config file location.
// XDG_CONFIG_HOME wins when set so tests can redirect it.
func UserConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	return filepath.Join(configHome, logging.AppName, UserConfigFile)
}

func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail(errors.DetailPath, path)
	}
	logger := logging.GetLogger("config")
	logger.Debug().Str("path", path).Msg("Loaded config file")
	return nil
}

// envKey maps CUSTOMS_OUTPUT__ATOMIC to output.atomic
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}
