// Package config handles configuration management for customs.
//
// Configuration is layered with koanf. Later layers override earlier ones:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. user config at $XDG_CONFIG_HOME/customs/config.toml
//  3. project config at <project>/.customs.toml
//  4. CUSTOMS_* environment variables, with "__" separating sections
//     (CUSTOMS_IGNORE__MODE=vcs)
//  5. explicit overrides, usually command line flags
//
// The manifest is not configuration: it describes the package and is
// handled by pkg/manifest.
package config
