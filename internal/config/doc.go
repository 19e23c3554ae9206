// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/a11yterm/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/a11yterm/config.cue on macOS, %APPDATA%\a11yterm\config.cue
// on Windows), falling back to ./config.cue. The package covers the showcase UI settings,
// logging and the SSH server.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
