// SPDX-License-Identifier: MPL-2.0

// Package config loads buildinfo settings using Viper with CUE as the file
// format.
//
// Lookup order: an explicit --config file; buildinfo.cue in the working
// directory; config.cue in the user config directory ($XDG_CONFIG_HOME/buildinfo
// on Linux, ~/Library/Application Support/buildinfo on macOS,
// %APPDATA%\buildinfo on Windows). Files are validated against the embedded
// config_schema.cue. Environment variables prefixed with BUILDINFO_ override
// file values, e.g. BUILDINFO_BUMP_POLICY or BUILDINFO_UI_VERBOSE.
package config
