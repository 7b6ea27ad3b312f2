// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/buildinfo/pkg/version"
)

const (
	// BackendCLI shells out to the git binary.
	BackendCLI Backend = "cli"
	// BackendGoGit reads the repository with go-git.
	BackendGoGit Backend = "gogit"

	// ColorSchemeAuto detects the terminal background.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark markdown style.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light markdown style.
	ColorSchemeLight ColorScheme = "light"

	// DefaultTagPattern matches v<major>.<minor>.<patch> tags.
	DefaultTagPattern = "v[0-9]*.[0-9]*.[0-9]*"
	// DefaultRemote is the remote reported by default.
	DefaultRemote = "origin"
	// DefaultChangelog is the change-log file read by default.
	DefaultChangelog = "CHANGELOG.md"
	// ReleasesChangelog is read instead of DefaultChangelog when the latter
	// does not exist.
	ReleasesChangelog = "RELEASES.md"
)

var (
	// ErrInvalidBackend is returned when a Backend value is not recognized.
	ErrInvalidBackend = errors.New("invalid backend")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidLoadOptions is the sentinel error wrapped by InvalidLoadOptionsError.
	ErrInvalidLoadOptions = errors.New("invalid load options")
)

type (
	// Backend selects the repository state provider.
	Backend string

	// InvalidBackendError is returned when a Backend value is not recognized.
	InvalidBackendError struct {
		Value Backend
	}

	// ColorScheme selects the style used to render Markdown.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError collects field-level validation errors of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// InvalidLoadOptionsError collects field-level validation errors of LoadOptions.
	InvalidLoadOptionsError struct {
		FieldErrors []error
	}

	// UIConfig holds presentation settings.
	UIConfig struct {
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}

	// Config holds the application configuration.
	Config struct {
		Backend         Backend            `json:"backend" mapstructure:"backend"`
		Remote          string             `json:"remote" mapstructure:"remote"`
		TagPattern      string             `json:"tag_pattern" mapstructure:"tag_pattern"`
		DefaultBranches []string           `json:"default_branches" mapstructure:"default_branches"`
		BumpPolicy      version.BumpPolicy `json:"bump_policy" mapstructure:"bump_policy"`
		Changelog       string             `json:"changelog" mapstructure:"changelog"`
		NotesPrefix     string             `json:"notes_prefix" mapstructure:"notes_prefix"`
		UI              UIConfig           `json:"ui" mapstructure:"ui"`
	}
)

// Validate returns an error if the Backend is not "cli" or "gogit".
func (b Backend) Validate() error {
	switch b {
	case BackendCLI, BackendGoGit:
		return nil
	default:
		return &InvalidBackendError{Value: b}
	}
}

// String returns the string representation of the Backend.
func (b Backend) String() string { return string(b) }

// Error implements the error interface for InvalidBackendError.
func (e *InvalidBackendError) Error() string {
	return fmt.Sprintf("invalid backend %q (valid: cli, gogit)", e.Value)
}

// Unwrap returns ErrInvalidBackend for errors.Is() compatibility.
func (e *InvalidBackendError) Unwrap() error { return ErrInvalidBackend }

// Validate returns an error if the ColorScheme is not recognized.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: c}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Validate checks every field. Values coming from environment variables
// bypass the CUE schema, so the same constraints are enforced here.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Backend.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.BumpPolicy.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.Remote) == "" {
		errs = append(errs, errors.New("remote must not be empty"))
	}
	if strings.TrimSpace(c.TagPattern) == "" {
		errs = append(errs, errors.New("tag_pattern must not be empty"))
	}
	for i, b := range c.DefaultBranches {
		if strings.TrimSpace(b) == "" {
			errs = append(errs, fmt.Errorf("default_branches[%d] must not be empty", i))
		}
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Branches returns DefaultBranches as version.Branch values.
func (c *Config) Branches() []version.Branch {
	out := make([]version.Branch, 0, len(c.DefaultBranches))
	for _, b := range c.DefaultBranches {
		out = append(out, version.Branch(b))
	}
	return out
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig followed by the field errors so errors.Is
// matches both the config sentinel and the field sentinels.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Error implements the error interface for InvalidLoadOptionsError.
func (e *InvalidLoadOptionsError) Error() string {
	return fmt.Sprintf("invalid load options: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidLoadOptions for errors.Is() compatibility.
func (e *InvalidLoadOptionsError) Unwrap() error { return ErrInvalidLoadOptions }

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend:         BackendCLI,
		Remote:          DefaultRemote,
		TagPattern:      DefaultTagPattern,
		DefaultBranches: []string{"main", "master", "HEAD"},
		BumpPolicy:      version.BumpAny,
		Changelog:       DefaultChangelog,
		NotesPrefix:     "",
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
	}
}
