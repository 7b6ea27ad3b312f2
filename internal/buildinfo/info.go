// SPDX-License-Identifier: MPL-2.0

package buildinfo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
	"mvdan.cc/sh/v3/syntax"
)

const (
	// FormatText is the aligned "Key: value" summary.
	FormatText Format = "text"
	// FormatJSON is an indented JSON object.
	FormatJSON Format = "json"
	// FormatYAML is a YAML mapping.
	FormatYAML Format = "yaml"
	// FormatTOML is a TOML table.
	FormatTOML Format = "toml"
	// FormatEnv is shell assignments suitable for eval or a dotenv file.
	FormatEnv Format = "env"
	// FormatLDFlags is a go build -ldflags argument setting Version, Commit
	// and Remote in a package.
	FormatLDFlags Format = "ldflags"

	// DefaultLDFlagsPackage is the package whose variables FormatLDFlags sets.
	DefaultLDFlagsPackage = "main"

	envPrefix = "BUILDINFO_"
)

// ErrUnknownFormat is the sentinel error wrapped by UnknownFormatError.
var ErrUnknownFormat = errors.New("unknown output format")

type (
	// Format names an Info encoding.
	Format string

	// UnknownFormatError is returned when a format name is not supported.
	UnknownFormatError struct {
		Value Format
	}

	// Info is the printable summary of a RepoState.
	Info struct {
		Version string `json:"version" yaml:"version" toml:"version"`
		Remote  string `json:"remote" yaml:"remote" toml:"remote"`
		Commit  string `json:"commit" yaml:"commit" toml:"commit"`
		Dir     string `json:"dir" yaml:"dir" toml:"dir"`
		Branch  string `json:"branch" yaml:"branch" toml:"branch"`
		Dirty   bool   `json:"dirty" yaml:"dirty" toml:"dirty"`
		Release bool   `json:"release" yaml:"release" toml:"release"`
	}

	// EncodeOption configures Encode.
	EncodeOption func(*encodeOptions)

	encodeOptions struct {
		pkg string
	}
)

// Error implements the error interface.
func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown output format %q (valid: %s)", e.Value, strings.Join(FormatNames(), ", "))
}

// Unwrap returns ErrUnknownFormat so callers can use errors.Is for programmatic detection.
func (e *UnknownFormatError) Unwrap() error { return ErrUnknownFormat }

// Formats returns every supported format in display order.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatTOML, FormatEnv, FormatLDFlags}
}

// FormatNames returns the names of Formats, for flag help and completion.
func FormatNames() []string {
	formats := Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}

// ParseFormat validates a format name. Matching is case-insensitive and an
// empty name selects FormatText.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatText, nil
	}
	if err := f.Validate(); err != nil {
		return "", err
	}
	return f, nil
}

// Validate returns an *UnknownFormatError for unsupported formats.
func (f Format) Validate() error {
	for _, known := range Formats() {
		if f == known {
			return nil
		}
	}
	return &UnknownFormatError{Value: f}
}

// String implements fmt.Stringer.
func (f Format) String() string { return string(f) }

// WithPackage sets the import path whose variables FormatLDFlags targets.
func WithPackage(pkg string) EncodeOption {
	return func(o *encodeOptions) {
		if pkg != "" {
			o.pkg = pkg
		}
	}
}

// Encode writes info to w in format f.
func Encode(w io.Writer, info Info, f Format, opts ...EncodeOption) error {
	o := encodeOptions{pkg: DefaultLDFlagsPackage}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		out []byte
		err error
	)
	switch f {
	case FormatText, "":
		out = []byte(info.text())
	case FormatJSON:
		out, err = json.MarshalIndent(info, "", "  ")
		out = append(out, '\n')
	case FormatYAML:
		out, err = yaml.Marshal(info)
	case FormatTOML:
		out, err = toml.Marshal(info)
	case FormatEnv:
		var s string
		s, err = info.env()
		out = []byte(s)
	case FormatLDFlags:
		var s string
		s, err = info.ldflags(o.pkg)
		out = []byte(s)
	default:
		return &UnknownFormatError{Value: f}
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", f, err)
	}

	_, err = w.Write(out)
	return err
}

func (i Info) text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Version: %s\n", i.Version)
	fmt.Fprintf(&b, "Remote:  %s\n", i.Remote)
	fmt.Fprintf(&b, "Commit:  %s\n", i.Commit)
	fmt.Fprintf(&b, "Dir:     %s\n", i.Dir)
	fmt.Fprintf(&b, "Branch:  %s\n", i.Branch)
	return b.String()
}

func (i Info) env() (string, error) {
	pairs := []struct{ key, value string }{
		{"VERSION", i.Version},
		{"REMOTE", i.Remote},
		{"COMMIT", i.Commit},
		{"DIR", i.Dir},
		{"BRANCH", i.Branch},
		{"DIRTY", fmt.Sprint(i.Dirty)},
		{"RELEASE", fmt.Sprint(i.Release)},
	}

	var b strings.Builder
	for _, p := range pairs {
		q, err := quote(p.value)
		if err != nil {
			return "", fmt.Errorf("%s%s: %w", envPrefix, p.key, err)
		}
		fmt.Fprintf(&b, "%s%s=%s\n", envPrefix, p.key, q)
	}
	return b.String(), nil
}

func (i Info) ldflags(pkg string) (string, error) {
	vars := []struct{ name, value string }{
		{"Version", i.Version},
		{"Commit", i.Commit},
		{"Remote", i.Remote},
	}

	flags := make([]string, 0, len(vars))
	for _, v := range vars {
		q, err := quote(pkg + "." + v.name + "=" + v.value)
		if err != nil {
			return "", fmt.Errorf("%s.%s: %w", pkg, v.name, err)
		}
		flags = append(flags, "-X "+q)
	}
	return strings.Join(flags, " ") + "\n", nil
}

// quote makes s safe as a single POSIX shell word, quoting the empty string.
func quote(s string) (string, error) {
	return syntax.Quote(s, syntax.LangPOSIX)
}
