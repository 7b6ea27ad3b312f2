// SPDX-License-Identifier: MPL-2.0

package gitstate

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/invowk/buildinfo/pkg/version"
)

const (
	// KindCLI selects the CLI backend.
	KindCLI Kind = "cli"
	// KindGoGit selects the GoGit backend.
	KindGoGit Kind = "gogit"

	// DefaultTagPattern matches release tags of the form v<major>.<minor>.<patch>.
	DefaultTagPattern = "v[0-9]*.[0-9]*.[0-9]*"

	shortHashLen = 7
)

var (
	// ErrNotRepository is returned when the directory is not inside a git work tree.
	ErrNotRepository = errors.New("not a git repository")
	// ErrGitNotFound is returned when the git executable is not on PATH.
	ErrGitNotFound = errors.New("git executable not found")
	// ErrRemoteNotFound is returned when the requested remote does not exist.
	ErrRemoteNotFound = errors.New("remote not found")
	// ErrUnknownKind is returned by New for an unsupported backend name.
	ErrUnknownKind = errors.New("unknown backend")
)

type (
	// Kind names a Provider implementation.
	Kind string

	// Provider supplies raw repository facts. Implementations never modify
	// the repository.
	Provider interface {
		// Describe returns the nearest matching tag, the number of commits
		// since it and the "g"-prefixed abbreviated hash of HEAD. Without a
		// matching tag the result is version.Untagged; without commits it is
		// version.NoCommits.
		Describe(ctx context.Context) (version.Describe, error)
		// Branch returns the sanitized current branch, "HEAD" when detached
		// and version.NoBranch before the first commit.
		Branch(ctx context.Context) (version.Branch, error)
		// Commit returns the full hash of HEAD, or "" before the first commit.
		Commit(ctx context.Context) (string, error)
		// TopLevel returns the root directory of the work tree.
		TopLevel(ctx context.Context) (string, error)
		// ModifiedFiles lists tracked files with staged or unstaged changes,
		// relative to TopLevel, sorted. Untracked files are excluded.
		ModifiedFiles(ctx context.Context) ([]string, error)
		// RemoteURL returns the first URL of the named remote.
		RemoteURL(ctx context.Context, name string) (string, error)
		// IsShallow reports whether the repository is a shallow clone.
		IsShallow(ctx context.Context) (bool, error)
	}

	// Option configures a Provider.
	Option func(*options)

	options struct {
		tagPattern string
		logger     *log.Logger
		gitBinary  string
	}
)

// WithTagPattern sets the glob selecting release tags. Empty keeps
// DefaultTagPattern.
func WithTagPattern(pattern string) Option {
	return func(o *options) {
		if pattern != "" {
			o.tagPattern = pattern
		}
	}
}

// WithLogger sets the logger used for debug output and warnings.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithGitBinary overrides the git executable used by the CLI backend.
func WithGitBinary(path string) Option {
	return func(o *options) {
		if path != "" {
			o.gitBinary = path
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		tagPattern: DefaultTagPattern,
		logger:     log.New(io.Discard),
		gitBinary:  "git",
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New opens dir with the backend named by kind.
func New(kind Kind, dir string, opts ...Option) (Provider, error) {
	switch kind {
	case KindCLI, "":
		return NewCLI(dir, opts...), nil
	case KindGoGit:
		return OpenGoGit(dir, opts...)
	default:
		return nil, fmt.Errorf("%w %q (valid: cli, gogit)", ErrUnknownKind, kind)
	}
}

func shortHash(full string) string {
	if len(full) > shortHashLen {
		return full[:shortHashLen]
	}
	return full
}

// nonReleaseTag falls back to version.NoCommits when the nearest tag matched
// the pattern but is not a release tag, such as v1.2.3-rc1. Other errors are
// returned as is.
func nonReleaseTag(logger *log.Logger, described string, err error) (version.Describe, error) {
	if !errors.Is(err, version.ErrInvalidTag) && !errors.Is(err, version.ErrInvalidDescribe) {
		return version.Describe{}, err
	}
	logger.Warn("nearest tag is not a release tag, using v0.0.0", "describe", described, "err", err)
	return version.NoCommits(), nil
}
