// SPDX-License-Identifier: MPL-2.0

package buildinfo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/invowk/buildinfo/internal/gitstate"
	"github.com/invowk/buildinfo/pkg/gitremote"
	"github.com/invowk/buildinfo/pkg/version"
)

// DefaultRemote is the remote queried when none is configured.
const DefaultRemote = "origin"

type (
	// RepoState is a snapshot of the facts a version is derived from.
	RepoState struct {
		Describe  version.Describe
		Branch    version.Branch
		Dirty     version.DirtyState
		Modified  []string
		Commit    string
		Dir       string
		RemoteURL string
		Shallow   bool
	}

	// CollectOption configures Collect.
	CollectOption func(*collectOptions)

	collectOptions struct {
		remote string
		fs     afero.Fs
		logger *log.Logger
	}
)

// WithRemote selects the remote whose URL is recorded.
func WithRemote(name string) CollectOption {
	return func(o *collectOptions) {
		if name != "" {
			o.remote = name
		}
	}
}

// WithFS sets the filesystem holding the work tree. Modified files are
// stat'ed under the provider's top-level directory on it. The default is the
// OS filesystem.
func WithFS(fs afero.Fs) CollectOption {
	return func(o *collectOptions) {
		if fs != nil {
			o.fs = fs
		}
	}
}

// WithLogger sets the logger used for warnings and debug output.
func WithLogger(l *log.Logger) CollectOption {
	return func(o *collectOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// Collect queries p for every fact in RepoState. A missing remote is
// recorded as an empty URL; a shallow clone is reported with a warning since
// its describe distance may be wrong.
func Collect(ctx context.Context, p gitstate.Provider, opts ...CollectOption) (*RepoState, error) {
	o := collectOptions{remote: DefaultRemote, fs: afero.NewOsFs(), logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		s   RepoState
		err error
	)

	if s.Dir, err = p.TopLevel(ctx); err != nil {
		return nil, fmt.Errorf("locating work tree: %w", err)
	}
	if s.Shallow, err = p.IsShallow(ctx); err != nil {
		return nil, fmt.Errorf("checking shallow clone: %w", err)
	}
	if s.Shallow {
		o.logger.Warn("shallow clone, version distance may be inaccurate", "dir", s.Dir, "hint", "git fetch --unshallow --tags")
	}
	if s.Describe, err = p.Describe(ctx); err != nil {
		return nil, fmt.Errorf("describing HEAD: %w", err)
	}
	if s.Branch, err = p.Branch(ctx); err != nil {
		return nil, fmt.Errorf("reading branch: %w", err)
	}
	if s.Commit, err = p.Commit(ctx); err != nil {
		return nil, fmt.Errorf("reading commit: %w", err)
	}
	if s.Modified, err = p.ModifiedFiles(ctx); err != nil {
		return nil, fmt.Errorf("listing modified files: %w", err)
	}

	s.RemoteURL, err = p.RemoteURL(ctx, o.remote)
	switch {
	case errors.Is(err, gitstate.ErrRemoteNotFound):
		o.logger.Debug("remote not configured", "remote", o.remote)
		s.RemoteURL = ""
	case err != nil:
		return nil, fmt.Errorf("reading remote %q: %w", o.remote, err)
	}

	s.Dirty = version.TagModified(afero.NewBasePathFs(o.fs, s.Dir), s.Modified)

	o.logger.Debug("collected repository state",
		"describe", s.Describe.String(),
		"branch", s.Branch,
		"modified", len(s.Modified),
		"dirty", s.Dirty.String())

	return &s, nil
}

// Version resolves the state with r.
func (s *RepoState) Version(r *version.Resolver) version.ResolvedVersion {
	return r.Resolve(s.Describe, s.Branch, s.Dirty)
}

// Remote returns the browsable form of the remote URL.
func (s *RepoState) Remote() string {
	return gitremote.Normalize(s.RemoteURL)
}

// Info summarizes the state resolved with r.
func (s *RepoState) Info(r *version.Resolver) Info {
	v := s.Version(r)
	return Info{
		Version: v.String(),
		Remote:  s.Remote(),
		Commit:  s.Commit,
		Dir:     s.Dir,
		Branch:  s.Branch.String(),
		Dirty:   s.Dirty.Present(),
		Release: v.IsRelease(),
	}
}
