// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/invowk/buildinfo/internal/buildinfo"
	"github.com/invowk/buildinfo/internal/config"
	"github.com/invowk/buildinfo/internal/gitstate"
	"github.com/invowk/buildinfo/internal/issue"
	"github.com/invowk/buildinfo/pkg/types"
	"github.com/invowk/buildinfo/pkg/version"
)

// session is the per-invocation state shared by command handlers: the loaded
// configuration merged with the persistent flags and a logger.
type session struct {
	app     *App
	cfg     *config.Config
	logger  *log.Logger
	dir     string
	backend config.Backend
	verbose bool
}

// newSession loads configuration for the flags. It never touches the
// repository; see collect.
func (a *App) newSession(ctx context.Context, flags *rootFlags) (*session, error) {
	dir := flags.dir
	if dir == "" {
		dir = "."
	}

	cfg, err := a.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(flags.configPath),
		BaseDir:        types.FilesystemPath(dir),
	})
	if err != nil {
		return nil, err
	}

	backend := cfg.Backend
	if flags.backend != "" {
		backend = config.Backend(flags.backend)
		if err := backend.Validate(); err != nil {
			return nil, err
		}
	}

	verbose := flags.verbose || cfg.UI.Verbose
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(a.stderr, log.Options{Prefix: "buildinfo", Level: level})

	return &session{
		app:     a,
		cfg:     cfg,
		logger:  logger,
		dir:     dir,
		backend: backend,
		verbose: verbose,
	}, nil
}

func (s *session) resolver() (*version.Resolver, error) {
	return version.NewResolver(
		version.WithDefaultBranches(s.cfg.Branches()...),
		version.WithBumpPolicy(s.cfg.BumpPolicy),
	)
}

// path resolves p against the session directory unless it is absolute.
func (s *session) path(p string) string {
	if p == "" {
		return p
	}
	return types.FilesystemPath(s.dir).Join(p).String()
}

// collect opens the repository and snapshots its state.
func (s *session) collect(ctx context.Context) (*buildinfo.RepoState, error) {
	p, err := s.app.Repos(gitstate.Kind(s.backend), s.dir,
		gitstate.WithTagPattern(s.cfg.TagPattern),
		gitstate.WithLogger(s.logger))
	if err != nil {
		return nil, repoError(err, s.dir)
	}

	state, err := buildinfo.Collect(ctx, p,
		buildinfo.WithRemote(s.cfg.Remote),
		buildinfo.WithFS(s.app.FS),
		buildinfo.WithLogger(s.logger))
	if err != nil {
		return nil, repoError(err, s.dir)
	}
	if state.Shallow && s.verbose {
		s.explain(issue.ShallowRepositoryId)
	}
	return state, nil
}

// explain prints the catalog page for id to stderr.
func (s *session) explain(id issue.Id) {
	if page := issue.RenderPlain(id); page != "" {
		_, _ = io.WriteString(s.app.stderr, page)
	}
}

// resolve collects the repository state and resolves its version.
func (s *session) resolve(ctx context.Context) (*buildinfo.RepoState, version.ResolvedVersion, error) {
	r, err := s.resolver()
	if err != nil {
		return nil, "", err
	}
	state, err := s.collect(ctx)
	if err != nil {
		return nil, "", err
	}
	return state, state.Version(r), nil
}

// repoError attaches suggestions to the repository failures users can fix.
func repoError(err error, dir string) error {
	switch {
	case errors.Is(err, gitstate.ErrNotRepository):
		return issue.NewErrorContext().
			WithOperation("read repository state").
			WithResource(dir).
			WithSuggestion("Run buildinfo inside a git work tree").
			WithSuggestion("Point --dir at the repository root").
			WithIssue(issue.NotAGitRepositoryId).
			Wrap(err).
			BuildError()
	case errors.Is(err, gitstate.ErrGitNotFound):
		return issue.NewErrorContext().
			WithOperation("read repository state").
			WithResource(dir).
			WithSuggestion("Install git and make sure it is on PATH").
			WithSuggestion("Use --backend gogit to read the repository without git").
			WithIssue(issue.GitNotFoundId).
			Wrap(err).
			BuildError()
	default:
		return err
	}
}

// runE adapts a session-aware handler to cobra. Errors come back as
// *ExitError values carrying their exit code.
func (a *App) runE(flags *rootFlags, fn func(cmd *cobra.Command, args []string, s *session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := a.newSession(cmd.Context(), flags)
		if err != nil {
			return withExitCode(err, flags.verbose)
		}
		return withExitCode(fn(cmd, args, s), s.verbose)
	}
}
