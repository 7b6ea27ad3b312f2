// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/invowk/buildinfo/internal/config"
	"github.com/invowk/buildinfo/internal/gitstate"
)

type (
	// RepoOpener opens a repository state provider for dir.
	RepoOpener func(kind gitstate.Kind, dir string, opts ...gitstate.Option) (gitstate.Provider, error)

	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every command handler receives an App and reaches
	// configuration, repositories and files through it.
	App struct {
		Config config.Provider
		Repos  RepoOpener
		FS     afero.Fs
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Repos  RepoOpener
		FS     afero.Fs
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Repos == nil {
		deps.Repos = gitstate.New
	}
	if deps.FS == nil {
		deps.FS = afero.NewOsFs()
	}

	return &App{
		Config: deps.Config,
		Repos:  deps.Repos,
		FS:     deps.FS,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}
