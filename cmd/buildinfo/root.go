// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for buildinfo.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// Remote is the browsable repository URL (set via -ldflags).
	Remote = ""
)

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	dir        string
	backend    string
	verbose    bool
}

// NewRootCommand builds the buildinfo command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "buildinfo",
		Short: "Derive build versions and release notes from git",
		Long: TitleStyle.Render("buildinfo") + SubtitleStyle.Render(" - Derive build versions and release notes from git") + `

buildinfo turns the state of a git checkout into a sortable semantic
version. A clean checkout of a release tag on a default branch yields the
tag itself; anything else yields a pre-release of the next patch version
decorated with the branch, the commit distance, the abbreviated hash and,
for a modified tree, the modification time.

` + SubtitleStyle.Render("Examples:") + `
  buildinfo version                     Print the version of the checkout
  buildinfo info --format ldflags       Emit -X flags for go build
  buildinfo notes --checksums SUMS      Assemble release notes
  buildinfo target                      Pick the main build target`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default is ./buildinfo.cue, then the user config directory)")
	pf.StringVarP(&flags.dir, "dir", "C", ".", "repository directory")
	pf.StringVar(&flags.backend, "backend", "", "repository backend: cli or gogit (overrides config)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(
		newInfoCommand(app, flags),
		newVersionCommand(app, flags),
		newNotesCommand(app, flags),
		newTargetCommand(app, flags),
		newConfigCommand(app, flags),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// Execute runs the CLI and exits with the code carried by the error, if any.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(int(exitCodeFor(err)))
	}
}
