// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/invowk/buildinfo/internal/config"
	"github.com/invowk/buildinfo/internal/issue"
	"github.com/invowk/buildinfo/internal/tui"
	"github.com/invowk/buildinfo/pkg/releasenotes"
)

type notesOptions struct {
	changelog string
	version   string
	prefix    string
	checksums string
	output    string
	list      bool
	render    bool
}

func newNotesCommand(app *App, flags *rootFlags) *cobra.Command {
	var opts notesOptions

	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Print the change-log section for a version",
		Long: `Print the release notes of a version.

The change-log is split into sections by lines starting with "# ". The first
section whose label is a prefix of the version is printed, so "# v1.2.0"
covers v1.2.0 and its pre-releases. A version without a section prints
nothing and is not an error.

With --prefix a "<prefix> <version>" title line is added, and with
--checksums the given file is appended in a "Checksums" code block.`,
		Example: `  buildinfo notes
  buildinfo notes --version v1.2.0 --prefix buildinfo --checksums dist/SHA256SUMS -O dist/NOTES.md
  buildinfo notes --list`,
		Args: cobra.NoArgs,
		RunE: app.runE(flags, func(cmd *cobra.Command, _ []string, s *session) error {
			if !cmd.Flags().Changed("changelog") {
				opts.changelog = s.cfg.Changelog
			}
			if !cmd.Flags().Changed("prefix") {
				opts.prefix = s.cfg.NotesPrefix
			}
			return runNotes(cmd, s, opts)
		}),
	}

	f := cmd.Flags()
	f.StringVar(&opts.changelog, "changelog", "", "change-log file (default from config)")
	f.StringVar(&opts.version, "version", "", "version to look up (default: the resolved version of the checkout)")
	f.StringVar(&opts.prefix, "prefix", "", "title prefix; adds a \"<prefix> <version>\" line")
	f.StringVar(&opts.checksums, "checksums", "", "checksum file appended as a code block")
	f.StringVarP(&opts.output, "output", "O", "", "write the notes to a file instead of stdout")
	f.BoolVar(&opts.list, "list", false, "list the change-log section labels")
	f.BoolVar(&opts.render, "render", false, "render the notes as styled Markdown")

	return cmd
}

func runNotes(cmd *cobra.Command, s *session, opts notesOptions) error {
	fsys := s.app.FS
	changelog, changelogPath, err := openChangelog(fsys, s, opts.changelog)
	if err != nil {
		return changelogError(err, changelogPath)
	}
	defer changelog.Close()

	if opts.list {
		labels, err := releasenotes.Headings(changelog)
		if err != nil {
			return err
		}
		for _, l := range labels {
			if _, err := fmt.Fprintln(s.app.stdout, l); err != nil {
				return err
			}
		}
		return nil
	}

	ver := opts.version
	if ver == "" {
		_, v, err := s.resolve(cmd.Context())
		if err != nil {
			return err
		}
		ver = v.String()
	}

	genOpts := releasenotes.Options{Prefix: opts.prefix, Changelog: changelog}
	if opts.checksums != "" {
		sums, err := fsys.Open(s.path(opts.checksums))
		if err != nil {
			return fmt.Errorf("opening checksums: %w", err)
		}
		defer sums.Close()
		genOpts.Checksums = sums
	}

	notes, err := releasenotes.Generate(ver, genOpts)
	if err != nil {
		return err
	}
	if strings.TrimSpace(notes) == "" {
		s.logger.Warn("no release notes for version", "version", ver, "changelog", changelogPath)
	}

	if opts.render && notes != "" {
		if notes, err = tui.RenderMarkdown(notes, tui.MarkdownOptions{Style: tui.StyleFor(string(s.cfg.UI.ColorScheme))}); err != nil {
			return err
		}
	}

	if opts.output != "" {
		out := s.path(opts.output)
		if err := fsys.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		if err := afero.WriteFile(fsys, out, []byte(notes), 0o644); err != nil {
			return fmt.Errorf("writing notes: %w", err)
		}
		s.logger.Debug("wrote release notes", "path", out, "version", ver)
		return nil
	}

	_, err = io.WriteString(s.app.stdout, notes)
	return err
}

// openChangelog opens name relative to the repository directory. When name is
// the default change-log and it does not exist, RELEASES.md is tried instead.
func openChangelog(fsys afero.Fs, s *session, name string) (afero.File, string, error) {
	p := s.path(name)
	f, err := fsys.Open(p)
	if errors.Is(err, fs.ErrNotExist) && name == config.DefaultChangelog {
		alt := s.path(config.ReleasesChangelog)
		if af, altErr := fsys.Open(alt); altErr == nil {
			s.logger.Debug("using change-log", "path", alt)
			return af, alt, nil
		}
	}
	return f, p, err
}

func changelogError(err error, path string) error {
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("opening change-log: %w", err)
	}
	return issue.NewErrorContext().
		WithOperation("read change-log").
		WithResource(path).
		WithSuggestion("Create the file with one \"# <version>\" heading per release").
		WithSuggestion("Set 'changelog' in buildinfo.cue or pass --changelog").
		WithIssue(issue.ChangelogNotFoundId).
		Wrap(err).
		BuildError()
}
