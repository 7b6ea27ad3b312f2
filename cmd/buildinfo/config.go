// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/buildinfo/internal/config"
	"github.com/invowk/buildinfo/pkg/types"
)

// newConfigCommand creates the `buildinfo config` command tree.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect buildinfo configuration",
		Long: `Inspect buildinfo configuration.

Configuration is read from the first of:
  - the file given with --config
  - buildinfo.cue in the repository directory
  - config.cue in the user config directory
    (Linux: ~/.config/buildinfo, macOS: ~/Library/Application Support/buildinfo,
    Windows: %APPDATA%\buildinfo)

BUILDINFO_* environment variables override file values, for example
BUILDINFO_BACKEND=gogit or BUILDINFO_UI_COLOR_SCHEME=dark.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: app.runE(flags, func(_ *cobra.Command, _ []string, s *session) error {
			path, err := config.Locate(locateOptions(flags, s.dir))
			if err != nil {
				return err
			}
			showConfig(app.stdout, s.cfg, path)
			return nil
		}),
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withExitCode(showConfigPath(app.stdout, flags), flags.verbose)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: app.runE(flags, func(_ *cobra.Command, _ []string, s *session) error {
			_, err := io.WriteString(app.stdout, config.GenerateCUE(s.cfg))
			return err
		}),
	})

	return cfgCmd
}

func locateOptions(flags *rootFlags, dir string) config.LoadOptions {
	return config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(flags.configPath),
		BaseDir:        types.FilesystemPath(dir),
	}
}

func showConfig(w io.Writer, cfg *config.Config, path string) {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if path != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("backend"), valueStyle.Render(cfg.Backend.String()))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("remote"), valueStyle.Render(cfg.Remote))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("tag_pattern"), valueStyle.Render(cfg.TagPattern))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("default_branches"), valueStyle.Render(strings.Join(cfg.DefaultBranches, ", ")))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("bump_policy"), valueStyle.Render(cfg.BumpPolicy.String()))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("changelog"), valueStyle.Render(cfg.Changelog))
	if cfg.NotesPrefix != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("notes_prefix"), valueStyle.Render(cfg.NotesPrefix))
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("notes_prefix"), SubtitleStyle.Render("(none)"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
}

func showConfigPath(w io.Writer, flags *rootFlags) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	path, err := config.Locate(locateOptions(flags, flags.dir))
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Config directory: %s\n", cfgDir)
	if path == "" {
		path = "(none, using defaults)"
	}
	fmt.Fprintf(w, "Config file: %s\n", path)
	return nil
}
