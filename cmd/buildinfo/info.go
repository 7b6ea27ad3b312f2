// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/buildinfo/internal/buildinfo"
	"github.com/invowk/buildinfo/internal/issue"
)

func newInfoCommand(app *App, flags *rootFlags) *cobra.Command {
	var (
		format string
		pkg    string
	)

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show version, remote, commit and directory of the checkout",
		Long: `Show the build information of the checkout.

Formats:
  text     aligned "Key: value" lines (default)
  json     JSON object
  yaml     YAML mapping
  toml     TOML table
  env      BUILDINFO_* shell assignments
  ldflags  -X flags for go build, targeting --package`,
		Example: `  buildinfo info
  go build -ldflags "$(buildinfo info --format ldflags --package main)" .`,
		Args: cobra.NoArgs,
		RunE: app.runE(flags, func(cmd *cobra.Command, _ []string, s *session) error {
			f, err := buildinfo.ParseFormat(format)
			if err != nil {
				return issue.NewErrorContext().
					WithOperation("select output format").
					WithResource(format).
					WithSuggestion("Use one of: " + strings.Join(buildinfo.FormatNames(), ", ")).
					WithIssue(issue.UnknownFormatId).
					Wrap(err).
					BuildError()
			}
			r, err := s.resolver()
			if err != nil {
				return err
			}
			state, err := s.collect(cmd.Context())
			if err != nil {
				return err
			}
			return buildinfo.Encode(app.stdout, state.Info(r), f, buildinfo.WithPackage(pkg))
		}),
	}

	cmd.Flags().StringVarP(&format, "format", "o", string(buildinfo.FormatText),
		"output format: "+strings.Join(buildinfo.FormatNames(), ", "))
	cmd.Flags().StringVar(&pkg, "package", buildinfo.DefaultLDFlagsPackage, "import path whose variables the ldflags format sets")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(buildinfo.FormatNames(), cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
