// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invowk/buildinfo/internal/issue"
	"github.com/invowk/buildinfo/pkg/version"
)

func newVersionCommand(app *App, flags *rootFlags) *cobra.Command {
	var (
		describe string
		branch   string
		dirtyAt  int64
		check    bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the resolved version",
		Long: `Print the version of the checkout.

With --describe the repository is not read: the version is resolved from the
given long describe string ("<tag>-<distance>-<hash>"), --branch and
--dirty-at instead.`,
		Example: `  buildinfo version
  buildinfo version --describe v1.2.3-4-gabc1234 --branch feature/login`,
		Args: cobra.NoArgs,
		RunE: app.runE(flags, func(cmd *cobra.Command, _ []string, s *session) error {
			var v version.ResolvedVersion
			if cmd.Flags().Changed("describe") {
				r, err := s.resolver()
				if err != nil {
					return err
				}
				dirty := version.Clean()
				if cmd.Flags().Changed("dirty-at") {
					dirty = version.DirtyAt(dirtyAt)
				}
				if v, err = r.ResolveDescribe(describe, version.SanitizeBranch(branch), dirty); err != nil {
					return invalidVersionError("resolve version", describe, err)
				}
			} else {
				var err error
				if _, v, err = s.resolve(cmd.Context()); err != nil {
					return err
				}
			}

			if check {
				if err := v.Validate(); err != nil {
					return invalidVersionError("check version", string(v), err)
				}
			}
			s.logger.Debug("resolved version", "version", v, "release", v.IsRelease())
			_, err := fmt.Fprintln(app.stdout, v)
			return err
		}),
	}

	cmd.Flags().StringVar(&describe, "describe", "", "resolve this long describe string instead of reading the repository")
	cmd.Flags().StringVar(&branch, "branch", "main", "branch name used with --describe")
	cmd.Flags().Int64Var(&dirtyAt, "dirty-at", 0, "unix time of the newest modification, used with --describe")
	cmd.Flags().BoolVar(&check, "check", false, "fail unless the version is a valid semantic version")

	return cmd
}

func invalidVersionError(op, resource string, err error) error {
	return issue.NewErrorContext().
		WithOperation(op).
		WithResource(resource).
		WithSuggestion("Tags must look like v<major>.<minor>.<patch>; see 'git describe --tags --long'").
		WithIssue(issue.InvalidTagId).
		Wrap(err).
		BuildError()
}
