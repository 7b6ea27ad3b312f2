// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invowk/buildinfo/internal/issue"
	"github.com/invowk/buildinfo/internal/targets"
	"github.com/invowk/buildinfo/pkg/nearest"
)

func newTargetCommand(app *App, flags *rootFlags) *cobra.Command {
	var preferred string

	cmd := &cobra.Command{
		Use:   "target [candidates...]",
		Short: "Print the build target nearest to the module name",
		Long: `Print the build target whose name is nearest, by edit distance, to the
module name from go.mod.

Without arguments the candidates are the cmd/* directories holding Go
files. Ties go to the first candidate.`,
		Example: `  buildinfo target
  buildinfo target --preferred go-testreport testreport go-testreport other`,
		RunE: app.runE(flags, func(_ *cobra.Command, args []string, s *session) error {
			name := preferred
			if name == "" {
				var err error
				if name, err = targets.Preferred(app.FS, s.dir); err != nil {
					return err
				}
			}

			candidates := args
			if len(candidates) == 0 {
				var err error
				if candidates, err = targets.Discover(app.FS, s.dir); err != nil {
					return err
				}
			}
			s.logger.Debug("selecting build target", "preferred", name, "candidates", candidates)

			target, err := nearest.Select(name, candidates)
			if err != nil {
				return issue.NewErrorContext().
					WithOperation("select build target").
					WithResource(s.dir).
					WithSuggestion("Add a main package under cmd/<name>").
					WithSuggestion("Pass the candidate names as arguments").
					WithIssue(issue.NoCandidatesId).
					Wrap(err).
					BuildError()
			}
			_, err = fmt.Fprintln(app.stdout, target)
			return err
		}),
	}

	cmd.Flags().StringVar(&preferred, "preferred", "", "name to match (default: the last element of the module path)")

	return cmd
}
