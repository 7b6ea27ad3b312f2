// SPDX-License-Identifier: MPL-2.0

package version

import (
	"regexp"
	"slices"
	"strings"
)

// NoBranch is the branch label used when the branch cannot be determined.
const NoBranch Branch = "none"

// releaseLabel replaces the branch name in versions built from a default branch.
const releaseLabel = "rc"

// invalidBranchChars matches runs of characters that are not allowed in a
// version label.
var invalidBranchChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// DefaultBranches lists the branch names treated as mainline when no
// explicit list is configured.
var DefaultBranches = []Branch{"main", "master", "HEAD"}

// Branch is a sanitized branch name containing only [A-Za-z0-9._-].
type Branch string

// SanitizeBranch replaces each run of characters outside [A-Za-z0-9._-] with a
// single "-". Surrounding whitespace is ignored. An empty name becomes NoBranch.
func SanitizeBranch(raw string) Branch {
	s := invalidBranchChars.ReplaceAllString(strings.TrimSpace(raw), "-")
	if s == "" {
		return NoBranch
	}
	return Branch(s)
}

// String returns the branch name.
func (b Branch) String() string { return string(b) }

// isDefaultBranch reports whether b is one of defaults, or whether ver starts
// with the branch name (a branch named "v1" is mainline for v1.x.y versions).
func isDefaultBranch(b Branch, ver string, defaults []Branch) bool {
	if slices.Contains(defaults, b) {
		return true
	}
	return strings.HasPrefix(ver, string(b))
}
