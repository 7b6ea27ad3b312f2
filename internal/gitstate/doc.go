// SPDX-License-Identifier: MPL-2.0

// Package gitstate reads the raw repository facts that version resolution
// needs: the nearest release tag with distance and abbreviated hash, the
// current branch, the modified tracked files, the remote URL and whether the
// clone is shallow.
//
// Two backends implement Provider. CLI runs the git binary; GoGit reads the
// repository in-process with go-git and works where git is not installed.
// Both report an empty repository as version.NoCommits() on branch "none"
// rather than failing. A nearest matching tag that is not a release tag, such
// as v1.2.3-rc1, also yields version.NoCommits() with a warning; the branch is
// reported as usual.
package gitstate
