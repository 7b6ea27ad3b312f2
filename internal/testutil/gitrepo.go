// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// GitRepo is a throwaway repository driven by the git binary.
type GitRepo struct {
	t   testing.TB
	Dir string
}

// gitIdentity keeps fixtures independent of the user's git configuration.
var gitIdentity = []string{
	"-c", "user.name=buildinfo-test",
	"-c", "user.email=test@example.com",
	"-c", "commit.gpgsign=false",
	"-c", "tag.gpgsign=false",
	"-c", "init.defaultBranch=main",
}

// RequireGit skips the test when git is not on PATH.
func RequireGit(t testing.TB) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found on PATH")
	}
}

// NewGitRepo initializes an empty repository on branch main in a temp
// directory. The test is skipped when git is unavailable.
func NewGitRepo(t testing.TB) *GitRepo {
	t.Helper()
	RequireGit(t)

	dir := t.TempDir()
	// Resolve symlinks (macOS /var -> /private/var) so paths compare equal
	// to "git rev-parse --show-toplevel".
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}

	r := &GitRepo{t: t, Dir: dir}
	r.Git("init", "--quiet")
	r.Git("symbolic-ref", "HEAD", "refs/heads/main")
	return r
}

// Git runs a git command in the repository and returns trimmed stdout.
func (r *GitRepo) Git(args ...string) string {
	r.t.Helper()

	full := append(append([]string{"-C", r.Dir}, gitIdentity...), args...)
	var stdout, stderr bytes.Buffer
	cmd := exec.Command("git", full...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = append(os.Environ(), "GIT_CONFIG_NOSYSTEM=1")
	if err := cmd.Run(); err != nil {
		r.t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, stderr.String())
	}
	return strings.TrimSpace(stdout.String())
}

// WriteFile writes a file relative to the repository root.
func (r *GitRepo) WriteFile(name, content string) {
	r.t.Helper()
	MustWriteFile(r.t, filepath.Join(r.Dir, filepath.FromSlash(name)), content)
}

// SetModTime sets the modification time of a file relative to the root.
func (r *GitRepo) SetModTime(name string, unix int64) {
	r.t.Helper()
	mtime := time.Unix(unix, 0)
	if err := os.Chtimes(filepath.Join(r.Dir, filepath.FromSlash(name)), mtime, mtime); err != nil {
		r.t.Fatalf("failed to set mtime of %s: %v", name, err)
	}
}

// Commit stages everything and commits it, returning the new HEAD hash.
func (r *GitRepo) Commit(msg string) string {
	r.t.Helper()
	r.Git("add", "-A")
	r.Git("commit", "--quiet", "--allow-empty", "-m", msg)
	return r.Git("rev-parse", "HEAD")
}

// Tag creates a lightweight tag at HEAD.
func (r *GitRepo) Tag(name string) {
	r.t.Helper()
	r.Git("tag", name)
}

// AnnotatedTag creates an annotated tag at HEAD.
func (r *GitRepo) AnnotatedTag(name, msg string) {
	r.t.Helper()
	r.Git("tag", "-a", name, "-m", msg)
}
