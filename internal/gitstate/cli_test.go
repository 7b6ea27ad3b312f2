// SPDX-License-Identifier: MPL-2.0

package gitstate

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/invowk/buildinfo/internal/testutil"
	"github.com/invowk/buildinfo/pkg/version"
)

func TestCLI_EmptyRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := testutil.NewGitRepo(t)
	c := NewCLI(repo.Dir)

	d, err := c.Describe(ctx)
	if err != nil {
		t.Fatalf("Describe() error: %v", err)
	}
	if d != version.NoCommits() {
		t.Errorf("Describe() = %v, want NoCommits", d)
	}
	if b, err := c.Branch(ctx); err != nil || b != version.NoBranch {
		t.Errorf("Branch() = %q, %v; want none", b, err)
	}
	if h, err := c.Commit(ctx); err != nil || h != "" {
		t.Errorf("Commit() = %q, %v; want empty", h, err)
	}
}

func TestCLI_Describe(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := testutil.NewGitRepo(t)
	c := NewCLI(repo.Dir)

	repo.Commit("one")
	repo.Commit("two")

	d, err := c.Describe(ctx)
	if err != nil {
		t.Fatalf("Describe(untagged) error: %v", err)
	}
	if want := version.Untagged(2, repo.Git("rev-parse", "--short", "HEAD")); d != want {
		t.Errorf("Describe(untagged) = %v, want %v", d, want)
	}

	repo.AnnotatedTag("v0.6.0", "release")
	repo.Commit("three")
	repo.Tag("nightly")
	repo.Commit("four")

	d, err = c.Describe(ctx)
	if err != nil {
		t.Fatalf("Describe() error: %v", err)
	}
	want := version.Describe{
		Tag:      version.MustParseTag("v0.6.0"),
		Distance: 2,
		Hash:     "g" + repo.Git("rev-parse", "--short", "HEAD"),
	}
	if d != want {
		t.Errorf("Describe() = %v, want %v", d, want)
	}
}

func TestCLI_DescribeNonReleaseTag(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := testutil.NewGitRepo(t)
	c := NewCLI(repo.Dir)

	repo.Commit("one")
	repo.Tag("v1.0.0")
	repo.Commit("two")
	repo.Tag("v1.2.3-rc1")

	d, err := c.Describe(ctx)
	if err != nil {
		t.Fatalf("Describe() error: %v", err)
	}
	if d != version.NoCommits() {
		t.Errorf("Describe() = %v, want NoCommits", d)
	}
	if b, err := c.Branch(ctx); err != nil || b != "main" {
		t.Errorf("Branch() = %q, %v; want main", b, err)
	}
}

func TestCLI_BranchAndCommit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := testutil.NewGitRepo(t)
	head := repo.Commit("one")
	c := NewCLI(repo.Dir)

	if b, err := c.Branch(ctx); err != nil || b != "main" {
		t.Errorf("Branch() = %q, %v; want main", b, err)
	}
	if h, err := c.Commit(ctx); err != nil || h != head {
		t.Errorf("Commit() = %q, %v; want %s", h, err, head)
	}

	repo.Git("checkout", "--quiet", "-b", "feature/x+y")
	if b, err := c.Branch(ctx); err != nil || b != "feature-x-y" {
		t.Errorf("Branch() = %q, %v; want feature-x-y", b, err)
	}

	repo.Git("checkout", "--quiet", "--detach", head)
	if b, err := c.Branch(ctx); err != nil || b != "HEAD" {
		t.Errorf("Branch() = %q, %v; want HEAD", b, err)
	}

	top, err := c.TopLevel(ctx)
	if err != nil || top != repo.Dir {
		t.Errorf("TopLevel() = %q, %v; want %q", top, err, repo.Dir)
	}
}

func TestCLI_ModifiedFiles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := testutil.NewGitRepo(t)
	repo.WriteFile("a.txt", "a")
	repo.WriteFile("b.txt", "b")
	repo.WriteFile("docs/my notes.md", "notes")
	repo.Commit("init")
	c := NewCLI(repo.Dir)

	files, err := c.ModifiedFiles(ctx)
	if err != nil || len(files) != 0 {
		t.Fatalf("clean ModifiedFiles() = %q, %v", files, err)
	}

	repo.WriteFile("a.txt", "changed")
	repo.WriteFile("docs/my notes.md", "changed")
	repo.WriteFile("untracked.txt", "ignored")
	repo.Git("mv", "b.txt", "c.txt")

	files, err = c.ModifiedFiles(ctx)
	if err != nil {
		t.Fatalf("ModifiedFiles() error: %v", err)
	}
	want := []string{"a.txt", "c.txt", "docs/my notes.md"}
	if !slices.Equal(files, want) {
		t.Errorf("ModifiedFiles() = %q, want %q", files, want)
	}
}

func TestCLI_RemoteAndShallow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := testutil.NewGitRepo(t)
	repo.Commit("one")
	repo.Git("remote", "add", "origin", "git@github.com:invowk/buildinfo.git")
	c := NewCLI(repo.Dir)

	url, err := c.RemoteURL(ctx, "origin")
	if err != nil || url != "git@github.com:invowk/buildinfo.git" {
		t.Errorf("RemoteURL(origin) = %q, %v", url, err)
	}
	if _, err := c.RemoteURL(ctx, "upstream"); !errors.Is(err, ErrRemoteNotFound) {
		t.Errorf("RemoteURL(upstream) error = %v, want ErrRemoteNotFound", err)
	}
	if shallow, err := c.IsShallow(ctx); err != nil || shallow {
		t.Errorf("IsShallow() = %v, %v", shallow, err)
	}
}

func TestCLI_NotRepository(t *testing.T) {
	t.Parallel()

	testutil.RequireGit(t)
	c := NewCLI(t.TempDir())

	if _, err := c.TopLevel(context.Background()); !errors.Is(err, ErrNotRepository) {
		t.Errorf("TopLevel() error = %v, want ErrNotRepository", err)
	}
	if _, err := c.Describe(context.Background()); !errors.Is(err, ErrNotRepository) {
		t.Errorf("Describe() error = %v, want ErrNotRepository", err)
	}
}

func TestCLI_GitNotFound(t *testing.T) {
	t.Parallel()

	c := NewCLI(t.TempDir(), WithGitBinary("buildinfo-test-no-such-git"))
	if _, err := c.Describe(context.Background()); !errors.Is(err, ErrGitNotFound) {
		t.Errorf("Describe() error = %v, want ErrGitNotFound", err)
	}
	if _, err := c.TopLevel(context.Background()); !errors.Is(err, ErrGitNotFound) {
		t.Errorf("TopLevel() error = %v, want ErrGitNotFound", err)
	}
}
