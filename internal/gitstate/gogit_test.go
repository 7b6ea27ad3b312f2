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

func TestGoGit_EmptyRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := NewGoGit(testutil.NewMemRepo(t).Repo)

	d, err := g.Describe(ctx)
	if err != nil {
		t.Fatalf("Describe() error: %v", err)
	}
	if d != version.NoCommits() {
		t.Errorf("Describe() = %v, want NoCommits", d)
	}

	b, err := g.Branch(ctx)
	if err != nil || b != version.NoBranch {
		t.Errorf("Branch() = %q, %v; want %q", b, err, version.NoBranch)
	}

	c, err := g.Commit(ctx)
	if err != nil || c != "" {
		t.Errorf("Commit() = %q, %v; want empty", c, err)
	}
}

func TestGoGit_Describe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func(m *testutil.MemRepo)
		opts  []Option
		tag   string
		dist  int
		zero  bool
	}{
		{
			name: "exactly on lightweight tag",
			build: func(m *testutil.MemRepo) {
				m.Commit("one")
				m.Tag("v1.2.3")
			},
			tag: "v1.2.3",
		},
		{
			name: "commits after annotated tag",
			build: func(m *testutil.MemRepo) {
				m.Commit("one")
				m.AnnotatedTag("v0.6.0", "release")
				m.Commit("two")
				m.Commit("three")
			},
			tag:  "v0.6.0",
			dist: 2,
		},
		{
			name: "nearest tag wins",
			build: func(m *testutil.MemRepo) {
				m.Commit("one")
				m.Tag("v1.0.0")
				m.Commit("two")
				m.Tag("v1.1.0")
				m.Commit("three")
			},
			tag:  "v1.1.0",
			dist: 1,
		},
		{
			name: "non matching tag ignored",
			build: func(m *testutil.MemRepo) {
				m.Commit("one")
				m.Tag("v2.0.0")
				m.Commit("two")
				m.Tag("nightly")
			},
			tag:  "v2.0.0",
			dist: 1,
		},
		{
			name: "highest of several tags on one commit",
			build: func(m *testutil.MemRepo) {
				m.Commit("one")
				m.Tag("v1.0.0")
				m.Tag("v1.0.1")
			},
			tag: "v1.0.1",
		},
		{
			name: "custom pattern",
			build: func(m *testutil.MemRepo) {
				m.Commit("one")
				m.Tag("v3.0.0")
				m.Commit("two")
				m.Tag("v1.9.9")
			},
			opts: []Option{WithTagPattern("v3.*")},
			tag:  "v3.0.0",
			dist: 1,
		},
		{
			name: "matching tag that is not a release tag",
			build: func(m *testutil.MemRepo) {
				m.Commit("one")
				m.Tag("v1.0.0")
				m.Commit("two")
				m.Tag("v1.2.3-rc1")
			},
			zero: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := testutil.NewMemRepo(t)
			tt.build(m)
			g := NewGoGit(m.Repo, tt.opts...)

			d, err := g.Describe(context.Background())
			if err != nil {
				t.Fatalf("Describe() error: %v", err)
			}
			if tt.zero {
				if d != version.NoCommits() {
					t.Errorf("Describe() = %v, want NoCommits", d)
				}
				return
			}

			head, _ := m.Repo.Head()
			want := version.Describe{
				Tag:      version.MustParseTag(tt.tag),
				Distance: tt.dist,
				Hash:     "g" + head.Hash().String()[:7],
			}
			if d != want {
				t.Errorf("Describe() = %v, want %v", d, want)
			}
		})
	}
}

func TestGoGit_DescribeUntagged(t *testing.T) {
	t.Parallel()

	m := testutil.NewMemRepo(t)
	m.Commit("one")
	m.Commit("two")
	h := m.Commit("three")

	d, err := NewGoGit(m.Repo).Describe(context.Background())
	if err != nil {
		t.Fatalf("Describe() error: %v", err)
	}
	if want := version.Untagged(3, h.String()[:7]); d != want {
		t.Errorf("Describe() = %v, want %v", d, want)
	}
}

func TestGoGit_Branch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := testutil.NewMemRepo(t)
	first := m.Commit("one")
	g := NewGoGit(m.Repo)

	if b, err := g.Branch(ctx); err != nil || b != "master" {
		t.Errorf("Branch() = %q, %v; want master", b, err)
	}

	m.Checkout("feature/add+tests", true)
	if b, err := g.Branch(ctx); err != nil || b != "feature-add-tests" {
		t.Errorf("Branch() = %q, %v; want feature-add-tests", b, err)
	}

	m.Detach(first)
	if b, err := g.Branch(ctx); err != nil || b != "HEAD" {
		t.Errorf("Branch() = %q, %v; want HEAD", b, err)
	}

	if c, err := g.Commit(ctx); err != nil || c != first.String() {
		t.Errorf("Commit() = %q, %v; want %s", c, err, first)
	}
}

func TestGoGit_ModifiedFiles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := testutil.NewMemRepo(t)
	m.WriteFile("a.txt", "a")
	m.WriteFile("pkg/b.txt", "b")
	m.WriteFile("c.txt", "c")
	m.Commit("init")
	g := NewGoGit(m.Repo)

	files, err := g.ModifiedFiles(ctx)
	if err != nil {
		t.Fatalf("ModifiedFiles() error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("clean tree ModifiedFiles() = %q", files)
	}

	m.WriteFile("pkg/b.txt", "changed")
	m.WriteFile("a.txt", "changed too")
	m.WriteFile("untracked.txt", "new")
	if _, err := m.Tree.Remove("c.txt"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	files, err = g.ModifiedFiles(ctx)
	if err != nil {
		t.Fatalf("ModifiedFiles() error: %v", err)
	}
	want := []string{"a.txt", "c.txt", "pkg/b.txt"}
	if !slices.Equal(files, want) {
		t.Errorf("ModifiedFiles() = %q, want %q", files, want)
	}
}

func TestGoGit_RemoteAndShallow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := testutil.NewMemRepo(t)
	m.Commit("one")
	m.AddRemote("origin", "git@github.com:invowk/buildinfo.git")
	g := NewGoGit(m.Repo)

	url, err := g.RemoteURL(ctx, "origin")
	if err != nil || url != "git@github.com:invowk/buildinfo.git" {
		t.Errorf("RemoteURL(origin) = %q, %v", url, err)
	}
	if _, err := g.RemoteURL(ctx, "upstream"); !errors.Is(err, ErrRemoteNotFound) {
		t.Errorf("RemoteURL(upstream) error = %v, want ErrRemoteNotFound", err)
	}

	shallow, err := g.IsShallow(ctx)
	if err != nil || shallow {
		t.Errorf("IsShallow() = %v, %v", shallow, err)
	}

	if _, err := g.TopLevel(ctx); err != nil {
		t.Errorf("TopLevel() error: %v", err)
	}
}

func TestGoGit_Canceled(t *testing.T) {
	t.Parallel()

	m := testutil.NewMemRepo(t)
	m.Commit("one")
	g := NewGoGit(m.Repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Describe(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Describe() error = %v, want context.Canceled", err)
	}
	if _, err := g.ModifiedFiles(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("ModifiedFiles() error = %v, want context.Canceled", err)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	if _, err := New("svn", t.TempDir()); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("New(svn) error = %v, want ErrUnknownKind", err)
	}
	if _, err := New(KindGoGit, t.TempDir()); !errors.Is(err, ErrNotRepository) {
		t.Errorf("New(gogit, empty dir) error = %v, want ErrNotRepository", err)
	}
	p, err := New(KindCLI, t.TempDir())
	if err != nil {
		t.Fatalf("New(cli) error: %v", err)
	}
	if _, ok := p.(*CLI); !ok {
		t.Errorf("New(cli) = %T, want *CLI", p)
	}
}
