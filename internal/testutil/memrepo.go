// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

// MemRepo is an in-memory go-git repository with a memfs work tree.
type MemRepo struct {
	t    testing.TB
	Repo *git.Repository
	Tree *git.Worktree
	now  time.Time
}

// NewMemRepo initializes an empty in-memory repository. HEAD points at the
// unborn branch "master", as with go-git's defaults.
func NewMemRepo(t testing.TB) *MemRepo {
	t.Helper()

	repo, err := git.Init(memory.NewStorage(), memfs.New())
	if err != nil {
		t.Fatalf("git.Init: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	return &MemRepo{
		t:    t,
		Repo: repo,
		Tree: wt,
		now:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *MemRepo) signature() *object.Signature {
	m.now = m.now.Add(time.Minute)
	return &object.Signature{Name: "buildinfo-test", Email: "test@example.com", When: m.now}
}

// WriteFile writes a file into the work tree without staging it.
func (m *MemRepo) WriteFile(name, content string) {
	m.t.Helper()
	if err := util.WriteFile(m.Tree.Filesystem, name, []byte(content), 0o644); err != nil {
		m.t.Fatalf("WriteFile(%s): %v", name, err)
	}
}

// Commit stages all changes and commits them.
func (m *MemRepo) Commit(msg string) plumbing.Hash {
	m.t.Helper()
	if err := m.Tree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		m.t.Fatalf("Add: %v", err)
	}
	h, err := m.Tree.Commit(msg, &git.CommitOptions{
		Author:            m.signature(),
		AllowEmptyCommits: true,
	})
	if err != nil {
		m.t.Fatalf("Commit: %v", err)
	}
	return h
}

// Tag creates a lightweight tag at HEAD.
func (m *MemRepo) Tag(name string) {
	m.t.Helper()
	head := m.head()
	if _, err := m.Repo.CreateTag(name, head, nil); err != nil {
		m.t.Fatalf("CreateTag(%s): %v", name, err)
	}
}

// AnnotatedTag creates an annotated tag at HEAD.
func (m *MemRepo) AnnotatedTag(name, msg string) {
	m.t.Helper()
	head := m.head()
	opts := &git.CreateTagOptions{Tagger: m.signature(), Message: msg}
	if _, err := m.Repo.CreateTag(name, head, opts); err != nil {
		m.t.Fatalf("CreateTag(%s): %v", name, err)
	}
}

// Checkout switches to branch, creating it at HEAD when create is set.
func (m *MemRepo) Checkout(branch string, create bool) {
	m.t.Helper()
	err := m.Tree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
		Keep:   true,
	})
	if err != nil {
		m.t.Fatalf("Checkout(%s): %v", branch, err)
	}
}

// Detach checks out commit h with a detached HEAD.
func (m *MemRepo) Detach(h plumbing.Hash) {
	m.t.Helper()
	if err := m.Tree.Checkout(&git.CheckoutOptions{Hash: h}); err != nil {
		m.t.Fatalf("Checkout(%s): %v", h, err)
	}
}

// AddRemote registers a remote with a single URL.
func (m *MemRepo) AddRemote(name, url string) {
	m.t.Helper()
	if _, err := m.Repo.CreateRemote(&config.RemoteConfig{Name: name, URLs: []string{url}}); err != nil {
		m.t.Fatalf("CreateRemote(%s): %v", name, err)
	}
}

func (m *MemRepo) head() plumbing.Hash {
	m.t.Helper()
	ref, err := m.Repo.Head()
	if err != nil {
		m.t.Fatalf("Head: %v", err)
	}
	return ref.Hash()
}
