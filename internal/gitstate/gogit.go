// SPDX-License-Identifier: MPL-2.0

package gitstate

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"golang.org/x/mod/semver"

	"github.com/invowk/buildinfo/pkg/version"
)

// GoGit implements Provider on top of go-git without invoking git.
type GoGit struct {
	repo *git.Repository
	opts options
}

var _ Provider = (*GoGit)(nil)

// OpenGoGit opens the repository containing dir, searching parent
// directories for .git.
func OpenGoGit(dir string, opts ...Option) (*GoGit, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", dir, ErrNotRepository)
		}
		return nil, fmt.Errorf("opening repository %s: %w", dir, err)
	}
	return NewGoGit(repo, opts...), nil
}

// NewGoGit wraps an already opened repository, such as an in-memory one.
func NewGoGit(repo *git.Repository, opts ...Option) *GoGit {
	return &GoGit{repo: repo, opts: newOptions(opts)}
}

// head returns the HEAD reference, or nil before the first commit.
func (g *GoGit) head() (*plumbing.Reference, error) {
	ref, err := g.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}
	return ref, nil
}

// Describe implements Provider. The nearest tag is the first tagged commit
// met walking HEAD's history breadth-first; the distance is the number of
// commits reachable from HEAD but not from that tag, as git describe counts.
func (g *GoGit) Describe(ctx context.Context) (version.Describe, error) {
	if err := ctx.Err(); err != nil {
		return version.Describe{}, err
	}

	head, err := g.head()
	if err != nil {
		return version.Describe{}, err
	}
	if head == nil {
		g.opts.logger.Debug("repository has no commits")
		return version.NoCommits(), nil
	}

	tags, err := g.tagsByCommit()
	if err != nil {
		return version.Describe{}, err
	}

	hash := "g" + shortHash(head.Hash().String())

	var (
		tagName   string
		tagCommit plumbing.Hash
	)
	err = g.walk(ctx, head.Hash(), nil, func(h plumbing.Hash) bool {
		if names, ok := tags[h]; ok {
			tagName, tagCommit = names[0], h
			return false
		}
		return true
	})
	if err != nil {
		return version.Describe{}, err
	}

	if tagName == "" {
		total, err := g.count(ctx, head.Hash(), nil)
		if err != nil {
			return version.Describe{}, err
		}
		return version.Untagged(total, shortHash(head.Hash().String())), nil
	}

	tag, err := version.ParseTag(tagName)
	if err != nil {
		return nonReleaseTag(g.opts.logger, tagName, err)
	}

	excluded := make(map[plumbing.Hash]bool)
	err = g.walk(ctx, tagCommit, nil, func(h plumbing.Hash) bool {
		excluded[h] = true
		return true
	})
	if err != nil {
		return version.Describe{}, err
	}
	distance, err := g.count(ctx, head.Hash(), excluded)
	if err != nil {
		return version.Describe{}, err
	}

	return version.Describe{Tag: tag, Distance: distance, Hash: hash}, nil
}

// tagsByCommit maps commits to the names of matching tags pointing at them,
// highest version first.
func (g *GoGit) tagsByCommit() (map[plumbing.Hash][]string, error) {
	iter, err := g.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer iter.Close()

	tags := make(map[plumbing.Hash][]string)
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		ok, err := doublestar.Match(g.opts.tagPattern, name)
		if err != nil {
			return fmt.Errorf("tag pattern %q: %w", g.opts.tagPattern, err)
		}
		if !ok {
			return nil
		}

		target := ref.Hash()
		obj, err := g.repo.TagObject(target)
		switch {
		case err == nil:
			commit, err := obj.Commit()
			if err != nil {
				// Annotated tag of a tree or blob.
				return nil
			}
			target = commit.Hash
		case !errors.Is(err, plumbing.ErrObjectNotFound):
			return fmt.Errorf("reading tag %s: %w", name, err)
		}

		tags[target] = append(tags[target], name)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for h, names := range tags {
		slices.SortFunc(names, func(a, b string) int {
			if c := semver.Compare(b, a); c != 0 {
				return c
			}
			return cmp.Compare(b, a)
		})
		tags[h] = names
	}
	return tags, nil
}

// walk visits the commits reachable from start breadth-first, skipping
// those in exclude, until visit returns false.
func (g *GoGit) walk(ctx context.Context, start plumbing.Hash, exclude map[plumbing.Hash]bool, visit func(plumbing.Hash) bool) error {
	seen := map[plumbing.Hash]bool{start: true}
	queue := []plumbing.Hash{start}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		h := queue[0]
		queue = queue[1:]
		if exclude[h] {
			continue
		}
		if !visit(h) {
			return nil
		}

		commit, err := g.repo.CommitObject(h)
		if err != nil {
			if errors.Is(err, plumbing.ErrObjectNotFound) {
				// Missing parents of a shallow clone.
				continue
			}
			return fmt.Errorf("reading commit %s: %w", h, err)
		}
		for _, p := range commit.ParentHashes {
			if !seen[p] {
				seen[p] = true
				queue = append(queue, p)
			}
		}
	}
	return nil
}

func (g *GoGit) count(ctx context.Context, start plumbing.Hash, exclude map[plumbing.Hash]bool) (int, error) {
	n := 0
	err := g.walk(ctx, start, exclude, func(plumbing.Hash) bool {
		n++
		return true
	})
	return n, err
}

// Branch implements Provider.
func (g *GoGit) Branch(ctx context.Context) (version.Branch, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	head, err := g.head()
	if err != nil {
		return "", err
	}
	switch {
	case head == nil:
		return version.NoBranch, nil
	case head.Name().IsBranch():
		return version.SanitizeBranch(head.Name().Short()), nil
	default:
		return "HEAD", nil
	}
}

// Commit implements Provider.
func (g *GoGit) Commit(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	head, err := g.head()
	if err != nil || head == nil {
		return "", err
	}
	return head.Hash().String(), nil
}

// TopLevel implements Provider.
func (g *GoGit) TopLevel(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	wt, err := g.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotRepository, err)
	}
	return wt.Filesystem.Root(), nil
}

// ModifiedFiles implements Provider.
func (g *GoGit) ModifiedFiles(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wt, err := g.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotRepository, err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("reading worktree status: %w", err)
	}

	var paths []string
	for path, st := range status {
		if st.Worktree == git.Untracked || st.Staging == git.Untracked {
			continue
		}
		if st.Worktree == git.Unmodified && st.Staging == git.Unmodified {
			continue
		}
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths, nil
}

// RemoteURL implements Provider.
func (g *GoGit) RemoteURL(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	remote, err := g.repo.Remote(name)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return "", fmt.Errorf("%q: %w", name, ErrRemoteNotFound)
		}
		return "", fmt.Errorf("reading remote %q: %w", name, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("%q has no URL: %w", name, ErrRemoteNotFound)
	}
	return urls[0], nil
}

// IsShallow implements Provider.
func (g *GoGit) IsShallow(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	shallow, err := g.repo.Storer.Shallow()
	if err != nil {
		return false, fmt.Errorf("reading shallow commits: %w", err)
	}
	return len(shallow) > 0, nil
}
