// SPDX-License-Identifier: MPL-2.0

package gitstate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/invowk/buildinfo/pkg/version"
)

type (
	// CLI implements Provider by running the git binary with "-C <dir>".
	CLI struct {
		dir  string
		opts options
	}

	// CommandError reports a failed git invocation.
	CommandError struct {
		Args   []string
		Stderr string
		Err    error
	}
)

var _ Provider = (*CLI)(nil)

// NewCLI returns a CLI provider rooted at dir. The directory is not checked
// until the first query.
func NewCLI(dir string, opts ...Option) *CLI {
	return &CLI{dir: dir, opts: newOptions(opts)}
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += " (stderr: " + e.Stderr + ")"
	}
	return msg
}

// Unwrap returns the underlying exec error.
func (e *CommandError) Unwrap() error { return e.Err }

// run executes git in the provider directory and returns trimmed stdout.
func (c *CLI) run(ctx context.Context, args ...string) (string, error) {
	fullArgs := append([]string{"-C", c.dir}, args...)
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.opts.gitBinary, fullArgs...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.opts.logger.Debug("running git", "args", strings.Join(args, " "), "dir", c.dir)

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %w", ErrGitNotFound, err)
		}
		return "", &CommandError{Args: args, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return strings.TrimSpace(stdout.String()), nil
}

// hasHead reports whether HEAD resolves to a commit.
func (c *CLI) hasHead(ctx context.Context) bool {
	_, err := c.run(ctx, "rev-parse", "--verify", "--quiet", "HEAD")
	return err == nil
}

// fallback turns a failed query into the empty-repository answer when HEAD
// does not exist yet, and into ErrNotRepository when dir is not a work tree.
func (c *CLI) fallback(ctx context.Context, err error) error {
	if errors.Is(err, ErrGitNotFound) {
		return err
	}
	if _, repoErr := c.run(ctx, "rev-parse", "--git-dir"); repoErr != nil {
		return fmt.Errorf("%s: %w", c.dir, ErrNotRepository)
	}
	if c.hasHead(ctx) {
		return err
	}
	return nil
}

// Describe implements Provider.
func (c *CLI) Describe(ctx context.Context) (version.Describe, error) {
	out, err := c.run(ctx, "describe", "--always", "--tags", "--long", "--match", c.opts.tagPattern)
	if err != nil {
		if ferr := c.fallback(ctx, err); ferr != nil {
			return version.Describe{}, ferr
		}
		c.opts.logger.Debug("repository has no commits")
		return version.NoCommits(), nil
	}

	// --always prints a bare abbreviated hash when no tag matches.
	if !strings.Contains(out, "-") {
		count, err := c.run(ctx, "rev-list", "--count", "HEAD")
		if err != nil {
			return version.Describe{}, err
		}
		total, err := strconv.Atoi(count)
		if err != nil {
			return version.Describe{}, fmt.Errorf("parsing commit count %q: %w", count, err)
		}
		return version.Untagged(total, out), nil
	}

	d, err := version.ParseDescribe(out)
	if err != nil {
		return nonReleaseTag(c.opts.logger, out, err)
	}
	return d, nil
}

// Branch implements Provider.
func (c *CLI) Branch(ctx context.Context) (version.Branch, error) {
	out, err := c.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		if ferr := c.fallback(ctx, err); ferr != nil {
			return "", ferr
		}
		return version.NoBranch, nil
	}
	return version.SanitizeBranch(out), nil
}

// Commit implements Provider.
func (c *CLI) Commit(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		if ferr := c.fallback(ctx, err); ferr != nil {
			return "", ferr
		}
		return "", nil
	}
	return out, nil
}

// TopLevel implements Provider.
func (c *CLI) TopLevel(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		if errors.Is(err, ErrGitNotFound) {
			return "", err
		}
		return "", fmt.Errorf("%s: %w: %w", c.dir, ErrNotRepository, err)
	}
	return out, nil
}

// ModifiedFiles implements Provider.
func (c *CLI) ModifiedFiles(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, "status", "--porcelain=2", "--untracked-files=no")
	if err != nil {
		return nil, err
	}
	return parsePorcelainV2(out)
}

// RemoteURL implements Provider.
func (c *CLI) RemoteURL(ctx context.Context, name string) (string, error) {
	out, err := c.run(ctx, "remote", "get-url", name)
	if err != nil {
		if errors.Is(err, ErrGitNotFound) {
			return "", err
		}
		return "", fmt.Errorf("%q: %w", name, ErrRemoteNotFound)
	}
	return out, nil
}

// IsShallow implements Provider.
func (c *CLI) IsShallow(ctx context.Context) (bool, error) {
	out, err := c.run(ctx, "rev-parse", "--is-shallow-repository")
	if err != nil {
		return false, err
	}
	return out == "true", nil
}
