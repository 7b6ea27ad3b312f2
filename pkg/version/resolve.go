// SPDX-License-Identifier: MPL-2.0

package version

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

type (
	// Resolver turns repository facts into a ResolvedVersion. The zero value
	// is not usable; construct one with NewResolver.
	Resolver struct {
		defaultBranches []Branch
		policy          BumpPolicy
	}

	// ResolverOption configures a Resolver during construction.
	ResolverOption func(*Resolver)

	// ResolvedVersion is the final version string: either a bare tag or a tag
	// decorated with a pre-release suffix.
	ResolvedVersion string
)

// WithDefaultBranches replaces the set of branch names treated as mainline.
// An empty list keeps the defaults.
func WithDefaultBranches(branches ...Branch) ResolverOption {
	return func(r *Resolver) {
		if len(branches) > 0 {
			r.defaultBranches = branches
		}
	}
}

// WithBumpPolicy selects the patch-bump policy. An empty policy keeps BumpAny.
func WithBumpPolicy(p BumpPolicy) ResolverOption {
	return func(r *Resolver) {
		if p != "" {
			r.policy = p
		}
	}
}

// NewResolver creates a Resolver. Defaults: DefaultBranches and BumpAny.
func NewResolver(opts ...ResolverOption) (*Resolver, error) {
	r := &Resolver{
		defaultBranches: DefaultBranches,
		policy:          BumpAny,
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.policy.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Policy returns the configured bump policy.
func (r *Resolver) Policy() BumpPolicy { return r.policy }

// IsDefaultBranch reports whether b counts as a mainline branch for the given
// version string.
func (r *Resolver) IsDefaultBranch(b Branch, ver string) bool {
	return isDefaultBranch(b, ver, r.defaultBranches)
}

// Resolve computes the version for the given facts.
//
// A clean build on a default branch exactly at a tag yields the tag itself.
// Anything else yields "<tag>-<label>.<distance>.<hash>[.<dirty>]", where the
// tag has its patch bumped according to the policy and label is "rc" on a
// default branch or the branch name otherwise. Resolve is deterministic: equal
// inputs always give equal output.
func (r *Resolver) Resolve(d Describe, branch Branch, dirty DirtyState) ResolvedVersion {
	tag := d.Tag
	bumped := r.policy.shouldBump(d.Distance, r.IsDefaultBranch(branch, tag.String()), dirty.Present())
	if bumped {
		tag = tag.BumpPatch()
	}
	base := tag.String()

	// A bumped tag is never released as is, even when the branch is named
	// after it.
	isDefault := r.IsDefaultBranch(branch, base)
	if !bumped && isDefault && d.Distance == 0 && !dirty.Present() {
		return ResolvedVersion(base)
	}

	label := string(branch)
	if isDefault {
		label = releaseLabel
	}
	parts := []string{label, strconv.Itoa(d.Distance), d.Hash}
	if dirty.Present() {
		parts = append(parts, dirty.Fragment())
	}
	return ResolvedVersion(base + "-" + strings.Join(parts, "."))
}

// ResolveDescribe parses a long describe string and resolves it. Malformed
// input is reported as an error wrapping ErrInvalidTag or ErrInvalidDescribe.
func (r *Resolver) ResolveDescribe(raw string, branch Branch, dirty DirtyState) (ResolvedVersion, error) {
	d, err := ParseDescribe(raw)
	if err != nil {
		return "", err
	}
	return r.Resolve(d, branch, dirty), nil
}

// String returns the version string.
func (v ResolvedVersion) String() string { return string(v) }

// IsRelease reports whether v is a bare tag without a pre-release suffix.
func (v ResolvedVersion) IsRelease() bool {
	return !strings.Contains(string(v), "-")
}

// Validate checks that v is a valid semantic version. Branch names containing
// characters outside the semver identifier set (such as "_") produce versions
// that are still usable as labels but do not order as semver.
func (v ResolvedVersion) Validate() error {
	if !semver.IsValid(string(v)) {
		return fmt.Errorf("version %q is not a valid semantic version", string(v))
	}
	return nil
}

// Compare returns -1, 0 or +1 as v sorts before, equal to or after other under
// semantic version precedence.
func (v ResolvedVersion) Compare(other ResolvedVersion) int {
	return semver.Compare(string(v), string(other))
}
