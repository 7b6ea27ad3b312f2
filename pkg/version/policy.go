// SPDX-License-Identifier: MPL-2.0

package version

import (
	"errors"
	"fmt"
)

const (
	// BumpAny bumps the patch component when there are commits since the tag,
	// the branch is not a default branch, or the tree is dirty. It is the only
	// policy under which every decorated version sorts above its base tag.
	BumpAny BumpPolicy = "any"
	// BumpBranch bumps when there are commits since the tag or the branch is
	// not a default branch.
	BumpBranch BumpPolicy = "branch"
	// BumpDirty bumps when there are commits since the tag or the tree is dirty.
	BumpDirty BumpPolicy = "dirty"
)

// ErrInvalidBumpPolicy is the sentinel error wrapped by InvalidBumpPolicyError.
var ErrInvalidBumpPolicy = errors.New("invalid bump policy")

type (
	// BumpPolicy selects the condition under which the patch component of the
	// base tag is incremented before decorating it.
	BumpPolicy string

	// InvalidBumpPolicyError is returned when a BumpPolicy value is not recognized.
	InvalidBumpPolicyError struct {
		Value BumpPolicy
	}
)

// Error implements the error interface.
func (e *InvalidBumpPolicyError) Error() string {
	return fmt.Sprintf("invalid bump policy %q (valid: any, branch, dirty)", e.Value)
}

// Unwrap returns ErrInvalidBumpPolicy so callers can use errors.Is for programmatic detection.
func (e *InvalidBumpPolicyError) Unwrap() error { return ErrInvalidBumpPolicy }

// Validate returns an error if the policy is not one of the known values.
// The zero value is valid and means BumpAny.
func (p BumpPolicy) Validate() error {
	switch p {
	case "", BumpAny, BumpBranch, BumpDirty:
		return nil
	default:
		return &InvalidBumpPolicyError{Value: p}
	}
}

// String returns the policy name.
func (p BumpPolicy) String() string { return string(p) }

// shouldBump applies the policy to the resolver inputs.
func (p BumpPolicy) shouldBump(distance int, defaultBranch, dirty bool) bool {
	if distance > 0 {
		return true
	}
	switch p {
	case BumpBranch:
		return !defaultBranch
	case BumpDirty:
		return dirty
	default:
		return !defaultBranch || dirty
	}
}
