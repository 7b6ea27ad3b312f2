// SPDX-License-Identifier: MPL-2.0

package version

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrInvalidTag is the sentinel error wrapped by InvalidTagError.
var ErrInvalidTag = errors.New("invalid tag")

// tagPattern matches v<major>.<minor>.<patch> with digit-only components.
var tagPattern = regexp.MustCompile(`^v([0-9]+)\.([0-9]+)\.([0-9]+)$`)

// ZeroTag is the synthetic tag used when no release tag is reachable from HEAD.
var ZeroTag = Tag{}

type (
	// Tag is a release tag of the form v<major>.<minor>.<patch>.
	Tag struct {
		Major int
		Minor int
		Patch int
	}

	// InvalidTagError is returned when a tag string does not have exactly three
	// numeric dot-separated components after the leading "v".
	InvalidTagError struct {
		Value string
		Err   error // optional numeric conversion failure
	}
)

// Error implements the error interface.
func (e *InvalidTagError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid tag %q (expected v<major>.<minor>.<patch>): %v", e.Value, e.Err)
	}
	return fmt.Sprintf("invalid tag %q (expected v<major>.<minor>.<patch>)", e.Value)
}

// Unwrap returns ErrInvalidTag so callers can use errors.Is for programmatic detection.
func (e *InvalidTagError) Unwrap() error { return ErrInvalidTag }

// ParseTag parses a v<major>.<minor>.<patch> tag. Non-numeric components,
// missing components and trailing data are rejected rather than coerced.
func ParseTag(s string) (Tag, error) {
	m := tagPattern.FindStringSubmatch(s)
	if m == nil {
		return Tag{}, &InvalidTagError{Value: s}
	}

	var parts [3]int
	for i := range parts {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			// Only reachable on overflow; the pattern guarantees digits.
			return Tag{}, &InvalidTagError{Value: s, Err: err}
		}
		parts[i] = n
	}

	return Tag{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}

// MustParseTag is like ParseTag but panics on error. Intended for constants
// and tests.
func MustParseTag(s string) Tag {
	t, err := ParseTag(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the canonical v<major>.<minor>.<patch> form.
func (t Tag) String() string {
	return fmt.Sprintf("v%d.%d.%d", t.Major, t.Minor, t.Patch)
}

// BumpPatch returns the tag with its patch component incremented by one.
func (t Tag) BumpPatch() Tag {
	t.Patch++
	return t
}

// IsZero reports whether t is v0.0.0.
func (t Tag) IsZero() bool { return t == ZeroTag }
