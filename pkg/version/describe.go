// SPDX-License-Identifier: MPL-2.0

package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// noCommitsHash is the placeholder hash used for a repository without commits.
const noCommitsHash = "g0000000"

// ErrInvalidDescribe is the sentinel error wrapped by InvalidDescribeError.
var ErrInvalidDescribe = errors.New("invalid describe output")

type (
	// Describe is the nearest-tag descriptor of a commit: the tag, the number
	// of commits since that tag and the abbreviated commit hash (conventionally
	// prefixed with "g").
	Describe struct {
		Tag      Tag
		Distance int
		Hash     string
	}

	// InvalidDescribeError is returned when a describe string is not of the
	// form <tag>-<distance>-<hash>.
	InvalidDescribeError struct {
		Value  string
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidDescribeError) Error() string {
	return fmt.Sprintf("invalid describe output %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidDescribe so callers can use errors.Is for programmatic detection.
func (e *InvalidDescribeError) Unwrap() error { return ErrInvalidDescribe }

// ParseDescribe parses the long describe form "<tag>-<distance>-<hash>", as
// produced by `git describe --tags --long`. The string is split from the right
// so the distance and hash are always the last two fields.
//
// A malformed tag yields an error wrapping ErrInvalidTag; a missing or
// non-numeric distance yields an error wrapping ErrInvalidDescribe.
func ParseDescribe(s string) (Describe, error) {
	s = strings.TrimSpace(s)

	hashSep := strings.LastIndexByte(s, '-')
	if hashSep < 0 {
		return Describe{}, &InvalidDescribeError{Value: s, Reason: "missing distance and hash"}
	}
	hash := s[hashSep+1:]
	if hash == "" {
		return Describe{}, &InvalidDescribeError{Value: s, Reason: "empty hash"}
	}

	distSep := strings.LastIndexByte(s[:hashSep], '-')
	if distSep < 0 {
		return Describe{}, &InvalidDescribeError{Value: s, Reason: "missing distance"}
	}
	rawDistance := s[distSep+1 : hashSep]
	distance, err := strconv.Atoi(rawDistance)
	if err != nil || distance < 0 || strings.HasPrefix(rawDistance, "+") {
		return Describe{}, &InvalidDescribeError{Value: s, Reason: fmt.Sprintf("distance %q is not a non-negative integer", rawDistance)}
	}

	tag, err := ParseTag(s[:distSep])
	if err != nil {
		return Describe{}, fmt.Errorf("describe %q: %w", s, err)
	}

	return Describe{Tag: tag, Distance: distance, Hash: hash}, nil
}

// Untagged synthesizes the descriptor for a history with no matching tag:
// v0.0.0, the total commit count as distance, and the abbreviated hash
// prefixed with "g".
func Untagged(totalCommits int, shortHash string) Describe {
	return Describe{Tag: ZeroTag, Distance: totalCommits, Hash: "g" + shortHash}
}

// NoCommits is the descriptor used when the repository has no history at all.
func NoCommits() Describe {
	return Describe{Tag: ZeroTag, Distance: 0, Hash: noCommitsHash}
}

// String returns the long describe form "<tag>-<distance>-<hash>".
func (d Describe) String() string {
	return fmt.Sprintf("%s-%d-%s", d.Tag, d.Distance, d.Hash)
}
