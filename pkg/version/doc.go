// SPDX-License-Identifier: MPL-2.0

// Package version derives a deterministic, sortable version string from the
// state of a source checkout.
//
// The inputs are plain facts gathered from version control: the nearest tag
// descriptor (tag, commits since tag, abbreviated hash), the current branch
// name and the modification time of locally changed tracked files. The
// Resolver turns them into either the bare tag (a clean build on the default
// branch, exactly on a tag) or a decorated pre-release string:
//
//	v1.2.4-<branch|rc>.<distance>.<hash>[.m<hex-mtime>]
//
// Whenever the result is decorated, the patch component is bumped first so
// that the pre-release sorts strictly after the previous tag and strictly
// before the next one under semantic version precedence:
//
//	v0.6.1
//	    v0.6.1-feature.1.g6ede8cd   <-- bumped
//	v0.6.0
//
// All functions in this package are pure; nothing is cached across calls.
package version
