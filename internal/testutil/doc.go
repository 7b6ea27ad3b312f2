// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers that fail the test on error, plus git
// repository fixtures: GitRepo drives a real git binary in a temp directory
// and MemRepo builds an in-memory go-git repository.
package testutil
