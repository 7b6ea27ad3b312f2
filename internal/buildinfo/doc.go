// SPDX-License-Identifier: MPL-2.0

// Package buildinfo collects the repository facts needed to version a build
// into a RepoState value and renders the resulting summary in several output
// formats.
//
// A RepoState is gathered once per invocation with Collect and passed
// explicitly to everything that needs it. Nothing is cached at package level.
package buildinfo
