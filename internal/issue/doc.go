// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of Markdown help
// pages shown when the CLI hits a known failure (not a git repository, no
// change-log, invalid configuration and so on).
package issue
