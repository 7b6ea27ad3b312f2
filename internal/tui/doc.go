// SPDX-License-Identifier: MPL-2.0

// Package tui renders Markdown for the terminal with glamour.
package tui
