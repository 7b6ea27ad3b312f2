// SPDX-License-Identifier: MPL-2.0

package releasenotes

import (
	"fmt"
	"io"
	"strings"
)

// Options selects the optional parts of generated release notes.
type Options struct {
	// Prefix, when set, adds a "<Prefix> <version>" title line.
	Prefix string
	// Changelog, when set, is searched for the section matching the version.
	Changelog io.Reader
	// Checksums, when set, is appended verbatim inside a fenced block.
	Checksums io.Reader
}

// Generate assembles release notes for version:
//
//	<Prefix> <version>
//
//	<matching change-log section>
//
//	## Checksums
//
//	```
//	<checksums>```
//
// Every part is optional. With zero Options the result is empty.
func Generate(version string, opts Options) (string, error) {
	var b strings.Builder

	if opts.Prefix != "" {
		fmt.Fprintf(&b, "%s %s\n\n", opts.Prefix, version)
	}

	if opts.Changelog != nil {
		notes, err := Extract(opts.Changelog, version)
		if err != nil {
			return "", fmt.Errorf("reading changelog: %w", err)
		}
		b.WriteString(notes)
	}

	if opts.Checksums != nil {
		sums, err := io.ReadAll(opts.Checksums)
		if err != nil {
			return "", fmt.Errorf("reading checksums: %w", err)
		}
		b.WriteString("\n## Checksums\n\n```\n")
		b.Write(sums)
		b.WriteString("```\n")
	}

	return b.String(), nil
}
