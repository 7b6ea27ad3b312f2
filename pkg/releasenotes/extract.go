// SPDX-License-Identifier: MPL-2.0

package releasenotes

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// headingMarker opens a version section. Deeper headings ("## ...") are
// ordinary section content.
const headingMarker = "# "

// Extract returns the first change-log section whose heading label is a
// prefix of version. Lines keep their original endings. Leading blank lines of
// the section are dropped; everything else up to the next heading is returned
// verbatim. A document with no matching heading yields "" and no error.
func Extract(r io.Reader, version string) (string, error) {
	var (
		out       strings.Builder
		capturing bool
		started   bool
	)

	err := eachLine(r, func(line string) bool {
		if label, ok := headingLabel(line); ok {
			if capturing {
				return false
			}
			capturing = strings.HasPrefix(version, label)
			return true
		}
		if !capturing {
			return true
		}
		if !started && strings.TrimSpace(line) == "" {
			return true
		}
		started = true
		out.WriteString(line)
		return true
	})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// ExtractString is Extract over an in-memory document.
func ExtractString(doc, version string) string {
	// strings.Reader never fails.
	notes, _ := Extract(strings.NewReader(doc), version)
	return notes
}

// Headings lists the section labels of a change-log in document order.
func Headings(r io.Reader) ([]string, error) {
	var labels []string
	err := eachLine(r, func(line string) bool {
		if label, ok := headingLabel(line); ok {
			labels = append(labels, label)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return labels, nil
}

func headingLabel(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, headingMarker)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// eachLine feeds every line of r, including its terminator, to fn until fn
// returns false or the input is exhausted.
func eachLine(r io.Reader, fn func(line string) bool) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" && !fn(line) {
			return nil
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
