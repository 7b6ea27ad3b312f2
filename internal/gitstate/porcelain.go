// SPDX-License-Identifier: MPL-2.0

package gitstate

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Number of space-separated fields before the path in each porcelain v2
// entry type. Paths may themselves contain spaces.
const (
	ordinaryFields = 8  // 1 XY sub mH mI mW hH hI <path>
	renamedFields  = 9  // 2 XY sub mH mI mW hH hI Xscore <path>\t<orig>
	unmergedFields = 10 // u XY sub m1 m2 m3 mW h1 h2 h3 <path>
)

// parsePorcelainV2 extracts the paths of changed entries from
// "git status --porcelain=2" output. Headers, untracked and ignored entries
// are skipped. Renamed and copied entries report their new path.
func parsePorcelainV2(out string) ([]string, error) {
	var paths []string
	for line := range strings.SplitSeq(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		var path string
		switch line[0] {
		case '1':
			path = fieldAfter(line, ordinaryFields)
		case '2':
			path, _, _ = strings.Cut(fieldAfter(line, renamedFields), "\t")
		case 'u':
			path = fieldAfter(line, unmergedFields)
		case '#', '?', '!':
			continue
		default:
			return nil, fmt.Errorf("unexpected porcelain v2 entry %q", line)
		}

		if path == "" {
			return nil, fmt.Errorf("malformed porcelain v2 entry %q", line)
		}
		unquoted, err := unquotePath(path)
		if err != nil {
			return nil, err
		}
		paths = append(paths, unquoted)
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}

// fieldAfter returns everything after the first n space-separated fields.
func fieldAfter(line string, n int) string {
	parts := strings.SplitN(line, " ", n+1)
	if len(parts) <= n {
		return ""
	}
	return parts[n]
}

// unquotePath decodes git's C-style quoting, used for paths with special or
// non-ASCII characters.
func unquotePath(p string) (string, error) {
	if len(p) < 2 || p[0] != '"' {
		return p, nil
	}
	s, err := strconv.Unquote(p)
	if err != nil {
		return "", fmt.Errorf("unquoting path %s: %w", p, err)
	}
	return s, nil
}
