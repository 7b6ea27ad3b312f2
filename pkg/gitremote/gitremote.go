// SPDX-License-Identifier: MPL-2.0

// Package gitremote converts git remote URLs into browsable HTTPS URLs.
package gitremote

import (
	"regexp"
	"strings"
)

const githubHost = "github.com"

// sshRemote matches scp-like SSH remotes such as git@github.com:org/repo.git.
var sshRemote = regexp.MustCompile(`^git@([^:/]+):(.+)\.git$`)

// IsSSH reports whether url is an scp-like SSH remote of the form
// git@<host>:<path>.git.
func IsSSH(url string) bool {
	return sshRemote.MatchString(strings.TrimSpace(url))
}

// Normalize converts git@<host>:<path>.git into https://<host>/<path>/.
// Hosts ending in "github.com" (SSH host aliases such as "work.github.com")
// collapse to github.com. Surrounding whitespace is ignored when matching, so
// raw git output works; any other input is returned unchanged, whitespace
// included. Normalize never fails.
func Normalize(url string) string {
	m := sshRemote.FindStringSubmatch(strings.TrimSpace(url))
	if m == nil {
		return url
	}

	host, path := m[1], m[2]
	if strings.HasSuffix(host, githubHost) {
		host = githubHost
	}
	return "https://" + host + "/" + path + "/"
}
