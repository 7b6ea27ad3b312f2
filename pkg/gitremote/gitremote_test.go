// SPDX-License-Identifier: MPL-2.0

package gitremote

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "github ssh", input: "git@github.com:org/repo.git", want: "https://github.com/org/repo/"},
		{name: "github alias host", input: "git@work.github.com:org/repo.git", want: "https://github.com/org/repo/"},
		{name: "other host", input: "git@gitlab.example.com:group/sub/repo.git", want: "https://gitlab.example.com/group/sub/repo/"},
		{name: "trailing newline", input: "git@github.com:maargenton/go-testreport.git\n", want: "https://github.com/maargenton/go-testreport/"},
		{name: "https identity", input: "https://example.com/x", want: "https://example.com/x"},
		{name: "https with .git identity", input: "https://github.com/org/repo.git", want: "https://github.com/org/repo.git"},
		{name: "ssh scheme identity", input: "ssh://git@github.com/org/repo.git", want: "ssh://git@github.com/org/repo.git"},
		{name: "ssh without .git identity", input: "git@github.com:org/repo", want: "git@github.com:org/repo"},
		{name: "empty", input: "", want: ""},
		{name: "unrecognized keeps whitespace", input: " https://example.com/x\n", want: " https://example.com/x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsSSH(t *testing.T) {
	t.Parallel()

	if !IsSSH("git@github.com:org/repo.git") {
		t.Error("IsSSH(scp-like) = false")
	}
	if IsSSH("https://github.com/org/repo.git") {
		t.Error("IsSSH(https) = true")
	}
}
