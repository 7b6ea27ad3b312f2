// SPDX-License-Identifier: MPL-2.0

package gitstate

import (
	"slices"
	"testing"
)

func TestParsePorcelainV2(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		out     string
		want    []string
		wantErr bool
	}{
		{name: "empty", out: "", want: nil},
		{
			name: "headers only",
			out:  "# branch.oid 1a2b3c\n# branch.head main\n",
			want: nil,
		},
		{
			name: "ordinary entries",
			out: "1 .M N... 100644 100644 100644 aaa bbb src/main.go\n" +
				"1 M. N... 100644 100644 100644 aaa bbb README.md\n",
			want: []string{"README.md", "src/main.go"},
		},
		{
			name: "path with spaces",
			out:  "1 .M N... 100644 100644 100644 aaa bbb docs/my notes.md\n",
			want: []string{"docs/my notes.md"},
		},
		{
			name: "renamed reports new path",
			out:  "2 R. N... 100644 100644 100644 aaa bbb R100 cmd/new name.go\tcmd/old.go\n",
			want: []string{"cmd/new name.go"},
		},
		{
			name: "unmerged",
			out:  "u UU N... 100644 100644 100644 100644 aaa bbb ccc conflict.go\n",
			want: []string{"conflict.go"},
		},
		{
			name: "quoted path",
			out:  "1 .M N... 100644 100644 100644 aaa bbb \"caf\\303\\251.txt\"\n",
			want: []string{"café.txt"},
		},
		{
			name: "untracked and ignored skipped",
			out:  "? new.go\n! bin/app\n1 D. N... 100644 000000 000000 aaa 000 gone.go\n",
			want: []string{"gone.go"},
		},
		{
			name: "crlf",
			out:  "1 .M N... 100644 100644 100644 aaa bbb a.go\r\n",
			want: []string{"a.go"},
		},
		{name: "unknown entry type", out: "x something\n", wantErr: true},
		{name: "truncated entry", out: "1 .M N... 100644\n", wantErr: true},
		{name: "bad quoting", out: "1 .M N... 100644 100644 100644 aaa bbb \"oops\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parsePorcelainV2(tt.out)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parsePorcelainV2() = %q, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePorcelainV2() error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("parsePorcelainV2() = %q, want %q", got, tt.want)
			}
		})
	}
}
