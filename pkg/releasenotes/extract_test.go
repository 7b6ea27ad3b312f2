// SPDX-License-Identifier: MPL-2.0

package releasenotes

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"testing/iotest"
)

const changelog = "# v1.2.0\n\nNote A\n\n# v1.1.0\n\nNote B\n"

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		version string
		want    string
	}{
		{name: "exact version", doc: changelog, version: "v1.2.0", want: "Note A\n\n"},
		{name: "decorated version", doc: changelog, version: "v1.2.0-rc.3.gabc123", want: "Note A\n\n"},
		{name: "last section", doc: changelog, version: "v1.1.0", want: "Note B\n"},
		{name: "no match", doc: changelog, version: "v2.0.0", want: ""},
		{name: "empty document", doc: "", version: "v1.0.0", want: ""},
		{
			name:    "first match wins",
			doc:     "# v1\n\nline one\n# v1.2\n\nline two\n",
			version: "v1.2.3",
			want:    "line one\n",
		},
		{
			name:    "later match after non matching section",
			doc:     "# v2.0.0\nnext\n# v1.0.0\nold\n",
			version: "v1.0.0",
			want:    "old\n",
		},
		{
			name:    "sub headings and code pass through",
			doc:     "# v1.0.0\n\n## Added\n\n```\n# not a heading inside\n```\n",
			version: "v1.0.0",
			want:    "## Added\n\n```\n",
		},
		{
			name:    "internal blank lines kept",
			doc:     "# v1.0.0\n  \n\nfirst\n\n\nsecond\n\n",
			version: "v1.0.0",
			want:    "first\n\n\nsecond\n\n",
		},
		{
			name:    "heading label is trimmed",
			doc:     "#   v1.0.0  \r\nnotes\r\n",
			version: "v1.0.0",
			want:    "notes\r\n",
		},
		{
			name:    "hash without space is content",
			doc:     "#v1.0.0\nnope\n# v1.0.0\nyes\n#tag\n",
			version: "v1.0.0",
			want:    "yes\n#tag\n",
		},
		{
			name:    "no trailing newline",
			doc:     "# v1.0.0\nonly line",
			version: "v1.0.0",
			want:    "only line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Extract(strings.NewReader(tt.doc), tt.version)
			if err != nil {
				t.Fatalf("Extract() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
			if s := ExtractString(tt.doc, tt.version); s != tt.want {
				t.Errorf("ExtractString() = %q, want %q", s, tt.want)
			}
		})
	}
}

func TestExtract_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	if _, err := Extract(iotest.ErrReader(boom), "v1.0.0"); !errors.Is(err, boom) {
		t.Fatalf("Extract() error = %v, want %v", err, boom)
	}
}

func TestHeadings(t *testing.T) {
	t.Parallel()

	got, err := Headings(strings.NewReader("intro\n# v1.2.0\n## Added\n# v1.1.0\n#skip\n# \n"))
	if err != nil {
		t.Fatalf("Headings() error: %v", err)
	}
	want := []string{"v1.2.0", "v1.1.0", ""}
	if !slices.Equal(got, want) {
		t.Errorf("Headings() = %q, want %q", got, want)
	}
}
