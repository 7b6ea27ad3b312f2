// SPDX-License-Identifier: MPL-2.0

package releasenotes

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	const sums = "abc123  buildinfo_linux_amd64.tar.gz\n"

	tests := []struct {
		name string
		opts func() Options
		want string
	}{
		{name: "nothing", opts: func() Options { return Options{} }, want: ""},
		{
			name: "prefix only",
			opts: func() Options { return Options{Prefix: "buildinfo"} },
			want: "buildinfo v1.2.0\n\n",
		},
		{
			name: "changelog only",
			opts: func() Options { return Options{Changelog: strings.NewReader(changelog)} },
			want: "Note A\n\n",
		},
		{
			name: "all parts",
			opts: func() Options {
				return Options{
					Prefix:    "buildinfo",
					Changelog: strings.NewReader(changelog),
					Checksums: strings.NewReader(sums),
				}
			},
			want: "buildinfo v1.2.0\n\nNote A\n\n\n## Checksums\n\n```\n" + sums + "```\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Generate("v1.2.0", tt.opts())
			if err != nil {
				t.Fatalf("Generate() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Generate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerate_ReadErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	if _, err := Generate("v1.0.0", Options{Changelog: iotest.ErrReader(boom)}); !errors.Is(err, boom) {
		t.Errorf("Generate(bad changelog) error = %v", err)
	}
	if _, err := Generate("v1.0.0", Options{Checksums: iotest.ErrReader(boom)}); !errors.Is(err, boom) {
		t.Errorf("Generate(bad checksums) error = %v", err)
	}
}
