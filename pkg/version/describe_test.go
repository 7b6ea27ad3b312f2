// SPDX-License-Identifier: MPL-2.0

package version

import (
	"errors"
	"testing"
)

func TestParseDescribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Describe
		wantErr error
	}{
		{
			name:  "on tag",
			input: "v1.2.3-0-gabc1234",
			want:  Describe{Tag: Tag{1, 2, 3}, Distance: 0, Hash: "gabc1234"},
		},
		{
			name:  "commits since tag",
			input: "v0.6.0-12-g6ede8cd\n",
			want:  Describe{Tag: Tag{0, 6, 0}, Distance: 12, Hash: "g6ede8cd"},
		},
		{name: "bare hash", input: "abc1234", wantErr: ErrInvalidDescribe},
		{name: "missing distance", input: "v1.2.3-gabc1234", wantErr: ErrInvalidDescribe},
		{name: "non numeric distance", input: "v1.2.3-x-gabc1234", wantErr: ErrInvalidDescribe},
		{name: "double dash", input: "v1.2.3--1-gabc1234", wantErr: ErrInvalidTag},
		{name: "plus distance", input: "v1.2.3-+1-gabc1234", wantErr: ErrInvalidDescribe},
		{name: "empty hash", input: "v1.2.3-1-", wantErr: ErrInvalidDescribe},
		{name: "bad tag", input: "v1.2-3-gabc1234", wantErr: ErrInvalidTag},
		{name: "tag with suffix", input: "v1.2.3-rc1-3-gabc1234", wantErr: ErrInvalidTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDescribe(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseDescribe(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDescribe(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDescribe(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestUntaggedAndNoCommits(t *testing.T) {
	t.Parallel()

	d := Untagged(42, "abc1234")
	want := Describe{Tag: ZeroTag, Distance: 42, Hash: "gabc1234"}
	if d != want {
		t.Errorf("Untagged() = %+v, want %+v", d, want)
	}
	if got := d.String(); got != "v0.0.0-42-gabc1234" {
		t.Errorf("String() = %q", got)
	}

	if got := NoCommits().String(); got != "v0.0.0-0-g0000000" {
		t.Errorf("NoCommits() = %q", got)
	}
}

func TestDescribe_RoundTrip(t *testing.T) {
	t.Parallel()

	d := Describe{Tag: Tag{3, 1, 4}, Distance: 15, Hash: "g9265358"}
	got, err := ParseDescribe(d.String())
	if err != nil {
		t.Fatalf("ParseDescribe(%q): %v", d.String(), err)
	}
	if got != d {
		t.Errorf("round trip = %+v, want %+v", got, d)
	}
}
