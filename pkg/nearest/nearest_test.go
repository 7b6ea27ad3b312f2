// SPDX-License-Identifier: MPL-2.0

package nearest

import (
	"errors"
	"testing"
)

func TestDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"go-testreport", "go-testreport", 0},
		{"go-testreport", "testreport", 3},
		{"gumbo", "gambol", 2},
		{"café", "cafe", 1},
		{"日本語", "日本", 1},
	}

	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := Distance(tt.b, tt.a); got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d (symmetry)", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestSelect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		preferred  string
		candidates []string
		want       string
	}{
		{
			name:       "exact match",
			preferred:  "go-testreport",
			candidates: []string{"go-testreport", "testreport", "other"},
			want:       "go-testreport",
		},
		{
			name:       "exact match not first",
			preferred:  "go-testreport",
			candidates: []string{"other", "testreport", "go-testreport"},
			want:       "go-testreport",
		},
		{
			name:       "closest",
			preferred:  "buildinfo",
			candidates: []string{"server", "build-info", "gen"},
			want:       "build-info",
		},
		{
			name:       "tie goes to first",
			preferred:  "ab",
			candidates: []string{"ax", "xb", "ab-long"},
			want:       "ax",
		},
		{
			name:       "single candidate",
			preferred:  "anything",
			candidates: []string{"only"},
			want:       "only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Select(tt.preferred, tt.candidates)
			if err != nil {
				t.Fatalf("Select() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Select() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelect_NoCandidates(t *testing.T) {
	t.Parallel()

	if _, err := Select("x", nil); !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("Select(nil) error = %v, want ErrNoCandidates", err)
	}
}
