// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestExitCodeValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     ExitCode
		wantValid bool
	}{
		{name: "ok", value: ExitOK, wantValid: true},
		{name: "failure", value: ExitFailure, wantValid: true},
		{name: "invalid input", value: ExitInvalidInput, wantValid: true},
		{name: "no candidates", value: ExitNoCandidates, wantValid: true},
		{name: "255 is valid", value: 255, wantValid: true},
		{name: "negative is invalid", value: -1, wantValid: false},
		{name: "256 is invalid", value: 256, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if tt.wantValid {
				if err != nil {
					t.Errorf("ExitCode(%d).Validate() returned error for valid value: %v", tt.value, err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidExitCode) {
				t.Errorf("ExitCode(%d).Validate() = %v, want ErrInvalidExitCode", tt.value, err)
			}
			var codeErr *InvalidExitCodeError
			if !errors.As(err, &codeErr) || codeErr.Value != tt.value {
				t.Errorf("error should be *InvalidExitCodeError for %d, got %T", tt.value, err)
			}
		})
	}
}

func TestExitCodeIsSuccess(t *testing.T) {
	t.Parallel()

	if !ExitOK.IsSuccess() {
		t.Error("ExitOK.IsSuccess() = false")
	}
	for _, c := range []ExitCode{ExitFailure, ExitInvalidInput, ExitNoCandidates} {
		if c.IsSuccess() {
			t.Errorf("ExitCode(%d).IsSuccess() = true", c)
		}
	}
}

func TestExitCodeString(t *testing.T) {
	t.Parallel()

	if got := ExitNoCandidates.String(); got != "3" {
		t.Errorf("ExitNoCandidates.String() = %q, want %q", got, "3")
	}
}
