package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNewAndIs(t *testing.T) {
	err := New(ErrCodeInvalidPitch, "pitch %.1f too small", 50.0)

	if !Is(err, ErrCodeInvalidPitch) {
		t.Error("Is should match the code")
	}
	if Is(err, ErrCodeInvalidConfig) {
		t.Error("Is should not match a different code")
	}
	if got := err.Error(); got != "INVALID_PITCH: pitch 50.0 too small" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(ErrCodeInvalidNetlist, cause, "parse %s", "groups.toml")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause")
	}
	if GetCode(err) != ErrCodeInvalidNetlist {
		t.Errorf("GetCode = %q", GetCode(err))
	}

	// Code survives another layer of fmt wrapping.
	outer := fmt.Errorf("loading: %w", err)
	if GetCode(outer) != ErrCodeInvalidNetlist {
		t.Errorf("GetCode through fmt wrap = %q", GetCode(outer))
	}
}

func TestGetCodePlainError(t *testing.T) {
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeEmptyRegistry, "port registry is empty")
	if got := UserMessage(err); got != "port registry is empty" {
		t.Errorf("UserMessage = %q", got)
	}

	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestIsConfiguration(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{ErrCodeInvalidConfig, true},
		{ErrCodeInvalidPitch, true},
		{ErrCodeEmptyRegistry, true},
		{ErrCodeNoResolvedGroups, true},
		{ErrCodeNotFound, false},
		{ErrCodeInternal, false},
	}
	for _, tt := range tests {
		if got := IsConfiguration(New(tt.code, "x")); got != tt.want {
			t.Errorf("IsConfiguration(%s) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
