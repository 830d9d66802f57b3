package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidReference, "invalid package reference: %s", "@@@")

	if err.Code != ErrCodeInvalidReference {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidReference)
	}
	if err.Message != "invalid package reference: @@@" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeNetwork, "request failed"),
			want: "NETWORK_ERROR: request failed",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeNetwork, stderrors.New("connection refused"), "request failed"),
			want: "NETWORK_ERROR: request failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := Wrap(ErrCodePackageNotFound, cause, "package %s", "left-pad")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap() should return the cause")
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad input")
	wrapped := fmt.Errorf("context: %w", err)

	if !Is(wrapped, ErrCodeInvalidInput) {
		t.Error("Is() should match through wrapping")
	}
	if Is(wrapped, ErrCodeNetwork) {
		t.Error("Is() should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInvalidInput) {
		t.Error("Is() should not match plain errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeTimeout, "slow")); got != ErrCodeTimeout {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeTimeout)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeNetwork, "registry unreachable")); got != "registry unreachable" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(stderrors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %q", got)
	}
}
