package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNewFormatsMessage(t *testing.T) {
	err := New(ErrCodeInvalidRef, "unknown ref: %s", "topic")

	if err.Code != ErrCodeInvalidRef {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidRef)
	}
	if err.Message != "unknown ref: topic" {
		t.Errorf("Message = %q", err.Message)
	}
	if got := err.Error(); got != "INVALID_REF: unknown ref: topic" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := Wrap(ErrCodeRepoNotFound, cause, "open %s", "/tmp/repo")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	if got := err.Error(); got != "REPO_NOT_FOUND: open /tmp/repo: permission denied" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsMatchesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("load log: %w", New(ErrCodeCommitNotFound, "missing commit"))

	if !Is(err, ErrCodeCommitNotFound) {
		t.Error("Is should find the code through fmt.Errorf wrapping")
	}
	if Is(err, ErrCodeCache) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is should not match plain errors")
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "invalid format: %q", "gif")

	if GetCode(err) != ErrCodeInvalidFormat {
		t.Errorf("GetCode = %q", GetCode(err))
	}
	if GetCode(stderrors.New("plain")) != "" {
		t.Error("GetCode on plain error should be empty")
	}
	if UserMessage(err) != `invalid format: "gif"` {
		t.Errorf("UserMessage = %q", UserMessage(err))
	}
	if UserMessage(stderrors.New("plain")) != "plain" {
		t.Error("UserMessage on plain error should pass through")
	}
}
