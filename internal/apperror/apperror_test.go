package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("education", "abc123"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "Missing wraps ErrNotFound",
			err:       Missing("Resume not found."),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("Name", "Name is required."),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Invalid wraps ErrValidation",
			err:       Invalid([]Violation{{Field: "Name", Message: "Name is required."}}),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Unauthorized wraps ErrUnauthorized",
			err:       Unauthorized("Invalid login attempt."),
			target:    ErrUnauthorized,
			wantMatch: true,
		},
		{
			name:      "wrapped NotFound still matches",
			err:       fmt.Errorf("loading resume: %w", Missing("Resume not found.")),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("education", "abc123"),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "Unauthorized does NOT match ErrNotFound",
			err:       Unauthorized("Invalid login attempt."),
			target:    ErrNotFound,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("project", "abc123"),
			wantMessage: "project not found with id abc123",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("NewCvFile", "Please upload a valid PDF file."),
			wantMessage: "Please upload a valid PDF file.",
		},
		{
			name: "Invalid joins every violation",
			err: Invalid([]Violation{
				{Field: "Name", Message: "Name is required."},
				{Field: "Message", Message: "Message is required."},
			}),
			wantMessage: "Name is required. Message is required.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	err := NotFound("blog post", "abc123")
	if unwrapped := err.Unwrap(); unwrapped != ErrNotFound {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrNotFound)
	}
}

func TestValidationFailedField(t *testing.T) {
	err := ValidationFailed("Email", "Invalid Email Address.")

	if err.Field != "Email" {
		t.Errorf("Field = %q, want %q", err.Field, "Email")
	}
	if len(err.Violations) != 1 || err.Violations[0].Field != "Email" {
		t.Errorf("Violations = %+v, want one violation on Email", err.Violations)
	}
}

func TestMessagesOf(t *testing.T) {
	err := fmt.Errorf("submitting contact: %w", Invalid([]Violation{
		{Field: "Name", Message: "Name is required."},
		{Field: "Email", Message: "Invalid Email Address."},
	}))

	got := MessagesOf(err)
	want := []string{"Name is required.", "Invalid Email Address."}
	if len(got) != len(want) {
		t.Fatalf("MessagesOf() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("MessagesOf()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if MessagesOf(errors.New("plain")) != nil {
		t.Error("MessagesOf() should return nil for errors without an AppError")
	}
}
