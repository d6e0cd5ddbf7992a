package validator

import (
	"errors"
	"strings"
	"testing"

	playgroundValidator "github.com/go-playground/validator/v10"
)

type sampleRequest struct {
	Title      string `validate:"required,max=5"`
	TargetKind string `validate:"required,oneof=video comment post"`
}

func TestFormatValidationError(t *testing.T) {
	v := playgroundValidator.New()

	err := v.Struct(sampleRequest{})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	msg := FormatValidationError(err)
	if !strings.Contains(msg, "Title is required") {
		t.Errorf("message missing required hint: %q", msg)
	}
	if !strings.Contains(msg, "Target kind is required") {
		t.Errorf("message missing mapped field name: %q", msg)
	}

	err = v.Struct(sampleRequest{Title: "much too long", TargetKind: "channel"})
	msg = FormatValidationError(err)
	if !strings.Contains(msg, "at most 5 characters") {
		t.Errorf("message missing max hint: %q", msg)
	}
	if !strings.Contains(msg, "must be one of: video comment post") {
		t.Errorf("message missing oneof hint: %q", msg)
	}
}

func TestFormatValidationErrorPassthrough(t *testing.T) {
	err := errors.New("not a validation error")
	if got := FormatValidationError(err); got != err.Error() {
		t.Errorf("FormatValidationError = %q, want passthrough", got)
	}
}
