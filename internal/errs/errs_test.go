package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationErrorMessage(t *testing.T) {
	tests := []struct {
		err  *ValidationError
		want string
	}{
		{NewMissing("verb"), "a sentence needs a verb"},
		{NewMissing("noun"), "a sentence needs a noun"},
		{NewMissing("verb", "noun"), "a sentence needs a verb and noun"},
		{NewValidation("text is empty"), "text is empty"},
		{&ValidationError{}, "invalid sentence"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestValidationUnwrap(t *testing.T) {
	err := Wrap(NewMissing("noun"), "reorder")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("errors.Is(%v, ErrInvalidInput) = false", err)
	}
	if !IsValidation(err) {
		t.Fatalf("IsValidation(%v) = false", err)
	}
	var v *ValidationError
	if !errors.As(err, &v) || len(v.Missing) != 1 || v.Missing[0] != "noun" {
		t.Fatalf("errors.As did not recover missing parts: %+v", v)
	}
}

func TestIOErrorUnwrap(t *testing.T) {
	base := fmt.Errorf("disk gone")
	err := NewIO("read", "/tmp/x", base)
	if !errors.Is(err, base) {
		t.Fatal("IOError should unwrap to the underlying error")
	}
	if got, want := err.Error(), "failed to read /tmp/x: disk gone"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if IsValidation(err) {
		t.Error("IOError must not be treated as a validation error")
	}
}

func TestParseAndUnsupported(t *testing.T) {
	if !errors.Is(NewParse("JSON", "", "bad"), ErrInvalidInput) {
		t.Error("ParseError without cause should unwrap to ErrInvalidInput")
	}
	if !errors.Is(NewUnsupported("store", "ftp"), ErrUnsupported) {
		t.Error("UnsupportedError should unwrap to ErrUnsupported")
	}
	if Wrap(nil, "x") != nil || Wrapf(nil, "x %d", 1) != nil {
		t.Error("wrapping nil must return nil")
	}
}
