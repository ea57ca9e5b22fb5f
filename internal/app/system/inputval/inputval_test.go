package inputval_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/taskflow/internal/app/system/apperr"
	"github.com/dalemusser/taskflow/internal/app/system/inputval"
)

type registerInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Name     string `validate:"required,max=100"`
}

func TestValidate_OK(t *testing.T) {
	in := registerInput{Email: "a@example.com", Password: "longenough", Name: "Ada"}
	if err := inputval.Validate(in); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestValidate_BadEmail(t *testing.T) {
	in := registerInput{Email: "not-an-email", Password: "longenough", Name: "Ada"}
	err := inputval.Validate(in)
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperr.Is(err, apperr.CodeInvalid) {
		t.Errorf("code: got %v, want %v", apperr.CodeOf(err), apperr.CodeInvalid)
	}
	if !strings.Contains(err.Error(), "email") {
		t.Errorf("message should name the field: %q", err.Error())
	}
}

func TestValidate_ShortPassword(t *testing.T) {
	in := registerInput{Email: "a@example.com", Password: "short", Name: "Ada"}
	err := inputval.Validate(in)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "password must be at least 8 characters") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestValidate_MultipleFailures(t *testing.T) {
	in := registerInput{}
	err := inputval.Validate(in)
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"email", "password", "name"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q: %q", want, msg)
		}
	}
}
