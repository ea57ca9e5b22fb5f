package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dalemusser/taskflow/internal/app/system/apperr"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperr.Code
	}{
		{"not found", apperr.NotFound("team not found"), apperr.CodeNotFound},
		{"conflict", apperr.Conflict("email already exists"), apperr.CodeConflict},
		{"unauthorized", apperr.Unauthorized("invalid credentials"), apperr.CodeUnauthorized},
		{"forbidden", apperr.Forbidden("not allowed"), apperr.CodeForbidden},
		{"invalid", apperr.Invalid("bad input"), apperr.CodeInvalid},
		{"internal", apperr.Internal(""), apperr.CodeInternal},
		{"untyped", errors.New("boom"), apperr.CodeInternal},
		{"wrapped", fmt.Errorf("resolver: %w", apperr.NotFound("gone")), apperr.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apperr.CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtensionsCarriesCode(t *testing.T) {
	err := apperr.Conflict("duplicate membership")

	var ae *apperr.Error
	if !errors.As(err, &ae) {
		t.Fatal("expected *apperr.Error")
	}
	ext := ae.Extensions()
	if ext["code"] != string(apperr.CodeConflict) {
		t.Errorf("extensions code: got %v, want %q", ext["code"], apperr.CodeConflict)
	}
}

func TestInternalHidesDetail(t *testing.T) {
	err := apperr.Internal("")
	if err.Error() != "internal server error" {
		t.Errorf("Internal message leaked: %q", err.Error())
	}
}
