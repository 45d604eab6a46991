package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/farmasys/orcamento-api/internal/apperr"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		kind apperr.Kind
		want int
	}{
		{apperr.Validation, http.StatusBadRequest},
		{apperr.Auth, http.StatusUnauthorized},
		{apperr.EmptyResult, http.StatusNotFound},
		{apperr.Database, http.StatusInternalServerError},
		{apperr.Render, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := apperr.Status(apperr.New(tt.kind, "x")); got != tt.want {
			t.Errorf("kind %d: expected status %d, got %d", tt.kind, tt.want, got)
		}
	}
}

func TestUnclassifiedErrorIsInternal(t *testing.T) {
	if got := apperr.Status(errors.New("boom")); got != http.StatusInternalServerError {
		t.Errorf("expected 500 for unclassified error, got %d", got)
	}
	if got := apperr.KindOf(errors.New("boom")); got != 0 {
		t.Errorf("expected kind 0, got %d", got)
	}
}

func TestWrapPreservesChain(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Wrap(apperr.Database, "database connection failed", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause must stay in the chain")
	}
	if got := err.Error(); got != "database connection failed: connection refused" {
		t.Errorf("unexpected message %q", got)
	}

	// Classification survives further wrapping.
	outer := fmt.Errorf("handler: %w", err)
	if apperr.KindOf(outer) != apperr.Database {
		t.Error("kind must survive wrapping with fmt.Errorf")
	}
	if apperr.Status(outer) != http.StatusInternalServerError {
		t.Error("status must survive wrapping")
	}
}
