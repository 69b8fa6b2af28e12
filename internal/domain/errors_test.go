package domain_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/verimail/verimail/internal/domain"
)

func TestErrorKinds_CarryStatusAndMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *domain.Error
		kind domain.ErrorKind
		code int
	}{
		{"validation", domain.ValidationError("Invalid email address"), domain.KindValidation, http.StatusBadRequest},
		{"rate limit", domain.RateLimitError(), domain.KindRateLimit, http.StatusTooManyRequests},
		{"persistence", domain.PersistenceError("23505", errors.New("dup")), domain.KindPersistence, http.StatusInternalServerError},
		{"delivery", domain.DeliveryError(errors.New("smtp down")), domain.KindDelivery, http.StatusInternalServerError},
		{"unknown", domain.UnknownError(errors.New("boom")), domain.KindUnknown, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("kind = %q, want %q", tt.err.Kind, tt.kind)
			}
			if tt.err.Status != tt.code {
				t.Errorf("status = %d, want %d", tt.err.Status, tt.code)
			}
			if tt.err.Message == "" {
				t.Error("message must be set for the client")
			}
		})
	}
}

func TestPersistenceError_IncludesStorageCode(t *testing.T) {
	err := domain.PersistenceError("08006", errors.New("connection lost"))
	if !strings.Contains(err.Message, "08006") {
		t.Errorf("message %q does not carry the storage code", err.Message)
	}

	bare := domain.PersistenceError("", errors.New("connection lost"))
	if bare.Message != "Database error" {
		t.Errorf("message = %q, want plain Database error", bare.Message)
	}
}

func TestError_UnwrapsCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := domain.DeliveryError(cause)
	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}

	var derr *domain.Error
	if !errors.As(error(err), &derr) || derr.Kind != domain.KindDelivery {
		t.Error("errors.As must recover the tagged error")
	}
}
