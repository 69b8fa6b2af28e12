package repository

import (
	"context"
	"time"

	"github.com/verimail/verimail/internal/domain"
)

// VerificationRepository is the persistence surface the usecase depends
// on. Implementations provide per-row atomicity only; multi-row calls
// like DeleteByEmail may partially fail, and delete-then-insert during
// issuance is not transactional. The usecase tolerates the resulting
// multi-record states by matching first / picking newest.
type VerificationRepository interface {
	// FindByEmail returns all records for email in unspecified order.
	FindByEmail(ctx context.Context, email string) ([]*domain.VerificationCode, error)
	Insert(ctx context.Context, rec *domain.VerificationCode) (*domain.VerificationCode, error)
	// DeleteByEmail removes every record for email, any state.
	DeleteByEmail(ctx context.Context, email string) (int, error)
	// MarkVerified flips the verified flag; all other fields stay as inserted.
	MarkVerified(ctx context.Context, id string) error
	// DeleteExpired removes all records across emails with expires_at
	// before the cutoff and returns how many were deleted.
	DeleteExpired(ctx context.Context, before time.Time) (int, error)
}
