package domain

import (
	"time"
)

// VerificationCode is one issued code for one email address. The
// (Email, Code) pair is the shared secret; only Verified ever mutates
// after insertion.
type VerificationCode struct {
	ID  string
	Seq int64 // monotonic insertion order, breaks CreatedAt ties

	Email string // stored exactly as submitted, no normalization
	Code  string

	Verified bool

	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the code is no longer valid at now.
func (v *VerificationCode) Expired(now time.Time) bool {
	return !v.ExpiresAt.After(now)
}

// VerificationStatus summarizes the newest record for an email.
type VerificationStatus struct {
	Verified    bool
	PendingCode bool
	ExpiresAt   *time.Time // nil when no record exists
}
