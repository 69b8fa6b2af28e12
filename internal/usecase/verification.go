package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/verimail/verimail/internal/domain"
	"github.com/verimail/verimail/internal/email"
	"github.com/verimail/verimail/internal/metrics"
	"github.com/verimail/verimail/internal/repository"
)

const defaultCodeExpiry = 10 * time.Minute

// CodeGenerator produces the short codes delivered to users.
type CodeGenerator interface {
	Generate() (string, error)
}

// VerificationUsecase owns the verification record lifecycle: issue,
// verify, status, sweep. It is the only writer of record state.
type VerificationUsecase struct {
	repo   repository.VerificationRepository
	gen    CodeGenerator
	sender email.Sender
	expiry time.Duration
	logger *slog.Logger
}

func NewVerificationUsecase(repo repository.VerificationRepository, gen CodeGenerator, sender email.Sender, expiry time.Duration, logger *slog.Logger) *VerificationUsecase {
	if expiry <= 0 {
		expiry = defaultCodeExpiry
	}
	return &VerificationUsecase{
		repo:   repo,
		gen:    gen,
		sender: sender,
		expiry: expiry,
		logger: logger.With("component", "verification_usecase"),
	}
}

// Issue invalidates every prior record for the email, persists a fresh
// code, and emails it. A delivery failure surfaces as an error while
// the record stays persisted; the next Issue or the sweep cleans it up.
func (u *VerificationUsecase) Issue(ctx context.Context, emailAddr string) (string, error) {
	if _, err := u.repo.DeleteByEmail(ctx, emailAddr); err != nil {
		return "", fmt.Errorf("delete existing codes: %w", err)
	}

	code, err := u.gen.Generate()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	now := time.Now()
	rec := &domain.VerificationCode{
		Email:     emailAddr,
		Code:      code,
		Verified:  false,
		CreatedAt: now,
		ExpiresAt: now.Add(u.expiry),
	}
	if _, err := u.repo.Insert(ctx, rec); err != nil {
		return "", fmt.Errorf("store verification code: %w", err)
	}

	if err := u.sender.SendVerificationCode(ctx, emailAddr, code); err != nil {
		return "", domain.DeliveryError(err)
	}

	metrics.CodesIssuedTotal.Inc()
	u.logger.Info("verification code issued", "email", emailAddr, "expires_at", rec.ExpiresAt)
	return code, nil
}

// Verify checks the submitted (email, code) pair. A miss is a plain
// false, never an error; the caller cannot tell whether the email or
// the code was wrong. An expired match is deleted on the spot. A still
// valid match stays verifiable: repeat calls with the same unexpired
// code keep returning true until a new Issue supersedes it.
func (u *VerificationUsecase) Verify(ctx context.Context, emailAddr, code string) (bool, error) {
	recs, err := u.repo.FindByEmail(ctx, emailAddr)
	if err != nil {
		return false, fmt.Errorf("find codes: %w", err)
	}

	var match *domain.VerificationCode
	for _, rec := range recs {
		if rec.Code == code {
			match = rec
			break
		}
	}
	if match == nil {
		metrics.VerificationsTotal.WithLabelValues("invalid").Inc()
		return false, nil
	}

	if match.Expired(time.Now()) {
		if _, err := u.repo.DeleteByEmail(ctx, emailAddr); err != nil {
			return false, fmt.Errorf("delete expired codes: %w", err)
		}
		metrics.VerificationsTotal.WithLabelValues("expired").Inc()
		return false, nil
	}

	if err := u.repo.MarkVerified(ctx, match.ID); err != nil {
		return false, fmt.Errorf("mark verified: %w", err)
	}

	metrics.VerificationsTotal.WithLabelValues("verified").Inc()
	u.logger.Info("email verified", "email", emailAddr)
	return true, nil
}

// Status reports the newest record for the email. Siblings left behind
// by partial failures are ignored here, not cleaned up.
func (u *VerificationUsecase) Status(ctx context.Context, emailAddr string) (domain.VerificationStatus, error) {
	recs, err := u.repo.FindByEmail(ctx, emailAddr)
	if err != nil {
		return domain.VerificationStatus{}, fmt.Errorf("find codes: %w", err)
	}
	if len(recs) == 0 {
		return domain.VerificationStatus{}, nil
	}

	newest := recs[0]
	for _, rec := range recs[1:] {
		if rec.CreatedAt.After(newest.CreatedAt) ||
			(rec.CreatedAt.Equal(newest.CreatedAt) && rec.Seq > newest.Seq) {
			newest = rec
		}
	}

	expiresAt := newest.ExpiresAt
	return domain.VerificationStatus{
		Verified:    newest.Verified,
		PendingCode: expiresAt.After(time.Now()),
		ExpiresAt:   &expiresAt,
	}, nil
}

// Sweep deletes every expired record across all emails and returns the
// count, bounding storage growth from abandoned codes.
func (u *VerificationUsecase) Sweep(ctx context.Context) (int, error) {
	count, err := u.repo.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("delete expired: %w", err)
	}
	if count > 0 {
		u.logger.Info("swept expired verification codes", "count", count)
	}
	return count, nil
}
