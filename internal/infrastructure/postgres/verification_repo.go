package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/verimail/verimail/internal/domain"
)

type VerificationRepository struct {
	pool *pgxpool.Pool
}

func NewVerificationRepository(pool *pgxpool.Pool) *VerificationRepository {
	return &VerificationRepository{pool: pool}
}

const verificationColumns = `id, seq, email, code, verified, created_at, expires_at`

func (r *VerificationRepository) FindByEmail(ctx context.Context, email string) ([]*domain.VerificationCode, error) {
	query := `
		SELECT ` + verificationColumns + `
		FROM verification_codes
		WHERE email = $1`

	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, wrapPgErr("find by email", err)
	}
	defer rows.Close()

	return scanVerifications(rows)
}

func (r *VerificationRepository) Insert(ctx context.Context, rec *domain.VerificationCode) (*domain.VerificationCode, error) {
	query := `
		INSERT INTO verification_codes (email, code, verified, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + verificationColumns

	row := r.pool.QueryRow(ctx, query,
		rec.Email,
		rec.Code,
		rec.Verified,
		rec.CreatedAt,
		rec.ExpiresAt,
	)

	created, err := scanVerification(row)
	if err != nil {
		return nil, wrapPgErr("insert verification code", err)
	}
	return created, nil
}

func (r *VerificationRepository) DeleteByEmail(ctx context.Context, email string) (int, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM verification_codes WHERE email = $1`,
		email,
	)
	if err != nil {
		return 0, wrapPgErr("delete by email", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *VerificationRepository) MarkVerified(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE verification_codes SET verified = TRUE WHERE id = $1`,
		id,
	)
	if err != nil {
		return wrapPgErr("mark verified", err)
	}
	return nil
}

func (r *VerificationRepository) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM verification_codes WHERE expires_at < $1`,
		before,
	)
	if err != nil {
		return 0, wrapPgErr("delete expired", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanVerification(row pgx.Row) (*domain.VerificationCode, error) {
	var v domain.VerificationCode
	err := row.Scan(&v.ID, &v.Seq, &v.Email, &v.Code, &v.Verified, &v.CreatedAt, &v.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("scan verification code: %w", err)
	}
	return &v, nil
}

func scanVerifications(rows pgx.Rows) ([]*domain.VerificationCode, error) {
	var out []*domain.VerificationCode
	for rows.Next() {
		v, err := scanVerification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("iterate verification codes", err)
	}
	return out, nil
}

// wrapPgErr turns a driver failure into a domain persistence error,
// preserving the SQLSTATE for the client-safe message.
func wrapPgErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return domain.PersistenceError(pgErr.Code, fmt.Errorf("%s: %w", op, err))
	}
	return domain.PersistenceError("", fmt.Errorf("%s: %w", op, err))
}
