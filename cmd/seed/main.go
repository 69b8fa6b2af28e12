// seed inserts a handful of verification codes into the local dev
// database: pending, verified, and already-expired ones.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/verimail/verimail/internal/domain"
	"github.com/verimail/verimail/internal/infrastructure/postgres"
)

type codeSpec struct {
	email    string
	code     string
	verified bool
	age      time.Duration // how long ago it was created
}

var codes = []codeSpec{
	// Fresh pending codes — verifiable for the next ~10 minutes
	{"pending1@test.local", "AAAA11", false, 0},
	{"pending2@test.local", "BBBB22", false, 2 * time.Minute},

	// Already verified
	{"done@test.local", "CCCC33", true, 5 * time.Minute},

	// Expired — the sweep should pick these up
	{"stale1@test.local", "DDDD44", false, 30 * time.Minute},
	{"stale2@test.local", "EEEE55", false, 2 * time.Hour},
}

const codeTTL = 10 * time.Minute

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	repo := postgres.NewVerificationRepository(pool)

	for _, spec := range codes {
		if _, err := repo.DeleteByEmail(ctx, spec.email); err != nil {
			log.Fatalf("clear %s: %v", spec.email, err)
		}

		createdAt := time.Now().Add(-spec.age)
		rec := &domain.VerificationCode{
			Email:     spec.email,
			Code:      spec.code,
			Verified:  spec.verified,
			CreatedAt: createdAt,
			ExpiresAt: createdAt.Add(codeTTL),
		}
		created, err := repo.Insert(ctx, rec)
		if err != nil {
			log.Fatalf("insert %s: %v", spec.email, err)
		}
		fmt.Printf("seeded %s code=%s verified=%v expires=%s\n",
			created.Email, created.Code, created.Verified, created.ExpiresAt.Format(time.RFC3339))
	}

	fmt.Printf("done: %d records\n", len(codes))
}
