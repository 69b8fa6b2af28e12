// Package codegen produces the short verification codes sent over email.
package codegen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// alphabet is fixed by the wire contract: codes must match [A-Z0-9]{6}.
const (
	alphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	CodeLength = 6
)

// Generator produces fixed-length random codes. It makes no uniqueness
// guarantee: verification matches on the (email, code) pair, and each
// issuance replaces the email's prior record, so collisions across
// emails are harmless.
type Generator struct{}

func New() *Generator {
	return &Generator{}
}

// Generate returns a 6-character uppercase alphanumeric code drawn from
// crypto/rand. 36^6 combinations against a 10-requests-per-5-minutes
// budget keeps a blind guess within the 10-minute window negligible.
func (g *Generator) Generate() (string, error) {
	max := big.NewInt(int64(len(alphabet)))

	buf := make([]byte, CodeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}
