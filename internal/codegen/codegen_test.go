package codegen_test

import (
	"strings"
	"testing"

	"github.com/verimail/verimail/internal/codegen"
)

func TestGenerate_LengthAndCharset(t *testing.T) {
	g := codegen.New()

	for i := 0; i < 100; i++ {
		code, err := g.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != codegen.CodeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), codegen.CodeLength)
		}
		for _, c := range code {
			if !strings.ContainsRune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", c) {
				t.Fatalf("code %q contains invalid character %q", code, c)
			}
		}
	}
}

func TestGenerate_NotConstant(t *testing.T) {
	g := codegen.New()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := g.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[code] = true
	}
	// 50 draws from a 36^6 space colliding down to one value would mean
	// the randomness source is broken.
	if len(seen) < 2 {
		t.Fatalf("expected distinct codes, got %d unique out of 50", len(seen))
	}
}
