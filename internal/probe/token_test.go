package probe

import (
	"math/rand/v2"
	"strings"
	"testing"
)

func seeded() *TokenSource {
	return NewTokenSource(rand.New(rand.NewPCG(1, 2)))
}

func TestTokenSource_LengthAndAlphabet(t *testing.T) {
	src := seeded()
	for i := 0; i < 5000; i++ {
		tok := src.Next()
		if len(tok) < 3 || len(tok) > 10 {
			t.Fatalf("token %q has length %d", tok, len(tok))
		}
		for _, c := range tok {
			if !strings.ContainsRune(TokenAlphabet, c) {
				t.Fatalf("token %q contains %q outside alphabet", tok, c)
			}
		}
	}
}

func TestTokenSource_CoversAlphabetAndLengths(t *testing.T) {
	src := seeded()
	seen := map[rune]bool{}
	lengths := map[int]bool{}
	for i := 0; i < 5000; i++ {
		tok := src.Next()
		lengths[len(tok)] = true
		for _, c := range tok {
			seen[c] = true
		}
	}
	if len(seen) != len(TokenAlphabet) {
		t.Fatalf("saw %d of %d alphabet characters", len(seen), len(TokenAlphabet))
	}
	for n := 3; n <= 10; n++ {
		if !lengths[n] {
			t.Fatalf("length %d never produced", n)
		}
	}
}

func TestTokenSource_Deterministic(t *testing.T) {
	a, b := seeded(), seeded()
	for i := 0; i < 20; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("same seed diverged at %d: %q vs %q", i, x, y)
		}
	}
}

func TestTokenSource_NilRandUsesClock(t *testing.T) {
	if tok := NewTokenSource(nil).Next(); len(tok) < 3 {
		t.Fatalf("unexpected token %q", tok)
	}
}
