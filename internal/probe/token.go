package probe

import (
	"math/rand/v2"
	"strings"
	"time"
)

// TokenAlphabet is the character set of search keywords.
const TokenAlphabet = "QWERTYUIOPASDFGHJKLZXCVBNM1234567890"

const (
	minTokenLen = 3
	maxTokenLen = 10
)

// TokenSource produces random search keywords so responses are not cached.
// It is not safe for concurrent use.
type TokenSource struct {
	rnd *rand.Rand
}

func NewTokenSource(rnd *rand.Rand) *TokenSource {
	if rnd == nil {
		now := uint64(time.Now().UnixNano())
		rnd = rand.New(rand.NewPCG(now, now>>1|1))
	}
	return &TokenSource{rnd: rnd}
}

// Next returns a token of 3 to 10 characters drawn uniformly from TokenAlphabet.
func (s *TokenSource) Next() string {
	n := minTokenLen + s.rnd.IntN(maxTokenLen-minTokenLen+1)
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(TokenAlphabet[s.rnd.IntN(len(TokenAlphabet))])
	}
	return b.String()
}
