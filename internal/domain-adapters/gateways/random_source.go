package gateways

import (
	"math/rand/v2"
	"strings"
)

// RandomSource draws decimal digits from a pseudo-random generator
type RandomSource struct {
	intN func(n int) int
}

// NewRandomSource creates a source backed by the automatically seeded global generator
func NewRandomSource() *RandomSource {
	return &RandomSource{intN: rand.IntN}
}

// NewSeededRandomSource creates a deterministic source
func NewSeededRandomSource(seed uint64) *RandomSource {
	//nolint:gosec // G404: identifiers only need to be varied, not secret
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return &RandomSource{intN: r.IntN}
}

// Digits returns n independently drawn decimal digits
func (s *RandomSource) Digits(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + s.intN(10)))
	}
	return b.String()
}
