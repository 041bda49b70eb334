package testutil

import "sync"

// FixedTokenGenerator returns predetermined job tokens in order.
//
// This enables deterministic test execution and golden trace comparison.
// Tests provide a known sequence of tokens and verify exact output.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedTokenGenerator struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedTokenGenerator creates a generator that returns tokens in order.
//
// Example:
//
//	gen := NewFixedTokenGenerator("job-1", "job-2")
//	gen.Generate() // "job-1"
//	gen.Generate() // "job-2"
//	gen.Generate() // panic: all tokens exhausted
func NewFixedTokenGenerator(tokens ...string) *FixedTokenGenerator {
	return &FixedTokenGenerator{tokens: tokens}
}

// Generate returns the next predetermined token.
//
// Panics once all tokens have been consumed. This is a fail-fast approach
// to catch test misconfiguration (test rendered more jobs than expected).
func (g *FixedTokenGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.tokens) {
		panic("FixedTokenGenerator: all tokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}

// ConstantTokenGenerator returns the same job token every time.
//
// Unlike FixedTokenGenerator it never exhausts, which suits range renders
// where every frame may share one token.
type ConstantTokenGenerator string

// Generate returns the fixed token.
func (g ConstantTokenGenerator) Generate() string {
	return string(g)
}
