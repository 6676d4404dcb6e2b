package resolver

import (
	"math/rand"
	"time"
)

// Pacer suspends the just-completed resolution for a base delay plus random
// jitter, breaking up the fixed-interval request pattern that bot detection
// keys on. The delay is per resolution, not a global gate.
type Pacer struct {
	base   time.Duration
	jitter time.Duration
}

// NewPacer creates a Pacer. Zero base and jitter disable pacing.
func NewPacer(base, jitter time.Duration) *Pacer {
	return &Pacer{base: base, jitter: jitter}
}

// Wait blocks for the base delay plus a random duration in [0, jitter).
func (p *Pacer) Wait() {
	d := p.base
	if p.jitter > 0 {
		d += time.Duration(rand.Int63n(int64(p.jitter)))
	}
	if d > 0 {
		time.Sleep(d)
	}
}
