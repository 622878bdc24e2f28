// Package rng provides the seeded random stream used by duration formulas
// and enchantment handlers. All helpers draw from one generator so a run is
// reproducible from its seed.
package rng

import (
	"math/rand/v2"
)

// Stream is a deterministic random source.
// Not safe for concurrent use: each level owns its own stream.
type Stream struct {
	r *rand.Rand
}

// New creates a stream seeded with seed.
func New(seed uint64) *Stream {
	return &Stream{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Random2 returns a value in [0, max). Returns 0 when max <= 1.
func (s *Stream) Random2(max int) int {
	if max <= 1 {
		return 0
	}
	return s.r.IntN(max)
}

// RandomRange returns a value in [low, high].
func (s *Stream) RandomRange(low, high int) int {
	if high < low {
		low, high = high, low
	}
	return low + s.Random2(high-low+1)
}

// Random2Avg averages rolls draws: the first from [0, max), the rest from
// [0, max]. The result stays in [0, max) but clusters around the middle.
func (s *Stream) Random2Avg(max, rolls int) int {
	if rolls < 1 {
		rolls = 1
	}
	sum := s.Random2(max)
	for i := 0; i < rolls-1; i++ {
		sum += s.Random2(max + 1)
	}
	return sum / rolls
}

// DivRandRound divides num by den, rounding up with probability equal to
// the remainder fraction.
func (s *Stream) DivRandRound(num, den int) int {
	if den == 0 {
		return 0
	}
	rem := num % den
	if rem != 0 {
		q := num / den
		if s.Random2(den) < abs(rem) {
			if num < 0 {
				return q - 1
			}
			return q + 1
		}
		return q
	}
	return num / den
}

// RollDice sums num rolls of a size-sided die.
func (s *Stream) RollDice(num, size int) int {
	if size <= 0 {
		return 0
	}
	total := 0
	for i := 0; i < num; i++ {
		total += 1 + s.Random2(size)
	}
	return total
}

// OneChanceIn returns true with probability 1/n.
func (s *Stream) OneChanceIn(n int) bool {
	return s.Random2(n) == 0
}

// CoinFlip returns true half the time.
func (s *Stream) CoinFlip() bool {
	return s.r.IntN(2) == 0
}

// XChanceInY returns true with probability x/y.
func (s *Stream) XChanceInY(x, y int) bool {
	if x <= 0 {
		return false
	}
	if x >= y {
		return true
	}
	return s.Random2(y) < x
}

// Fuzz perturbs val by up to lowPct percent downwards and highPct percent
// upwards, averaging two rolls. With an asymmetric window the mean shifts
// accordingly: Fuzz(v, 60, 40) averages 90% of v.
func (s *Stream) Fuzz(val, lowPct, highPct int) int {
	lfuzz := lowPct * val / 100
	hfuzz := highPct * val / 100
	return val + s.Random2Avg(lfuzz+hfuzz+1, 2) - lfuzz
}

// Shuffle permutes n elements through swap.
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
