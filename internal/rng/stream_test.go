package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStream_Deterministic(t *testing.T) {
	a, b := New(42), New(42)
	for range 1000 {
		assert.Equal(t, a.Random2(1000), b.Random2(1000))
	}

	c := New(43)
	same := 0
	a = New(42)
	for range 100 {
		if a.Random2(1<<30) == c.Random2(1<<30) {
			same++
		}
	}
	assert.Less(t, same, 5, "different seeds should diverge")
}

func TestStream_Ranges(t *testing.T) {
	s := New(1)
	for range 5000 {
		v := s.Random2(7)
		assert.True(t, v >= 0 && v < 7)

		v = s.RandomRange(3, 7)
		assert.True(t, v >= 3 && v <= 7)

		v = s.RandomRange(7, 3)
		assert.True(t, v >= 3 && v <= 7)

		v = s.Random2Avg(13, 2)
		assert.True(t, v >= 0 && v < 13)

		v = s.RollDice(2, 4)
		assert.True(t, v >= 2 && v <= 8)

		v = s.Fuzz(150, 60, 40)
		assert.True(t, v >= 60 && v <= 210, "fuzz %d", v)
	}
	assert.Zero(t, s.Random2(1))
	assert.Zero(t, s.Random2(0))
	assert.Zero(t, s.RollDice(3, 0))
}

func TestStream_DivRandRound(t *testing.T) {
	s := New(2)
	assert.Equal(t, 5, s.DivRandRound(50, 10))
	assert.Zero(t, s.DivRandRound(5, 0))

	sum := 0
	for range 4000 {
		v := s.DivRandRound(25, 10)
		assert.True(t, v == 2 || v == 3)
		sum += v
	}
	assert.InDelta(t, 2.5, float64(sum)/4000, 0.1)

	for range 100 {
		v := s.DivRandRound(-25, 10)
		assert.True(t, v == -2 || v == -3)
	}
}

func TestStream_XChanceInY(t *testing.T) {
	s := New(3)
	assert.False(t, s.XChanceInY(0, 5))
	assert.True(t, s.XChanceInY(5, 5))

	hits := 0
	for range 10000 {
		if s.XChanceInY(1, 4) {
			hits++
		}
	}
	assert.InDelta(t, 2500, hits, 250)
}
