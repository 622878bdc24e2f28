package ench

import "github.com/udisondev/monench/internal/rng"

const (
	// BaselineDelay is the time one action takes at baseline speed.
	BaselineDelay = 10

	// BaselineSpeed is the speed of an ordinary monster.
	BaselineSpeed = 10

	// freshestCorpse is the age, in turns, of a newly made corpse. Used by
	// the SlowlyDying timer.
	freshestCorpse = 210

	minRawDuration = 15
	minTurns       = 2
)

// Subject is what the duration model needs to know about the monster
// receiving an enchantment.
type Subject interface {
	Speed() int
	HitDice() int
}

// SpeedToDuration converts a speed into the time units one action of that
// speed consumes. Speeds are clamped to [10, 100]; non-positive speeds
// count as baseline.
func SpeedToDuration(speed int, rs *rng.Stream) int {
	switch {
	case speed < 1:
		speed = BaselineSpeed
	case speed > 100:
		speed = 100
	}
	return rs.DivRandRound(100, speed)
}

// modSpeed scales val inversely with speed relative to the baseline.
// Never returns less than 1.
func modSpeed(val, speed int) int {
	if speed == 0 {
		speed = BaselineDelay
	}
	modded := val * BaselineDelay / speed
	if modded == 0 {
		return 1
	}
	return modded
}

// moddedSpeed is modSpeed keyed to hit dice, so tougher monsters shake off
// hostile effects sooner.
func moddedSpeed(s Subject, hdplus int) int {
	return modSpeed(s.HitDice()+hdplus, s.Speed())
}

// Duration computes how long a fresh enchantment of kind lasts on s, in
// time units. degree 0 counts as 1. Kinds whose duration must be supplied
// by the caller return 0.
func Duration(kind Kind, degree int, s Subject, rs *rng.Stream) int {
	deg := degree
	if deg == 0 {
		deg = 1
	}
	speed := s.Speed()

	cturn := 0
	switch kind {
	case Swift, Haste, Might, Invis, FearInspiring, Agile, BlackMark,
		Resistance, Idealised, BoundSoul, RingOfThunder:
		cturn = 1000 / modSpeed(25, speed)
	case Liquefying, Silence, Regeneration, RaisedMR, MirrorDamage,
		SapMagic, StillWinds:
		cturn = 300 / modSpeed(25, speed)
	case Slow, Corrosion:
		cturn = 250 / (1 + moddedSpeed(s, 10))
	case Fear:
		cturn = 150 / (1 + moddedSpeed(s, 5))
	case Paralysis:
		cturn = max(90/moddedSpeed(s, 5), 3)
	case Petrified:
		cturn = max(8, 150/(1+moddedSpeed(s, 5)))
	case Dazed, Petrifying:
		cturn = 50 / modSpeed(10, speed)
	case Confusion:
		cturn = max(100/moddedSpeed(s, 5), 3)
	case Held:
		cturn = 120 / modSpeed(25, speed)
	case Poison:
		cturn = 1000 * deg / modSpeed(125, speed)
	case StickyFlame:
		cturn = 1000 * deg / modSpeed(200, speed)
	case Corona, SilverCorona:
		if deg > 1 {
			cturn = 1000 * (deg - 1) / modSpeed(200, speed)
		}
		cturn += 1000 / modSpeed(100, speed)
	case ShortLived:
		cturn = 1200 / modSpeed(200, speed)
	case SlowlyDying:
		return (2*freshestCorpse + rs.Random2(10)) * SpeedToDuration(speed, rs)
	case SporeProduction:
		return rs.RandomRange(475, 525) * 10
	case Exploding:
		return rs.RandomRange(3, 7) * 10
	case PortalPacified, BreathWeapon:
		return 0
	case PortalTimer:
		cturn = 30 * 10 / modSpeed(10, speed)
	case Abj, FakeAbjuration:
		cturn = abjurationTurns(deg, speed)
	case Charm, Hexed:
		cturn = 500 / moddedSpeed(s, 10)
	case Teleport:
		cturn = 1000 * deg / modSpeed(1000, speed)
	case SleepWary:
		cturn = 1000 / modSpeed(50, speed)
	case InnerFlame:
		return rs.RandomRange(25, 35) * 10
	case Berserk:
		return (16 + rs.Random2Avg(13, 2)) * 10
	case Wretched:
		cturn = (20 + rs.RollDice(3, 10)) * 10 / modSpeed(10, speed)
	case Frozen:
		cturn = 3 * BaselineDelay
	}

	cturn = max(minTurns, cturn)

	raw := cturn * SpeedToDuration(speed, rs)
	// The fuzz window is asymmetric (-60%/+40%): results average 90% of raw.
	return max(minRawDuration, rs.Fuzz(raw, 60, 40))
}

// abjurationTurns is the summon ladder: degrees 1-4 add a fixed step each,
// degrees 5 and 6 add progressively larger steps.
//
//	deg 1: 10   deg 2: 20   deg 3: 30
//	deg 4: 40   deg 5: 90   deg 6: 190   (turns at baseline speed)
func abjurationTurns(deg, speed int) int {
	cturn := 0
	if deg >= 6 {
		cturn = 1000 / modSpeed(10, speed)
	}
	if deg >= 5 {
		cturn += 1000 / modSpeed(20, speed)
	}
	cturn += 1000 * min(4, deg) / modSpeed(100, speed)
	return cturn
}
