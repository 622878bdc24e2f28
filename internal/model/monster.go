package model

import (
	"github.com/udisondev/monench/internal/ench"
)

// Attitude is how a monster relates to the player's side.
type Attitude int

const (
	AttitudeHostile Attitude = iota
	AttitudeNeutral
	AttitudeFriendly
)

func (a Attitude) String() string {
	switch a {
	case AttitudeHostile:
		return "hostile"
	case AttitudeNeutral:
		return "neutral"
	case AttitudeFriendly:
		return "friendly"
	default:
		return "unknown"
	}
}

// Behaviour is the coarse AI state.
type Behaviour int

const (
	BehaviourSleep Behaviour = iota
	BehaviourWander
	BehaviourSeek
	BehaviourFlee
)

// Flags are innate monster properties consulted by enchantment handlers.
type Flags uint32

const (
	FlagNonliving Flags = 1 << iota
	FlagUnblindable
	FlagInnateConfused
	FlagInnateInvis
	FlagZombified
	FlagAquatic // habitat is water; flops about on land
	FlagSubmerges
	FlagChaotic
	FlagFlier
	FlagNoTeleport
	FlagStationary
)

// Resists holds resistance levels; negative means vulnerable.
type Resists struct {
	Fire     int
	Poison   int
	Drowning int
}

// Template describes a monster kind for spawning.
type Template struct {
	Name    string
	HP      int
	HitDice int
	Speed   int
	Flags   Flags
	Resists Resists
}

// Monster is a simulated actor that carries enchantments.
// Owned by its level and only mutated on its own turn.
type Monster struct {
	id   uint32
	name string

	hp      int
	maxHP   int
	hitDice int

	baseSpeed      int
	speed          int
	speedIncrement int

	attitude  Attitude
	behaviour Behaviour
	foe       uint32

	pos     Location
	flags   Flags
	resists Resists

	alive      bool
	deathCause string

	enchantments *ench.Table
}

// NewMonster creates a living monster from a template at pos.
func NewMonster(id uint32, t Template, pos Location) *Monster {
	speed := t.Speed
	if speed <= 0 {
		speed = ench.BaselineSpeed
	}
	hp := max(1, t.HP)
	return &Monster{
		id:           id,
		name:         t.Name,
		hp:           hp,
		maxHP:        hp,
		hitDice:      max(1, t.HitDice),
		baseSpeed:    speed,
		speed:        speed,
		behaviour:    BehaviourWander,
		pos:          pos,
		flags:        t.Flags,
		resists:      t.Resists,
		alive:        true,
		enchantments: ench.NewTable(),
	}
}

// ID returns the stable monster identifier.
func (m *Monster) ID() uint32 { return m.id }

// Name returns the display name.
func (m *Monster) Name() string { return m.name }

// Enchantments returns the monster's enchantment table.
func (m *Monster) Enchantments() *ench.Table { return m.enchantments }

// HasEnch is a shortcut for Enchantments().Has.
func (m *Monster) HasEnch(k ench.Kind) bool { return m.enchantments.Has(k) }

// HP returns current hit points.
func (m *Monster) HP() int { return m.hp }

// MaxHP returns maximum hit points.
func (m *Monster) MaxHP() int { return m.maxHP }

// SetHP sets current HP, clamped to [0, maxHP]. Zero kills.
func (m *Monster) SetHP(hp int) {
	m.hp = min(max(hp, 0), m.maxHP)
	if m.hp == 0 {
		m.Die("hp")
	}
}

// SetMaxHP sets maximum HP (at least 1) and trims current HP to fit.
func (m *Monster) SetMaxHP(maxHP int) {
	m.maxHP = max(1, maxHP)
	if m.hp > m.maxHP {
		m.hp = m.maxHP
	}
}

// Hurt deals dmg and returns true if the monster died.
func (m *Monster) Hurt(dmg int, cause string) bool {
	if !m.alive || dmg <= 0 {
		return !m.alive
	}
	m.hp -= dmg
	if m.hp <= 0 {
		m.hp = 0
		m.Die(cause)
	}
	return !m.alive
}

// HitDice returns the monster's level.
func (m *Monster) HitDice() int { return m.hitDice }

// SetHitDice changes the monster's level.
func (m *Monster) SetHitDice(hd int) { m.hitDice = hd }

// Speed returns the effective speed after enchantments.
func (m *Monster) Speed() int { return m.speed }

// BaseSpeed returns the speed before enchantments.
func (m *Monster) BaseSpeed() int { return m.baseSpeed }

// RecalcSpeed derives speed from base speed and the active enchantments.
func (m *Monster) RecalcSpeed() {
	speed := m.baseSpeed
	switch {
	case m.BerserkOrInsane():
		speed *= 2
	case m.HasEnch(ench.Haste):
		speed = speed * 3 / 2
	}
	if m.HasEnch(ench.Slow) {
		speed = speed * 2 / 3
	}
	if m.HasEnch(ench.Frozen) {
		speed = speed * 2 / 3
	}
	m.speed = max(1, speed)
}

// SpeedIncrement returns the accumulated action energy.
func (m *Monster) SpeedIncrement() int { return m.speedIncrement }

// AddSpeedIncrement adjusts the accumulated action energy.
func (m *Monster) AddSpeedIncrement(delta int) { m.speedIncrement += delta }

// Attitude returns the monster's attitude.
func (m *Monster) Attitude() Attitude { return m.attitude }

// SetAttitude changes the monster's attitude.
func (m *Monster) SetAttitude(a Attitude) { m.attitude = a }

// Friendly reports whether the monster fights on the player's side, either
// innately or because it is charmed or bribed.
func (m *Monster) Friendly() bool {
	return m.attitude == AttitudeFriendly ||
		m.HasEnch(ench.Charm) ||
		m.HasEnch(ench.FriendlyBribed)
}

// Behaviour returns the AI state.
func (m *Monster) Behaviour() Behaviour { return m.behaviour }

// SetBehaviour changes the AI state.
func (m *Monster) SetBehaviour(b Behaviour) { m.behaviour = b }

// Foe returns the ID of the monster's current foe, 0 for none.
func (m *Monster) Foe() uint32 { return m.foe }

// SetFoe sets the monster's foe.
func (m *Monster) SetFoe(id uint32) { m.foe = id }

// Pos returns the monster's cell.
func (m *Monster) Pos() Location { return m.pos }

// SetPos moves the monster without any occupancy checks. Levels call this.
func (m *Monster) SetPos(l Location) { m.pos = l }

// Is reports whether the monster has every flag in f.
func (m *Monster) Is(f Flags) bool { return m.flags&f == f }

// Resists returns the monster's resistances.
func (m *Monster) Resists() Resists { return m.resists }

// Alive reports whether the monster is still alive.
func (m *Monster) Alive() bool { return m.alive }

// DeathCause returns why the monster died, empty while alive.
func (m *Monster) DeathCause() string { return m.deathCause }

// Die kills the monster. Dying twice keeps the first cause.
func (m *Monster) Die(cause string) {
	if !m.alive {
		return
	}
	m.alive = false
	m.hp = 0
	m.deathCause = cause
}

// BerserkOrInsane reports a frenzy state.
func (m *Monster) BerserkOrInsane() bool {
	return m.HasEnch(ench.Berserk) || m.HasEnch(ench.Insane)
}

// Asleep reports whether the monster is sleeping.
func (m *Monster) Asleep() bool { return m.behaviour == BehaviourSleep }

// Paralysed reports paralysis.
func (m *Monster) Paralysed() bool { return m.HasEnch(ench.Paralysis) }

// Petrified reports full petrification.
func (m *Monster) Petrified() bool { return m.HasEnch(ench.Petrified) }

// Petrifying reports ongoing petrification.
func (m *Monster) Petrifying() bool { return m.HasEnch(ench.Petrifying) }

// CannotAct reports whether the monster is unable to take actions.
func (m *Monster) CannotAct() bool {
	return m.Paralysed() || m.Petrified() || m.Asleep()
}

// Confused reports confusion, innate or enchanted.
func (m *Monster) Confused() bool {
	return m.HasEnch(ench.Confusion) || m.Is(FlagInnateConfused)
}

// Silenced reports whether the monster cannot make sound.
func (m *Monster) Silenced() bool {
	return m.HasEnch(ench.Silence) || m.HasEnch(ench.Mute)
}

// Submerged reports whether the monster is under the surface.
func (m *Monster) Submerged() bool { return m.HasEnch(ench.Submerged) }

// Airborne reports whether the monster is flying.
func (m *Monster) Airborne() bool {
	return m.Is(FlagFlier) || m.HasEnch(ench.Flight)
}
