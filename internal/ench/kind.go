package ench

import "fmt"

// Kind identifies an enchantment. Values are persisted, so new kinds must be
// appended before NumKinds only when their position keeps the pass order
// correct.
//
// Order matters: a pass walks kinds in ascending order, so super-effects
// (Berserk before Fatigue and Slow, Fatigue before Slow) time out before
// the effects they install or remove.
type Kind uint8

const (
	Berserk Kind = iota
	Haste
	Might
	Fatigue
	Slow
	Fear
	Confusion
	Invis
	Poison
	Summon
	Abj
	Corona
	Charm
	StickyFlame
	Teleport
	SleepWary
	Submerged
	ShortLived
	Paralysis
	Sick
	Held
	Petrifying
	Petrified
	LoweredMR
	SoulRipe
	SlowlyDying
	AquaticLand
	SporeProduction
	Swift
	Insane
	Silence
	Exploding
	Severed
	Antimagic
	Regeneration
	RaisedMR
	MirrorDamage
	FearInspiring
	PortalTimer
	PortalPacified
	Flight
	Liquefying
	FakeAbjuration
	Dazed
	Mute
	Blind
	Dumb
	Mad
	SilverCorona
	InnerFlame
	BreathWeapon
	Wretched
	WordOfRecall
	InjuryBond
	WaterHold
	Haunting
	Weak
	FireVuln
	PoisonVuln
	Agile
	Frozen
	BlackMark
	SapMagic
	NeutralBribed
	FriendlyBribed
	Corrosion
	Drained
	Resistance
	Hexed
	Idealised
	BoundSoul
	Infestation
	StillWinds
	RingOfThunder

	// NumKinds is the number of declared kinds. Not a valid Kind.
	NumKinds
)

var kindNames = [NumKinds]string{
	Berserk:         "berserk",
	Haste:           "haste",
	Might:           "might",
	Fatigue:         "fatigue",
	Slow:            "slow",
	Fear:            "fear",
	Confusion:       "confusion",
	Invis:           "invis",
	Poison:          "poison",
	Summon:          "summon",
	Abj:             "abj",
	Corona:          "corona",
	Charm:           "charm",
	StickyFlame:     "sticky_flame",
	Teleport:        "tp",
	SleepWary:       "sleep_wary",
	Submerged:       "submerged",
	ShortLived:      "short_lived",
	Paralysis:       "paralysis",
	Sick:            "sick",
	Held:            "held",
	Petrifying:      "petrifying",
	Petrified:       "petrified",
	LoweredMR:       "lowered_mr",
	SoulRipe:        "soul_ripe",
	SlowlyDying:     "slowly_dying",
	AquaticLand:     "aquatic_land",
	SporeProduction: "spore_production",
	Swift:           "swift",
	Insane:          "insane",
	Silence:         "silenced",
	Exploding:       "exploding",
	Severed:         "severed",
	Antimagic:       "antimagic",
	Regeneration:    "regen",
	RaisedMR:        "magic_res",
	MirrorDamage:    "mirror_dam",
	FearInspiring:   "fear_inspiring",
	PortalTimer:     "portal_timer",
	PortalPacified:  "portal_pacified",
	Flight:          "flight",
	Liquefying:      "liquefying",
	FakeAbjuration:  "fake_abjuration",
	Dazed:           "dazed",
	Mute:            "mute",
	Blind:           "blind",
	Dumb:            "dumb",
	Mad:             "mad",
	SilverCorona:    "silver_corona",
	InnerFlame:      "inner_flame",
	BreathWeapon:    "breath_timer",
	Wretched:        "wretched",
	WordOfRecall:    "word_of_recall",
	InjuryBond:      "injury_bond",
	WaterHold:       "drowning",
	Haunting:        "haunting",
	Weak:            "weak",
	FireVuln:        "fire_vuln",
	PoisonVuln:      "poison_vuln",
	Agile:           "agile",
	Frozen:          "frozen",
	BlackMark:       "black_mark",
	SapMagic:        "sap_magic",
	NeutralBribed:   "bribed",
	FriendlyBribed:  "permabribed",
	Corrosion:       "corrosion",
	Drained:         "drained",
	Resistance:      "resistant",
	Hexed:           "hexed",
	Idealised:       "idealised",
	BoundSoul:       "bound_soul",
	Infestation:     "infestation",
	StillWinds:      "still_winds",
	RingOfThunder:   "thunder_ringed",
}

// Valid reports whether k is a declared kind.
func (k Kind) Valid() bool {
	return k < NumKinds
}

// String returns the stable lowercase name of k.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind looks up a kind by its String name.
func ParseKind(name string) (Kind, bool) {
	for k := Kind(0); k < NumKinds; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return 0, false
}

// MaxDegree returns the degree ceiling of k and whether k is capped at all.
func (k Kind) MaxDegree() (int, bool) {
	switch k {
	case Drained:
		return 0, false
	case Abj, FakeAbjuration:
		return MaxDegreeAbjuration, true
	default:
		return MaxDegreeDefault, true
	}
}
