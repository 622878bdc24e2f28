package ench

import "fmt"

const (
	// InfiniteDuration marks an enchantment that never decays.
	InfiniteDuration = 30000

	// MaxDegreeDefault caps the degree of most kinds.
	MaxDegreeDefault = 4

	// MaxDegreeAbjuration caps Abj and FakeAbjuration, whose duration
	// ladder has six rungs.
	MaxDegreeAbjuration = 6
)

// Category says who gets credit (or blame) for an enchantment.
// Lower values take precedence when two applications merge.
type Category uint8

const (
	CategorySelf Category = iota
	CategoryAlly
	CategoryOther
)

func (c Category) String() string {
	switch c {
	case CategorySelf:
		return "self"
	case CategoryAlly:
		return "ally"
	case CategoryOther:
		return "other"
	default:
		return fmt.Sprintf("category(%d)", uint8(c))
	}
}

// Attribution identifies the source of an enchantment. Source is an opaque
// monster ID resolved through the level registry; 0 means anonymous.
// The referent may no longer exist.
type Attribution struct {
	Category Category
	Source   uint32
}

// merge keeps the attribution with the stronger category, preferring the
// newcomer on a tie.
func (a Attribution) merge(other Attribution) Attribution {
	if a.Category >= other.Category {
		return other
	}
	return a
}

// Stash holds stat deltas applied at onset so the offset can reverse them
// exactly, even after the inputs that produced them have changed.
type Stash struct {
	HP       int
	MaxHP    int
	Attitude int
}

// Record is one active enchantment instance.
type Record struct {
	Kind        Kind
	Degree      int
	Duration    int
	MaxDuration int
	Who         Attribution
	Stash       Stash
}

// New builds a record with the given kind, degree and duration.
// A zero duration asks the engine to compute one on install.
func New(kind Kind, degree int, who Attribution, duration int) Record {
	return Record{Kind: kind, Degree: degree, Duration: duration, Who: who}
}

// Infinite reports whether the record never decays.
func (r Record) Infinite() bool {
	return r.Duration >= InfiniteDuration
}

// CapDegree clamps Degree to the kind's ceiling.
func (r *Record) CapDegree() {
	if max, capped := r.Kind.MaxDegree(); capped && r.Degree > max {
		r.Degree = max
	}
}

// Merge folds other into r: degrees add (capped), durations add (clamped to
// InfiniteDuration) and attribution resolves self > ally > other.
// Records of different kinds are left untouched.
func (r *Record) Merge(other Record) {
	if r.Kind != other.Kind {
		return
	}
	r.Degree += other.Degree
	r.CapDegree()
	r.Duration = addDuration(r.Duration, other.Duration)
	if r.Duration > r.MaxDuration {
		r.MaxDuration = r.Duration
	}
	r.Who = r.Who.merge(other.Who)
}

func (r Record) String() string {
	return fmt.Sprintf("%s (%d:%d %s #%d)", r.Kind, r.Degree, r.Duration, r.Who.Category, r.Who.Source)
}

func addDuration(a, b int) int {
	sum := a + b
	if sum > InfiniteDuration || sum < a {
		return InfiniteDuration
	}
	return sum
}
