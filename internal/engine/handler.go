package engine

import (
	"fmt"

	"github.com/udisondev/monench/internal/ench"
	"github.com/udisondev/monench/internal/model"
	"github.com/udisondev/monench/internal/rng"
	"github.com/udisondev/monench/internal/world"
)

// Handler implements the behaviour of one enchantment kind.
//
// Admit runs before every installation or merge and must not have side
// effects; returning false refuses the enchantment. OnStart runs once after installation,
// OnActionTime once per monster turn, OnExit once after removal (unless
// the remover suppresses it).
type Handler interface {
	Admit(c *Context) bool
	OnStart(c *Context)
	OnActionTime(c *Context)
	OnExit(c *Context)
	Reconcile() Strategy
}

// ExitPreparer is implemented by handlers that can veto a removal. A vetoed
// removal is retried at the start of the monster's next pass.
type ExitPreparer interface {
	PrepareExit(c *Context) bool
}

// TimeoutHandler is implemented by countdown kinds whose expiry triggers a
// terminal action.
type TimeoutHandler interface {
	OnTimeout(c *Context)
}

// Dropper overrides how a Drop kind is discarded during a time skip.
type Dropper interface {
	Drop(c *Context)
}

// LevelBinder is implemented by kinds that own state on the level, such as
// a still-winds source. Restored records Bind to the level in place of an
// onset; replaced records Unbind in place of an offset.
type LevelBinder interface {
	Bind(c *Context)
	Unbind(c *Context)
}

// Holder is implemented by kinds that are sometimes exempt from decay,
// e.g. innate confusion.
type Holder interface {
	Holds(c *Context) bool
}

// Strategy says how a kind is treated when a dormant monster catches up on
// elapsed time.
type Strategy uint8

const (
	// StrategyDecay applies the elapsed decay in closed form, degree
	// shrinking included.
	StrategyDecay Strategy = iota
	// StrategyDecayDuration is StrategyDecay without degree shrinking.
	StrategyDecayDuration
	// StrategyTerminal fires the timeout action once if the countdown
	// would have run out.
	StrategyTerminal
	// StrategyDrop removes the kind outright.
	StrategyDrop
	// StrategyKeep leaves the kind untouched.
	StrategyKeep
)

func (s Strategy) String() string {
	switch s {
	case StrategyDecay:
		return "decay"
	case StrategyDecayDuration:
		return "decay_duration"
	case StrategyTerminal:
		return "terminal"
	case StrategyDrop:
		return "drop"
	case StrategyKeep:
		return "keep"
	default:
		return fmt.Sprintf("strategy(%d)", uint8(s))
	}
}

// handlers maps every kind to its behaviour. Filled by package-level
// register calls in the effect_*.go files, which run before any init.
var handlers [ench.NumKinds]Handler

// register binds h to each of kinds. Registering a kind twice is a bug.
func register(h Handler, kinds ...ench.Kind) struct{} {
	for _, k := range kinds {
		if !k.Valid() {
			panic(fmt.Sprintf("engine: registering invalid kind %d", uint8(k)))
		}
		if handlers[k] != nil {
			panic(fmt.Sprintf("engine: kind %s registered twice", k))
		}
		handlers[k] = h
	}
	return struct{}{}
}

// missingHandlers returns the kinds without a handler.
func missingHandlers() []ench.Kind {
	var missing []ench.Kind
	for k := ench.Kind(0); k < ench.NumKinds; k++ {
		if handlers[k] == nil {
			missing = append(missing, k)
		}
	}
	return missing
}

func init() {
	if missing := missingHandlers(); len(missing) > 0 {
		panic(fmt.Sprintf("engine: no handler for kinds %v", missing))
	}
}

// Context is what a handler works with: the monster, a copy of the record
// as it was when the handler was invoked, and the engine to act through.
type Context struct {
	Mon    *model.Monster
	Record ench.Record
	Quiet  bool

	e *Engine
}

// Kind returns the kind being handled.
func (c *Context) Kind() ench.Kind { return c.Record.Kind }

// Level returns the monster's level.
func (c *Context) Level() *world.Level { return c.e.level }

// Rand returns the engine's random stream.
func (c *Context) Rand() *rng.Stream { return c.e.rs }

// Engine returns the engine running the handler.
func (c *Context) Engine() *Engine { return c.e }

// Current returns the live record for the handled kind.
func (c *Context) Current() (ench.Record, bool) {
	return c.Mon.Enchantments().Get(c.Record.Kind)
}

// Decay runs one turn of decay on the handled kind. Returns true if the
// record was removed.
func (c *Context) Decay(shrinkDegree bool) bool {
	return c.e.Decay(c.Mon, c.Record.Kind, shrinkDegree)
}

// Remove removes kind k from the monster, running its offset.
func (c *Context) Remove(k ench.Kind, quiet bool) bool {
	return c.e.Remove(c.Mon, k, quiet, true)
}

// Add installs or merges rec on the monster.
func (c *Context) Add(rec ench.Record) bool {
	return c.e.Add(c.Mon, rec)
}

// SetStash records onset deltas on the live record.
func (c *Context) SetStash(st ench.Stash) {
	rec, ok := c.Current()
	if !ok {
		return
	}
	rec.Stash = st
	c.Mon.Enchantments().Update(rec)
	c.Record.Stash = st
}

// Source resolves the attribution to a live monster.
func (c *Context) Source() (*model.Monster, bool) {
	return c.e.level.Resolve(c.Record.Who.Source, c.Record.Who.Category)
}

// Hurt damages the monster and reports whether it died.
func (c *Context) Hurt(dmg int, cause string) bool {
	if dmg <= 0 {
		return !c.Mon.Alive()
	}
	died := c.Mon.Hurt(dmg, cause)
	c.e.log.Debug("enchantment damage",
		"monster", c.Mon.ID(),
		"kind", c.Record.Kind.String(),
		"damage", dmg,
		"hp", c.Mon.HP(),
		"died", died)
	return died
}

// Notify sends template unless the context is quiet.
func (c *Context) Notify(template string, sev Severity) {
	if c.Quiet {
		return
	}
	c.e.notifier.Notify(c.Mon, template, sev)
}

// base is the default behaviour: always admitted, no onset or offset,
// decays with degree shrinking every turn.
type base struct{}

func (base) Admit(*Context) bool     { return true }
func (base) OnStart(*Context)        {}
func (base) OnActionTime(c *Context) { c.Decay(true) }
func (base) OnExit(*Context)         {}
func (base) Reconcile() Strategy     { return StrategyDecay }
