// Package engine applies, ticks and expires monster enchantments.
//
// Every kind has a Handler (see the effect_*.go files). The Engine installs
// and merges records, runs onsets and offsets, drives one pass per monster
// turn and catches dormant monsters up on elapsed time.
package engine

import (
	"log/slog"

	"github.com/udisondev/monench/internal/ench"
	"github.com/udisondev/monench/internal/model"
	"github.com/udisondev/monench/internal/rng"
	"github.com/udisondev/monench/internal/world"
)

// Engine runs enchantment behaviour for the monsters of one level.
// Not safe for concurrent use.
type Engine struct {
	level    *world.Level
	rs       *rng.Stream
	notifier Notifier
	log      *slog.Logger
	handlers [ench.NumKinds]Handler
}

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier sets where player-facing messages go.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithLogger sets the logger for debug traces.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithHandler replaces the handler for kind k on this engine only.
func WithHandler(k ench.Kind, h Handler) Option {
	return func(e *Engine) {
		if k.Valid() && h != nil {
			e.handlers[k] = h
		}
	}
}

// New creates an engine for level drawing randomness from rs.
func New(level *world.Level, rs *rng.Stream, opts ...Option) *Engine {
	e := &Engine{
		level:    level,
		rs:       rs,
		notifier: discardNotifier{},
		log:      slog.Default(),
		handlers: handlers,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Level returns the engine's level.
func (e *Engine) Level() *world.Level { return e.level }

// Rand returns the engine's random stream.
func (e *Engine) Rand() *rng.Stream { return e.rs }

// Handler returns the handler for k.
func (e *Engine) Handler(k ench.Kind) Handler {
	if !k.Valid() {
		return nil
	}
	return e.handlers[k]
}

func (e *Engine) context(m *model.Monster, rec ench.Record, quiet bool) *Context {
	return &Context{Mon: m, Record: rec, Quiet: quiet, e: e}
}

// Add applies rec to m. The kind must be admitted first, whether or not m
// already carries it. A new kind is installed, given a computed duration
// when rec.Duration is 0, and started. A kind already present is merged.
// Returns false if the enchantment was refused.
func (e *Engine) Add(m *model.Monster, rec ench.Record) bool {
	if !rec.Kind.Valid() || !m.Alive() {
		return false
	}
	t := m.Enchantments()

	h := e.handlers[rec.Kind]
	if !h.Admit(e.context(m, rec, false)) {
		e.log.Debug("enchantment refused",
			"monster", m.ID(),
			"kind", rec.Kind.String())
		return false
	}

	if cur, ok := t.Get(rec.Kind); ok {
		if rec.Duration == 0 {
			rec.Duration = ench.Duration(rec.Kind, rec.Degree, m, e.rs)
		}
		cur.Merge(rec)
		t.Update(cur)
		e.log.Debug("enchantment merged",
			"monster", m.ID(),
			"kind", rec.Kind.String(),
			"degree", cur.Degree,
			"duration", cur.Duration)
		return true
	}

	rec.CapDegree()
	if rec.Duration == 0 {
		rec.Duration = ench.Duration(rec.Kind, rec.Degree, m, e.rs)
	}
	if rec.Duration > ench.InfiniteDuration {
		rec.Duration = ench.InfiniteDuration
	}
	rec.MaxDuration = max(rec.MaxDuration, rec.Duration)
	t.Install(rec)

	e.log.Debug("enchantment added",
		"monster", m.ID(),
		"kind", rec.Kind.String(),
		"degree", rec.Degree,
		"duration", rec.Duration)

	h.OnStart(e.context(m, rec, false))
	return true
}

// Remove takes kind k off m. Returns false if k is absent or its handler
// vetoed the removal; a vetoed kind is retried on the next pass. The offset
// runs unless runOffset is false.
func (e *Engine) Remove(m *model.Monster, k ench.Kind, quiet, runOffset bool) bool {
	t := m.Enchantments()
	rec, ok := t.Get(k)
	if !ok {
		return false
	}

	h := e.handlers[k]
	c := e.context(m, rec, quiet)
	if p, ok := h.(ExitPreparer); ok && !p.PrepareExit(c) {
		t.MarkPending(k)
		e.log.Debug("enchantment removal deferred",
			"monster", m.ID(),
			"kind", k.String())
		return false
	}

	t.Erase(k)
	e.log.Debug("enchantment removed",
		"monster", m.ID(),
		"kind", k.String(),
		"quiet", quiet)

	if runOffset {
		h.OnExit(c)
	}
	return true
}

// Restore replaces m's table with recs as saved. Onsets and offsets do not
// run; kinds that own level state give it back for the old records and
// take it again for the new ones.
func (e *Engine) Restore(m *model.Monster, recs []ench.Record) {
	t := m.Enchantments()
	for _, rec := range t.Records() {
		if b, ok := e.handlers[rec.Kind].(LevelBinder); ok {
			b.Unbind(e.context(m, rec, true))
		}
	}
	t.Clear()
	for _, rec := range recs {
		t.Install(rec)
	}
	for _, rec := range t.Records() {
		if b, ok := e.handlers[rec.Kind].(LevelBinder); ok {
			b.Bind(e.context(m, rec, true))
		}
	}
	m.RecalcSpeed()
}

// Has reports whether m carries kind k.
func (e *Engine) Has(m *model.Monster, k ench.Kind) bool {
	return m.Enchantments().Has(k)
}

// HasInRange reports whether m carries any kind in [lo, hi].
func (e *Engine) HasInRange(m *model.Monster, lo, hi ench.Kind) bool {
	return m.Enchantments().HasInRange(lo, hi)
}

// Decay runs one monster turn of decay on kind k. Infinite records never
// decay. With shrinkDegree the degree drops once the remaining duration
// falls below a degree-dependent fraction of MaxDuration, so higher degrees
// wear off proportionally faster; degree 1 only ends with its duration.
// Returns true if the record was removed.
func (e *Engine) Decay(m *model.Monster, k ench.Kind, shrinkDegree bool) bool {
	rec, ok := m.Enchantments().Get(k)
	if !ok || rec.Infinite() {
		return false
	}

	// Held is struggled out of faster by faster monsters.
	speed := ench.BaselineSpeed
	if k == ench.Held {
		speed = m.Speed()
	}
	if e.LoseDuration(m, k, ench.SpeedToDuration(speed, e.rs)) {
		return true
	}
	if !shrinkDegree {
		return false
	}

	rec, ok = m.Enchantments().Get(k)
	if !ok {
		return false
	}
	if shrinks(rec) {
		rec.Degree--
		rec.MaxDuration = rec.Duration
		m.Enchantments().Update(rec)
	}
	return false
}

// shrinks reports whether rec has crossed its degree's decay threshold:
// duration < maxDuration*(f-1)/f with f the degree's triangular number.
func shrinks(rec ench.Record) bool {
	if rec.Degree <= 1 {
		return false
	}
	f := rec.Degree * (rec.Degree + 1) / 2
	return rec.Duration < rec.MaxDuration*(f-1)/f
}

// LoseDuration shortens kind k by dur, removing it when nothing is left.
// Infinite records are unaffected. Returns true if the record was removed.
func (e *Engine) LoseDuration(m *model.Monster, k ench.Kind, dur int) bool {
	if dur == 0 {
		return false
	}
	rec, ok := m.Enchantments().Get(k)
	if !ok || rec.Infinite() {
		return false
	}
	if rec.Duration <= dur {
		return e.Remove(m, k, false, true)
	}
	// A negative dur extends the record.
	rec.Duration = min(rec.Duration-dur, ench.InfiniteDuration-1)
	m.Enchantments().Update(rec)
	return false
}

// LoseLevels lowers the degree of kind k by levels, removing it when the
// degree runs out. Infinite records are only affected when infinite is
// set. Returns true if the record was removed.
func (e *Engine) LoseLevels(m *model.Monster, k ench.Kind, levels int, infinite bool) bool {
	if levels == 0 {
		return false
	}
	rec, ok := m.Enchantments().Get(k)
	if !ok || (rec.Infinite() && !infinite) {
		return false
	}
	if rec.Degree <= levels {
		return e.Remove(m, k, false, true)
	}
	rec.Degree -= levels
	m.Enchantments().Update(rec)
	return false
}
