package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/monench/internal/ench"
	"github.com/udisondev/monench/internal/model"
	"github.com/udisondev/monench/internal/rng"
	"github.com/udisondev/monench/internal/world"
)

var (
	goblin   = model.Template{Name: "goblin", HP: 20, HitDice: 5, Speed: ench.BaselineSpeed}
	eel      = model.Template{Name: "eel", HP: 1000, HitDice: 5, Speed: ench.BaselineSpeed, Flags: model.FlagAquatic | model.FlagSubmerges}
	bat      = model.Template{Name: "bat", HP: 10, HitDice: 2, Speed: 30, Flags: model.FlagFlier}
	skeleton = model.Template{Name: "skeleton", HP: 15, HitDice: 3, Speed: ench.BaselineSpeed, Flags: model.FlagNonliving | model.FlagUnblindable}
)

var self = ench.Attribution{Category: ench.CategorySelf}

type fixture struct {
	lvl *world.Level
	eng *Engine
	rec *Recorder
}

// newFixture builds a width x height level covered with terrain f.
func newFixture(t *testing.T, width, height int, f world.Feature, opts ...Option) *fixture {
	t.Helper()
	g := world.NewGrid(width, height)
	g.Fill(model.Loc(0, 0), model.Loc(width-1, height-1), f)
	lvl := world.NewLevel("test", g, world.NewIDGenerator())
	rec := &Recorder{}
	opts = append([]Option{WithNotifier(rec)}, opts...)
	return &fixture{
		lvl: lvl,
		eng: New(lvl, rng.New(42), opts...),
		rec: rec,
	}
}

func (f *fixture) spawn(t *testing.T, tmpl model.Template, loc model.Location) *model.Monster {
	t.Helper()
	m, err := f.lvl.Spawn(tmpl, loc)
	require.NoError(t, err)
	return m
}

func (f *fixture) add(t *testing.T, m *model.Monster, k ench.Kind, degree, duration int) {
	t.Helper()
	require.True(t, f.eng.Add(m, ench.New(k, degree, self, duration)), "add %s", k)
}

// duration returns the remaining duration of k, -1 if absent.
func duration(m *model.Monster, k ench.Kind) int {
	rec, ok := m.Enchantments().Get(k)
	if !ok {
		return -1
	}
	return rec.Duration
}

// tickCounter counts how often a kind gets its turn.
type tickCounter struct {
	Handler
	ticks int
}

func (p *tickCounter) OnActionTime(c *Context) {
	p.ticks++
	p.Handler.OnActionTime(c)
}

// timeoutCounter counts how often a countdown goes off.
type timeoutCounter struct {
	Handler
	fired int
}

func (p *timeoutCounter) OnTimeout(c *Context) {
	p.fired++
	p.Handler.(TimeoutHandler).OnTimeout(c)
}
