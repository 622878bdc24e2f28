package engine

import "github.com/udisondev/monench/internal/ench"

// speedEffect changes how fast the monster acts. Speed is always derived
// from the base speed and the active kinds, so ending one speed effect
// never disturbs another.
type speedEffect struct {
	base
	onset  string
	expiry string
}

func (e speedEffect) OnStart(c *Context) {
	c.Mon.RecalcSpeed()
	if e.onset != "" {
		c.Notify(e.onset, SeverityPlain)
	}
}

func (e speedEffect) OnExit(c *Context) {
	c.Mon.RecalcSpeed()
	if e.expiry != "" {
		c.Notify(e.expiry, SeverityPlain)
	}
}

var (
	_ = register(speedEffect{
		onset:  "{name} seems to speed up.",
		expiry: "{name} is no longer moving quickly.",
	}, ench.Haste)
	_ = register(speedEffect{
		onset:  "{name} seems to slow down.",
		expiry: "{name} is no longer moving slowly.",
	}, ench.Slow)
	_ = register(speedEffect{
		onset:  "{name} is encased in ice.",
		expiry: "{name} is no longer encased in ice.",
	}, ench.Frozen)
)
