package engine

import (
	"github.com/udisondev/monench/internal/ench"
	"github.com/udisondev/monench/internal/world"
)

// areaEffect projects a field (silence, liquefied ground) around the
// monster. Cached areas are invalidated whenever the field changes.
type areaEffect struct {
	base
	expiry string
}

func (areaEffect) OnStart(c *Context) {
	c.Level().InvalidateAreas()
}

func (areaEffect) OnActionTime(c *Context) {
	c.Decay(true)
	c.Level().InvalidateAreas()
}

func (e areaEffect) OnExit(c *Context) {
	c.Level().InvalidateAreas()
	if e.expiry != "" {
		c.Notify(e.expiry, SeverityPlain)
	}
}

// stillWindsEffect calms the air of the whole level while it lasts.
type stillWindsEffect struct{ base }

func (stillWindsEffect) OnStart(c *Context) {
	c.Level().StartStillWinds()
	c.Notify("The air around {name} becomes still.", SeverityPlain)
}

func (stillWindsEffect) OnExit(c *Context) {
	c.Level().EndStillWinds()
	c.Notify("The air starts moving again.", SeverityPlain)
}

func (stillWindsEffect) Bind(c *Context)   { c.Level().StartStillWinds() }
func (stillWindsEffect) Unbind(c *Context) { c.Level().EndStillWinds() }

// ringOfThunderEffect surrounds the monster with storm clouds.
type ringOfThunderEffect struct{ base }

func (ringOfThunderEffect) OnStart(c *Context) {
	c.Level().PlaceCloudRing(c.Mon.Pos(), world.CloudStorm)
	c.Notify("A violent storm begins to rage around {name}.", SeverityWarn)
}

var (
	_ = register(areaEffect{expiry: "{name} becomes audible again."}, ench.Silence)
	_ = register(areaEffect{}, ench.Liquefying)
	_ = register(stillWindsEffect{}, ench.StillWinds)
	_ = register(ringOfThunderEffect{}, ench.RingOfThunder)
)
