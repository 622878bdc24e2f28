package sim

import (
	"github.com/udisondev/monench/internal/model"
	"github.com/udisondev/monench/internal/rng"
	"github.com/udisondev/monench/internal/world"
)

// GenerateGrid builds a walled cave with a lake and a few lava pools.
// The layout depends only on the stream.
func GenerateGrid(width, height int, rs *rng.Stream) *world.Grid {
	g := world.NewGrid(width, height)
	g.Fill(model.Loc(0, 0), model.Loc(width-1, height-1), world.FeatureWall)
	g.Fill(model.Loc(1, 1), model.Loc(width-2, height-2), world.FeatureFloor)

	// Озеро: мелководье по краю, глубина в центре.
	lw, lh := max(1, width/4), max(1, height/4)
	lx := 1 + rs.Random2(max(1, width-2-lw))
	ly := 1 + rs.Random2(max(1, height-2-lh))
	g.Fill(model.Loc(lx, ly), model.Loc(lx+lw-1, ly+lh-1), world.FeatureShallowWater)
	if lw > 2 && lh > 2 {
		g.Fill(model.Loc(lx+1, ly+1), model.Loc(lx+lw-2, ly+lh-2), world.FeatureDeepWater)
	}

	pools := 1 + rs.Random2(3)
	for range pools {
		loc := model.Loc(1+rs.Random2(width-2), 1+rs.Random2(height-2))
		if g.At(loc) == world.FeatureFloor {
			g.Set(loc, world.FeatureLava)
		}
	}
	return g
}
