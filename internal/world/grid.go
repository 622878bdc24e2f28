package world

import "github.com/udisondev/monench/internal/model"

// Feature is the terrain of one cell.
type Feature uint8

const (
	FeatureFloor Feature = iota
	FeatureShallowWater
	FeatureDeepWater
	FeatureLava
	FeatureWall
)

func (f Feature) String() string {
	switch f {
	case FeatureFloor:
		return "floor"
	case FeatureShallowWater:
		return "shallow_water"
	case FeatureDeepWater:
		return "deep_water"
	case FeatureLava:
		return "lava"
	case FeatureWall:
		return "wall"
	default:
		return "unknown"
	}
}

// Watery reports whether the cell holds water of any depth.
func (f Feature) Watery() bool {
	return f == FeatureShallowWater || f == FeatureDeepWater
}

// Solid reports whether nothing can stand in the cell.
func (f Feature) Solid() bool {
	return f == FeatureWall
}

// Grid is a rectangular terrain map. Out-of-bounds cells read as walls.
type Grid struct {
	width  int
	height int
	cells  []Feature
}

// NewGrid creates a width x height grid of floor.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Feature, width*height),
	}
}

// Width returns the grid width.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether loc is inside the grid.
func (g *Grid) InBounds(loc model.Location) bool {
	return loc.X >= 0 && loc.X < g.width && loc.Y >= 0 && loc.Y < g.height
}

// At returns the feature at loc.
func (g *Grid) At(loc model.Location) Feature {
	if !g.InBounds(loc) {
		return FeatureWall
	}
	return g.cells[loc.Y*g.width+loc.X]
}

// Set changes the feature at loc. Out-of-bounds writes are ignored.
func (g *Grid) Set(loc model.Location, f Feature) {
	if !g.InBounds(loc) {
		return
	}
	g.cells[loc.Y*g.width+loc.X] = f
}

// Fill sets every cell in the inclusive rectangle [from, to] to f.
func (g *Grid) Fill(from, to model.Location, f Feature) {
	for y := min(from.Y, to.Y); y <= max(from.Y, to.Y); y++ {
		for x := min(from.X, to.X); x <= max(from.X, to.X); x++ {
			g.Set(model.Loc(x, y), f)
		}
	}
}

// adjacent returns the in-bounds neighbours of loc in a fixed order.
func (g *Grid) adjacent(loc model.Location) []model.Location {
	out := make([]model.Location, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := loc.Add(dx, dy)
			if g.InBounds(n) {
				out = append(out, n)
			}
		}
	}
	return out
}
