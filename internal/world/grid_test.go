package world

import (
	"testing"

	"github.com/udisondev/monench/internal/model"
)

func TestGrid_At(t *testing.T) {
	g := NewGrid(4, 3)
	g.Set(model.Loc(1, 1), FeatureDeepWater)

	tests := []struct {
		name string
		loc  model.Location
		want Feature
	}{
		{"default floor", model.Loc(0, 0), FeatureFloor},
		{"set cell", model.Loc(1, 1), FeatureDeepWater},
		{"last cell", model.Loc(3, 2), FeatureFloor},
		{"negative", model.Loc(-1, 0), FeatureWall},
		{"past width", model.Loc(4, 0), FeatureWall},
		{"past height", model.Loc(0, 3), FeatureWall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.At(tt.loc); got != tt.want {
				t.Errorf("At(%v) = %s, want %s", tt.loc, got, tt.want)
			}
		})
	}
}

func TestGrid_SetOutOfBounds(t *testing.T) {
	g := NewGrid(2, 2)
	g.Set(model.Loc(5, 5), FeatureLava)

	for y := range 2 {
		for x := range 2 {
			if f := g.At(model.Loc(x, y)); f != FeatureFloor {
				t.Errorf("At(%d,%d) = %s after out-of-bounds Set", x, y, f)
			}
		}
	}
}

func TestGrid_Fill(t *testing.T) {
	g := NewGrid(5, 5)
	// Corners in either order.
	g.Fill(model.Loc(3, 3), model.Loc(1, 1), FeatureShallowWater)

	count := 0
	for y := range 5 {
		for x := range 5 {
			if g.At(model.Loc(x, y)) == FeatureShallowWater {
				count++
			}
		}
	}
	if count != 9 {
		t.Errorf("filled %d cells, want 9", count)
	}
	if g.At(model.Loc(0, 0)) != FeatureFloor {
		t.Error("Fill leaked outside the rectangle")
	}
}

func TestGrid_Adjacent(t *testing.T) {
	g := NewGrid(3, 3)

	tests := []struct {
		name string
		loc  model.Location
		want int
	}{
		{"center", model.Loc(1, 1), 8},
		{"corner", model.Loc(0, 0), 3},
		{"edge", model.Loc(1, 0), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj := g.adjacent(tt.loc)
			if len(adj) != tt.want {
				t.Fatalf("adjacent(%v) = %d cells, want %d", tt.loc, len(adj), tt.want)
			}
			for _, n := range adj {
				if !n.Adjacent(tt.loc) {
					t.Errorf("%v is not adjacent to %v", n, tt.loc)
				}
			}
		})
	}
}

func TestFeature(t *testing.T) {
	tests := []struct {
		f      Feature
		name   string
		watery bool
		solid  bool
	}{
		{FeatureFloor, "floor", false, false},
		{FeatureShallowWater, "shallow_water", true, false},
		{FeatureDeepWater, "deep_water", true, false},
		{FeatureLava, "lava", false, false},
		{FeatureWall, "wall", false, true},
	}

	for _, tt := range tests {
		if tt.f.String() != tt.name {
			t.Errorf("String() = %q, want %q", tt.f.String(), tt.name)
		}
		if tt.f.Watery() != tt.watery {
			t.Errorf("%s.Watery() = %v", tt.name, tt.f.Watery())
		}
		if tt.f.Solid() != tt.solid {
			t.Errorf("%s.Solid() = %v", tt.name, tt.f.Solid())
		}
	}
}

func TestCloud_Harmless(t *testing.T) {
	if !CloudNone.Harmless() || !CloudMist.Harmless() {
		t.Error("none and mist should be harmless")
	}
	for _, c := range []Cloud{CloudFire, CloudPoison, CloudSteam, CloudStorm} {
		if c.Harmless() {
			t.Errorf("%s should be harmful", c)
		}
	}
}
