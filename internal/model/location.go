package model

// Location представляет клетку на уровне.
// Value type, передаётся по значению (immutable).
type Location struct {
	X int
	Y int
}

// Loc создаёт Location с указанными координатами.
func Loc(x, y int) Location {
	return Location{X: x, Y: y}
}

// Add возвращает новый Location, сдвинутый на (dx, dy).
func (l Location) Add(dx, dy int) Location {
	return Location{X: l.X + dx, Y: l.Y + dy}
}

// Distance returns the Chebyshev (king-move) distance to other.
func (l Location) Distance(other Location) int {
	return max(abs(l.X-other.X), abs(l.Y-other.Y))
}

// Adjacent reports whether other is one king-move away.
func (l Location) Adjacent(other Location) bool {
	return l != other && l.Distance(other) == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
