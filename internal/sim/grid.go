// Package sim is the movement and collision-resolution engine.
// It has no dependencies outside the standard library and never touches
// global randomness: every random draw goes through an injected Random.
package sim

import (
	"fmt"
	"math"
)

// DefaultGridSize is the side length of the reference map.
const DefaultGridSize = 20

// Position is a cell on the grid. X grows to the right, Y grows downward.
type Position struct {
	X, Y int
}

// P is a convenience constructor for Position.
func P(x, y int) Position {
	return Position{X: x, Y: y}
}

// String returns "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns the cell reached by applying one step of the intent.
func (p Position) Add(in Intent) Position {
	return Position{X: p.X + in.DX, Y: p.Y + in.DY}
}

// Distance returns the Euclidean distance to other.
func (p Position) Distance(other Position) float64 {
	return math.Hypot(float64(p.X-other.X), float64(p.Y-other.Y))
}

// WithinRange reports whether other lies inside the box of half-size r
// centred on p.
func (p Position) WithinRange(other Position, r int) bool {
	return abs(p.X-other.X) <= r && abs(p.Y-other.Y) <= r
}

// Adjacent reports whether other is one of the eight neighbouring cells.
func (p Position) Adjacent(other Position) bool {
	return p != other && p.WithinRange(other, 1)
}

// Grid holds the map bounds.
type Grid struct {
	Width  int
	Height int
}

// NewGrid creates a grid with the given dimensions.
func NewGrid(width, height int) Grid {
	return Grid{Width: width, Height: height}
}

// DefaultGrid returns the 20x20 reference grid.
func DefaultGrid() Grid {
	return NewGrid(DefaultGridSize, DefaultGridSize)
}

// Contains reports whether p is inside the grid.
func (g Grid) Contains(p Position) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Cells returns the number of cells on the grid.
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Neighbors returns the in-bounds cells adjacent to p in row-major order.
func (g Grid) Neighbors(p Position) []Position {
	out := make([]Position, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := Position{X: p.X + dx, Y: p.Y + dy}
			if g.Contains(n) {
				out = append(out, n)
			}
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
