// Package core provides fundamental types and utilities for the game platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "fmt"

// Location is an immutable pair of tile coordinates.
// Row grows rightward across the playfield; a smaller Col is higher on screen.
type Location struct {
	row int
	col int
}

// NewLocation creates a location at the given row and column.
func NewLocation(row, col int) Location {
	return Location{row: row, col: col}
}

// Row returns the horizontal tile index.
func (l Location) Row() int {
	return l.row
}

// Col returns the vertical tile index.
func (l Location) Col() int {
	return l.col
}

// Add returns the component-wise sum of two locations.
func (l Location) Add(other Location) Location {
	return Location{row: l.row + other.row, col: l.col + other.col}
}

// Sub returns the component-wise difference of two locations.
func (l Location) Sub(other Location) Location {
	return l.Add(other.Neg())
}

// Neg returns the location with both components negated.
func (l Location) Neg() Location {
	return Location{row: -l.row, col: -l.col}
}

// WithRow returns a copy with the row replaced.
func (l Location) WithRow(row int) Location {
	l.row = row
	return l
}

// WithCol returns a copy with the column replaced.
func (l Location) WithCol(col int) Location {
	l.col = col
	return l
}

// String formats the location as {row=R, col=C}.
func (l Location) String() string {
	return fmt.Sprintf("{row=%d, col=%d}", l.row, l.col)
}

// Rect represents an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}
