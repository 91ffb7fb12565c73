package core

// Point is a screen position in character cells.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned area of the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if p is inside this rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Local translates p into coordinates relative to the rectangle's corner.
func (r Rect) Local(p Point) Point {
	return Point{X: p.X - r.X, Y: p.Y - r.Y}
}

// CenterIn returns a w×h rectangle centered inside r.
// Offsets never go negative when the content is larger than r.
func (r Rect) CenterIn(w, h int) Rect {
	return Rect{
		X: r.X + max(0, (r.W-w)/2),
		Y: r.Y + max(0, (r.H-h)/2),
		W: w,
		H: h,
	}
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
