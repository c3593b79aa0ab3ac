package flatmenu

import "fmt"

// Point is a position in host or menu-local coordinates.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rect is an origin plus extent. The right and bottom edges are exclusive.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Location returns the top-left corner.
func (r Rect) Location() Point { return Point{X: r.X, Y: r.Y} }

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Offset returns r moved by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Inset grows r by the given insets on each side.
func (r Rect) Inset(in Insets) Rect {
	return Rect{
		X: r.X - in.Left,
		Y: r.Y - in.Top,
		W: r.W + in.Left + in.Right,
		H: r.H + in.Top + in.Bottom,
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("{X=%d,Y=%d,W=%d,H=%d}", r.X, r.Y, r.W, r.H)
}

// Insets describes padding on the four sides of a rectangle.
type Insets struct {
	Left, Top, Right, Bottom int
}
