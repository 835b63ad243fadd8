package layout

import (
	"fmt"

	"github.com/npillmayer/tyse/core/dimen"
)

// Rect is an axis-aligned rectangle in device units, located by its
// top-left corner in viewport coordinates.
type Rect struct {
	X, Y dimen.DU
	W, H dimen.DU
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d) %d×%d", r.X, r.Y, r.W, r.H)
}

// Contains reports wether a point lies within r. Points on the edges
// count as inside.
func (r Rect) Contains(x, y dimen.DU) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// ExpandedBy returns r grown by edge sizes on all four sides.
func (r Rect) ExpandedBy(e EdgeSizes) Rect {
	return Rect{
		X: r.X - e.Left,
		Y: r.Y - e.Top,
		W: r.W + e.Left + e.Right,
		H: r.H + e.Top + e.Bottom,
	}
}

// EdgeSizes holds widths for the four sides of one box model layer.
type EdgeSizes struct {
	Top, Right, Bottom, Left dimen.DU
}

// Dimensions describes the box model geometry of a laid out box: the
// content rectangle plus the edge widths of the three surrounding layers.
type Dimensions struct {
	Content Rect
	Padding EdgeSizes
	Border  EdgeSizes
	Margin  EdgeSizes
}

// PaddingBox returns the rectangle covering content plus padding.
func (d Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedBy(d.Padding)
}

// BorderBox returns the rectangle covering content, padding and border.
// This is the rectangle hit-testing operates on.
func (d Dimensions) BorderBox() Rect {
	return d.PaddingBox().ExpandedBy(d.Border)
}

// MarginBox returns the rectangle covering the complete box model extent.
func (d Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}
