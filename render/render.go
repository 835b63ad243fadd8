/*
Package render turns a laid out box tree into a display list.

A display list is a flat, paint-ordered sequence of primitive commands.
This package emits solid rectangles only (backgrounds and borders); an
external paint backend rasterizes them and draws text runs on top.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package render

import (
	"image/color"

	"github.com/npillmayer/briq/dom/style/css"
	"github.com/npillmayer/briq/layout"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'briq.render'.
func tracer() tracing.Trace {
	return tracing.Select("briq.render")
}

// SolidRect is the display list's only primitive: a rectangle filled
// with a solid color.
type SolidRect struct {
	Rect  layout.Rect
	Color color.Color
}

// DisplayList is a sequence of paint commands in back-to-front order.
type DisplayList []SolidRect

// BuildDisplayList walks a laid out box tree in paint order and collects
// background and border rectangles. Boxes without visible background or
// borders contribute nothing.
func BuildDisplayList(root *layout.LayoutBox) DisplayList {
	var list DisplayList
	paintBox(&list, root)
	tracer().Debugf("display list has %d rects", len(list))
	return list
}

func paintBox(list *DisplayList, box *layout.LayoutBox) {
	paintBackground(list, box)
	paintBorders(list, box)
	for _, ch := range box.Children(true) {
		paintBox(list, layout.BoxNode(ch))
	}
}

func paintBackground(list *DisplayList, box *layout.LayoutBox) {
	c := colorProperty(box, "background-color")
	if c == nil {
		return
	}
	*list = append(*list, SolidRect{Rect: box.Dimensions.BorderBox(), Color: c})
}

// paintBorders emits one rectangle per border edge with non-zero used
// width and a visible color.
func paintBorders(list *DisplayList, box *layout.LayoutBox) {
	d := box.Dimensions
	bb := d.BorderBox()
	edges := []struct {
		dir  string
		rect layout.Rect
	}{
		{"top", layout.Rect{X: bb.X, Y: bb.Y, W: bb.W, H: d.Border.Top}},
		{"bottom", layout.Rect{X: bb.X, Y: bb.Y + bb.H - d.Border.Bottom, W: bb.W, H: d.Border.Bottom}},
		{"left", layout.Rect{X: bb.X, Y: bb.Y, W: d.Border.Left, H: bb.H}},
		{"right", layout.Rect{X: bb.X + bb.W - d.Border.Right, Y: bb.Y, W: d.Border.Right, H: bb.H}},
	}
	for _, edge := range edges {
		if edge.rect.W <= 0 || edge.rect.H <= 0 {
			continue
		}
		c := colorProperty(box, "border-"+edge.dir+"-color")
		if c == nil {
			c = colorProperty(box, "color") // border color defaults to text color
		}
		if c == nil {
			continue
		}
		*list = append(*list, SolidRect{Rect: edge.rect, Color: c})
	}
}

func colorProperty(box *layout.LayoutBox, key string) color.Color {
	sn := box.Styled
	if sn == nil || sn.IsText() {
		return nil // anonymous boxes are invisible
	}
	p, err := css.GetProperty(sn, key)
	if err != nil {
		return nil
	}
	return p.Color()
}
