package layout

import (
	"fmt"

	"github.com/npillmayer/briq/dom/style"
	"github.com/npillmayer/briq/dom/style/css"
	"github.com/npillmayer/briq/dom/styledtree"
	"github.com/npillmayer/tyse/core/dimen"
)

// A Layouter assigns box model geometry to a box tree. It is not safe
// for concurrent use.
type Layouter struct {
	measure TextMeasurer
	diags   []string
}

// NewLayouter creates a layouter with a text measurement capability.
// Passing nil falls back to a fixed-width measurer.
func NewLayouter(measure TextMeasurer) *Layouter {
	if measure == nil {
		measure = FixedMeasurer{CharWidth: 8, LineHeight: 16}
	}
	return &Layouter{measure: measure}
}

// Diagnostics returns the non-fatal problems of the most recent layout
// run, like clamped negative content sizes.
func (l *Layouter) Diagnostics() []string {
	return l.diags
}

func (l *Layouter) diag(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	tracer().Infof("layout: %s", msg)
	l.diags = append(l.diags, msg)
}

// Layout computes the geometry of every box in the tree, with the
// viewport as the initial containing block. Blocks stack top to bottom,
// inline content runs left to right without line breaking. Layout never
// fails; impossible constraints are clamped and reported via
// Diagnostics.
func (l *Layouter) Layout(root *LayoutBox, viewport Rect) {
	l.diags = l.diags[:0]
	// the initial containing block starts out with zero height, heights
	// accumulate bottom-up
	icb := Dimensions{Content: Rect{X: viewport.X, Y: viewport.Y, W: viewport.W}}
	l.layoutBlock(root, &icb)
}

// layoutBlock lays out a box in block flow: width first (top-down
// constraint), then position, then children, then the height correction
// for explicit heights.
func (l *Layouter) layoutBlock(box *LayoutBox, cb *Dimensions) {
	l.calculateBlockWidth(box, cb)
	l.calculateBlockPosition(box, cb)
	box.lineAdvance = 0
	l.layoutChildren(box)
	l.applyExplicitHeight(box)
}

// propertyOf reads a computed style property, respecting inheritance.
func propertyOf(sn *styledtree.StyNode, key string) style.Property {
	p, err := css.GetProperty(sn, key)
	if err != nil {
		return style.NullStyle
	}
	return p
}

// calculateBlockWidth computes the used content width and the horizontal
// edges of a block box. auto widths fill the containing block; auto
// margins absorb remaining space. Over-constrained boxes push the excess
// into the right margin.
func (l *Layouter) calculateBlockWidth(box *LayoutBox, cb *Dimensions) {
	d := &box.Dimensions
	avail := cb.Content.W
	if box.Styled == nil || box.IsText() {
		d.Content.W = avail // anonymous boxes have no edges of their own
		return
	}
	sn := box.Styled
	width := css.DimenOf(propertyOf(sn, "width"))
	marginL := css.DimenOf(propertyOf(sn, "margin-left"))
	marginR := css.DimenOf(propertyOf(sn, "margin-right"))
	borderL := css.UsedBorderWidth(sn, "left", avail)
	borderR := css.UsedBorderWidth(sn, "right", avail)
	paddingL := css.DimenOrZero(sn, "padding-left", avail)
	paddingR := css.DimenOrZero(sn, "padding-right", avail)

	// auto values count as 0 in the constraint sum
	total := width.Resolve(avail) + marginL.Resolve(avail) + marginR.Resolve(avail) +
		borderL + borderR + paddingL + paddingR
	if !width.IsAuto() && total > avail {
		// over-constrained, auto margins are treated as 0
		if marginL.IsAuto() {
			marginL = css.JustDimen(0)
		}
		if marginR.IsAuto() {
			marginR = css.JustDimen(0)
		}
	}
	underflow := avail - total
	w := width.Resolve(avail)
	ml := marginL.Resolve(avail)
	mr := marginR.Resolve(avail)
	switch {
	case width.IsAuto():
		if marginL.IsAuto() {
			ml = 0
		}
		if marginR.IsAuto() {
			mr = 0
		}
		if underflow >= 0 {
			w = underflow
		} else {
			w = 0
			mr += underflow
			l.diag("negative content width of <%s> clamped to 0", sn.TagName())
		}
	case marginL.IsAuto() && marginR.IsAuto():
		ml = underflow / 2
		mr = underflow - underflow/2
	case marginL.IsAuto():
		ml = underflow
	case marginR.IsAuto():
		mr = underflow
	default:
		mr += underflow // push overflow into the right margin
	}
	if w < 0 {
		l.diag("negative content width of <%s> clamped to 0", sn.TagName())
		w = 0
	}
	d.Content.W = w
	d.Margin.Left, d.Margin.Right = ml, mr
	d.Border.Left, d.Border.Right = borderL, borderR
	d.Padding.Left, d.Padding.Right = paddingL, paddingR
}

// calculateBlockPosition resolves the vertical edges and places the box
// immediately below its preceding in-flow sibling, i.e. at the current
// content height of the containing block.
func (l *Layouter) calculateBlockPosition(box *LayoutBox, cb *Dimensions) {
	d := &box.Dimensions
	if box.Styled != nil && !box.IsText() {
		sn := box.Styled
		avail := cb.Content.W
		d.Margin.Top = css.DimenOrZero(sn, "margin-top", avail)
		d.Margin.Bottom = css.DimenOrZero(sn, "margin-bottom", avail)
		d.Border.Top = css.UsedBorderWidth(sn, "top", avail)
		d.Border.Bottom = css.UsedBorderWidth(sn, "bottom", avail)
		d.Padding.Top = css.DimenOrZero(sn, "padding-top", avail)
		d.Padding.Bottom = css.DimenOrZero(sn, "padding-bottom", avail)
	}
	d.Content.X = cb.Content.X + d.Margin.Left + d.Border.Left + d.Padding.Left
	d.Content.Y = cb.Content.Y + cb.Content.H + d.Margin.Top + d.Border.Top + d.Padding.Top
	d.Content.H = 0
}

// layoutChildren lays out the children of a box. After anonymous box
// insertion a container holds either block-level children, which stack
// vertically, or inline-level children, which form a single line.
func (l *Layouter) layoutChildren(box *LayoutBox) {
	children := box.Children(true)
	if len(children) == 0 {
		return
	}
	if BoxNode(children[0]).isBlockLevel() {
		for _, ch := range children {
			child := BoxNode(ch)
			l.layoutBlock(child, &box.Dimensions)
			box.Dimensions.Content.H += child.Dimensions.MarginBox().H
			if child.lineAdvance > box.lineAdvance {
				box.lineAdvance = child.lineAdvance
			}
		}
	} else {
		advance, lineHeight := l.layoutInlineRun(box)
		box.Dimensions.Content.H += lineHeight
		box.lineAdvance = advance
	}
	l.shrinkToFit(box)
}

// shrinkToFit narrows an auto-width inline-block to the widest inline
// run it contains. Anonymous wrappers inside follow suit.
func (l *Layouter) shrinkToFit(box *LayoutBox) {
	if box.Kind != InlineBlockBox || box.Styled == nil || box.lineAdvance == 0 {
		return
	}
	if !css.DimenOf(propertyOf(box.Styled, "width")).IsAuto() {
		return
	}
	box.Dimensions.Content.W = box.lineAdvance
	for _, ch := range box.Children(true) {
		child := BoxNode(ch)
		if child.Kind == AnonymousBox && child.lineAdvance > 0 {
			child.Dimensions.Content.W = child.lineAdvance
		}
	}
}

// layoutInlineRun places the inline-level children of a container left
// to right on a single line, starting at the container's content origin.
// There is no line breaking: a long line overflows to the right.
// Returns the total advance width and the height of the line.
func (l *Layouter) layoutInlineRun(container *LayoutBox) (dimen.DU, dimen.DU) {
	within := container.Dimensions.Content
	var cursor, lineHeight dimen.DU
	for _, ch := range container.Children(true) {
		w, h := l.layoutInline(BoxNode(ch), within, cursor)
		cursor += w
		if h > lineHeight {
			lineHeight = h
		}
	}
	return cursor, lineHeight
}

// layoutInline lays out one inline-level box at the given cursor offset
// within a line. Returns the advance width (margin box) and the height
// the box contributes to the line.
func (l *Layouter) layoutInline(box *LayoutBox, within Rect, cursor dimen.DU) (dimen.DU, dimen.DU) {
	d := &box.Dimensions
	if box.IsText() {
		w, h := l.measure.MeasureText(box.Text(), box.Styled)
		*d = Dimensions{Content: Rect{X: within.X + cursor, Y: within.Y, W: w, H: h}}
		return w, h
	}
	if box.Kind == InlineBlockBox || box.Kind == AnonymousBox {
		// a block-ish box participating in a line: lay it out in block flow
		// against the remainder of the line
		cb := Dimensions{Content: Rect{X: within.X + cursor, Y: within.Y, W: within.W - cursor}}
		l.layoutBlock(box, &cb)
		mb := d.MarginBox()
		return mb.W, mb.H
	}
	// inline element: edges apply, content is the run of its children
	sn := box.Styled
	avail := within.W
	d.Margin.Left = css.DimenOrZero(sn, "margin-left", avail)
	d.Margin.Right = css.DimenOrZero(sn, "margin-right", avail)
	d.Margin.Top = css.DimenOrZero(sn, "margin-top", avail)
	d.Margin.Bottom = css.DimenOrZero(sn, "margin-bottom", avail)
	d.Border.Left = css.UsedBorderWidth(sn, "left", avail)
	d.Border.Right = css.UsedBorderWidth(sn, "right", avail)
	d.Border.Top = css.UsedBorderWidth(sn, "top", avail)
	d.Border.Bottom = css.UsedBorderWidth(sn, "bottom", avail)
	d.Padding.Left = css.DimenOrZero(sn, "padding-left", avail)
	d.Padding.Right = css.DimenOrZero(sn, "padding-right", avail)
	d.Padding.Top = css.DimenOrZero(sn, "padding-top", avail)
	d.Padding.Bottom = css.DimenOrZero(sn, "padding-bottom", avail)
	d.Content.X = within.X + cursor + d.Margin.Left + d.Border.Left + d.Padding.Left
	d.Content.Y = within.Y + d.Margin.Top + d.Border.Top + d.Padding.Top
	d.Content.W = within.W - cursor // preliminary, children may consult it
	advance, lineHeight := l.layoutInlineRun(box)
	d.Content.W = advance
	d.Content.H = lineHeight
	mb := d.MarginBox()
	return mb.W, mb.H
}

// applyExplicitHeight overrides the accumulated auto height with an
// explicitly set height property. Negative heights are clamped.
func (l *Layouter) applyExplicitHeight(box *LayoutBox) {
	if box.Styled == nil || box.IsText() {
		return
	}
	h := css.DimenOf(propertyOf(box.Styled, "height"))
	if !h.IsFixed() {
		return // percentage heights degrade to auto, containing heights are dynamic
	}
	used := h.Resolve(0)
	if used < 0 {
		l.diag("negative content height of <%s> clamped to 0", box.Styled.TagName())
		used = 0
	}
	box.Dimensions.Content.H = used
}
