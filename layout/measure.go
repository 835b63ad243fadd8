package layout

import (
	"github.com/npillmayer/briq/dom/styledtree"
	"github.com/npillmayer/tyse/core/dimen"
)

// TextMeasurer is the text measurement capability the layouter depends
// on. Real implementations wrap a font/shaping backend; layout itself
// never inspects glyphs.
type TextMeasurer interface {
	// MeasureText returns the width and height of a text fragment, styled
	// by the given node (which is consulted for font properties).
	MeasureText(text string, sn *styledtree.StyNode) (dimen.DU, dimen.DU)
}

// FixedMeasurer is a trivial TextMeasurer assuming a fixed-width font.
// It is good enough for tests and for hosts without a font backend.
type FixedMeasurer struct {
	CharWidth  dimen.DU
	LineHeight dimen.DU
}

// MeasureText measures a text fragment as n × CharWidth, one line high.
func (m FixedMeasurer) MeasureText(text string, sn *styledtree.StyNode) (dimen.DU, dimen.DU) {
	return dimen.DU(len([]rune(text))) * m.CharWidth, m.LineHeight
}

var _ TextMeasurer = FixedMeasurer{}
