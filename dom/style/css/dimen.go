package css

import (
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/briq/dom/style"
	"github.com/npillmayer/briq/dom/styledtree"
	"github.com/npillmayer/tyse/core/dimen"
	"github.com/npillmayer/tyse/core/percent"
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	kindMask      uint32 = 0x000f

	dimenPercent uint32 = 0x0900
	relativeMask uint32 = 0xff00
)

// DimenT is an option type for CSS dimensions.
type DimenT struct {
	d     dimen.DU
	pcnt  percent.Percent
	pnum  int // raw percentage number, kept for resolving against a base
	flags uint32
}

/*
type DimenT
	= Auto
	| Inherit
	| Initial
	| JustDimen dimen
	| Percentage Percent
*/

func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

func Inherit() DimenT {
	return DimenT{flags: dimenInherit}
}

func Initial() DimenT {
	return DimenT{flags: dimenInitial}
}

// JustDimen creates a CSS dimension with a fixed value of x.
func JustDimen(x dimen.DU) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Percentage creates a CSS dimension with a %-relative value of n percent.
func Percentage(n int) DimenT {
	return DimenT{pcnt: percent.FromInt(n), pnum: n, flags: dimenPercent}
}

// IsAuto returns true if d is the keyword dimension `auto`.
func (d DimenT) IsAuto() bool {
	return d.flags&kindMask == dimenAuto
}

// IsFixed returns true if d is a fixed (absolute) dimension.
func (d DimenT) IsFixed() bool {
	return d.flags&kindMask == dimenAbsolute
}

// IsPercent returns true if d is a %-relative dimension.
func (d DimenT) IsPercent() bool {
	return d.flags&dimenPercent > 0
}

// IsNone returns true if d is unset.
func (d DimenT) IsNone() bool {
	return d.flags == dimenNone
}

// Resolve turns a dimension into a used device-unit value, resolving
// %-dimensions against a base length. Auto and unset dimensions resolve
// to 0; callers have to decide beforehand what auto means for them.
func (d DimenT) Resolve(base dimen.DU) dimen.DU {
	switch {
	case d.IsFixed():
		return d.d
	case d.IsPercent():
		return base * dimen.DU(d.pnum) / 100
	}
	return 0
}

// ---------------------------------------------------------------------------

func (d DimenT) Match() *Matcher {
	return &Matcher{dimen: d}
}

type Matcher struct {
	dimen DimenT
}

func (m *Matcher) IsKind(d DimenT) *Matcher {
	switch {
	case (m.dimen.flags & kindMask) == (d.flags & kindMask):
		return m
	case (m.dimen.flags&relativeMask > 0) && (d.flags&relativeMask > 0):
		if (m.dimen.flags&dimenPercent > 0) != (d.flags&dimenPercent > 0) {
			return nil
		}
		return m
	}
	return nil
}

func (m *Matcher) Just(du *dimen.DU) *Matcher {
	if m.dimen.flags&dimenAbsolute > 0 {
		if du != nil {
			*du = m.dimen.d
		}
		return m
	}
	return nil
}

func (m *Matcher) Percentage(p *percent.Percent) *Matcher {
	if m.dimen.flags&dimenPercent > 0 {
		if p != nil {
			*p = m.dimen.pcnt
		}
		return m
	}
	return nil
}

// --- Expression matching ---------------------------------------------------

type DimenPatterns[T any] struct {
	Auto    T
	Inherit T
	Initial T
	Just    T
	Percent T
	Default T
}

func DimenPattern[T any](d DimenT) *MatchExpr[T] {
	return &MatchExpr[T]{dimen: d}
}

type MatchExpr[T any] struct {
	dimen DimenT
}

func (m *MatchExpr[T]) OneOf(patterns DimenPatterns[T]) T {
	switch {
	case m.dimen.flags&dimenAuto > 0:
		return patterns.Auto
	case m.dimen.flags&dimenAbsolute > 0:
		return patterns.Just
	case m.dimen.flags&dimenPercent > 0:
		return patterns.Percent
	case m.dimen.flags&dimenInitial > 0:
		return patterns.Initial
	case m.dimen.flags&dimenInherit > 0:
		return patterns.Inherit
	}
	return patterns.Default
}

func (m *MatchExpr[T]) With(du *dimen.DU) *MatchExpr[T] {
	*du = m.dimen.d
	return m
}

func (m *MatchExpr[T]) Const(x T) T {
	return x
}

// --- Parsing ----------------------------------------------------------------

// Border-width keywords map to fixed device-unit widths.
var borderWidthKeywords = map[string]dimen.DU{
	"thin":   1,
	"medium": 3,
	"thick":  5,
}

// DimenOf parses a style property into a dimension. Lengths are expected
// in device units ("px" or unitless numbers); percentages are kept
// unresolved. Unknown keywords and malformed numbers yield an unset
// dimension.
func DimenOf(p style.Property) DimenT {
	v := strings.TrimSpace(strings.ToLower(string(p)))
	switch v {
	case "":
		return DimenT{}
	case "auto":
		return Auto()
	case "inherit":
		return Inherit()
	case "initial":
		return Initial()
	}
	if w, ok := borderWidthKeywords[v]; ok {
		return JustDimen(w)
	}
	if strings.HasSuffix(v, "%") {
		n, err := strconv.Atoi(strings.TrimSuffix(v, "%"))
		if err != nil {
			tracer().Debugf("css: illegal percentage '%s'", v)
			return DimenT{}
		}
		return Percentage(n)
	}
	v = strings.TrimSuffix(v, "px")
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		tracer().Debugf("css: illegal dimension '%s'", string(p))
		return DimenT{}
	}
	return JustDimen(dimen.DU(math.Round(f)))
}

// DimenOrZero resolves a dimension property of a styled node to a fixed
// device-unit value, with unset and auto counting as 0.
func DimenOrZero(sn *styledtree.StyNode, key string, base dimen.DU) dimen.DU {
	p, err := GetProperty(sn, key)
	if err != nil {
		return 0
	}
	return DimenOf(p).Resolve(base)
}

// UsedBorderWidth returns the used value of one of the border-…-width
// properties. A border with border-…-style of `none` (or unset) has a
// used width of 0, whatever the specified width says.
func UsedBorderWidth(sn *styledtree.StyNode, dir string, base dimen.DU) dimen.DU {
	styleKey := "border-" + dir + "-style"
	s, _ := GetProperty(sn, styleKey)
	switch strings.TrimSpace(strings.ToLower(s.String())) {
	case "", "none", "hidden":
		return 0
	}
	widthKey := "border-" + dir + "-width"
	p, err := GetProperty(sn, widthKey)
	if err != nil {
		return 0
	}
	w := DimenOf(p)
	if w.IsNone() {
		return borderWidthKeywords["medium"]
	}
	return w.Resolve(base)
}
