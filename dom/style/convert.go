package style

import (
	"image/color"
	"strconv"
	"strings"
)

// A small named-color palette, enough to render facsimile widgets. The
// palette follows the CSS/X11 naming.
var namedColors = map[string]color.RGBA{
	"black":   {0x00, 0x00, 0x00, 0xff},
	"silver":  {0xc0, 0xc0, 0xc0, 0xff},
	"gray":    {0x80, 0x80, 0x80, 0xff},
	"grey":    {0x80, 0x80, 0x80, 0xff},
	"white":   {0xff, 0xff, 0xff, 0xff},
	"red":     {0xff, 0x00, 0x00, 0xff},
	"green":   {0x00, 0x80, 0x00, 0xff},
	"lime":    {0x00, 0xff, 0x00, 0xff},
	"blue":    {0x00, 0x00, 0xff, 0xff},
	"yellow":  {0xff, 0xff, 0x00, 0xff},
	"orange":  {0xff, 0xa5, 0x00, 0xff},
	"purple":  {0x80, 0x00, 0x80, 0xff},
	"teal":    {0x00, 0x80, 0x80, 0xff},
	"navy":    {0x00, 0x00, 0x80, 0xff},
	"maroon":  {0x80, 0x00, 0x00, 0xff},
	"olive":   {0x80, 0x80, 0x00, 0xff},
	"aqua":    {0x00, 0xff, 0xff, 0xff},
	"fuchsia": {0xff, 0x00, 0xff, 0xff},
}

// Color converts a style property to a color. Properties which do not
// denote a visible color ("default", "transparent", the null-style) return
// nil; rendering code treats nil as "do not paint".
//
// Supported forms: named colors, #rgb, #rrggbb and #rrggbbaa hex notation.
func (p Property) Color() color.Color {
	s := strings.ToLower(strings.TrimSpace(string(p)))
	if s == "" || s == "default" || s == "transparent" || s == "none" {
		return nil
	}
	if c, ok := namedColors[s]; ok {
		return c
	}
	if strings.HasPrefix(s, "#") {
		if c, ok := hexColor(s[1:]); ok {
			return c
		}
	}
	tracer().Debugf("styling: cannot interpret '%s' as a color", s)
	return nil
}

func hexColor(hexdigits string) (color.RGBA, bool) {
	var c color.RGBA
	c.A = 0xff
	switch len(hexdigits) {
	case 3: // #rgb
		r, okr := hexNibble(hexdigits[0])
		g, okg := hexNibble(hexdigits[1])
		b, okb := hexNibble(hexdigits[2])
		if !okr || !okg || !okb {
			return c, false
		}
		c.R, c.G, c.B = r*17, g*17, b*17
		return c, true
	case 8: // #rrggbbaa
		a, ok := hexByte(hexdigits[6:8])
		if !ok {
			return c, false
		}
		c.A = a
		fallthrough
	case 6: // #rrggbb
		r, okr := hexByte(hexdigits[0:2])
		g, okg := hexByte(hexdigits[2:4])
		b, okb := hexByte(hexdigits[4:6])
		if !okr || !okg || !okb {
			return c, false
		}
		c.R, c.G, c.B = r, g, b
		return c, true
	}
	return c, false
}

func hexNibble(d byte) (uint8, bool) {
	n, err := strconv.ParseUint(string(d), 16, 8)
	if err != nil {
		return 0, false
	}
	return uint8(n), true
}

func hexByte(dd string) (uint8, bool) {
	n, err := strconv.ParseUint(dd, 16, 8)
	if err != nil {
		return 0, false
	}
	return uint8(n), true
}

// ColorString returns a CSS-compatible string for a color, using hex
// notation. A nil color maps to "transparent".
func ColorString(c color.Color) string {
	if c == nil {
		return "transparent"
	}
	r, g, b, a := c.RGBA()
	if a != 0xffff {
		return "#" + hex2(r) + hex2(g) + hex2(b) + hex2(a)
	}
	return "#" + hex2(r) + hex2(g) + hex2(b)
}

func hex2(v uint32) string {
	s := strconv.FormatUint(uint64(v>>8), 16)
	if len(s) < 2 {
		s = "0" + s
	}
	return s
}
