package css_test

import (
	"testing"

	"github.com/npillmayer/briq/dom/style"
	"github.com/npillmayer/briq/dom/style/css"
	"github.com/npillmayer/tyse/core/dimen"
	"github.com/npillmayer/tyse/core/percent"
)

func TestDimenBasic(t *testing.T) {
	ten := css.JustDimen(dimen.DU(10))
	var du dimen.DU
	switch m := ten.Match(); m {
	case m.Just(&du):
		t.Logf("du = %v", du)
	default:
		t.Errorf("expected Just(10) to be a fixed value, isn't: %#v", ten)
	}

	auto := css.Auto()
	switch m := auto.Match(); m {
	case m.IsKind(css.Auto()):
		t.Logf("dimen is auto")
	default:
		t.Errorf("expected dimen auto to match auto, isn't: %#v", auto)
	}

	pcnt := css.Percentage(80)
	var p percent.Percent
	switch m := pcnt.Match(); m {
	case m.Percentage(&p):
		t.Logf("percent = %s", p)
	default:
		t.Errorf("expected Percentage(80) to be a percentage value, isn't: %#v", pcnt)
	}
}

func TestDimenPattern(t *testing.T) {
	ten := css.JustDimen(dimen.DU(10))
	// now use it
	var du dimen.DU
	m := css.DimenPattern[int](ten)
	zehn := m.OneOf(css.DimenPatterns[int]{
		Just:    m.With(&du).Const(10),
		Auto:    0,
		Default: -1,
	})
	if zehn != 10 {
		t.Errorf("expected zehn == 10, isn't: %#v", zehn)
	}

	d := css.JustDimen(dimen.DU(10))
	// now use it
	e := css.DimenPattern[dimen.DU](d)
	distance := e.OneOf(css.DimenPatterns[dimen.DU]{
		Just:    e.With(&du).Const(2 * du),
		Auto:    0,
		Default: -1,
	})
	if distance != 2*10 {
		t.Errorf("expected distance to be %v, isn't: %#v", 20, distance)
	}
}

func TestDimenOf(t *testing.T) {
	cases := []struct {
		prop  string
		fixed bool
		du    dimen.DU
	}{
		{"12px", true, 12},
		{"0", true, 0},
		{"120", true, 120},
		{"12.6px", true, 13},
		{"thin", true, 1},
		{"medium", true, 3},
		{"thick", true, 5},
	}
	for _, c := range cases {
		d := css.DimenOf(style.Property(c.prop))
		if !d.IsFixed() {
			t.Errorf("expected '%s' to parse into a fixed dimension, hasn't: %#v", c.prop, d)
			continue
		}
		if got := d.Resolve(0); got != c.du {
			t.Errorf("expected '%s' to resolve to %v, got %v", c.prop, c.du, got)
		}
	}
	if !css.DimenOf("auto").IsAuto() {
		t.Error("expected 'auto' to parse into an auto dimension, hasn't")
	}
	if d := css.DimenOf("50%"); !d.IsPercent() {
		t.Errorf("expected '50%%' to parse into a percentage, hasn't: %#v", d)
	} else if got := d.Resolve(200); got != 100 {
		t.Errorf("expected 50%% of 200 to be 100, got %v", got)
	}
	if d := css.DimenOf("grmpf"); !d.IsNone() {
		t.Errorf("expected unparsable dimension to be unset, is %#v", d)
	}
}

func TestParseDisplay(t *testing.T) {
	cases := []struct {
		value string
		mode  css.DisplayMode
	}{
		{"none", css.DisplayNone},
		{"block", css.BlockMode | css.InnerBlockMode},
		{"inline", css.InlineMode | css.InnerInlineMode},
		{"inline-block", css.InlineMode | css.InnerBlockMode},
	}
	for _, c := range cases {
		mode, err := css.ParseDisplay(c.value)
		if err != nil {
			t.Errorf("unexpected error for display '%s': %v", c.value, err)
		}
		if mode != c.mode {
			t.Errorf("expected display '%s' to parse to %s, got %s", c.value, c.mode, mode)
		}
	}
	mode, err := css.ParseDisplay("weird")
	if err == nil {
		t.Error("expected unknown display mode to flag an error, hasn't")
	}
	if !mode.IsBlockLevel() {
		t.Errorf("expected unknown display mode to fall back to block, is %s", mode)
	}
}
