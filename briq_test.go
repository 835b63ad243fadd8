package briq_test

import (
	"strings"
	"testing"

	"github.com/npillmayer/briq"
	"github.com/npillmayer/briq/dom"
	"github.com/npillmayer/briq/event"
	"github.com/npillmayer/briq/layout"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func load(t *testing.T, markup string, stylesheet string, opts ...briq.Option) *briq.Document {
	t.Helper()
	doc, err := briq.Load(markup, stylesheet, opts...)
	if err != nil {
		t.Fatalf("cannot load document: %v", err)
	}
	return doc
}

func query(t *testing.T, doc *briq.Document, selector string) *dom.W3CNode {
	t.Helper()
	node, err := doc.QuerySelector(selector)
	if err != nil {
		t.Fatal(err)
	}
	if node == nil {
		t.Fatalf("no node matches '%s'", selector)
	}
	return node
}

func boxOf(t *testing.T, doc *briq.Document, selector string) *layout.LayoutBox {
	t.Helper()
	box := doc.Boxes().BoxForStyledNode(query(t, doc, selector).StyledNode())
	if box == nil {
		t.Fatalf("no box for '%s'", selector)
	}
	return box
}

func TestLoadRepairsMarkup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.doc")
	defer teardown()
	//
	doc := load(t, `<div><p>text</div>`, "")
	var repaired bool
	for _, w := range doc.Warnings() {
		if strings.Contains(w, "implicitly closes <p>") {
			repaired = true
		}
	}
	if !repaired {
		t.Errorf("expected a markup repair warning, got %v", doc.Warnings())
	}
	// the repaired document still lays out
	p := boxOf(t, doc, "p")
	if p.Dimensions.Content.W != 800 {
		t.Errorf("expected <p> to fill the viewport, got %v", p.Dimensions.Content.W)
	}
}

func TestLoadStylesheetPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.doc")
	defer teardown()
	//
	// the stylesheet argument is added after embedded styles and wins on
	// equal specificity
	doc := load(t,
		`<html><head><style>b { color: #ff0000; }</style></head><body><b>x</b></body></html>`,
		`b { color: #00ff00; }`)
	b := query(t, doc, "b")
	if got := b.ComputedStyles().GetPropertyValue("color"); got != "#00ff00" {
		t.Errorf("expected the external stylesheet to win, got color %s", got)
	}
}

func TestLoadReportsDroppedRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.doc")
	defer teardown()
	//
	doc := load(t, `<p>hi</p>`, `
		@media print { p { color: #ff0000; } }
		p { margin-top: 10px; }
	`)
	var skipped bool
	for _, w := range doc.Warnings() {
		if strings.Contains(w, "at-rule") {
			skipped = true
		}
	}
	if !skipped {
		t.Errorf("expected an at-rule warning, got %v", doc.Warnings())
	}
	p := boxOf(t, doc, "p")
	if p.Dimensions.Margin.Top != 10 {
		t.Errorf("expected the surviving rule to apply, got margin %v", p.Dimensions.Margin.Top)
	}
}

func TestHoverDispatchRestyles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.doc")
	defer teardown()
	//
	doc := load(t,
		`<div id="wrap"><div id="target"></div></div>`,
		`#wrap { padding: 10px; }
		 #target { width: 100px; height: 50px; }
		 #target:hover { background-color: #ff0000; }`)
	target := query(t, doc, "#target")
	if got := target.ComputedStyles().GetPropertyValue("background-color"); got == "#ff0000" {
		t.Fatal("hover styling must not apply before pointer enter")
	}
	//
	doc.Dispatch(event.PointerMove, event.Point{X: 50, Y: 30}, "")
	if got := target.ComputedStyles().GetPropertyValue("background-color"); got != "#ff0000" {
		t.Errorf("expected hover styling after pointer enter, got '%s'", got)
	}
	//
	doc.Dispatch(event.PointerMove, event.Point{X: 400, Y: 400}, "")
	if got := target.ComputedStyles().GetPropertyValue("background-color"); got == "#ff0000" {
		t.Error("expected hover styling to be lifted after pointer leave")
	}
}

func TestHoverDispatchRelayoutsAndKeepsSiblings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.doc")
	defer teardown()
	//
	doc := load(t,
		`<div id="a"></div><div id="b"></div>`,
		`#a { height: 20px; }
		 #a:hover { height: 100px; }
		 #b { height: 10px; }`)
	before := boxOf(t, doc, "#b")
	if before.Dimensions.Content.Y != 20 {
		t.Fatalf("expected #b at y=20 before hover, got %v", before.Dimensions.Content.Y)
	}
	//
	doc.Dispatch(event.PointerMove, event.Point{X: 400, Y: 10}, "")
	after := boxOf(t, doc, "#b")
	if after != before {
		t.Error("expected the sibling box to keep its identity across invalidation")
	}
	if after.Dimensions.Content.Y != 100 {
		t.Errorf("expected #b pushed down to y=100 by the grown sibling, got %v",
			after.Dimensions.Content.Y)
	}
}

func TestEventHandlersSeeFreshGeometry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.doc")
	defer teardown()
	//
	doc := load(t,
		`<div id="a"></div>`,
		`#a { height: 20px; } #a:hover { height: 100px; }`)
	a := query(t, doc, "#a")
	var seen bool
	doc.Bind(a, event.PointerMove, event.BubblePhase, func(e *event.Event) {
		seen = true
		box := doc.Boxes().BoxForStyledNode(e.Target)
		if box.Dimensions.Content.H != 100 {
			t.Errorf("expected the handler to observe hover layout, got height %v",
				box.Dimensions.Content.H)
		}
	})
	doc.Dispatch(event.PointerMove, event.Point{X: 400, Y: 10}, "")
	if !seen {
		t.Error("expected the bound handler to run")
	}
}

func TestSetAttributeRestyles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.doc")
	defer teardown()
	//
	doc := load(t, `<div id="c"></div>`, `.hot { height: 99px; }`)
	c := query(t, doc, "#c")
	doc.SetAttribute(c, "class", "hot")
	box := boxOf(t, doc, "#c")
	if box.Dimensions.Content.H != 99 {
		t.Errorf("expected class change to re-style and re-layout, got height %v",
			box.Dimensions.Content.H)
	}
}

func TestSetViewportRelayouts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.doc")
	defer teardown()
	//
	doc := load(t, `<div id="c"></div>`, "")
	if boxOf(t, doc, "#c").Dimensions.Content.W != 800 {
		t.Fatal("expected initial viewport width 800")
	}
	doc.SetViewport(400, 300)
	if got := boxOf(t, doc, "#c").Dimensions.Content.W; got != 400 {
		t.Errorf("expected width 400 after viewport change, got %v", got)
	}
}

func TestDisplayNoneToggle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.doc")
	defer teardown()
	//
	doc := load(t,
		`<div id="c"></div>`,
		`.hidden { display: none; }`)
	c := query(t, doc, "#c")
	doc.SetAttribute(c, "class", "hidden")
	if doc.Boxes().BoxForStyledNode(c.StyledNode()) != nil {
		t.Error("expected no box after hiding the node")
	}
	doc.SetAttribute(c, "class", "")
	if doc.Boxes().BoxForStyledNode(c.StyledNode()) == nil {
		t.Error("expected the box to reappear after unhiding")
	}
}
