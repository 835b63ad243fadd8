package event_test

import (
	"testing"

	"github.com/npillmayer/briq/dom"
	"github.com/npillmayer/briq/dom/style/cssom"
	"github.com/npillmayer/briq/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/briq/dom/styledtree"
	"github.com/npillmayer/briq/event"
	"github.com/npillmayer/briq/layout"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// testDoc is a laid-out two-node document for dispatch tests:
// #inner has a border box of (10,10,100,50) inside the padded #outer.
type testDoc struct {
	boxes *layout.LayoutBox
	outer *styledtree.StyNode
	inner *styledtree.StyNode
}

func buildTestDoc(t *testing.T) *testDoc {
	t.Helper()
	htmlRoot, _, err := dom.Parse(`<div id="outer"><div id="inner"></div></div>`)
	if err != nil {
		t.Fatal(err)
	}
	sheet, err := douceuradapter.Parse(
		`#outer { padding: 10px; } #inner { width: 100px; height: 50px; }`)
	if err != nil {
		t.Fatal(err)
	}
	om := cssom.NewCSSOM(nil)
	if err := om.AddStyleSheet(sheet); err != nil {
		t.Fatal(err)
	}
	styled, err := om.Style(htmlRoot)
	if err != nil {
		t.Fatal(err)
	}
	boxes, err := layout.BuildBoxTree(styled)
	if err != nil {
		t.Fatal(err)
	}
	layout.NewLayouter(nil).Layout(boxes, layout.Rect{W: 800, H: 600})
	w, err := dom.NodeFromTreeNode(styled)
	if err != nil {
		t.Fatal(err)
	}
	doc := &testDoc{boxes: boxes}
	for id, snp := range map[string]**styledtree.StyNode{
		"#outer": &doc.outer, "#inner": &doc.inner,
	} {
		match, err := w.QuerySelector(id)
		if err != nil || match == nil {
			t.Fatalf("cannot find %s: %v", id, err)
		}
		*snp = match.StyledNode()
	}
	return doc
}

func (doc *testDoc) dispatcher(invalidate func(*styledtree.StyNode)) *event.Dispatcher {
	return event.NewDispatcher(func() *layout.LayoutBox { return doc.boxes }, invalidate)
}

var insideInner = event.Point{X: 50, Y: 30}
var insideOuter = event.Point{X: 5, Y: 5} // not within #inner
var outside = event.Point{X: 400, Y: 400}

func TestDispatchCaptureThenBubble(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.event")
	defer teardown()
	//
	doc := buildTestDoc(t)
	d := doc.dispatcher(nil)
	var order []string
	record := func(tag string) event.Handler {
		return func(e *event.Event) {
			order = append(order, tag)
			if e.Target != doc.inner {
				t.Errorf("expected target #inner in %s handler", tag)
			}
		}
	}
	d.Bind(doc.outer, event.PointerDown, event.CapturePhase, record("outer-capture"))
	d.Bind(doc.inner, event.PointerDown, event.CapturePhase, record("inner-capture"))
	d.Bind(doc.inner, event.PointerDown, event.BubblePhase, record("inner-bubble"))
	d.Bind(doc.outer, event.PointerDown, event.BubblePhase, record("outer-bubble"))
	//
	consumed := d.Dispatch(event.PointerDown, insideInner, "")
	if consumed {
		t.Error("expected unconsumed event")
	}
	expected := []string{"outer-capture", "inner-capture", "inner-bubble", "outer-bubble"}
	if len(order) != len(expected) {
		t.Fatalf("expected %d handler invocations, got %v", len(expected), order)
	}
	for i, tag := range expected {
		if order[i] != tag {
			t.Fatalf("expected invocation order %v, got %v", expected, order)
		}
	}
}

func TestDispatchConsumeStopsCurrentPhase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.event")
	defer teardown()
	//
	doc := buildTestDoc(t)
	d := doc.dispatcher(nil)
	var order []string
	d.Bind(doc.outer, event.PointerDown, event.CapturePhase, func(e *event.Event) {
		order = append(order, "outer-capture")
		e.Consume()
	})
	d.Bind(doc.inner, event.PointerDown, event.CapturePhase, func(e *event.Event) {
		order = append(order, "inner-capture")
	})
	d.Bind(doc.inner, event.PointerDown, event.BubblePhase, func(e *event.Event) {
		order = append(order, "inner-bubble")
	})
	//
	if !d.Dispatch(event.PointerDown, insideInner, "") {
		t.Error("expected the event to be reported as consumed")
	}
	// capture stopped at #outer, but bubbling still takes place
	if len(order) != 2 || order[0] != "outer-capture" || order[1] != "inner-bubble" {
		t.Errorf("expected [outer-capture inner-bubble], got %v", order)
	}
}

func TestDispatchHoverTransitions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.event")
	defer teardown()
	//
	doc := buildTestDoc(t)
	var invalidated []*styledtree.StyNode
	d := doc.dispatcher(func(sn *styledtree.StyNode) {
		invalidated = append(invalidated, sn)
	})
	//
	d.Dispatch(event.PointerMove, insideInner, "")
	if d.Hovered() != doc.inner || !doc.inner.HasPseudo(styledtree.PseudoHover) {
		t.Fatal("expected #inner to be hovered")
	}
	if len(invalidated) != 1 || invalidated[0] != doc.inner {
		t.Errorf("expected one invalidation for #inner, got %d", len(invalidated))
	}
	//
	// moving within the same node must not re-invalidate
	d.Dispatch(event.PointerMove, event.Point{X: 60, Y: 40}, "")
	if len(invalidated) != 1 {
		t.Errorf("expected no invalidation for a move within #inner, got %d", len(invalidated))
	}
	//
	// moving to #outer transfers the hover state
	d.Dispatch(event.PointerMove, insideOuter, "")
	if d.Hovered() != doc.outer {
		t.Error("expected #outer to be hovered")
	}
	if doc.inner.HasPseudo(styledtree.PseudoHover) {
		t.Error("expected hover to be cleared on #inner")
	}
	if len(invalidated) != 3 {
		t.Errorf("expected invalidations for leave and enter, got %d", len(invalidated))
	}
	//
	// leaving all boxes clears hover, dispatch reports no target
	if d.Dispatch(event.PointerMove, outside, "") {
		t.Error("expected dispatch without target to report false")
	}
	if d.Hovered() != nil || doc.outer.HasPseudo(styledtree.PseudoHover) {
		t.Error("expected hover to be cleared after leaving all boxes")
	}
}

func TestDispatchFocusAndKeys(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.event")
	defer teardown()
	//
	doc := buildTestDoc(t)
	d := doc.dispatcher(nil)
	var keys []string
	d.Bind(doc.inner, event.KeyDown, event.BubblePhase, func(e *event.Event) {
		keys = append(keys, e.Key)
	})
	//
	// key events go nowhere without focus
	if d.Dispatch(event.KeyDown, event.Point{}, "a") {
		t.Error("expected key event without focus to be unconsumed")
	}
	if len(keys) != 0 {
		t.Fatal("expected no key delivery without focus")
	}
	//
	d.Dispatch(event.PointerDown, insideInner, "")
	if d.Focused() != doc.inner || !doc.inner.HasPseudo(styledtree.PseudoFocus) {
		t.Fatal("expected #inner to receive focus on pointer down")
	}
	if !doc.inner.HasPseudo(styledtree.PseudoActive) {
		t.Error("expected #inner to be active while the pointer is down")
	}
	d.Dispatch(event.PointerUp, insideInner, "")
	if doc.inner.HasPseudo(styledtree.PseudoActive) {
		t.Error("expected active state to clear on pointer up")
	}
	if !doc.inner.HasPseudo(styledtree.PseudoFocus) {
		t.Error("expected focus to survive pointer up")
	}
	//
	d.Dispatch(event.KeyDown, event.Point{}, "a")
	if len(keys) != 1 || keys[0] != "a" {
		t.Errorf("expected key 'a' delivered to the focused node, got %v", keys)
	}
	//
	// focus moves on pointer down elsewhere
	d.Dispatch(event.PointerDown, insideOuter, "")
	if d.Focused() != doc.outer || doc.inner.HasPseudo(styledtree.PseudoFocus) {
		t.Error("expected focus to move to #outer")
	}
}
