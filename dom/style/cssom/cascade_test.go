package cssom_test

import (
	"testing"

	"github.com/npillmayer/briq/dom"
	"github.com/npillmayer/briq/dom/style"
	"github.com/npillmayer/briq/dom/style/css"
	"github.com/npillmayer/briq/dom/style/cssom"
	"github.com/npillmayer/briq/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/briq/dom/styledtree"
	"github.com/npillmayer/briq/tree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func makeCSSOM(t *testing.T, csstext string) *cssom.CSSOM {
	t.Helper()
	om := cssom.NewCSSOM(nil)
	if csstext == "" {
		return om
	}
	sheet, err := douceuradapter.Parse(csstext)
	if err != nil {
		t.Fatalf("cannot parse stylesheet: %v", err)
	}
	if err := om.AddStyleSheet(sheet); err != nil {
		t.Fatal(err)
	}
	return om
}

func styleDocument(t *testing.T, markup string, csstext string) (
	*cssom.CSSOM, *tree.Node[*styledtree.StyNode]) {
	t.Helper()
	htmlRoot, _, err := dom.Parse(markup)
	if err != nil {
		t.Fatalf("cannot parse markup: %v", err)
	}
	om := makeCSSOM(t, csstext)
	styled, err := om.Style(htmlRoot)
	if err != nil {
		t.Fatalf("cannot style document: %v", err)
	}
	return om, styled
}

func nodeFor(t *testing.T, styled *tree.Node[*styledtree.StyNode], selector string) *styledtree.StyNode {
	t.Helper()
	w, err := dom.NodeFromTreeNode(styled)
	if err != nil {
		t.Fatal(err)
	}
	match, err := w.QuerySelector(selector)
	if err != nil {
		t.Fatal(err)
	}
	if match == nil {
		t.Fatalf("no node matches '%s'", selector)
	}
	return match.StyledNode()
}

func propertyOf(t *testing.T, sn *styledtree.StyNode, key string) style.Property {
	t.Helper()
	p, err := css.GetProperty(sn, key)
	if err != nil {
		t.Fatalf("cannot read property %s: %v", key, err)
	}
	return p
}

func TestCascadeSpecificityOrdering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.style")
	defer teardown()
	//
	// the #id rule must win, although it is listed first
	csstext := `
		#it { color: #0000ff; }
		.cls { color: #00ff00; }
		p { color: #ff0000; }
	`
	_, styled := styleDocument(t, `<p id="it" class="cls">hi</p>`, csstext)
	p := nodeFor(t, styled, "p")
	if got := propertyOf(t, p, "color"); got != "#0000ff" {
		t.Errorf("expected #id rule to win the cascade, got color %s", got)
	}
}

func TestCascadeSourceOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.style")
	defer teardown()
	//
	csstext := `
		p { color: #ff0000; }
		p { color: #00ff00; }
	`
	_, styled := styleDocument(t, `<p>hi</p>`, csstext)
	p := nodeFor(t, styled, "p")
	if got := propertyOf(t, p, "color"); got != "#00ff00" {
		t.Errorf("expected later rule to win on equal specificity, got color %s", got)
	}
}

func TestCascadeImportant(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.style")
	defer teardown()
	//
	csstext := `
		p { color: #ff0000 !important; }
		#it { color: #0000ff; }
	`
	_, styled := styleDocument(t, `<p id="it">hi</p>`, csstext)
	p := nodeFor(t, styled, "p")
	if got := propertyOf(t, p, "color"); got != "#ff0000" {
		t.Errorf("expected !important declaration to win, got color %s", got)
	}
}

func TestCascadeInheritance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.style")
	defer teardown()
	//
	_, styled := styleDocument(t,
		`<div><p>hi</p></div>`,
		`div { color: #123456; width: 100px; }`)
	p := nodeFor(t, styled, "p")
	if got := propertyOf(t, p, "color"); got != "#123456" {
		t.Errorf("expected <p> to inherit color from <div>, got %s", got)
	}
	// width is not inheritable and falls back to the user-agent default
	if got := propertyOf(t, p, "width"); got != "auto" {
		t.Errorf("expected width of <p> to default to auto, got %s", got)
	}
	// unstyled inheritable properties terminate at the user-agent defaults
	if got := propertyOf(t, p, "font-size"); got != "12px" {
		t.Errorf("expected default font-size 12px, got %s", got)
	}
}

func TestCascadeCompoundProperties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.style")
	defer teardown()
	//
	_, styled := styleDocument(t,
		`<div>x</div>`,
		`div { margin: 1px 2px 3px 4px; padding: 5px; }`)
	div := nodeFor(t, styled, "div")
	expected := map[string]style.Property{
		"margin-top":    "1px",
		"margin-right":  "2px",
		"margin-bottom": "3px",
		"margin-left":   "4px",
		"padding-top":   "5px",
		"padding-left":  "5px",
	}
	for key, want := range expected {
		if got := propertyOf(t, div, key); got != want {
			t.Errorf("expected %s to be %s, got %s", key, want, got)
		}
	}
}

func TestCascadeIdempotence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.style")
	defer teardown()
	//
	markup := `<div id="a"><p class="x">one</p><p>two</p></div>`
	csstext := `
		div { color: #ff0000; }
		.x { font-weight: bold; }
		p { margin: 2px; }
	`
	htmlRoot, _, err := dom.Parse(markup)
	if err != nil {
		t.Fatal(err)
	}
	om := makeCSSOM(t, csstext)
	first, err := om.Style(htmlRoot)
	if err != nil {
		t.Fatal(err)
	}
	second, err := om.Style(htmlRoot)
	if err != nil {
		t.Fatal(err)
	}
	var a, b []*styledtree.StyNode
	tree.Walk(first, func(n *tree.Node[*styledtree.StyNode]) bool {
		a = append(a, n.Payload)
		return true
	})
	tree.Walk(second, func(n *tree.Node[*styledtree.StyNode]) bool {
		b = append(b, n.Payload)
		return true
	})
	if len(a) != len(b) {
		t.Fatalf("expected both styled trees to have equal size, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Styles().Equals(b[i].Styles()) {
			t.Errorf("expected identical computed styles for node %d (%s), aren't",
				i, a[i].TagName())
		}
	}
}

func TestRestyleKeepsSiblingIdentity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.style")
	defer teardown()
	//
	om, styled := styleDocument(t,
		`<div><p id="first">one</p><p id="second">two</p></div>`,
		`p:hover { background-color: #ff0000; } p { color: #000000; }`)
	first := nodeFor(t, styled, "#first")
	second := nodeFor(t, styled, "#second")
	secondStyles := second.Styles()
	firstStyles := first.Styles()
	//
	first.SetPseudo(styledtree.PseudoHover, true)
	changed := om.RestyleSubtree(styled)
	//
	if len(changed) != 1 || changed[0] != first {
		t.Errorf("expected exactly #first to change, got %d changed nodes", len(changed))
	}
	if first.Styles() == firstStyles {
		t.Error("expected #first to receive a new property map, hasn't")
	}
	if got := propertyOf(t, first, "background-color"); got != "#ff0000" {
		t.Errorf("expected hover background on #first, got %s", got)
	}
	if second.Styles() != secondStyles {
		t.Error("expected sibling #second to keep its property map by identity, hasn't")
	}
}

func TestRestyleUnchangedKeepsIdentity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.style")
	defer teardown()
	//
	om, styled := styleDocument(t, `<div><p>one</p></div>`, `div { color: #ff0000; }`)
	div := nodeFor(t, styled, "div")
	before := div.Styles()
	changed := om.RestyleSubtree(&div.Node)
	if len(changed) != 0 {
		t.Errorf("expected no changes on restyle without mutation, got %d", len(changed))
	}
	if div.Styles() != before {
		t.Error("expected unchanged node to keep its property map by identity, hasn't")
	}
}
