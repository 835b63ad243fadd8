package dom_test

import (
	"strings"
	"testing"

	"github.com/npillmayer/briq/dom"
	"github.com/npillmayer/briq/dom/style/cssom"
	"github.com/npillmayer/briq/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func styledDoc(t *testing.T, markup string, css string) *dom.W3CNode {
	t.Helper()
	htmlRoot, _, err := dom.Parse(markup)
	if err != nil {
		t.Fatalf("cannot parse markup: %v", err)
	}
	om := cssom.NewCSSOM(nil)
	if css != "" {
		sheet, err := douceuradapter.Parse(css)
		if err != nil {
			t.Fatalf("cannot parse stylesheet: %v", err)
		}
		if err := om.AddStyleSheet(sheet); err != nil {
			t.Fatal(err)
		}
	}
	styled, err := om.Style(htmlRoot)
	if err != nil {
		t.Fatalf("cannot style document: %v", err)
	}
	node, err := dom.NodeFromTreeNode(styled)
	if err != nil {
		t.Fatal(err)
	}
	return node
}

func TestW3CNodeNavigation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.dom")
	defer teardown()
	//
	doc := styledDoc(t, `<div id="a"><p>one</p><p class="x">two</p></div>`, "")
	if doc.NodeName() != "#document" {
		t.Errorf("expected root to be #document, is %s", doc.NodeName())
	}
	div := doc.FirstChild()
	if div == nil || div.NodeName() != "div" {
		t.Fatalf("expected first child to be <div>")
	}
	if div.ChildNodes().Length() != 2 {
		t.Errorf("expected <div> to have 2 child nodes, has %d", div.ChildNodes().Length())
	}
	p1 := div.FirstChild()
	p2 := p1.NextSibling()
	if p2 == nil || p2.Attributes().GetNamedItem("class").Value() != "x" {
		t.Errorf("expected second <p> to carry class 'x'")
	}
	if p2.NextSibling() != nil {
		t.Error("expected second <p> to be the last sibling")
	}
	if parent := p1.ParentNode(); parent.NodeName() != "div" {
		t.Errorf("expected parent of <p> to be <div>, is %s", parent.NodeName())
	}
}

func TestW3CNodeTextContent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.dom")
	defer teardown()
	//
	doc := styledDoc(t, `<div><p>one</p><p>two</p></div>`, "")
	text, err := doc.TextContent()
	if err != nil {
		t.Fatal(err)
	}
	if text != "onetwo" {
		t.Errorf("expected text content 'onetwo', got %q", text)
	}
}

func TestW3CNodeOuterHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.dom")
	defer teardown()
	//
	doc := styledDoc(t, `<div id="a"><span>hi</span></div>`, "")
	div, err := doc.QuerySelector("#a")
	if err != nil {
		t.Fatal(err)
	}
	markup, err := div.OuterHTML()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(markup, "<span>hi</span>") {
		t.Errorf("expected serialized markup to contain the <span>, got %q", markup)
	}
}

func TestQuerySelector(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.dom")
	defer teardown()
	//
	doc := styledDoc(t, `<div><p class="x">one</p><p>two</p></div>`, "")
	match, err := doc.QuerySelector("div p.x")
	if err != nil {
		t.Fatal(err)
	}
	if match == nil {
		t.Fatal("expected 'div p.x' to match a node, hasn't")
	}
	text, _ := match.TextContent()
	if text != "one" {
		t.Errorf("expected matched node to contain 'one', got %q", text)
	}
	all, err := doc.QuerySelectorAll("p")
	if err != nil {
		t.Fatal(err)
	}
	if all.Length() != 2 {
		t.Errorf("expected 2 matches for 'p', got %d", all.Length())
	}
}

func TestComputedStylesView(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.dom")
	defer teardown()
	//
	doc := styledDoc(t, `<div><p>text</p></div>`, `div { color: #ff0000; }`)
	p, err := doc.QuerySelector("p")
	if err != nil || p == nil {
		t.Fatalf("cannot find <p>: %v", err)
	}
	// color inherits from <div>
	color := p.ComputedStyles().GetPropertyValue("color")
	if color.String() != "#ff0000" {
		t.Errorf("expected <p> to inherit color #ff0000, got %s", color)
	}
}
