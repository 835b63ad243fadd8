package dom

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"
)

func TestParseSimple(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.dom")
	defer teardown()
	//
	doc, warnings, err := Parse(`<div><p>hello</p><p>world</p></div>`)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(warnings) > 0 {
		t.Errorf("expected well-formed markup to parse without warnings, got %v", warnings)
	}
	div := doc.FirstChild
	if div == nil || div.Data != "div" {
		t.Fatalf("expected document root to contain <div>, hasn't")
	}
	var tags []string
	for ch := div.FirstChild; ch != nil; ch = ch.NextSibling {
		tags = append(tags, ch.Data)
	}
	if len(tags) != 2 || tags[0] != "p" || tags[1] != "p" {
		t.Errorf("expected <div> to contain two <p>, got %v", tags)
	}
}

func TestParseRecoversImplicitClose(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.dom")
	defer teardown()
	//
	doc, warnings, err := Parse(`<div><p>text</div>`)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "implicitly closes <p>") {
		t.Errorf("expected one warning about implicitly closed <p>, got %v", warnings)
	}
	div := doc.FirstChild
	p := div.FirstChild
	if p == nil || p.Data != "p" {
		t.Fatalf("expected <p> as child of <div>, hasn't")
	}
	if p.FirstChild == nil || p.FirstChild.Type != html.TextNode || p.FirstChild.Data != "text" {
		t.Errorf("expected text to live inside the implicitly closed <p>")
	}
	if p.NextSibling != nil {
		t.Errorf("expected <p> to be closed by </div>, but it has a sibling")
	}
}

func TestParseDropsUnmatchedEndTag(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.dom")
	defer teardown()
	//
	_, warnings, err := Parse(`<div></span></div>`)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "unmatched end tag") {
		t.Errorf("expected warning about unmatched </span>, got %v", warnings)
	}
}

func TestParseClosesAtEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.dom")
	defer teardown()
	//
	doc, warnings, err := Parse(`<div><span>dangling`)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(warnings) != 2 {
		t.Errorf("expected two end-of-input warnings, got %v", warnings)
	}
	if doc.FirstChild == nil || doc.FirstChild.Data != "div" {
		t.Error("expected <div> to survive missing end tags")
	}
}

func TestParseVoidElements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.dom")
	defer teardown()
	//
	doc, warnings, err := Parse(`<div><br><img src="x"></div>`)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(warnings) > 0 {
		t.Errorf("expected void elements to parse without warnings, got %v", warnings)
	}
	div := doc.FirstChild
	var tags []string
	for ch := div.FirstChild; ch != nil; ch = ch.NextSibling {
		tags = append(tags, ch.Data)
	}
	if len(tags) != 2 || tags[0] != "br" || tags[1] != "img" {
		t.Errorf("expected <br> and <img> as siblings under <div>, got %v", tags)
	}
}
