package domdbg_test

import (
	"strings"
	"testing"

	"github.com/npillmayer/briq/dom"
	"github.com/npillmayer/briq/dom/domdbg"
	"github.com/npillmayer/briq/dom/style"
	"github.com/npillmayer/briq/dom/style/cssom"
	"github.com/npillmayer/briq/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestToGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "briq.dom")
	defer teardown()
	//
	htmlRoot, _, err := dom.Parse(`<div id="a"><p>hello</p></div>`)
	if err != nil {
		t.Fatal(err)
	}
	sheet, err := douceuradapter.Parse(`p { margin: 2px; color: #ff0000; }`)
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
	w, err := dom.NodeFromTreeNode(styled)
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	domdbg.ToGraphViz(w, &b, []string{style.PGMargins, style.PGColor})
	dot := b.String()
	if !strings.HasPrefix(dot, "digraph") {
		t.Error("expected DOT output to start with 'digraph'")
	}
	for _, fragment := range []string{`"div"`, `"p"`, "margin-top", "#ff0000"} {
		if !strings.Contains(dot, fragment) {
			t.Errorf("expected DOT output to contain %s", fragment)
		}
	}
}
