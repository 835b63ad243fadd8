package briq

import (
	"fmt"

	"github.com/npillmayer/briq/dom"
	"github.com/npillmayer/briq/dom/style/cssom"
	"github.com/npillmayer/briq/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/briq/dom/styledtree"
	"github.com/npillmayer/briq/event"
	"github.com/npillmayer/briq/layout"
	"github.com/npillmayer/briq/tree"
	"github.com/npillmayer/tyse/core/dimen"
	"golang.org/x/net/html"
)

// A Document is a loaded, styled and laid out markup document, ready for
// painting and event dispatch. Documents are single-threaded: all
// methods have to be called from the same goroutine that runs the host's
// event loop.
type Document struct {
	htmlRoot   *html.Node
	styled     *tree.Node[*styledtree.StyNode]
	om         *cssom.CSSOM
	boxes      *layout.LayoutBox
	layouter   *layout.Layouter
	dispatcher *event.Dispatcher
	viewport   layout.Rect
	warnings   []string
}

type config struct {
	viewport layout.Rect
	measure  layout.TextMeasurer
}

// Option configures loading of a document.
type Option func(*config)

// WithViewport sets the viewport size, i.e. the initial containing block
// for layout. The default is 800×600.
func WithViewport(w, h dimen.DU) Option {
	return func(cfg *config) {
		cfg.viewport = layout.Rect{W: w, H: h}
	}
}

// WithTextMeasurer supplies the text measurement capability of the
// host's font backend. Without one, a fixed-width fallback is used.
func WithTextMeasurer(m layout.TextMeasurer) Option {
	return func(cfg *config) {
		cfg.measure = m
	}
}

// Load runs the full pipeline on markup and stylesheet text: parse,
// cascade, box tree construction and layout. Malformed fragments are
// repaired where possible and reported via Warnings; Load only fails
// for input it cannot turn into a box tree at all.
//
// Embedded <style> elements are honored; the stylesheet argument is
// added after them and thus takes precedence on equal specificity.
func Load(markup string, stylesheet string, opts ...Option) (*Document, error) {
	cfg := &config{viewport: layout.Rect{W: 800, H: 600}}
	for _, opt := range opts {
		opt(cfg)
	}
	doc := &Document{
		viewport: cfg.viewport,
		layouter: layout.NewLayouter(cfg.measure),
	}
	htmlRoot, warnings, err := dom.Parse(markup)
	if err != nil {
		return nil, err
	}
	doc.htmlRoot = htmlRoot
	doc.warnings = warnings

	doc.om = cssom.NewCSSOM(nil)
	for _, embedded := range douceuradapter.ExtractStyleElements(htmlRoot) {
		doc.addStyleSheet(embedded)
	}
	sheet, err := douceuradapter.Parse(stylesheet)
	doc.warnings = append(doc.warnings, sheet.Warnings()...)
	if err != nil {
		doc.warn("stylesheet unusable: %v", err)
	}
	doc.addStyleSheet(sheet)
	doc.warnings = append(doc.warnings, doc.om.Warnings()...)

	doc.styled, err = doc.om.Style(htmlRoot)
	if err != nil {
		return nil, err
	}
	doc.boxes, err = layout.BuildBoxTree(doc.styled)
	if err != nil {
		return nil, err
	}
	doc.layouter.Layout(doc.boxes, doc.viewport)
	doc.dispatcher = event.NewDispatcher(
		func() *layout.LayoutBox { return doc.boxes },
		doc.invalidate,
	)
	return doc, nil
}

func (doc *Document) addStyleSheet(sheet *douceuradapter.CSSStyles) {
	if sheet == nil || sheet.Empty() {
		return
	}
	if err := doc.om.AddStyleSheet(sheet); err != nil {
		doc.warn("%v", err)
	}
}

func (doc *Document) warn(format string, args ...interface{}) {
	tracer().Infof(format, args...)
	doc.warnings = append(doc.warnings, fmt.Sprintf(format, args...))
}

// Warnings returns the recoverable problems encountered while loading:
// markup repairs, dropped style rules, unsupported at-rules.
func (doc *Document) Warnings() []string {
	return doc.warnings
}

// Diagnostics returns the non-fatal diagnostics of the most recent
// layout run.
func (doc *Document) Diagnostics() []string {
	return doc.layouter.Diagnostics()
}

// Boxes returns the root of the laid out box tree, for consumption by a
// paint backend.
func (doc *Document) Boxes() *layout.LayoutBox {
	return doc.boxes
}

// DOM returns a read-only view of the document's root node.
func (doc *Document) DOM() *dom.W3CNode {
	node, err := dom.NodeFromTreeNode(doc.styled)
	if err != nil {
		return nil
	}
	return node
}

// QuerySelector returns the first node matching a (static) CSS selector,
// or nil.
func (doc *Document) QuerySelector(selector string) (*dom.W3CNode, error) {
	return doc.DOM().QuerySelector(selector)
}

// Bind registers an event handler on a node for one event kind and
// propagation phase.
func (doc *Document) Bind(node *dom.W3CNode, kind event.Kind, phase event.Phase, h event.Handler) {
	if node == nil {
		return
	}
	doc.dispatcher.Bind(node.StyledNode(), kind, phase, h)
}

// Dispatch routes one input event against the current layout. Handlers
// and any re-styling or re-layout they trigger run synchronously, so the
// caller observes up-to-date geometry when Dispatch returns. Returns
// true if a handler consumed the event.
func (doc *Document) Dispatch(kind event.Kind, at event.Point, key string) bool {
	return doc.dispatcher.Dispatch(kind, at, key)
}

// SetAttribute mutates an attribute of a node, e.g. its class list, and
// recomputes styles, boxes and layout for the affected subtree.
func (doc *Document) SetAttribute(node *dom.W3CNode, key, value string) {
	if node == nil {
		return
	}
	sn := node.StyledNode()
	sn.SetAttr(key, value)
	doc.invalidate(sn)
}

// Relayout recomputes the layout, e.g. after the host resized the
// viewport with SetViewport.
func (doc *Document) Relayout() {
	doc.layouter.Layout(doc.boxes, doc.viewport)
}

// SetViewport changes the viewport size and recomputes the layout.
func (doc *Document) SetViewport(w, h dimen.DU) {
	doc.viewport = layout.Rect{W: w, H: h}
	doc.Relayout()
}

// invalidate recomputes computed styles for the subtree rooted in a
// node, and, if anything changed, rebuilds and re-lays-out the affected
// boxes. Sibling subtrees keep their computed styles and boxes by
// identity.
func (doc *Document) invalidate(sn *styledtree.StyNode) {
	changed := doc.om.RestyleSubtree(&sn.Node)
	if len(changed) == 0 {
		return
	}
	doc.rebuildBoxesFor(sn)
	doc.layouter.Layout(doc.boxes, doc.viewport)
}

// rebuildBoxesFor replaces the box subtree of a styled node in place.
// When the node's box variant changed (or it had no box), the sibling
// wrapping at the parent may change too, so the rebuild falls back to
// the parent node, resp. to a full rebuild at the root.
func (doc *Document) rebuildBoxesFor(sn *styledtree.StyNode) {
	old := doc.boxes.BoxForStyledNode(sn)
	if old != nil && old.Parent() != nil {
		fresh, err := layout.BuildBoxTree(&sn.Node)
		if err == nil && fresh.Kind == old.Kind {
			parent := old.Parent()
			if i := parent.IndexOfChild(&old.Node); i >= 0 {
				parent.ReplaceChildAt(i, &fresh.Node)
				return
			}
		}
	}
	if parent := sn.ParentNode(); parent != nil {
		doc.rebuildBoxesFor(parent)
		return
	}
	fresh, err := layout.BuildBoxTree(doc.styled)
	if err != nil {
		tracer().Errorf("box tree rebuild failed: %v", err)
		return
	}
	doc.boxes = fresh
}
