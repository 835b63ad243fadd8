package dom

import (
	"errors"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/briq/dom/style"
	"github.com/npillmayer/briq/dom/style/css"
	"github.com/npillmayer/briq/dom/styledtree"
	"github.com/npillmayer/briq/dom/w3cdom"
	"github.com/npillmayer/briq/tree"
	"golang.org/x/net/html"
)

// ErrNotAStyledNode flags an operation on a tree node without styling
// information.
var ErrNotAStyledNode = errors.New("tree node is not a styled node")

// A W3CNode is a read-only view of a styled-tree node, implementing
// interface w3cdom.Node.
type W3CNode struct {
	stylednode *styledtree.StyNode
}

var _ w3cdom.Node = &W3CNode{}

// NodeFromStyledNode creates a new DOM node from a styled node.
func NodeFromStyledNode(sn *styledtree.StyNode) *W3CNode {
	if sn == nil {
		return nil
	}
	return &W3CNode{sn}
}

// NodeFromTreeNode creates a new DOM node from a tree node, which should
// be the inner node of a styled node.
func NodeFromTreeNode(tn *tree.Node[*styledtree.StyNode]) (*W3CNode, error) {
	if tn == nil || tn.Payload == nil {
		return nil, ErrNotAStyledNode
	}
	return &W3CNode{tn.Payload}, nil
}

// StyledNode returns the underlying styled-tree node.
func (w *W3CNode) StyledNode() *styledtree.StyNode {
	return w.stylednode
}

// HTMLNode returns the underlying node of the markup parse tree.
func (w *W3CNode) HTMLNode() *html.Node {
	return w.stylednode.HTMLNode()
}

// NodeType returns the type of the underlying HTML node.
func (w *W3CNode) NodeType() html.NodeType {
	return w.stylednode.HTMLNode().Type
}

// NodeName returns the node name: the tag for elements, '#text' for text
// nodes and '#document' for the document node.
func (w *W3CNode) NodeName() string {
	return w.stylednode.TagName()
}

// NodeValue returns the text content for text nodes, otherwise "".
func (w *W3CNode) NodeValue() string {
	if w.NodeType() == html.TextNode {
		return w.stylednode.HTMLNode().Data
	}
	return ""
}

// HasAttributes checks for the existence of attributes.
func (w *W3CNode) HasAttributes() bool {
	return len(w.stylednode.HTMLNode().Attr) > 0
}

// ParentNode returns the parent node, if any.
func (w *W3CNode) ParentNode() w3cdom.Node {
	parent := w.stylednode.ParentNode()
	if parent == nil {
		return nil
	}
	return &W3CNode{parent}
}

// HasChildNodes checks for the existence of sub-nodes.
func (w *W3CNode) HasChildNodes() bool {
	return w.stylednode.ChildCount() > 0
}

// ChildNodes returns a list of all children-nodes.
func (w *W3CNode) ChildNodes() w3cdom.NodeList {
	list := &W3CNodeList{}
	for _, ch := range w.stylednode.Children(true) {
		list.nodes = append(list.nodes, &W3CNode{ch.Payload})
	}
	return list
}

// Children returns a list of element child-nodes.
func (w *W3CNode) Children() w3cdom.NodeList {
	list := &W3CNodeList{}
	for _, ch := range w.stylednode.Children(true) {
		if NodeIsElement(ch) {
			list.nodes = append(list.nodes, &W3CNode{ch.Payload})
		}
	}
	return list
}

// FirstChild returns the first children-node, or nil.
func (w *W3CNode) FirstChild() w3cdom.Node {
	ch, ok := w.stylednode.Child(0)
	if !ok {
		return nil
	}
	return &W3CNode{ch.Payload}
}

// NextSibling returns the node's next sibling, or nil if it is the last
// child of its parent.
func (w *W3CNode) NextSibling() w3cdom.Node {
	parent := w.stylednode.Parent()
	if parent == nil {
		return nil
	}
	inx := parent.IndexOfChild(&w.stylednode.Node)
	if inx < 0 {
		return nil
	}
	sibling, ok := parent.Child(inx + 1)
	if !ok {
		return nil
	}
	return &W3CNode{sibling.Payload}
}

// Attributes returns all attributes of a node.
func (w *W3CNode) Attributes() w3cdom.NamedNodeMap {
	return w3cMap{w.stylednode.HTMLNode().Attr}
}

// ComputedStyles returns the computed CSS styles of the node.
func (w *W3CNode) ComputedStyles() w3cdom.ComputedStyles {
	return computedStyles{w.stylednode}
}

// TextContent returns the text content of the node and all its
// descendants, in document order.
func (w *W3CNode) TextContent() (string, error) {
	var b strings.Builder
	tree.Walk(&w.stylednode.Node, func(n *tree.Node[*styledtree.StyNode]) bool {
		if NodeIsText(n) {
			b.WriteString(n.Payload.HTMLNode().Data)
		}
		return true
	})
	return b.String(), nil
}

// OuterHTML serializes the node and its subtree back to markup text.
func (w *W3CNode) OuterHTML() (string, error) {
	var b strings.Builder
	if err := html.Render(&b, w.stylednode.HTMLNode()); err != nil {
		return "", err
	}
	return b.String(), nil
}

// --- Selector queries ---------------------------------------------------

// QuerySelector returns the first node of the subtree under w which
// matches a (static) CSS selector, or nil.
func (w *W3CNode) QuerySelector(selector string) (*W3CNode, error) {
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return nil, err
	}
	match := cascadia.Query(w.HTMLNode(), sel)
	if match == nil {
		return nil, nil
	}
	sn := w.findStyledNodeFor(match)
	if sn == nil {
		return nil, nil
	}
	return &W3CNode{sn}, nil
}

// QuerySelectorAll returns all nodes of the subtree under w matching a
// (static) CSS selector.
func (w *W3CNode) QuerySelectorAll(selector string) (w3cdom.NodeList, error) {
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return nil, err
	}
	list := &W3CNodeList{}
	for _, match := range cascadia.QueryAll(w.HTMLNode(), sel) {
		if sn := w.findStyledNodeFor(match); sn != nil {
			list.nodes = append(list.nodes, &W3CNode{sn})
		}
	}
	return list, nil
}

// findStyledNodeFor walks back from a markup node to the styled node
// mirroring it.
func (w *W3CNode) findStyledNodeFor(h *html.Node) *styledtree.StyNode {
	found := tree.Find(&w.stylednode.Node, func(n *tree.Node[*styledtree.StyNode]) bool {
		return n.Payload.HTMLNode() == h
	})
	if found == nil {
		return nil
	}
	return found.Payload
}

// --- NodeList -------------------------------------------------------------

// A W3CNodeList implements interface w3cdom.NodeList.
type W3CNodeList struct {
	nodes []*W3CNode
}

var _ w3cdom.NodeList = &W3CNodeList{}

// Length returns the number of nodes in the list.
func (wl *W3CNodeList) Length() int {
	return len(wl.nodes)
}

// Item returns the node at index i, or nil.
func (wl *W3CNodeList) Item(i int) w3cdom.Node {
	if i < 0 || i >= len(wl.nodes) {
		return nil
	}
	return wl.nodes[i]
}

func (wl *W3CNodeList) String() string {
	var b strings.Builder
	b.WriteString("[ ")
	for _, n := range wl.nodes {
		b.WriteString(n.NodeName())
		b.WriteString(" ")
	}
	b.WriteString("]")
	return b.String()
}

// --- Attributes -------------------------------------------------------------

type w3cAttr struct {
	attr html.Attribute
}

var _ w3cdom.Attr = w3cAttr{}

func (a w3cAttr) Namespace() string { return a.attr.Namespace }
func (a w3cAttr) Key() string       { return a.attr.Key }
func (a w3cAttr) Value() string     { return a.attr.Val }

type w3cMap struct {
	attrs []html.Attribute
}

var _ w3cdom.NamedNodeMap = w3cMap{}

func (m w3cMap) Length() int {
	return len(m.attrs)
}

func (m w3cMap) Item(i int) w3cdom.Attr {
	if i < 0 || i >= len(m.attrs) {
		return nil
	}
	return w3cAttr{m.attrs[i]}
}

func (m w3cMap) GetNamedItem(key string) w3cdom.Attr {
	for _, a := range m.attrs {
		if a.Key == key {
			return w3cAttr{a}
		}
	}
	return nil
}

// --- Computed styles --------------------------------------------------------

type computedStyles struct {
	sn *styledtree.StyNode
}

var _ w3cdom.ComputedStyles = computedStyles{}

// GetPropertyValue returns the computed value of a property, respecting
// CSS inheritance.
func (cs computedStyles) GetPropertyValue(key string) style.Property {
	p, err := css.GetProperty(cs.sn, key)
	if err != nil {
		return style.NullStyle
	}
	return p
}

// Styles returns the node's property map.
func (cs computedStyles) Styles() *style.PropertyMap {
	return cs.sn.Styles()
}
