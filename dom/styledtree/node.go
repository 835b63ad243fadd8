package styledtree

import (
	"strings"

	"github.com/npillmayer/briq/dom/style"
	"github.com/npillmayer/briq/tree"
	"golang.org/x/net/html"
)

// PseudoClasses is a bit-set of dynamic pseudo-class flags. The event
// dispatcher flips these at runtime; flipping one invalidates the node's
// computed styles.
type PseudoClasses uint8

// Dynamic pseudo-class flags.
const (
	PseudoHover PseudoClasses = 1 << iota
	PseudoFocus
	PseudoActive
)

// PseudoByName returns the pseudo-class flag for a (lower-case) name, or 0
// if the name does not denote a supported dynamic pseudo-class.
func PseudoByName(name string) PseudoClasses {
	switch name {
	case "hover":
		return PseudoHover
	case "focus":
		return PseudoFocus
	case "active":
		return PseudoActive
	}
	return 0
}

// StyNode is a style node, the building block of the styled tree.
type StyNode struct {
	tree.Node[*StyNode] // we build on top of a general purpose tree
	htmlNode            *html.Node
	computedStyles      *style.PropertyMap
	pseudo              PseudoClasses
}

// NewNodeForHTMLNode creates a new styled node linked to an HTML node.
func NewNodeForHTMLNode(html *html.Node) *tree.Node[*StyNode] {
	sn := &StyNode{}
	sn.Payload = sn // Payload will always reference the node itself
	sn.htmlNode = html
	return &sn.Node
}

// Node gets the styled node from a generic tree node.
func Node(n *tree.Node[*StyNode]) *StyNode {
	if n == nil {
		return nil
	}
	return n.Payload
}

// HTMLNode gets the HTML DOM node corresponding to this styled node.
func (sn *StyNode) HTMLNode() *html.Node {
	return sn.htmlNode
}

// IsText is a predicate wether this styled node reflects a text fragment.
func (sn *StyNode) IsText() bool {
	return sn.htmlNode != nil && sn.htmlNode.Type == html.TextNode
}

// TagName returns the element tag name (lower case) for element nodes,
// "#text" for text nodes.
func (sn *StyNode) TagName() string {
	if sn.htmlNode == nil {
		return ""
	}
	switch sn.htmlNode.Type {
	case html.TextNode:
		return "#text"
	case html.DocumentNode:
		return "#document"
	}
	return sn.htmlNode.Data
}

// Styles returns the computed style property map of this node.
func (sn *StyNode) Styles() *style.PropertyMap {
	return sn.computedStyles
}

// SetStyles sets the styling properties of a styled node.
func (sn *StyNode) SetStyles(styles *style.PropertyMap) {
	sn.computedStyles = styles
}

// --- Dynamic pseudo-class state --------------------------------------------

// HasPseudo is a predicate wether this node currently carries a dynamic
// pseudo-class flag.
func (sn *StyNode) HasPseudo(flag PseudoClasses) bool {
	return sn.pseudo&flag != 0
}

// SetPseudo sets or clears a dynamic pseudo-class flag. It returns true if
// the flag changed, i.e., if the node's styles need re-cascading.
func (sn *StyNode) SetPseudo(flag PseudoClasses, on bool) bool {
	old := sn.pseudo
	if on {
		sn.pseudo |= flag
	} else {
		sn.pseudo &^= flag
	}
	if old != sn.pseudo {
		tracer().P("node", sn.TagName()).Debugf("styling: pseudo-class state = %b", sn.pseudo)
		return true
	}
	return false
}

// --- Attribute access -------------------------------------------------------

// Attr returns the value of an attribute of the underlying element, plus a
// flag wether it is present at all.
func (sn *StyNode) Attr(key string) (string, bool) {
	if sn.htmlNode == nil {
		return "", false
	}
	for _, a := range sn.htmlNode.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// ID returns the element's id attribute, or "".
func (sn *StyNode) ID() string {
	id, _ := sn.Attr("id")
	return id
}

// Classes returns the element's class list.
func (sn *StyNode) Classes() []string {
	cls, ok := sn.Attr("class")
	if !ok {
		return nil
	}
	return strings.Fields(cls)
}

// HasClass is a predicate wether the element carries a given class.
func (sn *StyNode) HasClass(class string) bool {
	for _, c := range sn.Classes() {
		if c == class {
			return true
		}
	}
	return false
}

// SetAttr sets the value of an attribute of the underlying element,
// appending it if not present. Changing attributes invalidates the node's
// computed styles; the caller is responsible for triggering a re-cascade.
func (sn *StyNode) SetAttr(key, value string) {
	if sn.htmlNode == nil {
		return
	}
	for i, a := range sn.htmlNode.Attr {
		if a.Key == key {
			sn.htmlNode.Attr[i].Val = value
			return
		}
	}
	sn.htmlNode.Attr = append(sn.htmlNode.Attr, html.Attribute{Key: key, Val: value})
}

// ParentNode returns the parent styled node, or nil for the root.
func (sn *StyNode) ParentNode() *StyNode {
	if p := sn.Parent(); p != nil {
		return p.Payload
	}
	return nil
}
