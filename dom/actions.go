package dom

import (
	"github.com/npillmayer/briq/dom/styledtree"
	"github.com/npillmayer/briq/tree"
	"golang.org/x/net/html"
)

// NodeIsText is a predicate to match text-nodes of a DOM.
// It is intended to be used with tree.Walk and tree.Find.
var NodeIsText = func(n *tree.Node[*styledtree.StyNode]) bool {
	return n.Payload != nil && n.Payload.IsText()
}

// NodeIsElement is a predicate to match element-nodes of a DOM.
// It is intended to be used with tree.Walk and tree.Find.
var NodeIsElement = func(n *tree.Node[*styledtree.StyNode]) bool {
	return n.Payload != nil && n.Payload.HTMLNode() != nil &&
		n.Payload.HTMLNode().Type == html.ElementNode
}
