package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// The styling and layout pipelines are bounded synchronous traversals of
// finite trees, so we provide plain recursive walks rather than a
// concurrent pipes&filters pipeline.

// Visitor is a callback for tree walks. Returning false prunes the walk
// below the visited node.
type Visitor[T comparable] func(node *Node[T]) bool

// Walk visits node and all of its descendants in depth-first pre-order
// (parents before children, siblings left to right).
func Walk[T comparable](node *Node[T], visit Visitor[T]) {
	if node == nil {
		return
	}
	if !visit(node) {
		return
	}
	for _, ch := range node.Children(true) {
		Walk(ch, visit)
	}
}

// WalkBottomUp visits all descendants of node before node itself
// (children first, siblings left to right).
func WalkBottomUp[T comparable](node *Node[T], visit func(node *Node[T])) {
	if node == nil {
		return
	}
	for _, ch := range node.Children(true) {
		WalkBottomUp(ch, visit)
	}
	visit(node)
}

// AncestorChain returns the ancestors of node, starting with its parent
// and ending with the root of the tree.
func AncestorChain[T comparable](node *Node[T]) []*Node[T] {
	var chain []*Node[T]
	for p := node.Parent(); p != nil; p = p.Parent() {
		chain = append(chain, p)
	}
	return chain
}

// Find returns the first node (in pre-order) for which predicate returns
// true, or nil.
func Find[T comparable](node *Node[T], predicate func(*Node[T]) bool) *Node[T] {
	var found *Node[T]
	Walk(node, func(n *Node[T]) bool {
		if found != nil {
			return false
		}
		if predicate(n) {
			found = n
			return false
		}
		return true
	})
	return found
}
