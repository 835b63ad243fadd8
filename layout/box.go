package layout

import (
	"errors"

	"github.com/npillmayer/briq/dom/style/css"
	"github.com/npillmayer/briq/dom/styledtree"
	"github.com/npillmayer/briq/tree"
	"github.com/npillmayer/tyse/core/dimen"
)

// BoxKind selects the layout behavior of a box.
type BoxKind uint8

// Box variants. Anonymous boxes are synthesized during box tree
// construction and have no styled node of their own.
const (
	BlockBox BoxKind = iota
	InlineBox
	InlineBlockBox
	AnonymousBox
)

var boxKindNames = map[BoxKind]string{
	BlockBox:       "block",
	InlineBox:      "inline",
	InlineBlockBox: "inline-block",
	AnonymousBox:   "anonymous",
}

func (k BoxKind) String() string {
	return boxKindNames[k]
}

// A LayoutBox is a node of the box tree. After a call to Layouter.Layout
// it carries the computed box model geometry.
type LayoutBox struct {
	tree.Node[*LayoutBox] // boxes are nodes of a box tree
	Kind                  BoxKind
	Styled                *styledtree.StyNode // nil for anonymous boxes
	Dimensions            Dimensions
	lineAdvance           dimen.DU // width of the inline run inside, for shrink-to-fit
}

func newBox(kind BoxKind, sn *styledtree.StyNode) *LayoutBox {
	box := &LayoutBox{Kind: kind, Styled: sn}
	box.Payload = box // Payload will always reference the box itself
	return box
}

// BoxNode gets the layout box from a generic tree node.
func BoxNode(n *tree.Node[*LayoutBox]) *LayoutBox {
	if n == nil {
		return nil
	}
	return n.Payload
}

// IsAnonymous is true for boxes without a styled node.
func (box *LayoutBox) IsAnonymous() bool {
	return box.Kind == AnonymousBox
}

// IsText is true for boxes reflecting a text fragment.
func (box *LayoutBox) IsText() bool {
	return box.Styled != nil && box.Styled.IsText()
}

// Text returns the text content for text boxes, otherwise "".
func (box *LayoutBox) Text() string {
	if !box.IsText() {
		return ""
	}
	return box.Styled.HTMLNode().Data
}

// isBlockLevel is true for boxes participating in vertical block flow.
func (box *LayoutBox) isBlockLevel() bool {
	return box.Kind == BlockBox || box.Kind == AnonymousBox
}

// NearestStyled returns the styled node of this box, or, for anonymous
// boxes, of the nearest enclosing box with a styled node.
func (box *LayoutBox) NearestStyled() *styledtree.StyNode {
	for b := box; b != nil; b = BoxNode(b.Parent()) {
		if b.Styled != nil {
			return b.Styled
		}
	}
	return nil
}

// ChildBox returns the child box at index i, or nil.
func (box *LayoutBox) ChildBox(i int) *LayoutBox {
	ch, ok := box.Child(i)
	if !ok {
		return nil
	}
	return ch.Payload
}

// --- Box tree construction ------------------------------------------------

// ErrNoBoxForRoot flags a styled tree whose root produces no box, e.g.
// because it is set to display: none.
var ErrNoBoxForRoot = errors.New("styled tree root produces no box")

// BuildBoxTree constructs a box tree for a styled tree. Nodes with
// display mode `none` are omitted together with their subtrees. Box
// variants follow the nodes' display modes; anonymous boxes are inserted
// so that no block box directly contains an inline box and vice versa.
func BuildBoxTree(styledRoot *tree.Node[*styledtree.StyNode]) (*LayoutBox, error) {
	if styledRoot == nil {
		return nil, errors.New("cannot build box tree for void styled tree")
	}
	box := buildBox(styledtree.Node(styledRoot))
	if box == nil {
		return nil, ErrNoBoxForRoot
	}
	return box, nil
}

func buildBox(sn *styledtree.StyNode) *LayoutBox {
	if sn == nil {
		return nil
	}
	var box *LayoutBox
	if sn.IsText() {
		box = newBox(InlineBox, sn)
	} else {
		mode := css.DisplayModeForStyledNode(sn)
		switch {
		case mode.Contains(css.DisplayNone):
			return nil
		case mode.IsInlineLevel() && mode.Contains(css.InnerBlockMode):
			box = newBox(InlineBlockBox, sn)
		case mode.IsInlineLevel():
			box = newBox(InlineBox, sn)
		default:
			box = newBox(BlockBox, sn)
		}
	}
	for _, ch := range sn.Children(true) {
		if childBox := buildBox(styledtree.Node(ch)); childBox != nil {
			box.AddChild(&childBox.Node)
		}
	}
	wrapMixedChildren(box)
	return box
}

// wrapMixedChildren enforces the nesting invariant: under a block-level
// container, maximal runs of inline-level children are wrapped in one
// anonymous box each; under an inline container the same happens to runs
// of block-level children.
func wrapMixedChildren(box *LayoutBox) {
	children := box.Children(true)
	if len(children) == 0 {
		return
	}
	wrapBlocks := box.Kind == InlineBox // inline containers wrap stray blocks
	needsWrap := false
	for _, ch := range children {
		if BoxNode(ch).isBlockLevel() != wrapBlocks {
			continue
		}
		needsWrap = true
		break
	}
	if !needsWrap {
		return
	}
	var newChildren []*tree.Node[*LayoutBox]
	var run *LayoutBox
	for _, ch := range children {
		ch.Isolate()
		if BoxNode(ch).isBlockLevel() == wrapBlocks {
			if run == nil {
				run = newBox(AnonymousBox, nil)
				newChildren = append(newChildren, &run.Node)
			}
			run.AddChild(ch)
		} else {
			run = nil
			newChildren = append(newChildren, ch)
		}
	}
	for _, ch := range newChildren {
		box.AddChild(ch)
	}
}

// --- Queries ---------------------------------------------------------------

// HitTest returns the deepest box whose border box contains the given
// point, or nil if no box contains it. On overlap, boxes later in the
// tree take priority, matching visual stacking order.
func (box *LayoutBox) HitTest(x, y dimen.DU) *LayoutBox {
	children := box.Children(true)
	for i := len(children) - 1; i >= 0; i-- {
		if hit := BoxNode(children[i]).HitTest(x, y); hit != nil {
			return hit
		}
	}
	if box.Dimensions.BorderBox().Contains(x, y) {
		return box
	}
	return nil
}

// BoxForStyledNode finds the box a styled node produced, or nil if the
// node is not part of the box tree (e.g. display: none).
func (box *LayoutBox) BoxForStyledNode(sn *styledtree.StyNode) *LayoutBox {
	if sn == nil {
		return nil
	}
	found := tree.Find(&box.Node, func(n *tree.Node[*LayoutBox]) bool {
		return n.Payload.Styled == sn
	})
	return BoxNode(found)
}
