package event

import (
	"github.com/npillmayer/briq/dom/styledtree"
	"github.com/npillmayer/briq/layout"
	"github.com/npillmayer/tyse/core/dimen"
)

// Kind is the type of an input event.
type Kind uint8

// Input event kinds.
const (
	PointerMove Kind = iota
	PointerDown
	PointerUp
	KeyDown
	KeyUp
)

var kindNames = map[Kind]string{
	PointerMove: "pointer-move",
	PointerDown: "pointer-down",
	PointerUp:   "pointer-up",
	KeyDown:     "key-down",
	KeyUp:       "key-up",
}

func (k Kind) String() string {
	return kindNames[k]
}

// IsPointer is true for events carrying a position.
func (k Kind) IsPointer() bool {
	return k == PointerMove || k == PointerDown || k == PointerUp
}

// Phase is the propagation phase an event is dispatched in.
type Phase uint8

// Propagation phases. Capture runs from the root down to the target,
// bubble from the target back up to the root.
const (
	CapturePhase Phase = iota + 1
	BubblePhase
)

// Point is a position in viewport coordinates.
type Point struct {
	X, Y dimen.DU
}

// An Event is delivered to every handler bound along the propagation
// path of a dispatched input event.
type Event struct {
	Kind        Kind
	Phase       Phase
	Point       Point               // pointer position, for pointer events
	Key         string              // key identifier, for key events
	Target      *styledtree.StyNode // the hit-test result resp. focus holder
	CurrentNode *styledtree.StyNode // the node whose binding is being invoked
	consumed    bool
}

// Consume marks the event as consumed, which stops further propagation
// in the current phase. It does not cancel the opposite phase.
func (e *Event) Consume() {
	e.consumed = true
}

// Consumed returns wether a handler marked the event as consumed.
func (e *Event) Consumed() bool {
	return e.consumed
}

// Handler is a callback bound to a node for one event kind.
type Handler func(*Event)

type binding struct {
	kind    Kind
	phase   Phase
	handler Handler
}

// A Dispatcher hit-tests input events against the current layout and
// routes them to bound handlers. It tracks hover, focus and active
// pseudo-states across invocations; pseudo-state transitions are
// reported through the invalidation callback so that styling and layout
// can be recomputed for the affected subtrees.
//
// A Dispatcher is single-threaded, like the rest of the pipeline.
type Dispatcher struct {
	bindings   map[*styledtree.StyNode][]binding
	boxes      func() *layout.LayoutBox   // supplies the current laid-out box tree
	invalidate func(*styledtree.StyNode)  // called after a pseudo-state change
	hovered    *styledtree.StyNode
	focused    *styledtree.StyNode
}

// NewDispatcher creates a dispatcher. boxes supplies the most recent
// laid-out box tree on every call; invalidate is called whenever a
// node's pseudo-state changed (it may be nil).
func NewDispatcher(boxes func() *layout.LayoutBox, invalidate func(*styledtree.StyNode)) *Dispatcher {
	return &Dispatcher{
		bindings:   make(map[*styledtree.StyNode][]binding),
		boxes:      boxes,
		invalidate: invalidate,
	}
}

// Bind registers a handler for one event kind on a node, for the given
// propagation phase.
func (d *Dispatcher) Bind(sn *styledtree.StyNode, kind Kind, phase Phase, handler Handler) {
	if sn == nil || handler == nil {
		return
	}
	d.bindings[sn] = append(d.bindings[sn], binding{kind: kind, phase: phase, handler: handler})
}

// Focused returns the node currently holding focus, or nil.
func (d *Dispatcher) Focused() *styledtree.StyNode {
	return d.focused
}

// Hovered returns the node currently under the pointer, or nil.
func (d *Dispatcher) Hovered() *styledtree.StyNode {
	return d.hovered
}

// Dispatch routes one input event. Pointer events are hit-tested against
// the current layout; key events go to the focused node. Handlers run
// synchronously, capture phase first. Dispatch returns true if any
// handler consumed the event.
//
// A pointer position outside every box is not an error: pseudo-states
// are still updated (the pointer left the hovered node), but no handlers
// run.
func (d *Dispatcher) Dispatch(kind Kind, at Point, key string) bool {
	target := d.findTarget(kind, at)
	if kind.IsPointer() {
		d.updatePointerStates(kind, target)
	}
	if target == nil {
		tracer().Debugf("event %s has no target", kind)
		return false
	}
	event := &Event{Kind: kind, Point: at, Key: key, Target: target}
	path := ancestorPath(target)
	event.Phase = CapturePhase
	for i := len(path) - 1; i >= 0 && !event.consumed; i-- { // root first
		d.invokeBindings(path[i], event)
	}
	consumed := event.consumed
	event.consumed = false
	event.Phase = BubblePhase
	for i := 0; i < len(path) && !event.consumed; i++ { // target first
		d.invokeBindings(path[i], event)
	}
	return consumed || event.consumed
}

// findTarget resolves the node an event is aimed at. Hits on anonymous
// boxes resolve to the nearest enclosing node.
func (d *Dispatcher) findTarget(kind Kind, at Point) *styledtree.StyNode {
	if !kind.IsPointer() {
		return d.focused
	}
	root := d.boxes()
	if root == nil {
		return nil
	}
	hit := root.HitTest(at.X, at.Y)
	if hit == nil {
		return nil
	}
	return hit.NearestStyled()
}

// updatePointerStates maintains the hover, focus and active pseudo-states
// across dispatcher invocations, comparing the previous and current
// hit-test targets.
func (d *Dispatcher) updatePointerStates(kind Kind, target *styledtree.StyNode) {
	if target != d.hovered {
		d.setPseudo(d.hovered, styledtree.PseudoHover, false)
		d.setPseudo(target, styledtree.PseudoHover, true)
		d.hovered = target
	}
	switch kind {
	case PointerDown:
		d.setPseudo(target, styledtree.PseudoActive, true)
		if target != d.focused {
			d.setPseudo(d.focused, styledtree.PseudoFocus, false)
			d.setPseudo(target, styledtree.PseudoFocus, true)
			d.focused = target
		}
	case PointerUp:
		d.setPseudo(target, styledtree.PseudoActive, false)
	}
}

// setPseudo flips a pseudo-class flag and triggers invalidation if the
// flag actually changed.
func (d *Dispatcher) setPseudo(sn *styledtree.StyNode, flag styledtree.PseudoClasses, on bool) {
	if sn == nil {
		return
	}
	if !sn.SetPseudo(flag, on) {
		return
	}
	if d.invalidate != nil {
		d.invalidate(sn)
	}
}

func (d *Dispatcher) invokeBindings(sn *styledtree.StyNode, event *Event) {
	event.CurrentNode = sn
	for _, b := range d.bindings[sn] {
		if b.kind != event.Kind || b.phase != event.Phase {
			continue
		}
		b.handler(event)
		if event.consumed {
			return
		}
	}
}

// ancestorPath collects a node and its ancestors, target first.
func ancestorPath(sn *styledtree.StyNode) []*styledtree.StyNode {
	var path []*styledtree.StyNode
	for n := sn; n != nil; n = n.ParentNode() {
		path = append(path, n)
	}
	return path
}
