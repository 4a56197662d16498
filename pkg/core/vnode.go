package core

import (
	"fmt"

	"github.com/go-drift/vdom/pkg/errors"
	"github.com/go-drift/vdom/pkg/host"
)

// Kind is the closed set of descriptor variants.
type Kind uint8

const (
	KindElementHTML Kind = iota + 1
	KindElementSVG
	KindStatefulComponent
	KindFunctionalComponent
	KindText
	KindFragment
	KindPortal
)

// IsElement reports whether k is an HTML or SVG element.
func (k Kind) IsElement() bool {
	return k == KindElementHTML || k == KindElementSVG
}

// IsComponent reports whether k is a stateful or functional component.
func (k Kind) IsComponent() bool {
	return k == KindStatefulComponent || k == KindFunctionalComponent
}

// IsStatefulComponent reports whether k is a stateful component.
func (k Kind) IsStatefulComponent() bool {
	return k == KindStatefulComponent
}

func (k Kind) String() string {
	switch k {
	case KindElementHTML:
		return "element"
	case KindElementSVG:
		return "svg-element"
	case KindStatefulComponent:
		return "stateful"
	case KindFunctionalComponent:
		return "functional"
	case KindText:
		return "text"
	case KindFragment:
		return "fragment"
	case KindPortal:
		return "portal"
	default:
		return "invalid"
	}
}

// ChildrenShape records which form a descriptor's children take.
type ChildrenShape uint8

const (
	ShapeNone ChildrenShape = iota
	ShapeSingle
	ShapeMultiple
)

func (s ChildrenShape) String() string {
	switch s {
	case ShapeNone:
		return "none"
	case ShapeSingle:
		return "single"
	case ShapeMultiple:
		return "multiple"
	default:
		return "invalid"
	}
}

// Props maps attribute, style, class and event names to values.
type Props map[string]any

// Node describes one node of the desired tree.
//
// Nodes are immutable by convention once built. The reconciler owns the
// unexported fields: the host handle is assigned on mount and handed from
// the previous node to the next one on patch, so exactly one Node holds a
// given handle at a time.
type Node struct {
	Kind Kind
	// Tag is the element name, the *ComponentDef, or the portal target
	// (selector string or host.Node). Unused for text and fragments.
	Tag any
	// Props is nil when no props were given.
	Props Props
	// Key identifies the node among its siblings. Always set for members of
	// a multi-child list.
	Key string
	// Text is the content of a text node.
	Text string
	// Children holds zero, one or several children according to Shape.
	Children []*Node
	Shape    ChildrenShape

	host       host.Node
	target     host.Node
	stateful   *statefulInstance
	functional *functionalInstance

	// Raw func tags. The *ComponentDef in Tag only carries their identity.
	create func() Component
	render func(Props) *Node
}

// Host returns the node's host handle: the element or text node it owns,
// or the anchor it borrows for fragments, portals and components. Nil until
// mounted and after the handle has moved to a newer node.
func (n *Node) Host() host.Node {
	return n.host
}

// Child returns the only child of a single-child node, or nil.
func (n *Node) Child() *Node {
	if n.Shape != ShapeSingle {
		return nil
	}
	return n.Children[0]
}

// Component returns the live component of a mounted stateful node, or nil.
func (n *Node) Component() Component {
	if n.stateful == nil {
		return nil
	}
	return n.stateful.component
}

// Rendered returns the tree a mounted component node last produced, or nil.
func (n *Node) Rendered() *Node {
	switch {
	case n.stateful != nil:
		return n.stateful.rendered
	case n.functional != nil:
		return n.functional.rendered
	default:
		return nil
	}
}

// Walk visits n and its descendants depth-first, descending into the output
// of mounted components. Returning false from fn skips the node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	if out := n.Rendered(); out != nil {
		out.Walk(fn)
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

func (n *Node) String() string {
	if n.Kind == KindText {
		return fmt.Sprintf("text(%q)", n.Text)
	}
	if n.Key != "" {
		return fmt.Sprintf("%s(%s key=%s)", n.Kind, n.tagName(), n.Key)
	}
	return fmt.Sprintf("%s(%s)", n.Kind, n.tagName())
}

func (n *Node) tagName() string {
	switch n.Kind {
	case KindElementHTML, KindElementSVG:
		s, _ := n.Tag.(string)
		return s
	case KindStatefulComponent, KindFunctionalComponent:
		if def, ok := n.Tag.(*ComponentDef); ok {
			return def.Name
		}
		return "?"
	case KindPortal:
		return fmt.Sprintf("%v", n.Tag)
	case KindFragment:
		return "Fragment"
	default:
		return ""
	}
}

// checkShape panics with an invariant error when Shape disagrees with Children.
func (n *Node) checkShape(op string) {
	ok := false
	switch n.Shape {
	case ShapeNone:
		ok = len(n.Children) == 0
	case ShapeSingle:
		ok = len(n.Children) == 1 && n.Children[0] != nil
	case ShapeMultiple:
		ok = len(n.Children) > 1
	}
	if !ok {
		panic(errors.Invariant(op, "%s has shape %s but %d children", n, n.Shape, len(n.Children)))
	}
	if n.Kind == KindText && n.Shape != ShapeNone {
		panic(errors.Invariant(op, "text node with children"))
	}
}
