package core

import (
	"fmt"
	"strconv"

	"github.com/go-drift/vdom/pkg/errors"
	"github.com/go-drift/vdom/pkg/host"
)

// Marker is the type of the Fragment and Portal tags.
type Marker struct {
	name string
}

func (m *Marker) String() string { return m.name }

var (
	// Fragment groups children without a wrapping element.
	Fragment = &Marker{name: "Fragment"}
	// Portal mounts its children into the container named by props["target"].
	Portal = &Marker{name: "Portal"}
)

// Reserved prop names consumed by the builder.
const (
	PropKey    = "key"
	PropTarget = "target"
)

// H builds a node like New and panics on error. Children are passed
// variadically; a single argument may itself be a slice.
//
//	core.H("ul", nil,
//	    core.H("li", core.Props{"key": "a"}, "first"),
//	    core.H("li", core.Props{"key": "b"}, "second"),
//	)
func H(tag any, props Props, children ...any) *Node {
	var c any
	switch len(children) {
	case 0:
	case 1:
		c = children[0]
	default:
		c = children
	}
	n, err := New(tag, props, c)
	if err != nil {
		panic(err)
	}
	return n
}

// TextNode builds a text descriptor.
func TextNode(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// New classifies tag and normalizes children into a descriptor.
//
// tag is an element name, Fragment, Portal, a *ComponentDef, a
// func() Component (stateful) or a func(Props) *Node (functional).
// children is nil, a *Node, a []*Node, a []any, or a scalar which becomes a
// text child. Empty sequences become no children, one-element sequences a
// single child, and members of longer sequences get positional keys when
// they carry none.
func New(tag any, props Props, children any) (*Node, error) {
	const op = "core.New"
	n := &Node{Tag: tag}

	switch t := tag.(type) {
	case string:
		if t == "" {
			return nil, errors.InvalidDescriptor(op, "empty element tag")
		}
		n.Kind = KindElementHTML
		if t == "svg" {
			n.Kind = KindElementSVG
		}
	case *Marker:
		switch t {
		case Fragment:
			n.Kind = KindFragment
			n.Tag = nil
		case Portal:
			target, ok := props[PropTarget]
			if !ok || target == nil || target == "" {
				return nil, errors.InvalidDescriptor(op, "portal without target")
			}
			n.Kind = KindPortal
			n.Tag = host.Node(target)
		default:
			return nil, errors.InvalidDescriptor(op, "unknown marker %v", t)
		}
	case *ComponentDef:
		if t == nil {
			return nil, errors.InvalidDescriptor(op, "nil component definition")
		}
		n.Kind = t.kind
	case func() Component:
		if t == nil {
			return nil, errors.InvalidDescriptor(op, "nil component constructor")
		}
		def := defForFunc(t, KindStatefulComponent)
		n.Kind, n.Tag, n.create = def.kind, def, t
	case func(Props) *Node:
		if t == nil {
			return nil, errors.InvalidDescriptor(op, "nil render function")
		}
		def := defForFunc(t, KindFunctionalComponent)
		n.Kind, n.Tag, n.render = def.kind, def, t
	default:
		return nil, errors.InvalidDescriptor(op, "unsupported tag %T", tag)
	}

	key, props, err := splitReserved(props)
	if err != nil {
		return nil, err
	}
	n.Key = key
	n.Props = props

	n.Children, n.Shape, err = normalizeChildren(op, children)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// splitReserved strips key and target from props, copying only when needed.
func splitReserved(props Props) (string, Props, error) {
	rawKey, hasKey := props[PropKey]
	_, hasTarget := props[PropTarget]
	if !hasKey && !hasTarget {
		if len(props) == 0 {
			return "", nil, nil
		}
		return "", props, nil
	}
	var key string
	if hasKey && rawKey != nil {
		s, ok := scalarString(rawKey)
		if !ok {
			return "", nil, errors.InvalidDescriptor("core.New", "key of type %T", rawKey)
		}
		key = s
	}
	out := make(Props, len(props))
	for k, v := range props {
		if k == PropKey || k == PropTarget {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		out = nil
	}
	return key, out, nil
}

func normalizeChildren(op string, children any) ([]*Node, ChildrenShape, error) {
	var list []*Node
	switch c := children.(type) {
	case nil:
	case *Node:
		if c != nil {
			list = []*Node{c}
		}
	case []*Node:
		for _, child := range c {
			if child != nil {
				list = append(list, child)
			}
		}
	case []any:
		for _, raw := range c {
			child, err := toNode(op, raw)
			if err != nil {
				return nil, ShapeNone, err
			}
			if child != nil {
				list = append(list, child)
			}
		}
	default:
		child, err := toNode(op, c)
		if err != nil {
			return nil, ShapeNone, err
		}
		list = []*Node{child}
	}

	switch len(list) {
	case 0:
		return nil, ShapeNone, nil
	case 1:
		return list, ShapeSingle, nil
	}

	seen := make(map[string]struct{}, len(list))
	for i, child := range list {
		if child.Key == "" {
			// Copy so the caller's node keeps its empty key and can be reused.
			keyed := *child
			keyed.Key = "|" + strconv.Itoa(i)
			list[i] = &keyed
			child = list[i]
		}
		if _, dup := seen[child.Key]; dup {
			return nil, ShapeNone, errors.DuplicateKey(op, child.Key)
		}
		seen[child.Key] = struct{}{}
	}
	return list, ShapeMultiple, nil
}

// toNode converts a child value; nil yields nil.
func toNode(op string, v any) (*Node, error) {
	if v == nil {
		return nil, nil
	}
	if n, ok := v.(*Node); ok {
		return n, nil
	}
	if s, ok := scalarString(v); ok {
		return TextNode(s), nil
	}
	return nil, errors.InvalidDescriptor(op, "child of type %T", v)
}

func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case fmt.Stringer:
		return s.String(), true
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(s), true
	default:
		return "", false
	}
}
