package core

import (
	"reflect"

	"github.com/go-drift/vdom/pkg/errors"
	"github.com/go-drift/vdom/pkg/host"
)

// patch updates the host tree materialized for prev so that it matches next.
// On return next owns the host handles prev held.
func (r *Renderer) patch(prev, next *Node, container host.Node, svg bool) {
	if prev == next {
		return
	}
	const op = "core.patch"
	if prev == nil || next == nil {
		panic(errors.Invariant(op, "nil node"))
	}
	if prev.host == nil {
		panic(errors.Invariant(op, "%s has no host handle", prev))
	}
	prev.checkShape(op)
	next.checkShape(op)

	if prev.Kind != next.Kind {
		r.replace(prev, next, container, svg)
		return
	}
	switch {
	case next.Kind.IsElement():
		r.patchElement(prev, next, container, svg)
	case next.Kind == KindText:
		next.host = prev.host
		if prev.Text != next.Text {
			r.adapter.SetText(next.host, next.Text)
		}
	case next.Kind == KindFragment:
		r.patchFragment(prev, next, container, svg)
	case next.Kind == KindPortal:
		r.patchPortal(prev, next)
	case next.Kind.IsComponent():
		r.patchComponent(prev, next, container, svg)
	default:
		panic(errors.Invariant(op, "unknown kind %d", next.Kind))
	}
	prev.host = nil
}

// replace removes prev and mounts next where prev was.
func (r *Renderer) replace(prev, next *Node, container host.Node, svg bool) {
	r.logger.Debug().Str("prev", prev.String()).Str("next", next.String()).Msg("replace")
	ref := r.adapter.NextSibling(r.lastHost(prev))
	r.remove(prev, container, true)
	r.mount(next, container, svg, ref)
}

func (r *Renderer) patchElement(prev, next *Node, container host.Node, svg bool) {
	if prev.Tag != next.Tag {
		r.replace(prev, next, container, svg)
		return
	}
	el := prev.host
	next.host = el
	svg = svg || next.Kind == KindElementSVG
	r.patchProps(el, prev.Props, next.Props, svg)
	r.reconcileChildren(prev.Shape, next.Shape, prev.Children, next.Children, el, nil, svg)
}

// patchFragment reconciles the fragment's children in place among container's
// other children and recomputes the borrowed anchor.
func (r *Renderer) patchFragment(prev, next *Node, container host.Node, svg bool) {
	end := r.adapter.NextSibling(r.lastHost(prev))
	switch {
	case prev.Shape == ShapeNone && next.Shape == ShapeNone:
		next.host = prev.host
	case prev.Shape == ShapeNone:
		placeholder := prev.host
		r.mountChildren(next.Children, container, svg, placeholder)
		r.adapter.RemoveChild(container, placeholder)
		next.host = next.Children[0].host
	case next.Shape == ShapeNone:
		for _, c := range prev.Children {
			r.remove(c, container, true)
		}
		next.host = r.placeholder(container, end)
	default:
		r.reconcileChildren(prev.Shape, next.Shape, prev.Children, next.Children, container, end, svg)
		next.host = next.Children[0].host
	}
}

// patchPortal reconciles children inside the previous target, then relocates
// them when the target changed. The placeholder anchor is reused.
func (r *Renderer) patchPortal(prev, next *Node) {
	target := prev.target
	r.reconcileChildren(prev.Shape, next.Shape, prev.Children, next.Children, target, nil, false)
	next.host = prev.host
	if !sameIdentity(prev.Tag, next.Tag) {
		target = r.resolveTarget("core.patchPortal", next.Tag)
		for _, c := range next.Children {
			r.move(c, target, nil)
		}
	}
	next.target = target
	prev.target = nil
}

// remove tears down n. With detach set its top-level host nodes are removed
// from container; nested content only needs component hooks run and portal
// content taken out of its target, since it leaves with its ancestor.
func (r *Renderer) remove(n *Node, container host.Node, detach bool) {
	if detach {
		r.logger.Debug().Str("kind", n.Kind.String()).Str("tag", n.tagName()).Str("key", n.Key).Msg("remove")
	}
	switch n.Kind {
	case KindElementHTML, KindElementSVG:
		if detach {
			r.adapter.RemoveChild(container, n.host)
		}
		for _, c := range n.Children {
			r.remove(c, n.host, false)
		}
		delete(r.proxies, n.host)
		if rel, ok := r.adapter.(host.Releaser); ok {
			rel.Release(n.host)
		}
	case KindText:
		if detach {
			r.adapter.RemoveChild(container, n.host)
		}
	case KindFragment:
		if n.Shape == ShapeNone {
			if detach {
				r.adapter.RemoveChild(container, n.host)
			}
			return
		}
		for _, c := range n.Children {
			r.remove(c, container, detach)
		}
	case KindPortal:
		for _, c := range n.Children {
			r.remove(c, n.target, true)
		}
		if detach {
			r.adapter.RemoveChild(container, n.host)
		}
	case KindStatefulComponent:
		inst := n.stateful
		if inst == nil {
			panic(errors.Invariant("core.remove", "%s has no instance", n))
		}
		r.remove(inst.rendered, container, detach)
		inst.mounted = false
		inst.unmounted = true
		if h, ok := inst.component.(interface{ Unmounted() }); ok {
			h.Unmounted()
		}
	case KindFunctionalComponent:
		if n.functional == nil {
			panic(errors.Invariant("core.remove", "%s has no update record", n))
		}
		r.remove(n.functional.rendered, container, detach)
	}
}

// move re-inserts every top-level host node of n before ref.
func (r *Renderer) move(n *Node, container, ref host.Node) {
	r.logger.Debug().Str("kind", n.Kind.String()).Str("key", n.Key).Msg("move")
	switch n.Kind {
	case KindFragment:
		if n.Shape == ShapeNone {
			r.insert(container, n.host, ref)
			return
		}
		for _, c := range n.Children {
			r.move(c, container, ref)
		}
	case KindStatefulComponent, KindFunctionalComponent:
		r.move(n.Rendered(), container, ref)
	default:
		r.insert(container, n.host, ref)
	}
}

// lastHost returns the last top-level host node n occupies in its container.
func (r *Renderer) lastHost(n *Node) host.Node {
	switch n.Kind {
	case KindFragment:
		if n.Shape == ShapeNone {
			return n.host
		}
		return r.lastHost(n.Children[len(n.Children)-1])
	case KindStatefulComponent, KindFunctionalComponent:
		if out := n.Rendered(); out != nil {
			return r.lastHost(out)
		}
		return n.host
	default:
		return n.host
	}
}

// sameIdentity compares portal targets without panicking on uncomparable values.
func sameIdentity(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
