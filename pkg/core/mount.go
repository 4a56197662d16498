package core

import (
	"github.com/go-drift/vdom/pkg/errors"
	"github.com/go-drift/vdom/pkg/host"
)

// mount materializes n as a fresh subtree in container, before ref when ref
// is non-nil and appended otherwise.
func (r *Renderer) mount(n *Node, container host.Node, svg bool, ref host.Node) {
	if n == nil {
		panic(errors.Invariant("core.mount", "nil node"))
	}
	n.checkShape("core.mount")
	r.logger.Debug().Str("kind", n.Kind.String()).Str("tag", n.tagName()).Str("key", n.Key).Msg("mount")

	switch n.Kind {
	case KindElementHTML, KindElementSVG:
		r.mountElement(n, container, svg, ref)
	case KindText:
		n.host = r.adapter.CreateText(n.Text)
		r.insert(container, n.host, ref)
	case KindFragment:
		r.mountFragment(n, container, svg, ref)
	case KindPortal:
		r.mountPortal(n, container, ref)
	case KindStatefulComponent:
		r.mountStateful(n, container, svg, ref)
	case KindFunctionalComponent:
		r.mountFunctional(n, container, svg, ref)
	default:
		panic(errors.Invariant("core.mount", "unknown kind %d", n.Kind))
	}
}

func (r *Renderer) mountElement(n *Node, container host.Node, svg bool, ref host.Node) {
	svg = svg || n.Kind == KindElementSVG
	el := r.adapter.CreateElement(n.Tag.(string), svg)
	n.host = el
	r.patchProps(el, nil, n.Props, svg)
	r.mountChildren(n.Children, el, svg, nil)
	r.insert(container, el, ref)
}

func (r *Renderer) mountChildren(children []*Node, container host.Node, svg bool, ref host.Node) {
	for _, c := range children {
		r.mount(c, container, svg, ref)
	}
}

func (r *Renderer) mountFragment(n *Node, container host.Node, svg bool, ref host.Node) {
	if n.Shape == ShapeNone {
		n.host = r.placeholder(container, ref)
		return
	}
	r.mountChildren(n.Children, container, svg, ref)
	n.host = n.Children[0].host
}

// mountPortal mounts the children into the portal's target and leaves an
// empty text node in container to mark the portal's logical position.
func (r *Renderer) mountPortal(n *Node, container host.Node, ref host.Node) {
	target := r.resolveTarget("core.mountPortal", n.Tag)
	n.target = target
	r.mountChildren(n.Children, target, false, nil)
	n.host = r.placeholder(container, ref)
}

func (r *Renderer) resolveTarget(op string, tag any) host.Node {
	switch t := tag.(type) {
	case nil:
		panic(errors.Invariant(op, "portal without target"))
	case string:
		target, err := r.adapter.Query(t)
		if err != nil {
			panic(errors.Adapter(op, err))
		}
		return target
	default:
		return t
	}
}

func (r *Renderer) placeholder(container, ref host.Node) host.Node {
	p := r.adapter.CreateText("")
	r.insert(container, p, ref)
	return p
}

func (r *Renderer) insert(container, node, ref host.Node) {
	if ref == nil {
		r.adapter.AppendChild(container, node)
		return
	}
	r.adapter.InsertBefore(container, node, ref)
}
