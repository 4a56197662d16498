package core

import (
	"github.com/go-drift/vdom/pkg/errors"
	"github.com/go-drift/vdom/pkg/host"
)

// reconcileChildren dispatches on the (prev, next) shape pair. end is the
// host node following the child list in container, nil when the list runs
// to the container's end; new children are inserted before it.
//
// Transitions between single and multiple never cross-match: the old set is
// removed and the new set mounted.
func (r *Renderer) reconcileChildren(prevShape, nextShape ChildrenShape, prev, next []*Node, container, end host.Node, svg bool) {
	switch prevShape {
	case ShapeNone:
		if nextShape != ShapeNone {
			r.mountChildren(next, container, svg, end)
		}
	case ShapeSingle:
		switch nextShape {
		case ShapeSingle:
			r.patch(prev[0], next[0], container, svg)
		case ShapeNone:
			r.remove(prev[0], container, true)
		case ShapeMultiple:
			r.remove(prev[0], container, true)
			r.mountChildren(next, container, svg, end)
		}
	case ShapeMultiple:
		switch nextShape {
		case ShapeMultiple:
			r.patchKeyedChildren(prev, next, container, end, svg)
		default:
			for _, c := range prev {
				r.remove(c, container, true)
			}
			r.mountChildren(next, container, svg, end)
		}
	default:
		panic(errors.Invariant("core.reconcileChildren", "unknown shape %d", prevShape))
	}
}
