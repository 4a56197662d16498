// Package core provides the descriptor model and the reconciler that keeps a
// host tree in sync with it.
//
// A Node is a lightweight description of part of the desired tree. Nodes are
// built with New or H and rendered into a host container by a Renderer:
//
//	r := core.NewRenderer(adapter)
//	err := r.Render(core.H("ul", nil,
//	    core.H("li", core.Props{"key": "a"}, "first"),
//	    core.H("li", core.Props{"key": "b"}, "second"),
//	), container)
//
// Rendering a new tree into the same container patches the previous one with
// the fewest host operations it can find; rendering nil removes it.
//
// # Node Kinds
//
// Elements map one-to-one onto host elements; "svg" and its descendants are
// created in the SVG namespace. Text nodes map onto host text nodes.
// Fragments contribute their children directly to the parent. Portals mount
// their children into another container while keeping their logical place.
// Components produce a subtree from props.
//
// # Keys
//
// Members of a multi-child list are identified by Key. A child without an
// explicit key is given one from its position, so only explicitly keyed
// children keep their identity across reorders. When a keyed list changes,
// matched children are patched in place and only those outside the longest
// run that kept its relative order are moved.
//
// # Components
//
// Stateful components embed ComponentBase and implement Render:
//
//	type counter struct {
//	    core.ComponentBase
//	    count int
//	}
//
//	func (c *counter) Render() *core.Node {
//	    return core.H("button", core.Props{"onclick": func() {
//	        c.SetState(func() { c.count++ })
//	    }}, c.count)
//	}
//
//	var Counter = core.Stateful("Counter", func() core.Component { return &counter{} })
//
// The instance survives patches for as long as the same definition occupies
// the same position. SetState re-renders and patches only that component.
//
// Functional components are plain render functions:
//
//	var Label = core.Functional("Label", func(p core.Props) *core.Node {
//	    return core.H("span", nil, p["text"])
//	})
//
// # Errors
//
// Invalid input and structural faults surface from New, Render and SetState
// as *errors.Error values; see package errors for the kinds.
package core
