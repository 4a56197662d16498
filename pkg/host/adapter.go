// Package host defines the boundary between the reconciler and the live tree
// it mutates.
//
// The reconciler never touches a concrete host API. Everything it does to the
// host tree goes through an Adapter: creating element and text nodes, setting
// attributes, styles, properties and listeners, and inserting or removing
// nodes. Adapters for a browser DOM, a terminal, or an in-memory document
// (see package htmlhost) can all sit behind the same interface.
package host

// Node is an opaque reference to a host-tree node. Adapters decide the
// concrete type; the reconciler only compares nodes for identity and passes
// them back to the adapter that created them. Values must be comparable.
type Node any

// Event is delivered to listeners bound through AddEventListener.
type Event struct {
	// Type is the event name without the "on" prefix (e.g., "click").
	Type string
	// Target is the node the event was dispatched on.
	Target Node
	// Payload carries adapter-specific data.
	Payload any
}

// Listener is the canonical listener signature. Adapters may also accept
// func() for listeners that ignore the event.
type Listener = func(Event)

// Adapter is the set of host primitives consumed by Mount and Patch.
type Adapter interface {
	// CreateElement creates a detached element. svg selects the SVG namespace.
	CreateElement(tag string, svg bool) Node
	// CreateText creates a detached text node.
	CreateText(text string) Node
	// SetText replaces the content of a text node.
	SetText(node Node, text string)

	SetAttribute(node Node, name, value string)
	RemoveAttribute(node Node, name string)
	SetStyle(node Node, name, value string)
	RemoveStyle(node Node, name string)
	SetProperty(node Node, name string, value any)
	RemoveProperty(node Node, name string)
	AddEventListener(node Node, event string, listener any)
	RemoveEventListener(node Node, event string, listener any)

	// AppendChild appends child to parent, detaching it from any previous parent.
	AppendChild(parent, child Node)
	// InsertBefore inserts child before ref in parent. A nil ref appends.
	// An attached child is moved.
	InsertBefore(parent, child, ref Node)
	// RemoveChild detaches child from parent.
	RemoveChild(parent, child Node)

	// Parent returns the node's parent, or nil when detached.
	Parent(node Node) Node
	// NextSibling returns the node following node in its parent, or nil.
	NextSibling(node Node) Node

	// Query resolves a container by selector.
	Query(selector string) (Node, error)
}

// Releaser is implemented by adapters that keep per-node state outside the
// host tree. Release is called once for every element the reconciler
// removes, after it has been detached; the node is not used again.
type Releaser interface {
	Release(node Node)
}
