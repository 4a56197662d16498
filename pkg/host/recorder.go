package host

import (
	"fmt"

	"github.com/rs/zerolog"
)

// OpKind identifies a recorded adapter call.
type OpKind int

const (
	OpCreateElement OpKind = iota
	OpCreateText
	OpSetText
	OpSetAttribute
	OpRemoveAttribute
	OpSetStyle
	OpRemoveStyle
	OpSetProperty
	OpRemoveProperty
	OpAddListener
	OpRemoveListener
	// OpInsert attaches a detached node.
	OpInsert
	// OpMove re-positions a node that already had a parent.
	OpMove
	OpRemove
	OpQuery
)

var opNames = [...]string{
	OpCreateElement:   "create-element",
	OpCreateText:      "create-text",
	OpSetText:         "set-text",
	OpSetAttribute:    "set-attribute",
	OpRemoveAttribute: "remove-attribute",
	OpSetStyle:        "set-style",
	OpRemoveStyle:     "remove-style",
	OpSetProperty:     "set-property",
	OpRemoveProperty:  "remove-property",
	OpAddListener:     "add-listener",
	OpRemoveListener:  "remove-listener",
	OpInsert:          "insert",
	OpMove:            "move",
	OpRemove:          "remove",
	OpQuery:           "query",
}

func (k OpKind) String() string {
	if int(k) >= 0 && int(k) < len(opNames) {
		return opNames[k]
	}
	return "unknown"
}

// Op is one recorded adapter call.
type Op struct {
	Kind   OpKind
	Node   Node
	Parent Node
	Ref    Node
	Name   string
	Value  string
}

// Describer is implemented by adapters that can render a node for traces.
type Describer interface {
	Describe(node Node) string
}

// String renders the op using plain formatting.
func (o Op) String() string {
	return o.Format(nil)
}

// Format renders the op, using d to describe nodes when non-nil.
func (o Op) Format(d Describer) string {
	describe := func(n Node) string {
		if n == nil {
			return "<nil>"
		}
		if d != nil {
			return d.Describe(n)
		}
		return fmt.Sprintf("%v", n)
	}
	switch o.Kind {
	case OpCreateElement, OpCreateText, OpQuery:
		return fmt.Sprintf("%s %s", o.Kind, o.Name)
	case OpInsert, OpMove:
		return fmt.Sprintf("%s %s into %s before %s", o.Kind, describe(o.Node), describe(o.Parent), describe(o.Ref))
	case OpRemove:
		return fmt.Sprintf("%s %s from %s", o.Kind, describe(o.Node), describe(o.Parent))
	case OpSetText:
		return fmt.Sprintf("%s %q", o.Kind, o.Value)
	default:
		if o.Value != "" {
			return fmt.Sprintf("%s %s %s=%s", o.Kind, describe(o.Node), o.Name, o.Value)
		}
		return fmt.Sprintf("%s %s %s", o.Kind, describe(o.Node), o.Name)
	}
}

// Recorder wraps an Adapter and records every call it forwards.
type Recorder struct {
	Adapter
	ops    []Op
	logger zerolog.Logger
}

// NewRecorder wraps inner. Each op is also logged at trace level on logger.
func NewRecorder(inner Adapter, logger zerolog.Logger) *Recorder {
	return &Recorder{Adapter: inner, logger: logger}
}

// Ops returns the ops recorded since the last Reset.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// Reset discards recorded ops.
func (r *Recorder) Reset() {
	r.ops = nil
}

// Count returns how many ops of kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Kinds returns the kinds of the recorded ops in order.
func (r *Recorder) Kinds() []OpKind {
	kinds := make([]OpKind, len(r.ops))
	for i, op := range r.ops {
		kinds[i] = op.Kind
	}
	return kinds
}

// Describe delegates to the wrapped adapter when it implements Describer.
func (r *Recorder) Describe(node Node) string {
	if d, ok := r.Adapter.(Describer); ok {
		return d.Describe(node)
	}
	return fmt.Sprintf("%v", node)
}

// Release forwards to the wrapped adapter when it implements Releaser. It
// changes no host node, so nothing is recorded.
func (r *Recorder) Release(node Node) {
	if rel, ok := r.Adapter.(Releaser); ok {
		rel.Release(node)
	}
}

func (r *Recorder) record(op Op) {
	r.ops = append(r.ops, op)
	if r.logger.GetLevel() <= zerolog.TraceLevel {
		r.logger.Trace().Str("op", op.Kind.String()).Msg(op.Format(r))
	}
}

func (r *Recorder) CreateElement(tag string, svg bool) Node {
	n := r.Adapter.CreateElement(tag, svg)
	r.record(Op{Kind: OpCreateElement, Node: n, Name: tag})
	return n
}

func (r *Recorder) CreateText(text string) Node {
	n := r.Adapter.CreateText(text)
	r.record(Op{Kind: OpCreateText, Node: n, Name: fmt.Sprintf("%q", text)})
	return n
}

func (r *Recorder) SetText(node Node, text string) {
	r.record(Op{Kind: OpSetText, Node: node, Value: text})
	r.Adapter.SetText(node, text)
}

func (r *Recorder) SetAttribute(node Node, name, value string) {
	r.record(Op{Kind: OpSetAttribute, Node: node, Name: name, Value: value})
	r.Adapter.SetAttribute(node, name, value)
}

func (r *Recorder) RemoveAttribute(node Node, name string) {
	r.record(Op{Kind: OpRemoveAttribute, Node: node, Name: name})
	r.Adapter.RemoveAttribute(node, name)
}

func (r *Recorder) SetStyle(node Node, name, value string) {
	r.record(Op{Kind: OpSetStyle, Node: node, Name: name, Value: value})
	r.Adapter.SetStyle(node, name, value)
}

func (r *Recorder) RemoveStyle(node Node, name string) {
	r.record(Op{Kind: OpRemoveStyle, Node: node, Name: name})
	r.Adapter.RemoveStyle(node, name)
}

func (r *Recorder) SetProperty(node Node, name string, value any) {
	r.record(Op{Kind: OpSetProperty, Node: node, Name: name, Value: fmt.Sprint(value)})
	r.Adapter.SetProperty(node, name, value)
}

func (r *Recorder) RemoveProperty(node Node, name string) {
	r.record(Op{Kind: OpRemoveProperty, Node: node, Name: name})
	r.Adapter.RemoveProperty(node, name)
}

func (r *Recorder) AddEventListener(node Node, event string, listener any) {
	r.record(Op{Kind: OpAddListener, Node: node, Name: event})
	r.Adapter.AddEventListener(node, event, listener)
}

func (r *Recorder) RemoveEventListener(node Node, event string, listener any) {
	r.record(Op{Kind: OpRemoveListener, Node: node, Name: event})
	r.Adapter.RemoveEventListener(node, event, listener)
}

func (r *Recorder) AppendChild(parent, child Node) {
	r.record(Op{Kind: r.placement(child), Node: child, Parent: parent})
	r.Adapter.AppendChild(parent, child)
}

func (r *Recorder) InsertBefore(parent, child, ref Node) {
	r.record(Op{Kind: r.placement(child), Node: child, Parent: parent, Ref: ref})
	r.Adapter.InsertBefore(parent, child, ref)
}

func (r *Recorder) RemoveChild(parent, child Node) {
	r.record(Op{Kind: OpRemove, Node: child, Parent: parent})
	r.Adapter.RemoveChild(parent, child)
}

func (r *Recorder) Query(selector string) (Node, error) {
	r.record(Op{Kind: OpQuery, Name: selector})
	return r.Adapter.Query(selector)
}

func (r *Recorder) placement(child Node) OpKind {
	if r.Adapter.Parent(child) != nil {
		return OpMove
	}
	return OpInsert
}
