package core

import (
	"reflect"
	"runtime"
	"sync"

	"github.com/go-drift/vdom/pkg/errors"
	"github.com/go-drift/vdom/pkg/host"
)

// Component is a stateful component. Implementations embed ComponentBase:
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
// Optional lifecycle hooks are discovered by method set: Mounted() runs after
// the first render is materialized, Updated() after each re-render has been
// patched in, and Unmounted() once the component's tree has been removed.
type Component interface {
	Render() *Node
	base() *ComponentBase
}

// ComponentBase carries the reconciler-managed state of a stateful component.
type ComponentBase struct {
	props    Props
	children []*Node
	inst     *statefulInstance
}

func (b *ComponentBase) base() *ComponentBase { return b }

// Props returns the props of the descriptor that currently owns the component.
func (b *ComponentBase) Props() Props {
	return b.props
}

// Children returns the children given to the owning descriptor.
func (b *ComponentBase) Children() []*Node {
	return b.children
}

// IsMounted reports whether the component's tree is in the host tree.
func (b *ComponentBase) IsMounted() bool {
	return b.inst != nil && b.inst.mounted
}

// SetState runs fn and, when mounted, re-renders and patches the component
// synchronously. Calling it while the same component is rendering or being
// patched is rejected with an invariant error. Once the component has been
// unmounted fn is not run and an invariant error is returned.
func (b *ComponentBase) SetState(fn func()) error {
	if b.inst != nil && b.inst.unmounted {
		return errors.Invariant("core.SetState", "%s is unmounted", b.inst.def)
	}
	if fn != nil {
		fn()
	}
	if b.inst == nil || !b.inst.mounted {
		return nil
	}
	return b.inst.renderer.selfUpdate(b.inst)
}

// ForceUpdate re-renders the component without changing state.
func (b *ComponentBase) ForceUpdate() error {
	return b.SetState(nil)
}

// ComponentDef is the identity of a component. Two descriptors refer to the
// same component iff they share a *ComponentDef.
type ComponentDef struct {
	Name string

	kind   Kind
	create func() Component
	render func(Props) *Node
}

// Stateful defines a stateful component constructed by create.
func Stateful(name string, create func() Component) *ComponentDef {
	return &ComponentDef{Name: name, kind: KindStatefulComponent, create: create}
}

// Functional defines a functional component rendered by render.
func Functional(name string, render func(Props) *Node) *ComponentDef {
	return &ComponentDef{Name: name, kind: KindFunctionalComponent, render: render}
}

// Kind returns KindStatefulComponent or KindFunctionalComponent.
func (d *ComponentDef) Kind() Kind {
	return d.kind
}

func (d *ComponentDef) String() string {
	return d.Name
}

// Raw funcs used as tags are mapped to one definition per code pointer so
// repeated builds of the same function keep the same identity. The cached
// definition holds no func; each descriptor carries its own closure.
var funcDefs sync.Map // funcKey -> *ComponentDef

type funcKey struct {
	pc   uintptr
	kind Kind
}

func defForFunc(fn any, kind Kind) *ComponentDef {
	key := funcKey{pc: reflect.ValueOf(fn).Pointer(), kind: kind}
	if def, ok := funcDefs.Load(key); ok {
		return def.(*ComponentDef)
	}
	name := "anonymous"
	if f := runtime.FuncForPC(key.pc); f != nil {
		name = f.Name()
	}
	def, _ := funcDefs.LoadOrStore(key, &ComponentDef{Name: name, kind: kind})
	return def.(*ComponentDef)
}

// constructor returns the func that builds n's component instance.
func (n *Node) constructor() func() Component {
	if n.create != nil {
		return n.create
	}
	return n.Tag.(*ComponentDef).create
}

// renderFunc returns the func that renders functional node n.
func (n *Node) renderFunc() func(Props) *Node {
	if n.render != nil {
		return n.render
	}
	return n.Tag.(*ComponentDef).render
}

type statefulInstance struct {
	def       *ComponentDef
	component Component
	owner     *Node
	rendered  *Node
	mounted   bool
	unmounted bool
	updating  bool
	svg       bool
	renderer  *Renderer
}

// functionalInstance is the update record kept for a functional component:
// the previous and next descriptors, the container, and the closure that
// renders and mounts or patches.
type functionalInstance struct {
	prev      *Node
	next      *Node
	container host.Node
	rendered  *Node
	svg       bool
	update    func(ref host.Node)
}

func (r *Renderer) mountStateful(n *Node, container host.Node, svg bool, ref host.Node) {
	def := n.Tag.(*ComponentDef)
	create := n.constructor()
	if create == nil {
		panic(errors.InvalidDescriptor("core.mountStateful", "component %s has no constructor", def))
	}
	c := create()
	if c == nil {
		panic(errors.InvalidDescriptor("core.mountStateful", "component %s constructed nil", def))
	}
	inst := &statefulInstance{
		def:       def,
		component: c,
		owner:     n,
		svg:       svg,
		renderer:  r,
	}
	b := c.base()
	b.props = n.Props
	b.children = n.Children
	b.inst = inst
	n.stateful = inst
	r.updateStateful(inst, container, ref)
}

// updateStateful renders and mounts on first call; afterwards it re-renders
// and patches against the previous output inside that output's host parent.
func (r *Renderer) updateStateful(inst *statefulInstance, container, ref host.Node) {
	inst.updating = true
	defer func() { inst.updating = false }()

	if !inst.mounted {
		out := renderOutput(inst.component.Render())
		r.mount(out, container, inst.svg, ref)
		inst.rendered = out
		inst.mounted = true
		inst.owner.host = out.host
		inst.updating = false
		if h, ok := inst.component.(interface{ Mounted() }); ok {
			h.Mounted()
		}
		return
	}

	prevTree := inst.rendered
	parent := r.adapter.Parent(prevTree.host)
	if parent == nil {
		panic(errors.Invariant("core.updateStateful", "%s output is detached", inst.def))
	}
	out := renderOutput(inst.component.Render())
	r.logger.Debug().Str("component", inst.def.Name).Msg("update")
	r.patch(prevTree, out, parent, inst.svg)
	inst.rendered = out
	inst.owner.host = out.host
	inst.updating = false
	if h, ok := inst.component.(interface{ Updated() }); ok {
		h.Updated()
	}
}

// selfUpdate is the SetState entry point. Faults surface as errors.
func (r *Renderer) selfUpdate(inst *statefulInstance) (err error) {
	if inst.updating {
		return errors.Invariant("core.SetState", "re-entrant update of %s", inst.def)
	}
	defer r.recoverFault("core.SetState", &err)
	r.updateStateful(inst, nil, nil)
	return nil
}

func (r *Renderer) mountFunctional(n *Node, container host.Node, svg bool, ref host.Node) {
	inst := &functionalInstance{next: n, container: container, svg: svg}
	inst.update = func(ref host.Node) {
		render := inst.next.renderFunc()
		if render == nil {
			panic(errors.InvalidDescriptor("core.mountFunctional", "component %s has no render func", inst.next.Tag))
		}
		out := renderOutput(render(inst.next.Props))
		if inst.rendered == nil {
			r.mount(out, inst.container, inst.svg, ref)
		} else {
			r.patch(inst.rendered, out, inst.container, inst.svg)
		}
		inst.rendered = out
		inst.next.host = out.host
	}
	n.functional = inst
	inst.update(ref)
}

func (r *Renderer) patchComponent(prev, next *Node, container host.Node, svg bool) {
	if prev.Tag != next.Tag {
		r.replace(prev, next, container, svg)
		return
	}
	if next.Kind.IsStatefulComponent() {
		inst := prev.stateful
		if inst == nil {
			panic(errors.Invariant("core.patchComponent", "%s has no instance", prev))
		}
		prev.stateful = nil
		next.stateful = inst
		inst.owner = next
		b := inst.component.base()
		b.props = next.Props
		b.children = next.Children
		r.updateStateful(inst, container, nil)
		return
	}

	inst := prev.functional
	if inst == nil {
		panic(errors.Invariant("core.patchComponent", "%s has no update record", prev))
	}
	prev.functional = nil
	inst.prev, inst.next = prev, next
	inst.container = container
	inst.svg = svg
	next.functional = inst
	inst.update(nil)
}

// renderOutput substitutes an empty text node for a nil render result so
// every component keeps an anchor.
func renderOutput(out *Node) *Node {
	if out == nil {
		return TextNode("")
	}
	return out
}
