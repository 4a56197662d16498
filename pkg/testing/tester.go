package testing

import (
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/go-drift/vdom/pkg/core"
	"github.com/go-drift/vdom/pkg/host"
	"github.com/go-drift/vdom/pkg/host/htmlhost"
)

// DefaultContainerID is the id of the container trees are rendered into.
const DefaultContainerID = "root"

// Tester renders descriptor trees into an isolated in-memory document.
// Every host operation goes through a Recorder so tests can assert on the
// exact mutations a render issued.
type Tester struct {
	doc      *htmlhost.Document
	recorder *host.Recorder
	renderer *core.Renderer
	root     *html.Node
}

// NewTester creates a tester with an empty document and one container.
// Call Cleanup() when done, or use NewTesterWithT() instead.
func NewTester(opts ...core.RendererOption) *Tester {
	doc := htmlhost.New()
	recorder := host.NewRecorder(doc, zerolog.Nop())
	return &Tester{
		doc:      doc,
		recorder: recorder,
		renderer: core.NewRenderer(recorder, opts...),
		root:     doc.NewContainer(DefaultContainerID),
	}
}

// NewTesterWithT creates a tester that unmounts its tree via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T, opts ...core.RendererOption) *Tester {
	tester := NewTester(opts...)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the current tree so component unmount hooks run.
func (t *Tester) Cleanup() {
	if t.renderer.Current(t.root) != nil {
		_ = t.renderer.Render(nil, t.root)
	}
}

// Render mounts n, or patches the current tree to n.
func (t *Tester) Render(n *core.Node) error {
	return t.renderer.Render(n, t.root)
}

// Unmount removes the current tree.
func (t *Tester) Unmount() error {
	return t.renderer.Render(nil, t.root)
}

// Tree returns the descriptor tree currently rendered, or nil.
func (t *Tester) Tree() *core.Node {
	return t.renderer.Current(t.root)
}

// Document returns the backing document.
func (t *Tester) Document() *htmlhost.Document {
	return t.doc
}

// Container returns the element trees are rendered into.
func (t *Tester) Container() *html.Node {
	return t.root
}

// NewContainer adds another container, e.g. as a portal target.
func (t *Tester) NewContainer(id string) *html.Node {
	return t.doc.NewContainer(id)
}

// Renderer returns the renderer driving the tester.
func (t *Tester) Renderer() *core.Renderer {
	return t.renderer
}

// Recorder returns the recording adapter.
func (t *Tester) Recorder() *host.Recorder {
	return t.recorder
}

// HTML serializes the container's content.
func (t *Tester) HTML() string {
	return t.doc.InnerHTML(t.root)
}

// Ops returns the host operations recorded since the last ResetOps.
func (t *Tester) Ops() []host.Op {
	return t.recorder.Ops()
}

// ResetOps clears the op log, typically right before the render under test.
func (t *Tester) ResetOps() {
	t.recorder.Reset()
}

// Find evaluates a finder against the current tree.
func (t *Tester) Find(finder Finder) FinderResult {
	root := t.Tree()
	if root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		nodes:  finder.Evaluate(root),
		finder: finder,
	}
}

// Dispatch fires event on the host node of the first match and returns how
// many listeners ran. Panics if nothing matches.
func (t *Tester) Dispatch(finder Finder, event string, payload any) int {
	return t.doc.Dispatch(t.Find(finder).Host(), event, payload)
}

// Click dispatches a click with no payload.
func (t *Tester) Click(finder Finder) int {
	return t.Dispatch(finder, "click", nil)
}
