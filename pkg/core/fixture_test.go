package core

import (
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/go-drift/vdom/pkg/errors"
	"github.com/go-drift/vdom/pkg/host"
	"github.com/go-drift/vdom/pkg/host/htmlhost"
)

// fixture renders into a fresh in-memory document through a recording adapter.
type fixture struct {
	doc  *htmlhost.Document
	rec  *host.Recorder
	r    *Renderer
	root *html.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	doc := htmlhost.New()
	rec := host.NewRecorder(doc, zerolog.Nop())
	return &fixture{
		doc:  doc,
		rec:  rec,
		r:    NewRenderer(rec),
		root: doc.NewContainer("root"),
	}
}

func (f *fixture) render(t *testing.T, n *Node) {
	t.Helper()
	if err := f.r.Render(n, f.root); err != nil {
		t.Fatalf("Render: %v", err)
	}
}

func (f *fixture) html() string {
	return f.doc.InnerHTML(f.root)
}

// mutations counts recorded ops that changed the host tree.
func (f *fixture) mutations() int {
	n := 0
	for _, op := range f.rec.Ops() {
		if op.Kind != host.OpQuery {
			n++
		}
	}
	return n
}

// quietErrors swaps the global error handler for one that collects reports.
func quietErrors(t *testing.T) *collectHandler {
	t.Helper()
	h := &collectHandler{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return h
}

type collectHandler struct {
	errs   []*errors.Error
	panics []*errors.PanicError
}

func (h *collectHandler) HandleError(err *errors.Error)      { h.errs = append(h.errs, err) }
func (h *collectHandler) HandlePanic(err *errors.PanicError) { h.panics = append(h.panics, err) }
