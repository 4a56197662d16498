package core

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/go-drift/vdom/pkg/errors"
	"github.com/go-drift/vdom/pkg/host/htmlhost"
)

func TestRender_NilIntoEmptyContainerIsNoop(t *testing.T) {
	f := newFixture(t)
	f.render(t, nil)
	if len(f.rec.Ops()) != 0 {
		t.Errorf("ops = %v, want none", f.rec.Ops())
	}
	if f.r.Current(f.root) != nil {
		t.Error("Current is not nil")
	}
}

func TestRender_RecordsCurrentTree(t *testing.T) {
	f := newFixture(t)
	first := H("p", nil, "a")
	f.render(t, first)
	if f.r.Current(f.root) != first {
		t.Error("Current is not the mounted tree")
	}
	second := H("p", nil, "b")
	f.render(t, second)
	if f.r.Current(f.root) != second {
		t.Error("Current is not the patched tree")
	}
}

func TestRender_ContainersAreIndependent(t *testing.T) {
	doc := htmlhost.New()
	r := NewRenderer(doc)
	left, right := doc.NewContainer("left"), doc.NewContainer("right")

	if err := r.Render(H("b", nil, "L"), left); err != nil {
		t.Fatal(err)
	}
	if err := r.Render(H("i", nil, "R"), right); err != nil {
		t.Fatal(err)
	}
	if err := r.Render(nil, left); err != nil {
		t.Fatal(err)
	}

	if got := doc.InnerHTML(left); got != "" {
		t.Errorf("left = %s", got)
	}
	if got := doc.InnerHTML(right); got != "<i>R</i>" {
		t.Errorf("right = %s", got)
	}
}

func TestRender_NilContainer(t *testing.T) {
	r := NewRenderer(htmlhost.New())
	err := r.Render(H("p", nil), nil)
	if errors.KindOf(err) != errors.KindInvariant {
		t.Errorf("err = %v, want invariant", err)
	}
}

func TestRender_FaultKeepsPreviousTree(t *testing.T) {
	quietErrors(t)
	f := newFixture(t)
	good := H("div", nil, H(Portal, Props{"target": "#modal"}, "x"))
	f.doc.NewContainer("modal")
	f.render(t, good)

	bad := H("div", nil, H(Portal, Props{"target": "!!"}, "x"))
	err := f.r.Render(bad, f.root)
	if err == nil {
		t.Fatal("expected error for unresolvable portal target")
	}
	if f.r.Current(f.root) != good {
		t.Error("failed patch replaced the recorded tree")
	}
}

func TestRender_MalformedShapeIsInvariant(t *testing.T) {
	quietErrors(t)
	f := newFixture(t)
	bad := &Node{Kind: KindElementHTML, Tag: "div", Shape: ShapeMultiple, Children: []*Node{TextNode("x")}}
	if err := f.r.Render(bad, f.root); errors.KindOf(err) != errors.KindInvariant {
		t.Errorf("err = %v, want invariant", err)
	}
}

func TestRender_ForeignPanicPropagates(t *testing.T) {
	h := quietErrors(t)
	f := newFixture(t)
	boom := Functional("Boom", func(Props) *Node { panic("boom") })

	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("recovered %v, want boom", r)
		}
		if len(h.panics) != 1 || h.panics[0].Op != "core.Renderer.Render" {
			t.Errorf("panics = %v", h.panics)
		}
	}()
	_ = f.r.Render(H(boom, nil), f.root)
	t.Error("Render returned")
}

func TestRender_WithLoggerTracesOperations(t *testing.T) {
	var buf bytes.Buffer
	doc := htmlhost.New()
	r := NewRenderer(doc, WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	root := doc.NewContainer("root")

	if err := r.Render(H("ul", nil, H("li", Props{"key": "a"}), H("li", Props{"key": "b"})), root); err != nil {
		t.Fatal(err)
	}
	if err := r.Render(H("ul", nil, H("li", Props{"key": "b"}), H("li", Props{"key": "a"})), root); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{`"message":"mount"`, `"message":"move"`, `"key":"a"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %s:\n%s", want, out)
		}
	}
	if r.Adapter() != doc {
		t.Error("Adapter() returned a different adapter")
	}
}
