package core

import (
	stderrors "errors"
	"testing"

	"golang.org/x/net/html"

	"github.com/go-drift/vdom/pkg/host"
	"github.com/go-drift/vdom/pkg/host/htmlhost"
)

// page builds a tree exercising every node kind; each call returns fresh
// descriptors with equal content.
func page() *Node {
	return H("main", Props{"id": "app", "class": []string{"a", "b"}, "style": map[string]string{"color": "red"}},
		H("h1", nil, "Title"),
		H(Fragment, nil, H("i", nil, "x"), "y"),
		H(renderLabel, Props{"text": "label"}),
		H(func() Component { return &greeter{} }, nil),
		H("input", Props{"value": "v", "disabled": true, "onclick": func() {}}),
		H("svg", Props{"viewBox": "0 0 1 1"}, H("circle", Props{"r": 1})),
	)
}

func TestPatch_IdenticalTreeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.render(t, page())
	f.rec.Reset()

	f.render(t, page())

	if got := f.mutations(); got != 0 {
		t.Errorf("mutations = %d, want 0; ops: %v", got, f.rec.Ops())
	}
}

func TestPatch_RoundTripMatchesFreshMount(t *testing.T) {
	f := newFixture(t)
	f.render(t, page())
	f.render(t, page())

	fresh := newFixture(t)
	fresh.render(t, page())

	if got, want := f.html(), fresh.html(); got != want {
		t.Errorf("patched html = %s\nfresh html = %s", got, want)
	}
}

func TestPatch_HostHandleTransfers(t *testing.T) {
	f := newFixture(t)
	prev := H("div", nil, "a")
	f.render(t, prev)
	el := prev.Host()

	next := H("div", nil, "a")
	f.render(t, next)

	if next.Host() != el {
		t.Error("next does not own the previous element")
	}
	if prev.Host() != nil {
		t.Error("prev still holds a host handle")
	}
}

func TestPatch_ClassRemoved(t *testing.T) {
	f := newFixture(t)
	prev := H("div", Props{"class": "a b"})
	f.render(t, prev)
	if cls, _ := f.doc.Attribute(prev.Host(), "class"); cls != "a b" {
		t.Fatalf("class = %q, want %q", cls, "a b")
	}

	next := H("div", nil)
	f.render(t, next)

	if _, ok := f.doc.Attribute(next.Host(), "class"); ok {
		t.Error("class attribute still present")
	}
	if got := f.rec.Count(host.OpRemoveAttribute); got != 1 {
		t.Errorf("remove-attribute ops = %d, want 1", got)
	}
}

func TestPatch_TextUpdatedInPlace(t *testing.T) {
	f := newFixture(t)
	prev := H("p", nil, "one")
	f.render(t, prev)
	text := prev.Child().Host()
	f.rec.Reset()

	next := H("p", nil, "two")
	f.render(t, next)

	if next.Child().Host() != text {
		t.Error("text node was replaced")
	}
	if got := f.rec.Kinds(); len(got) != 1 || got[0] != host.OpSetText {
		t.Errorf("ops = %v, want [set-text]", got)
	}
	if got := f.html(); got != "<p>two</p>" {
		t.Errorf("html = %s", got)
	}
}

func TestPatch_ReplaceKeepsPosition(t *testing.T) {
	f := newFixture(t)
	f.render(t, H("div", nil,
		H("p", Props{"key": "a"}),
		H("div", Props{"key": "b"}),
		H("p", Props{"key": "c"}),
	))

	f.render(t, H("div", nil,
		H("p", Props{"key": "a"}),
		H("span", Props{"key": "b"}),
		H("p", Props{"key": "c"}),
	))

	if got, want := f.html(), "<div><p></p><span></span><p></p></div>"; got != want {
		t.Errorf("html = %s, want %s", got, want)
	}
}

func TestPatch_KindChangeReplaces(t *testing.T) {
	f := newFixture(t)
	f.render(t, H("div", nil, H("b", nil), "tail"))
	f.render(t, H("div", nil, "head", "tail"))

	if got, want := f.html(), "<div>headtail</div>"; got != want {
		t.Errorf("html = %s, want %s", got, want)
	}
}

func TestPatch_ShapeTransitions(t *testing.T) {
	steps := []struct {
		name string
		tree *Node
		want string
	}{
		{"none", H("div", nil), "<div></div>"},
		{"single", H("div", nil, H("b", nil)), "<div><b></b></div>"},
		{"multiple", H("div", nil, H("b", nil), H("i", nil)), "<div><b></b><i></i></div>"},
		{"single again", H("div", nil, "x"), "<div>x</div>"},
		{"none again", H("div", nil), "<div></div>"},
		{"multiple from none", H("div", nil, "p", "q"), "<div>pq</div>"},
		{"none from multiple", H("div", nil), "<div></div>"},
	}
	f := newFixture(t)
	for _, s := range steps {
		f.render(t, s.tree)
		if got := f.html(); got != s.want {
			t.Errorf("%s: html = %s, want %s", s.name, got, s.want)
		}
	}
}

func TestPatch_FragmentEmptiedLeavesPlaceholder(t *testing.T) {
	f := newFixture(t)
	f.render(t, H(Fragment, nil, H("a", nil), H("b", nil)))

	next := H(Fragment, nil)
	f.render(t, next)

	kids := f.doc.Children(f.root)
	if len(kids) != 1 {
		t.Fatalf("root has %d children, want 1", len(kids))
	}
	placeholder := kids[0].(*html.Node)
	if placeholder.Type != html.TextNode || placeholder.Data != "" {
		t.Errorf("child = %s, want empty text", f.doc.Describe(placeholder))
	}
	if next.Host() != placeholder {
		t.Error("fragment anchor is not the placeholder")
	}
}

func TestPatch_FragmentRefilledBeforeSibling(t *testing.T) {
	f := newFixture(t)
	f.render(t, H("div", nil, H(Fragment, nil), H("p", nil)))
	f.render(t, H("div", nil, H(Fragment, nil, H("a", nil), H("b", nil)), H("p", nil)))

	if got, want := f.html(), "<div><a></a><b></b><p></p></div>"; got != want {
		t.Errorf("html = %s, want %s", got, want)
	}

	f.render(t, H("div", nil, H(Fragment, nil), H("p", nil)))
	if got, want := f.html(), "<div><p></p></div>"; got != want {
		t.Errorf("html = %s, want %s", got, want)
	}
	if got := len(f.doc.Children(f.doc.Children(f.root)[0])); got != 2 {
		t.Errorf("div has %d children, want placeholder and p", got)
	}
}

func TestPatch_FragmentGrowsBeforeSibling(t *testing.T) {
	f := newFixture(t)
	f.render(t, H("div", nil, H(Fragment, nil, H("a", nil)), H("p", nil)))
	f.render(t, H("div", nil, H(Fragment, nil, H("a", nil), H("b", nil)), H("p", nil)))

	if got, want := f.html(), "<div><a></a><b></b><p></p></div>"; got != want {
		t.Errorf("html = %s, want %s", got, want)
	}
}

func TestPatch_SVGNamespace(t *testing.T) {
	f := newFixture(t)
	n := H("div", nil, H("svg", nil, H("g", nil, H("circle", nil))), H("span", nil))
	f.render(t, n)

	svg := n.Children[0]
	circle := svg.Child().Child().Host().(*html.Node)
	if circle.Namespace != "svg" {
		t.Errorf("circle namespace = %q, want svg", circle.Namespace)
	}
	if span := n.Children[1].Host().(*html.Node); span.Namespace != "" {
		t.Errorf("span namespace = %q, want none", span.Namespace)
	}
}

func TestPatch_Portal(t *testing.T) {
	f := newFixture(t)
	modal := f.doc.NewContainer("modal")
	other := f.doc.NewContainer("other")

	f.render(t, H("div", nil, H(Portal, Props{"target": "#modal"}, H("p", nil, "hi"))))
	if got := f.html(); got != "<div></div>" {
		t.Errorf("root html = %s", got)
	}
	if got := f.doc.InnerHTML(modal); got != "<p>hi</p>" {
		t.Errorf("modal html = %s", got)
	}

	f.render(t, H("div", nil, H(Portal, Props{"target": "#modal"}, H("p", nil, "bye"))))
	if got := f.doc.InnerHTML(modal); got != "<p>bye</p>" {
		t.Errorf("modal html after patch = %s", got)
	}

	f.render(t, H("div", nil, H(Portal, Props{"target": other}, H("p", nil, "bye"))))
	if got := f.doc.InnerHTML(modal); got != "" {
		t.Errorf("modal html after retarget = %s", got)
	}
	if got := f.doc.InnerHTML(other); got != "<p>bye</p>" {
		t.Errorf("other html after retarget = %s", got)
	}

	f.render(t, nil)
	if got := f.doc.InnerHTML(other); got != "" {
		t.Errorf("other html after unmount = %s", got)
	}
}

func TestPatch_PortalBadSelector(t *testing.T) {
	quietErrors(t)
	f := newFixture(t)
	err := f.r.Render(H(Portal, Props{"target": "#missing"}, "x"), f.root)
	if err == nil {
		t.Fatal("expected error for unresolvable target")
	}
	if !stderrors.Is(err, htmlhost.ErrNoMatch) {
		t.Errorf("err = %v, want wrapped ErrNoMatch", err)
	}
	if f.r.Current(f.root) != nil {
		t.Error("failed mount was recorded")
	}
}

func TestPatch_UnmountClearsContainer(t *testing.T) {
	f := newFixture(t)
	f.render(t, page())
	f.render(t, nil)

	if got := f.html(); got != "" {
		t.Errorf("html = %s, want empty", got)
	}
	if f.r.Current(f.root) != nil {
		t.Error("tree still recorded")
	}
}
