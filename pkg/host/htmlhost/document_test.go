package htmlhost

import (
	"testing"

	"golang.org/x/net/html"

	"github.com/go-drift/vdom/pkg/host"
)

func TestDocument_TreeOperations(t *testing.T) {
	d := New()
	root := d.NewContainer("root")
	a := d.CreateElement("a", false)
	b := d.CreateElement("b", false)
	txt := d.CreateText("t")

	d.AppendChild(root, a)
	d.AppendChild(root, txt)
	d.InsertBefore(root, b, a)
	if got := d.InnerHTML(root); got != "<b></b><a></a>t" {
		t.Fatalf("html = %s", got)
	}

	// Re-inserting an attached node moves it.
	d.InsertBefore(root, txt, b)
	if got := d.InnerHTML(root); got != "t<b></b><a></a>" {
		t.Errorf("html after move = %s", got)
	}
	d.InsertBefore(root, txt, nil)
	if got := d.InnerHTML(root); got != "<b></b><a></a>t" {
		t.Errorf("html after append = %s", got)
	}

	if d.Parent(a) != root {
		t.Error("Parent(a) is not root")
	}
	if d.NextSibling(b) != a {
		t.Error("NextSibling(b) is not a")
	}
	if d.NextSibling(txt) != nil {
		t.Error("NextSibling of last child is not nil")
	}

	d.RemoveChild(root, b)
	if d.Parent(b) != nil {
		t.Error("removed node still has a parent")
	}
	if got := len(d.Children(root)); got != 2 {
		t.Errorf("children = %d, want 2", got)
	}
}

func TestDocument_Attributes(t *testing.T) {
	d := New()
	el := d.CreateElement("p", false)
	d.SetAttribute(el, "id", "x")
	d.SetAttribute(el, "id", "y")
	d.SetAttribute(el, "title", "t")
	d.RemoveAttribute(el, "title")

	if got := d.OuterHTML(el); got != `<p id="y"></p>` {
		t.Errorf("html = %s", got)
	}
	if _, ok := d.Attribute(el, "title"); ok {
		t.Error("title still present")
	}
}

func TestDocument_Styles(t *testing.T) {
	d := New()
	el := d.CreateElement("p", false)
	d.SetStyle(el, "margin", "0")
	d.SetStyle(el, "color", "red")
	if got, _ := d.Attribute(el, "style"); got != "color: red; margin: 0" {
		t.Errorf("style = %q", got)
	}
	d.RemoveStyle(el, "color")
	d.RemoveStyle(el, "margin")
	if _, ok := d.Attribute(el, "style"); ok {
		t.Error("empty style attribute kept")
	}
}

func TestDocument_Properties(t *testing.T) {
	d := New()
	el := d.CreateElement("input", false)
	d.SetProperty(el, "value", 3)
	if v, ok := d.Property(el, "value"); !ok || v != 3 {
		t.Errorf("Property = %v, %v", v, ok)
	}
	d.RemoveProperty(el, "value")
	if _, ok := d.Property(el, "value"); ok {
		t.Error("property still set")
	}
	if got := d.OuterHTML(el); got != "<input/>" {
		t.Errorf("properties leaked into markup: %s", got)
	}
}

func TestDocument_Release(t *testing.T) {
	d := New()
	el := d.CreateElement("input", false)
	d.SetAttribute(el, "id", "name")
	d.SetStyle(el, "color", "red")
	d.SetProperty(el, "value", "x")
	d.AddEventListener(el, "input", func() {})

	d.Release(el)

	n := el.(*html.Node)
	if d.props[n] != nil || d.styles[n] != nil || d.listeners[n] != nil {
		t.Errorf("side tables keep released node: props=%v styles=%v listeners=%d",
			d.props[n], d.styles[n], len(d.listeners[n]))
	}
	if got := d.OuterHTML(el); got != `<input id="name" style="color: red"/>` {
		t.Errorf("release touched markup: %s", got)
	}
}

func TestDocument_SVGNamespace(t *testing.T) {
	d := New()
	el := d.CreateElement("circle", true).(*html.Node)
	if el.Namespace != "svg" {
		t.Errorf("namespace = %q", el.Namespace)
	}
}

func TestDocument_Describe(t *testing.T) {
	d := New()
	el := d.NewContainer("main")
	d.SetAttribute(el, "class", "a b")
	tests := []struct {
		node host.Node
		want string
	}{
		{el, "<div#main.a.b>"},
		{d.CreateText("hi"), `"hi"`},
		{d.root, "#document"},
	}
	for _, tt := range tests {
		if got := d.Describe(tt.node); got != tt.want {
			t.Errorf("Describe = %q, want %q", got, tt.want)
		}
	}
}

func TestDocument_Outline(t *testing.T) {
	d := New()
	root := d.NewContainer("root")
	ul := d.CreateElement("ul", false)
	d.SetAttribute(ul, "class", "x")
	d.AppendChild(root, ul)
	d.AppendChild(ul, d.CreateText(""))
	svg := d.CreateElement("svg", true)
	d.AppendChild(root, svg)

	want := []string{`<ul class="x">`, `  ""`, `<svg:svg>`}
	got := d.Outline(root)
	if len(got) != len(want) {
		t.Fatalf("Outline = %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDocument_ForeignNodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	New().SetText("not a node", "x")
}
