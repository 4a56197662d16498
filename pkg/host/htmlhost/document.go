// Package htmlhost implements host.Adapter over an in-memory HTML document
// built from golang.org/x/net/html nodes.
//
// It is the adapter used by the CLI and the test harness: nodes are real
// *html.Node values, so the materialized tree can be serialized with
// html.Render and inspected node by node. DOM properties and listeners are
// kept in side tables keyed by node, mirroring a browser where neither shows
// up in serialized markup.
package htmlhost

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/go-drift/vdom/pkg/host"
)

const selectorCacheSize = 128

// Document is an in-memory host tree.
type Document struct {
	root      *html.Node
	body      *html.Node
	props     map[*html.Node]map[string]any
	styles    map[*html.Node]map[string]string
	listeners map[*html.Node]map[string][]any
	selectors *lru.Cache[string, selector]
}

var (
	_ host.Adapter  = (*Document)(nil)
	_ host.Releaser = (*Document)(nil)
)

// New creates an empty document with <html> and <body> elements.
func New() *Document {
	root := &html.Node{Type: html.DocumentNode}
	htmlEl := &html.Node{Type: html.ElementNode, Data: "html", DataAtom: atom.Html}
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	root.AppendChild(htmlEl)
	htmlEl.AppendChild(body)

	cache, err := lru.New[string, selector](selectorCacheSize)
	if err != nil {
		// Only reachable with a non-positive size.
		panic(err)
	}
	return &Document{
		root:      root,
		body:      body,
		props:     make(map[*html.Node]map[string]any),
		styles:    make(map[*html.Node]map[string]string),
		listeners: make(map[*html.Node]map[string][]any),
		selectors: cache,
	}
}

// Body returns the document's <body> element.
func (d *Document) Body() *html.Node {
	return d.body
}

// NewContainer appends a <div> with the given id to <body> and returns it.
func (d *Document) NewContainer(id string) *html.Node {
	n := d.CreateElement("div", false).(*html.Node)
	if id != "" {
		d.SetAttribute(n, "id", id)
	}
	d.body.AppendChild(n)
	return n
}

// InnerHTML serializes the children of node.
func (d *Document) InnerHTML(node host.Node) string {
	var buf bytes.Buffer
	for c := asNode(node).FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return fmt.Sprintf("<!-- render error: %v -->", err)
		}
	}
	return buf.String()
}

// OuterHTML serializes node and its subtree.
func (d *Document) OuterHTML(node host.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, asNode(node)); err != nil {
		return fmt.Sprintf("<!-- render error: %v -->", err)
	}
	return buf.String()
}

// Outline renders the subtree below node one host node per line, indented
// two spaces per level. Elements show their namespace and attributes; text
// nodes are quoted so empty anchors stay visible.
func (d *Document) Outline(node host.Node) []string {
	var lines []string
	for c := asNode(node).FirstChild; c != nil; c = c.NextSibling {
		lines = outline(lines, c, 0)
	}
	return lines
}

func outline(lines []string, n *html.Node, depth int) []string {
	indent := strings.Repeat("  ", depth)
	switch n.Type {
	case html.TextNode:
		return append(lines, fmt.Sprintf("%s%q", indent, n.Data))
	case html.ElementNode:
		var sb strings.Builder
		sb.WriteString(indent)
		sb.WriteString("<")
		if n.Namespace != "" {
			sb.WriteString(n.Namespace + ":")
		}
		sb.WriteString(n.Data)
		for _, a := range n.Attr {
			fmt.Fprintf(&sb, " %s=%q", a.Key, a.Val)
		}
		sb.WriteString(">")
		lines = append(lines, sb.String())
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			lines = outline(lines, c, depth+1)
		}
		return lines
	default:
		return lines
	}
}

// Children returns node's children in order.
func (d *Document) Children(node host.Node) []host.Node {
	var out []host.Node
	for c := asNode(node).FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// Attribute returns the value of a named attribute.
func (d *Document) Attribute(node host.Node, name string) (string, bool) {
	for _, a := range asNode(node).Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Property returns a DOM property set through SetProperty.
func (d *Document) Property(node host.Node, name string) (any, bool) {
	v, ok := d.props[asNode(node)][name]
	return v, ok
}

// Describe renders a short label for traces: <tag#id.class> or "text".
func (d *Document) Describe(node host.Node) string {
	n := asNode(node)
	switch n.Type {
	case html.TextNode:
		return fmt.Sprintf("%q", n.Data)
	case html.ElementNode:
		var sb strings.Builder
		sb.WriteString("<")
		sb.WriteString(n.Data)
		if id, ok := d.Attribute(n, "id"); ok {
			sb.WriteString("#" + id)
		}
		if class, ok := d.Attribute(n, "class"); ok {
			for _, c := range strings.Fields(class) {
				sb.WriteString("." + c)
			}
		}
		sb.WriteString(">")
		return sb.String()
	default:
		return "#document"
	}
}

func (d *Document) CreateElement(tag string, svg bool) host.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	if svg {
		n.Namespace = "svg"
	}
	return n
}

func (d *Document) CreateText(text string) host.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

func (d *Document) SetText(node host.Node, text string) {
	asNode(node).Data = text
}

func (d *Document) SetAttribute(node host.Node, name, value string) {
	n := asNode(node)
	for i := range n.Attr {
		if n.Attr[i].Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func (d *Document) RemoveAttribute(node host.Node, name string) {
	n := asNode(node)
	n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool {
		return a.Key == name
	})
}

func (d *Document) SetStyle(node host.Node, name, value string) {
	n := asNode(node)
	if d.styles[n] == nil {
		d.styles[n] = make(map[string]string)
	}
	d.styles[n][name] = value
	d.syncStyle(n)
}

func (d *Document) RemoveStyle(node host.Node, name string) {
	n := asNode(node)
	delete(d.styles[n], name)
	d.syncStyle(n)
}

// syncStyle writes the style table back to the style attribute.
func (d *Document) syncStyle(n *html.Node) {
	style := d.styles[n]
	if len(style) == 0 {
		delete(d.styles, n)
		d.RemoveAttribute(n, "style")
		return
	}
	parts := make([]string, 0, len(style))
	for _, k := range slices.Sorted(maps.Keys(style)) {
		parts = append(parts, k+": "+style[k])
	}
	d.SetAttribute(n, "style", strings.Join(parts, "; "))
}

func (d *Document) SetProperty(node host.Node, name string, value any) {
	n := asNode(node)
	if d.props[n] == nil {
		d.props[n] = make(map[string]any)
	}
	d.props[n][name] = value
}

func (d *Document) RemoveProperty(node host.Node, name string) {
	n := asNode(node)
	delete(d.props[n], name)
	if len(d.props[n]) == 0 {
		delete(d.props, n)
	}
}

func (d *Document) AppendChild(parent, child host.Node) {
	c := asNode(child)
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	asNode(parent).AppendChild(c)
}

func (d *Document) InsertBefore(parent, child, ref host.Node) {
	if ref == nil {
		d.AppendChild(parent, child)
		return
	}
	c := asNode(child)
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	asNode(parent).InsertBefore(c, asNode(ref))
}

func (d *Document) RemoveChild(parent, child host.Node) {
	asNode(parent).RemoveChild(asNode(child))
}

// Release drops the properties, styles and listeners kept for node. The
// node's attributes and children are left as they are.
func (d *Document) Release(node host.Node) {
	n := asNode(node)
	delete(d.props, n)
	delete(d.styles, n)
	delete(d.listeners, n)
}

func (d *Document) Parent(node host.Node) host.Node {
	if p := asNode(node).Parent; p != nil {
		return p
	}
	return nil
}

func (d *Document) NextSibling(node host.Node) host.Node {
	if s := asNode(node).NextSibling; s != nil {
		return s
	}
	return nil
}

func asNode(node host.Node) *html.Node {
	n, ok := node.(*html.Node)
	if !ok || n == nil {
		panic(fmt.Sprintf("htmlhost: expected *html.Node, got %T", node))
	}
	return n
}
