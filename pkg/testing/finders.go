package testing

import (
	"fmt"
	"strings"

	"github.com/go-drift/vdom/pkg/core"
	"github.com/go-drift/vdom/pkg/host"
)

// Finder locates nodes in a rendered descriptor tree.
type Finder interface {
	// Evaluate returns all matching nodes under root (depth-first pre-order,
	// descending into component output).
	Evaluate(root *core.Node) []*core.Node
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	nodes  []*core.Node
	finder Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *core.Node {
	if len(r.nodes) == 0 {
		panic(fmt.Sprintf("Finder found no nodes: %s", r.description()))
	}
	return r.nodes[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *core.Node {
	if len(r.nodes) == 0 {
		return nil
	}
	return r.nodes[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *core.Node {
	if index < 0 || index >= len(r.nodes) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.nodes), r.description()))
	}
	return r.nodes[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []*core.Node {
	return r.nodes
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.nodes)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.nodes) > 0
}

// Host returns the host node of the first match. Panics if no matches.
func (r FinderResult) Host() host.Node {
	return r.First().Host()
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// --- Concrete finders ---

// tagFinder matches elements by tag name.
type tagFinder struct {
	tag string
}

func (f *tagFinder) Evaluate(root *core.Node) []*core.Node {
	return collectMatches(root, func(n *core.Node) bool {
		return n.Kind.IsElement() && n.Tag == f.tag
	})
}

func (f *tagFinder) Description() string {
	return fmt.Sprintf("ByTag(%s)", f.tag)
}

// ByTag returns a finder that matches HTML and SVG elements named tag.
func ByTag(tag string) Finder {
	return &tagFinder{tag: tag}
}

// keyFinder matches nodes by sibling key.
type keyFinder struct {
	key string
}

func (f *keyFinder) Evaluate(root *core.Node) []*core.Node {
	return collectMatches(root, func(n *core.Node) bool {
		return n.Key == f.key
	})
}

func (f *keyFinder) Description() string {
	return fmt.Sprintf("ByKey(%s)", f.key)
}

// ByKey returns a finder that matches nodes whose key equals key. Positional
// keys ("|0", "|1", ...) match as well.
func ByKey(key string) Finder {
	return &keyFinder{key: key}
}

// textFinder matches text nodes by exact content.
type textFinder struct {
	text string
}

func (f *textFinder) Evaluate(root *core.Node) []*core.Node {
	return collectMatches(root, func(n *core.Node) bool {
		return n.Kind == core.KindText && n.Text == f.text
	})
}

func (f *textFinder) Description() string {
	return fmt.Sprintf("ByText(%q)", f.text)
}

// ByText returns a finder that matches text nodes with exact content.
func ByText(text string) Finder {
	return &textFinder{text: text}
}

// textContainingFinder matches text nodes containing a substring.
type textContainingFinder struct {
	substring string
}

func (f *textContainingFinder) Evaluate(root *core.Node) []*core.Node {
	return collectMatches(root, func(n *core.Node) bool {
		return n.Kind == core.KindText && strings.Contains(n.Text, f.substring)
	})
}

func (f *textContainingFinder) Description() string {
	return fmt.Sprintf("ByTextContaining(%q)", f.substring)
}

// ByTextContaining returns a finder that matches text nodes containing
// substring.
func ByTextContaining(substring string) Finder {
	return &textContainingFinder{substring: substring}
}

// componentFinder matches component nodes by definition name.
type componentFinder struct {
	name string
}

func (f *componentFinder) Evaluate(root *core.Node) []*core.Node {
	return collectMatches(root, func(n *core.Node) bool {
		def, ok := n.Tag.(*core.ComponentDef)
		return ok && n.Kind.IsComponent() && def.Name == f.name
	})
}

func (f *componentFinder) Description() string {
	return fmt.Sprintf("ByComponent(%s)", f.name)
}

// ByComponent returns a finder that matches component nodes whose
// definition is named name.
func ByComponent(name string) Finder {
	return &componentFinder{name: name}
}

// predicateFinder matches nodes satisfying a predicate.
type predicateFinder struct {
	fn   func(*core.Node) bool
	desc string
}

func (f *predicateFinder) Evaluate(root *core.Node) []*core.Node {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches nodes satisfying fn.
func ByPredicate(fn func(*core.Node) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// descendantFinder finds nodes matching 'matching' that are descendants
// of nodes matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root *core.Node) []*core.Node {
	var results []*core.Node
	seen := make(map[*core.Node]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		for _, child := range childrenOf(ancestor) {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches nodes satisfying 'matching'
// that are descendants of nodes matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// ancestorFinder finds nodes matching 'matching' that are ancestors of
// nodes matching 'of'.
type ancestorFinder struct {
	of       Finder
	matching Finder
}

func (f *ancestorFinder) Evaluate(root *core.Node) []*core.Node {
	descendants := f.of.Evaluate(root)
	if len(descendants) == 0 {
		return nil
	}
	var results []*core.Node
	for _, candidate := range f.matching.Evaluate(root) {
		for _, d := range descendants {
			if candidate != d && isAncestorOf(candidate, d) {
				results = append(results, candidate)
				break
			}
		}
	}
	return results
}

func (f *ancestorFinder) Description() string {
	return fmt.Sprintf("Ancestor(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Ancestor returns a finder that matches nodes satisfying 'matching' that
// are ancestors of nodes matching 'of'.
func Ancestor(of, matching Finder) Finder {
	return &ancestorFinder{of: of, matching: matching}
}

// childrenOf returns the nodes directly below n in the rendered tree.
func childrenOf(n *core.Node) []*core.Node {
	if out := n.Rendered(); out != nil {
		return []*core.Node{out}
	}
	return n.Children
}

func isAncestorOf(ancestor, descendant *core.Node) bool {
	found := false
	ancestor.Walk(func(n *core.Node) bool {
		if n == descendant {
			found = true
		}
		return !found
	})
	return found
}

// collectMatches performs a depth-first pre-order traversal, collecting
// nodes that satisfy the predicate.
func collectMatches(root *core.Node, predicate func(*core.Node) bool) []*core.Node {
	var results []*core.Node
	root.Walk(func(n *core.Node) bool {
		if predicate(n) {
			results = append(results, n)
		}
		return true
	})
	return results
}
