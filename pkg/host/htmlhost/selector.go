package htmlhost

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/go-drift/vdom/pkg/host"
)

var (
	// ErrNoMatch is returned by Query when no element matches.
	ErrNoMatch = errors.New("htmlhost: no element matches selector")
	// ErrBadSelector is returned by Query for selectors outside the supported grammar.
	ErrBadSelector = errors.New("htmlhost: unsupported selector")
)

// selector is a compound selector: tag, #id and any number of .class parts.
// Combinators and attribute selectors are not supported.
type selector struct {
	tag     string
	id      string
	classes []string
}

func parseSelector(raw string) (selector, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.ContainsAny(s, " >+~[]:*,") {
		return selector{}, fmt.Errorf("%w: %q", ErrBadSelector, raw)
	}
	var sel selector
	i := strings.IndexAny(s, "#.")
	if i < 0 {
		sel.tag = s
		return sel, nil
	}
	sel.tag = s[:i]
	rest := s[i:]
	for rest != "" {
		marker := rest[0]
		rest = rest[1:]
		end := strings.IndexAny(rest, "#.")
		if end < 0 {
			end = len(rest)
		}
		part := rest[:end]
		rest = rest[end:]
		if part == "" {
			return selector{}, fmt.Errorf("%w: %q", ErrBadSelector, raw)
		}
		switch marker {
		case '#':
			if sel.id != "" {
				return selector{}, fmt.Errorf("%w: %q has two ids", ErrBadSelector, raw)
			}
			sel.id = part
		case '.':
			sel.classes = append(sel.classes, part)
		}
	}
	return sel, nil
}

func (s selector) matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if s.tag != "" && n.Data != s.tag {
		return false
	}
	var id, class string
	for _, a := range n.Attr {
		switch a.Key {
		case "id":
			id = a.Val
		case "class":
			class = a.Val
		}
	}
	if s.id != "" && id != s.id {
		return false
	}
	if len(s.classes) > 0 {
		have := strings.Fields(class)
		for _, c := range s.classes {
			if !slices.Contains(have, c) {
				return false
			}
		}
	}
	return true
}

// Query returns the first element in document order matching selector.
// Parsed selectors are cached.
func (d *Document) Query(raw string) (host.Node, error) {
	sel, ok := d.selectors.Get(raw)
	if !ok {
		parsed, err := parseSelector(raw)
		if err != nil {
			return nil, err
		}
		d.selectors.Add(raw, parsed)
		sel = parsed
	}
	if found := find(d.root, sel); found != nil {
		return found, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNoMatch, raw)
}

func find(n *html.Node, sel selector) *html.Node {
	if sel.matches(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, sel); found != nil {
			return found
		}
	}
	return nil
}
