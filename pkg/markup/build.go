package markup

import (
	"fmt"
	"strings"

	"github.com/go-drift/vdom/pkg/core"
	"github.com/go-drift/vdom/pkg/errors"
)

// Tags with special meaning in documents.
const (
	TagFragment = "#fragment"
	TagPortal   = "#portal"
)

// Build converts every step into a descriptor tree. Unmount steps yield nil.
// A nil registry resolves no component or handler names.
func (d *Document) Build(reg *Registry) ([]*core.Node, error) {
	if reg == nil {
		reg = NewRegistry()
	}
	trees := make([]*core.Node, len(d.Steps))
	for i, step := range d.Steps {
		if step.Tree == nil {
			continue
		}
		n, err := step.Tree.Build(reg, fmt.Sprintf("steps[%d].tree", i))
		if err != nil {
			return nil, err
		}
		trees[i] = n
	}
	return trees, nil
}

// Build converts s into a descriptor. path locates s in error messages.
// Decode errors carry path; builder errors are wrapped with it and keep
// their kind.
func (s *NodeSpec) Build(reg *Registry, path string) (*core.Node, error) {
	const op = "markup.Build"

	if s.Tag == "" && s.Component == "" {
		if s.Text == nil {
			return nil, errors.Decode(op, path, "node needs a tag, a component or text")
		}
		if len(s.Children) > 0 || len(s.Props) > 0 || s.Key != nil {
			return nil, errors.Decode(op, path, "text node takes no props, key or children")
		}
		return core.TextNode(*s.Text), nil
	}
	if s.Tag != "" && s.Component != "" {
		return nil, errors.Decode(op, path, "tag and component are mutually exclusive")
	}
	if s.Text != nil && len(s.Children) > 0 {
		return nil, errors.Decode(op, path, "text and children are mutually exclusive")
	}

	var tag any = s.Tag
	switch {
	case s.Component != "":
		def, ok := reg.Component(s.Component)
		if !ok {
			return nil, errors.Decode(op, path, fmt.Sprintf("unknown component %q", s.Component))
		}
		tag = def
	case s.Tag == TagFragment:
		tag = core.Fragment
	case s.Tag == TagPortal:
		tag = core.Portal
	case strings.HasPrefix(s.Tag, "#"):
		return nil, errors.Decode(op, path, fmt.Sprintf("unknown special tag %q", s.Tag))
	}
	if s.Target != "" && tag != core.Portal {
		return nil, errors.Decode(op, path, "target is only valid on #portal")
	}

	props, err := s.props(reg, path)
	if err != nil {
		return nil, err
	}

	var children any
	switch {
	case s.Text != nil:
		children = *s.Text
	case len(s.Children) > 0:
		list := make([]any, len(s.Children))
		for i, c := range s.Children {
			if c == nil {
				continue
			}
			child, err := c.Build(reg, fmt.Sprintf("%s.children[%d]", path, i))
			if err != nil {
				return nil, err
			}
			list[i] = child
		}
		children = list
	}

	n, err := core.New(tag, props, children)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// props merges key and target into the document props and resolves event
// handler names through reg.
func (s *NodeSpec) props(reg *Registry, path string) (core.Props, error) {
	if len(s.Props) == 0 && s.Key == nil && s.Target == "" {
		return nil, nil
	}
	props := make(core.Props, len(s.Props)+2)
	for name, v := range s.Props {
		if name == core.PropKey || name == core.PropTarget {
			return nil, errors.Decode("markup.Build", path+".props."+name, "use the node field instead")
		}
		if strings.HasPrefix(name, "on") && len(name) > 2 {
			handlerName, ok := v.(string)
			if !ok {
				return nil, errors.Decode("markup.Build", path+".props."+name, "handler must be a name")
			}
			fn, ok := reg.Handler(handlerName)
			if !ok {
				return nil, errors.Decode("markup.Build", path+".props."+name, fmt.Sprintf("unknown handler %q", handlerName))
			}
			v = fn
		}
		props[name] = v
	}
	if s.Key != nil {
		props[core.PropKey] = s.Key
	}
	if s.Target != "" {
		props[core.PropTarget] = s.Target
	}
	return props, nil
}
