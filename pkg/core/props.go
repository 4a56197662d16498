package core

import (
	"fmt"
	"maps"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-drift/vdom/pkg/host"
)

// domPropPattern selects names assigned as DOM properties rather than
// attributes. SVG elements always take attributes.
var domPropPattern = regexp.MustCompile(`[A-Z]|^(?:value|checked|selected|muted)$`)

// patchProps applies every key of next and clears keys only present in prev.
// Keys are visited in sorted order so host calls are deterministic.
func (r *Renderer) patchProps(el host.Node, prev, next Props, svg bool) {
	for _, k := range slices.Sorted(maps.Keys(next)) {
		r.patchProp(el, k, prev[k], next[k], svg)
	}
	for _, k := range slices.Sorted(maps.Keys(prev)) {
		if _, ok := next[k]; !ok {
			r.patchProp(el, k, prev[k], nil, svg)
		}
	}
}

func (r *Renderer) patchProp(el host.Node, name string, prev, next any, svg bool) {
	if isEventProp(name) {
		r.patchEvent(el, strings.ToLower(name[2:]), next)
		return
	}
	if sameValue(prev, next) {
		return
	}
	switch {
	case name == "style":
		r.patchStyle(el, styleMap(prev), styleMap(next))
	case name == "class":
		if cls := classString(next); cls != "" {
			r.adapter.SetAttribute(el, "class", cls)
		} else {
			r.adapter.RemoveAttribute(el, "class")
		}
	case !svg && domPropPattern.MatchString(name):
		if next == nil {
			r.adapter.RemoveProperty(el, name)
		} else {
			r.adapter.SetProperty(el, name, next)
		}
	default:
		switch v := next.(type) {
		case nil:
			r.adapter.RemoveAttribute(el, name)
		case bool:
			if v {
				r.adapter.SetAttribute(el, name, "")
			} else {
				r.adapter.RemoveAttribute(el, name)
			}
		default:
			r.adapter.SetAttribute(el, name, fmt.Sprint(v))
		}
	}
}

func (r *Renderer) patchStyle(el host.Node, prev, next map[string]string) {
	for _, k := range slices.Sorted(maps.Keys(next)) {
		if v, ok := prev[k]; !ok || v != next[k] {
			r.adapter.SetStyle(el, k, next[k])
		}
	}
	for _, k := range slices.Sorted(maps.Keys(prev)) {
		if _, ok := next[k]; !ok {
			r.adapter.RemoveStyle(el, k)
		}
	}
}

// eventProxy is the listener bound on the host node. Patches swap the
// handler it forwards to instead of rebinding, since closures cannot be
// compared for equality.
type eventProxy struct {
	handler  any
	listener host.Listener
}

func (p *eventProxy) invoke(ev host.Event) {
	switch h := p.handler.(type) {
	case func(host.Event):
		h(ev)
	case func():
		h()
	}
}

func (r *Renderer) patchEvent(el host.Node, event string, handler any) {
	byEvent := r.proxies[el]
	proxy := byEvent[event]
	switch {
	case handler == nil && proxy == nil:
	case handler == nil:
		r.adapter.RemoveEventListener(el, event, proxy.listener)
		delete(byEvent, event)
		if len(byEvent) == 0 {
			delete(r.proxies, el)
		}
	case proxy != nil:
		proxy.handler = handler
	default:
		proxy = &eventProxy{handler: handler}
		proxy.listener = proxy.invoke
		if byEvent == nil {
			byEvent = make(map[string]*eventProxy)
			r.proxies[el] = byEvent
		}
		byEvent[event] = proxy
		r.adapter.AddEventListener(el, event, proxy.listener)
	}
}

func isEventProp(name string) bool {
	return len(name) > 2 && name[0] == 'o' && name[1] == 'n'
}

func styleMap(v any) map[string]string {
	switch s := v.(type) {
	case map[string]string:
		return s
	case map[string]any:
		return stringify(s)
	case Props:
		return stringify(s)
	default:
		return nil
	}
}

func stringify(m map[string]any) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if v != nil {
			out[k] = fmt.Sprint(v)
		}
	}
	return out
}

// classString coerces the string, list and set forms of class to a
// space-separated string.
func classString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return strings.Join(strings.Fields(c), " ")
	case []string:
		return strings.Join(slices.DeleteFunc(slices.Clone(c), func(s string) bool { return s == "" }), " ")
	case []any:
		parts := make([]string, 0, len(c))
		for _, p := range c {
			if s := classString(p); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	case map[string]bool:
		var parts []string
		for _, k := range slices.Sorted(maps.Keys(c)) {
			if c[k] {
				parts = append(parts, k)
			}
		}
		return strings.Join(parts, " ")
	case map[string]any:
		var parts []string
		for _, k := range slices.Sorted(maps.Keys(c)) {
			if truthy(c[k]) {
				parts = append(parts, k)
			}
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(c)
	}
}

func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		return b != ""
	default:
		return true
	}
}

// sameValue compares funcs by code pointer and everything else deeply.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() == reflect.Func || vb.Kind() == reflect.Func {
		return va.Kind() == vb.Kind() && va.Type() == vb.Type() && va.Pointer() == vb.Pointer()
	}
	return reflect.DeepEqual(a, b)
}
