package htmlhost

import (
	"reflect"
	"slices"

	"github.com/go-drift/vdom/pkg/host"
)

func (d *Document) AddEventListener(node host.Node, event string, listener any) {
	n := asNode(node)
	if d.listeners[n] == nil {
		d.listeners[n] = make(map[string][]any)
	}
	d.listeners[n][event] = append(d.listeners[n][event], listener)
}

func (d *Document) RemoveEventListener(node host.Node, event string, listener any) {
	n := asNode(node)
	byEvent := d.listeners[n]
	if byEvent == nil {
		return
	}
	idx := slices.IndexFunc(byEvent[event], func(l any) bool {
		return sameListener(l, listener)
	})
	if idx < 0 {
		return
	}
	byEvent[event] = slices.Delete(byEvent[event], idx, idx+1)
	if len(byEvent[event]) == 0 {
		delete(byEvent, event)
	}
	if len(byEvent) == 0 {
		delete(d.listeners, n)
	}
}

// ListenerCount returns how many listeners are bound for event on node.
func (d *Document) ListenerCount(node host.Node, event string) int {
	return len(d.listeners[asNode(node)][event])
}

// Dispatch invokes the listeners bound for event on node and returns how
// many ran. Listeners of type func(host.Event) receive the event; func()
// listeners are called without it. Other values are skipped.
func (d *Document) Dispatch(node host.Node, event string, payload any) int {
	n := asNode(node)
	listeners := slices.Clone(d.listeners[n][event])
	ev := host.Event{Type: event, Target: n, Payload: payload}
	ran := 0
	for _, l := range listeners {
		switch fn := l.(type) {
		case func(host.Event):
			fn(ev)
		case func():
			fn()
		default:
			continue
		}
		ran++
	}
	return ran
}

// sameListener compares funcs by code pointer; other values by equality.
func sameListener(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() == reflect.Func && vb.Kind() == reflect.Func {
		return va.Pointer() == vb.Pointer()
	}
	if !va.IsValid() || !vb.IsValid() {
		return !va.IsValid() && !vb.IsValid()
	}
	if va.Type().Comparable() && vb.Type().Comparable() {
		return a == b
	}
	return false
}
