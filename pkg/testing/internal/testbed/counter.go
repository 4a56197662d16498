// Package testbed provides internal test components for the testing framework.
package testbed

import (
	"fmt"

	"github.com/go-drift/vdom/pkg/core"
)

// Counter is a stateful component that displays a count and increments on
// click. Props: "initial" (int) seeds the count; "onTap" (func(int)) is
// called with the new count after each click.
var Counter = core.Stateful("Counter", func() core.Component {
	return &counter{}
})

type counter struct {
	core.ComponentBase
	started bool
	count   int
}

func (c *counter) Render() *core.Node {
	if !c.started {
		c.started = true
		c.count, _ = c.Props()["initial"].(int)
	}
	return core.H("button", core.Props{"onclick": func() {
		_ = c.SetState(func() {
			c.count++
		})
		if onTap, ok := c.Props()["onTap"].(func(int)); ok {
			onTap(c.count)
		}
	}}, fmt.Sprintf("%d", c.count))
}
