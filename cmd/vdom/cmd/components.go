package cmd

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/go-drift/vdom/pkg/core"
	"github.com/go-drift/vdom/pkg/host"
	"github.com/go-drift/vdom/pkg/markup"
)

// demoRegistry holds the components and handlers documents may name.
func demoRegistry(logger zerolog.Logger) *markup.Registry {
	reg := markup.NewRegistry()
	reg.Register(greeting)
	reg.Register(badge)
	reg.Register(counterDef)
	reg.RegisterHandler("log", func(ev host.Event) {
		logger.Info().Str("event", ev.Type).Interface("payload", ev.Payload).Msg("handler")
	})
	return reg
}

// Greeting renders <h1>hello NAME</h1>. Props: name.
var greeting = core.Functional("Greeting", func(p core.Props) *core.Node {
	name, _ := p["name"].(string)
	if name == "" {
		name = "world"
	}
	return core.H("h1", nil, "hello "+name)
})

// Badge renders a labelled span. Props: label, tone.
var badge = core.Functional("Badge", func(p core.Props) *core.Node {
	tone, _ := p["tone"].(string)
	if tone == "" {
		tone = "info"
	}
	return core.H("span", core.Props{"class": []any{"badge", "badge-" + tone}}, p["label"])
})

// Counter is a button showing a count. Props: initial.
var counterDef = core.Stateful("Counter", func() core.Component {
	return &counter{}
})

type counter struct {
	core.ComponentBase
	started bool
	count   int64
}

func (c *counter) Render() *core.Node {
	if !c.started {
		c.started = true
		c.count = intProp(c.Props()["initial"])
	}
	return core.H("button", core.Props{"onclick": func() {
		_ = c.SetState(func() { c.count++ })
	}}, fmt.Sprintf("count: %d", c.count))
}

// intProp reads an integer decoded from YAML (int) or TOML (int64).
func intProp(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	default:
		return 0
	}
}
