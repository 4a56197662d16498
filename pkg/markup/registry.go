package markup

import (
	"maps"
	"slices"
	"sync"

	"github.com/go-drift/vdom/pkg/core"
	"github.com/go-drift/vdom/pkg/host"
)

// Registry resolves the component and event handler names used in documents.
type Registry struct {
	mu         sync.RWMutex
	components map[string]*core.ComponentDef
	handlers   map[string]host.Listener
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		components: make(map[string]*core.ComponentDef),
		handlers:   make(map[string]host.Listener),
	}
}

// Register adds def under its name, replacing any previous definition.
func (r *Registry) Register(def *core.ComponentDef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components[def.Name] = def
}

// RegisterHandler makes fn available to "on<event>" props by name.
func (r *Registry) RegisterHandler(name string, fn host.Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = fn
}

// Component looks up a definition by name.
func (r *Registry) Component(name string) (*core.ComponentDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.components[name]
	return def, ok
}

// Handler looks up an event handler by name.
func (r *Registry) Handler(name string) (host.Listener, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.handlers[name]
	return fn, ok
}

// Names returns the registered component names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.components))
}
