package core

import (
	stderrors "errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/go-drift/vdom/pkg/errors"
	"github.com/go-drift/vdom/pkg/host"
)

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithLogger sets the logger receiving mount, patch, move and remove events
// at debug level. The default discards everything.
func WithLogger(logger zerolog.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// Renderer reconciles descriptor trees against a host through an adapter.
//
// A Renderer is not safe for concurrent use: Render and SetState calls must
// be serialized by the caller, as in a single UI thread.
type Renderer struct {
	adapter host.Adapter
	logger  zerolog.Logger
	roots   rootStore
	proxies map[host.Node]map[string]*eventProxy
}

// NewRenderer returns a renderer issuing host operations through adapter.
func NewRenderer(adapter host.Adapter, opts ...RendererOption) *Renderer {
	r := &Renderer{
		adapter: adapter,
		logger:  zerolog.Nop(),
		roots:   rootStore{trees: make(map[host.Node]*Node)},
		proxies: make(map[host.Node]map[string]*eventProxy),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Adapter returns the adapter the renderer was created with.
func (r *Renderer) Adapter() host.Adapter {
	return r.adapter
}

// Render makes container's content match n.
//
// With no tree recorded for container, n is mounted. With a nil n, the
// recorded tree is removed. Otherwise the recorded tree is patched to n.
// The recorded tree is updated only when reconciliation completes; on error
// it is left as it was and the host tree may be partially updated.
func (r *Renderer) Render(n *Node, container host.Node) (err error) {
	const op = "core.Renderer.Render"
	if container == nil {
		return errors.Invariant(op, "nil container")
	}
	defer r.recoverFault(op, &err)

	prev := r.roots.get(container)
	switch {
	case prev == nil && n == nil:
	case prev == nil:
		r.mount(n, container, false, nil)
		r.roots.set(container, n)
	case n == nil:
		r.remove(prev, container, true)
		r.roots.delete(container)
	default:
		r.patch(prev, n, container, false)
		r.roots.set(container, n)
	}
	return nil
}

// Current returns the tree last rendered into container, or nil.
func (r *Renderer) Current(container host.Node) *Node {
	return r.roots.get(container)
}

// recoverFault converts a reconciliation fault raised below op into *err and
// reports it. Any other panic is reported and re-raised.
func (r *Renderer) recoverFault(op string, err *error) {
	rec := recover()
	if rec == nil {
		return
	}
	if e, ok := rec.(error); ok {
		var fault *errors.Error
		if stderrors.As(e, &fault) {
			r.logger.Error().Err(fault).Str("op", op).Msg("reconcile failed")
			errors.Report(fault)
			*err = e
			return
		}
	}
	errors.ReportPanic(&errors.PanicError{
		Op:         op,
		Value:      rec,
		StackTrace: errors.CaptureStack(),
	})
	panic(rec)
}

// rootStore maps containers to the tree last rendered into them.
type rootStore struct {
	mu    sync.Mutex
	trees map[host.Node]*Node
}

func (s *rootStore) get(container host.Node) *Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trees[container]
}

func (s *rootStore) set(container host.Node, n *Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trees[container] = n
}

func (s *rootStore) delete(container host.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.trees, container)
}
