package controller

import "sync"

// guard hands out monotonically increasing request tokens. Writes for a
// token are committed only while it is the newest one issued, so an older
// invocation finishing late cannot overwrite a newer one. A disabled guard
// commits every write and leaves overlapping invocations last-completed-wins.
type guard struct {
	mu       sync.Mutex
	latest   uint64
	disabled bool
}

func (g *guard) next() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.latest++
	return g.latest
}

// commit runs fn if token is still current and reports whether it ran.
func (g *guard) commit(token uint64, fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.disabled && token != g.latest {
		return false
	}
	fn()
	return true
}

// Option configures a controller.
type Option func(*guard)

// WithoutStaleGuard lets every completion write its result, even when a
// newer invocation of the same controller has started since.
func WithoutStaleGuard() Option {
	return func(g *guard) { g.disabled = true }
}

func newGuard(opts []Option) *guard {
	g := &guard{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}
