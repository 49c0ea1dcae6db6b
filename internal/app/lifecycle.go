package app

import "sync"

// Lifecycle collects the hooks that run when the application exits.
type Lifecycle struct {
	mu    sync.Mutex
	hooks []func()
}

// OnExit registers fn to run on Exit. Hooks run in reverse registration
// order, so later components shut down before the ones they depend on.
func (l *Lifecycle) OnExit(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hooks = append(l.hooks, fn)
}

// Exit runs every registered hook. It runs them again each time it is
// called; hooks must tolerate that.
func (l *Lifecycle) Exit() {
	l.mu.Lock()
	hooks := make([]func(), len(l.hooks))
	copy(hooks, l.hooks)
	l.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}
