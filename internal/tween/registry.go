package tween

import "time"

// Registry holds the active tweens keyed by the property they drive.
// It is not safe for concurrent use; tick it from the frame loop.
type Registry struct {
	tasks map[string]*Tween
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tasks: make(map[string]*Tween),
	}
}

// Start runs tw under key, cancelling any tween already running for that key.
func (r *Registry) Start(key string, tw *Tween) {
	if _, ok := r.tasks[key]; !ok {
		r.order = append(r.order, key)
	}
	tw.elapsed = 0
	r.tasks[key] = tw
}

// Cancel stops the tween for key without applying further values.
// Returns false if nothing was running.
func (r *Registry) Cancel(key string) bool {
	if _, ok := r.tasks[key]; !ok {
		return false
	}
	r.remove(key)
	return true
}

// Active reports whether a tween is running for key.
func (r *Registry) Active(key string) bool {
	_, ok := r.tasks[key]
	return ok
}

// Len returns the number of running tweens.
func (r *Registry) Len() int {
	return len(r.tasks)
}

// Tick advances every running tween by dt in start order.
func (r *Registry) Tick(dt time.Duration) {
	if len(r.order) == 0 {
		return
	}

	// Callbacks may start or cancel tweens, so iterate over a snapshot.
	keys := append([]string(nil), r.order...)
	for _, key := range keys {
		tw, ok := r.tasks[key]
		if !ok {
			continue
		}
		if !tw.advance(dt) {
			continue
		}
		// A callback may have replaced the tween for this key.
		if r.tasks[key] == tw {
			r.remove(key)
		}
		if tw.OnComplete != nil {
			tw.OnComplete()
		}
	}
}

func (r *Registry) remove(key string) {
	delete(r.tasks, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}
