package container

import (
	"slices"

	"github.com/google/uuid"
)

// resolution tracks the beans in creation along one top-level lookup,
// including lookups issued from constructors and hooks on the same goroutine.
// It is confined to that goroutine.
type resolution struct {
	id   string
	path []string

	// set by each public lookup; the next bean visited runs the graph check
	fresh bool
}

// ID identifies the top-level lookup in log entries.
func (r *resolution) ID() string {
	if r.id == "" {
		r.id = uuid.NewString()
	}
	return r.id
}

// enter pushes name onto the path, failing if it is already in creation.
func (r *resolution) enter(name string) error {
	if slices.Contains(r.path, name) {
		return cycleError(r.path, name)
	}
	r.path = append(r.path, name)
	return nil
}

func (r *resolution) leave() {
	r.path = r.path[:len(r.path)-1]
}
