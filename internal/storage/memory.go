package storage

import (
	"context"
	"sort"
	"sync"
)

// Medium is an in-memory backing shared by several Memory views, one per
// simulated browsing context. It stands in for the profile-wide storage area.
type Medium struct {
	mu     sync.Mutex
	values map[string]string
	views  []*Memory
}

// NewMedium creates an empty medium.
func NewMedium() *Medium {
	return &Medium{values: make(map[string]string)}
}

// View attaches a new browsing context to the medium.
func (m *Medium) View() *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := &Memory{medium: m, watchers: make(map[int]func(string))}
	m.views = append(m.views, v)
	return v
}

// NewMemory returns a single view over a fresh medium.
func NewMemory() *Memory {
	return NewMedium().View()
}

// Compile-time interface checks
var (
	_ Storage = (*Memory)(nil)
	_ Watcher = (*Memory)(nil)
)

// Memory is one browsing context's view of a Medium.
type Memory struct {
	medium *Medium

	mu       sync.Mutex
	nextID   int
	watchers map[int]func(string)
}

func (v *Memory) Get(_ context.Context, key string) (string, error) {
	v.medium.mu.Lock()
	defer v.medium.mu.Unlock()

	value, ok := v.medium.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (v *Memory) Set(_ context.Context, key, value string) error {
	v.medium.mu.Lock()
	old, existed := v.medium.values[key]
	v.medium.values[key] = value
	v.medium.mu.Unlock()

	if existed && old == value {
		return nil
	}
	v.broadcast(key)
	return nil
}

func (v *Memory) Remove(_ context.Context, key string) error {
	v.medium.mu.Lock()
	_, existed := v.medium.values[key]
	delete(v.medium.values, key)
	v.medium.mu.Unlock()

	if existed {
		v.broadcast(key)
	}
	return nil
}

// Watch registers fn for changes made through other views of the same medium.
func (v *Memory) Watch(fn func(key string)) func() {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.watchers[id] = fn
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		delete(v.watchers, id)
		v.mu.Unlock()
	}
}

// broadcast notifies every other view. Handlers run after all locks are released
// so they may read the medium.
func (v *Memory) broadcast(key string) {
	v.medium.mu.Lock()
	views := make([]*Memory, 0, len(v.medium.views))
	for _, other := range v.medium.views {
		if other != v {
			views = append(views, other)
		}
	}
	v.medium.mu.Unlock()

	for _, other := range views {
		for _, fn := range other.snapshot() {
			fn(key)
		}
	}
}

func (v *Memory) snapshot() []func(string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	ids := make([]int, 0, len(v.watchers))
	for id := range v.watchers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	fns := make([]func(string), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, v.watchers[id])
	}
	return fns
}
