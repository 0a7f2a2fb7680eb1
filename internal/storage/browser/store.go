//go:build js && wasm
// +build js,wasm

// Package browser backs storage.Storage with window.localStorage.
package browser

import (
	"context"
	"fmt"
	"syscall/js"

	"go-attribution/internal/storage"
)

// Compile-time interface checks
var (
	_ storage.Storage = (*Store)(nil)
	_ storage.Watcher = (*Store)(nil)
)

// Store wraps window.localStorage for the current tab.
type Store struct {
	window js.Value
	local  js.Value
}

// Open returns the page's localStorage, or storage.ErrUnavailable when the page has
// none (private modes and sandboxed frames throw on access).
func Open() (s *Store, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, r)
		}
	}()

	window := js.Global().Get("window")
	if window.IsUndefined() {
		return nil, storage.ErrUnavailable
	}
	local := window.Get("localStorage")
	if local.IsUndefined() || local.IsNull() {
		return nil, storage.ErrUnavailable
	}
	return &Store{window: window, local: local}, nil
}

func (s *Store) Get(_ context.Context, key string) (value string, err error) {
	defer recoverJS(&err)

	v := s.local.Call("getItem", key)
	if v.IsNull() {
		return "", storage.ErrNotFound
	}
	return v.String(), nil
}

func (s *Store) Set(_ context.Context, key, value string) (err error) {
	defer recoverJS(&err)

	s.local.Call("setItem", key, value)
	return nil
}

func (s *Store) Remove(_ context.Context, key string) (err error) {
	defer recoverJS(&err)

	s.local.Call("removeItem", key)
	return nil
}

// Watch listens to the window "storage" event, which the browser fires in every
// other tab of the profile. A localStorage.clear() is reported as the empty key.
func (s *Store) Watch(fn func(key string)) func() {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		key := args[0].Get("key")
		if key.IsNull() || key.IsUndefined() {
			fn("")
			return nil
		}
		fn(key.String())
		return nil
	})
	s.window.Call("addEventListener", "storage", cb)

	return func() {
		s.window.Call("removeEventListener", "storage", cb)
		cb.Release()
	}
}

// recoverJS turns a thrown DOMException (quota, security) into an error.
func recoverJS(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("localStorage: %v", r)
	}
}
