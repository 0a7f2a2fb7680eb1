// Package storage provides the durable key-value medium that consent and
// attribution state live in, plus change notifications across browsing contexts.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key holds no value.
	ErrNotFound = errors.New("storage: key not found")
	// ErrUnavailable is returned when no durable storage exists in the current context.
	ErrUnavailable = errors.New("storage: unavailable")
)

// Storage is a string key-value store shared by every browsing context of one profile.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Watcher delivers the name of a key changed by another browsing context.
// Writes made through the watching context itself are not reported.
type Watcher interface {
	Watch(fn func(key string)) (cancel func())
}

// Compile-time interface checks
var (
	_ Storage = Unavailable{}
	_ Watcher = Unavailable{}
)

// Unavailable is the storage of a context without durable storage, such as a
// server-side render. Reads report ErrUnavailable and writes are rejected.
type Unavailable struct{}

func (Unavailable) Get(context.Context, string) (string, error) { return "", ErrUnavailable }

func (Unavailable) Set(context.Context, string, string) error { return ErrUnavailable }

func (Unavailable) Remove(context.Context, string) error { return ErrUnavailable }

// Watch never fires.
func (Unavailable) Watch(func(string)) func() { return func() {} }
