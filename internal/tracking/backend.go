package tracking

import (
	"context"
	"errors"
)

// ErrNotLoaded is returned by a backend whose vendor surface is missing.
var ErrNotLoaded = errors.New("tracking: backend not loaded")

// Backend is the capability every analytics backend exposes.
type Backend interface {
	RecordEvent(ctx context.Context, e Event) error
	RecordPageView(ctx context.Context, url string) error
}

// Loader instantiates one backend. Load is called at most once per successful
// activation and must not block on the network.
type Loader interface {
	Name() string
	Load(ctx context.Context) (Backend, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc struct {
	LoaderName string
	Fn         func(ctx context.Context) (Backend, error)
}

func (l LoaderFunc) Name() string { return l.LoaderName }

func (l LoaderFunc) Load(ctx context.Context) (Backend, error) { return l.Fn(ctx) }

// Compile-time interface checks
var (
	_ Backend = nopBackend{}
	_ Loader  = LoaderFunc{}
)

// nopBackend occupies a slot until its loader has produced the real backend.
type nopBackend struct{}

func (nopBackend) RecordEvent(context.Context, Event) error { return nil }

func (nopBackend) RecordPageView(context.Context, string) error { return nil }
