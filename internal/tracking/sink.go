package tracking

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Sink fans events out to registered backends in registration order. Each
// backend starts as a no-op and becomes live once Activate has loaded it.
// Failures are contained per backend and never reach the caller.
type Sink struct {
	logger *zap.Logger

	mu    sync.Mutex
	slots []*slot
}

type slot struct {
	loader Loader

	loadMu  sync.Mutex
	loaded  atomic.Bool
	backend atomic.Value // holds backendHolder
}

type backendHolder struct{ Backend }

// NewSink creates a sink with no backends.
func NewSink(logger *zap.Logger) *Sink {
	return &Sink{logger: logger}
}

// Register appends backends. They receive nothing until activated.
func (s *Sink) Register(loaders ...Loader) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range loaders {
		sl := &slot{loader: l}
		sl.backend.Store(backendHolder{nopBackend{}})
		s.slots = append(s.slots, sl)
	}
}

// Activate loads every registered backend that is not live yet. A backend is
// instantiated at most once; a failed load leaves the no-op in place and is
// retried by the next Activate.
func (s *Sink) Activate(ctx context.Context) {
	for _, sl := range s.snapshot() {
		s.load(ctx, sl)
	}
}

func (s *Sink) load(ctx context.Context, sl *slot) {
	sl.loadMu.Lock()
	defer sl.loadMu.Unlock()

	if sl.loaded.Load() {
		return
	}

	b, err := safeLoad(ctx, sl.loader)
	if err != nil {
		s.logger.Debug("analytics backend failed to load",
			zap.String("backend", sl.loader.Name()),
			zap.Error(err),
		)
		return
	}

	sl.backend.Store(backendHolder{b})
	sl.loaded.Store(true)
	s.logger.Debug("analytics backend loaded", zap.String("backend", sl.loader.Name()))
}

// Dispatch forwards e to every backend. It is a no-op on a nil Sink.
func (s *Sink) Dispatch(ctx context.Context, e Event) {
	if s == nil {
		return
	}
	for _, sl := range s.snapshot() {
		name := sl.loader.Name()
		s.invoke(name, "event", func() error {
			return sl.current().RecordEvent(ctx, e)
		})
	}
}

// PageView forwards a page view to every backend. It is a no-op on a nil Sink.
func (s *Sink) PageView(ctx context.Context, url string) {
	if s == nil {
		return
	}
	for _, sl := range s.snapshot() {
		name := sl.loader.Name()
		s.invoke(name, "page_view", func() error {
			return sl.current().RecordPageView(ctx, url)
		})
	}
}

// Live returns the names of loaded backends in registration order.
func (s *Sink) Live() []string {
	live := lo.Filter(s.snapshot(), func(sl *slot, _ int) bool {
		return sl.loaded.Load()
	})
	return lo.Map(live, func(sl *slot, _ int) string {
		return sl.loader.Name()
	})
}

func (s *Sink) snapshot() []*slot {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*slot(nil), s.slots...)
}

// invoke runs one backend call, turning both errors and panics into a debug log.
func (s *Sink) invoke(backend, kind string, call func() error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Debug("analytics backend panicked",
				zap.String("backend", backend),
				zap.String("kind", kind),
				zap.Any("panic", r),
			)
		}
	}()

	if err := call(); err != nil {
		s.logger.Debug("analytics backend call failed",
			zap.String("backend", backend),
			zap.String("kind", kind),
			zap.Error(err),
		)
	}
}

func (sl *slot) current() Backend {
	return sl.backend.Load().(backendHolder).Backend
}

func safeLoad(ctx context.Context, l Loader) (b Backend, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, err = nil, fmt.Errorf("loader panicked: %v", r)
		}
	}()

	b, err = l.Load(ctx)
	if err == nil && b == nil {
		err = ErrNotLoaded
	}
	return b, err
}
