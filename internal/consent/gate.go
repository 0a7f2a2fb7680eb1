package consent

import (
	"context"
	"sync"

	"go-attribution/internal/storage"

	"go.uber.org/zap"
)

// Activator instantiates analytics backends. Implementations must be idempotent.
type Activator interface {
	Activate(ctx context.Context)
}

// Gate watches the stored decision and activates backends when analytics becomes
// permitted. Revoking consent does not tear down backends that are already live;
// it only prevents further activation.
type Gate struct {
	store     *Store
	watcher   storage.Watcher
	notifier  Notifier
	activator Activator
	logger    *zap.Logger

	mu        sync.Mutex
	ctx       context.Context
	permitted bool
	cancels   []func()
}

// NewGate creates a gate. watcher and notifier may be nil when the context has
// no cross-tab or in-tab signal.
func NewGate(store *Store, watcher storage.Watcher, notifier Notifier, activator Activator, logger *zap.Logger) *Gate {
	return &Gate{
		store:     store,
		watcher:   watcher,
		notifier:  notifier,
		activator: activator,
		logger:    logger,
	}
}

// Start evaluates the decision once and subscribes to both change signals.
// Calling Start on a started gate only re-evaluates.
func (g *Gate) Start(ctx context.Context) {
	g.mu.Lock()
	started := g.ctx != nil
	g.ctx = ctx
	g.mu.Unlock()

	if !started {
		var cancels []func()
		if g.watcher != nil {
			cancels = append(cancels, g.watcher.Watch(g.onStorageChange))
		}
		if g.notifier != nil {
			cancels = append(cancels, g.notifier.Subscribe(g.onNotify))
		}
		g.mu.Lock()
		g.cancels = cancels
		g.mu.Unlock()
	}

	g.Evaluate()
}

// Stop removes both subscriptions. It is safe to call more than once.
func (g *Gate) Stop() {
	g.mu.Lock()
	cancels := g.cancels
	g.cancels = nil
	g.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// Permitted returns the result of the most recent evaluation.
func (g *Gate) Permitted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.permitted
}

// Evaluate recomputes permission from the stored decision. A false to true
// transition activates backends before Evaluate returns. The activator runs
// without the gate's lock held, so it may call back into the gate.
func (g *Gate) Evaluate() {
	g.mu.Lock()
	ctx := g.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	was := g.permitted
	g.permitted = g.store.AnalyticsPermitted(ctx)
	now := g.permitted
	g.mu.Unlock()

	switch {
	case now && !was:
		g.logger.Debug("analytics permitted, activating backends")
		if g.activator != nil {
			g.activator.Activate(ctx)
		}
	case !now && was:
		g.logger.Debug("analytics no longer permitted")
	}
}

// onStorageChange handles the cross-tab signal. An empty key means the whole
// storage area was cleared.
func (g *Gate) onStorageChange(key string) {
	if key != Key && key != "" {
		return
	}
	g.Evaluate()
}

func (g *Gate) onNotify() {
	g.Evaluate()
}
