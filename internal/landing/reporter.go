package landing

import (
	"context"
	"sync"

	"go-attribution/internal/attribution"

	"go.uber.org/zap"
)

// Reporter captures attribution on a landing view and reports it once.
type Reporter struct {
	store     *attribution.Store
	submitter Submitter
	policy    attribution.Policy
	clock     Clock
	ids       IDGenerator
	logger    *zap.Logger

	wg sync.WaitGroup
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithPolicy sets the overwrite policy. Defaults to attribution.LastTouch.
func WithPolicy(p attribution.Policy) Option {
	return func(r *Reporter) { r.policy = p }
}

// WithClock overrides the landing time source.
func WithClock(c Clock) Option {
	return func(r *Reporter) { r.clock = c }
}

// WithIDGenerator overrides the landing event id source.
func WithIDGenerator(g IDGenerator) Option {
	return func(r *Reporter) { r.ids = g }
}

// NewReporter creates a reporter. submitter is wrapped in BestEffort.
func NewReporter(store *attribution.Store, submitter Submitter, logger *zap.Logger, opts ...Option) *Reporter {
	r := &Reporter{
		store:     store,
		submitter: NewBestEffort(submitter, logger),
		policy:    attribution.LastTouch,
		clock:     systemClock{},
		ids:       uuidGenerator{},
		logger:    logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report handles one page view. Views without attribution parameters leave no
// trace. Otherwise the record is stored according to the policy and exactly one
// submission is launched without waiting for it.
func (r *Reporter) Report(ctx context.Context, pageURL string, params attribution.Params) {
	rec := attribution.Extract(params)
	if rec.Empty() {
		return
	}

	written := r.store.Apply(ctx, r.policy, rec)
	sub := BuildSubmission(rec, pageURL, r.clock, r.ids)

	r.logger.Debug("landing captured",
		zap.String("name", sub.Name),
		zap.Stringer("policy", r.policy),
		zap.Bool("stored", written),
	)

	// The post outlives the caller's context; navigation is the only thing that ends it.
	sendCtx := context.WithoutCancel(ctx)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		_ = r.submitter.Submit(sendCtx, sub)
	}()
}

// Wait blocks until every launched submission has finished.
func (r *Reporter) Wait() {
	r.wg.Wait()
}
