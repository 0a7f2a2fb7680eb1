package tracking_test

import (
	"context"
	"errors"
	"testing"

	"go-attribution/internal/testutil"
	"go-attribution/internal/tracking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// panickingBackend simulates a vendor global that is not a function.
type panickingBackend struct{}

func (panickingBackend) RecordEvent(context.Context, tracking.Event) error {
	panic("gtag is not a function")
}

func (panickingBackend) RecordPageView(context.Context, string) error {
	panic("gtag is not a function")
}

func TestSink_BeforeActivate_IsNoop(t *testing.T) {
	backend := &testutil.MockBackend{}
	loader := &testutil.CountingLoader{LoaderName: "ga", Backend: backend}
	sink := tracking.NewSink(zap.NewNop())
	sink.Register(loader)

	sink.Dispatch(context.Background(), tracking.NewEvent("a", "b"))
	sink.PageView(context.Background(), "/")

	assert.Zero(t, loader.Loads())
	assert.Empty(t, sink.Live())
	backend.AssertNotCalled(t, "RecordEvent", mock.Anything, mock.Anything)
}

func TestSink_NilAndEmpty_AreNoops(t *testing.T) {
	var nilSink *tracking.Sink
	assert.NotPanics(t, func() {
		nilSink.Dispatch(context.Background(), tracking.NewEvent("a", "b"))
		nilSink.PageView(context.Background(), "/")
		nilSink.Activate(context.Background())
	})

	empty := tracking.NewSink(zap.NewNop())
	empty.Activate(context.Background())
	assert.NotPanics(t, func() {
		empty.Dispatch(context.Background(), tracking.NewEvent("a", "b"))
	})
}

func TestSink_Dispatch_InRegistrationOrder(t *testing.T) {
	var order []string
	evt := tracking.NewEvent("cta_click", "conversion")

	first := &testutil.MockBackend{}
	first.On("RecordEvent", mock.Anything, evt).Run(func(mock.Arguments) { order = append(order, "first") }).Return(nil)
	second := &testutil.MockBackend{}
	second.On("RecordEvent", mock.Anything, evt).Run(func(mock.Arguments) { order = append(order, "second") }).Return(nil)

	sink := tracking.NewSink(zap.NewNop())
	sink.Register(
		&testutil.CountingLoader{LoaderName: "first", Backend: first},
		&testutil.CountingLoader{LoaderName: "second", Backend: second},
	)
	sink.Activate(context.Background())

	sink.Dispatch(context.Background(), evt)

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, []string{"first", "second"}, sink.Live())
}

func TestSink_Activate_IsIdempotent(t *testing.T) {
	loader := &testutil.CountingLoader{LoaderName: "ga", Backend: &testutil.MockBackend{}}
	sink := tracking.NewSink(zap.NewNop())
	sink.Register(loader)

	sink.Activate(context.Background())
	sink.Activate(context.Background())
	sink.Activate(context.Background())

	assert.Equal(t, 1, loader.Loads())
}

func TestSink_FailedLoad_StaysNoopAndRetries(t *testing.T) {
	backend := &testutil.MockBackend{}
	loader := &testutil.CountingLoader{LoaderName: "ga", Backend: backend, Err: errors.New("script blocked")}
	sink := tracking.NewSink(zap.NewNop())
	sink.Register(loader)

	sink.Activate(context.Background())
	sink.Dispatch(context.Background(), tracking.NewEvent("a", "b"))
	assert.Empty(t, sink.Live())

	loader.Err = nil
	sink.Activate(context.Background())

	assert.Equal(t, 2, loader.Loads())
	assert.Equal(t, []string{"ga"}, sink.Live())
	backend.AssertNotCalled(t, "RecordEvent", mock.Anything, mock.Anything)
}

func TestSink_NilBackendFromLoader_IsTreatedAsFailure(t *testing.T) {
	sink := tracking.NewSink(zap.NewNop())
	sink.Register(&testutil.CountingLoader{LoaderName: "broken"})

	sink.Activate(context.Background())

	assert.Empty(t, sink.Live())
	assert.NotPanics(t, func() {
		sink.Dispatch(context.Background(), tracking.NewEvent("a", "b"))
	})
}

func TestSink_FailingBackend_DoesNotSuppressOthers(t *testing.T) {
	evt := tracking.NewEvent("cta_click", "conversion", tracking.WithLabel("book_home"))

	failing := &testutil.MockBackend{}
	failing.On("RecordEvent", mock.Anything, evt).Return(tracking.ErrNotLoaded)
	healthy := &testutil.MockBackend{}
	healthy.On("RecordEvent", mock.Anything, evt).Return(nil).Once()

	sink := tracking.NewSink(zap.NewNop())
	sink.Register(
		&testutil.CountingLoader{LoaderName: "failing", Backend: failing},
		tracking.LoaderFunc{LoaderName: "panicking", Fn: func(context.Context) (tracking.Backend, error) {
			return panickingBackend{}, nil
		}},
		&testutil.CountingLoader{LoaderName: "healthy", Backend: healthy},
	)
	sink.Activate(context.Background())

	assert.NotPanics(t, func() {
		sink.Dispatch(context.Background(), evt)
	})

	failing.AssertExpectations(t)
	healthy.AssertExpectations(t)
}

func TestSink_PanickingLoader_IsContained(t *testing.T) {
	sink := tracking.NewSink(zap.NewNop())
	sink.Register(tracking.LoaderFunc{LoaderName: "boom", Fn: func(context.Context) (tracking.Backend, error) {
		panic("window is undefined")
	}})

	assert.NotPanics(t, func() {
		sink.Activate(context.Background())
	})
	assert.Empty(t, sink.Live())
}

func TestSink_PageView_ReachesLiveBackends(t *testing.T) {
	backend := &testutil.MockBackend{}
	backend.On("RecordPageView", mock.Anything, "/services").Return(nil).Once()
	sink := tracking.NewSink(zap.NewNop())
	sink.Register(&testutil.CountingLoader{LoaderName: "ga", Backend: backend})
	sink.Activate(context.Background())

	sink.PageView(context.Background(), "/services")

	backend.AssertExpectations(t)
}

func TestSink_AfterRevocation_LiveBackendsKeepReceiving(t *testing.T) {
	evt := tracking.NewEvent("view_service", "engagement")
	backend := &testutil.MockBackend{}
	backend.On("RecordEvent", mock.Anything, evt).Return(nil).Twice()
	loader := &testutil.CountingLoader{LoaderName: "ga", Backend: backend}
	sink := tracking.NewSink(zap.NewNop())
	sink.Register(loader)

	sink.Activate(context.Background())
	sink.Dispatch(context.Background(), evt)
	// Consent revoked: nobody calls Activate again, the live backend stays until reload.
	sink.Dispatch(context.Background(), evt)

	assert.Equal(t, 1, loader.Loads())
	backend.AssertExpectations(t)
}
