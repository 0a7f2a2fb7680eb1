// Package beacon is a first-party analytics backend: it posts each event to the
// site's own relay endpoint, which forwards it server-side.
package beacon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"go-attribution/internal/tracking"

	"go.uber.org/zap"
)

const (
	// BackendName identifies the backend in a tracking.Sink.
	BackendName = "beacon"
	// EventsPath is the relay endpoint on the site origin.
	EventsPath = "/api/events"
)

// Compile-time interface check
var _ tracking.Backend = (*Backend)(nil)

// Backend sends events without waiting: each post runs on its own goroutine and
// failures are only logged.
type Backend struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger

	wg sync.WaitGroup
}

// New creates a beacon posting to baseURL + EventsPath. A nil client uses http.DefaultClient.
func New(baseURL string, client *http.Client, logger *zap.Logger) *Backend {
	if client == nil {
		client = http.DefaultClient
	}
	return &Backend{
		endpoint: strings.TrimRight(baseURL, "/") + EventsPath,
		client:   client,
		logger:   logger,
	}
}

// NewLoader returns a loader yielding b.
func NewLoader(b *Backend) tracking.Loader {
	return tracking.LoaderFunc{
		LoaderName: BackendName,
		Fn: func(context.Context) (tracking.Backend, error) {
			return b, nil
		},
	}
}

func (b *Backend) RecordEvent(_ context.Context, e tracking.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		// Detached from the caller: the page may move on before the post completes.
		if err := b.post(context.Background(), body); err != nil {
			b.logger.Debug("beacon post failed",
				zap.String("action", e.Action()),
				zap.Error(err),
			)
		}
	}()
	return nil
}

func (b *Backend) RecordPageView(ctx context.Context, url string) error {
	return b.RecordEvent(ctx, tracking.NewEvent("page_view", tracking.CategoryEngagement, tracking.WithLabel(url)))
}

// Wait blocks until every in-flight post has finished.
func (b *Backend) Wait() {
	b.wg.Wait()
}

func (b *Backend) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("beacon: unexpected status %d", resp.StatusCode)
	}
	return nil
}
