package landing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// TrackingPath is the landing-tracking endpoint relative to the site origin.
const TrackingPath = "/api/landing-tracking"

// StatusError reports a non-2xx reply.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("landing tracking: unexpected status %d", e.StatusCode)
}

// Submitter delivers one submission.
type Submitter interface {
	Submit(ctx context.Context, sub Submission) error
}

// Compile-time interface checks
var (
	_ Submitter = (*Client)(nil)
	_ Submitter = (*BestEffort)(nil)
)

// Client posts submissions and reports every failure to the caller.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient targets baseURL + TrackingPath. A nil httpClient uses http.DefaultClient,
// leaving timeouts to the transport.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint: strings.TrimRight(baseURL, "/") + TrackingPath,
		http:     httpClient,
	}
}

func (c *Client) Submit(ctx context.Context, sub Submission) error {
	body, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post submission: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	return nil
}

// BestEffort discards every failure of the wrapped Submitter.
type BestEffort struct {
	next   Submitter
	logger *zap.Logger
}

// NewBestEffort wraps next.
func NewBestEffort(next Submitter, logger *zap.Logger) *BestEffort {
	return &BestEffort{next: next, logger: logger}
}

// Submit always returns nil.
func (b *BestEffort) Submit(ctx context.Context, sub Submission) error {
	if err := b.next.Submit(ctx, sub); err != nil {
		b.logger.Debug("landing submission dropped",
			zap.String("name", sub.Name),
			zap.Error(err),
		)
	}
	return nil
}
