package landing_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-attribution/internal/attribution"
	"go-attribution/internal/landing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildSubmission_MissingParts(t *testing.T) {
	tests := []struct {
		name     string
		record   attribution.Record
		wantName string
		wantType string
	}{
		{"complete", attribution.Record{attribution.Source: "newsletter", attribution.Campaign: "spring", attribution.Medium: "email"}, "newsletter / spring", "email"},
		{"no campaign", attribution.Record{attribution.Source: "google"}, "google / unknown", "unknown"},
		{"only medium", attribution.Record{attribution.Medium: "social"}, "unknown / unknown", "social"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := landing.BuildSubmission(tt.record, "/x", fixedClock{landedAt}, fixedID("id-1"))

			assert.Equal(t, tt.wantName, sub.Name)
			assert.Equal(t, tt.wantType, sub.Type)
			assert.Equal(t, "/x", sub.LandingPageURL)
		})
	}
}

func TestClient_Submit_PostsJSON(t *testing.T) {
	// Setup
	var (
		method, path, ctype string
		body                map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path, ctype = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()
	client := landing.NewClient(srv.URL, srv.Client())
	sub := landing.BuildSubmission(
		attribution.Record{attribution.Source: "newsletter", attribution.Campaign: "spring", attribution.Medium: "email"},
		"https://example.com/?utm_source=newsletter", fixedClock{landedAt}, fixedID("id-1"))

	// Act
	err := client.Submit(context.Background(), sub)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, landing.TrackingPath, path)
	assert.Equal(t, "application/json", ctype)
	assert.Equal(t, "newsletter / spring", body["name"])
	assert.Equal(t, "email", body["type"])
	assert.EqualValues(t, 1, body["amountOfLanding"])
	assert.Equal(t, "https://example.com/?utm_source=newsletter", body["landing_page_url"])
	assert.Equal(t, map[string]any{"source": "newsletter", "campaign": "spring", "medium": "email"}, body["utm"])
	events, ok := body["landingEvents"].([]any)
	require.True(t, ok)
	require.Len(t, events, 1)
	assert.Equal(t, "id-1", events[0].(map[string]any)["id"])
	assert.Equal(t, "2024-03-21T09:30:00Z", events[0].(map[string]any)["time"])
}

func TestClient_Submit_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	client := landing.NewClient(srv.URL, srv.Client())

	err := client.Submit(context.Background(), landing.Submission{})

	var statusErr *landing.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}

func TestBestEffort_SwallowsErrors(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	be := landing.NewBestEffort(landing.NewClient(url, nil), zap.NewNop())

	err := be.Submit(context.Background(), landing.Submission{})

	assert.NoError(t, err)
}
