// Package http exposes the collector over HTTP.
package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go-attribution/internal/attribution"
	"go-attribution/internal/collector/domain"
	"go-attribution/internal/collector/usecase"
	"go-attribution/internal/consent"
	"go-attribution/internal/landing"
	"go-attribution/internal/tracking"
	"go-attribution/pkg/problemdetails"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const maxBodyBytes = 64 << 10

// Handler handles landing-tracking and event relay requests.
type Handler struct {
	landings *usecase.LandingService
	relay    *usecase.EventRelay
	logger   *zap.Logger
	db       *sql.DB
}

// NewHandler creates a new Handler. db may be nil, in which case readiness only
// reports the process as up.
func NewHandler(landings *usecase.LandingService, relay *usecase.EventRelay, logger *zap.Logger, db *sql.DB) *Handler {
	return &Handler{
		landings: landings,
		relay:    relay,
		logger:   logger,
		db:       db,
	}
}

// RecordLanding handles POST /api/landing-tracking
func (h *Handler) RecordLanding(w http.ResponseWriter, r *http.Request) {
	var req landing.Submission
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeProblem(w, problemdetails.New(
			http.StatusBadRequest,
			problemdetails.TypeInvalidRequest,
			"Invalid Request",
			"Request body must be a JSON landing submission",
		))
		return
	}

	visitor := domain.Visitor{IP: clientIP(r), UserAgent: r.UserAgent()}
	result, err := h.landings.Record(r.Context(), toDomain(req), visitor)
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			writeProblem(w, problemdetails.NewValidation("", fieldErrors(verrs)))
		case errors.Is(err, domain.ErrInvalidSubmission):
			writeProblem(w, problemdetails.NewValidation(err.Error(), nil))
		case errors.Is(err, domain.ErrEventsClaimed):
			writeProblem(w, problemdetails.New(
				http.StatusConflict,
				problemdetails.TypeConflict,
				"Conflict",
				"Landing events are already recorded under another landing",
			))
		default:
			h.logger.Error("failed to record landing", zap.String("name", req.Name), zap.Error(err))
			writeProblem(w, problemdetails.Internal("Failed to record landing"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// ListLandings handles GET /api/landing-tracking. With ?name= it returns that
// single landing instead of a page.
func (h *Handler) ListLandings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if name := query.Get("name"); name != "" {
		result, err := h.landings.Get(r.Context(), name)
		if err != nil {
			if errors.Is(err, domain.ErrLandingNotFound) {
				writeProblem(w, problemdetails.New(
					http.StatusNotFound,
					problemdetails.TypeNotFound,
					"Not Found",
					"Landing not found: "+name,
				))
				return
			}
			writeProblem(w, problemdetails.Internal("Failed to get landing"))
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}

	page, _ := strconv.Atoi(query.Get("page"))
	perPage, _ := strconv.Atoi(query.Get("per_page"))

	result, err := h.landings.List(r.Context(), page, perPage)
	if err != nil {
		h.logger.Error("failed to list landings", zap.Error(err))
		writeProblem(w, problemdetails.Internal("Failed to list landings"))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// RelayEvent handles POST /api/events. The consent cookie decides whether the
// event reaches the server-side sink; either way the page gets a 2xx.
func (h *Handler) RelayEvent(w http.ResponseWriter, r *http.Request) {
	var e tracking.Event
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&e); err != nil {
		writeProblem(w, problemdetails.New(
			http.StatusBadRequest,
			problemdetails.TypeInvalidRequest,
			"Invalid Request",
			"Request body must be a JSON analytics event",
		))
		return
	}

	forwarded, err := h.relay.Relay(r.Context(), consentFrom(r), e)
	if err != nil {
		writeProblem(w, problemdetails.NewValidation(err.Error(), nil))
		return
	}
	if !forwarded {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusAccepted, RelayResponse{Forwarded: true})
}

// EventStats handles GET /api/events/stats
func (h *Handler) EventStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.relay.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to read event stats", zap.Error(err))
		writeProblem(w, problemdetails.Internal("Failed to read event stats"))
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Healthz handles GET /healthz (liveness probe)
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz handles GET /readyz (readiness probe)
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.PingContext(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status: "unavailable",
				Reason: "database unavailable: " + err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ready"})
}

// consentFrom reads the consent cookie; a missing cookie is Unset.
func consentFrom(r *http.Request) consent.Decision {
	c, err := r.Cookie(consent.Key)
	if err != nil {
		return consent.Unset
	}
	return consent.ParseDecision(c.Value)
}

// toDomain keeps only the recognised, non-empty attribution keys.
func toDomain(s landing.Submission) domain.Submission {
	return domain.Submission{
		Name: s.Name,
		Type: s.Type,
		UTM: lo.MapKeys(s.UTM.Known(), func(_ string, k attribution.Key) string {
			return string(k)
		}),
		AmountOfLanding: s.AmountOfLanding,
		LandingEvents: lo.Map(s.LandingEvents, func(e landing.Event, _ int) domain.LandingEvent {
			return domain.LandingEvent{ID: e.ID, Time: e.Time}
		}),
		LandingPageURL: s.LandingPageURL,
	}
}
