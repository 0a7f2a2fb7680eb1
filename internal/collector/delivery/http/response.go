package http

import (
	"encoding/json"
	"net/http"
	"sort"

	"go-attribution/pkg/problemdetails"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeProblem writes an RFC 7807 Problem Details response
func writeProblem(w http.ResponseWriter, problem *problemdetails.ProblemDetail) {
	w.Header().Set("Content-Type", problemdetails.ContentType)
	w.WriteHeader(problem.Status)
	json.NewEncoder(w).Encode(problem)
}

// fieldErrors flattens nested validation errors into dotted field paths,
// e.g. "landingEvents.0.id".
func fieldErrors(errs validation.Errors) []problemdetails.FieldError {
	out := make([]problemdetails.FieldError, 0, len(errs))
	var walk func(prefix string, errs validation.Errors)
	walk = func(prefix string, errs validation.Errors) {
		for field, err := range errs {
			if nested, ok := err.(validation.Errors); ok {
				walk(prefix+field+".", nested)
				continue
			}
			out = append(out, problemdetails.FieldError{Field: prefix + field, Message: err.Error()})
		}
	}
	walk("", errs)

	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// RelayResponse tells the page whether its event was forwarded.
type RelayResponse struct {
	Forwarded bool `json:"forwarded"`
}
