// Package problemdetails renders RFC 7807 error bodies.
package problemdetails

import (
	"fmt"
	"net/http"
)

const (
	TypeInvalidRequest    = "invalid-request"
	TypeNotFound          = "not-found"
	TypeConflict          = "conflict"
	TypeRateLimitExceeded = "rate-limit-exceeded"
	TypeInternalError     = "internal-error"
	TypeValidationError   = "validation-error"
)

// ContentType is the media type of a problem body.
const ContentType = "application/problem+json"

const typeBase = "https://attribution.dev/problems/"

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ProblemDetail struct {
	Type   string       `json:"type"`
	Title  string       `json:"title"`
	Status int          `json:"status"`
	Detail string       `json:"detail"`
	Errors []FieldError `json:"errors,omitempty"`
}

func New(status int, problemType, title, detail string) *ProblemDetail {
	return &ProblemDetail{
		Type:   typeBase + problemType,
		Title:  title,
		Status: status,
		Detail: detail,
	}
}

// NewValidation reports field-level failures with status 400.
func NewValidation(detail string, errors []FieldError) *ProblemDetail {
	if detail == "" {
		detail = "Request validation failed"
	}
	return &ProblemDetail{
		Type:   typeBase + TypeValidationError,
		Title:  "Validation Failed",
		Status: http.StatusBadRequest,
		Detail: detail,
		Errors: errors,
	}
}

// Internal is the generic 500 problem; detail never carries the underlying error.
func Internal(detail string) *ProblemDetail {
	return New(http.StatusInternalServerError, TypeInternalError, "Internal Server Error", detail)
}

func (p *ProblemDetail) Error() string {
	return fmt.Sprintf("%d %s: %s", p.Status, p.Title, p.Detail)
}
