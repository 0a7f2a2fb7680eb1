// Package landing reports attributed page views to the landing-tracking endpoint.
package landing

import (
	"time"

	"go-attribution/internal/attribution"

	"github.com/google/uuid"
)

// Unknown replaces any attribution part that was not captured.
const Unknown = "unknown"

// Event stamps one landing.
type Event struct {
	ID   string    `json:"id"`
	Time time.Time `json:"time"`
}

// Submission is the unit payload for one attributed page view. The receiving
// endpoint owns aggregation across repeat submissions.
type Submission struct {
	Name            string             `json:"name"`
	Type            string             `json:"type"`
	UTM             attribution.Record `json:"utm"`
	AmountOfLanding int                `json:"amountOfLanding"`
	LandingEvents   []Event            `json:"landingEvents"`
	LandingPageURL  string             `json:"landing_page_url"`
}

// Clock supplies the landing time.
type Clock interface {
	Now() time.Time
}

// IDGenerator supplies landing event ids.
type IDGenerator interface {
	NewID() string
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

type uuidGenerator struct{}

func (uuidGenerator) NewID() string { return uuid.NewString() }

// BuildSubmission derives the submission for r with a single landing event.
func BuildSubmission(r attribution.Record, pageURL string, clock Clock, ids IDGenerator) Submission {
	return Submission{
		Name:            orUnknown(r.Get(attribution.Source)) + " / " + orUnknown(r.Get(attribution.Campaign)),
		Type:            orUnknown(r.Get(attribution.Medium)),
		UTM:             r.Clone(),
		AmountOfLanding: 1,
		LandingEvents:   []Event{{ID: ids.NewID(), Time: clock.Now()}},
		LandingPageURL:  pageURL,
	}
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}
