package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const maxPageURLLength = 2048

// Landing aggregates every submission reported under one name.
type Landing struct {
	ID              int64             `json:"id"`
	Name            string            `json:"name"`
	Type            string            `json:"type"`
	UTM             map[string]string `json:"utm"`
	Channel         string            `json:"channel"`
	AmountOfLanding int               `json:"amount_of_landing"`
	LandingPageURL  string            `json:"landing_page_url"`
	LandingEvents   []LandingEvent    `json:"landing_events"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// LandingEvent is one attributed page view. Device and country are filled in
// by the collector, never by the page.
type LandingEvent struct {
	ID          string    `json:"id"`
	Time        time.Time `json:"time"`
	DeviceType  string    `json:"device_type,omitempty"`
	CountryCode string    `json:"country_code,omitempty"`
}

func (e LandingEvent) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.ID, validation.Required, validation.Length(1, 64)),
		validation.Field(&e.Time, validation.Required),
	)
}

// Submission is one report received from a page.
type Submission struct {
	Name            string            `json:"name"`
	Type            string            `json:"type"`
	UTM             map[string]string `json:"utm"`
	AmountOfLanding int               `json:"amountOfLanding"`
	LandingEvents   []LandingEvent    `json:"landingEvents"`
	LandingPageURL  string            `json:"landing_page_url"`

	// Channel is derived from UTM on the server.
	Channel string `json:"-"`
}

func (s Submission) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&s.Type, validation.Required, validation.Length(1, 255)),
		validation.Field(&s.AmountOfLanding, validation.Required, validation.Min(1)),
		validation.Field(&s.LandingEvents, validation.Required),
		validation.Field(&s.LandingPageURL, validation.Length(0, maxPageURLLength)),
	)
}

// EventCount tallies relayed analytics events.
type EventCount struct {
	Action     string    `json:"action"`
	Category   string    `json:"category"`
	Count      int64     `json:"count"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// Visitor is what the collector knows about the client that sent a request.
type Visitor struct {
	IP        string
	UserAgent string
}

// VisitorProfile is the enrichment derived from a Visitor.
type VisitorProfile struct {
	DeviceType  string
	CountryCode string
}
