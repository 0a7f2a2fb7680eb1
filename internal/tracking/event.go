// Package tracking normalises engagement and conversion events and fans them out
// to whichever analytics backends are live.
package tracking

import (
	"encoding/json"
)

// Event is a normalised tracking event. It is immutable once built.
type Event struct {
	action   string
	category string
	label    *string
	value    *float64
}

// EventOption sets an optional field of an Event.
type EventOption func(*Event)

// WithLabel sets the event label.
func WithLabel(label string) EventOption {
	return func(e *Event) { e.label = &label }
}

// WithValue sets the event value.
func WithValue(value float64) EventOption {
	return func(e *Event) { e.value = &value }
}

// NewEvent builds an Event.
func NewEvent(action, category string, opts ...EventOption) Event {
	e := Event{action: action, category: category}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

func (e Event) Action() string   { return e.action }
func (e Event) Category() string { return e.category }

// Label returns the label and whether one was set.
func (e Event) Label() (string, bool) {
	if e.label == nil {
		return "", false
	}
	return *e.label, true
}

// Value returns the value and whether one was set.
func (e Event) Value() (float64, bool) {
	if e.value == nil {
		return 0, false
	}
	return *e.value, true
}

// eventJSON is the wire form shared by the relay backends and the collector.
type eventJSON struct {
	Action   string   `json:"action"`
	Category string   `json:"category"`
	Label    *string  `json:"label,omitempty"`
	Value    *float64 `json:"value,omitempty"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(eventJSON{
		Action:   e.action,
		Category: e.category,
		Label:    e.label,
		Value:    e.value,
	})
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var w eventJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = Event{action: w.Action, category: w.Category, label: w.Label, value: w.Value}
	return nil
}
