// Package consent records the visitor's cookie-consent decision and gates
// analytics backends on it.
package consent

import "errors"

// Key is the storage key holding the decision.
const Key = "cookie-consent"

// ErrInvalidDecision is returned when Unset is passed where a choice is required.
var ErrInvalidDecision = errors.New("consent: decision must be accepted or declined")

// Decision is the visitor's stored consent choice.
type Decision int

const (
	// Unset means no explicit choice has been recorded.
	Unset Decision = iota
	Accepted
	Declined
)

func (d Decision) String() string {
	switch d {
	case Accepted:
		return "accepted"
	case Declined:
		return "declined"
	default:
		return "unset"
	}
}

// ParseDecision maps a stored value to a Decision. Anything unrecognised is Unset,
// so a corrupt value never grants consent.
func ParseDecision(s string) Decision {
	switch s {
	case "accepted":
		return Accepted
	case "declined":
		return Declined
	default:
		return Unset
	}
}
