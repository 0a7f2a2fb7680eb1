// Package enrichment derives visitor details the page does not report itself.
package enrichment

import (
	ua "github.com/mileusna/useragent"
)

const Unknown = "Unknown"

// DetectDevice returns "Desktop", "Mobile", "Tablet", "Bot" or "Unknown".
func DetectDevice(userAgent string) string {
	if userAgent == "" {
		return Unknown
	}

	parsed := ua.Parse(userAgent)
	switch {
	case parsed.Bot:
		return "Bot"
	case parsed.Tablet:
		return "Tablet"
	case parsed.Mobile:
		return "Mobile"
	case parsed.Desktop:
		return "Desktop"
	}
	return Unknown
}
