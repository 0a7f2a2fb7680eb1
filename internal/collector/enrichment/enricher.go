package enrichment

import "go-attribution/internal/collector/domain"

// Enricher fills in the server-side details of a landing.
type Enricher struct {
	geo      *GeoIPResolver
	channels *ChannelClassifier
}

// NewEnricher creates an enricher. geo may be nil.
func NewEnricher(geo *GeoIPResolver) *Enricher {
	return &Enricher{geo: geo, channels: NewChannelClassifier()}
}

func (e *Enricher) Profile(v domain.Visitor) domain.VisitorProfile {
	return domain.VisitorProfile{
		DeviceType:  DetectDevice(v.UserAgent),
		CountryCode: e.geo.ResolveCountry(v.IP),
	}
}

func (e *Enricher) Channel(source, medium string) string {
	return e.channels.Classify(source, medium)
}
