package enrichment

import (
	"net"

	geoip2 "github.com/oschwald/geoip2-golang"
)

// GeoIPResolver maps client IPs to ISO country codes. A nil resolver answers
// Unknown for every address.
type GeoIPResolver struct {
	db *geoip2.Reader
}

// OpenGeoIP opens a GeoLite2/GeoIP2 country database.
func OpenGeoIP(path string) (*GeoIPResolver, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &GeoIPResolver{db: db}, nil
}

func (g *GeoIPResolver) Close() error {
	if g == nil {
		return nil
	}
	return g.db.Close()
}

// ResolveCountry returns Unknown for unparsable, private or unmapped addresses.
func (g *GeoIPResolver) ResolveCountry(ip string) string {
	if g == nil {
		return Unknown
	}
	parsed := net.ParseIP(ip)
	if parsed == nil || parsed.IsPrivate() || parsed.IsLoopback() {
		return Unknown
	}

	record, err := g.db.Country(parsed)
	if err != nil || record.Country.IsoCode == "" {
		return Unknown
	}
	return record.Country.IsoCode
}
