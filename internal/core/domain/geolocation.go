package domain

import "errors"

// Geolocation is the upstream provider's response for a single IP, in the
// ipinfo.io /geo shape. Loc is "lat,lng" as a single string, as upstream
// returns it.
type Geolocation struct {
	IP       string `json:"ip"`
	Hostname string `json:"hostname,omitempty"`
	City     string `json:"city,omitempty"`
	Region   string `json:"region,omitempty"`
	Country  string `json:"country,omitempty"`
	Loc      string `json:"loc,omitempty"`
	Org      string `json:"org,omitempty"`
	Postal   string `json:"postal,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// ErrLookupFailed is returned when the upstream geolocation provider cannot
// serve a lookup. The provider's error detail stays server-side.
var ErrLookupFailed = errors.New("geolocation lookup failed")

var ErrInvalidIP = errors.New("invalid ip address")
