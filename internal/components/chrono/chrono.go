package chrono

import (
	"time"
	_ "time/tzdata"
)

// PortalLocation is the zone every period token and scraped date of the
// lottery portal is computed in.
const PortalLocation = "Europe/Warsaw"

// API is the interface that anything depending on the system clock should use.
type API interface {
	// Now returns the current time in Location().
	Now() time.Time
	// Location returns the zone dates are interpreted in.
	Location() *time.Location
}

// StandardImpl is the standard implementation of API using the system clock.
type StandardImpl struct {
	location *time.Location
}

// NewStandardImpl loads the given IANA zone, an empty name means PortalLocation.
func NewStandardImpl(name string) (StandardImpl, error) {
	if name == "" {
		name = PortalLocation
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return StandardImpl{}, err
	}
	return StandardImpl{location: location}, nil
}

func (s StandardImpl) Now() time.Time {
	return time.Now().In(s.location)
}

func (s StandardImpl) Location() *time.Location {
	return s.location
}

// FixedImpl always reports the same instant, it is meant for tests.
type FixedImpl struct {
	now time.Time
}

// NewFixedImpl returns a clock frozen at `now`, its location is now.Location().
func NewFixedImpl(now time.Time) FixedImpl {
	return FixedImpl{now: now}
}

func (f FixedImpl) Now() time.Time {
	return f.now
}

func (f FixedImpl) Location() *time.Location {
	return f.now.Location()
}
