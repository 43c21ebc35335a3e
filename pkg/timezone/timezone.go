// Package timezone resolves IANA zone names to conversion locations.
// The resolver is injected rather than calling time.LoadLocation at
// use sites, so tests can stub zones without touching the host tzdata.
package timezone

import (
	"errors"
	"time"
)

var ErrUnknownZone = errors.New("unknown timezone name")

type Resolver interface {
	// Resolve maps an IANA zone name ("America/New_York") to a
	// location. Returns ErrUnknownZone for names the database does
	// not know.
	Resolve(name string) (*time.Location, error)
}

type tzdataResolver struct{}

func NewResolver() Resolver {
	return tzdataResolver{}
}

func (tzdataResolver) Resolve(name string) (*time.Location, error) {
	if name == "" {
		return nil, ErrUnknownZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, ErrUnknownZone
	}
	return loc, nil
}
