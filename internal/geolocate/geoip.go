// Package geolocate provides device position sources for terminal clients,
// where no browser geolocation exists.
package geolocate

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/alexivanou/worldwise/internal/model"
	"github.com/oschwald/geoip2-golang"
)

var (
	ErrNoAddress  = errors.New("no address to locate")
	ErrNoLocation = errors.New("address has no known location")
)

type cityLookup interface {
	City(ip net.IP) (*geoip2.City, error)
	Close() error
}

// GeoIP locates an address with a local MaxMind GeoLite2/GeoIP2 City database
type GeoIP struct {
	db   cityLookup
	addr net.IP
}

// OpenGeoIP opens the .mmdb file at path. addr is the address Locate resolves.
func OpenGeoIP(path, addr string) (*GeoIP, error) {
	ip := net.ParseIP(addr)
	if ip == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoAddress, addr)
	}
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open geoip database: %w", err)
	}
	return &GeoIP{db: db, addr: ip}, nil
}

// Locate implements position.Locator
func (g *GeoIP) Locate(ctx context.Context) (model.Position, error) {
	if err := ctx.Err(); err != nil {
		return model.Position{}, err
	}

	rec, err := g.db.City(g.addr)
	if err != nil {
		return model.Position{}, fmt.Errorf("geoip lookup %s: %w", g.addr, err)
	}
	// The database reports 0,0 for addresses it has no coordinates for
	if rec.Location.Latitude == 0 && rec.Location.Longitude == 0 {
		return model.Position{}, fmt.Errorf("%w: %s", ErrNoLocation, g.addr)
	}

	return model.Position{Lat: rec.Location.Latitude, Lng: rec.Location.Longitude}, nil
}

func (g *GeoIP) Close() error {
	return g.db.Close()
}
