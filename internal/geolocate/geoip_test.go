package geolocate

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"testing"

	"github.com/alexivanou/worldwise/internal/model"
	"github.com/oschwald/geoip2-golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	rec *geoip2.City
	err error
}

func (f fakeLookup) City(net.IP) (*geoip2.City, error) { return f.rec, f.err }
func (f fakeLookup) Close() error                      { return nil }

func cityAt(lat, lng float64) *geoip2.City {
	rec := &geoip2.City{}
	rec.Location.Latitude = lat
	rec.Location.Longitude = lng
	return rec
}

func TestGeoIP_Locate(t *testing.T) {
	addr := net.ParseIP("81.2.69.142")

	tests := []struct {
		name     string
		lookup   fakeLookup
		expected model.Position
		err      error
	}{
		{name: "found", lookup: fakeLookup{rec: cityAt(51.5142, -0.0931)}, expected: model.Position{Lat: 51.5142, Lng: -0.0931}},
		{name: "no coordinates", lookup: fakeLookup{rec: cityAt(0, 0)}, err: ErrNoLocation},
		{name: "lookup error", lookup: fakeLookup{err: errors.New("invalid database")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &GeoIP{db: tt.lookup, addr: addr}
			p, err := g.Locate(context.Background())

			switch {
			case tt.err != nil:
				assert.ErrorIs(t, err, tt.err)
			case tt.lookup.err != nil:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.expected, p)
			}
		})
	}
}

func TestGeoIP_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&GeoIP{db: fakeLookup{rec: cityAt(1, 1)}, addr: net.IPv4(1, 1, 1, 1)}).Locate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenGeoIP(t *testing.T) {
	_, err := OpenGeoIP("GeoLite2-City.mmdb", "not-an-ip")
	assert.ErrorIs(t, err, ErrNoAddress)

	_, err = OpenGeoIP(filepath.Join(t.TempDir(), "missing.mmdb"), "81.2.69.142")
	assert.Error(t, err)
}
