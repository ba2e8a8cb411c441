package position

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/alexivanou/worldwise/internal/model"
)

// Navigation parameter names
const (
	ParamLat = "lat"
	ParamLng = "lng"
)

var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrOutOfRange        = errors.New("invalid coordinates range")
)

// ParseQuery reads the lat/lng navigation parameters. ok is false when
// either value is absent.
func ParseQuery(values url.Values) (pos model.Position, ok bool, err error) {
	latStr := values.Get(ParamLat)
	lngStr := values.Get(ParamLng)
	if latStr == "" || lngStr == "" {
		return model.Position{}, false, nil
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return model.Position{}, false, fmt.Errorf("%w: lat %q", ErrInvalidCoordinate, latStr)
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return model.Position{}, false, fmt.Errorf("%w: lng %q", ErrInvalidCoordinate, lngStr)
	}

	if math.IsNaN(lat) || math.IsNaN(lng) {
		return model.Position{}, false, fmt.Errorf("%w: not a number", ErrInvalidCoordinate)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return model.Position{}, false, ErrOutOfRange
	}

	return model.Position{Lat: lat, Lng: lng}, true, nil
}

// Query encodes p as navigation parameters
func Query(p model.Position) url.Values {
	return url.Values{
		ParamLat: []string{formatCoord(p.Lat)},
		ParamLng: []string{formatCoord(p.Lng)},
	}
}

// FormPath is the navigation target that opens the creation form at p
func FormPath(p model.Position) string {
	return "form?" + Query(p).Encode()
}

// CityPath is the navigation target of a city in the list
func CityPath(c model.City) string {
	return strconv.Itoa(c.ID) + "?" + Query(c.Position).Encode()
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
