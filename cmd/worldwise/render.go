package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/alexivanou/worldwise/internal/mapview"
	"github.com/alexivanou/worldwise/internal/model"
	"github.com/alexivanou/worldwise/internal/position"
)

// textRenderer keeps the last view and markers for printing
type textRenderer struct {
	center  model.Position
	zoom    int
	markers []mapview.Marker
}

func (r *textRenderer) SetView(center model.Position, zoom int) {
	r.center, r.zoom = center, zoom
}

func (r *textRenderer) SetMarkers(markers []mapview.Marker) {
	r.markers = markers
}

func (r *textRenderer) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "center %.4f, %.4f (zoom %d)\n", r.center.Lat, r.center.Lng, r.zoom)
	for _, m := range r.markers {
		fmt.Fprintf(&b, "  %s  %.4f, %.4f\n", m.Label(), m.Position.Lat, m.Position.Lng)
	}
	return b.String()
}

func cityLine(c model.City) string {
	return fmt.Sprintf("%s %-20s (%s)  %s",
		model.FlagEmoji(c.Emoji), c.CityName, c.Date.Format(dateLayout), position.CityPath(c))
}

func cityDetails(c model.City) string {
	var b strings.Builder
	fmt.Fprintf(&b, "City name\n  %s %s\n", model.FlagEmoji(c.Emoji), c.CityName)
	fmt.Fprintf(&b, "You went to %s on\n  %s\n", c.CityName, c.Date.Format("Monday, "+dateLayout))
	if c.Notes != "" {
		fmt.Fprintf(&b, "Your notes\n  %s\n", c.Notes)
	}
	fmt.Fprintf(&b, "Learn more\n  https://en.wikipedia.org/wiki/%s\n", url.PathEscape(c.CityName))
	return b.String()
}
