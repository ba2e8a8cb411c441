package main

import (
	"testing"
	"time"

	"github.com/alexivanou/worldwise/internal/mapview"
	"github.com/alexivanou/worldwise/internal/model"
	"github.com/stretchr/testify/assert"
)

var lisbon = model.City{
	ID:       73930385,
	CityName: "Lisbon",
	Country:  "Portugal",
	Emoji:    "PT",
	Date:     time.Date(2027, 10, 31, 15, 59, 59, 0, time.UTC),
	Notes:    "My favorite city so far!",
	Position: model.Position{Lat: 38.727, Lng: -9.14},
}

func TestCityLine(t *testing.T) {
	line := cityLine(lisbon)
	assert.Contains(t, line, "🇵🇹 Lisbon")
	assert.Contains(t, line, "(October 31, 2027)")
	assert.Contains(t, line, "73930385?lat=38.727&lng=-9.14")
}

func TestCityDetails(t *testing.T) {
	out := cityDetails(lisbon)
	assert.Contains(t, out, "You went to Lisbon on\n  Sunday, October 31, 2027")
	assert.Contains(t, out, "Your notes\n  My favorite city so far!")
	assert.Contains(t, out, "https://en.wikipedia.org/wiki/Lisbon")

	noNotes := lisbon
	noNotes.Notes = ""
	noNotes.CityName = "São Paulo"
	out = cityDetails(noNotes)
	assert.NotContains(t, out, "Your notes")
	assert.Contains(t, out, "wiki/S%C3%A3o%20Paulo")
}

func TestTextRenderer(t *testing.T) {
	r := &textRenderer{}
	r.SetView(model.Position{Lat: 40, Lng: 0}, 6)
	r.SetMarkers([]mapview.Marker{{ID: 1, Position: lisbon.Position, Emoji: "PT", CityName: "Lisbon"}})

	out := r.String()
	assert.Contains(t, out, "center 40.0000, 0.0000 (zoom 6)")
	assert.Contains(t, out, "38.7270, -9.1400")
}

func TestIDArg(t *testing.T) {
	id, err := idArg([]string{"42"})
	assert.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, args := range [][]string{nil, {"x"}, {"0"}, {"1", "2"}} {
		_, err := idArg(args)
		assert.Error(t, err, "%v", args)
	}
}
