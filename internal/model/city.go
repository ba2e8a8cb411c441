package model

import (
	"strings"
	"time"
)

// Position is a geographic coordinate pair
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// City represents one visited place
type City struct {
	ID       int       `json:"id"`
	CityName string    `json:"cityName"`
	Country  string    `json:"country"`
	Emoji    string    `json:"emoji,omitempty"`
	Date     time.Time `json:"date"`
	Notes    string    `json:"notes"`
	Position Position  `json:"position"`
}

// IsEmpty reports whether c is the empty "no city" sentinel
func (c City) IsEmpty() bool {
	return c.ID == 0
}

// Draft is a City before persistence, lacking a server-assigned id
type Draft struct {
	CityName string    `json:"cityName"`
	Country  string    `json:"country"`
	Emoji    string    `json:"emoji,omitempty"`
	Date     time.Time `json:"date"`
	Notes    string    `json:"notes"`
	Position *Position `json:"position"`
}

// Validate checks the fields every draft must carry
func (d Draft) Validate() error {
	switch {
	case strings.TrimSpace(d.CityName) == "":
		return ErrMissingCityName
	case strings.TrimSpace(d.Country) == "":
		return ErrMissingCountry
	case d.Position == nil:
		return ErrMissingPosition
	}
	return nil
}

// WithID promotes the draft to a City carrying id
func (d Draft) WithID(id int) City {
	c := City{
		ID:       id,
		CityName: d.CityName,
		Country:  d.Country,
		Emoji:    d.Emoji,
		Date:     d.Date,
		Notes:    d.Notes,
	}
	if d.Position != nil {
		c.Position = *d.Position
	}
	return c
}

// Country is a visited country, derived from the city list for display
type Country struct {
	Country string `json:"country"`
	Emoji   string `json:"emoji"`
}
