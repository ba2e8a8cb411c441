package citystore

import "github.com/alexivanou/worldwise/internal/model"

// View is the read-only side of the store handed to observers
type View interface {
	State() State
	Subscribe(fn func(State)) (unsubscribe func())
}

// Countries groups cities by country, keeping the first occurrence order
func Countries(cities []model.City) []model.Country {
	seen := make(map[string]bool)
	var countries []model.Country
	for _, c := range cities {
		if seen[c.Country] {
			continue
		}
		seen[c.Country] = true
		countries = append(countries, model.Country{Country: c.Country, Emoji: c.Emoji})
	}
	return countries
}
