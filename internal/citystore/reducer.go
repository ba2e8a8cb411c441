package citystore

import (
	"fmt"

	"github.com/alexivanou/worldwise/internal/model"
)

// Reduce returns the state that follows s after a.
// It never modifies s; an action outside the closed set panics.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Loading:
		s.IsLoading = true
		s.Error = ""
		return s
	case CitiesLoaded:
		s.IsLoading = false
		s.Cities = dedupe(a.Cities)
		return s
	case CityCreated:
		s.IsLoading = false
		s.Cities = append(without(s.Cities, a.City.ID), a.City)
		s.CurrentCity = a.City
		return s
	case CityDeleted:
		s.IsLoading = false
		s.Cities = without(s.Cities, a.ID)
		if s.CurrentCity.ID == a.ID {
			s.CurrentCity = model.City{}
		}
		return s
	case CityLoaded:
		s.IsLoading = false
		s.CurrentCity = a.City
		return s
	case Rejected:
		s.IsLoading = false
		s.Error = a.Message
		return s
	default:
		panic(fmt.Errorf("%w: %T", ErrInvalidActionKind, a))
	}
}

// without returns a fresh copy of cities minus the entry with id
func without(cities []model.City, id int) []model.City {
	out := make([]model.City, 0, len(cities)+1)
	for _, c := range cities {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

// dedupe copies cities keeping the last record for each id at the position
// of its first occurrence
func dedupe(cities []model.City) []model.City {
	out := make([]model.City, 0, len(cities))
	index := make(map[int]int, len(cities))
	for _, c := range cities {
		if i, ok := index[c.ID]; ok {
			out[i] = c
			continue
		}
		index[c.ID] = len(out)
		out = append(out, c)
	}
	return out
}
