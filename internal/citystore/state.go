package citystore

import "github.com/alexivanou/worldwise/internal/model"

// State is an immutable snapshot of the store.
// Callers must treat Cities as read-only.
type State struct {
	Cities      []model.City `json:"cities"`
	CurrentCity model.City   `json:"currentCity"`
	IsLoading   bool         `json:"isLoading"`
	Error       string       `json:"error"`
}

// InitialState is the state before the bulk load
func InitialState() State {
	return State{Cities: []model.City{}}
}

// City looks up a city by id in the snapshot
func (s State) City(id int) (model.City, bool) {
	for _, c := range s.Cities {
		if c.ID == id {
			return c, true
		}
	}
	return model.City{}, false
}
