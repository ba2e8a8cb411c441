package citystore

import (
	"math/rand"
	"testing"

	"github.com/alexivanou/worldwise/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	lisbon = model.City{ID: 1, CityName: "Lisbon", Country: "Portugal", Emoji: "PT", Position: model.Position{Lat: 38.7, Lng: -9.1}}
	porto  = model.City{ID: 2, CityName: "Porto", Country: "Portugal", Emoji: "PT", Position: model.Position{Lat: 41.1, Lng: -8.6}}
	berlin = model.City{ID: 3, CityName: "Berlin", Country: "Germany", Emoji: "DE", Position: model.Position{Lat: 52.52, Lng: 13.40}}
)

// bogusAction satisfies Action without being one of the known variants
type bogusAction struct{}

func (bogusAction) Kind() Kind { return "city/renamed" }
func (bogusAction) action()    {}

func TestReduce(t *testing.T) {
	loaded := State{Cities: []model.City{lisbon, porto}, CurrentCity: porto}

	tests := []struct {
		name     string
		state    State
		action   Action
		expected State
	}{
		{
			name:     "loading sets flag and clears error",
			state:    State{Cities: []model.City{lisbon}, Error: "boom"},
			action:   Loading{},
			expected: State{Cities: []model.City{lisbon}, IsLoading: true},
		},
		{
			name:     "cities loaded replaces collection",
			state:    State{Cities: []model.City{berlin}, IsLoading: true},
			action:   CitiesLoaded{Cities: []model.City{lisbon}},
			expected: State{Cities: []model.City{lisbon}},
		},
		{
			name:     "city created appends and becomes current",
			state:    State{Cities: []model.City{lisbon}, IsLoading: true},
			action:   CityCreated{City: porto},
			expected: State{Cities: []model.City{lisbon, porto}, CurrentCity: porto},
		},
		{
			name:     "deleting current city clears it",
			state:    loaded,
			action:   CityDeleted{ID: 2},
			expected: State{Cities: []model.City{lisbon}},
		},
		{
			name:     "deleting another city keeps current",
			state:    loaded,
			action:   CityDeleted{ID: 1},
			expected: State{Cities: []model.City{porto}, CurrentCity: porto},
		},
		{
			name:     "city loaded sets current only",
			state:    State{Cities: []model.City{lisbon, porto}, IsLoading: true},
			action:   CityLoaded{City: lisbon},
			expected: State{Cities: []model.City{lisbon, porto}, CurrentCity: lisbon},
		},
		{
			name:     "rejected records message",
			state:    State{Cities: []model.City{lisbon}, IsLoading: true},
			action:   Rejected{Message: MsgLoadFailed},
			expected: State{Cities: []model.City{lisbon}, Error: MsgLoadFailed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(tt.state, tt.action)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	cities := []model.City{lisbon, porto, berlin}
	before := State{Cities: cities, CurrentCity: porto}

	Reduce(before, CityDeleted{ID: 1})
	Reduce(before, CityCreated{City: model.City{ID: 4, CityName: "Faro"}})

	assert.Equal(t, []model.City{lisbon, porto, berlin}, cities)
	assert.Equal(t, porto, before.CurrentCity)
}

func TestReduce_UnknownActionPanics(t *testing.T) {
	assert.PanicsWithError(t, "unknown action type: citystore.bogusAction", func() {
		Reduce(InitialState(), bogusAction{})
	})
}

func TestReduce_DuplicateIDs(t *testing.T) {
	renamed := lisbon
	renamed.CityName = "Lisboa"

	s := Reduce(InitialState(), CitiesLoaded{Cities: []model.City{lisbon, porto, renamed}})
	require.Len(t, s.Cities, 2)
	assert.Equal(t, "Lisboa", s.Cities[0].CityName)

	s = Reduce(s, CityCreated{City: porto})
	assert.Len(t, s.Cities, 2)
	assert.Equal(t, porto, s.CurrentCity)
}

func TestReduce_NoDuplicateIDsForAnySequence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	randomCity := func() model.City {
		id := rng.Intn(6) + 1
		return model.City{ID: id, CityName: "c", Country: "x"}
	}
	randomAction := func() Action {
		switch rng.Intn(6) {
		case 0:
			return Loading{}
		case 1:
			n := rng.Intn(5)
			cities := make([]model.City, n)
			for i := range cities {
				cities[i] = randomCity()
			}
			return CitiesLoaded{Cities: cities}
		case 2:
			return CityCreated{City: randomCity()}
		case 3:
			return CityDeleted{ID: rng.Intn(6) + 1}
		case 4:
			return CityLoaded{City: randomCity()}
		default:
			return Rejected{Message: "nope"}
		}
	}

	for run := 0; run < 200; run++ {
		s := InitialState()
		for step := 0; step < 50; step++ {
			a := randomAction()
			s = Reduce(s, a)

			seen := make(map[int]bool)
			for _, c := range s.Cities {
				require.False(t, seen[c.ID], "duplicate id %d after %s", c.ID, a.Kind())
				seen[c.ID] = true
			}
			if a.Kind() != KindLoading {
				require.False(t, s.IsLoading)
			}
		}
	}
}

func TestCountries(t *testing.T) {
	countries := Countries([]model.City{lisbon, berlin, porto})

	assert.Equal(t, []model.Country{
		{Country: "Portugal", Emoji: "PT"},
		{Country: "Germany", Emoji: "DE"},
	}, countries)
	assert.Empty(t, Countries(nil))
}

func TestState_City(t *testing.T) {
	s := State{Cities: []model.City{lisbon, porto}}

	c, ok := s.City(2)
	assert.True(t, ok)
	assert.Equal(t, porto, c)

	_, ok = s.City(9)
	assert.False(t, ok)
}
