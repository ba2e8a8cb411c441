package citystore

import "github.com/alexivanou/worldwise/internal/model"

// Kind is the wire name of an action
type Kind string

const (
	KindLoading      Kind = "loading"
	KindCitiesLoaded Kind = "cities/loaded"
	KindCityCreated  Kind = "city/created"
	KindCityDeleted  Kind = "city/deleted"
	KindCityLoaded   Kind = "city/loaded"
	KindRejected     Kind = "rejected"
)

// Action is a state transition request handled by Reduce.
// The set of actions is closed: only the types in this file implement it.
type Action interface {
	Kind() Kind
	action()
}

// Loading marks the start of a remote operation
type Loading struct{}

// CitiesLoaded carries the full city collection
type CitiesLoaded struct {
	Cities []model.City
}

// CityCreated carries the persisted city returned by the remote store
type CityCreated struct {
	City model.City
}

// CityDeleted carries the id of a removed city
type CityDeleted struct {
	ID int
}

// CityLoaded carries a single fetched city
type CityLoaded struct {
	City model.City
}

// Rejected carries the human-readable failure message of an operation
type Rejected struct {
	Message string
}

func (Loading) Kind() Kind      { return KindLoading }
func (CitiesLoaded) Kind() Kind { return KindCitiesLoaded }
func (CityCreated) Kind() Kind  { return KindCityCreated }
func (CityDeleted) Kind() Kind  { return KindCityDeleted }
func (CityLoaded) Kind() Kind   { return KindCityLoaded }
func (Rejected) Kind() Kind     { return KindRejected }

func (Loading) action()      {}
func (CitiesLoaded) action() {}
func (CityCreated) action()  {}
func (CityDeleted) action()  {}
func (CityLoaded) action()   {}
func (Rejected) action()     {}
