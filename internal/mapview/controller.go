package mapview

import (
	"context"
	"strings"
	"sync"

	"github.com/alexivanou/worldwise/internal/citystore"
	"github.com/alexivanou/worldwise/internal/model"
	"github.com/alexivanou/worldwise/internal/position"
	"go.uber.org/zap"
)

// Renderer draws the map. Tiles and marker widgets live behind it.
type Renderer interface {
	SetView(center model.Position, zoom int)
	SetMarkers(markers []Marker)
}

// Navigator moves the app to another route
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// PositionSource is the part of position.Resolver the controller reads
type PositionSource interface {
	Resolved() model.Position
	Subscribe(fn func(model.Position)) func()
	IsLoading() bool
	DevicePosition() (model.Position, bool)
	RequestGeolocation(ctx context.Context) error
}

// Marker is one city pin, identified by the city id
type Marker struct {
	ID       int
	Position model.Position
	Emoji    string
	CityName string
}

// Label is the popup text of the marker
func (m Marker) Label() string {
	return strings.TrimSpace(model.FlagEmoji(m.Emoji) + " " + m.CityName)
}

// Controller keeps the map view in sync with the resolved coordinate and the
// city list, and turns map clicks into creation requests.
type Controller struct {
	positions PositionSource
	cities    citystore.View
	renderer  Renderer
	navigator Navigator
	logger    *zap.Logger

	mu     sync.Mutex
	unsubs []func()
}

// NewController wires the controller; call Start to begin rendering
func NewController(positions PositionSource, cities citystore.View, renderer Renderer, navigator Navigator, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		positions: positions,
		cities:    cities,
		renderer:  renderer,
		navigator: navigator,
		logger:    logger.Named("mapview"),
	}
}

// Start renders the current center and markers and follows later changes
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unsubs != nil {
		return
	}

	c.renderer.SetView(c.positions.Resolved(), position.DefaultZoom)
	c.renderer.SetMarkers(markersOf(c.cities.State().Cities))

	c.unsubs = []func(){
		c.positions.Subscribe(func(center model.Position) {
			c.logger.Debug("Re-centering map", zap.Float64("lat", center.Lat), zap.Float64("lng", center.Lng))
			c.renderer.SetView(center, position.DefaultZoom)
		}),
		c.cities.Subscribe(func(s citystore.State) {
			if s.IsLoading {
				return
			}
			c.renderer.SetMarkers(markersOf(s.Cities))
		}),
	}
}

// Stop detaches the controller from its sources
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, unsub := range c.unsubs {
		unsub()
	}
	c.unsubs = nil
}

// Center returns the coordinate the map is centered on
func (c *Controller) Center() model.Position {
	return c.positions.Resolved()
}

// Markers returns one marker per city in the store
func (c *Controller) Markers() []Marker {
	return markersOf(c.cities.State().Cities)
}

// HandleClick starts the creation workflow seeded with the clicked
// coordinate and returns the navigation target
func (c *Controller) HandleClick(p model.Position) string {
	path := position.FormPath(p)
	c.logger.Debug("Map clicked", zap.String("path", path))
	c.navigator.Navigate(path)
	return path
}

// ShowLocateButton reports whether the "use your position" control is
// shown; it disappears once a device fix exists
func (c *Controller) ShowLocateButton() bool {
	_, ok := c.positions.DevicePosition()
	return !ok
}

// LocateLabel is the caption of the "use your position" control
func (c *Controller) LocateLabel() string {
	if c.positions.IsLoading() {
		return "Loading..."
	}
	return "Use your position"
}

// Locate requests a device fix; the map re-centers through the subscription
func (c *Controller) Locate(ctx context.Context) error {
	return c.positions.RequestGeolocation(ctx)
}

func markersOf(cities []model.City) []Marker {
	markers := make([]Marker, 0, len(cities))
	for _, city := range cities {
		markers = append(markers, Marker{
			ID:       city.ID,
			Position: city.Position,
			Emoji:    city.Emoji,
			CityName: city.CityName,
		})
	}
	return markers
}
