package creation

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/alexivanou/worldwise/internal/geocode"
	"github.com/alexivanou/worldwise/internal/model"
	"github.com/alexivanou/worldwise/internal/position"
	"go.uber.org/zap"
)

var (
	ErrNoPosition    = errors.New("no position selected")
	ErrNotACity      = errors.New("position is not inside a country")
	ErrGeocodeFailed = errors.New("reverse geocoding failed")
	ErrMissingName   = errors.New("city name is required")
	ErrMissingDate   = errors.New("visit date is required")
)

// Messages shown to the user for workflow errors
const (
	MsgNoPosition = "Start by clicking somewhere on the map."
	MsgNotACity   = "That doesn't seem to be a city. Click somewhere else 😔"
)

// Message maps a workflow error to the text the form displays
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoPosition):
		return MsgNoPosition
	case errors.Is(err, ErrNotACity):
		return MsgNotACity
	default:
		return err.Error()
	}
}

// Geocoder turns a coordinate into a place
type Geocoder interface {
	Lookup(ctx context.Context, p model.Position) (*geocode.Result, error)
}

// Creator persists drafts. *citystore.Store satisfies it.
type Creator interface {
	CreateCity(ctx context.Context, draft model.Draft)
}

// Form is the pre-filled new-city form
type Form struct {
	Position    model.Position
	CityName    string
	Country     string
	CountryCode string
	Date        time.Time
	Notes       string
}

// Emoji returns the flag for the form's country
func (f Form) Emoji() string {
	return model.FlagEmoji(f.CountryCode)
}

// Workflow seeds a form from a clicked coordinate and submits it to the store
type Workflow struct {
	geocoder Geocoder
	creator  Creator
	logger   *zap.Logger
	now      func() time.Time
}

func NewWorkflow(geocoder Geocoder, creator Creator, logger *zap.Logger) *Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{
		geocoder: geocoder,
		creator:  creator,
		logger:   logger.Named("creation"),
		now:      time.Now,
	}
}

// Prepare reads lat/lng from the navigation query and pre-fills a form
func (w *Workflow) Prepare(ctx context.Context, values url.Values) (*Form, error) {
	p, ok, err := position.ParseQuery(values)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoPosition
	}
	return w.PrepareAt(ctx, p)
}

// PrepareAt pre-fills a form for p
func (w *Workflow) PrepareAt(ctx context.Context, p model.Position) (*Form, error) {
	res, err := w.geocoder.Lookup(ctx, p)
	if err != nil {
		w.logger.Warn("reverse geocoding failed",
			zap.Float64("lat", p.Lat),
			zap.Float64("lng", p.Lng),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrGeocodeFailed, err)
	}

	if res.CountryCode == "" {
		return nil, ErrNotACity
	}

	return &Form{
		Position:    p,
		CityName:    res.PlaceName(),
		Country:     res.CountryName,
		CountryCode: res.CountryCode,
		Date:        w.now(),
	}, nil
}

// Submit validates the form and hands the draft to the store. The outcome
// lands in the store state.
func (w *Workflow) Submit(ctx context.Context, f Form) error {
	name := strings.TrimSpace(f.CityName)
	if name == "" {
		return ErrMissingName
	}
	if f.Date.IsZero() {
		return ErrMissingDate
	}

	pos := f.Position
	w.creator.CreateCity(ctx, model.Draft{
		CityName: name,
		Country:  f.Country,
		Emoji:    f.CountryCode,
		Date:     f.Date,
		Notes:    f.Notes,
		Position: &pos,
	})
	return nil
}
