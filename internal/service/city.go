package service

import (
	"context"
	"fmt"
	"math"

	"github.com/alexivanou/worldwise/internal/events"
	"github.com/alexivanou/worldwise/internal/model"
	"go.uber.org/zap"
)

// ListCities returns every visited city in insertion order
func (s *Service) ListCities(ctx context.Context) ([]model.City, error) {
	cities, err := s.cityRepo.ListCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}

// GetCity retrieves one city or ErrNotFound
func (s *Service) GetCity(ctx context.Context, id int) (*model.City, error) {
	city, err := s.cityRepo.GetCityByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get city: %w", err)
	}
	if city == nil {
		return nil, ErrNotFound
	}
	return city, nil
}

// CreateCity validates and stores a draft, assigning its id
func (s *Service) CreateCity(ctx context.Context, draft model.Draft) (*model.City, error) {
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}
	if p := draft.Position; math.IsNaN(p.Lat) || math.IsNaN(p.Lng) ||
		p.Lat < -90 || p.Lat > 90 || p.Lng < -180 || p.Lng > 180 {
		return nil, fmt.Errorf("%w: position %.4f,%.4f out of range", ErrInvalidDraft, p.Lat, p.Lng)
	}
	if draft.Date.IsZero() {
		draft.Date = s.now()
	}
	// Browsers send the flag glyph, the table keeps the country code
	draft.Emoji = model.CountryCode(draft.Emoji)

	city, err := s.cityRepo.CreateCity(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("failed to create city: %w", err)
	}

	s.publish(ctx, events.Event{Type: events.CityCreated, CityID: city.ID, City: city})
	return city, nil
}

// DeleteCity removes a city or returns ErrNotFound
func (s *Service) DeleteCity(ctx context.Context, id int) error {
	deleted, err := s.cityRepo.DeleteCity(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete city: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}

	s.publish(ctx, events.Event{Type: events.CityDeleted, CityID: id})
	return nil
}

// Events are best effort; the write already succeeded.
func (s *Service) publish(ctx context.Context, e events.Event) {
	e.At = s.now().UTC()
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Warn("failed to publish city event",
			zap.String("type", string(e.Type)),
			zap.Int("city_id", e.CityID),
			zap.Error(err))
	}
}
