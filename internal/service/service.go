package service

import (
	"errors"
	"time"

	"github.com/alexivanou/worldwise/internal/events"
	"github.com/alexivanou/worldwise/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrNotFound     = errors.New("city not found")
	ErrInvalidDraft = errors.New("invalid city")
)

// Service provides business logic for the API
type Service struct {
	cityRepo  repository.CityRepository
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a new service instance. A nil publisher disables events.
func NewService(cityRepo repository.CityRepository, publisher events.Publisher, logger *zap.Logger) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cityRepo:  cityRepo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}
