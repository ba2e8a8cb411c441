package service

import (
	"context"

	"github.com/alexivanou/worldwise/internal/model"
)

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	ListCities(ctx context.Context) ([]model.City, error)
	GetCity(ctx context.Context, id int) (*model.City, error)
	CreateCity(ctx context.Context, draft model.Draft) (*model.City, error)
	DeleteCity(ctx context.Context, id int) error
}
