package seeder

import (
	"context"
	"fmt"

	"github.com/alexivanou/worldwise/internal/model"
	"go.uber.org/zap"
)

// Inserter is the write side of the city repository used for imports
type Inserter interface {
	BulkInsertCities(ctx context.Context, cities []model.City) error
}

// Seed imports the fixture in batches and returns the number of cities written
func Seed(ctx context.Context, parser *Parser, repo Inserter, logger *zap.Logger) (int, error) {
	logger.Info("Importing cities fixture...", zap.String("fixture", parser.path))

	total, err := parser.ProcessCities(func(batch []model.City) error {
		if err := repo.BulkInsertCities(ctx, batch); err != nil {
			return fmt.Errorf("failed to insert cities batch: %w", err)
		}
		logger.Debug("Inserted batch", zap.Int("size", len(batch)))
		return nil
	})
	if err != nil {
		return total, err
	}

	logger.Info("Imported cities", zap.Int("cities", total))
	return total, nil
}
