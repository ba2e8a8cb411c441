package seeder

import (
	"context"
	"errors"
	"testing"

	"github.com/alexivanou/worldwise/internal/config"
	"github.com/alexivanou/worldwise/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingInserter struct {
	batches [][]model.City
	failOn  int
}

func (r *recordingInserter) BulkInsertCities(_ context.Context, cities []model.City) error {
	if r.failOn > 0 && len(r.batches)+1 == r.failOn {
		return errors.New("constraint violation")
	}
	r.batches = append(r.batches, cities)
	return nil
}

func TestSeed(t *testing.T) {
	parser := NewParser(config.SeederConfig{Fixture: writeFixture(t, testFixture), BatchSize: 2})
	repo := &recordingInserter{}

	total, err := Seed(context.Background(), parser, repo, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, repo.batches, 2)
}

func TestSeed_InsertFailure(t *testing.T) {
	parser := NewParser(config.SeederConfig{Fixture: writeFixture(t, testFixture), BatchSize: 2})
	repo := &recordingInserter{failOn: 2}

	total, err := Seed(context.Background(), parser, repo, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert cities batch")
	assert.Equal(t, 2, total)
}
