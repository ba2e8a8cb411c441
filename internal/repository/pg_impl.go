package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alexivanou/worldwise/internal/model"
	"github.com/jmoiron/sqlx"
)

// --- PostgreSQL Implementation ---

type pgCityRepository struct {
	db *sqlx.DB
}

func (r *pgCityRepository) ListCities(ctx context.Context) ([]model.City, error) {
	var rows []cityRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT "+cityColumns+" FROM cities ORDER BY id"); err != nil {
		return nil, err
	}
	return toModels(rows), nil
}

func (r *pgCityRepository) GetCityByID(ctx context.Context, id int) (*model.City, error) {
	var row cityRow
	if err := r.db.GetContext(ctx, &row, "SELECT "+cityColumns+" FROM cities WHERE id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	city := row.toModel()
	return &city, nil
}

func (r *pgCityRepository) CreateCity(ctx context.Context, draft model.Draft) (*model.City, error) {
	row := rowFromDraft(draft)
	q := `
		INSERT INTO cities (city_name, country, emoji, visited_at, notes, lat, lng)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	if err := r.db.GetContext(ctx, &row.ID, q,
		row.CityName, row.Country, row.Emoji, row.VisitedAt, row.Notes, row.Lat, row.Lng); err != nil {
		return nil, err
	}
	city := row.toModel()
	return &city, nil
}

func (r *pgCityRepository) DeleteCity(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cities WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *pgCityRepository) BulkInsertCities(ctx context.Context, cities []model.City) error {
	// Chunking to stay under the 65535 parameter limit
	err := chunks(cities, 2000, func(batch []cityRow) error {
		_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO cities (`+cityColumns+`)
		VALUES (:id, :city_name, :country, :emoji, :visited_at, :notes, :lat, :lng)`,
			batch)
		return err
	})
	if err != nil {
		return err
	}

	// Explicit ids bypass the serial sequence
	_, err = r.db.ExecContext(ctx,
		`SELECT setval(pg_get_serial_sequence('cities', 'id'), COALESCE(MAX(id), 1)) FROM cities`)
	return err
}
