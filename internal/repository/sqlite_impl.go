package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alexivanou/worldwise/internal/model"
	"github.com/jmoiron/sqlx"
)

type sqliteCityRepository struct {
	db *sqlx.DB
}

func (r *sqliteCityRepository) ListCities(ctx context.Context) ([]model.City, error) {
	var rows []cityRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT "+cityColumns+" FROM cities ORDER BY id"); err != nil {
		return nil, err
	}
	return toModels(rows), nil
}

func (r *sqliteCityRepository) GetCityByID(ctx context.Context, id int) (*model.City, error) {
	var row cityRow
	if err := r.db.GetContext(ctx, &row, "SELECT "+cityColumns+" FROM cities WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	city := row.toModel()
	return &city, nil
}

func (r *sqliteCityRepository) CreateCity(ctx context.Context, draft model.Draft) (*model.City, error) {
	row := rowFromDraft(draft)
	res, err := r.db.NamedExecContext(ctx, `
		INSERT INTO cities (city_name, country, emoji, visited_at, notes, lat, lng)
		VALUES (:city_name, :country, :emoji, :visited_at, :notes, :lat, :lng)`,
		row)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	row.ID = int(id)
	city := row.toModel()
	return &city, nil
}

func (r *sqliteCityRepository) DeleteCity(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cities WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *sqliteCityRepository) BulkInsertCities(ctx context.Context, cities []model.City) error {
	// 100 rows * 8 params stays well within the SQLite variable limit
	return chunks(cities, 100, func(batch []cityRow) error {
		_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO cities (`+cityColumns+`)
		VALUES (:id, :city_name, :country, :emoji, :visited_at, :notes, :lat, :lng)`,
			batch)
		return err
	})
}
