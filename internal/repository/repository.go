package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexivanou/worldwise/internal/config"
	"github.com/alexivanou/worldwise/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// pgUndefinedTable is the SQLSTATE for a missing relation
const pgUndefinedTable = "42P01"

// CityRepository defines operations for visited cities
type CityRepository interface {
	ListCities(ctx context.Context) ([]model.City, error)
	// GetCityByID returns nil without error when the city does not exist
	GetCityByID(ctx context.Context, id int) (*model.City, error)
	CreateCity(ctx context.Context, draft model.Draft) (*model.City, error)
	// DeleteCity reports whether a row was removed
	DeleteCity(ctx context.Context, id int) (bool, error)
	BulkInsertCities(ctx context.Context, cities []model.City) error
}

// Container holds all repositories
type Container struct {
	City CityRepository
}

// NewRepositories creates repository implementations based on DB type
func NewRepositories(db *sqlx.DB, dbType config.DBType) *Container {
	if dbType == config.DBTypePostgreSQL {
		return &Container{City: &pgCityRepository{db: db}}
	}

	// Default to SQLite
	return &Container{City: &sqliteCityRepository{db: db}}
}

// IsDatabaseEmpty is used by the binaries to decide on auto-seeding. A
// missing cities table counts as empty; any other failure is returned.
func IsDatabaseEmpty(ctx context.Context, db *sqlx.DB) (bool, error) {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM cities"); err != nil {
		if isMissingTable(err) {
			return true, nil
		}
		return false, fmt.Errorf("failed to count cities: %w", err)
	}
	return count == 0, nil
}

func isMissingTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTable
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return strings.Contains(liteErr.Error(), "no such table")
	}
	return false
}

// cityRow is the flat table layout of a model.City
type cityRow struct {
	ID        int       `db:"id"`
	CityName  string    `db:"city_name"`
	Country   string    `db:"country"`
	Emoji     string    `db:"emoji"`
	VisitedAt time.Time `db:"visited_at"`
	Notes     string    `db:"notes"`
	Lat       float64   `db:"lat"`
	Lng       float64   `db:"lng"`
}

const cityColumns = "id, city_name, country, emoji, visited_at, notes, lat, lng"

func (r cityRow) toModel() model.City {
	return model.City{
		ID:       r.ID,
		CityName: r.CityName,
		Country:  r.Country,
		Emoji:    r.Emoji,
		Date:     r.VisitedAt.UTC(),
		Notes:    r.Notes,
		Position: model.Position{Lat: r.Lat, Lng: r.Lng},
	}
}

func rowFromCity(c model.City) cityRow {
	return cityRow{
		ID:        c.ID,
		CityName:  c.CityName,
		Country:   c.Country,
		Emoji:     c.Emoji,
		VisitedAt: c.Date.UTC(),
		Notes:     c.Notes,
		Lat:       c.Position.Lat,
		Lng:       c.Position.Lng,
	}
}

func rowFromDraft(d model.Draft) cityRow {
	return rowFromCity(d.WithID(0))
}

func toModels(rows []cityRow) []model.City {
	cities := make([]model.City, 0, len(rows))
	for _, r := range rows {
		cities = append(cities, r.toModel())
	}
	return cities
}

func chunks(cities []model.City, size int, fn func([]cityRow) error) error {
	for i := 0; i < len(cities); i += size {
		end := i + size
		if end > len(cities) {
			end = len(cities)
		}
		batch := make([]cityRow, 0, end-i)
		for _, c := range cities[i:end] {
			batch = append(batch, rowFromCity(c))
		}
		if err := fn(batch); err != nil {
			return err
		}
	}
	return nil
}
