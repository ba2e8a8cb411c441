package seeder

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexivanou/worldwise/internal/config"
	"github.com/alexivanou/worldwise/internal/model"
)

// Parser reads a cities fixture in the {"cities": [...]} shape
type Parser struct {
	path      string
	batchSize int
}

// NewParser creates a new parser instance with config
func NewParser(seederCfg config.SeederConfig) *Parser {
	return &Parser{
		path:      seederCfg.Fixture,
		batchSize: seederCfg.BatchSize,
	}
}

// fixtureID accepts both numeric and string ids
type fixtureID int

func (id *fixtureID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*id = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid id %s: %w", string(b), err)
	}
	*id = fixtureID(n)
	return nil
}

type fixtureCity struct {
	ID       fixtureID       `json:"id"`
	CityName string          `json:"cityName"`
	Country  string          `json:"country"`
	Emoji    string          `json:"emoji"`
	Date     time.Time       `json:"date"`
	Notes    string          `json:"notes"`
	Position *model.Position `json:"position"`
}

type fixture struct {
	Cities []fixtureCity `json:"cities"`
}

// ParseCities loads the fixture. Entries without an id get one after the
// highest id present; flag glyphs are normalized to country codes.
func (p *Parser) ParseCities() ([]model.City, error) {
	data, err := p.read()
	if err != nil {
		return nil, err
	}
	return parseCities(bytes.NewReader(data))
}

// ProcessCities parses the fixture and hands it to callback in batches
func (p *Parser) ProcessCities(callback func(batch []model.City) error) (int, error) {
	cities, err := p.ParseCities()
	if err != nil {
		return 0, err
	}

	batchSize := p.batchSize
	if batchSize <= 0 {
		batchSize = 500
	}

	for i := 0; i < len(cities); i += batchSize {
		end := i + batchSize
		if end > len(cities) {
			end = len(cities)
		}
		if err := callback(cities[i:end]); err != nil {
			return i, err
		}
	}
	return len(cities), nil
}

func (p *Parser) read() ([]byte, error) {
	if strings.EqualFold(filepath.Ext(p.path), ".zip") {
		return readFromZip(p.path)
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	return data, nil
}

func readFromZip(zipPath string) ([]byte, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if !strings.HasSuffix(f.Name, ".json") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open file in zip: %w", err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("no json file found in zip")
}

func parseCities(r io.Reader) ([]model.City, error) {
	var fx fixture
	if err := json.NewDecoder(r).Decode(&fx); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}

	maxID := 0
	seen := make(map[int]bool, len(fx.Cities))
	for _, c := range fx.Cities {
		if int(c.ID) > maxID {
			maxID = int(c.ID)
		}
	}

	cities := make([]model.City, 0, len(fx.Cities))
	for i, fc := range fx.Cities {
		draft := model.Draft{
			CityName: strings.TrimSpace(fc.CityName),
			Country:  strings.TrimSpace(fc.Country),
			Emoji:    model.CountryCode(fc.Emoji),
			Date:     fc.Date.UTC(),
			Notes:    fc.Notes,
			Position: fc.Position,
		}
		if err := draft.Validate(); err != nil {
			return nil, fmt.Errorf("city #%d: %w", i, err)
		}

		id := int(fc.ID)
		if id == 0 || seen[id] {
			maxID++
			id = maxID
		}
		seen[id] = true

		cities = append(cities, draft.WithID(id))
	}
	return cities, nil
}
