package stats

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/alexivanou/worldwise/internal/config"
	"github.com/jmoiron/sqlx"
)

// Stats is the /stats payload
type Stats struct {
	Timestamp time.Time     `json:"timestamp"`
	Memory    MemoryStats   `json:"memory"`
	Database  DatabaseStats `json:"database"`
	Runtime   RuntimeStats  `json:"runtime"`
}

type MemoryStats struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"total_alloc"`
	Sys        uint64 `json:"sys"`
	NumGC      uint32 `json:"num_gc"`
	HeapInuse  uint64 `json:"heap_inuse"`
}

// DatabaseStats describes the travel log as stored
type DatabaseStats struct {
	Type             string      `json:"type"`
	TotalRecords     int64       `json:"total_records"`
	SizeBytes        int64       `json:"size_bytes"`
	TableStats       []TableStat `json:"table_stats"`
	VisitedCountries int         `json:"visited_countries"`
	FirstVisit       *time.Time  `json:"first_visit,omitempty"`
	LastVisit        *time.Time  `json:"last_visit,omitempty"`
}

type TableStat struct {
	Name      string `json:"name"`
	RowCount  int64  `json:"row_count"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
}

type RuntimeStats struct {
	NumGoroutines int   `json:"num_goroutines"`
	NumCPU        int   `json:"num_cpu"`
	UptimeSeconds int64 `json:"uptime_seconds"`
}

// ReadMemStats stops the world, so its result is reused for a few seconds
const memStatsTTL = 5 * time.Second

type Collector struct {
	db        *sqlx.DB
	dbType    config.DBType
	startTime time.Time

	memMu   sync.Mutex
	mem     MemoryStats
	memRead time.Time
}

func NewCollector(db *sqlx.DB, cfg config.DBConfig) *Collector {
	return &Collector{
		db:        db,
		dbType:    cfg.Type,
		startTime: time.Now(),
	}
}

func (c *Collector) Collect(ctx context.Context) (*Stats, error) {
	db, err := c.database(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Timestamp: time.Now(),
		Memory:    c.memory(),
		Database:  *db,
		Runtime: RuntimeStats{
			NumGoroutines: runtime.NumGoroutine(),
			NumCPU:        runtime.NumCPU(),
			UptimeSeconds: int64(time.Since(c.startTime).Seconds()),
		},
	}, nil
}

func (c *Collector) memory() MemoryStats {
	c.memMu.Lock()
	defer c.memMu.Unlock()

	if !c.memRead.IsZero() && time.Since(c.memRead) < memStatsTTL {
		return c.mem
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	c.mem = MemoryStats{
		Alloc:      m.Alloc,
		TotalAlloc: m.TotalAlloc,
		Sys:        m.Sys,
		NumGC:      m.NumGC,
		HeapInuse:  m.HeapInuse,
	}
	c.memRead = time.Now()
	return c.mem
}

func (c *Collector) database(ctx context.Context) (*DatabaseStats, error) {
	s := &DatabaseStats{Type: string(c.dbType)}

	// Size is informational; not every build of SQLite exposes it
	if size, err := c.databaseSize(ctx); err == nil {
		s.SizeBytes = size
	}

	cities := TableStat{Name: "cities"}
	if err := c.db.GetContext(ctx, &cities.RowCount, "SELECT COUNT(*) FROM cities"); err != nil {
		return nil, fmt.Errorf("failed to count cities: %w", err)
	}
	cities.SizeBytes = c.tableSize(ctx, cities.Name)
	s.TableStats = []TableStat{cities}
	s.TotalRecords = cities.RowCount

	if err := c.db.GetContext(ctx, &s.VisitedCountries, "SELECT COUNT(DISTINCT country) FROM cities"); err != nil {
		return nil, fmt.Errorf("failed to count visited countries: %w", err)
	}

	var err error
	s.FirstVisit, s.LastVisit, err = c.visitRange(ctx)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (c *Collector) databaseSize(ctx context.Context) (int64, error) {
	q := "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
	if c.dbType == config.DBTypePostgreSQL {
		q = "SELECT pg_database_size(current_database())"
	}
	var size int64
	err := c.db.GetContext(ctx, &size, q)
	return size, err
}

func (c *Collector) tableSize(ctx context.Context, table string) int64 {
	var size int64
	if c.dbType == config.DBTypePostgreSQL {
		_ = c.db.GetContext(ctx, &size, "SELECT COALESCE(pg_total_relation_size($1::regclass), 0)", table)
	} else {
		_ = c.db.GetContext(ctx, &size, "SELECT COALESCE(SUM(pgsize), 0) FROM dbstat WHERE name = ?", table)
	}
	return size
}

// visitRange returns nil bounds for an empty travel log. MIN/MAX would lose
// the column type on SQLite, so the dates are scanned instead.
func (c *Collector) visitRange(ctx context.Context) (*time.Time, *time.Time, error) {
	var visits []time.Time
	if err := c.db.SelectContext(ctx, &visits, "SELECT visited_at FROM cities ORDER BY visited_at"); err != nil {
		return nil, nil, fmt.Errorf("failed to get visit range: %w", err)
	}
	if len(visits) == 0 {
		return nil, nil, nil
	}
	first, last := visits[0].UTC(), visits[len(visits)-1].UTC()
	return &first, &last, nil
}
