package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/alexivanou/worldwise/internal/config"
	"github.com/alexivanou/worldwise/internal/database"
	"github.com/alexivanou/worldwise/internal/stats"
	"go.uber.org/zap"
)

const dateLayout = "January 2, 2006"

func main() {
	format := flag.String("format", getenvDefault("OUTPUT_FORMAT", "json"), "json or text")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.DB.Type, "migrations"); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	s, err := stats.NewCollector(db, cfg.DB).Collect(ctx)
	if err != nil {
		logger.Fatal("Failed to collect statistics", zap.Error(err))
	}

	switch *format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(s)
	case "text", "human":
		err = printText(os.Stdout, s)
	default:
		logger.Fatal("Unknown output format", zap.String("format", *format))
	}
	if err != nil {
		logger.Fatal("Failed to write statistics", zap.Error(err))
	}
}

func printText(out io.Writer, s *stats.Stats) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Collected\t%s\n", s.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Database\t%s (%s)\n", s.Database.Type, formatBytes(uint64(s.Database.SizeBytes)))
	fmt.Fprintf(w, "Cities\t%d\n", s.Database.TotalRecords)
	fmt.Fprintf(w, "Countries\t%d\n", s.Database.VisitedCountries)
	if s.Database.FirstVisit != nil && s.Database.LastVisit != nil {
		fmt.Fprintf(w, "Travelling\t%s to %s\n",
			s.Database.FirstVisit.Format(dateLayout), s.Database.LastVisit.Format(dateLayout))
	}
	for _, t := range s.Database.TableStats {
		fmt.Fprintf(w, "Table %s\t%d rows, %s\n", t.Name, t.RowCount, formatBytes(uint64(t.SizeBytes)))
	}
	fmt.Fprintf(w, "Heap\t%s in use, %d GC cycles\n", formatBytes(s.Memory.HeapInuse), s.Memory.NumGC)
	fmt.Fprintf(w, "Goroutines\t%d on %d CPUs\n", s.Runtime.NumGoroutines, s.Runtime.NumCPU)

	return w.Flush()
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
