package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexivanou/worldwise/internal/citystore"
	"github.com/alexivanou/worldwise/internal/config"
	"github.com/alexivanou/worldwise/internal/remote"
	"go.uber.org/zap"
)

const usage = `usage: worldwise <command> [flags]

commands:
  list                       visited cities
  countries                  visited countries
  show <id>                  one city
  add -lat <lat> -lng <lng>  add the city at a position
  delete <id>                remove a city
  center                     map center and markers
`

// app carries what every command needs
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *citystore.Store
	out    *os.File
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		cfg:    cfg,
		logger: logger,
		store:  citystore.New(remote.NewClient(cfg.Client.BaseURL, cfg.Client.Timeout), logger),
		out:    os.Stdout,
	}

	commands := map[string]func(context.Context, []string) error{
		"list":      a.list,
		"countries": a.countries,
		"show":      a.show,
		"add":       a.add,
		"delete":    a.delete,
		"center":    a.center,
	}

	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err := cmd(ctx, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
