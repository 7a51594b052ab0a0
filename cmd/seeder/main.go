package main

import (
	"context"
	"flag"
	"iter"
	"log/slog"
	"os"

	"github.com/poiesic/phonebook"
	"github.com/poiesic/phonebook/config"
	"github.com/poiesic/phonebook/core"
	"github.com/poiesic/phonebook/directory"
	"github.com/poiesic/phonebook/seed"
)

var (
	configFile  = flag.String("config", "", "config file")
	seedFile    = flag.String("src", "", "YAML export to load instead of generated contacts")
	count       = flag.Int("n", 100, "number of contacts to generate")
	randomSeed  = flag.Uint64("seed", 1, "seed for generated contacts")
	workers     = flag.Int("workers", 4, "number of concurrent workers")
	reportEvery = flag.Int("progress", 0, "print progress every N contacts (0 disables)")
	backendName = flag.String("backend", "", "storage backend (badger, sqlite)")
	dbPath      = flag.String("db", "", "path to the contact database")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	cfg, err := config.Load(*configFile)
	if err != nil {
		panic(err)
	}
	if *backendName != "" {
		if cfg.DBPath == config.DefaultDBPath(cfg.Backend) {
			cfg.DBPath = ""
		}
		cfg.Backend = *backendName
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	ctx := context.Background()

	pb, err := phonebook.OpenConfig(ctx, cfg)
	if err != nil {
		panic(err)
	}
	if err := pb.StoreErr(); err != nil {
		slog.Error("contact store unavailable", "err", err)
		os.Exit(1)
	}
	dir := directory.NewLocked(pb.Directory())
	defer dir.Close()

	opts := []seed.Option{seed.WithPoolSize(*workers)}
	if *reportEvery > 0 {
		opts = append(opts, seed.WithProgress(os.Stderr, *reportEvery))
	}
	seeder, err := seed.NewSeeder(dir, opts...)
	if err != nil {
		panic(err)
	}
	defer seeder.Release()

	// Determine source of seed data
	var source iter.Seq[core.Contact]
	if *seedFile != "" {
		source, err = seed.FromFile(*seedFile)
		if err != nil {
			panic(err)
		}
	} else {
		source = seed.Sample(*count, cfg.Categories, *randomSeed)
	}

	report, err := seeder.Load(ctx, source)
	if err != nil {
		panic(err)
	}
	slog.Info("seeded phonebook",
		"backend", pb.Backend(),
		"path", cfg.DBPath,
		"contacts", dir.Len(),
		"added", report.Added,
		"rejected", report.Total()-report.Added)
}
