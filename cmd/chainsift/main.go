package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/chainsift/pkg/chainsift/classify"
	"github.com/cognicore/chainsift/pkg/chainsift/config"
	"github.com/cognicore/chainsift/pkg/chainsift/dates"
	"github.com/cognicore/chainsift/pkg/chainsift/identity"
	"github.com/cognicore/chainsift/pkg/chainsift/pipeline"
	"github.com/cognicore/chainsift/pkg/chainsift/segment"
	"github.com/cognicore/chainsift/pkg/chainsift/store"
	"github.com/cognicore/chainsift/pkg/chainsift/store/csvfile"
	"github.com/cognicore/chainsift/pkg/chainsift/store/sqlite"
)

func main() {
	var (
		dataPath = flag.String("data", "", "Filing archive root (required)")
		mapPath  = flag.String("map", "", "CIK to company name CSV (optional)")
		outPath  = flag.String("out", "", "Output CSV path (default from config)")
		dbPath   = flag.String("db", "", "Optional SQLite catalog path")
		cfgPath  = flag.String("config", "", "YAML config overriding defaults (optional)")
	)
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatal("Failed to load configuration: ", err)
		}
		cfg = loaded
	}
	if *dataPath != "" {
		cfg.DataRoot = *dataPath
	}
	if *mapPath != "" {
		cfg.ReferenceCSV = *mapPath
	}
	if *outPath != "" {
		cfg.OutputCSV = *outPath
	}
	if *dbPath != "" {
		cfg.CatalogDB = *dbPath
	}
	if cfg.DataRoot == "" {
		log.Fatal("--data (or data_root in the config file) required")
	}

	logger := newLogger(cfg.LogLevel)
	ctx := context.Background()
	runID := ulid.Make().String()

	// The reference table is a fallback only; a missing or malformed
	// file costs names, not the run.
	names := identity.EmptyRefTable()
	if cfg.ReferenceCSV != "" {
		loaded, err := identity.LoadRefTable(cfg.ReferenceCSV, cfg.IDColumn, cfg.NameColumn)
		if err != nil {
			logger.Error("reference table unavailable, names degrade to unknown", "error", err)
		}
		names = loaded
	}
	logger.Info("run starting", "run", runID, "reference_names", names.Len())

	seg, err := segment.New()
	if err != nil {
		log.Fatal("Failed to build sentence tokenizer: ", err)
	}

	out, err := csvfile.Open(cfg.OutputCSV)
	if err != nil {
		log.Fatal("Failed to open output: ", err)
	}
	sink := store.Store(out)

	if cfg.CatalogDB != "" {
		catalog, err := sqlite.Open(ctx, cfg.CatalogDB, runID)
		if err != nil {
			log.Fatal("Failed to open catalog: ", err)
		}
		sink = store.Multi(out, catalog)
	}
	defer sink.Close()

	p := pipeline.New(pipeline.Options{
		Config:    cfg,
		Store:     sink,
		Segmenter: seg,
		Classifier: classify.New(classify.Options{
			MinSentenceLength:     cfg.MinSentenceLength,
			ExtraEntityTerms:      cfg.ExtraEntityTerms,
			ExtraOperationalTerms: cfg.ExtraOperationalTerms,
		}),
		Dates:    dates.NewExtractor(cfg.HeaderWindow),
		Identity: identity.NewResolver(cfg.IdentityWindow, names),
		Logger:   logger,
	})

	sum, err := p.Run(ctx)
	if err != nil {
		log.Fatal("Run failed: ", err)
	}

	logger.Info("run complete",
		"run", runID,
		"companies", sum.Companies,
		"attachments", sum.Attachments,
		"skipped", sum.Skipped,
		"records", sum.Records,
		"flush_failures", sum.FlushFailures,
		"output", cfg.OutputCSV)
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
