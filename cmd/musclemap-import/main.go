package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	musclemap "github.com/claude/musclemap"
	"github.com/claude/musclemap/internal/config"
	"github.com/claude/musclemap/internal/journal"
	"github.com/claude/musclemap/internal/models"
	"github.com/claude/musclemap/internal/plan"
	"github.com/claude/musclemap/internal/status"
	"github.com/claude/musclemap/internal/storage"
	"github.com/google/uuid"
)

// store is the subset of the reading stores the importer needs.
type store interface {
	InsertReading(ctx context.Context, row models.ReadingRow) (uuid.UUID, error)
	LatestStatus(ctx context.Context, userID int) (plan.Status, error)
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	filePath := flag.String("file", "", "status document to import")
	export := flag.Bool("export", false, "write the current status document to stdout instead of importing")
	userID := flag.Int("user", 1, "user ID to record readings for")
	note := flag.String("note", "imported", "note attached to imported readings")
	dryRun := flag.Bool("dry-run", false, "report readings without inserting into the store")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *filePath == "" && !*export {
		fmt.Fprintf(os.Stderr, "Usage: musclemap-import -config config.yaml -file status.yaml [-dry-run]\n")
		fmt.Fprintf(os.Stderr, "       musclemap-import -config config.yaml -export\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var doc plan.Status
	if !*export {
		var err error
		doc, err = status.Load(*filePath)
		if err != nil {
			log.Error("failed to load status document", "path", *filePath, "error", err)
			os.Exit(1)
		}
		log.Info("status document loaded", "path", *filePath, "groups", doc.Size())
	}

	if *dryRun && !*export {
		log.Info("DRY RUN mode, no readings will be written")
		for g, l := range doc.Entries() {
			log.Info("would record", "group", g, "level", l)
		}
		return
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	st, closer, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closer.Close()

	if *export {
		current, err := st.LatestStatus(ctx, *userID)
		if err != nil {
			log.Error("failed to read status", "error", err)
			os.Exit(1)
		}
		if err := status.Encode(os.Stdout, current); err != nil {
			log.Error("failed to write status document", "error", err)
			os.Exit(1)
		}
		return
	}

	n, err := importStatus(ctx, st, doc, *userID, *note, time.Now().UTC())
	if err != nil {
		log.Error("import failed", "error", err, "recorded", n)
		os.Exit(1)
	}
	log.Info("import complete", "recorded", n)
}

// importStatus records one reading per binding, all stamped with at.
func importStatus(ctx context.Context, st store, doc plan.Status, userID int, note string, at time.Time) (int, error) {
	n := 0
	for g, l := range doc.Entries() {
		_, err := st.InsertReading(ctx, models.ReadingRow{
			UserID:     userID,
			Group:      g,
			Level:      l,
			Note:       note,
			RecordedAt: at,
		})
		if err != nil {
			return n, fmt.Errorf("recording %s: %w", g, err)
		}
		n++
	}
	return n, nil
}

func openStore(ctx context.Context, cfg *config.Config) (store, io.Closer, error) {
	if cfg.Database.Driver == config.DriverSQLite {
		j, err := journal.Open(cfg.Database.Path)
		if err != nil {
			return nil, nil, err
		}
		return j, j, nil
	}

	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, musclemap.MigrationsFS, "migrations"); err != nil {
		return nil, nil, fmt.Errorf("migration failed: %w", err)
	}
	db, err := storage.New(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	return db, db, nil
}
