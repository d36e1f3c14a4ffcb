package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"ratemyrep/internal/airtable"
	"ratemyrep/internal/config"
	"ratemyrep/internal/domain"
	"ratemyrep/internal/importer"
)

// importConfig son las rutas de los CSV a importar.
type importConfig struct {
	OfficialsCSV string `env:"OFFICIALS_CSV" envDefault:"data/officials.csv"`
	StaffCSV     string `env:"STAFF_CSV" envDefault:"data/staff.csv"`
}

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	var files importConfig
	if err := env.Parse(&files); err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	now := time.Now()
	officials, err := readFile(files.OfficialsCSV, func(f *os.File) ([]domain.Official, error) {
		return importer.ReadOfficials(f, now)
	})
	if err != nil {
		logger.Fatal("read officials csv", zap.String("path", files.OfficialsCSV), zap.Error(err))
	}
	staff, err := readFile(files.StaffCSV, func(f *os.File) ([]domain.StaffMember, error) {
		return importer.ReadStaff(f, now)
	})
	if err != nil {
		logger.Fatal("read staff csv", zap.String("path", files.StaffCSV), zap.Error(err))
	}

	var sink importer.Sink
	switch cfg.StoreBackend {
	case config.BackendAirtable:
		client := airtable.NewClient(cfg.AirtableBaseURL, cfg.AirtableBaseID, cfg.AirtableAPIKey, logger)
		sink = importer.NewAirtableSink(client, logger, cfg.AirtableOfficialsTable, cfg.AirtableStaffTable, importer.DefaultBatchDelay)
	case config.BackendPostgres:
		db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer db.Close()
		pg := importer.NewPostgresSink(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Fatal("ensure schema", zap.Error(err))
		}
		sink = pg
	default:
		logger.Fatal("import needs STORE_BACKEND=airtable or postgres", zap.String("backend", cfg.StoreBackend))
	}

	if _, err := importer.Run(ctx, logger, sink, officials, staff); err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}
}

func readFile[T any](path string, read func(*os.File) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return read(f)
}
