package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ratemyrep/internal/airtable"
	"ratemyrep/internal/config"
	"ratemyrep/internal/db"
	apihttp "ratemyrep/internal/http"
	"ratemyrep/internal/location"
	"ratemyrep/internal/repository"
	"ratemyrep/internal/service"
	"ratemyrep/internal/sharecard"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type stores struct {
	officials repository.OfficialRepository
	ratings   repository.RatingRepository
	staff     repository.StaffRepository
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	st, closeStores, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open record store", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer closeStores()

	var (
		limiter       = service.NewMemoryRatingLimiter(cfg.RateLimitWindow(), cfg.RateLimitMax)
		locationStore = service.NewMemoryLocationStore()
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-process limiter and sessions", zap.Error(err))
		} else {
			limiter = service.NewRedisRatingLimiter(redisClient, cfg.RateLimitWindow(), cfg.RateLimitMax)
			locationStore = service.NewRedisLocationStore(redisClient)
		}
		cancel()
	}

	var tokens *service.AdminTokenService
	if cfg.JWTSecret != "" {
		tokens = service.NewAdminTokenService(cfg.JWTSecret, cfg.AccessTTL())
	}
	if !cfg.AdminEnabled() {
		logger.Warn("admin login not configured, write endpoints are disabled")
	}

	resolver := location.NewResolver()
	handlers := apihttp.NewHandlers(logger, apihttp.Services{
		Locations: service.NewLocationService(logger, resolver, locationStore, cfg.SessionTTL()),
		Officials: service.NewOfficialsService(logger, st.officials, resolver),
		Ratings:   service.NewRatingService(logger, st.ratings, st.officials, limiter),
		Staff:     service.NewStaffService(logger, st.staff),
		Admin:     service.NewAdminService(logger, cfg.AdminEmail, cfg.AdminPasswordHash, tokens),
		Tokens:    tokens,
		Cards:     sharecard.NewGenerator(rand.NewSource(time.Now().UnixNano()), cfg.SiteURL),
	})
	router := apihttp.NewRouter(logger, handlers)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.String("backend", cfg.StoreBackend))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger(level string) *zap.Logger {
	zcfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		zcfg.Level = lvl
	}
	logger, err := zcfg.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}

// openStores arma los repositorios del backend configurado.
func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (stores, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendAirtable:
		client := airtable.NewClient(cfg.AirtableBaseURL, cfg.AirtableBaseID, cfg.AirtableAPIKey, logger)
		return stores{
			officials: repository.NewAirtableOfficialRepository(client, cfg.AirtableOfficialsTable),
			ratings:   repository.NewAirtableRatingRepository(client, cfg.AirtableRatingsTable),
			staff:     repository.NewAirtableStaffRepository(client, cfg.AirtableStaffTable),
		}, func() {}, nil

	case config.BackendPostgres:
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return stores{}, nil, err
		}
		if err := bootstrapPostgres(ctx, pool); err != nil {
			pool.Close()
			return stores{}, nil, err
		}
		return stores{
			officials: repository.NewPgOfficialRepository(pool),
			ratings:   repository.NewPgRatingRepository(pool),
			staff:     repository.NewPgStaffRepository(pool),
		}, pool.Close, nil

	default:
		logger.Info("using in-memory store with seed data")
		return stores{
			officials: repository.NewMemoryOfficialRepository(repository.SeedOfficials()),
			ratings:   repository.NewMemoryRatingRepository(),
			staff:     repository.NewMemoryStaffRepository(repository.SeedStaff()),
		}, func() {}, nil
	}
}

func bootstrapPostgres(ctx context.Context, pool *pgxpool.Pool) error {
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.Ping(ctxPing, pool); err != nil {
		return err
	}
	return db.EnsureSchema(ctx, pool)
}
