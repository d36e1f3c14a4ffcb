package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"ratemyrep/internal/config"
)

// NewPool construye y devuelve un pool de conexiones configurado.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Configuración razonable para ambientes iniciales.
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// Ping verifica conectividad con la base de datos.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}

// Schema son las sentencias idempotentes que crean las tablas del record store.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS officials (
		id TEXT PRIMARY KEY,
		official_id TEXT NOT NULL UNIQUE,
		bioguide_id TEXT UNIQUE,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		middle_name TEXT NOT NULL DEFAULT '',
		full_name TEXT NOT NULL,
		party TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		district TEXT NOT NULL DEFAULT '',
		chamber TEXT NOT NULL DEFAULT '',
		office_level TEXT NOT NULL DEFAULT 'Federal',
		bio TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		photo_url TEXT NOT NULL DEFAULT '',
		key_issues TEXT[] NOT NULL DEFAULT '{}',
		twitter TEXT NOT NULL DEFAULT '',
		instagram TEXT NOT NULL DEFAULT '',
		facebook TEXT NOT NULL DEFAULT '',
		rating_sum DOUBLE PRECISION NOT NULL DEFAULT 0,
		average_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_ratings INTEGER NOT NULL DEFAULT 0,
		last_rating_date DATE,
		last_updated DATE NOT NULL DEFAULT CURRENT_DATE
	)`,
	`CREATE INDEX IF NOT EXISTS officials_state_idx ON officials (state, last_updated DESC)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		id TEXT PRIMARY KEY,
		official_id TEXT NOT NULL DEFAULT '',
		bioguide_id TEXT NOT NULL DEFAULT '',
		rating DOUBLE PRECISION NOT NULL CHECK (rating >= 0 AND rating <= 100),
		direction TEXT NOT NULL DEFAULT 'neutral',
		comment TEXT NOT NULL DEFAULT '',
		location_lat DOUBLE PRECISION,
		location_lng DOUBLE PRECISION,
		client_ip TEXT NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS ratings_official_idx ON ratings (official_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS ratings_bioguide_idx ON ratings (bioguide_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS staff (
		id TEXT PRIMARY KEY,
		staff_id TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		full_name TEXT NOT NULL,
		job_title TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		office_location TEXT NOT NULL DEFAULT '',
		policy_areas TEXT[] NOT NULL DEFAULT '{}',
		website TEXT NOT NULL DEFAULT '',
		official_link TEXT NOT NULL DEFAULT '',
		bioguide_id TEXT NOT NULL DEFAULT '',
		valid_from_date TEXT NOT NULL DEFAULT '',
		valid_to_date TEXT NOT NULL DEFAULT '',
		data_source TEXT NOT NULL DEFAULT '',
		last_updated DATE NOT NULL DEFAULT CURRENT_DATE
	)`,
}

// EnsureSchema crea las tablas si no existen. Es seguro llamarlo en cada arranque.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range Schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
