package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"ratemyrep/internal/domain"
)

type PgRatingRepository struct {
	pool *pgxpool.Pool
}

func NewPgRatingRepository(pool *pgxpool.Pool) *PgRatingRepository {
	return &PgRatingRepository{pool: pool}
}

func (r *PgRatingRepository) Create(ctx context.Context, event domain.RatingEvent) (domain.RatingEvent, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO ratings (
			id, official_id, bioguide_id, rating, direction, comment,
			location_lat, location_lng, client_ip, user_agent, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	var lat, lng interface{}
	if event.Location != nil {
		lat = event.Location.Lat
		lng = event.Location.Lng
	}
	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.OfficialID,
		event.BioguideID,
		event.Score,
		string(event.Direction),
		event.Comment,
		lat,
		lng,
		event.ClientIP,
		event.UserAgent,
		event.CreatedAt,
	)
	if err != nil {
		return domain.RatingEvent{}, err
	}
	return event, nil
}

func (r *PgRatingRepository) List(ctx context.Context, filter RatingFilter) ([]domain.RatingEvent, error) {
	officialID := filter.OfficialID
	bioguideID := filter.BioguideID
	if officialID != "" {
		bioguideID = ""
	}
	const query = `
		SELECT id, official_id, bioguide_id, rating, direction, comment,
			location_lat, location_lng, created_at
		FROM ratings
		WHERE ($1 = '' OR official_id = $1)
		  AND ($2 = '' OR bioguide_id = $2)
		  AND created_at >= $3
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, officialID, bioguideID, filter.Since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRatings(rows)
}

func scanRatings(rows pgxRows) ([]domain.RatingEvent, error) {
	events := []domain.RatingEvent{}
	for rows.Next() {
		var (
			e         domain.RatingEvent
			direction string
			lat, lng  sql.NullFloat64
		)
		if err := rows.Scan(
			&e.ID,
			&e.OfficialID,
			&e.BioguideID,
			&e.Score,
			&direction,
			&e.Comment,
			&lat,
			&lng,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.Direction = domain.Direction(direction)
		if lat.Valid && lng.Valid {
			e.Location = &domain.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
