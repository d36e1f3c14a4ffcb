package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ratemyrep/internal/domain"
)

// PgOfficialRepository implementa OfficialRepository usando pgxpool.
// El agregado guarda la suma de puntajes para que el promedio sea exacto.
type PgOfficialRepository struct {
	pool *pgxpool.Pool
}

func NewPgOfficialRepository(pool *pgxpool.Pool) *PgOfficialRepository {
	return &PgOfficialRepository{pool: pool}
}

const officialColumns = `
	id, official_id, COALESCE(bioguide_id, ''), first_name, last_name, middle_name, full_name,
	party, state, district, chamber, office_level, bio, phone, email, website, photo_url,
	key_issues, twitter, instagram, facebook, average_rating, total_ratings,
	to_char(last_updated, 'YYYY-MM-DD')
`

func (r *PgOfficialRepository) List(ctx context.Context, filter OfficialFilter) ([]domain.Official, error) {
	query := `SELECT ` + officialColumns + `
		FROM officials
		WHERE ($1 = '' OR bioguide_id = $1)
		  AND ($2 = '' OR state = $2)
		ORDER BY last_updated DESC, full_name ASC
		LIMIT $3
	`
	// El bioguide id es unico, el filtro por estado se ignora si viene bioguide.
	state := filter.State
	if filter.BioguideID != "" {
		state = ""
	}
	rows, err := r.pool.Query(ctx, query, filter.BioguideID, state, NormalizeLimit(filter.Limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOfficials(rows)
}

func (r *PgOfficialRepository) Create(ctx context.Context, official domain.Official) (domain.Official, error) {
	if official.ID == "" {
		official.ID = uuid.NewString()
	}
	if official.OfficialID == "" {
		official.OfficialID = NewOfficialKey()
	}
	if official.LastUpdated == "" {
		official.LastUpdated = dateString(time.Now())
	}
	const query = `
		INSERT INTO officials (
			id, official_id, bioguide_id, first_name, last_name, middle_name, full_name,
			party, state, district, chamber, office_level, bio, phone, email, website, photo_url,
			key_issues, twitter, instagram, facebook, rating_sum, average_rating, total_ratings, last_updated
		) VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25::date)
	`
	keyIssues := official.KeyIssues
	if keyIssues == nil {
		keyIssues = []string{}
	}
	_, err := r.pool.Exec(ctx, query,
		official.ID,
		official.OfficialID,
		official.BioguideID,
		official.FirstName,
		official.LastName,
		official.MiddleName,
		official.Name,
		string(official.Party),
		official.State,
		official.District,
		official.Chamber,
		string(official.OfficeLevel),
		official.Bio,
		official.Phone,
		official.Email,
		official.Website,
		official.PhotoURL,
		keyIssues,
		official.SocialMedia.Twitter,
		official.SocialMedia.Instagram,
		official.SocialMedia.Facebook,
		official.Rating*float64(official.TotalRatings),
		official.Rating,
		official.TotalRatings,
		official.LastUpdated,
	)
	if err != nil {
		return domain.Official{}, err
	}
	return official, nil
}

func (r *PgOfficialRepository) FindByKey(ctx context.Context, key string) (domain.Official, error) {
	query := `SELECT ` + officialColumns + ` FROM officials WHERE bioguide_id = $1`
	if IsOfficialKey(key) {
		query = `SELECT ` + officialColumns + ` FROM officials WHERE official_id = $1`
	}
	rows, err := r.pool.Query(ctx, query, key)
	if err != nil {
		return domain.Official{}, err
	}
	defer rows.Close()
	officials, err := scanOfficials(rows)
	if err != nil {
		return domain.Official{}, err
	}
	if len(officials) == 0 {
		return domain.Official{}, ErrNotFound
	}
	return officials[0], nil
}

// ApplyRating actualiza el agregado en una sola sentencia. Las expresiones del SET
// ven los valores previos de la fila, asi que no hay lectura intermedia.
func (r *PgOfficialRepository) ApplyRating(ctx context.Context, key string, score float64, at time.Time) (domain.Aggregate, error) {
	column := "bioguide_id"
	if IsOfficialKey(key) {
		column = "official_id"
	}
	query := `
		UPDATE officials SET
			rating_sum = rating_sum + $2,
			total_ratings = total_ratings + 1,
			average_rating = ROUND(((rating_sum + $2) / (total_ratings + 1))::numeric, 1)::float8,
			last_rating_date = $3::date
		WHERE ` + column + ` = $1
		RETURNING average_rating, total_ratings, to_char(last_rating_date, 'YYYY-MM-DD')
	`
	var agg domain.Aggregate
	err := r.pool.QueryRow(ctx, query, key, score, dateString(at)).Scan(
		&agg.Average,
		&agg.Total,
		&agg.LastRatingDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Aggregate{}, ErrNotFound
	}
	if err != nil {
		return domain.Aggregate{}, err
	}
	return agg, nil
}

func scanOfficials(rows pgxRows) ([]domain.Official, error) {
	officials := []domain.Official{}
	for rows.Next() {
		var (
			o           domain.Official
			party       string
			officeLevel string
		)
		if err := rows.Scan(
			&o.ID,
			&o.OfficialID,
			&o.BioguideID,
			&o.FirstName,
			&o.LastName,
			&o.MiddleName,
			&o.Name,
			&party,
			&o.State,
			&o.District,
			&o.Chamber,
			&officeLevel,
			&o.Bio,
			&o.Phone,
			&o.Email,
			&o.Website,
			&o.PhotoURL,
			&o.KeyIssues,
			&o.SocialMedia.Twitter,
			&o.SocialMedia.Instagram,
			&o.SocialMedia.Facebook,
			&o.Rating,
			&o.TotalRatings,
			&o.LastUpdated,
		); err != nil {
			return nil, err
		}
		o.Party = domain.ParseParty(party)
		o.OfficeLevel = domain.ParseOfficeLevel(officeLevel)
		officials = append(officials, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return officials, nil
}

// pgxRows es la parte de pgx.Rows que usan los scanners; permite testearlos sin base.
type pgxRows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
	Close()
}
