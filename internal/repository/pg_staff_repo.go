package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"ratemyrep/internal/domain"
)

type PgStaffRepository struct {
	pool *pgxpool.Pool
}

func NewPgStaffRepository(pool *pgxpool.Pool) *PgStaffRepository {
	return &PgStaffRepository{pool: pool}
}

func (r *PgStaffRepository) List(ctx context.Context, filter StaffFilter) ([]domain.StaffMember, error) {
	var (
		officialID = filter.OfficialID
		bioguideID = filter.BioguideID
		office     = filter.Office
	)
	switch {
	case officialID != "":
		bioguideID, office = "", ""
	case bioguideID != "":
		office = ""
	}
	const query = `
		SELECT id, staff_id, first_name, last_name, full_name, job_title, phone, email,
			office_location, policy_areas, website, official_link, bioguide_id,
			valid_from_date, valid_to_date, data_source, to_char(last_updated, 'YYYY-MM-DD')
		FROM staff
		WHERE ($1 = '' OR official_link = $1)
		  AND ($2 = '' OR bioguide_id = $2)
		  AND ($3 = '' OR office_location ILIKE '%' || $3 || '%')
		ORDER BY job_title ASC
		LIMIT $4
	`
	rows, err := r.pool.Query(ctx, query, officialID, bioguideID, office, NormalizeLimit(filter.Limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStaff(rows)
}

func (r *PgStaffRepository) Create(ctx context.Context, member domain.StaffMember) (domain.StaffMember, error) {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	if member.StaffID == "" {
		member.StaffID = NewStaffKey()
	}
	if member.LastUpdated == "" {
		member.LastUpdated = dateString(time.Now())
	}
	policyAreas := member.PolicyAreas
	if policyAreas == nil {
		policyAreas = []string{}
	}
	const query = `
		INSERT INTO staff (
			id, staff_id, first_name, last_name, full_name, job_title, phone, email,
			office_location, policy_areas, website, official_link, bioguide_id,
			valid_from_date, valid_to_date, data_source, last_updated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17::date)
	`
	_, err := r.pool.Exec(ctx, query,
		member.ID,
		member.StaffID,
		member.FirstName,
		member.LastName,
		member.FullName,
		member.JobTitle,
		member.Phone,
		member.Email,
		member.OfficeLocation,
		policyAreas,
		member.Website,
		member.OfficialLink,
		member.BioguideID,
		member.ValidFromDate,
		member.ValidToDate,
		member.DataSource,
		member.LastUpdated,
	)
	if err != nil {
		return domain.StaffMember{}, err
	}
	return member, nil
}

func scanStaff(rows pgxRows) ([]domain.StaffMember, error) {
	staff := []domain.StaffMember{}
	for rows.Next() {
		var m domain.StaffMember
		if err := rows.Scan(
			&m.ID,
			&m.StaffID,
			&m.FirstName,
			&m.LastName,
			&m.FullName,
			&m.JobTitle,
			&m.Phone,
			&m.Email,
			&m.OfficeLocation,
			&m.PolicyAreas,
			&m.Website,
			&m.OfficialLink,
			&m.BioguideID,
			&m.ValidFromDate,
			&m.ValidToDate,
			&m.DataSource,
			&m.LastUpdated,
		); err != nil {
			return nil, err
		}
		staff = append(staff, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return staff, nil
}
