package importer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"ratemyrep/internal/db"
	"ratemyrep/internal/domain"
)

// PostgresSink hace upsert por clave publica; reimportar el mismo CSV no duplica filas.
// El agregado de calificaciones de un funcionario existente no se toca.
type PostgresSink struct {
	db *sqlx.DB
}

func NewPostgresSink(db *sqlx.DB) *PostgresSink {
	return &PostgresSink{db: db}
}

type officialRow struct {
	ID          string         `db:"id"`
	OfficialID  string         `db:"official_id"`
	BioguideID  string         `db:"bioguide_id"`
	FirstName   string         `db:"first_name"`
	LastName    string         `db:"last_name"`
	MiddleName  string         `db:"middle_name"`
	FullName    string         `db:"full_name"`
	Party       string         `db:"party"`
	State       string         `db:"state"`
	District    string         `db:"district"`
	Chamber     string         `db:"chamber"`
	OfficeLevel string         `db:"office_level"`
	Phone       string         `db:"phone"`
	Email       string         `db:"email"`
	Website     string         `db:"website"`
	PhotoURL    string         `db:"photo_url"`
	KeyIssues   pq.StringArray `db:"key_issues"`
	LastUpdated string         `db:"last_updated"`
}

type staffRow struct {
	ID             string         `db:"id"`
	StaffID        string         `db:"staff_id"`
	FirstName      string         `db:"first_name"`
	LastName       string         `db:"last_name"`
	FullName       string         `db:"full_name"`
	JobTitle       string         `db:"job_title"`
	Phone          string         `db:"phone"`
	Email          string         `db:"email"`
	OfficeLocation string         `db:"office_location"`
	PolicyAreas    pq.StringArray `db:"policy_areas"`
	Website        string         `db:"website"`
	OfficialLink   string         `db:"official_link"`
	BioguideID     string         `db:"bioguide_id"`
	ValidFromDate  string         `db:"valid_from_date"`
	ValidToDate    string         `db:"valid_to_date"`
	DataSource     string         `db:"data_source"`
	LastUpdated    string         `db:"last_updated"`
}

const upsertOfficialSQL = `
	INSERT INTO officials (
		id, official_id, bioguide_id, first_name, last_name, middle_name, full_name, party, state,
		district, chamber, office_level, phone, email, website, photo_url, key_issues, last_updated
	) VALUES (
		:id, :official_id, NULLIF(:bioguide_id, ''), :first_name, :last_name, :middle_name, :full_name, :party, :state,
		:district, :chamber, :office_level, :phone, :email, :website, :photo_url, :key_issues, CAST(:last_updated AS date)
	)
	ON CONFLICT (official_id) DO UPDATE SET
		bioguide_id = EXCLUDED.bioguide_id,
		first_name = EXCLUDED.first_name,
		last_name = EXCLUDED.last_name,
		middle_name = EXCLUDED.middle_name,
		full_name = EXCLUDED.full_name,
		party = EXCLUDED.party,
		state = EXCLUDED.state,
		district = EXCLUDED.district,
		chamber = EXCLUDED.chamber,
		office_level = EXCLUDED.office_level,
		phone = EXCLUDED.phone,
		email = EXCLUDED.email,
		website = EXCLUDED.website,
		photo_url = EXCLUDED.photo_url,
		key_issues = EXCLUDED.key_issues,
		last_updated = EXCLUDED.last_updated`

const upsertStaffSQL = `
	INSERT INTO staff (
		id, staff_id, first_name, last_name, full_name, job_title, phone, email, office_location,
		policy_areas, website, official_link, bioguide_id, valid_from_date, valid_to_date, data_source, last_updated
	) VALUES (
		:id, :staff_id, :first_name, :last_name, :full_name, :job_title, :phone, :email, :office_location,
		:policy_areas, :website, :official_link, :bioguide_id, :valid_from_date, :valid_to_date, :data_source, CAST(:last_updated AS date)
	)
	ON CONFLICT (staff_id) DO UPDATE SET
		first_name = EXCLUDED.first_name,
		last_name = EXCLUDED.last_name,
		full_name = EXCLUDED.full_name,
		job_title = EXCLUDED.job_title,
		phone = EXCLUDED.phone,
		email = EXCLUDED.email,
		office_location = EXCLUDED.office_location,
		policy_areas = EXCLUDED.policy_areas,
		website = EXCLUDED.website,
		official_link = EXCLUDED.official_link,
		bioguide_id = EXCLUDED.bioguide_id,
		valid_from_date = EXCLUDED.valid_from_date,
		valid_to_date = EXCLUDED.valid_to_date,
		data_source = EXCLUDED.data_source,
		last_updated = EXCLUDED.last_updated`

func toOfficialRow(o domain.Official) officialRow {
	return officialRow{
		ID:          uuid.NewString(),
		OfficialID:  o.OfficialID,
		BioguideID:  o.BioguideID,
		FirstName:   o.FirstName,
		LastName:    o.LastName,
		MiddleName:  o.MiddleName,
		FullName:    o.Name,
		Party:       string(o.Party),
		State:       o.State,
		District:    o.District,
		Chamber:     o.Chamber,
		OfficeLevel: string(o.OfficeLevel),
		Phone:       o.Phone,
		Email:       o.Email,
		Website:     o.Website,
		PhotoURL:    o.PhotoURL,
		KeyIssues:   pq.StringArray(nonNil(o.KeyIssues)),
		LastUpdated: o.LastUpdated,
	}
}

func toStaffRow(m domain.StaffMember) staffRow {
	return staffRow{
		ID:             uuid.NewString(),
		StaffID:        m.StaffID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		FullName:       m.FullName,
		JobTitle:       m.JobTitle,
		Phone:          m.Phone,
		Email:          m.Email,
		OfficeLocation: m.OfficeLocation,
		PolicyAreas:    pq.StringArray(nonNil(m.PolicyAreas)),
		Website:        m.Website,
		OfficialLink:   m.OfficialLink,
		BioguideID:     m.BioguideID,
		ValidFromDate:  m.ValidFromDate,
		ValidToDate:    m.ValidToDate,
		DataSource:     m.DataSource,
		LastUpdated:    m.LastUpdated,
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func (s *PostgresSink) WriteOfficials(ctx context.Context, officials []domain.Official) (int, error) {
	rows := make([]any, 0, len(officials))
	for _, o := range officials {
		rows = append(rows, toOfficialRow(o))
	}
	return s.upsertAll(ctx, upsertOfficialSQL, rows)
}

func (s *PostgresSink) WriteStaff(ctx context.Context, staff []domain.StaffMember) (int, error) {
	rows := make([]any, 0, len(staff))
	for _, m := range staff {
		rows = append(rows, toStaffRow(m))
	}
	return s.upsertAll(ctx, upsertStaffSQL, rows)
}

// upsertAll escribe todo en una transaccion: o entra el archivo completo o nada.
func (s *PostgresSink) upsertAll(ctx context.Context, query string, rows []any) (int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	for i, row := range rows {
		if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// EnsureSchema aplica el mismo schema idempotente que usa la API.
func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	for _, stmt := range db.Schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (s *PostgresSink) Count(ctx context.Context) (Counts, error) {
	var c Counts
	if err := s.db.GetContext(ctx, &c.Officials, "SELECT COUNT(*) FROM officials"); err != nil {
		return Counts{}, err
	}
	if err := s.db.GetContext(ctx, &c.Staff, "SELECT COUNT(*) FROM staff"); err != nil {
		return Counts{}, err
	}
	return c, nil
}
