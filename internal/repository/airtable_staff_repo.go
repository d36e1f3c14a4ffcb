package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ratemyrep/internal/airtable"
	"ratemyrep/internal/domain"
)

const (
	fieldStaffID        = "Staff_ID"
	fieldJobTitle       = "Job_Title"
	fieldPhone          = "Phone"
	fieldEmail          = "Email"
	fieldOfficeLocation = "Office_Location"
	fieldPolicyAreas    = "Policy_Areas"
	fieldStaffWebsite   = "Website"
	fieldOfficialLink   = "Official_Link"
	fieldValidFromDate  = "Valid_From_Date"
	fieldValidToDate    = "Valid_To_Date"
	fieldDataSource     = "Data_Source"
)

type AirtableStaffRepository struct {
	client *airtable.Client
	table  string
}

func NewAirtableStaffRepository(client *airtable.Client, table string) *AirtableStaffRepository {
	return &AirtableStaffRepository{client: client, table: table}
}

func (r *AirtableStaffRepository) List(ctx context.Context, filter StaffFilter) ([]domain.StaffMember, error) {
	var formula string
	switch {
	case filter.OfficialID != "":
		formula = airtable.Eq(fieldOfficialLink, filter.OfficialID)
	case filter.BioguideID != "":
		formula = airtable.Eq(fieldBioguideID, filter.BioguideID)
	case filter.Office != "":
		formula = airtable.Search(filter.Office, fieldOfficeLocation)
	}
	records, err := r.client.List(ctx, r.table, airtable.ListOptions{
		Filter:     formula,
		MaxRecords: NormalizeLimit(filter.Limit),
		Sort:       []airtable.SortField{{Field: fieldJobTitle, Direction: "asc"}},
	})
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	staff := make([]domain.StaffMember, 0, len(records))
	for _, rec := range records {
		m, err := decodeStaff(rec)
		if err != nil {
			return nil, err
		}
		staff = append(staff, m)
	}
	return staff, nil
}

func (r *AirtableStaffRepository) Create(ctx context.Context, member domain.StaffMember) (domain.StaffMember, error) {
	if member.StaffID == "" {
		member.StaffID = NewStaffKey()
	}
	if member.LastUpdated == "" {
		member.LastUpdated = dateString(time.Now())
	}
	rec, err := r.client.Create(ctx, r.table, encodeStaff(member))
	if err != nil {
		return domain.StaffMember{}, fmt.Errorf("create staff: %w", err)
	}
	member.ID = rec.ID
	return member, nil
}

func decodeStaff(rec airtable.Record) (domain.StaffMember, error) {
	name, err := rec.RequiredString(fieldFullName)
	if err != nil {
		return domain.StaffMember{}, err
	}
	return domain.StaffMember{
		ID:             rec.ID,
		StaffID:        rec.String(fieldStaffID),
		FirstName:      rec.String(fieldFirstName),
		LastName:       rec.String(fieldLastName),
		FullName:       name,
		JobTitle:       rec.String(fieldJobTitle),
		Phone:          rec.String(fieldPhone),
		Email:          rec.String(fieldEmail),
		OfficeLocation: rec.String(fieldOfficeLocation),
		PolicyAreas:    rec.Strings(fieldPolicyAreas),
		Website:        rec.String(fieldStaffWebsite),
		OfficialLink:   rec.String(fieldOfficialLink),
		BioguideID:     rec.String(fieldBioguideID),
		ValidFromDate:  rec.String(fieldValidFromDate),
		ValidToDate:    rec.String(fieldValidToDate),
		DataSource:     rec.String(fieldDataSource),
		LastUpdated:    rec.String(fieldLastUpdated),
	}, nil
}

func encodeStaff(m domain.StaffMember) map[string]any {
	dataSource := m.DataSource
	if dataSource == "" {
		dataSource = "Manual Entry"
	}
	return map[string]any{
		fieldStaffID:        m.StaffID,
		fieldFirstName:      m.FirstName,
		fieldLastName:       m.LastName,
		fieldFullName:       m.FullName,
		fieldJobTitle:       m.JobTitle,
		fieldPhone:          m.Phone,
		fieldEmail:          m.Email,
		fieldOfficeLocation: m.OfficeLocation,
		fieldPolicyAreas:    joinList(m.PolicyAreas),
		fieldOfficialLink:   m.OfficialLink,
		fieldBioguideID:     m.BioguideID,
		fieldDataSource:     dataSource,
		fieldLastUpdated:    m.LastUpdated,
	}
}

// EncodeStaffFields expone el mapeo de columnas para el importador por lotes.
func EncodeStaffFields(m domain.StaffMember) map[string]any {
	return encodeStaff(m)
}

func joinList(items []string) string {
	return strings.Join(items, ", ")
}
