package repository

import (
	"context"
	"fmt"
	"time"

	"ratemyrep/internal/airtable"
	"ratemyrep/internal/domain"
)

// Campos de la tabla Officials.
const (
	fieldOfficialID     = "Official_ID"
	fieldBioguideID     = "Bioguide_ID"
	fieldFirstName      = "First_Name"
	fieldLastName       = "Last_Name"
	fieldMiddleName     = "Middle_Name"
	fieldFullName       = "Full_Name"
	fieldParty          = "Party"
	fieldState          = "State"
	fieldDistrict       = "District"
	fieldChamber        = "Chamber"
	fieldOfficeLevel    = "Office_Level"
	fieldPrimaryPhone   = "Primary_Phone"
	fieldPrimaryEmail   = "Primary_Email"
	fieldWebsite        = "Official_Website"
	fieldPhotoURL       = "Official_Photo_URL"
	fieldKeyIssues      = "Key_Issues"
	fieldTwitter        = "Twitter_Handle"
	fieldInstagram      = "Instagram_Handle"
	fieldFacebook       = "Facebook_Handle"
	fieldAverageRating  = "Average_Rating"
	fieldTotalRatings   = "Total_Ratings"
	fieldLastRatingDate = "Last_Rating_Date"
	fieldLastUpdated    = "Last_Updated"
)

// AirtableOfficialRepository lee y escribe la tabla Officials.
//
// ApplyRating es leer-calcular-escribir sobre la API REST, que no ofrece
// incrementos atomicos: dos calificaciones concurrentes al mismo funcionario
// pueden pisarse y perder una en el agregado. Los eventos en Ratings no se pierden.
type AirtableOfficialRepository struct {
	client *airtable.Client
	table  string
}

func NewAirtableOfficialRepository(client *airtable.Client, table string) *AirtableOfficialRepository {
	return &AirtableOfficialRepository{client: client, table: table}
}

func (r *AirtableOfficialRepository) List(ctx context.Context, filter OfficialFilter) ([]domain.Official, error) {
	formula := ""
	switch {
	case filter.BioguideID != "":
		formula = airtable.Eq(fieldBioguideID, filter.BioguideID)
	case filter.State != "":
		formula = airtable.Eq(fieldState, filter.State)
	}
	records, err := r.client.List(ctx, r.table, airtable.ListOptions{
		Filter:     formula,
		MaxRecords: NormalizeLimit(filter.Limit),
		Sort:       []airtable.SortField{{Field: fieldLastUpdated, Direction: "desc"}},
	})
	if err != nil {
		return nil, fmt.Errorf("list officials: %w", err)
	}
	officials := make([]domain.Official, 0, len(records))
	for _, rec := range records {
		o, err := decodeOfficial(rec)
		if err != nil {
			return nil, err
		}
		officials = append(officials, o)
	}
	return officials, nil
}

func (r *AirtableOfficialRepository) Create(ctx context.Context, official domain.Official) (domain.Official, error) {
	if official.OfficialID == "" {
		official.OfficialID = NewOfficialKey()
	}
	if official.LastUpdated == "" {
		official.LastUpdated = dateString(time.Now())
	}
	rec, err := r.client.Create(ctx, r.table, encodeOfficial(official))
	if err != nil {
		return domain.Official{}, fmt.Errorf("create official: %w", err)
	}
	official.ID = rec.ID
	return official, nil
}

func (r *AirtableOfficialRepository) FindByKey(ctx context.Context, key string) (domain.Official, error) {
	rec, err := r.findRecord(ctx, key)
	if err != nil {
		return domain.Official{}, err
	}
	return decodeOfficial(rec)
}

func (r *AirtableOfficialRepository) ApplyRating(ctx context.Context, key string, score float64, at time.Time) (domain.Aggregate, error) {
	rec, err := r.findRecord(ctx, key)
	if err != nil {
		return domain.Aggregate{}, err
	}
	current := rec.Float(fieldAverageRating)
	count := rec.Int(fieldTotalRatings)

	agg := domain.Aggregate{
		Average:        Round1((current*float64(count) + score) / float64(count+1)),
		Total:          count + 1,
		LastRatingDate: dateString(at),
	}
	_, err = r.client.Update(ctx, r.table, rec.ID, map[string]any{
		fieldAverageRating:  agg.Average,
		fieldTotalRatings:   agg.Total,
		fieldLastRatingDate: agg.LastRatingDate,
	})
	if err != nil {
		return domain.Aggregate{}, fmt.Errorf("update official aggregate: %w", err)
	}
	return agg, nil
}

func (r *AirtableOfficialRepository) findRecord(ctx context.Context, key string) (airtable.Record, error) {
	field := fieldBioguideID
	if IsOfficialKey(key) {
		field = fieldOfficialID
	}
	records, err := r.client.List(ctx, r.table, airtable.ListOptions{
		Filter:     airtable.Eq(field, key),
		MaxRecords: 1,
	})
	if err != nil {
		return airtable.Record{}, fmt.Errorf("find official: %w", err)
	}
	if len(records) == 0 {
		return airtable.Record{}, ErrNotFound
	}
	return records[0], nil
}

func decodeOfficial(rec airtable.Record) (domain.Official, error) {
	name, err := rec.RequiredString(fieldFullName)
	if err != nil {
		return domain.Official{}, err
	}
	return domain.Official{
		ID:          rec.ID,
		OfficialID:  rec.String(fieldOfficialID),
		BioguideID:  rec.String(fieldBioguideID),
		Name:        name,
		FirstName:   rec.String(fieldFirstName),
		LastName:    rec.String(fieldLastName),
		MiddleName:  rec.String(fieldMiddleName),
		Party:       domain.ParseParty(rec.String(fieldParty)),
		State:       rec.String(fieldState),
		District:    rec.String(fieldDistrict),
		Chamber:     rec.String(fieldChamber),
		OfficeLevel: domain.ParseOfficeLevel(rec.String(fieldOfficeLevel)),
		Phone:       rec.String(fieldPrimaryPhone),
		Email:       rec.String(fieldPrimaryEmail),
		Website:     rec.String(fieldWebsite),
		PhotoURL:    rec.String(fieldPhotoURL),
		KeyIssues:   rec.Strings(fieldKeyIssues),
		SocialMedia: domain.SocialMedia{
			Twitter:   rec.String(fieldTwitter),
			Instagram: rec.String(fieldInstagram),
			Facebook:  rec.String(fieldFacebook),
		},
		Rating:       rec.Float(fieldAverageRating),
		TotalRatings: rec.Int(fieldTotalRatings),
		LastUpdated:  rec.String(fieldLastUpdated),
	}, nil
}

func encodeOfficial(o domain.Official) map[string]any {
	fields := map[string]any{
		fieldOfficialID:  o.OfficialID,
		fieldFullName:    o.Name,
		fieldFirstName:   o.FirstName,
		fieldLastName:    o.LastName,
		fieldParty:       string(o.Party),
		fieldState:       o.State,
		fieldDistrict:    o.District,
		fieldChamber:     o.Chamber,
		fieldOfficeLevel: string(o.OfficeLevel),
		fieldLastUpdated: o.LastUpdated,
	}
	optional := map[string]string{
		fieldBioguideID:   o.BioguideID,
		fieldMiddleName:   o.MiddleName,
		fieldPrimaryPhone: o.Phone,
		fieldPrimaryEmail: o.Email,
		fieldWebsite:      o.Website,
		fieldPhotoURL:     o.PhotoURL,
		fieldTwitter:      o.SocialMedia.Twitter,
		fieldInstagram:    o.SocialMedia.Instagram,
		fieldFacebook:     o.SocialMedia.Facebook,
	}
	for k, v := range optional {
		if v != "" {
			fields[k] = v
		}
	}
	if len(o.KeyIssues) > 0 {
		fields[fieldKeyIssues] = joinList(o.KeyIssues)
	}
	if o.TotalRatings > 0 {
		fields[fieldAverageRating] = o.Rating
		fields[fieldTotalRatings] = o.TotalRatings
	}
	return fields
}

// EncodeOfficialFields expone el mapeo de columnas para el importador por lotes.
func EncodeOfficialFields(o domain.Official) map[string]any {
	return encodeOfficial(o)
}
