package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"ratemyrep/internal/airtable"
	"ratemyrep/internal/domain"
)

const (
	fieldRating      = "Rating"
	fieldDirection   = "Direction"
	fieldComment     = "Comment"
	fieldLocationLat = "Location_Lat"
	fieldLocationLng = "Location_Lng"
	fieldClientIP    = "Client_IP"
	fieldUserAgent   = "User_Agent"
	fieldTimestamp   = "Timestamp"
	fieldDateCreated = "Date_Created"
)

// AirtableRatingRepository escribe y consulta la tabla Ratings. Solo agrega.
type AirtableRatingRepository struct {
	client *airtable.Client
	table  string
}

func NewAirtableRatingRepository(client *airtable.Client, table string) *AirtableRatingRepository {
	return &AirtableRatingRepository{client: client, table: table}
}

func (r *AirtableRatingRepository) Create(ctx context.Context, event domain.RatingEvent) (domain.RatingEvent, error) {
	fields := map[string]any{
		fieldOfficialID:  event.OfficialID,
		fieldBioguideID:  event.BioguideID,
		fieldRating:      event.Score,
		fieldDirection:   string(event.Direction),
		fieldComment:     event.Comment,
		fieldLocationLat: "",
		fieldLocationLng: "",
		fieldClientIP:    event.ClientIP,
		fieldUserAgent:   event.UserAgent,
		fieldTimestamp:   event.CreatedAt.UTC().Format(time.RFC3339Nano),
		fieldDateCreated: dateString(event.CreatedAt),
	}
	if event.Location != nil {
		fields[fieldLocationLat] = strconv.FormatFloat(event.Location.Lat, 'f', -1, 64)
		fields[fieldLocationLng] = strconv.FormatFloat(event.Location.Lng, 'f', -1, 64)
	}
	rec, err := r.client.Create(ctx, r.table, fields)
	if err != nil {
		return domain.RatingEvent{}, fmt.Errorf("create rating: %w", err)
	}
	event.ID = rec.ID
	return event, nil
}

func (r *AirtableRatingRepository) List(ctx context.Context, filter RatingFilter) ([]domain.RatingEvent, error) {
	since := airtable.Gte(fieldDateCreated, dateString(filter.Since))
	var formula string
	switch {
	case filter.OfficialID != "":
		formula = airtable.And(airtable.Eq(fieldOfficialID, filter.OfficialID), since)
	case filter.BioguideID != "":
		formula = airtable.And(airtable.Eq(fieldBioguideID, filter.BioguideID), since)
	default:
		formula = since
	}
	records, err := r.client.List(ctx, r.table, airtable.ListOptions{
		Filter: formula,
		Sort:   []airtable.SortField{{Field: fieldTimestamp, Direction: "desc"}},
	})
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	events := make([]domain.RatingEvent, 0, len(records))
	for _, rec := range records {
		e, err := decodeRating(rec)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func decodeRating(rec airtable.Record) (domain.RatingEvent, error) {
	score, err := rec.RequiredFloat(fieldRating)
	if err != nil {
		return domain.RatingEvent{}, err
	}
	e := domain.RatingEvent{
		ID:         rec.ID,
		OfficialID: rec.String(fieldOfficialID),
		BioguideID: rec.String(fieldBioguideID),
		Score:      score,
		Direction:  domain.Direction(rec.String(fieldDirection)),
		Comment:    rec.String(fieldComment),
	}
	if e.Direction == "" {
		e.Direction = domain.DirectionForScore(score)
	}
	if ts := rec.String(fieldTimestamp); ts != "" {
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return domain.RatingEvent{}, &airtable.DecodeError{RecordID: rec.ID, Field: fieldTimestamp, Reason: "not an RFC3339 timestamp"}
		}
		e.CreatedAt = parsed
	}
	lat, latErr := strconv.ParseFloat(rec.String(fieldLocationLat), 64)
	lng, lngErr := strconv.ParseFloat(rec.String(fieldLocationLng), 64)
	if latErr == nil && lngErr == nil {
		e.Location = &domain.Coordinates{Lat: lat, Lng: lng}
	}
	return e, nil
}
