package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"ratemyrep/internal/domain"
	"ratemyrep/internal/repository"
)

type countingRatingRepo struct {
	created []domain.RatingEvent
	events  []domain.RatingEvent
	filter  repository.RatingFilter
	err     error
}

func (r *countingRatingRepo) Create(_ context.Context, e domain.RatingEvent) (domain.RatingEvent, error) {
	if r.err != nil {
		return domain.RatingEvent{}, r.err
	}
	e.ID = "rec1"
	r.created = append(r.created, e)
	return e, nil
}

func (r *countingRatingRepo) List(_ context.Context, f repository.RatingFilter) ([]domain.RatingEvent, error) {
	r.filter = f
	return r.events, r.err
}

type failingOfficialRepo struct {
	repository.OfficialRepository
	applyErr error
	listErr  error
	applied  []string
}

func (r *failingOfficialRepo) ApplyRating(_ context.Context, key string, _ float64, _ time.Time) (domain.Aggregate, error) {
	r.applied = append(r.applied, key)
	return domain.Aggregate{}, r.applyErr
}

func (r *failingOfficialRepo) List(_ context.Context, _ repository.OfficialFilter) ([]domain.Official, error) {
	return nil, r.listErr
}

type stubLimiter struct {
	allow bool
	keys  []string
}

func (l *stubLimiter) Allow(key string) bool {
	l.keys = append(l.keys, key)
	return l.allow
}

func score(v float64) *float64 { return &v }

func TestRatingService_SubmitValidation(t *testing.T) {
	cases := []struct {
		name  string
		in    SubmitRatingInput
		field string
	}{
		{"missing target", SubmitRatingInput{Rating: score(50)}, "officialId"},
		{"missing rating", SubmitRatingInput{OfficialID: "OFF_0001"}, "rating"},
		{"rating below zero", SubmitRatingInput{OfficialID: "OFF_0001", Rating: score(-1)}, "rating"},
		{"rating above max", SubmitRatingInput{OfficialID: "OFF_0001", Rating: score(100.5)}, "rating"},
		{"bad direction", SubmitRatingInput{OfficialID: "OFF_0001", Rating: score(50), Direction: "meh"}, "direction"},
		{"long comment", SubmitRatingInput{OfficialID: "OFF_0001", Rating: score(50), Comment: strings.Repeat("x", 1001)}, "comment"},
		{"long multibyte comment", SubmitRatingInput{OfficialID: "OFF_0001", Rating: score(50), Comment: strings.Repeat("é", 1001)}, "comment"},
		{"bad location", SubmitRatingInput{OfficialID: "OFF_0001", Rating: score(50), Location: &domain.Coordinates{Lat: 91}}, "location"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ratings := &countingRatingRepo{}
			limiter := &stubLimiter{allow: true}
			svc := NewRatingService(zap.NewNop(), ratings, repository.NewMemoryOfficialRepository(nil), limiter)

			_, err := svc.Submit(context.Background(), tc.in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("expected field %s, got %s", tc.field, verr.Field)
			}
			if len(ratings.created) != 0 {
				t.Fatalf("invalid input must not be persisted")
			}
			if len(limiter.keys) != 0 {
				t.Fatalf("invalid input must not consume rate limit")
			}
		})
	}
}

func TestRatingService_SubmitCountsCommentCharacters(t *testing.T) {
	ratings := &countingRatingRepo{}
	svc := NewRatingService(zap.NewNop(), ratings, repository.NewMemoryOfficialRepository(nil), &stubLimiter{allow: true})

	comment := strings.Repeat("é", 1000)
	event, err := svc.Submit(context.Background(), SubmitRatingInput{OfficialID: "OFF_0001", Rating: score(50), Comment: comment})
	if err != nil {
		t.Fatalf("1000 characters over %d bytes must be accepted, got %v", len(comment), err)
	}
	if event.Comment != comment || len(ratings.created) != 1 {
		t.Fatalf("expected comment persisted unchanged")
	}
}

func TestRatingService_SubmitUpdatesAggregate(t *testing.T) {
	officials := repository.NewMemoryOfficialRepository([]domain.Official{{
		OfficialID:   "OFF_0900",
		BioguideID:   "N000900",
		Name:         "Nora Newcomer",
		State:        "OH",
		Rating:       80,
		TotalRatings: 1,
	}})
	ratings := repository.NewMemoryRatingRepository()
	svc := NewRatingService(zap.NewNop(), ratings, officials, &stubLimiter{allow: true})
	fixed := time.Date(2025, 7, 9, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	event, err := svc.Submit(context.Background(), SubmitRatingInput{BioguideID: "N000900", Rating: score(20)})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if event.Direction != domain.DirectionDislike {
		t.Fatalf("expected derived dislike, got %s", event.Direction)
	}
	if !event.CreatedAt.Equal(fixed) {
		t.Fatalf("expected timestamp from clock, got %s", event.CreatedAt)
	}

	after, _ := officials.FindByKey(context.Background(), "N000900")
	if after.TotalRatings != 2 {
		t.Fatalf("expected total 2, got %d", after.TotalRatings)
	}
	// (80*1 + 20) / 2
	if after.Rating != 50 {
		t.Fatalf("expected average 50.0, got %.1f", after.Rating)
	}
}

func TestRatingService_SubmitKeepsRoundedAverageOnLargeCount(t *testing.T) {
	officials := repository.NewMemoryOfficialRepository(repository.SeedOfficials())
	svc := NewRatingService(zap.NewNop(), repository.NewMemoryRatingRepository(), officials, &stubLimiter{allow: true})

	before, err := officials.FindByKey(context.Background(), "A000370")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if _, err := svc.Submit(context.Background(), SubmitRatingInput{BioguideID: "A000370", Rating: score(20)}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	after, _ := officials.FindByKey(context.Background(), "A000370")
	want := repository.Round1((before.Rating*float64(before.TotalRatings) + 20) / float64(before.TotalRatings+1))
	if after.Rating != want || after.TotalRatings != before.TotalRatings+1 {
		t.Fatalf("expected %.1f over %d, got %.1f over %d", want, before.TotalRatings+1, after.Rating, after.TotalRatings)
	}
}

func TestRatingService_SubmitRateLimited(t *testing.T) {
	ratings := &countingRatingRepo{}
	limiter := &stubLimiter{allow: false}
	svc := NewRatingService(zap.NewNop(), ratings, repository.NewMemoryOfficialRepository(nil), limiter)

	_, err := svc.Submit(context.Background(), SubmitRatingInput{OfficialID: "OFF_0001", Rating: score(80)})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if len(ratings.created) != 0 {
		t.Fatalf("limited request must not be persisted")
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "unknown" {
		t.Fatalf("expected fallback limiter key, got %v", limiter.keys)
	}
}

func TestRatingService_AggregateFailureIsSwallowed(t *testing.T) {
	ratings := &countingRatingRepo{}
	officials := &failingOfficialRepo{applyErr: errors.New("airtable 500")}
	svc := NewRatingService(zap.NewNop(), ratings, officials, nil)

	event, err := svc.Submit(context.Background(), SubmitRatingInput{
		OfficialID: "OFF_0001",
		BioguideID: "A000370",
		Rating:     score(70),
		Direction:  "Like",
		ClientIP:   "203.0.113.7",
	})
	if err != nil {
		t.Fatalf("expected success despite aggregate failure, got %v", err)
	}
	if event.ID != "rec1" || event.Direction != domain.DirectionLike {
		t.Fatalf("unexpected event %+v", event)
	}
	if len(officials.applied) != 1 || officials.applied[0] != "OFF_0001" {
		t.Fatalf("expected aggregate keyed by official id, got %v", officials.applied)
	}

	officials.applyErr = repository.ErrNotFound
	if _, err := svc.Submit(context.Background(), SubmitRatingInput{BioguideID: "Z999999", Rating: score(70)}); err != nil {
		t.Fatalf("expected success for unknown official, got %v", err)
	}
}

func TestRatingService_SubmitStoreError(t *testing.T) {
	ratings := &countingRatingRepo{err: errors.New("boom")}
	svc := NewRatingService(zap.NewNop(), ratings, repository.NewMemoryOfficialRepository(nil), nil)
	if _, err := svc.Submit(context.Background(), SubmitRatingInput{OfficialID: "OFF_0001", Rating: score(70)}); err == nil {
		t.Fatalf("expected store error")
	}
}

func TestRatingService_StatsWindow(t *testing.T) {
	events := make([]domain.RatingEvent, 120)
	for i := range events {
		events[i] = domain.RatingEvent{ID: "e", Score: 80}
	}
	ratings := &countingRatingRepo{events: events}
	svc := NewRatingService(zap.NewNop(), ratings, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, 7, 9, 15, 30, 0, 0, time.UTC) }

	res, err := svc.Stats(context.Background(), StatsQuery{OfficialID: " OFF_0001 ", Days: 1000})
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if res.Days != MaxStatsDays || res.Period() != "365 days" {
		t.Fatalf("expected capped window, got %d (%s)", res.Days, res.Period())
	}
	if len(res.Ratings) != MaxReturnedEvents || res.Count != 120 {
		t.Fatalf("expected 100 returned of 120, got %d of %d", len(res.Ratings), res.Count)
	}
	if res.Stats.TotalRatings != 120 {
		t.Fatalf("expected stats over the whole window, got %d", res.Stats.TotalRatings)
	}
	if ratings.filter.OfficialID != "OFF_0001" {
		t.Fatalf("expected trimmed filter, got %q", ratings.filter.OfficialID)
	}
	wantSince := time.Date(2024, 7, 9, 0, 0, 0, 0, time.UTC)
	if !ratings.filter.Since.Equal(wantSince) {
		t.Fatalf("expected since %s, got %s", wantSince, ratings.filter.Since)
	}

	res, _ = svc.Stats(context.Background(), StatsQuery{BioguideID: "A000370"})
	if res.Days != DefaultStatsDays {
		t.Fatalf("expected default window, got %d", res.Days)
	}
}

func TestComputeStats(t *testing.T) {
	if got := ComputeStats(nil); got.TotalRatings != 0 || got.AverageRating != 0 {
		t.Fatalf("expected zero stats, got %+v", got)
	}

	events := []domain.RatingEvent{{Score: 100}, {Score: 75}, {Score: 50}, {Score: 25}, {Score: 10}, {Score: 40}}
	got := ComputeStats(events)
	if got.AverageRating != 50 {
		t.Fatalf("expected average 50, got %.1f", got.AverageRating)
	}
	if got.PositivePercentage != 33 || got.NegativePercentage != 50 || got.NeutralPercentage != 17 {
		t.Fatalf("unexpected percentages %+v", got)
	}
	want := domain.RatingDistribution{Excellent: 1, Good: 1, Neutral: 2, Poor: 1, Terrible: 1}
	if got.Distribution != want {
		t.Fatalf("unexpected distribution %+v", got.Distribution)
	}
}
