package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"ratemyrep/internal/domain"
	"ratemyrep/internal/repository"
)

const (
	DefaultStatsDays  = 30
	MaxStatsDays      = 365
	MaxReturnedEvents = 100
	maxCommentLength  = 1000
)

// SubmitRatingInput es el cuerpo de POST /api/rate mas los metadatos del request.
type SubmitRatingInput struct {
	OfficialID string
	BioguideID string
	Rating     *float64
	Direction  string
	Comment    string
	Location   *domain.Coordinates
	ClientIP   string
	UserAgent  string
}

type StatsQuery struct {
	OfficialID string
	BioguideID string
	Days       int
}

type StatsResult struct {
	Stats   domain.RatingStats
	Ratings []domain.RatingEvent
	Count   int
	Days    int
}

// Period es la etiqueta legible de la ventana consultada.
func (r StatsResult) Period() string {
	return fmt.Sprintf("%d days", r.Days)
}

// RatingService registra calificaciones y calcula estadisticas.
type RatingService struct {
	logger    *zap.Logger
	ratings   repository.RatingRepository
	officials repository.OfficialRepository
	limiter   RatingLimiter
	now       func() time.Time
}

func NewRatingService(
	logger *zap.Logger,
	ratings repository.RatingRepository,
	officials repository.OfficialRepository,
	limiter RatingLimiter,
) *RatingService {
	return &RatingService{
		logger:    logger,
		ratings:   ratings,
		officials: officials,
		limiter:   limiter,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit valida, persiste el evento y despues intenta actualizar el agregado.
// Una falla del agregado se loguea y no afecta la respuesta.
func (s *RatingService) Submit(ctx context.Context, in SubmitRatingInput) (domain.RatingEvent, error) {
	event, err := s.validate(in)
	if err != nil {
		return domain.RatingEvent{}, err
	}

	if s.limiter != nil {
		key := in.ClientIP
		if strings.TrimSpace(key) == "" {
			key = "unknown"
		}
		if !s.limiter.Allow(key) {
			return domain.RatingEvent{}, ErrRateLimited
		}
	}

	created, err := s.ratings.Create(ctx, event)
	if err != nil {
		return domain.RatingEvent{}, fmt.Errorf("store rating: %w", err)
	}

	agg, err := s.officials.ApplyRating(ctx, created.TargetKey(), created.Score, created.CreatedAt)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.logger.Warn("aggregate update skipped: official not found", zap.String("key", created.TargetKey()))
	case err != nil:
		s.logger.Warn("aggregate update failed", zap.String("key", created.TargetKey()), zap.Error(err))
	default:
		s.logger.Debug("aggregate updated",
			zap.String("key", created.TargetKey()),
			zap.Float64("average", agg.Average),
			zap.Int("total", agg.Total),
		)
	}
	return created, nil
}

func (s *RatingService) validate(in SubmitRatingInput) (domain.RatingEvent, error) {
	officialID := strings.TrimSpace(in.OfficialID)
	bioguideID := strings.TrimSpace(in.BioguideID)
	if officialID == "" && bioguideID == "" {
		return domain.RatingEvent{}, invalid("officialId", "Either officialId or bioguideId is required")
	}
	if in.Rating == nil {
		return domain.RatingEvent{}, invalid("rating", "Rating is required")
	}
	score := *in.Rating
	if math.IsNaN(score) || score < domain.MinScore || score > domain.MaxScore {
		return domain.RatingEvent{}, invalid("rating", "Rating must be between 0 and 100")
	}

	direction := domain.Direction(strings.ToLower(strings.TrimSpace(in.Direction)))
	switch direction {
	case "":
		direction = domain.DirectionForScore(score)
	case domain.DirectionLike, domain.DirectionDislike, domain.DirectionNeutral:
	default:
		return domain.RatingEvent{}, invalid("direction", "Direction must be like, dislike or neutral")
	}

	comment := strings.TrimSpace(in.Comment)
	if utf8.RuneCountInString(comment) > maxCommentLength {
		return domain.RatingEvent{}, invalid("comment", fmt.Sprintf("Comment must be at most %d characters", maxCommentLength))
	}

	if in.Location != nil {
		if in.Location.Lat < -90 || in.Location.Lat > 90 || in.Location.Lng < -180 || in.Location.Lng > 180 {
			return domain.RatingEvent{}, invalid("location", "Location is out of range")
		}
	}

	return domain.RatingEvent{
		OfficialID: officialID,
		BioguideID: bioguideID,
		Score:      score,
		Direction:  direction,
		Comment:    comment,
		Location:   in.Location,
		ClientIP:   in.ClientIP,
		UserAgent:  in.UserAgent,
		CreatedAt:  s.now(),
	}, nil
}

// Stats lee la ventana de calificaciones y calcula las estadisticas.
func (s *RatingService) Stats(ctx context.Context, q StatsQuery) (StatsResult, error) {
	days := q.Days
	if days <= 0 {
		days = DefaultStatsDays
	}
	if days > MaxStatsDays {
		days = MaxStatsDays
	}
	since := s.now().AddDate(0, 0, -days)
	since = time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, time.UTC)

	events, err := s.ratings.List(ctx, repository.RatingFilter{
		OfficialID: strings.TrimSpace(q.OfficialID),
		BioguideID: strings.TrimSpace(q.BioguideID),
		Since:      since,
	})
	if err != nil {
		return StatsResult{Days: days}, fmt.Errorf("list ratings: %w", err)
	}

	if events == nil {
		events = []domain.RatingEvent{}
	}
	returned := events
	if len(returned) > MaxReturnedEvents {
		returned = returned[:MaxReturnedEvents]
	}
	return StatsResult{
		Stats:   ComputeStats(events),
		Ratings: returned,
		Count:   len(events),
		Days:    days,
	}, nil
}

// ComputeStats es puro: promedio a un decimal, porcentajes redondeados e histograma de cinco tramos.
func ComputeStats(events []domain.RatingEvent) domain.RatingStats {
	var stats domain.RatingStats
	total := len(events)
	if total == 0 {
		return stats
	}

	var sum float64
	var positive, negative, neutral int
	for _, e := range events {
		sum += e.Score
		switch {
		case e.Score >= 60:
			positive++
		case e.Score <= 40:
			negative++
		default:
			neutral++
		}
		switch {
		case e.Score >= 80:
			stats.Distribution.Excellent++
		case e.Score >= 60:
			stats.Distribution.Good++
		case e.Score >= 40:
			stats.Distribution.Neutral++
		case e.Score >= 20:
			stats.Distribution.Poor++
		default:
			stats.Distribution.Terrible++
		}
	}

	stats.AverageRating = repository.Round1(sum / float64(total))
	stats.TotalRatings = total
	stats.PositivePercentage = percent(positive, total)
	stats.NegativePercentage = percent(negative, total)
	stats.NeutralPercentage = percent(neutral, total)
	return stats
}

func percent(n, total int) int {
	return int(math.Round(float64(n) / float64(total) * 100))
}
