package domain

import "time"

const (
	MinScore = 0
	MaxScore = 100
)

// Direction es la etiqueta gruesa de sentimiento que acompana a una calificacion.
type Direction string

const (
	DirectionLike    Direction = "like"
	DirectionDislike Direction = "dislike"
	DirectionNeutral Direction = "neutral"
)

// DirectionForScore deriva la direccion a partir del puntaje cuando el cliente no la envia.
func DirectionForScore(score float64) Direction {
	switch {
	case score >= 60:
		return DirectionLike
	case score <= 40:
		return DirectionDislike
	default:
		return DirectionNeutral
	}
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RatingEvent es una calificacion individual. Inmutable, solo se agrega.
type RatingEvent struct {
	ID         string       `json:"id"`
	OfficialID string       `json:"officialId,omitempty"`
	BioguideID string       `json:"bioguideId,omitempty"`
	Score      float64      `json:"rating"`
	Direction  Direction    `json:"direction"`
	Comment    string       `json:"comment,omitempty"`
	Location   *Coordinates `json:"location,omitempty"`
	ClientIP   string       `json:"-"`
	UserAgent  string       `json:"-"`
	CreatedAt  time.Time    `json:"timestamp"`
}

// TargetKey devuelve la referencia usada para actualizar el agregado.
func (e RatingEvent) TargetKey() string {
	if e.OfficialID != "" {
		return e.OfficialID
	}
	return e.BioguideID
}

type RatingDistribution struct {
	Excellent int `json:"excellent"` // 80-100
	Good      int `json:"good"`      // 60-79
	Neutral   int `json:"neutral"`   // 40-59
	Poor      int `json:"poor"`      // 20-39
	Terrible  int `json:"terrible"`  // 0-19
}

type RatingStats struct {
	AverageRating      float64            `json:"averageRating"`
	TotalRatings       int                `json:"totalRatings"`
	PositivePercentage int                `json:"positivePercentage"`
	NegativePercentage int                `json:"negativePercentage"`
	NeutralPercentage  int                `json:"neutralPercentage"`
	Distribution       RatingDistribution `json:"ratingDistribution"`
}
