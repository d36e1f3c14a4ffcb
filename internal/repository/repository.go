package repository

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"ratemyrep/internal/domain"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100

	// OfficialKeyPrefix marca las claves internas; el resto se trata como bioguide id.
	OfficialKeyPrefix = "OFF_"
	StaffKeyPrefix    = "STF_"
)

var ErrNotFound = errors.New("record not found")

// OfficialFilter selecciona funcionarios. BioguideID tiene prioridad sobre State.
type OfficialFilter struct {
	BioguideID string
	State      string
	Limit      int
}

// RatingFilter selecciona calificaciones desde Since. OfficialID tiene prioridad sobre BioguideID.
type RatingFilter struct {
	OfficialID string
	BioguideID string
	Since      time.Time
}

// StaffFilter selecciona staff. El primer campo no vacio gana: OfficialID, BioguideID, Office.
type StaffFilter struct {
	OfficialID string
	BioguideID string
	Office     string
	Limit      int
}

// OfficialRepository define el contrato de persistencia para funcionarios.
type OfficialRepository interface {
	List(ctx context.Context, filter OfficialFilter) ([]domain.Official, error)
	Create(ctx context.Context, official domain.Official) (domain.Official, error)
	FindByKey(ctx context.Context, key string) (domain.Official, error)
	// ApplyRating suma un puntaje al agregado del funcionario identificado por key.
	ApplyRating(ctx context.Context, key string, score float64, at time.Time) (domain.Aggregate, error)
}

// RatingRepository define el contrato de persistencia para calificaciones.
type RatingRepository interface {
	Create(ctx context.Context, event domain.RatingEvent) (domain.RatingEvent, error)
	List(ctx context.Context, filter RatingFilter) ([]domain.RatingEvent, error)
}

// StaffRepository define el contrato de persistencia para el staff.
type StaffRepository interface {
	List(ctx context.Context, filter StaffFilter) ([]domain.StaffMember, error)
	Create(ctx context.Context, member domain.StaffMember) (domain.StaffMember, error)
}

// NormalizeLimit aplica el default y el tope.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// IsOfficialKey indica si key es un Official_ID interno y no un bioguide id.
func IsOfficialKey(key string) bool {
	return strings.HasPrefix(key, OfficialKeyPrefix)
}

func NewOfficialKey() string {
	return OfficialKeyPrefix + shortID()
}

func NewStaffKey() string {
	return StaffKeyPrefix + shortID()
}

func shortID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// Round1 redondea a un decimal.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// dateString formatea una fecha como YYYY-MM-DD en UTC.
func dateString(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
