package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"ratemyrep/internal/domain"
	"ratemyrep/internal/location"
	"ratemyrep/internal/repository"
)

const maxKeyIssues = 4

var defaultKeyIssues = []string{"Government", "Policy", "Community"}

// OfficialsQuery son los filtros de GET /api/officials. El primero presente gana:
// BioguideID, ZIP, State, coordenadas.
type OfficialsQuery struct {
	BioguideID  string
	ZIP         string
	State       string
	Coordinates *domain.Coordinates
	Limit       int
}

type OfficialsResult struct {
	Officials []domain.Official
	Count     int
	// Fallback indica que el store fallo y Officials son datos de ejemplo.
	Fallback bool
	Location *domain.Coordinates
}

// OfficialsService resuelve filtros de ubicacion y consulta funcionarios.
type OfficialsService struct {
	logger   *zap.Logger
	repo     repository.OfficialRepository
	resolver *location.Resolver
}

func NewOfficialsService(logger *zap.Logger, repo repository.OfficialRepository, resolver *location.Resolver) *OfficialsService {
	if resolver == nil {
		resolver = location.NewResolver()
	}
	return &OfficialsService{logger: logger, repo: repo, resolver: resolver}
}

// List nunca devuelve error de store: ante una falla responde con los datos de ejemplo.
// Solo devuelve ValidationError para entradas mal formadas.
func (s *OfficialsService) List(ctx context.Context, q OfficialsQuery) (OfficialsResult, error) {
	filter, err := s.buildFilter(q)
	if err != nil {
		return OfficialsResult{}, err
	}

	officials, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("list officials failed, serving fallback", zap.Error(err))
		fallback := fallbackOfficials(filter.BioguideID, filter.Limit)
		return OfficialsResult{
			Officials: fallback,
			Count:     len(fallback),
			Fallback:  true,
			Location:  q.Coordinates,
		}, nil
	}

	for i := range officials {
		officials[i] = enrichOfficial(officials[i])
	}
	return OfficialsResult{
		Officials: officials,
		Count:     len(officials),
		Location:  q.Coordinates,
	}, nil
}

func (s *OfficialsService) buildFilter(q OfficialsQuery) (repository.OfficialFilter, error) {
	filter := repository.OfficialFilter{Limit: repository.NormalizeLimit(q.Limit)}
	switch {
	case strings.TrimSpace(q.BioguideID) != "":
		filter.BioguideID = strings.TrimSpace(q.BioguideID)
	case strings.TrimSpace(q.ZIP) != "":
		zip := strings.TrimSpace(q.ZIP)
		if !location.IsValidZIP(zip) {
			return filter, invalid("zip", "zip must be a 5 digit US ZIP code")
		}
		filter.State = s.resolver.StateForZIP(zip)
	case strings.TrimSpace(q.State) != "":
		filter.State = strings.ToUpper(strings.TrimSpace(q.State))
	case q.Coordinates != nil:
		c := q.Coordinates
		if c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
			return filter, invalid("lat", "lat/lng out of range")
		}
		filter.State = s.resolver.StateForCoordinates(c.Lat, c.Lng)
	}
	return filter, nil
}

// CreateOfficialInput es el cuerpo de POST /api/officials.
type CreateOfficialInput struct {
	OfficialID  string
	BioguideID  string
	FirstName   string
	LastName    string
	FullName    string
	Party       string
	State       string
	District    string
	Chamber     string
	OfficeLevel string
	Phone       string
	Email       string
	Website     string
	PhotoURL    string
	KeyIssues   []string
	SocialMedia domain.SocialMedia
}

func (s *OfficialsService) Create(ctx context.Context, in CreateOfficialInput) (domain.Official, error) {
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		name = strings.TrimSpace(strings.TrimSpace(in.FirstName) + " " + strings.TrimSpace(in.LastName))
	}
	if name == "" {
		return domain.Official{}, invalid("fullName", "fullName or firstName/lastName is required")
	}
	state := strings.ToUpper(strings.TrimSpace(in.State))
	if state != "" && !location.IsStateCode(state) {
		return domain.Official{}, invalid("state", "state must be a two letter US state code")
	}
	if in.OfficialID != "" && !repository.IsOfficialKey(in.OfficialID) {
		return domain.Official{}, invalid("officialId", "officialId must start with "+repository.OfficialKeyPrefix)
	}

	official := domain.Official{
		OfficialID:  in.OfficialID,
		BioguideID:  strings.TrimSpace(in.BioguideID),
		Name:        name,
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Party:       domain.ParseParty(in.Party),
		State:       state,
		District:    strings.TrimSpace(in.District),
		Chamber:     strings.TrimSpace(in.Chamber),
		OfficeLevel: domain.ParseOfficeLevel(in.OfficeLevel),
		Phone:       in.Phone,
		Email:       in.Email,
		Website:     in.Website,
		PhotoURL:    in.PhotoURL,
		KeyIssues:   in.KeyIssues,
		SocialMedia: in.SocialMedia,
		LastUpdated: time.Now().UTC().Format("2006-01-02"),
	}
	created, err := s.repo.Create(ctx, official)
	if err != nil {
		return domain.Official{}, fmt.Errorf("create official: %w", err)
	}
	return enrichOfficial(created), nil
}

// enrichOfficial completa los campos derivados que el store no guarda.
func enrichOfficial(o domain.Official) domain.Official {
	if o.Bio == "" {
		o.Bio = GenerateBio(o)
	}
	if o.PhotoURL == "" {
		o.PhotoURL = domain.PhotoURL(o.BioguideID)
	}
	if len(o.Images) == 0 && o.PhotoURL != "" {
		o.Images = []string{o.PhotoURL}
	}
	o.KeyIssues = normalizeKeyIssues(o.KeyIssues)
	return o
}

func GenerateBio(o domain.Official) string {
	if o.OfficeLevel == domain.OfficeLevelFederal {
		title := "Representative"
		if strings.EqualFold(o.Chamber, "Senate") {
			title = "Senator"
		}
		return fmt.Sprintf("%s %s representing %s. Dedicated to serving constituents and advancing legislative priorities.", o.Party, title, o.State)
	}
	return fmt.Sprintf("%s %s member representing %s. Focused on state-level issues and community development.", o.Party, o.Chamber, o.State)
}

func normalizeKeyIssues(issues []string) []string {
	out := make([]string, 0, maxKeyIssues)
	for _, issue := range issues {
		if issue = strings.TrimSpace(issue); issue != "" {
			out = append(out, issue)
		}
		if len(out) == maxKeyIssues {
			break
		}
	}
	if len(out) == 0 {
		return append(out, defaultKeyIssues...)
	}
	return out
}

// fallbackOfficials son los dos funcionarios de ejemplo servidos cuando el store falla.
// Con bioguideID solo se devuelve el que coincide, si alguno. Nunca pasa de limit.
func fallbackOfficials(bioguideID string, limit int) []domain.Official {
	seed := repository.SeedOfficials()[:2]
	out := []domain.Official{}
	for i, o := range seed {
		if bioguideID != "" && o.BioguideID != bioguideID {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		o.ID = fmt.Sprintf("demo_%d", i+1)
		out = append(out, enrichOfficial(o))
	}
	return out
}
