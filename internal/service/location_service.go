package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ratemyrep/internal/domain"
	"ratemyrep/internal/location"
)

const defaultSessionTTL = 30 * 24 * time.Hour

// SaveLocationInput es lo que el cliente quiere recordar entre visitas.
type SaveLocationInput struct {
	ZIP      string
	Location *domain.Location
}

// LocationService resuelve ubicaciones y recuerda la ultima por sesion.
type LocationService struct {
	logger   *zap.Logger
	resolver *location.Resolver
	store    LocationStore
	ttl      time.Duration
}

func NewLocationService(logger *zap.Logger, resolver *location.Resolver, store LocationStore, ttl time.Duration) *LocationService {
	if resolver == nil {
		resolver = location.NewResolver()
	}
	if store == nil {
		store = NewMemoryLocationStore()
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &LocationService{logger: logger, resolver: resolver, store: store, ttl: ttl}
}

func (s *LocationService) Resolve(q location.Query) domain.Location {
	return s.resolver.Resolve(q)
}

// Save guarda ZIP y/o ubicacion. Sin sessionID crea una sesion nueva y devuelve su id.
// Con solo ZIP, la ubicacion se resuelve a partir de el.
func (s *LocationService) Save(sessionID string, in SaveLocationInput) (string, domain.SavedLocation, error) {
	zip := strings.TrimSpace(in.ZIP)
	if zip == "" && in.Location == nil {
		return "", domain.SavedLocation{}, invalid("zip", "zip or location is required")
	}
	if zip != "" && !location.IsValidZIP(zip) {
		return "", domain.SavedLocation{}, invalid("zip", "zip must be a 5 digit US ZIP code")
	}

	saved := domain.SavedLocation{ZIP: zip, Location: in.Location}
	if saved.Location == nil {
		loc := s.resolver.Resolve(location.Query{ZIP: zip})
		saved.Location = &loc
	}

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if err := s.store.Save(sessionID, saved, s.ttl); err != nil {
		return "", domain.SavedLocation{}, fmt.Errorf("save session location: %w", err)
	}
	return sessionID, saved, nil
}

func (s *LocationService) Load(sessionID string) (domain.SavedLocation, error) {
	if strings.TrimSpace(sessionID) == "" {
		return domain.SavedLocation{}, ErrSessionNotFound
	}
	saved, ok, err := s.store.Load(sessionID)
	if err != nil {
		return domain.SavedLocation{}, fmt.Errorf("load session location: %w", err)
	}
	if !ok {
		return domain.SavedLocation{}, ErrSessionNotFound
	}
	return saved, nil
}

func (s *LocationService) Clear(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrSessionNotFound
	}
	if err := s.store.Delete(sessionID); err != nil {
		return fmt.Errorf("clear session location: %w", err)
	}
	return nil
}
