package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ratemyrep/internal/domain"
	"ratemyrep/internal/repository"
)

type StaffQuery struct {
	OfficialID string
	BioguideID string
	Office     string
	Limit      int
}

type StaffResult struct {
	Staff    []domain.StaffMember
	Grouped  domain.StaffGroups
	Count    int
	Fallback bool
}

// StaffService consulta el directorio de staff de las oficinas.
type StaffService struct {
	logger *zap.Logger
	repo   repository.StaffRepository
}

func NewStaffService(logger *zap.Logger, repo repository.StaffRepository) *StaffService {
	return &StaffService{logger: logger, repo: repo}
}

// List agrupa por rol. Si el store falla devuelve el staff de ejemplo con Fallback.
func (s *StaffService) List(ctx context.Context, q StaffQuery) StaffResult {
	filter := repository.StaffFilter{
		OfficialID: strings.TrimSpace(q.OfficialID),
		BioguideID: strings.TrimSpace(q.BioguideID),
		Office:     strings.TrimSpace(q.Office),
		Limit:      repository.NormalizeLimit(q.Limit),
	}
	staff, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("list staff failed, serving fallback", zap.Error(err))
		staff = fallbackStaff(filter.OfficialID, filter.BioguideID)
		return StaffResult{
			Staff:    staff,
			Grouped:  domain.GroupStaffByRole(staff),
			Count:    len(staff),
			Fallback: true,
		}
	}
	return StaffResult{
		Staff:   staff,
		Grouped: domain.GroupStaffByRole(staff),
		Count:   len(staff),
	}
}

type CreateStaffInput struct {
	StaffID        string
	FirstName      string
	LastName       string
	FullName       string
	JobTitle       string
	Phone          string
	Email          string
	OfficeLocation string
	PolicyAreas    []string
	OfficialLink   string
	BioguideID     string
}

func (s *StaffService) Create(ctx context.Context, in CreateStaffInput) (domain.StaffMember, error) {
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		name = strings.TrimSpace(strings.TrimSpace(in.FirstName) + " " + strings.TrimSpace(in.LastName))
	}
	if name == "" {
		return domain.StaffMember{}, invalid("fullName", "fullName or firstName/lastName is required")
	}
	if strings.TrimSpace(in.OfficialLink) == "" && strings.TrimSpace(in.BioguideID) == "" {
		return domain.StaffMember{}, invalid("officialLink", "officialLink or bioguideId is required")
	}
	areas := []string{}
	for _, a := range in.PolicyAreas {
		areas = append(areas, domain.SplitList(a)...)
	}

	member, err := s.repo.Create(ctx, domain.StaffMember{
		StaffID:        strings.TrimSpace(in.StaffID),
		FirstName:      strings.TrimSpace(in.FirstName),
		LastName:       strings.TrimSpace(in.LastName),
		FullName:       name,
		JobTitle:       strings.TrimSpace(in.JobTitle),
		Phone:          in.Phone,
		Email:          in.Email,
		OfficeLocation: strings.TrimSpace(in.OfficeLocation),
		PolicyAreas:    areas,
		OfficialLink:   strings.TrimSpace(in.OfficialLink),
		BioguideID:     strings.TrimSpace(in.BioguideID),
		DataSource:     "Manual Entry",
	})
	if err != nil {
		return domain.StaffMember{}, fmt.Errorf("create staff: %w", err)
	}
	return member, nil
}

// fallbackStaff enlaza el staff de ejemplo al funcionario pedido, o al de ejemplo.
func fallbackStaff(officialID, bioguideID string) []domain.StaffMember {
	if officialID == "" {
		officialID = "demo_1"
	}
	if bioguideID == "" {
		bioguideID = "A000370"
	}
	staff := repository.SeedStaff()
	for i := range staff {
		staff[i].ID = fmt.Sprintf("demo_staff_%d", i+1)
		staff[i].OfficialLink = officialID
		staff[i].BioguideID = bioguideID
	}
	return staff
}
