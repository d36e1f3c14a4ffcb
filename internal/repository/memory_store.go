package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ratemyrep/internal/domain"
)

// MemoryOfficialRepository guarda funcionarios en memoria. Sirve para desarrollo
// local y tests; el agregado se actualiza bajo el mutex.
type MemoryOfficialRepository struct {
	mu        sync.Mutex
	officials []domain.Official
	sums      map[string]float64
}

func NewMemoryOfficialRepository(seed []domain.Official) *MemoryOfficialRepository {
	r := &MemoryOfficialRepository{sums: make(map[string]float64)}
	for _, o := range seed {
		_, _ = r.Create(context.Background(), o)
	}
	return r
}

func (r *MemoryOfficialRepository) List(_ context.Context, filter OfficialFilter) ([]domain.Official, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []domain.Official{}
	for _, o := range r.officials {
		switch {
		case filter.BioguideID != "":
			if o.BioguideID != filter.BioguideID {
				continue
			}
		case filter.State != "":
			if !strings.EqualFold(o.State, filter.State) {
				continue
			}
		}
		out = append(out, cloneOfficial(o))
	}
	// Fechas YYYY-MM-DD ordenan bien como texto.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastUpdated > out[j].LastUpdated
	})
	if limit := NormalizeLimit(filter.Limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryOfficialRepository) Create(_ context.Context, official domain.Official) (domain.Official, error) {
	if official.ID == "" {
		official.ID = uuid.NewString()
	}
	if official.OfficialID == "" {
		official.OfficialID = NewOfficialKey()
	}
	if official.LastUpdated == "" {
		official.LastUpdated = dateString(time.Now())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.officials = append(r.officials, cloneOfficial(official))
	r.sums[official.ID] = official.Rating * float64(official.TotalRatings)
	return official, nil
}

func (r *MemoryOfficialRepository) FindByKey(_ context.Context, key string) (domain.Official, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(key)
	if idx < 0 {
		return domain.Official{}, ErrNotFound
	}
	return cloneOfficial(r.officials[idx]), nil
}

func (r *MemoryOfficialRepository) ApplyRating(_ context.Context, key string, score float64, at time.Time) (domain.Aggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(key)
	if idx < 0 {
		return domain.Aggregate{}, ErrNotFound
	}
	o := &r.officials[idx]
	r.sums[o.ID] += score
	o.TotalRatings++
	o.Rating = Round1(r.sums[o.ID] / float64(o.TotalRatings))
	return domain.Aggregate{
		Average:        o.Rating,
		Total:          o.TotalRatings,
		LastRatingDate: dateString(at),
	}, nil
}

func (r *MemoryOfficialRepository) indexOf(key string) int {
	for i, o := range r.officials {
		if IsOfficialKey(key) && o.OfficialID == key {
			return i
		}
		if !IsOfficialKey(key) && o.BioguideID == key {
			return i
		}
	}
	return -1
}

func cloneOfficial(o domain.Official) domain.Official {
	o.KeyIssues = append([]string(nil), o.KeyIssues...)
	o.Images = append([]string(nil), o.Images...)
	return o
}

// MemoryRatingRepository guarda eventos en orden de llegada.
type MemoryRatingRepository struct {
	mu     sync.Mutex
	events []domain.RatingEvent
}

func NewMemoryRatingRepository() *MemoryRatingRepository {
	return &MemoryRatingRepository{}
}

func (r *MemoryRatingRepository) Create(_ context.Context, event domain.RatingEvent) (domain.RatingEvent, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return event, nil
}

func (r *MemoryRatingRepository) List(_ context.Context, filter RatingFilter) ([]domain.RatingEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.RatingEvent{}
	for _, e := range r.events {
		switch {
		case filter.OfficialID != "":
			if e.OfficialID != filter.OfficialID {
				continue
			}
		case filter.BioguideID != "":
			if e.BioguideID != filter.BioguideID {
				continue
			}
		}
		if e.CreatedAt.Before(filter.Since) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// MemoryStaffRepository guarda staff en memoria.
type MemoryStaffRepository struct {
	mu    sync.Mutex
	staff []domain.StaffMember
}

func NewMemoryStaffRepository(seed []domain.StaffMember) *MemoryStaffRepository {
	r := &MemoryStaffRepository{}
	for _, m := range seed {
		_, _ = r.Create(context.Background(), m)
	}
	return r
}

func (r *MemoryStaffRepository) List(_ context.Context, filter StaffFilter) ([]domain.StaffMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	office := strings.ToLower(filter.Office)
	out := []domain.StaffMember{}
	for _, m := range r.staff {
		switch {
		case filter.OfficialID != "":
			if m.OfficialLink != filter.OfficialID {
				continue
			}
		case filter.BioguideID != "":
			if m.BioguideID != filter.BioguideID {
				continue
			}
		case office != "":
			if !strings.Contains(strings.ToLower(m.OfficeLocation), office) {
				continue
			}
		}
		m.PolicyAreas = append([]string(nil), m.PolicyAreas...)
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].JobTitle < out[j].JobTitle
	})
	if limit := NormalizeLimit(filter.Limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryStaffRepository) Create(_ context.Context, member domain.StaffMember) (domain.StaffMember, error) {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	if member.StaffID == "" {
		member.StaffID = NewStaffKey()
	}
	if member.LastUpdated == "" {
		member.LastUpdated = dateString(time.Now())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.staff = append(r.staff, member)
	return member, nil
}
