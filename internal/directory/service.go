package directory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/foresight-sec/incident-room/internal/domain"
)

// SearchFilter narrows a specialist search. Zero values mean "no filter".
type SearchFilter struct {
	Term          string
	Role          domain.SpecialistRole
	Organization  domain.Organization
	AvailableOnly bool
}

// Service implements specialist directory queries.
type Service struct {
	repo Repository
}

// NewService creates a new directory service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search returns profiles matching the filter. The term is matched
// case-insensitively across name, display role, email, expertise and
// incident types.
func (s *Service) Search(ctx context.Context, filter SearchFilter) ([]domain.Specialist, error) {
	profiles, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}

	term := strings.ToLower(filter.Term)
	matched := make([]domain.Specialist, 0, len(profiles))
	for _, p := range profiles {
		if filter.Role != "" && p.Role != filter.Role {
			continue
		}
		if filter.Organization != "" && p.Organization != filter.Organization {
			continue
		}
		if filter.AvailableOnly && p.Availability != domain.AvailabilityAvailable {
			continue
		}
		if term != "" && !matchesTerm(&p, term) {
			continue
		}
		matched = append(matched, p)
	}
	return matched, nil
}

// ByIncidentType returns profiles whose incident types overlap the given
// type, available specialists first.
func (s *Service) ByIncidentType(ctx context.Context, incidentType string) ([]domain.Specialist, error) {
	profiles, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}

	want := strings.ToLower(incidentType)
	matched := make([]domain.Specialist, 0)
	for _, p := range profiles {
		for _, t := range p.IncidentTypes {
			have := strings.ToLower(t)
			if strings.Contains(have, want) || strings.Contains(want, have) {
				matched = append(matched, p)
				break
			}
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Availability == domain.AvailabilityAvailable &&
			matched[j].Availability != domain.AvailabilityAvailable
	})
	return matched, nil
}

// GetByID returns a single profile.
func (s *Service) GetByID(ctx context.Context, userID string) (*domain.Specialist, error) {
	return s.repo.GetByID(ctx, userID)
}

func matchesTerm(p *domain.Specialist, term string) bool {
	fields := []string{p.Name, p.DisplayRole, p.Email}
	fields = append(fields, p.Expertise...)
	fields = append(fields, p.IncidentTypes...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
