// Package directory provides the specialist registry: the pool of
// participant candidates rooms draw on, searchable by term, role,
// organization, availability and incident type.
package directory

import (
	"context"
	"errors"

	"github.com/foresight-sec/incident-room/internal/domain"
)

// ErrSpecialistNotFound is returned for unknown specialist IDs.
var ErrSpecialistNotFound = errors.New("specialist not found")

// Repository provides access to specialist profiles.
type Repository interface {
	All(ctx context.Context) ([]domain.Specialist, error)
	GetByID(ctx context.Context, userID string) (*domain.Specialist, error)
}

// StaticRepository serves the fixed seed roster. The directory is owned by
// an upstream system; this service only consumes its data.
type StaticRepository struct {
	profiles []domain.Specialist
}

// NewStaticRepository creates a repository over the given profiles. A nil
// slice loads the built-in seed roster.
func NewStaticRepository(profiles []domain.Specialist) *StaticRepository {
	if profiles == nil {
		profiles = seedProfiles
	}
	return &StaticRepository{profiles: profiles}
}

// All returns every specialist profile.
func (r *StaticRepository) All(_ context.Context) ([]domain.Specialist, error) {
	out := make([]domain.Specialist, len(r.profiles))
	copy(out, r.profiles)
	return out, nil
}

// GetByID returns the profile with the given user ID.
func (r *StaticRepository) GetByID(_ context.Context, userID string) (*domain.Specialist, error) {
	for i := range r.profiles {
		if r.profiles[i].UserID == userID {
			p := r.profiles[i]
			return &p, nil
		}
	}
	return nil, ErrSpecialistNotFound
}
