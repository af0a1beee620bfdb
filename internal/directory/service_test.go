package directory

import (
	"context"
	"testing"

	"github.com/foresight-sec/incident-room/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededService() *Service {
	return NewService(NewStaticRepository(nil))
}

func TestSearch_NoFilterReturnsFullRoster(t *testing.T) {
	svc := newSeededService()

	got, err := svc.Search(context.Background(), SearchFilter{})
	require.NoError(t, err)
	assert.Len(t, got, len(seedProfiles))
}

func TestSearch_TermMatchesAcrossFields(t *testing.T) {
	svc := newSeededService()

	// Matches expertise, not just names
	got, err := svc.Search(context.Background(), SearchFilter{Term: "memory analysis"})
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, p := range got {
		assert.Contains(t, p.Expertise, "Memory analysis")
	}

	// Case-insensitive name match
	got, err = svc.Search(context.Background(), SearchFilter{Term: "rodriguez"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "forensic-001", got[0].UserID)
}

func TestSearch_FiltersCombine(t *testing.T) {
	svc := newSeededService()

	got, err := svc.Search(context.Background(), SearchFilter{
		Role:          domain.SpecialistForensicAnalyst,
		Organization:  domain.OrgMSSP,
		AvailableOnly: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, p := range got {
		assert.Equal(t, domain.SpecialistForensicAnalyst, p.Role)
		assert.Equal(t, domain.OrgMSSP, p.Organization)
		assert.Equal(t, domain.AvailabilityAvailable, p.Availability)
	}
}

func TestSearch_IndependentConsultants(t *testing.T) {
	svc := newSeededService()

	got, err := svc.Search(context.Background(), SearchFilter{Organization: domain.OrgIndependent})
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, p := range got {
		assert.Equal(t, domain.OrgIndependent, p.Organization)
		assert.NotNil(t, p.HourlyRate, "independent consultants carry an hourly rate")
	}
}

func TestSearch_NoMatches(t *testing.T) {
	svc := newSeededService()

	got, err := svc.Search(context.Background(), SearchFilter{Term: "underwater basket weaving"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestByIncidentType_AvailableFirst(t *testing.T) {
	svc := newSeededService()

	got, err := svc.ByIncidentType(context.Background(), "Insider Threat")
	require.NoError(t, err)
	require.NotEmpty(t, got)

	seenUnavailable := false
	for _, p := range got {
		if p.Availability != domain.AvailabilityAvailable {
			seenUnavailable = true
			continue
		}
		assert.False(t, seenUnavailable, "available specialists must come first")
	}
}

func TestByIncidentType_MatchesBidirectionally(t *testing.T) {
	svc := newSeededService()

	// "Ransomware" profiles must match the broader query too
	got, err := svc.ByIncidentType(context.Background(), "ransomware attack")
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestGetByID(t *testing.T) {
	svc := newSeededService()

	p, err := svc.GetByID(context.Background(), "commander-001")
	require.NoError(t, err)
	assert.Equal(t, domain.SpecialistIncidentCommander, p.Role)

	_, err = svc.GetByID(context.Background(), "nobody-999")
	assert.ErrorIs(t, err, ErrSpecialistNotFound)
}

func TestSpecialistRole_MapsToRoomRole(t *testing.T) {
	assert.Equal(t, domain.RoleLegal, domain.SpecialistLegalCounsel.RoomRole())
	assert.Equal(t, domain.RoleHR, domain.SpecialistHRInvestigator.RoomRole())
	assert.Equal(t, domain.RoleMSSPAnalyst, domain.SpecialistIncidentCommander.RoomRole())
	assert.Equal(t, domain.RoleForensics, domain.SpecialistMalwareAnalyst.RoomRole())
}
