package room

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/foresight-sec/incident-room/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStore implements Store for testing. Rooms are deep-copied through JSON
// on both Put and Get so tests catch accidental aliasing between the service
// and the store, the same way the real adapters behave.
type mockStore struct {
	mu     sync.Mutex
	rooms  map[string][]byte
	putErr error
}

func newMockStore() *mockStore {
	return &mockStore{rooms: make(map[string][]byte)}
}

func (m *mockStore) Put(_ context.Context, r *domain.IncidentRoom) error {
	if m.putErr != nil {
		return m.putErr
	}
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.ID] = data
	return nil
}

func (m *mockStore) Get(_ context.Context, id string) (*domain.IncidentRoom, error) {
	m.mu.Lock()
	data, ok := m.rooms[id]
	m.mu.Unlock()
	if !ok {
		return nil, ErrRoomNotFound
	}
	var r domain.IncidentRoom
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (m *mockStore) List(_ context.Context) ([]*domain.IncidentRoom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rooms := make([]*domain.IncidentRoom, 0, len(m.rooms))
	for _, data := range m.rooms {
		var r domain.IncidentRoom
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, err
		}
		rooms = append(rooms, &r)
	}
	return rooms, nil
}

var testAlert = domain.Alert{
	ID:           "alert-92847",
	ClientID:     "client-northstar",
	ClientName:   "Northstar Financial Group",
	NotableType:  "data_exfiltration",
	RiskScore:    87,
	Trigger:      "Large upload to personal cloud storage outside business hours",
	DetectedAt:   time.Date(2026, 3, 14, 2, 17, 0, 0, time.UTC),
	SourceSystem: "splunk_es",
}

var (
	analystSeed = ParticipantSeed{
		UserID:       "analyst-1",
		Name:         "Marcus Webb",
		Email:        "marcus.webb@foresight-sec.example",
		Role:         domain.RoleMSSPAnalyst,
		Organization: domain.OrgMSSP,
	}
	cisoSeed = ParticipantSeed{
		UserID:       "ciso-1",
		Name:         "Elena Vasquez",
		Email:        "elena.vasquez@northstar.example",
		Role:         domain.RoleCISO,
		Organization: domain.OrgClient,
	}
)

const testJustification = "Investigation confirmed repeated exfiltration of regulated client records requiring HR action"

// seedRoom creates a room with the analyst creator and CISO approver.
func seedRoom(t *testing.T, svc *Service) *domain.IncidentRoom {
	t.Helper()
	r, err := svc.CreateRoom(context.Background(), CreateRoomInput{
		Alert:    testAlert,
		Creator:  analystSeed,
		Approver: cisoSeed,
	})
	require.NoError(t, err)
	return r
}

// advanceTo walks the room forward one stage at a time.
func advanceTo(t *testing.T, svc *Service, roomID string, target domain.RoomStage, actorID string) *domain.IncidentRoom {
	t.Helper()
	r, err := svc.GetRoom(context.Background(), roomID)
	require.NoError(t, err)
	for r.Stage != target {
		r, err = svc.TransitionStage(context.Background(), roomID, r.Stage.Next(), actorID)
		require.NoError(t, err)
	}
	return r
}

func TestCreateRoom_SeedsRoomFromAlert(t *testing.T) {
	svc := NewService(newMockStore())

	r := seedRoom(t, svc)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, domain.RoomStageTriage, r.Stage)
	assert.Equal(t, "Northstar Financial Group", r.ClientName)
	assert.Equal(t, "alert-92847", r.SourceAlertID)
	assert.Equal(t, 87, r.RiskScore)
	assert.Equal(t, "analyst-1", r.CreatedBy.UserID)

	require.Len(t, r.Participants, 2)
	analyst := r.Participant("analyst-1")
	ciso := r.Participant("ciso-1")
	require.NotNil(t, analyst)
	require.NotNil(t, ciso)

	// Permissions come from the policy table for the triage stage
	assert.False(t, analyst.Permissions.CanViewIdentity, "analyst must not see identity during triage")
	assert.True(t, analyst.Permissions.CanExecuteContainment)
	assert.True(t, ciso.Permissions.CanApproveIdentityDisclosure)
	assert.True(t, ciso.Permissions.CanCloseRoom)

	// Timeline opens with exactly the alert event
	require.Len(t, r.Timeline, 1)
	ev := r.Timeline[0]
	assert.Equal(t, domain.TimelineEventAlert, ev.Type)
	require.NotNil(t, ev.Alert)
	assert.Equal(t, "alert-92847", ev.Alert.AlertID)
	assert.Equal(t, 87, ev.Alert.RiskScore)

	// Identity starts pseudonymized
	assert.Equal(t, domain.DisclosureRedacted, r.Privacy.State)
	assert.False(t, r.Privacy.Revealed)
	assert.Nil(t, r.Privacy.RealIdentity)
	assert.Regexp(t, regexp.MustCompile(`^USER-[A-Z0-9]{5}$`), r.Privacy.Pseudonym)
}

func TestCreateRoom_PersistsBeforeReturning(t *testing.T) {
	store := newMockStore()
	svc := NewService(store)

	r := seedRoom(t, svc)

	stored, err := store.Get(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, stored.ID)
	assert.True(t, r.CreatedAt.Equal(stored.CreatedAt))
}

func TestCreateRoom_InvalidRole(t *testing.T) {
	svc := NewService(newMockStore())

	bad := analystSeed
	bad.Role = "janitor"
	_, err := svc.CreateRoom(context.Background(), CreateRoomInput{
		Alert:    testAlert,
		Creator:  bad,
		Approver: cisoSeed,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddParticipant_DerivesPermissionsForCurrentStage(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)
	advanceTo(t, svc, r.ID, domain.RoomStageInvestigation, "analyst-1")

	updated, err := svc.AddParticipant(context.Background(), r.ID, ParticipantSeed{
		UserID:       "legal-1",
		Name:         "Priya Raman",
		Role:         domain.RoleLegal,
		Organization: domain.OrgClient,
	})
	require.NoError(t, err)

	legal := updated.Participant("legal-1")
	require.NotNil(t, legal)
	assert.True(t, legal.Permissions.CanApproveIdentityDisclosure)
	assert.True(t, legal.Permissions.CanExportEvidence)
	assert.False(t, legal.Permissions.CanExecuteContainment)

	// Membership is recorded on the timeline
	last := updated.Timeline[len(updated.Timeline)-1]
	assert.Equal(t, domain.TimelineEventComment, last.Type)
	require.NotNil(t, last.Membership)
	assert.Equal(t, "legal-1", last.Membership.UserID)
	assert.Equal(t, domain.MembershipAdded, last.Membership.Action)
	assert.Contains(t, last.Description, "Priya Raman")
}

func TestAddParticipant_Idempotent(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)

	before, err := svc.GetRoom(context.Background(), r.ID)
	require.NoError(t, err)

	again, err := svc.AddParticipant(context.Background(), r.ID, analystSeed)
	require.NoError(t, err)

	assert.Len(t, again.Participants, len(before.Participants))
	assert.Len(t, again.Timeline, len(before.Timeline), "repeat add must not leave a timeline event")
}

func TestAddParticipant_RoomNotFound(t *testing.T) {
	svc := NewService(newMockStore())

	_, err := svc.AddParticipant(context.Background(), "missing", analystSeed)

	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRemoveParticipant_AppendsMembershipEvent(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)

	updated, err := svc.RemoveParticipant(context.Background(), r.ID, "analyst-1")
	require.NoError(t, err)

	assert.Nil(t, updated.Participant("analyst-1"))
	last := updated.Timeline[len(updated.Timeline)-1]
	require.NotNil(t, last.Membership)
	assert.Equal(t, domain.MembershipRemoved, last.Membership.Action)
}

func TestRemoveParticipant_AbsentUserIsNoOp(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)

	updated, err := svc.RemoveParticipant(context.Background(), r.ID, "nobody")
	require.NoError(t, err)
	assert.Len(t, updated.Participants, 2)
	assert.Len(t, updated.Timeline, 1)
}

func TestTransitionStage_ForwardOnly(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)

	// Skipping stages is illegal
	_, err := svc.TransitionStage(context.Background(), r.ID, domain.RoomStageRemediation, "analyst-1")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	updated, err := svc.TransitionStage(context.Background(), r.ID, domain.RoomStageContainment, "analyst-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoomStageContainment, updated.Stage)

	// So is going back
	_, err = svc.TransitionStage(context.Background(), r.ID, domain.RoomStageTriage, "analyst-1")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	last := updated.Timeline[len(updated.Timeline)-1]
	assert.Equal(t, domain.TimelineEventStageChange, last.Type)
	require.NotNil(t, last.StageChange)
	assert.Equal(t, domain.RoomStageTriage, last.StageChange.PreviousStage)
	assert.Equal(t, domain.RoomStageContainment, last.StageChange.NewStage)
}

func TestTransitionStage_RecomputesPermissions(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)

	updated, err := svc.TransitionStage(context.Background(), r.ID, domain.RoomStageContainment, "analyst-1")
	require.NoError(t, err)

	analyst := updated.Participant("analyst-1")
	require.NotNil(t, analyst)
	assert.True(t, analyst.Permissions.CanViewIdentity, "analyst sees identity once triage is over")
}

func TestTransitionStage_NonParticipant(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)

	_, err := svc.TransitionStage(context.Background(), r.ID, domain.RoomStageContainment, "stranger")

	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestTransitionStage_CloseRequiresAuthority(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)
	advanceTo(t, svc, r.ID, domain.RoomStageRemediation, "analyst-1")

	// The analyst cannot close even though the stage is right
	_, err := svc.TransitionStage(context.Background(), r.ID, domain.RoomStageClosed, "analyst-1")
	assert.ErrorIs(t, err, ErrUnauthorized)

	closed, err := svc.TransitionStage(context.Background(), r.ID, domain.RoomStageClosed, "ciso-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoomStageClosed, closed.Stage)

	// A closed room rejects every further mutation
	_, err = svc.AddParticipant(context.Background(), r.ID, ParticipantSeed{
		UserID: "late-1", Name: "Late Joiner", Role: domain.RoleObserver, Organization: domain.OrgMSSP,
	})
	assert.ErrorIs(t, err, ErrRoomClosed)
	_, err = svc.TransitionStage(context.Background(), r.ID, domain.RoomStageClosed, "ciso-1")
	assert.ErrorIs(t, err, ErrRoomClosed)
}

func TestTransitionStage_CloseWithoutAnyCloser(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)
	advanceTo(t, svc, r.ID, domain.RoomStageRemediation, "analyst-1")

	// Once the CISO leaves, nobody holds close authority
	_, err := svc.RemoveParticipant(context.Background(), r.ID, "ciso-1")
	require.NoError(t, err)

	_, err = svc.TransitionStage(context.Background(), r.ID, domain.RoomStageClosed, "analyst-1")
	assert.ErrorIs(t, err, ErrNoCloser)
}

func TestAddEvidence_HashesContentIntoLedger(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)

	content := []byte("suspicious transfer log")
	updated, err := svc.AddEvidence(context.Background(), r.ID, EvidenceInput{
		FileName:         "transfer.log",
		FileSize:         int64(len(content)),
		FileType:         "log",
		Category:         domain.EvidenceCategoryDocument,
		Source:           "File Server Logs",
		CollectionMethod: domain.CollectionMethodManual,
		Content:          content,
	}, domain.Actor{UserID: "analyst-1", Name: "Marcus Webb", Role: domain.RoleMSSPAnalyst})
	require.NoError(t, err)

	require.Len(t, updated.Evidence, 1)
	item := updated.Evidence[0]
	assert.NotEmpty(t, item.ID)

	digest := sha256.Sum256(content)
	assert.Equal(t, hex.EncodeToString(digest[:]), item.Hash)

	last := updated.Timeline[len(updated.Timeline)-1]
	assert.Equal(t, domain.TimelineEventEvidenceAdded, last.Type)
	require.NotNil(t, last.Evidence)
	assert.Equal(t, item.ID, last.Evidence.EvidenceID)
}

func TestAddEvidence_DuplicateID(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)

	input := EvidenceInput{
		ID:               "auto-dlp-alerts",
		FileName:         "dlp-alerts-7days.json",
		Category:         domain.EvidenceCategoryDLPAlert,
		Source:           "DLP Platform",
		CollectionMethod: domain.CollectionMethodAutomated,
		Content:          []byte("{}"),
	}

	_, err := svc.AddEvidence(context.Background(), r.ID, input, domain.SystemActor)
	require.NoError(t, err)

	_, err = svc.AddEvidence(context.Background(), r.ID, input, domain.SystemActor)
	assert.ErrorIs(t, err, ErrDuplicateEvidence)
}

func TestAddEvidence_InvalidCategory(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)

	_, err := svc.AddEvidence(context.Background(), r.ID, EvidenceInput{
		FileName: "x.bin",
		Category: "paperwork",
		Content:  []byte("x"),
	}, domain.SystemActor)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRequestDisclosure_JustificationFloor(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)

	_, err := svc.RequestDisclosure(context.Background(), r.ID, "analyst-1", "too short")
	assert.ErrorIs(t, err, ErrJustificationTooShort)

	updated, err := svc.RequestDisclosure(context.Background(), r.ID, "analyst-1", testJustification)
	require.NoError(t, err)
	assert.Equal(t, domain.DisclosurePendingApproval, updated.Privacy.State)
	require.NotNil(t, updated.Privacy.Request)
	assert.Equal(t, "analyst-1", updated.Privacy.Request.RequestedBy)
	assert.Equal(t, domain.DisclosureRequestPending, updated.Privacy.Request.Status)
}

func TestRequestDisclosure_AlreadyPending(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)

	_, err := svc.RequestDisclosure(context.Background(), r.ID, "analyst-1", testJustification)
	require.NoError(t, err)

	_, err = svc.RequestDisclosure(context.Background(), r.ID, "ciso-1", testJustification)
	assert.ErrorIs(t, err, ErrDisclosurePending)
}

func TestApproveDisclosure_RequiresAuthority(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)

	_, err := svc.ApproveDisclosure(context.Background(), r.ID, "analyst-1",
		RealIdentityInput{Name: "Jordan Ellis"}, testJustification)

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestApproveDisclosure_CarriesPendingJustification(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)

	_, err := svc.RequestDisclosure(context.Background(), r.ID, "analyst-1", testJustification)
	require.NoError(t, err)

	updated, err := svc.ApproveDisclosure(context.Background(), r.ID, "ciso-1", RealIdentityInput{
		Name:       "Jordan Ellis",
		Email:      "jordan.ellis@northstar.example",
		Department: "Finance",
	}, "a different justification that should be ignored entirely")
	require.NoError(t, err)

	assert.Equal(t, domain.DisclosureRevealed, updated.Privacy.State)
	assert.True(t, updated.Privacy.Revealed)
	require.NotNil(t, updated.Privacy.RealIdentity)
	assert.Equal(t, "Jordan Ellis", updated.Privacy.RealIdentity.Name)
	assert.Equal(t, testJustification, updated.Privacy.RealIdentity.Justification,
		"the pending request's justification wins")

	require.NotNil(t, updated.Privacy.Request)
	assert.Equal(t, domain.DisclosureRequestApproved, updated.Privacy.Request.Status)
	assert.Equal(t, "ciso-1", updated.Privacy.Request.ApprovedBy)
	require.NotNil(t, updated.Privacy.Request.ApprovedAt)

	last := updated.Timeline[len(updated.Timeline)-1]
	assert.Equal(t, domain.TimelineEventApproval, last.Type)
	require.NotNil(t, last.Approval)
	assert.Equal(t, domain.ApprovalTypeIdentityDisclosure, last.Approval.ApprovalType)
	assert.Equal(t, testJustification, last.Approval.Justification)
}

func TestApproveDisclosure_DirectWithoutRequest(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)

	_, err := svc.ApproveDisclosure(context.Background(), r.ID, "ciso-1",
		RealIdentityInput{Name: "Jordan Ellis"}, "short")
	assert.ErrorIs(t, err, ErrJustificationTooShort)

	updated, err := svc.ApproveDisclosure(context.Background(), r.ID, "ciso-1",
		RealIdentityInput{Name: "Jordan Ellis", Department: "Finance"}, testJustification)
	require.NoError(t, err)
	assert.True(t, updated.Privacy.Revealed)
}

func TestApproveDisclosure_Irreversible(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)

	_, err := svc.ApproveDisclosure(context.Background(), r.ID, "ciso-1",
		RealIdentityInput{Name: "Jordan Ellis"}, testJustification)
	require.NoError(t, err)

	_, err = svc.ApproveDisclosure(context.Background(), r.ID, "ciso-1",
		RealIdentityInput{Name: "Jordan Ellis"}, testJustification)
	assert.ErrorIs(t, err, ErrAlreadyRevealed)

	_, err = svc.RequestDisclosure(context.Background(), r.ID, "analyst-1", testJustification)
	assert.ErrorIs(t, err, ErrAlreadyRevealed)
}

func TestCancelDisclosure_ReturnsToRedacted(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)

	_, err := svc.RequestDisclosure(context.Background(), r.ID, "analyst-1", testJustification)
	require.NoError(t, err)

	updated, err := svc.CancelDisclosure(context.Background(), r.ID, "analyst-1")
	require.NoError(t, err)
	assert.Equal(t, domain.DisclosureRedacted, updated.Privacy.State)
	assert.Nil(t, updated.Privacy.Request)

	// And the room accepts a fresh request afterwards
	again, err := svc.RequestDisclosure(context.Background(), r.ID, "ciso-1", testJustification)
	require.NoError(t, err)
	assert.Equal(t, domain.DisclosurePendingApproval, again.Privacy.State)
}

func TestCancelDisclosure_NothingPending(t *testing.T) {
	svc := NewService(newMockStore())
	r := seedRoom(t, svc)

	_, err := svc.CancelDisclosure(context.Background(), r.ID, "analyst-1")

	assert.ErrorIs(t, err, ErrNoDisclosureRequest)
}

func TestListRooms_ReturnsSummaries(t *testing.T) {
	svc := NewService(newMockStore())
	first := seedRoom(t, svc)
	second := seedRoom(t, svc)

	summaries, err := svc.ListRooms(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	ids := []string{summaries[0].ID, summaries[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
	for _, s := range summaries {
		assert.Equal(t, domain.RoomStageTriage, s.Stage)
		assert.Equal(t, 2, s.ParticipantCount)
	}
}

func TestCreateRoom_StoreFailure(t *testing.T) {
	store := newMockStore()
	store.putErr = errors.New("connection reset")
	svc := NewService(store)

	_, err := svc.CreateRoom(context.Background(), CreateRoomInput{
		Alert:    testAlert,
		Creator:  analystSeed,
		Approver: cisoSeed,
	})

	assert.Error(t, err)
}

func TestGeneratePseudonym_Format(t *testing.T) {
	re := regexp.MustCompile(`^USER-[A-Z0-9]{5}$`)
	for i := 0; i < 100; i++ {
		assert.Regexp(t, re, generatePseudonym())
	}
}

func TestRoleLabel(t *testing.T) {
	assert.Equal(t, "MSSP Analyst", roleLabel(domain.RoleMSSPAnalyst))
	assert.Equal(t, "CISO", roleLabel(domain.RoleCISO))
	assert.Equal(t, "Legal", roleLabel(domain.RoleLegal))
	assert.Equal(t, "Observer", roleLabel(domain.RoleObserver))
}
