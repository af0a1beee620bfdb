// Package room implements the incident-room aggregate: creation from a
// triggering alert, participant and stage management, the evidence ledger,
// and the identity-disclosure workflow.
package room

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/foresight-sec/incident-room/internal/domain"
	"github.com/foresight-sec/incident-room/internal/policy"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const pseudonymAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// minJustificationLen is the floor for disclosure justifications.
const minJustificationLen = 50

// Service implements incident-room business logic. All mutating operations
// hold an exclusive per-room lock: rooms are isolated from each other, but a
// single room never has two concurrent writers.
type Service struct {
	store Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a new room service.
func NewService(store Store) *Service {
	return &Service{
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *Service) roomLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// ParticipantSeed identifies a person to attach to a room. Permissions are
// never part of the seed; they are derived from role and stage.
type ParticipantSeed struct {
	UserID       string
	Name         string
	Email        string
	Role         domain.RoomRole
	Organization domain.Organization
}

// CreateRoomInput holds data for creating a room from an alert. The creating
// analyst and a client-side approver are always seeded as participants.
type CreateRoomInput struct {
	Alert    domain.Alert
	Creator  ParticipantSeed
	Approver ParticipantSeed
}

// EvidenceInput holds data for appending an evidence item. Content is the
// raw material; its SHA-256 digest becomes the chain-of-custody hash. An
// empty ID gets a generated one.
type EvidenceInput struct {
	ID               string
	FileName         string
	FileSize         int64
	FileType         string
	Category         domain.EvidenceCategory
	Source           string
	CollectionMethod string
	Content          []byte
}

// RealIdentityInput carries the identity attached on disclosure approval.
type RealIdentityInput struct {
	Name       string
	Email      string
	Department string
}

// CreateRoom builds a room from a triggering alert: stage triage, redacted
// pseudonymized identity, the creator and approver seeded with
// policy-derived permissions, and a single alert-typed timeline event.
// The room is persisted before being returned.
func (s *Service) CreateRoom(ctx context.Context, input CreateRoomInput) (*domain.IncidentRoom, error) {
	if !input.Creator.Role.IsValid() || !input.Approver.Role.IsValid() {
		return nil, fmt.Errorf("%w: invalid participant role", ErrInvalidInput)
	}

	now := time.Now().UTC()
	r := &domain.IncidentRoom{
		ID:            uuid.New().String(),
		ClientID:      input.Alert.ClientID,
		ClientName:    input.Alert.ClientName,
		SourceAlertID: input.Alert.ID,
		IncidentType:  input.Alert.NotableType,
		RiskScore:     input.Alert.RiskScore,
		Stage:         domain.RoomStageTriage,
		CreatedAt:     now,
		CreatedBy: domain.Actor{
			UserID: input.Creator.UserID,
			Name:   input.Creator.Name,
			Role:   input.Creator.Role,
		},
		Participants: []domain.Participant{
			newParticipant(input.Creator, domain.RoomStageTriage, now),
			newParticipant(input.Approver, domain.RoomStageTriage, now),
		},
		Evidence: []domain.EvidenceItem{},
		Privacy: domain.PrivacyState{
			Pseudonym: generatePseudonym(),
			State:     domain.DisclosureRedacted,
			Revealed:  false,
		},
	}

	r.Timeline = []domain.TimelineEvent{{
		ID:        uuid.New().String(),
		Timestamp: now,
		Type:      domain.TimelineEventAlert,
		Actor:     r.CreatedBy,
		Description: fmt.Sprintf("Incident room created from notable: %s",
			input.Alert.NotableType),
		Alert: &domain.AlertPayload{
			AlertID:   input.Alert.ID,
			RiskScore: input.Alert.RiskScore,
			Trigger:   input.Alert.Trigger,
		},
	}}

	if err := s.store.Put(ctx, r); err != nil {
		return nil, fmt.Errorf("persist room: %w", err)
	}

	recordRoomCreated()
	return r, nil
}

// GetRoom retrieves the full aggregate by ID.
func (s *Service) GetRoom(ctx context.Context, id string) (*domain.IncidentRoom, error) {
	return s.store.Get(ctx, id)
}

// ListRooms returns wallboard summaries of all rooms.
func (s *Service) ListRooms(ctx context.Context) ([]domain.RoomSummary, error) {
	rooms, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	summaries := make([]domain.RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		summaries = append(summaries, r.Summary())
	}
	return summaries, nil
}

// AddParticipant attaches a person to the room with permissions derived for
// the current stage. Adding a user already present is idempotent: the
// membership is left as is and no timeline event is appended.
func (s *Service) AddParticipant(ctx context.Context, roomID string, seed ParticipantSeed) (*domain.IncidentRoom, error) {
	if !seed.Role.IsValid() {
		return nil, fmt.Errorf("%w: invalid role %q", ErrInvalidInput, seed.Role)
	}

	lock := s.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	r, err := s.store.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if r.Stage.IsTerminal() {
		return nil, ErrRoomClosed
	}

	if r.Participant(seed.UserID) != nil {
		return r, nil
	}

	now := time.Now().UTC()
	p := newParticipant(seed, r.Stage, now)
	r.Participants = append(r.Participants, p)
	r.Timeline = append(r.Timeline, domain.TimelineEvent{
		ID:        uuid.New().String(),
		Timestamp: now,
		Type:      domain.TimelineEventComment,
		Actor:     domain.SystemActor,
		Description: fmt.Sprintf("%s (%s) invited to incident room",
			p.Name, roleLabel(p.Role)),
		Membership: &domain.MembershipPayload{
			UserID: p.UserID,
			Role:   p.Role,
			Action: domain.MembershipAdded,
		},
	})

	if err := s.store.Put(ctx, r); err != nil {
		return nil, fmt.Errorf("persist room: %w", err)
	}
	return r, nil
}

// RemoveParticipant detaches a person from the room. Removing a user who is
// not a participant is a no-op, not an error.
func (s *Service) RemoveParticipant(ctx context.Context, roomID, userID string) (*domain.IncidentRoom, error) {
	lock := s.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	r, err := s.store.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if r.Stage.IsTerminal() {
		return nil, ErrRoomClosed
	}

	idx := -1
	for i := range r.Participants {
		if r.Participants[i].UserID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return r, nil
	}

	removed := r.Participants[idx]
	r.Participants = append(r.Participants[:idx], r.Participants[idx+1:]...)
	r.Timeline = append(r.Timeline, domain.TimelineEvent{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Type:      domain.TimelineEventComment,
		Actor:     domain.SystemActor,
		Description: fmt.Sprintf("%s (%s) removed from incident room",
			removed.Name, roleLabel(removed.Role)),
		Membership: &domain.MembershipPayload{
			UserID: removed.UserID,
			Role:   removed.Role,
			Action: domain.MembershipRemoved,
		},
	})

	if err := s.store.Put(ctx, r); err != nil {
		return nil, fmt.Errorf("persist room: %w", err)
	}
	return r, nil
}

// TransitionStage advances the room along its fixed lifecycle. Only the
// single forward successor is legal. Every participant's permission set is
// recomputed for the new stage, and a stage_change event is appended.
// Closing requires the acting participant to hold close authority.
func (s *Service) TransitionStage(ctx context.Context, roomID string, target domain.RoomStage, actorID string) (*domain.IncidentRoom, error) {
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: unknown stage %q", ErrInvalidTransition, target)
	}

	lock := s.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	r, err := s.store.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if r.Stage.IsTerminal() {
		return nil, ErrRoomClosed
	}

	actor := r.Participant(actorID)
	if actor == nil {
		return nil, ErrParticipantNotFound
	}

	if !r.Stage.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Stage, target)
	}

	if target == domain.RoomStageClosed {
		if !hasCloser(r.Participants) {
			return nil, ErrNoCloser
		}
		if !actor.Permissions.CanCloseRoom {
			return nil, fmt.Errorf("%w: closing requires close authority", ErrUnauthorized)
		}
	}

	previous := r.Stage
	r.Stage = target
	policy.Reassign(r.Participants, target)

	r.Timeline = append(r.Timeline, domain.TimelineEvent{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Type:      domain.TimelineEventStageChange,
		Actor:     actor.AsActor(),
		Description: fmt.Sprintf("Stage advanced from %s to %s",
			previous, target),
		StageChange: &domain.StageChangePayload{
			PreviousStage: previous,
			NewStage:      target,
		},
	})

	if err := s.store.Put(ctx, r); err != nil {
		return nil, fmt.Errorf("persist room: %w", err)
	}

	recordStageTransition(previous, target)
	return r, nil
}

// AddEvidence appends an item to the evidence ledger. Items are immutable
// and never removed; an ID collision fails with ErrDuplicateEvidence.
func (s *Service) AddEvidence(ctx context.Context, roomID string, input EvidenceInput, actor domain.Actor) (*domain.IncidentRoom, error) {
	if !input.Category.IsValid() {
		return nil, fmt.Errorf("%w: invalid evidence category %q", ErrInvalidInput, input.Category)
	}

	lock := s.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	r, err := s.store.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if r.Stage.IsTerminal() {
		return nil, ErrRoomClosed
	}

	id := input.ID
	if id == "" {
		id = uuid.New().String()
	}
	if r.HasEvidence(id) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEvidence, id)
	}

	digest := sha256.Sum256(input.Content)
	now := time.Now().UTC()
	item := domain.EvidenceItem{
		ID:               id,
		FileName:         input.FileName,
		FileSize:         input.FileSize,
		FileType:         input.FileType,
		UploadedAt:       now,
		UploadedBy:       actor,
		Hash:             hex.EncodeToString(digest[:]),
		Category:         input.Category,
		Source:           input.Source,
		CollectionMethod: input.CollectionMethod,
	}
	r.Evidence = append(r.Evidence, item)
	r.Timeline = append(r.Timeline, domain.TimelineEvent{
		ID:          uuid.New().String(),
		Timestamp:   now,
		Type:        domain.TimelineEventEvidenceAdded,
		Actor:       actor,
		Description: fmt.Sprintf("Evidence collected: %s (%s)", item.FileName, item.Source),
		Evidence: &domain.EvidencePayload{
			EvidenceID:       item.ID,
			FileName:         item.FileName,
			Source:           item.Source,
			CollectionMethod: item.CollectionMethod,
		},
	})

	if err := s.store.Put(ctx, r); err != nil {
		return nil, fmt.Errorf("persist room: %w", err)
	}
	return r, nil
}

// ListEvidence returns the room's evidence ledger.
func (s *Service) ListEvidence(ctx context.Context, roomID string) ([]domain.EvidenceItem, error) {
	r, err := s.store.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return r.Evidence, nil
}

// GetTimeline returns the room's timeline in append order.
func (s *Service) GetTimeline(ctx context.Context, roomID string) ([]domain.TimelineEvent, error) {
	r, err := s.store.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return r.Timeline, nil
}

// RequestDisclosure moves the privacy state from redacted to
// pending_approval. The justification must be at least 50 characters; a
// request while one is pending fails with ErrDisclosurePending.
func (s *Service) RequestDisclosure(ctx context.Context, roomID, actorID, justification string) (*domain.IncidentRoom, error) {
	if len(justification) < minJustificationLen {
		return nil, ErrJustificationTooShort
	}

	lock := s.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	r, err := s.store.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if r.Stage.IsTerminal() {
		return nil, ErrRoomClosed
	}
	if r.Participant(actorID) == nil {
		return nil, ErrParticipantNotFound
	}

	switch r.Privacy.State {
	case domain.DisclosurePendingApproval:
		return nil, ErrDisclosurePending
	case domain.DisclosureRevealed:
		return nil, ErrAlreadyRevealed
	}

	r.Privacy.State = domain.DisclosurePendingApproval
	r.Privacy.Request = &domain.DisclosureRequest{
		Justification: justification,
		RequestedBy:   actorID,
		RequestedAt:   time.Now().UTC(),
		Status:        domain.DisclosureRequestPending,
	}

	if err := s.store.Put(ctx, r); err != nil {
		return nil, fmt.Errorf("persist room: %w", err)
	}

	recordDisclosureDecision("requested")
	return r, nil
}

// ApproveDisclosure reveals the affected user's identity. The approver must
// hold disclosure-approval authority for the current stage. When a request
// is pending its justification is carried onto the identity record;
// otherwise the supplied justification is used and validated the same way.
// Revealing is irreversible.
func (s *Service) ApproveDisclosure(ctx context.Context, roomID, approverID string, identity RealIdentityInput, justification string) (*domain.IncidentRoom, error) {
	lock := s.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	r, err := s.store.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if r.Stage.IsTerminal() {
		return nil, ErrRoomClosed
	}

	approver := r.Participant(approverID)
	if approver == nil {
		return nil, ErrParticipantNotFound
	}
	if !approver.Permissions.CanApproveIdentityDisclosure {
		return nil, fmt.Errorf("%w: identity disclosure requires approval authority", ErrUnauthorized)
	}
	if r.Privacy.Revealed {
		return nil, ErrAlreadyRevealed
	}

	if r.Privacy.Request != nil && r.Privacy.Request.Status == domain.DisclosureRequestPending {
		justification = r.Privacy.Request.Justification
	}
	if len(justification) < minJustificationLen {
		return nil, ErrJustificationTooShort
	}

	now := time.Now().UTC()
	r.Privacy.State = domain.DisclosureRevealed
	r.Privacy.Revealed = true
	r.Privacy.RealIdentity = &domain.RealIdentity{
		Name:          identity.Name,
		Email:         identity.Email,
		Department:    identity.Department,
		RevealedAt:    now,
		RevealedBy:    fmt.Sprintf("%s (%s)", approver.Name, roleLabel(approver.Role)),
		Justification: justification,
	}
	if r.Privacy.Request != nil {
		r.Privacy.Request.Status = domain.DisclosureRequestApproved
		r.Privacy.Request.ApprovedBy = approver.UserID
		r.Privacy.Request.ApprovedAt = &now
	}

	r.Timeline = append(r.Timeline, domain.TimelineEvent{
		ID:        uuid.New().String(),
		Timestamp: now,
		Type:      domain.TimelineEventApproval,
		Actor:     approver.AsActor(),
		Description: fmt.Sprintf("Identity disclosed: %s is %s (%s)",
			r.Privacy.Pseudonym, identity.Name, identity.Department),
		Approval: &domain.ApprovalPayload{
			ApprovalType:  domain.ApprovalTypeIdentityDisclosure,
			Justification: justification,
		},
	})

	if err := s.store.Put(ctx, r); err != nil {
		return nil, fmt.Errorf("persist room: %w", err)
	}

	recordDisclosureDecision("approved")
	return r, nil
}

// CancelDisclosure withdraws a pending request, returning the privacy state
// to redacted. An audit comment is left on the timeline.
func (s *Service) CancelDisclosure(ctx context.Context, roomID, actorID string) (*domain.IncidentRoom, error) {
	lock := s.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	r, err := s.store.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if r.Stage.IsTerminal() {
		return nil, ErrRoomClosed
	}

	actor := r.Participant(actorID)
	if actor == nil {
		return nil, ErrParticipantNotFound
	}
	if r.Privacy.State != domain.DisclosurePendingApproval {
		return nil, ErrNoDisclosureRequest
	}

	r.Privacy.State = domain.DisclosureRedacted
	r.Privacy.Request = nil
	r.Timeline = append(r.Timeline, domain.TimelineEvent{
		ID:          uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		Type:        domain.TimelineEventComment,
		Actor:       actor.AsActor(),
		Description: "Identity disclosure request withdrawn",
	})

	if err := s.store.Put(ctx, r); err != nil {
		return nil, fmt.Errorf("persist room: %w", err)
	}

	recordDisclosureDecision("cancelled")
	return r, nil
}

func newParticipant(seed ParticipantSeed, stage domain.RoomStage, now time.Time) domain.Participant {
	return domain.Participant{
		UserID:       seed.UserID,
		Name:         seed.Name,
		Email:        seed.Email,
		Role:         seed.Role,
		Organization: seed.Organization,
		JoinedAt:     now,
		LastSeen:     now,
		Permissions:  policy.Derive(seed.Role, stage),
	}
}

func hasCloser(participants []domain.Participant) bool {
	for i := range participants {
		if participants[i].Permissions.CanCloseRoom {
			return true
		}
	}
	return false
}

// generatePseudonym returns a USER-XXXXX handle with a 5-character random
// alphanumeric suffix. Uniqueness is only required within a single room.
func generatePseudonym() string {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(fmt.Sprintf("read random: %v", err))
	}
	suffix := make([]byte, 5)
	for i, b := range buf {
		suffix[i] = pseudonymAlphabet[int(b)%len(pseudonymAlphabet)]
	}
	return "USER-" + string(suffix)
}

var roleCaser = cases.Title(language.English)

// roleLabel renders a role for timeline descriptions, e.g. "MSSP Analyst".
func roleLabel(r domain.RoomRole) string {
	switch r {
	case domain.RoleMSSPAnalyst:
		return "MSSP Analyst"
	case domain.RoleCISO:
		return "CISO"
	case domain.RoleHR:
		return "HR"
	}
	return roleCaser.String(strings.ReplaceAll(string(r), "_", " "))
}
