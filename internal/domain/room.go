package domain

import "time"

type RoomStage string

const (
	RoomStageTriage        RoomStage = "triage"
	RoomStageContainment   RoomStage = "containment"
	RoomStageInvestigation RoomStage = "investigation"
	RoomStageRemediation   RoomStage = "remediation"
	RoomStageClosed        RoomStage = "closed"
)

// IsValid reports whether the stage is one of the defined lifecycle stages.
func (s RoomStage) IsValid() bool {
	switch s {
	case RoomStageTriage, RoomStageContainment, RoomStageInvestigation,
		RoomStageRemediation, RoomStageClosed:
		return true
	}
	return false
}

// Next returns the single legal forward successor. The empty string is
// returned for closed (terminal) and unknown stages.
func (s RoomStage) Next() RoomStage {
	switch s {
	case RoomStageTriage:
		return RoomStageContainment
	case RoomStageContainment:
		return RoomStageInvestigation
	case RoomStageInvestigation:
		return RoomStageRemediation
	case RoomStageRemediation:
		return RoomStageClosed
	}
	return ""
}

// CanTransitionTo reports whether target is the legal next stage.
// Stages only advance; there is no backward or skipping transition.
func (s RoomStage) CanTransitionTo(target RoomStage) bool {
	next := s.Next()
	return next != "" && next == target
}

// IsTerminal reports whether the room accepts no further mutation.
func (s RoomStage) IsTerminal() bool {
	return s == RoomStageClosed
}

// IncidentRoom is the case-management aggregate created from a triggering
// alert. Participants, timeline and evidence are owned by the room; nothing
// is shared across rooms.
type IncidentRoom struct {
	ID            string          `json:"id"`
	ClientID      string          `json:"client_id"`
	ClientName    string          `json:"client_name"`
	SourceAlertID string          `json:"source_alert_id"`
	IncidentType  string          `json:"incident_type"`
	RiskScore     int             `json:"risk_score"`
	Stage         RoomStage       `json:"stage"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedBy     Actor           `json:"created_by"`
	Participants  []Participant   `json:"participants"`
	Timeline      []TimelineEvent `json:"timeline"`
	Evidence      []EvidenceItem  `json:"evidence"`
	Privacy       PrivacyState    `json:"privacy"`
}

// Participant returns the participant with the given user ID, or nil.
func (r *IncidentRoom) Participant(userID string) *Participant {
	for i := range r.Participants {
		if r.Participants[i].UserID == userID {
			return &r.Participants[i]
		}
	}
	return nil
}

// HasEvidence reports whether an evidence item with the given ID exists.
func (r *IncidentRoom) HasEvidence(id string) bool {
	for i := range r.Evidence {
		if r.Evidence[i].ID == id {
			return true
		}
	}
	return false
}

// RoomSummary is the wallboard projection of a room.
type RoomSummary struct {
	ID               string    `json:"id"`
	ClientID         string    `json:"client_id"`
	ClientName       string    `json:"client_name"`
	IncidentType     string    `json:"incident_type"`
	RiskScore        int       `json:"risk_score"`
	Stage            RoomStage `json:"stage"`
	CreatedAt        time.Time `json:"created_at"`
	ParticipantCount int       `json:"participant_count"`
	EvidenceCount    int       `json:"evidence_count"`
}

// Summary projects the aggregate into its wallboard form.
func (r *IncidentRoom) Summary() RoomSummary {
	return RoomSummary{
		ID:               r.ID,
		ClientID:         r.ClientID,
		ClientName:       r.ClientName,
		IncidentType:     r.IncidentType,
		RiskScore:        r.RiskScore,
		Stage:            r.Stage,
		CreatedAt:        r.CreatedAt,
		ParticipantCount: len(r.Participants),
		EvidenceCount:    len(r.Evidence),
	}
}
