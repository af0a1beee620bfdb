package domain

import "time"

type TimelineEventType string

const (
	TimelineEventAlert         TimelineEventType = "alert"
	TimelineEventApproval      TimelineEventType = "approval"
	TimelineEventContainment   TimelineEventType = "containment"
	TimelineEventEvidenceAdded TimelineEventType = "evidence_added"
	TimelineEventComment       TimelineEventType = "comment"
	TimelineEventStageChange   TimelineEventType = "stage_change"
)

// TimelineEvent is an immutable historical fact. The timeline is append-only
// and never reordered; every timestamp is at or after the room's creation.
//
// Exactly one payload field is set, matching Type. This replaces the open
// metadata bag of older room exports with typed variants.
type TimelineEvent struct {
	ID          string            `json:"id"`
	Timestamp   time.Time         `json:"timestamp"`
	Type        TimelineEventType `json:"type"`
	Actor       Actor             `json:"actor"`
	Description string            `json:"description"`

	Alert       *AlertPayload       `json:"alert,omitempty"`
	Approval    *ApprovalPayload    `json:"approval,omitempty"`
	StageChange *StageChangePayload `json:"stage_change,omitempty"`
	Evidence    *EvidencePayload    `json:"evidence,omitempty"`
	Membership  *MembershipPayload  `json:"membership,omitempty"`
}

// AlertPayload records the triggering notable on the room's first event.
type AlertPayload struct {
	AlertID   string `json:"alert_id"`
	RiskScore int    `json:"risk_score"`
	Trigger   string `json:"trigger"`
}

// ApprovalPayload records an approval decision, such as identity disclosure.
type ApprovalPayload struct {
	ApprovalType  string `json:"approval_type"`
	Justification string `json:"justification"`
}

const ApprovalTypeIdentityDisclosure = "identity_disclosure"

// StageChangePayload records a lifecycle transition.
type StageChangePayload struct {
	PreviousStage RoomStage `json:"previous_stage"`
	NewStage      RoomStage `json:"new_stage"`
}

// EvidencePayload records an evidence item entering the room.
type EvidencePayload struct {
	EvidenceID       string `json:"evidence_id"`
	FileName         string `json:"file_name"`
	Source           string `json:"source"`
	CollectionMethod string `json:"collection_method"`
}

// MembershipPayload records a participant joining or leaving the room.
type MembershipPayload struct {
	UserID string   `json:"user_id"`
	Role   RoomRole `json:"role"`
	Action string   `json:"action"` // "added" or "removed"
}

const (
	MembershipAdded   = "added"
	MembershipRemoved = "removed"
)
