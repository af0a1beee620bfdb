package domain

import "time"

// DisclosureState is the affected user's identity-protection state.
// The only transitions are redacted -> pending_approval -> revealed, plus
// pending_approval -> redacted on cancel. Revealed is irreversible.
type DisclosureState string

const (
	DisclosureRedacted        DisclosureState = "redacted"
	DisclosurePendingApproval DisclosureState = "pending_approval"
	DisclosureRevealed        DisclosureState = "revealed"
)

// PrivacyState tracks the affected user's pseudonymized identity.
// Revealed is true if and only if RealIdentity is present.
type PrivacyState struct {
	Pseudonym    string             `json:"pseudonym"`
	State        DisclosureState    `json:"state"`
	Revealed     bool               `json:"revealed"`
	RealIdentity *RealIdentity      `json:"real_identity,omitempty"`
	Request      *DisclosureRequest `json:"request,omitempty"`
}

// RealIdentity is attached to the room once disclosure is approved.
type RealIdentity struct {
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Department    string    `json:"department"`
	RevealedAt    time.Time `json:"revealed_at"`
	RevealedBy    string    `json:"revealed_by"`
	Justification string    `json:"justification"`
}

type DisclosureRequestStatus string

const (
	DisclosureRequestPending  DisclosureRequestStatus = "pending"
	DisclosureRequestApproved DisclosureRequestStatus = "approved"
	DisclosureRequestDenied   DisclosureRequestStatus = "denied"
)

// DisclosureRequest records a pending or decided identity-disclosure request.
type DisclosureRequest struct {
	Justification string                  `json:"justification"`
	RequestedBy   string                  `json:"requested_by"`
	RequestedAt   time.Time               `json:"requested_at"`
	Status        DisclosureRequestStatus `json:"status"`
	ApprovedBy    string                  `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time              `json:"approved_at,omitempty"`
}
