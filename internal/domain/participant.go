package domain

import "time"

type RoomRole string

const (
	RoleMSSPAnalyst RoomRole = "mssp_analyst"
	RoleCISO        RoomRole = "ciso"
	RoleLegal       RoomRole = "legal"
	RoleHR          RoomRole = "hr"
	RoleForensics   RoomRole = "forensics"
	RoleObserver    RoomRole = "observer"
)

// IsValid reports whether the role is one of the defined room roles.
func (r RoomRole) IsValid() bool {
	switch r {
	case RoleMSSPAnalyst, RoleCISO, RoleLegal, RoleHR, RoleForensics, RoleObserver:
		return true
	}
	return false
}

type Organization string

const (
	OrgMSSP        Organization = "mssp"
	OrgClient      Organization = "client"
	OrgIndependent Organization = "independent"
)

// IsValid reports whether the organization is one of the defined values.
func (o Organization) IsValid() bool {
	switch o {
	case OrgMSSP, OrgClient, OrgIndependent:
		return true
	}
	return false
}

// Permissions is the capability set derived from (role, stage). It is
// recomputed on every stage transition, never treated as stored state that
// survives one.
type Permissions struct {
	CanViewIdentity              bool `json:"can_view_identity"`
	CanApproveIdentityDisclosure bool `json:"can_approve_identity_disclosure"`
	CanAccessHRRecords           bool `json:"can_access_hr_records"`
	CanApproveHRAccess           bool `json:"can_approve_hr_access"`
	CanExecuteContainment        bool `json:"can_execute_containment"`
	CanApproveContainment        bool `json:"can_approve_containment"`
	CanExportEvidence            bool `json:"can_export_evidence"`
	CanCloseRoom                 bool `json:"can_close_room"`
}

// Participant is a person or system actor attached to a room, unique by
// user ID within the room.
type Participant struct {
	UserID       string       `json:"user_id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Role         RoomRole     `json:"role"`
	Organization Organization `json:"organization"`
	JoinedAt     time.Time    `json:"joined_at"`
	LastSeen     time.Time    `json:"last_seen"`
	Permissions  Permissions  `json:"permissions"`
}

// Actor identifies who performed an operation, as recorded on timeline
// events and the room's created-by field.
type Actor struct {
	UserID string   `json:"user_id"`
	Name   string   `json:"name"`
	Role   RoomRole `json:"role"`
}

// AsActor projects the participant into the actor recorded on timeline
// events.
func (p *Participant) AsActor() Actor {
	return Actor{UserID: p.UserID, Name: p.Name, Role: p.Role}
}

// SystemActor is the actor recorded for automated operations such as
// evidence auto-collection.
var SystemActor = Actor{
	UserID: "system",
	Name:   "Automated Evidence Collection",
	Role:   RoleMSSPAnalyst,
}
