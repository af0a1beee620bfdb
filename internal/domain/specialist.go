package domain

type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityBusy      Availability = "busy"
	AvailabilityAway      Availability = "away"
)

// SpecialistRole is the directory's finer-grained role taxonomy. It maps
// onto a room role when the specialist is invited to an incident room.
type SpecialistRole string

const (
	SpecialistForensicAnalyst    SpecialistRole = "forensic_analyst"
	SpecialistMalwareAnalyst     SpecialistRole = "malware_analyst"
	SpecialistThreatIntel        SpecialistRole = "threat_intel"
	SpecialistLegalCounsel       SpecialistRole = "legal_counsel"
	SpecialistHRDirector         SpecialistRole = "hr_director"
	SpecialistHRInvestigator     SpecialistRole = "hr_investigator"
	SpecialistComplianceOfficer  SpecialistRole = "compliance_officer"
	SpecialistDataProtection     SpecialistRole = "data_protection"
	SpecialistIncidentCommander  SpecialistRole = "incident_commander"
	SpecialistNetworkForensics   SpecialistRole = "network_forensics"
	SpecialistEndpointSpecialist SpecialistRole = "endpoint_specialist"
	SpecialistCloudSecurity      SpecialistRole = "cloud_security"
	SpecialistInsiderThreat      SpecialistRole = "insider_threat"
)

// RoomRole returns the room role a specialist joins under. Legal and
// data-protection roles join as legal, HR roles as hr, everything technical
// as forensics.
func (r SpecialistRole) RoomRole() RoomRole {
	switch r {
	case SpecialistLegalCounsel, SpecialistDataProtection, SpecialistComplianceOfficer:
		return RoleLegal
	case SpecialistHRDirector, SpecialistHRInvestigator:
		return RoleHR
	case SpecialistIncidentCommander:
		return RoleMSSPAnalyst
	}
	return RoleForensics
}

// Specialist is a participant candidate from the specialist directory.
// The directory owns this data; rooms only consume role and organization
// when deriving permissions.
type Specialist struct {
	UserID        string         `json:"user_id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Role          SpecialistRole `json:"role"`
	DisplayRole   string         `json:"display_role"`
	Organization  Organization   `json:"organization"`
	Expertise     []string       `json:"expertise"`
	IncidentTypes []string       `json:"incident_types"`
	Availability  Availability   `json:"availability"`
	ResponseTime  string         `json:"response_time"`
	HourlyRate    *int           `json:"hourly_rate,omitempty"` // independents only
}
