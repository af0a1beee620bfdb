// Package policy derives participant capability sets from role and room
// stage. Derivation is a pure function: permissions are never stored state,
// they are recomputed whenever role or stage changes.
package policy

import "github.com/foresight-sec/incident-room/internal/domain"

// Derive returns the capability set for a role at a given stage.
//
// The MSSP analyst may not view the affected user's identity during triage;
// the CISO holds disclosure, containment and close authority; legal holds
// disclosure and evidence-export authority; HR holds HR-record access.
// Forensics and observer get least privilege: no capabilities, read access
// to room content only.
func Derive(role domain.RoomRole, stage domain.RoomStage) domain.Permissions {
	switch role {
	case domain.RoleMSSPAnalyst:
		return domain.Permissions{
			CanViewIdentity:       stage != domain.RoomStageTriage,
			CanExecuteContainment: true,
		}
	case domain.RoleCISO:
		return domain.Permissions{
			CanViewIdentity:              true,
			CanApproveIdentityDisclosure: true,
			CanApproveHRAccess:           true,
			CanExecuteContainment:        true,
			CanApproveContainment:        true,
			CanCloseRoom:                 true,
		}
	case domain.RoleLegal:
		return domain.Permissions{
			CanApproveIdentityDisclosure: true,
			CanExportEvidence:            true,
		}
	case domain.RoleHR:
		return domain.Permissions{
			CanAccessHRRecords: true,
			CanApproveHRAccess: true,
		}
	}
	// forensics, observer, unknown roles
	return domain.Permissions{}
}

// Reassign recomputes the permission set of every participant for the given
// stage. Called on every stage transition so stage-dependent capabilities
// never go stale.
func Reassign(participants []domain.Participant, stage domain.RoomStage) {
	for i := range participants {
		participants[i].Permissions = Derive(participants[i].Role, stage)
	}
}
