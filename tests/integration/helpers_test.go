//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/foresight-sec/incident-room/internal/testutil"
	"github.com/stretchr/testify/require"
)

var alertCounter atomic.Int64

// roomDTO mirrors the room aggregate as returned by the API.
type roomDTO struct {
	ID            string `json:"id"`
	ClientID      string `json:"client_id"`
	ClientName    string `json:"client_name"`
	SourceAlertID string `json:"source_alert_id"`
	IncidentType  string `json:"incident_type"`
	RiskScore     int    `json:"risk_score"`
	Stage         string `json:"stage"`
	CreatedAt     string `json:"created_at"`
	CreatedBy     actorDTO
	Participants  []participantDTO `json:"participants"`
	Timeline      []timelineDTO    `json:"timeline"`
	Evidence      []evidenceDTO    `json:"evidence"`
	Privacy       privacyDTO       `json:"privacy"`
}

type actorDTO struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

type participantDTO struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Organization string `json:"organization"`
	Permissions  struct {
		CanViewIdentity              bool `json:"can_view_identity"`
		CanApproveIdentityDisclosure bool `json:"can_approve_identity_disclosure"`
		CanExecuteContainment        bool `json:"can_execute_containment"`
		CanExportEvidence            bool `json:"can_export_evidence"`
		CanCloseRoom                 bool `json:"can_close_room"`
	} `json:"permissions"`
}

type timelineDTO struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Actor       actorDTO
	StageChange *struct {
		PreviousStage string `json:"previous_stage"`
		NewStage      string `json:"new_stage"`
	} `json:"stage_change"`
	Approval *struct {
		ApprovalType  string `json:"approval_type"`
		Justification string `json:"justification"`
	} `json:"approval"`
}

type evidenceDTO struct {
	ID               string `json:"id"`
	FileName         string `json:"file_name"`
	FileSize         int64  `json:"file_size"`
	Hash             string `json:"hash"`
	Category         string `json:"category"`
	Source           string `json:"source"`
	CollectionMethod string `json:"collection_method"`
}

type privacyDTO struct {
	Pseudonym    string `json:"pseudonym"`
	State        string `json:"state"`
	Revealed     bool   `json:"revealed"`
	RealIdentity *struct {
		Name          string `json:"name"`
		Department    string `json:"department"`
		Justification string `json:"justification"`
	} `json:"real_identity"`
	Request *struct {
		Justification string `json:"justification"`
		RequestedBy   string `json:"requested_by"`
		Status        string `json:"status"`
	} `json:"request"`
}

type roomEnvelope struct {
	Data roomDTO `json:"data"`
}

const longJustification = "Investigation produced corroborated indicators of deliberate exfiltration requiring identity confirmation"

func participantBody(userID, name, role, org string) map[string]interface{} {
	return map[string]interface{}{
		"user_id":      userID,
		"name":         name,
		"email":        userID + "@example.test",
		"role":         role,
		"organization": org,
	}
}

// createTestRoom creates a room with an analyst creator and CISO approver
// and returns the decoded aggregate.
func createTestRoom(t *testing.T, client *testutil.Client) roomDTO {
	t.Helper()

	alertID := fmt.Sprintf("alert-%d", alertCounter.Add(1))
	resp, err := client.POST("/api/v1/rooms", map[string]interface{}{
		"alert": map[string]interface{}{
			"id":           alertID,
			"client_id":    "client-northstar",
			"client_name":  "Northstar Financial Group",
			"notable_type": "data_exfiltration",
			"risk_score":   87,
			"trigger":      "Large upload to personal cloud storage outside business hours",
		},
		"creator":  participantBody("analyst-1", "Marcus Webb", "mssp_analyst", "mssp"),
		"approver": participantBody("ciso-1", "Elena Vasquez", "ciso", "client"),
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result roomEnvelope
	testutil.DecodeJSON(t, resp, &result)
	require.NotEmpty(t, result.Data.ID)
	return result.Data
}

// advanceStage moves a room to the given stage as the given actor.
func advanceStage(t *testing.T, client *testutil.Client, roomID, stage, actorID string) roomDTO {
	t.Helper()

	resp, err := client.ActingAs(actorID).POST("/api/v1/rooms/"+roomID+"/stage",
		map[string]string{"stage": stage})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result roomEnvelope
	testutil.DecodeJSON(t, resp, &result)
	return result.Data
}

// getRoom fetches the room aggregate.
func getRoom(t *testing.T, client *testutil.Client, roomID string) roomDTO {
	t.Helper()

	resp, err := client.GET("/api/v1/rooms/" + roomID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result roomEnvelope
	testutil.DecodeJSON(t, resp, &result)
	return result.Data
}
