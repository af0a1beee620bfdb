//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/foresight-sec/incident-room/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type specialistDTO struct {
	UserID        string   `json:"user_id"`
	Name          string   `json:"name"`
	Role          string   `json:"role"`
	Organization  string   `json:"organization"`
	IncidentTypes []string `json:"incident_types"`
	Availability  string   `json:"availability"`
	HourlyRate    *int     `json:"hourly_rate"`
}

type specialistListEnvelope struct {
	Data []specialistDTO `json:"data"`
}

func TestSpecialists_FullRoster(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/api/v1/specialists")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result specialistListEnvelope
	testutil.DecodeJSON(t, resp, &result)
	assert.Len(t, result.Data, 15)
}

func TestSpecialists_SearchFilters(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/api/v1/specialists?organization=independent")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result specialistListEnvelope
	testutil.DecodeJSON(t, resp, &result)
	require.NotEmpty(t, result.Data)
	for _, s := range result.Data {
		assert.Equal(t, "independent", s.Organization)
		assert.NotNil(t, s.HourlyRate)
	}

	resp, err = client.GET("/api/v1/specialists?q=forensics&available=true")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutil.DecodeJSON(t, resp, &result)
	for _, s := range result.Data {
		assert.Equal(t, "available", s.Availability)
	}
}

func TestSpecialists_ByIncidentType(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/api/v1/specialists?incident_type=Insider%20Threat")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result specialistListEnvelope
	testutil.DecodeJSON(t, resp, &result)
	require.NotEmpty(t, result.Data)

	// Available specialists come first
	seenUnavailable := false
	for _, s := range result.Data {
		if s.Availability != "available" {
			seenUnavailable = true
			continue
		}
		assert.False(t, seenUnavailable, "available specialists must sort first")
	}
}

func TestSpecialists_GetByID(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/api/v1/specialists/forensic-001")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data specialistDTO `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, "Dr. Emily Rodriguez", result.Data.Name)

	resp, err = client.GET("/api/v1/specialists/nobody-999")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
