package handlers

import (
	"errors"
	"testing"
	"time"

	"reeferlink/domain"
	"reeferlink/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToConnectResponse(t *testing.T) {
	outcome := localOutcome()
	outcome.DiscoveryErr = errors.New("no multicast interface")

	got := toConnectResponse(outcome)
	assert.Equal(t, "run-1", got.RunId)
	assert.Equal(t, "local", got.Mode)
	assert.Equal(t, Candidate{Address: "192.168.1.100", Mode: "local", Source: "scan"}, got.Candidate)
	require.Len(t, got.Attempts, 2)
	assert.Equal(t, Attempt{Address: "reefer.local", Source: "hostname", Result: "unreachable", ElapsedMs: 20}, got.Attempts[0])
	require.NotNil(t, got.DiscoveryError)
	assert.Equal(t, "no multicast interface", *got.DiscoveryError)
}

func TestToConnectResponse_Empty(t *testing.T) {
	got := toConnectResponse(domain.DiscoveryOutcome{})
	assert.NotNil(t, got.Attempts)
	assert.Empty(t, got.Attempts)
	assert.Nil(t, got.DiscoveryError)
}

func TestToSessionResponse(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("ART", -3*3600))

	tests := []struct {
		name     string
		session  domain.ConnectionSession
		expected SessionResponse
	}{
		{
			name:    "local",
			session: domain.ConnectionSession{Mode: domain.ModeLocal, Address: "192.168.4.1", Configured: true},
			expected: SessionResponse{
				Mode:       "local",
				Address:    service.Ptr("192.168.4.1"),
				Configured: true,
			},
		},
		{
			name: "cloud",
			session: domain.ConnectionSession{
				Mode:          domain.ModeCloud,
				CloudEndpoint: "https://x.supabase.co",
				CloudAPIKey:   "key",
				Organization:  "parametican",
				Configured:    true,
			},
			expected: SessionResponse{
				Mode:          "internet",
				CloudEndpoint: service.Ptr("https://x.supabase.co"),
				Organization:  service.Ptr("parametican"),
				Configured:    true,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, toSessionResponse(tt.session))
		})
	}

	withTime := toSessionResponse(domain.ConnectionSession{Mode: domain.ModeLocal, Address: "a", Configured: true, ConfiguredAt: at})
	require.NotNil(t, withTime.ConfiguredAt)
	assert.Equal(t, time.UTC, withTime.ConfiguredAt.Location())
	assert.True(t, at.Equal(*withTime.ConfiguredAt))
}

func TestToStatusResponse(t *testing.T) {
	got := toStatusResponse(domain.StateIdle, domain.ConnectionSession{}, false)
	assert.Equal(t, StatusResponse{State: "idle"}, got)

	got = toStatusResponse(domain.StateSucceeded, domain.ConnectionSession{Mode: domain.ModeCloud}, true)
	assert.Equal(t, StatusResponse{State: "succeeded", Configured: true, Mode: service.Ptr("internet")}, got)
}
