package handlers

import (
	"testing"

	"reeferlink/domain"
	"reeferlink/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConnectRequest(t *testing.T) {
	tests := []struct {
		name          string
		request       ConnectRequest
		expected      connectTarget
		expectedError string
	}{
		{
			name:     "no mode",
			request:  ConnectRequest{},
			expected: connectTarget{hint: domain.ModeHintNone},
		},
		{
			name:     "local",
			request:  ConnectRequest{Mode: service.Ptr("local")},
			expected: connectTarget{hint: domain.ModeHintLocal},
		},
		{
			name:     "internet is cloud",
			request:  ConnectRequest{Mode: service.Ptr("internet")},
			expected: connectTarget{hint: domain.ModeHintCloud},
		},
		{
			name:     "address without mode",
			request:  ConnectRequest{Address: service.Ptr("reefer.local")},
			expected: connectTarget{address: "reefer.local"},
		},
		{
			name:     "address is trimmed",
			request:  ConnectRequest{Mode: service.Ptr("local"), Address: service.Ptr("  10.0.0.100 ")},
			expected: connectTarget{hint: domain.ModeHintLocal, address: "10.0.0.100"},
		},
		{
			name:          "unknown mode",
			request:       ConnectRequest{Mode: service.Ptr("wifi")},
			expectedError: "mode must be local or cloud",
		},
		{
			name:          "blank address",
			request:       ConnectRequest{Address: service.Ptr("   ")},
			expectedError: "address must not be empty",
		},
		{
			name:          "address in cloud mode",
			request:       ConnectRequest{Mode: service.Ptr("cloud"), Address: service.Ptr("10.0.0.1")},
			expectedError: "address is only valid in local mode",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fromConnectRequest(tt.request)
			if tt.expectedError != "" {
				require.Error(t, err)
				myErr := service.ToMyError(err)
				require.NotNil(t, myErr)
				assert.Equal(t, service.ErrBadParameter, myErr.Code)
				assert.Equal(t, tt.expectedError, myErr.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
