package service

import (
	"context"
	"maps"
	"sync"
	"testing"
	"time"

	"reeferlink/domain"
	"reeferlink/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryBackend returns a SessionBackendMock backed by a map, replacing fields wholesale on write.
func memoryBackend(initial map[string]string) *mock.SessionBackendMock {
	var mu sync.Mutex
	data := map[string]map[string]string{}
	if initial != nil {
		data["frioseguro"] = maps.Clone(initial)
	}
	return &mock.SessionBackendMock{
		ReadSessionFunc: func(ctx context.Context, scope string) (map[string]string, error) {
			mu.Lock()
			defer mu.Unlock()
			return maps.Clone(data[scope]), nil
		},
		WriteSessionFunc: func(ctx context.Context, scope string, fields map[string]string) error {
			mu.Lock()
			defer mu.Unlock()
			data[scope] = maps.Clone(fields)
			return nil
		},
		DeleteSessionFunc: func(ctx context.Context, scope string) error {
			mu.Lock()
			defer mu.Unlock()
			delete(data, scope)
			return nil
		},
	}
}

func newTestStore(t *testing.T, backend *mock.SessionBackendMock) *SessionStore {
	t.Helper()
	s := NewSessionStore(backend, "frioseguro", log.NewNopLogger())
	require.NoError(t, s.Open(context.Background()))
	return s
}

func TestSessionStore_CommitLoadRoundTrip(t *testing.T) {
	backend := memoryBackend(nil)
	s := newTestStore(t, backend)

	_, ok := s.Load()
	assert.False(t, ok)

	session := domain.ConnectionSession{
		Mode:         domain.ModeLocal,
		Address:      "192.168.1.100",
		Organization: "parametican",
		Configured:   true,
		ConfiguredAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.Commit(context.Background(), session))

	got, ok := s.Load()
	require.True(t, ok)
	assert.Equal(t, session, got)

	reopened := newTestStore(t, backend)
	got, ok = reopened.Load()
	require.True(t, ok)
	assert.Equal(t, session, got)
}

func TestSessionStore_Commit_InvalidSessionLeavesStateUnchanged(t *testing.T) {
	backend := memoryBackend(nil)
	s := newTestStore(t, backend)

	err := s.Commit(context.Background(), domain.ConnectionSession{Mode: domain.ModeLocal, Configured: true})
	assert.True(t, IsBadParameterError(err))
	assert.Empty(t, backend.WriteSessionCalls())
	_, ok := s.Load()
	assert.False(t, ok)
}

func TestSessionStore_Commit_BackendFailureKeepsSnapshot(t *testing.T) {
	backend := memoryBackend(nil)
	s := newTestStore(t, backend)
	first := domain.ConnectionSession{Mode: domain.ModeLocal, Address: "reefer.local", Configured: true}
	require.NoError(t, s.Commit(context.Background(), first))

	backend.WriteSessionFunc = func(ctx context.Context, scope string, fields map[string]string) error {
		return assert.AnError
	}
	err := s.Commit(context.Background(), domain.ConnectionSession{Mode: domain.ModeCloud, CloudEndpoint: "https://x.supabase.co", Configured: true})
	assert.True(t, IsInternalServerError(err))

	got, ok := s.Load()
	require.True(t, ok)
	assert.Equal(t, first, got)
}

func TestSessionStore_Clear(t *testing.T) {
	backend := memoryBackend(EncodeSession(domain.ConnectionSession{Mode: domain.ModeLocal, Address: "192.168.4.1", Configured: true}))
	s := newTestStore(t, backend)
	_, ok := s.Load()
	require.True(t, ok)

	require.NoError(t, s.Clear(context.Background()))
	_, ok = s.Load()
	assert.False(t, ok)
	require.Len(t, backend.DeleteSessionCalls(), 1)
	assert.Equal(t, "frioseguro", backend.DeleteSessionCalls()[0].Scope)
}

func TestSessionStore_Open_ReadFailure(t *testing.T) {
	backend := &mock.SessionBackendMock{
		ReadSessionFunc: func(ctx context.Context, scope string) (map[string]string, error) {
			return nil, assert.AnError
		},
	}
	s := NewSessionStore(backend, "frioseguro", log.NewNopLogger())
	assert.True(t, IsInternalServerError(s.Open(context.Background())))
}

func TestSessionStore_Open_IgnoresInconsistentFields(t *testing.T) {
	backend := memoryBackend(map[string]string{
		FieldLoggedIn:       "true",
		FieldConnectionMode: "local",
	})
	s := newTestStore(t, backend)
	_, ok := s.Load()
	assert.False(t, ok)
}

func TestSessionStore_ConcurrentLoadSeesWholeSessions(t *testing.T) {
	s := newTestStore(t, memoryBackend(nil))
	local := domain.ConnectionSession{Mode: domain.ModeLocal, Address: "192.168.1.100", Configured: true}
	cloud := domain.ConnectionSession{Mode: domain.ModeCloud, CloudEndpoint: "https://x.supabase.co", CloudAPIKey: "k", Configured: true}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			if got, ok := s.Load(); ok {
				assert.NoError(t, got.Validate())
			}
		}
	}()
	for i := 0; i < 200; i++ {
		next := local
		if i%2 == 1 {
			next = cloud
		}
		require.NoError(t, s.Commit(context.Background(), next))
	}
	close(stop)
	wg.Wait()
}

func TestDecodeSession(t *testing.T) {
	_, ok, err := DecodeSession(nil)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = DecodeSession(map[string]string{FieldLoggedIn: "false", FieldConnectionMode: "local", FieldServerIP: "x"})
	assert.NoError(t, err)
	assert.False(t, ok)

	// The mobile apps keep server_ip around after switching to the cloud.
	session, ok, err := DecodeSession(map[string]string{
		FieldLoggedIn:       "true",
		FieldModeSelected:   "true",
		FieldConnectionMode: "internet",
		FieldServerIP:       "192.168.1.100",
		FieldSupabaseURL:    "https://x.supabase.co",
		FieldSupabaseKey:    "anon",
		FieldOrgSlug:        "parametican",
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.ConnectionSession{
		Mode:          domain.ModeCloud,
		CloudEndpoint: "https://x.supabase.co",
		CloudAPIKey:   "anon",
		Organization:  "parametican",
		Configured:    true,
	}, session)

	_, _, err = DecodeSession(map[string]string{FieldLoggedIn: "true", FieldConnectionMode: "lan"})
	assert.Error(t, err)
}

func TestEncodeSession(t *testing.T) {
	fields := EncodeSession(domain.ConnectionSession{
		Mode:         domain.ModeLocal,
		Address:      "192.168.1.100",
		Organization: "parametican",
		Configured:   true,
	})
	assert.Equal(t, map[string]string{
		FieldConnectionMode: "local",
		FieldServerIP:       "192.168.1.100",
		FieldOrgSlug:        "parametican",
		FieldModeSelected:   "true",
		FieldLoggedIn:       "true",
	}, fields)
}
