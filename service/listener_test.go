package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"reeferlink/domain"
	"reeferlink/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func browserFeeding(ch chan domain.ServiceAnnouncement) *mock.BrowserMock {
	return &mock.BrowserMock{
		BrowseFunc: func(ctx context.Context, serviceType string) (<-chan domain.ServiceAnnouncement, error) {
			return ch, nil
		},
	}
}

func waitDone(t *testing.T, h *ListenerHandle) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop")
	}
}

func TestListener_FirstMatchOnly(t *testing.T) {
	ch := make(chan domain.ServiceAnnouncement, 4)
	ch <- domain.ServiceAnnouncement{ServiceName: "printer", ResolvedHost: "192.168.1.9"}
	ch <- domain.ServiceAnnouncement{ServiceName: "Reefer-Camara1", ResolvedHost: "192.168.1.40"}
	ch <- domain.ServiceAnnouncement{ServiceName: "reefer-2", ResolvedHost: "192.168.1.41"}

	l := NewServiceDiscoveryListener(browserFeeding(ch), nil, "_http._tcp", "reefer", log.NewNopLogger())

	var calls atomic.Int32
	found := make(chan domain.Candidate, 2)
	h := l.Start(context.Background(), func(c domain.Candidate) {
		calls.Add(1)
		found <- c
	}, nil)
	waitDone(t, h)

	require.Equal(t, int32(1), calls.Load())
	c := <-found
	assert.Equal(t, domain.Candidate{
		Address:  "192.168.1.40",
		Protocol: domain.ProtocolHTTP,
		Mode:     domain.ModeLocal,
		Source:   domain.SourceAnnouncement,
	}, c)
}

func TestListener_ResolvesHostName(t *testing.T) {
	ch := make(chan domain.ServiceAnnouncement, 2)
	ch <- domain.ServiceAnnouncement{ServiceName: "reefer", HostName: "unknown.local."}
	ch <- domain.ServiceAnnouncement{ServiceName: "reefer", HostName: "reefer.local."}

	resolver := &mock.HostResolverMock{
		LookupHostFunc: func(ctx context.Context, host string) (string, error) {
			if host == "reefer.local." {
				return "192.168.0.23", nil
			}
			return "", errors.New("no answer")
		},
	}
	l := NewServiceDiscoveryListener(browserFeeding(ch), resolver, "_http._tcp", "REEFER", log.NewNopLogger())

	found := make(chan domain.Candidate, 1)
	h := l.Start(context.Background(), func(c domain.Candidate) { found <- c }, nil)
	waitDone(t, h)

	require.Len(t, found, 1)
	assert.Equal(t, "192.168.0.23", (<-found).Address)
	assert.Len(t, resolver.LookupHostCalls(), 2)
}

func TestListener_ResolvedHostNameKeepsAnnouncedPort(t *testing.T) {
	ch := make(chan domain.ServiceAnnouncement, 1)
	ch <- domain.ServiceAnnouncement{ServiceName: "reefer", HostName: "reefer.local.", Port: 3000}

	resolver := &mock.HostResolverMock{
		LookupHostFunc: func(ctx context.Context, host string) (string, error) {
			return "192.168.1.40", nil
		},
	}
	l := NewServiceDiscoveryListener(browserFeeding(ch), resolver, "_http._tcp", "reefer", log.NewNopLogger())

	found := make(chan domain.Candidate, 1)
	h := l.Start(context.Background(), func(c domain.Candidate) { found <- c }, nil)
	waitDone(t, h)

	require.Len(t, found, 1)
	assert.Equal(t, "192.168.1.40:3000", (<-found).Address)
}

func TestListener_StartFailure(t *testing.T) {
	browser := &mock.BrowserMock{
		BrowseFunc: func(ctx context.Context, serviceType string) (<-chan domain.ServiceAnnouncement, error) {
			return nil, errors.New("no multicast interface")
		},
	}
	l := NewServiceDiscoveryListener(browser, nil, "_http._tcp", "reefer", log.NewNopLogger())

	var gotErr error
	h := l.Start(context.Background(), func(domain.Candidate) { t.Error("onFound must not fire") }, func(err error) { gotErr = err })

	require.Error(t, gotErr)
	assert.True(t, IsDiscoveryFacilityUnavailableError(gotErr))
	select {
	case <-h.Done():
	default:
		t.Fatal("handle must already be done")
	}
	assert.NotPanics(t, h.Stop)
}

func TestListener_StopIsIdempotent(t *testing.T) {
	ch := make(chan domain.ServiceAnnouncement)
	l := NewServiceDiscoveryListener(browserFeeding(ch), nil, "_http._tcp", "reefer", log.NewNopLogger())

	h := l.Start(context.Background(), func(domain.Candidate) { t.Error("onFound must not fire") }, nil)
	h.Stop()
	h.Stop()
	waitDone(t, h)
	h.Stop()
}

func TestListener_ChannelClosed(t *testing.T) {
	ch := make(chan domain.ServiceAnnouncement)
	close(ch)
	l := NewServiceDiscoveryListener(browserFeeding(ch), nil, "_http._tcp", "reefer", log.NewNopLogger())
	waitDone(t, l.Start(context.Background(), nil, nil))
}

func TestListener_BrowsesServiceType(t *testing.T) {
	ch := make(chan domain.ServiceAnnouncement)
	browser := browserFeeding(ch)
	l := NewServiceDiscoveryListener(browser, nil, "_http._tcp", "reefer", log.NewNopLogger())
	h := l.Start(context.Background(), nil, nil)
	h.Stop()
	waitDone(t, h)

	require.Len(t, browser.BrowseCalls(), 1)
	assert.Equal(t, "_http._tcp", browser.BrowseCalls()[0].ServiceType)
}
