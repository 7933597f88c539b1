package service

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reeferlink/domain"
	"reeferlink/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serverCandidate(t *testing.T, srv *httptest.Server) domain.Candidate {
	t.Helper()
	host := srv.Listener.Addr().String()
	return domain.Candidate{Address: host, Protocol: domain.ProtocolHTTP, Mode: domain.ModeLocal, Source: domain.SourceScan}
}

func TestHTTPProber_Probe_OK(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"device":"reefer"}`))
	}))
	defer srv.Close()

	p := NewHTTPProber(nil, "", log.NewNopLogger())
	assert.Equal(t, domain.Reachable, p.Probe(context.Background(), serverCandidate(t, srv), time.Second))
	assert.Equal(t, "/api/status", gotPath)
}

func TestHTTPProber_Probe_NonOKIsUnreachable(t *testing.T) {
	for _, status := range []int{http.StatusNoContent, http.StatusUnauthorized, http.StatusNotFound, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		p := NewHTTPProber(nil, "", log.NewNopLogger())
		assert.Equal(t, domain.Unreachable, p.Probe(context.Background(), serverCandidate(t, srv), time.Second), status)
		srv.Close()
	}
}

func TestHTTPProber_RedirectIsUnreachable(t *testing.T) {
	var portalHits int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/portal", http.StatusFound)
	})
	mux.HandleFunc("/portal", func(w http.ResponseWriter, r *http.Request) {
		portalHits++
		_, _ = w.Write([]byte("captive portal"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewHTTPProber(nil, "", log.NewNopLogger())
	assert.Equal(t, domain.Unreachable, p.Probe(context.Background(), serverCandidate(t, srv), time.Second))
	assert.Zero(t, portalHits)
}

func TestHTTPProber_Probe_RefusedIsUnreachable(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	p := NewHTTPProber(nil, "", log.NewNopLogger())
	c := domain.Candidate{Address: addr, Mode: domain.ModeLocal}
	assert.Equal(t, domain.Unreachable, p.Probe(context.Background(), c, time.Second))
}

func TestHTTPProber_Probe_SlowIsTimedOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	p := NewHTTPProber(nil, "", log.NewNopLogger())
	start := time.Now()
	assert.Equal(t, domain.TimedOut, p.Probe(context.Background(), serverCandidate(t, srv), 50*time.Millisecond))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestHTTPProber_Probe_ParentDeadlineIsTimedOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	p := NewHTTPProber(nil, "", log.NewNopLogger())
	assert.Equal(t, domain.TimedOut, p.Probe(ctx, serverCandidate(t, srv), 5*time.Second))
}

func TestHTTPProber_Probe_CloudHeaders(t *testing.T) {
	var apikey, auth, query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apikey = r.Header.Get("apikey")
		auth = r.Header.Get("Authorization")
		query = r.URL.RawQuery
		if r.URL.Path != "/rest/v1/devices" || auth != "Bearer anon-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := domain.Candidate{Address: srv.URL, Mode: domain.ModeCloud, Source: domain.SourceCloud, Organization: "parametican"}

	p := NewHTTPProber(nil, "anon-key", log.NewNopLogger())
	assert.Equal(t, domain.Reachable, p.Probe(context.Background(), c, time.Second))
	assert.Equal(t, "anon-key", apikey)
	assert.Equal(t, "org_slug=eq.parametican&limit=1", query)

	wrong := NewHTTPProber(nil, "other", log.NewNopLogger())
	assert.Equal(t, domain.Unreachable, wrong.Probe(context.Background(), c, time.Second))
}

func TestHTTPProber_Probe_ResolvesMulticastNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()
	_, port, err := net.SplitHostPort(srv.Listener.Addr().String())
	require.NoError(t, err)

	resolver := &mock.HostResolverMock{
		LookupHostFunc: func(ctx context.Context, host string) (string, error) {
			if host == "reefer.local" {
				return "127.0.0.1", nil
			}
			return "", errors.New("no answer")
		},
	}
	p := NewHTTPProber(resolver, "", log.NewNopLogger())
	c := domain.Candidate{Address: "reefer.local:" + port, Mode: domain.ModeLocal, Source: domain.SourceHostname}
	assert.Equal(t, domain.Reachable, p.Probe(context.Background(), c, time.Second))
	require.Len(t, resolver.LookupHostCalls(), 1)
	assert.Equal(t, "reefer.local", resolver.LookupHostCalls()[0].Host)
}

func TestIsMulticastName(t *testing.T) {
	assert.True(t, IsMulticastName("reefer.local"))
	assert.True(t, IsMulticastName("Reefer.Local."))
	assert.False(t, IsMulticastName("192.168.1.100"))
	assert.False(t, IsMulticastName("local"))
}

func TestProxyFor_SkipsLocalHosts(t *testing.T) {
	t.Setenv("HTTP_PROXY", "http://proxy.example:3128")
	for _, target := range []string{"http://reefer.local/api/status", "http://192.168.1.100/api/status", "http://10.0.0.1:8080/api/status"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		u, err := proxyFor(req)
		require.NoError(t, err)
		assert.Nil(t, u, target)
	}
}
