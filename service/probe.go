package service

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reeferlink/domain"
	"reeferlink/helpers"
	"reeferlink/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// maxDrainBytes bounds how much of a status body is read before the connection is closed.
const maxDrainBytes = 64 << 10

// HTTPProber implements interfaces.Prober with plain GET requests against a candidate's status URL.
type HTTPProber struct {
	client   *http.Client
	resolver interfaces.HostResolver
	apiKey   string
	dialer   *net.Dialer
	logger   log.Logger
}

// NewHTTPProber creates a prober. resolver may be nil, in which case ".local" names go to the
// system resolver. cloudAPIKey is sent as "apikey" and bearer token on cloud candidates.
func NewHTTPProber(resolver interfaces.HostResolver, cloudAPIKey string, logger log.Logger) *HTTPProber {
	p := &HTTPProber{
		resolver: resolver,
		apiKey:   cloudAPIKey,
		dialer:   &net.Dialer{KeepAlive: -1},
		logger:   log.With(helpers.NilPanic(logger, "service.probe.go: logger is required"), "component", "prober"),
	}
	p.client = &http.Client{
		Transport: &http.Transport{
			Proxy:               proxyFor,
			DialContext:         p.dialContext,
			DisableKeepAlives:   true,
			TLSHandshakeTimeout: 5 * time.Second,
		},
		// Redirects are not followed; a 3xx status is unreachable.
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	return p
}

// Probe implements interfaces.Prober.
func (p *HTTPProber) Probe(ctx context.Context, candidate domain.Candidate, timeout time.Duration) domain.ProbeResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, candidate.StatusURL(), nil)
	if err != nil {
		_ = level.Debug(p.logger).Log("msg", "bad status url", "address", candidate.Address, "err", err)
		return domain.Unreachable
	}
	if candidate.Mode == domain.ModeCloud && p.apiKey != "" {
		req.Header.Set("apikey", p.apiKey)
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return domain.TimedOut
		}
		_ = level.Debug(p.logger).Log("msg", "probe failed", "address", candidate.Address, "err", err)
		return domain.Unreachable
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	if resp.StatusCode == http.StatusOK {
		return domain.Reachable
	}
	_ = level.Debug(p.logger).Log("msg", "probe rejected", "address", candidate.Address, "status", resp.StatusCode)
	return domain.Unreachable
}

// dialContext sends ".local" names through the multicast resolver first.
func (p *HTTPProber) dialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	if p.resolver != nil {
		host, port, err := net.SplitHostPort(addr)
		if err == nil && IsMulticastName(host) {
			ip, lookupErr := p.resolver.LookupHost(ctx, host)
			if lookupErr == nil {
				addr = net.JoinHostPort(ip, port)
			} else {
				_ = level.Debug(p.logger).Log("msg", "multicast lookup failed, using system resolver", "host", host, "err", lookupErr)
			}
		}
	}
	return p.dialer.DialContext(ctx, network, addr)
}

// proxyFor keeps LAN probes off any configured proxy.
func proxyFor(req *http.Request) (*url.URL, error) {
	host := req.URL.Hostname()
	if IsMulticastName(host) {
		return nil, nil
	}
	if ip := net.ParseIP(host); ip != nil && (ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast()) {
		return nil, nil
	}
	return http.ProxyFromEnvironment(req)
}

// IsMulticastName reports whether host is in the ".local" multicast DNS domain.
func IsMulticastName(host string) bool {
	return strings.HasSuffix(strings.TrimSuffix(strings.ToLower(host), "."), ".local")
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
