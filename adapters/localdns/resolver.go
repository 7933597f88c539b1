// Package localdns answers ".local" host lookups with a one-shot multicast DNS query.
package localdns

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"reeferlink/helpers"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/miekg/dns"
)

// MulticastAddr is the IPv4 mDNS group.
const MulticastAddr = "224.0.0.251:5353"

// qclassUnicastResponse is the mDNS "QU" bit: responders answer the querying socket directly.
const qclassUnicastResponse = 1 << 15

// Resolver implements interfaces.HostResolver.
type Resolver struct {
	server  string
	timeout time.Duration
	logger  log.Logger
}

// NewResolver creates a resolver querying server (normally MulticastAddr). timeout bounds a lookup
// when the caller's context has no earlier deadline.
func NewResolver(server string, timeout time.Duration, logger log.Logger) *Resolver {
	return &Resolver{
		server:  helpers.StrPanic(server, "adapters.localdns: server is required"),
		timeout: helpers.DurationPanic(timeout, "adapters.localdns: timeout must be positive"),
		logger:  log.With(helpers.NilPanic(logger, "adapters.localdns: logger is required"), "component", "localdns"),
	}
}

// LookupHost implements interfaces.HostResolver.
func (r *Resolver) LookupHost(ctx context.Context, host string) (string, error) {
	name := dns.Fqdn(strings.ToLower(host))
	dst, err := net.ResolveUDPAddr("udp4", r.server)
	if err != nil {
		return "", err
	}

	query := new(dns.Msg)
	query.SetQuestion(name, dns.TypeA)
	query.Id = 0
	query.RecursionDesired = false
	query.Question[0].Qclass |= qclassUnicastResponse
	packed, err := query.Pack()
	if err != nil {
		return "", fmt.Errorf("pack query: %w", err)
	}

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero})
	if err != nil {
		return "", fmt.Errorf("open socket: %w", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(r.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	if _, err := conn.WriteTo(packed, dst); err != nil {
		return "", fmt.Errorf("send query: %w", err)
	}

	buf := make([]byte, dns.MaxMsgSize)
	for {
		n, _, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return "", fmt.Errorf("no answer for %s", name)
			}
			return "", err
		}
		resp := new(dns.Msg)
		if err := resp.Unpack(buf[:n]); err != nil {
			_ = level.Debug(r.logger).Log("msg", "ignoring malformed packet", "err", err)
			continue
		}
		if ip, ok := ParseAnswer(resp, name); ok {
			return ip, nil
		}
	}
}

// ParseAnswer returns the first A record for name found in the answer or additional sections.
func ParseAnswer(msg *dns.Msg, name string) (string, bool) {
	if !msg.Response {
		return "", false
	}
	for _, section := range [][]dns.RR{msg.Answer, msg.Extra} {
		for _, rr := range section {
			a, ok := rr.(*dns.A)
			if ok && strings.EqualFold(a.Hdr.Name, name) {
				return a.A.String(), true
			}
		}
	}
	return "", false
}
