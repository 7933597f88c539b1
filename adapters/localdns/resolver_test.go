package localdns

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResponder answers A queries for reefer.local. from a loopback socket.
func fakeResponder(t *testing.T, answer bool) string {
	t.Helper()
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	go func() {
		buf := make([]byte, dns.MaxMsgSize)
		for {
			n, from, err := conn.ReadFrom(buf)
			if err != nil {
				return
			}
			query := new(dns.Msg)
			if query.Unpack(buf[:n]) != nil || len(query.Question) != 1 {
				continue
			}
			q := query.Question[0]
			if q.Qclass&qclassUnicastResponse == 0 || q.Qtype != dns.TypeA || !answer {
				continue
			}
			resp := new(dns.Msg)
			resp.SetReply(query)
			resp.Answer = append(resp.Answer, &dns.A{
				Hdr: dns.RR_Header{Name: q.Name, Rrtype: dns.TypeA, Class: dns.ClassINET, Ttl: 120},
				A:   net.IPv4(192, 168, 1, 40),
			})
			packed, err := resp.Pack()
			if err != nil {
				continue
			}
			_, _ = conn.WriteTo(packed, from)
		}
	}()
	return conn.LocalAddr().String()
}

func TestResolver_LookupHost(t *testing.T) {
	r := NewResolver(fakeResponder(t, true), time.Second, log.NewNopLogger())
	ip, err := r.LookupHost(context.Background(), "Reefer.local")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.40", ip)
}

func TestResolver_LookupHost_NoAnswer(t *testing.T) {
	r := NewResolver(fakeResponder(t, false), 100*time.Millisecond, log.NewNopLogger())
	start := time.Now()
	_, err := r.LookupHost(context.Background(), "reefer.local")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestResolver_LookupHost_ContextCancelled(t *testing.T) {
	r := NewResolver(fakeResponder(t, false), 5*time.Second, log.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	_, err := r.LookupHost(ctx, "reefer.local")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseAnswer(t *testing.T) {
	msg := new(dns.Msg)
	msg.Response = true
	msg.Answer = []dns.RR{
		&dns.AAAA{Hdr: dns.RR_Header{Name: "reefer.local.", Rrtype: dns.TypeAAAA}, AAAA: net.ParseIP("fe80::1")},
	}
	msg.Extra = []dns.RR{
		&dns.A{Hdr: dns.RR_Header{Name: "other.local.", Rrtype: dns.TypeA}, A: net.IPv4(10, 0, 0, 9)},
		&dns.A{Hdr: dns.RR_Header{Name: "REEFER.local.", Rrtype: dns.TypeA}, A: net.IPv4(10, 0, 0, 1)},
	}
	ip, ok := ParseAnswer(msg, "reefer.local.")
	assert.True(t, ok)
	assert.Equal(t, "10.0.0.1", ip)

	msg.Response = false
	_, ok = ParseAnswer(msg, "reefer.local.")
	assert.False(t, ok)
}
