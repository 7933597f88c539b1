// Package mdnsbrowser implements interfaces.Browser with repeated multicast DNS queries.
package mdnsbrowser

import (
	"context"
	"errors"
	"net"
	"time"

	"reeferlink/domain"
	"reeferlink/helpers"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/hashicorp/mdns"
)

const (
	defaultDomain   = "local"
	defaultInterval = time.Second
)

// Browser re-issues an mDNS query every interval until the browse context ends. Each query
// blocks for one interval, so cancellation is noticed between rounds.
type Browser struct {
	domain     string
	interval   time.Duration
	logger     log.Logger
	query      func(params *mdns.QueryParam) error
	interfaces func() ([]net.Interface, error)
}

// Option configures a Browser.
type Option func(*Browser)

// WithInterval sets how long each query listens for answers.
func WithInterval(d time.Duration) Option {
	return func(b *Browser) { b.interval = d }
}

func NewBrowser(logger log.Logger, opts ...Option) *Browser {
	b := &Browser{
		domain:     defaultDomain,
		interval:   defaultInterval,
		logger:     log.With(helpers.NilPanic(logger, "adapters.mdnsbrowser: logger is required"), "component", "mdns_browser"),
		query:      mdns.Query,
		interfaces: net.Interfaces,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Browse implements interfaces.Browser. It fails up front when no interface can send multicast.
func (b *Browser) Browse(ctx context.Context, serviceType string) (<-chan domain.ServiceAnnouncement, error) {
	if err := b.checkMulticast(); err != nil {
		return nil, err
	}
	out := make(chan domain.ServiceAnnouncement, 8)
	go b.loop(ctx, serviceType, out)
	return out, nil
}

func (b *Browser) loop(ctx context.Context, serviceType string, out chan<- domain.ServiceAnnouncement) {
	defer close(out)

	entries := make(chan *mdns.ServiceEntry, 16)
	for ctx.Err() == nil {
		params := &mdns.QueryParam{
			Service:     serviceType,
			Domain:      b.domain,
			Timeout:     b.interval,
			Entries:     entries,
			DisableIPv6: true,
		}
		queryDone := make(chan error, 1)
		go func() { queryDone <- b.query(params) }()

		if !b.forward(ctx, entries, queryDone, out, serviceType) {
			return
		}
	}
}

// forward passes entries on until the current query returns. It reports false when browsing must end.
func (b *Browser) forward(
	ctx context.Context,
	entries <-chan *mdns.ServiceEntry,
	queryDone <-chan error,
	out chan<- domain.ServiceAnnouncement,
	serviceType string,
) bool {
	for {
		select {
		case e := <-entries:
			select {
			case out <- Announcement(e):
			case <-ctx.Done():
				drainUntil(entries, queryDone)
				return false
			}
		case err := <-queryDone:
			if err != nil {
				_ = level.Warn(b.logger).Log("msg", "mdns query failed", "service", serviceType, "err", err)
				return false
			}
			return ctx.Err() == nil
		}
	}
}

// drainUntil discards entries until the in-flight query returns.
func drainUntil(entries <-chan *mdns.ServiceEntry, queryDone <-chan error) {
	for {
		select {
		case <-entries:
		case <-queryDone:
			return
		}
	}
}

func (b *Browser) checkMulticast() error {
	ifaces, err := b.interfaces()
	if err != nil {
		return err
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp != 0 && iface.Flags&net.FlagMulticast != 0 && iface.Flags&net.FlagLoopback == 0 {
			return nil
		}
	}
	return errors.New("no multicast capable network interface is up")
}

// Announcement converts an mDNS answer. The port is kept only when it is not the HTTP default.
func Announcement(e *mdns.ServiceEntry) domain.ServiceAnnouncement {
	a := domain.ServiceAnnouncement{
		ServiceName: e.Name,
		HostName:    e.Host,
	}
	if e.Port != 80 {
		a.Port = e.Port
	}
	if e.AddrV4 != nil {
		a.ResolvedHost = domain.JoinPort(e.AddrV4.String(), a.Port)
	}
	return a
}
