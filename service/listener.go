package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"reeferlink/domain"
	"reeferlink/helpers"
	"reeferlink/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// ServiceDiscoveryListener turns raw multicast announcements into at most one local candidate.
type ServiceDiscoveryListener struct {
	browser     interfaces.Browser
	resolver    interfaces.HostResolver
	serviceType string
	token       string
	logger      log.Logger
}

// NewServiceDiscoveryListener creates a listener browsing serviceType (e.g. "_http._tcp") for
// announcements whose name contains token. resolver is optional and only used for announcements
// that carry a host name but no resolved address.
func NewServiceDiscoveryListener(
	browser interfaces.Browser,
	resolver interfaces.HostResolver,
	serviceType string,
	token string,
	logger log.Logger,
) *ServiceDiscoveryListener {
	return &ServiceDiscoveryListener{
		browser:     helpers.NilPanic(browser, "service.listener.go: browser is required"),
		resolver:    resolver,
		serviceType: helpers.StrPanic(serviceType, "service.listener.go: serviceType is required"),
		token:       strings.ToLower(helpers.StrPanic(token, "service.listener.go: token is required")),
		logger:      log.With(helpers.NilPanic(logger, "service.listener.go: logger is required"), "component", "listener"),
	}
}

// ListenerHandle controls one browse session.
type ListenerHandle struct {
	cancel   context.CancelFunc
	stopOnce sync.Once
	done     chan struct{}
}

// Stop ends browsing. Safe to call any number of times, from any goroutine.
func (h *ListenerHandle) Stop() {
	h.stopOnce.Do(h.cancel)
}

// Done is closed once browsing has ended and no further callback will fire.
func (h *ListenerHandle) Done() <-chan struct{} {
	return h.done
}

// Start begins browsing and returns immediately.
//
// onFound fires at most once, from the listener goroutine, for the first matching announcement
// that resolves to an address; the listener stops itself right after. When the browse facility
// cannot start, onError is called before Start returns with a discovery_facility_unavailable
// error and the returned handle is already done.
func (l *ServiceDiscoveryListener) Start(ctx context.Context, onFound func(domain.Candidate), onError func(error)) *ListenerHandle {
	ctx, cancel := context.WithCancel(ctx)
	h := &ListenerHandle{cancel: cancel, done: make(chan struct{})}

	announcements, err := l.browser.Browse(ctx, l.serviceType)
	if err != nil {
		h.Stop()
		close(h.done)
		_ = level.Warn(l.logger).Log("msg", "service discovery unavailable", "service", l.serviceType, "err", err)
		if onError != nil {
			onError(NewDiscoveryFacilityUnavailableError(err))
		}
		return h
	}

	go l.listen(ctx, h, announcements, onFound)
	return h
}

func (l *ServiceDiscoveryListener) listen(ctx context.Context, h *ListenerHandle, announcements <-chan domain.ServiceAnnouncement, onFound func(domain.Candidate)) {
	defer close(h.done)
	defer h.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case a, ok := <-announcements:
			if !ok {
				return
			}
			if !strings.Contains(strings.ToLower(a.ServiceName), l.token) {
				continue
			}
			host, err := l.resolve(ctx, a)
			if err != nil {
				_ = level.Debug(l.logger).Log("msg", "announcement not resolved", "name", a.ServiceName, "err", err)
				continue
			}
			if ctx.Err() != nil {
				return
			}
			_ = level.Info(l.logger).Log("msg", "device announced", "name", a.ServiceName, "address", host)
			if onFound != nil {
				onFound(domain.Candidate{
					Address:  host,
					Protocol: domain.ProtocolHTTP,
					Mode:     domain.ModeLocal,
					Source:   domain.SourceAnnouncement,
				})
			}
			return
		}
	}
}

func (l *ServiceDiscoveryListener) resolve(ctx context.Context, a domain.ServiceAnnouncement) (string, error) {
	if a.ResolvedHost != "" {
		return a.ResolvedHost, nil
	}
	if a.HostName == "" {
		return "", errors.New("announcement has no host")
	}
	if l.resolver == nil {
		return "", errors.New("no resolver for " + a.HostName)
	}
	host, err := l.resolver.LookupHost(ctx, a.HostName)
	if err != nil {
		return "", err
	}
	return domain.JoinPort(host, a.Port), nil
}
