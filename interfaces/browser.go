package interfaces

import (
	"context"

	"reeferlink/domain"
)

// Browser is the multicast service discovery facility.
//
//go:generate moq -stub -out mock/browser.go -pkg mock . Browser
type Browser interface {
	// Browse starts browsing serviceType and streams raw announcements until ctx ends or the facility stops.
	// Returns:
	// 1) (channel, nil) once browsing started; the channel is closed when browsing ends;
	// 2) (nil, error) when the facility could not start (no multicast interface, socket error).
	Browse(ctx context.Context, serviceType string) (<-chan domain.ServiceAnnouncement, error)
}
