package interfaces

import "context"

// HostResolver resolves ".local" host names over multicast DNS.
//
//go:generate moq -stub -out mock/host_resolver.go -pkg mock . HostResolver
type HostResolver interface {
	// LookupHost returns the first IPv4 address answered for host, or an error when nothing answered before ctx ended.
	LookupHost(ctx context.Context, host string) (string, error)
}
