package domain

import (
	"net"
	"net/url"
	"strconv"
	"strings"
)

// CandidateSource tells where a candidate came from.
type CandidateSource string

const (
	SourcePrior        CandidateSource = "prior"
	SourceHostname     CandidateSource = "hostname"
	SourceGateway      CandidateSource = "gateway"
	SourceScan         CandidateSource = "scan"
	SourceManual       CandidateSource = "manual"
	SourceAnnouncement CandidateSource = "announcement"
	SourceCloud        CandidateSource = "cloud"
)

// ProtocolHTTP is the only protocol hint candidates carry today.
const ProtocolHTTP = "http"

// Candidate is one address proposed for a reachability check.
// Address is host[:port] for local candidates and the cloud base URL for cloud candidates.
type Candidate struct {
	Address      string
	Protocol     string
	Mode         ConnectionMode
	Source       CandidateSource
	Organization string // cloud only
}

// StatusURL returns the URL a probe requests for this candidate.
func (c Candidate) StatusURL() string {
	if c.Mode == ModeCloud {
		return strings.TrimRight(c.Address, "/") + "/rest/v1/devices?org_slug=eq." + url.QueryEscape(c.Organization) + "&limit=1"
	}
	protocol := c.Protocol
	if protocol == "" {
		protocol = ProtocolHTTP
	}
	return protocol + "://" + c.Address + "/api/status"
}

// ServiceAnnouncement is one multicast service announcement.
// HostName is the advertised target (e.g. "reefer.local."); ResolvedHost is a concrete address when known,
// already joined with Port. Port is 0 for the HTTP default.
type ServiceAnnouncement struct {
	ServiceName  string
	HostName     string
	ResolvedHost string
	Port         int
}

// JoinPort returns host, or host:port when port is set and not the HTTP default.
func JoinPort(host string, port int) string {
	if port == 0 || port == 80 {
		return host
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}
