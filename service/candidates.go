package service

import (
	"fmt"
	"strings"

	"reeferlink/domain"
)

// CandidateConfig lists where the generator looks for a device and which cloud tenant it checks.
type CandidateConfig struct {
	// Hostname is the well-known multicast name the device advertises.
	Hostname string
	// Gateway is the device's own access point address, reachable while joined to its setup network.
	Gateway string
	// SubnetPrefixes and HostSuffixes span the fallback scan: every prefix is combined with every suffix.
	SubnetPrefixes []string
	HostSuffixes   []string
	// ExtraAddresses are probed right after the gateway, before the scan. Entries may carry a port.
	ExtraAddresses []string

	CloudBaseURL string
	Organization string
}

// DefaultCandidateConfig returns the documented local search list.
func DefaultCandidateConfig() CandidateConfig {
	return CandidateConfig{
		Hostname:       "reefer.local",
		Gateway:        "192.168.4.1",
		SubnetPrefixes: []string{"192.168.1", "192.168.0", "10.0.0", "10.0.1"},
		HostSuffixes:   []string{"100", "50", "1"},
	}
}

// CandidateGenerator produces ordered, de-duplicated candidate sequences.
type CandidateGenerator struct {
	cfg CandidateConfig
}

func NewCandidateGenerator(cfg CandidateConfig) *CandidateGenerator {
	return &CandidateGenerator{cfg: cfg}
}

// Generate returns the candidates for mode. priorAddress is the last committed local address and
// may be empty; it is ignored for cloud.
func (g *CandidateGenerator) Generate(mode domain.ConnectionMode, priorAddress string) *CandidateSeq {
	switch mode {
	case domain.ModeLocal:
		return g.local(priorAddress)
	case domain.ModeCloud:
		return g.cloud()
	default:
		return newCandidateSeq(nil, nil)
	}
}

// Single returns a sequence holding one explicitly chosen local address.
func (g *CandidateGenerator) Single(address string, source domain.CandidateSource) *CandidateSeq {
	return newCandidateSeq([]domain.Candidate{localCandidate(address, source)}, nil)
}

func (g *CandidateGenerator) local(prior string) *CandidateSeq {
	head := make([]domain.Candidate, 0, 3+len(g.cfg.ExtraAddresses))
	if prior != "" {
		head = append(head, localCandidate(prior, domain.SourcePrior))
	}
	if g.cfg.Hostname != "" {
		head = append(head, localCandidate(g.cfg.Hostname, domain.SourceHostname))
	}
	if g.cfg.Gateway != "" {
		head = append(head, localCandidate(g.cfg.Gateway, domain.SourceGateway))
	}
	for _, addr := range g.cfg.ExtraAddresses {
		head = append(head, localCandidate(addr, domain.SourceScan))
	}
	return newCandidateSeq(head, &subnetScan{prefixes: g.cfg.SubnetPrefixes, suffixes: g.cfg.HostSuffixes})
}

func (g *CandidateGenerator) cloud() *CandidateSeq {
	base := strings.TrimRight(strings.TrimSpace(g.cfg.CloudBaseURL), "/")
	org := strings.TrimSpace(g.cfg.Organization)
	if base == "" || org == "" {
		return newCandidateSeq(nil, nil)
	}
	return newCandidateSeq([]domain.Candidate{{
		Address:      base,
		Protocol:     domain.ProtocolHTTP,
		Mode:         domain.ModeCloud,
		Source:       domain.SourceCloud,
		Organization: org,
	}}, nil)
}

func localCandidate(address string, source domain.CandidateSource) domain.Candidate {
	return domain.Candidate{
		Address:  address,
		Protocol: domain.ProtocolHTTP,
		Mode:     domain.ModeLocal,
		Source:   source,
	}
}

// NormalizeAddress trims, lower-cases and strips an "http://" scheme and trailing slashes from a
// local address. Any other scheme is left in place; see CheckLocalAddress. Cloud base URLs are not
// passed through it.
func NormalizeAddress(address string) string {
	a := strings.ToLower(strings.TrimSpace(address))
	a = strings.TrimPrefix(a, "http://")
	return strings.TrimRight(a, "/")
}

// CheckLocalAddress returns a bad_parameter error for an empty address or one carrying a scheme
// other than http. The device serves plain HTTP only.
func CheckLocalAddress(address string) error {
	a := NormalizeAddress(address)
	if a == "" {
		return NewBadParameterError("address is required", nil)
	}
	if i := strings.Index(a, "://"); i >= 0 {
		return NewBadParameterError(fmt.Sprintf("unsupported scheme %q, only http is served", a[:i]), nil)
	}
	return nil
}

// subnetScan lazily walks prefixes x suffixes.
type subnetScan struct {
	prefixes []string
	suffixes []string
	p, s     int
}

func (sc *subnetScan) next() (string, bool) {
	if len(sc.suffixes) == 0 || sc.p >= len(sc.prefixes) {
		return "", false
	}
	addr := strings.TrimSuffix(sc.prefixes[sc.p], ".") + "." + sc.suffixes[sc.s]
	sc.s++
	if sc.s == len(sc.suffixes) {
		sc.s = 0
		sc.p++
	}
	return addr, true
}

// CandidateSeq is a finite, lazily produced candidate sequence. It is not safe for concurrent use;
// the orchestrator drains it from a single goroutine.
type CandidateSeq struct {
	head []domain.Candidate
	scan *subnetScan
	seen map[string]struct{}
}

func newCandidateSeq(head []domain.Candidate, scan *subnetScan) *CandidateSeq {
	return &CandidateSeq{head: head, scan: scan, seen: make(map[string]struct{})}
}

// Next returns the next unseen candidate; ok is false once the sequence is exhausted.
func (q *CandidateSeq) Next() (c domain.Candidate, ok bool) {
	for {
		c, ok = q.raw()
		if !ok {
			return domain.Candidate{}, false
		}
		if c.Mode == domain.ModeLocal {
			if CheckLocalAddress(c.Address) != nil {
				continue
			}
			c.Address = NormalizeAddress(c.Address)
		}
		if c.Address == "" {
			continue
		}
		if _, dup := q.seen[c.Address]; dup {
			continue
		}
		q.seen[c.Address] = struct{}{}
		return c, true
	}
}

func (q *CandidateSeq) raw() (domain.Candidate, bool) {
	if len(q.head) > 0 {
		c := q.head[0]
		q.head = q.head[1:]
		return c, true
	}
	if q.scan == nil {
		return domain.Candidate{}, false
	}
	addr, ok := q.scan.next()
	if !ok {
		return domain.Candidate{}, false
	}
	return localCandidate(addr, domain.SourceScan), true
}
