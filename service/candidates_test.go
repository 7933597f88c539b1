package service

import (
	"testing"

	"reeferlink/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(seq *CandidateSeq) []domain.Candidate {
	var out []domain.Candidate
	for {
		c, ok := seq.Next()
		if !ok {
			return out
		}
		out = append(out, c)
	}
}

func addresses(cs []domain.Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Address)
	}
	return out
}

func TestCandidateGenerator_LocalDefaultOrder(t *testing.T) {
	g := NewCandidateGenerator(DefaultCandidateConfig())
	got := drain(g.Generate(domain.ModeLocal, ""))

	assert.Equal(t, []string{
		"reefer.local", "192.168.4.1",
		"192.168.1.100", "192.168.1.50", "192.168.1.1",
		"192.168.0.100", "192.168.0.50", "192.168.0.1",
		"10.0.0.100", "10.0.0.50", "10.0.0.1",
		"10.0.1.100", "10.0.1.50", "10.0.1.1",
	}, addresses(got))
	assert.Equal(t, domain.SourceHostname, got[0].Source)
	assert.Equal(t, domain.SourceGateway, got[1].Source)
	assert.Equal(t, domain.SourceScan, got[2].Source)
	for _, c := range got {
		assert.Equal(t, domain.ModeLocal, c.Mode)
		assert.Equal(t, domain.ProtocolHTTP, c.Protocol)
	}
}

func TestCandidateGenerator_PriorFirstAndDeduplicated(t *testing.T) {
	g := NewCandidateGenerator(DefaultCandidateConfig())
	got := drain(g.Generate(domain.ModeLocal, " HTTP://192.168.1.100/ "))

	require.NotEmpty(t, got)
	assert.Equal(t, "192.168.1.100", got[0].Address)
	assert.Equal(t, domain.SourcePrior, got[0].Source)

	seen := map[string]int{}
	for _, c := range got {
		seen[c.Address]++
	}
	assert.Equal(t, 1, seen["192.168.1.100"])
	assert.Len(t, got, 14)
}

func TestCandidateGenerator_ExtraAddressesKeepPort(t *testing.T) {
	cfg := DefaultCandidateConfig()
	cfg.ExtraAddresses = []string{"192.168.0.11:3000", "reefer.local"}
	cfg.SubnetPrefixes = nil
	g := NewCandidateGenerator(cfg)

	assert.Equal(t, []string{"reefer.local", "192.168.4.1", "192.168.0.11:3000"},
		addresses(drain(g.Generate(domain.ModeLocal, ""))))
}

func TestCandidateGenerator_IsDeterministic(t *testing.T) {
	g := NewCandidateGenerator(DefaultCandidateConfig())
	first := drain(g.Generate(domain.ModeLocal, "10.0.0.7"))
	second := drain(g.Generate(domain.ModeLocal, "10.0.0.7"))
	assert.Equal(t, first, second)
}

func TestCandidateGenerator_Cloud(t *testing.T) {
	cfg := DefaultCandidateConfig()
	cfg.CloudBaseURL = "https://x.supabase.co/"
	cfg.Organization = "parametican"
	got := drain(NewCandidateGenerator(cfg).Generate(domain.ModeCloud, "192.168.1.100"))

	require.Len(t, got, 1)
	assert.Equal(t, domain.Candidate{
		Address:      "https://x.supabase.co",
		Protocol:     domain.ProtocolHTTP,
		Mode:         domain.ModeCloud,
		Source:       domain.SourceCloud,
		Organization: "parametican",
	}, got[0])
}

func TestCandidateGenerator_CloudWithoutOrganization(t *testing.T) {
	cfg := DefaultCandidateConfig()
	cfg.CloudBaseURL = "https://x.supabase.co"
	assert.Empty(t, drain(NewCandidateGenerator(cfg).Generate(domain.ModeCloud, "")))

	cfg.CloudBaseURL = ""
	cfg.Organization = "parametican"
	assert.Empty(t, drain(NewCandidateGenerator(cfg).Generate(domain.ModeCloud, "")))
}

func TestCandidateGenerator_Single(t *testing.T) {
	got := drain(NewCandidateGenerator(CandidateConfig{}).Single("http://192.168.0.11:3000/", domain.SourceManual))
	require.Len(t, got, 1)
	assert.Equal(t, "192.168.0.11:3000", got[0].Address)
	assert.Equal(t, domain.SourceManual, got[0].Source)
}

func TestCandidateSeq_Empty(t *testing.T) {
	g := NewCandidateGenerator(CandidateConfig{})
	assert.Empty(t, drain(g.Generate(domain.ModeLocal, "")))
	assert.Empty(t, drain(g.Generate(domain.ConnectionMode("lan"), "")))
}

func TestCheckLocalAddress(t *testing.T) {
	assert.NoError(t, CheckLocalAddress("192.168.0.11:3000"))
	assert.NoError(t, CheckLocalAddress("HTTP://Reefer.local/"))
	assert.True(t, IsBadParameterError(CheckLocalAddress(" ")))
	assert.True(t, IsBadParameterError(CheckLocalAddress("https://192.168.0.11")))
	assert.True(t, IsBadParameterError(CheckLocalAddress("ws://reefer.local")))
}

func TestCandidateGenerator_SkipsAddressesWithOtherSchemes(t *testing.T) {
	cfg := CandidateConfig{ExtraAddresses: []string{"https://192.168.0.11", "192.168.0.12"}}
	assert.Equal(t, []string{"192.168.0.12"}, addresses(drain(NewCandidateGenerator(cfg).Generate(domain.ModeLocal, ""))))
}
