package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dealsense/buybox/internal/config"
)

func testFirmIntelService(client ChatClient) *FirmIntelService {
	cfg := &config.FirmIntelConfig{FetchTimeout: 2, MaxBodyBytes: 64 * 1024}
	return NewFirmIntelService(client, cfg, zerolog.Nop())
}

const firmPage = `<html><head>
<title>Crestline Capital</title>
<style>body { color: red; }</style>
<script>trackVisit();</script>
</head><body>
<h1>Crestline Capital Partners</h1>
<p>Crestline Capital Partners is a private real estate investment firm focused on value-add multifamily. We have acquired over 4,000 units across the Sunbelt since 2012. Our team targets assets between $10M &amp; $50M.</p>
</body></html>`

func TestStripHTML(t *testing.T) {
	got := stripHTML(firmPage)
	for _, banned := range []string{"<", ">", "trackVisit", "color: red"} {
		if strings.Contains(got, banned) {
			t.Errorf("stripped text still contains %q: %q", banned, got)
		}
	}
	if !strings.Contains(got, "value-add multifamily") {
		t.Errorf("visible text lost: %q", got)
	}
	if !strings.Contains(got, "$10M & $50M") {
		t.Errorf("entity not decoded: %q", got)
	}
}

func TestDomainSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Crestline Capital Partners", "crestlinecapitalpartners"},
		{"Oakpoint Realty LLC", "oakpointrealty"},
		{"Bell & Main Inc", "bellmain"},
	}
	for _, tt := range tests {
		if got := domainSlug(tt.in); got != tt.want {
			t.Errorf("domainSlug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	if got := normalizeURL("example.com"); got != "https://example.com" {
		t.Errorf("got %q", got)
	}
	if got := normalizeURL("http://example.com"); got != "http://example.com" {
		t.Errorf("scheme must be preserved, got %q", got)
	}
}

func TestLogoURL(t *testing.T) {
	got := logoURL("https://www.crestline.com/about")
	want := "https://www.google.com/s2/favicons?domain=www.crestline.com&sz=128"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if logoURL("://bad") != "" {
		t.Error("unparseable URL must yield an empty logo URL")
	}
}

func TestHeuristicSnapshot(t *testing.T) {
	text := stripHTML(firmPage)
	snap := heuristicSnapshot("Crestline Capital", text)
	if len(snap) == 0 {
		t.Fatal("expected at least one sentence")
	}
	if !strings.Contains(snap[0], "private real estate investment firm") {
		t.Errorf("first sentence: got %q", snap[0])
	}

	snap = heuristicSnapshot("Ghost Partners", "")
	if len(snap) != 1 || !strings.Contains(snap[0], "Ghost Partners") {
		t.Errorf("empty-text fallback: got %v", snap)
	}
}

func TestAnalyze_HeuristicWithoutLLM(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(firmPage))
	}))
	defer srv.Close()

	s := testFirmIntelService(nil)
	intel, err := s.Analyze(context.Background(), "Crestline Capital", srv.URL)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if intel.NeedsInput != "" {
		t.Fatalf("needs_input: got %q", intel.NeedsInput)
	}
	if intel.FirmURL != srv.URL {
		t.Errorf("firm URL: got %q, want %q", intel.FirmURL, srv.URL)
	}
	if len(intel.Snapshot) == 0 {
		t.Error("expected a heuristic snapshot")
	}
	if len(intel.Queries) != 3 {
		t.Errorf("default queries: got %v", intel.Queries)
	}
}

func TestAnalyze_LLMSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(firmPage))
	}))
	defer srv.Close()

	client := &stubChatClient{
		enabled: true,
		content: `{
			"snapshot": ["Private multifamily investor active in the Sunbelt."],
			"transactions": [{"year": 2023, "asset_type": "multifamily", "market": "Nashville", "summary": "Acquired a 220-unit community."}],
			"criteria": {"asset_types": ["multifamily"], "deal_size": "$10M-$50M"},
			"queries": ["Crestline Capital 2024 acquisitions"]
		}`,
	}
	s := testFirmIntelService(client)
	intel, err := s.Analyze(context.Background(), "Crestline Capital", srv.URL)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(intel.Snapshot) != 1 || len(intel.Transactions) != 1 {
		t.Fatalf("summary not applied: %+v", intel)
	}
	if intel.Transactions[0].Market != "Nashville" {
		t.Errorf("transaction market: got %q", intel.Transactions[0].Market)
	}
	if intel.Criteria == nil || intel.Criteria.DealSize != "$10M-$50M" {
		t.Errorf("criteria: got %+v", intel.Criteria)
	}
	if len(intel.Queries) != 1 {
		t.Errorf("LLM queries must replace the defaults, got %v", intel.Queries)
	}
}

func TestAnalyze_LLMFailureDegradesToHeuristic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(firmPage))
	}))
	defer srv.Close()

	client := &stubChatClient{enabled: true, content: "not json at all"}
	s := testFirmIntelService(client)
	intel, err := s.Analyze(context.Background(), "Crestline Capital", srv.URL)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(intel.Snapshot) == 0 {
		t.Error("expected heuristic snapshot after LLM failure")
	}
	if len(intel.Transactions) != 0 {
		t.Errorf("transactions should be empty, got %v", intel.Transactions)
	}
}

func TestAnalyze_UnreachableSiteAsksForURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()

	s := testFirmIntelService(nil)
	intel, err := s.Analyze(context.Background(), "Unknown Firm", url)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if intel.NeedsInput != "url" {
		t.Errorf("needs_input: got %q, want \"url\"", intel.NeedsInput)
	}
}

func TestAnalyze_EmptyFirmName(t *testing.T) {
	s := testFirmIntelService(nil)
	if _, err := s.Analyze(context.Background(), "  ", ""); err == nil {
		t.Error("expected an error for an empty firm name")
	}
}
