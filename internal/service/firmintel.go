package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dealsense/buybox/internal/config"
	"github.com/dealsense/buybox/internal/model"
	"github.com/dealsense/buybox/internal/utils"
)

// FirmIntelService looks up a firm's website, fetches its public pages
// and asks the LLM to extract transaction history and investment
// criteria. When no website can be resolved it asks the caller for a
// URL instead of failing; when no LLM is configured it degrades to a
// heuristic snapshot.
type FirmIntelService struct {
	client     ChatClient
	httpClient *http.Client
	maxBody    int64
	logger     zerolog.Logger
}

// NewFirmIntelService creates a firm-intelligence service.
func NewFirmIntelService(client ChatClient, cfg *config.FirmIntelConfig, logger zerolog.Logger) *FirmIntelService {
	return &FirmIntelService{
		client:  client,
		maxBody: cfg.MaxBodyBytes,
		logger:  logger.With().Str("component", "firm_intel").Logger(),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.FetchTimeout) * time.Second,
		},
	}
}

const firmIntelPrompt = `You are a commercial real estate research assistant. Given the text content of an investment firm's website, extract:
- snapshot: array of 2-4 short sentences describing the firm
- transactions: array of deals mentioned, each with optional year (integer), asset_type, market, size, price, summary
- criteria: object with asset_types (array), markets (array), deal_size (string), strategy (string)
- queries: array of 2-4 follow-up web search queries that would surface the firm's recent transactions

Respond ONLY with valid JSON. Omit anything the text does not support. Never invent transactions.`

// Analyze resolves the firm's website and summarizes it. A result with
// NeedsInput == "url" means the caller must supply the website.
func (s *FirmIntelService) Analyze(ctx context.Context, firmName, fallbackURL string) (*model.FirmIntel, error) {
	firmName = strings.TrimSpace(firmName)
	if firmName == "" {
		return nil, fmt.Errorf("empty firm name")
	}

	firmURL, body, err := s.resolveAndFetch(ctx, firmName, fallbackURL)
	if err != nil {
		s.logger.Info().Str("firm", firmName).Err(err).Msg("could not resolve firm website")
		return &model.FirmIntel{NeedsInput: "url"}, nil
	}

	text := stripHTML(body)
	intel := &model.FirmIntel{
		FirmURL: firmURL,
		LogoURL: logoURL(firmURL),
		Queries: defaultQueries(firmName),
	}

	if s.client == nil || !s.client.IsEnabled() {
		intel.Snapshot = heuristicSnapshot(firmName, text)
		return intel, nil
	}

	if err := s.summarize(ctx, text, intel); err != nil {
		s.logger.Warn().Str("firm", firmName).Err(err).Msg("LLM summarization failed, using heuristic snapshot")
		intel.Snapshot = heuristicSnapshot(firmName, text)
	}
	return intel, nil
}

// resolveAndFetch tries the fallback URL first, then guesses common
// domains from the firm name. Returns the first URL that serves HTML.
func (s *FirmIntelService) resolveAndFetch(ctx context.Context, firmName, fallbackURL string) (string, string, error) {
	candidates := []string{}
	if fallbackURL != "" {
		candidates = append(candidates, normalizeURL(fallbackURL))
	} else {
		slug := domainSlug(firmName)
		candidates = append(candidates,
			"https://www."+slug+".com",
			"https://"+slug+".com",
		)
	}

	var lastErr error
	for _, candidate := range candidates {
		body, err := s.fetch(ctx, candidate)
		if err != nil {
			lastErr = err
			continue
		}
		return candidate, body, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no candidate URLs for %q", firmName)
	}
	return "", "", lastErr
}

func (s *FirmIntelService) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; DealSenseBot/1.0)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBody))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (s *FirmIntelService) summarize(ctx context.Context, text string, intel *model.FirmIntel) error {
	// Keep the prompt within a sane context budget.
	if len(text) > 6000 {
		text = text[:6000]
	}

	req := ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: firmIntelPrompt},
			{Role: "user", Content: text},
		},
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	resp, err := s.client.ChatCompletion(ctx, req)
	if err != nil {
		return err
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("no choices in response")
	}

	var parsed struct {
		Snapshot     []string                `json:"snapshot"`
		Transactions []model.FirmTransaction `json:"transactions"`
		Criteria     *model.FirmCriteria     `json:"criteria"`
		Queries      []string                `json:"queries"`
	}
	if err := utils.ParseAIJSON(resp.Choices[0].Message.Content, &parsed); err != nil {
		return err
	}

	intel.Snapshot = parsed.Snapshot
	intel.Transactions = parsed.Transactions
	intel.Criteria = parsed.Criteria
	if len(parsed.Queries) > 0 {
		intel.Queries = parsed.Queries
	}
	return nil
}

var (
	scriptStyleRe = regexp.MustCompile(`(?is)<(script|style|noscript)[^>]*>.*?</\s*(script|style|noscript)\s*>`)
	tagRe         = regexp.MustCompile(`(?s)<[^>]+>`)
	spaceRe       = regexp.MustCompile(`\s+`)
	nonAlnumRe    = regexp.MustCompile(`[^a-z0-9]+`)
)

// stripHTML reduces a page to whitespace-normalized visible text.
func stripHTML(html string) string {
	text := scriptStyleRe.ReplaceAllString(html, " ")
	text = tagRe.ReplaceAllString(text, " ")
	text = strings.NewReplacer("&amp;", "&", "&nbsp;", " ", "&quot;", `"`, "&#39;", "'", "&lt;", "<", "&gt;", ">").Replace(text)
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

// domainSlug turns "Crestline Capital Partners" into
// "crestlinecapitalpartners".
func domainSlug(firmName string) string {
	slug := strings.ToLower(firmName)
	for _, suffix := range []string{" llc", " inc", " lp", " llp", " co"} {
		slug = strings.TrimSuffix(slug, suffix)
	}
	return nonAlnumRe.ReplaceAllString(slug, "")
}

func normalizeURL(raw string) string {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "https://" + raw
	}
	return raw
}

// logoURL points at a public favicon resolver for the firm's domain.
func logoURL(firmURL string) string {
	u, err := url.Parse(firmURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return "https://www.google.com/s2/favicons?domain=" + u.Host + "&sz=128"
}

func defaultQueries(firmName string) []string {
	return []string{
		firmName + " recent acquisitions",
		firmName + " commercial real estate transactions",
		firmName + " investment criteria",
	}
}

// heuristicSnapshot falls back to the first few sentences of the page
// when no LLM is available.
func heuristicSnapshot(firmName, text string) []string {
	if text == "" {
		return []string{firmName + ": no public website content available."}
	}
	sentences := []string{}
	for _, s := range strings.SplitAfter(text, ". ") {
		s = strings.TrimSpace(s)
		if len(s) < 40 || len(s) > 240 {
			continue
		}
		sentences = append(sentences, s)
		if len(sentences) == 3 {
			break
		}
	}
	if len(sentences) == 0 {
		sentences = append(sentences, firmName+": see website for details.")
	}
	return sentences
}
