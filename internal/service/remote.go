package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dealsense/buybox/internal/model"
	"github.com/dealsense/buybox/internal/parser"
	"github.com/dealsense/buybox/internal/utils"
)

// RemoteParser parses buy-box text with an LLM and merges the result
// field by field with the local deterministic parse. Any failure on the
// remote side degrades to the local result; the caller never sees a
// remote error.
type RemoteParser struct {
	client ChatClient
	logger zerolog.Logger
}

// NewRemoteParser creates a remote parser. A nil client means the LLM is
// not configured; Parse then returns the local result directly.
func NewRemoteParser(client ChatClient, logger zerolog.Logger) *RemoteParser {
	return &RemoteParser{
		client: client,
		logger: logger.With().Str("component", "remote_parser").Logger(),
	}
}

const mandatePrompt = `You are a commercial real estate deal-sourcing assistant. Parse the user's free-text investment criteria ("buy-box") into structured JSON.

Extract the following fields if present:
- intent: one of "acquisition", "disposition", "refinance", "lease", "ground_lease", "sale_leaseback", "mezzanine_loan", "joint_venture", "preferred_equity", "exchange_1031", "distress_restructuring", "other"
- asset_type: one of "multifamily", "industrial", "retail", "office", "land", "hospitality", "self_storage", "data_center", "other"
- city, state, metro: target market (state as 2-letter code)
- units_min, units_max: residential unit count range (integers)
- size_sf_min, size_sf_max: square footage range in base units ("150k SF" = 150000)
- budget_min, budget_max: absolute currency units ("$20M" = 20000000)
- cap_rate_min, cap_rate_max: percentage points ("6.5% cap" = 6.5)
- price_per_sf_min, price_per_sf_max: dollars per square foot
- price_per_unit_min, price_per_unit_max: per-door price ("$180k/door" = 180000)
- build_year_after, build_year_before: build year bounds (integers)
- timing_months: months until the transaction event (integer)
- loan_maturing, owner_age_65_plus, off_market: booleans

Important rules:
- Respond ONLY with valid JSON
- If a field is not mentioned, omit it
- "100k" = 100000, "1.5m" = 1500000
- A single value fills both min and max; "cap >= 6.5%" sets only cap_rate_min

Examples:
Query: "Find value-add multifamily, 20-40 units, in Charlotte, built 1980-2005, cap >= 6.5%"
Response: {"intent": "acquisition", "asset_type": "multifamily", "city": "Charlotte", "state": "NC", "units_min": 20, "units_max": 40, "build_year_after": 1980, "build_year_before": 2005, "cap_rate_min": 6.5}

Query: "Selling a 150k SF warehouse in DFW, off-market only"
Response: {"intent": "disposition", "asset_type": "industrial", "city": "Dallas", "state": "TX", "metro": "Dallas-Fort Worth", "size_sf_min": 150000, "size_sf_max": 150000, "off_market": true}`

// llmMandateResponse mirrors the flat schema the prompt asks for.
type llmMandateResponse struct {
	Intent           *string  `json:"intent,omitempty"`
	AssetType        *string  `json:"asset_type,omitempty"`
	City             *string  `json:"city,omitempty"`
	State            *string  `json:"state,omitempty"`
	Metro            *string  `json:"metro,omitempty"`
	UnitsMin         *int     `json:"units_min,omitempty"`
	UnitsMax         *int     `json:"units_max,omitempty"`
	SizeSfMin        *int     `json:"size_sf_min,omitempty"`
	SizeSfMax        *int     `json:"size_sf_max,omitempty"`
	BudgetMin        *int     `json:"budget_min,omitempty"`
	BudgetMax        *int     `json:"budget_max,omitempty"`
	CapRateMin       *float64 `json:"cap_rate_min,omitempty"`
	CapRateMax       *float64 `json:"cap_rate_max,omitempty"`
	PricePerSfMin    *float64 `json:"price_per_sf_min,omitempty"`
	PricePerSfMax    *float64 `json:"price_per_sf_max,omitempty"`
	PricePerUnitMin  *int     `json:"price_per_unit_min,omitempty"`
	PricePerUnitMax  *int     `json:"price_per_unit_max,omitempty"`
	BuildYearAfter   *int     `json:"build_year_after,omitempty"`
	BuildYearBefore  *int     `json:"build_year_before,omitempty"`
	TimingMonths     *int     `json:"timing_months,omitempty"`
	LoanMaturing     *bool    `json:"loan_maturing,omitempty"`
	OwnerAge65Plus   *bool    `json:"owner_age_65_plus,omitempty"`
	OffMarket        *bool    `json:"off_market,omitempty"`
}

// Parse extracts a structured mandate from free text, preferring the
// LLM and falling back to the local deterministic parser on any failure.
func (p *RemoteParser) Parse(ctx context.Context, text string) *model.Mandate {
	local := parser.Parse(text)

	if p.client == nil || !p.client.IsEnabled() {
		return local
	}

	remote, err := p.parseRemote(ctx, text)
	if err != nil {
		p.logger.Warn().Err(err).Msg("remote parse failed, using local result")
		return local
	}

	return mergeMandates(remote, local)
}

// ParseStream is the streaming variant: LLM thinking/content deltas are
// forwarded to the callback while they arrive. On any failure the local
// result is returned and no error surfaces.
func (p *RemoteParser) ParseStream(ctx context.Context, text string, callback func(thinking, content string) error) *model.Mandate {
	local := parser.Parse(text)

	if p.client == nil || !p.client.IsEnabled() {
		return local
	}

	req := ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: mandatePrompt},
			{Role: "user", Content: text},
		},
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	var full strings.Builder
	err := p.client.ChatCompletionStream(ctx, req, func(chunk *StreamChunk) error {
		if chunk.ThinkingContent != "" {
			if err := callback(chunk.ThinkingContent, ""); err != nil {
				return err
			}
		}
		if chunk.Content != "" {
			full.WriteString(chunk.Content)
			if err := callback("", chunk.Content); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		p.logger.Warn().Err(err).Msg("streaming remote parse failed, using local result")
		return local
	}

	remote, err := decodeRemote(full.String())
	if err != nil {
		p.logger.Warn().Err(err).Msg("streamed response unparseable, using local result")
		return local
	}

	return mergeMandates(remote, local)
}

func (p *RemoteParser) parseRemote(ctx context.Context, text string) (*llmMandateResponse, error) {
	req := ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: mandatePrompt},
			{Role: "user", Content: text},
		},
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	resp, err := p.client.ChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}
	return decodeRemote(resp.Choices[0].Message.Content)
}

func decodeRemote(content string) (*llmMandateResponse, error) {
	var result llmMandateResponse
	if err := utils.ParseAIJSON(content, &result); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	return &result, nil
}

// mergeMandates builds the final record: the remote parser's non-null
// values win per field, the local parse fills every hole, taxonomies are
// re-clamped and coverage is recomputed locally. Field-level fallback,
// not whole-record fallback.
func mergeMandates(remote *llmMandateResponse, local *model.Mandate) *model.Mandate {
	m := &model.Mandate{}

	m.Intent = local.Intent
	if remote.Intent != nil {
		m.Intent = model.NormalizeIntent(strings.ToLower(strings.TrimSpace(*remote.Intent)))
	}
	m.AssetType = local.AssetType
	if remote.AssetType != nil {
		m.AssetType = model.NormalizeAssetType(strings.ToLower(strings.TrimSpace(*remote.AssetType)))
	}

	if remote.City != nil || remote.Metro != nil {
		m.Market = &model.Market{Country: "US"}
		if remote.City != nil {
			m.Market.City = strings.TrimSpace(*remote.City)
		}
		if remote.State != nil {
			m.Market.State = strings.ToUpper(strings.TrimSpace(*remote.State))
		}
		if remote.Metro != nil {
			m.Market.Metro = strings.TrimSpace(*remote.Metro)
		}
	} else {
		m.Market = local.Market
	}

	m.Units = mergeIntRange(remote.UnitsMin, remote.UnitsMax, local.Units)
	m.SizeSf = mergeIntRange(remote.SizeSfMin, remote.SizeSfMax, local.SizeSf)
	m.Budget = mergeIntRange(remote.BudgetMin, remote.BudgetMax, local.Budget)
	m.PricePerUnit = mergeIntRange(remote.PricePerUnitMin, remote.PricePerUnitMax, local.PricePerUnit)
	m.CapRate = mergeFloatRange(remote.CapRateMin, remote.CapRateMax, local.CapRate)
	m.PricePerSf = mergeFloatRange(remote.PricePerSfMin, remote.PricePerSfMax, local.PricePerSf)

	if remote.BuildYearAfter != nil || remote.BuildYearBefore != nil {
		m.BuildYear = &model.YearRange{After: remote.BuildYearAfter, Before: remote.BuildYearBefore}
	} else {
		m.BuildYear = local.BuildYear
	}

	if remote.TimingMonths != nil {
		m.Timing = &model.Timing{MonthsToEvent: remote.TimingMonths}
	} else {
		m.Timing = local.Timing
	}

	m.OwnerAgeMin = local.OwnerAgeMin
	m.TenureYears = local.TenureYears

	m.Flags = local.Flags
	if remote.LoanMaturing != nil {
		m.Flags.LoanMaturing = *remote.LoanMaturing
	}
	if remote.OwnerAge65Plus != nil {
		m.Flags.OwnerAge65Plus = *remote.OwnerAge65Plus
	}
	if remote.OffMarket != nil {
		m.Flags.OffMarket = *remote.OffMarket
	}

	parser.Finalize(m)
	return m
}

func mergeIntRange(min, max *int, local *model.IntRange) *model.IntRange {
	if min != nil || max != nil {
		return &model.IntRange{Min: min, Max: max}
	}
	return local
}

func mergeFloatRange(min, max *float64, local *model.FloatRange) *model.FloatRange {
	if min != nil || max != nil {
		return &model.FloatRange{Min: min, Max: max}
	}
	return local
}
