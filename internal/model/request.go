package model

// ParseRequest is the body of POST /api/v1/parse.
type ParseRequest struct {
	Text string `json:"text" binding:"required"`
}

// SynthesisRequest is the body of POST /api/v1/prospects.
type SynthesisRequest struct {
	Mandate  *Mandate `json:"mandate" binding:"required"`
	SeedText string   `json:"seed_text"`
	Count    int      `json:"count"`
}

// RefinePlanRequest is the body of POST /api/v1/refine-plan.
type RefinePlanRequest struct {
	Mandate *Mandate `json:"mandate" binding:"required"`
}

// FirmIntelRequest is the body of POST /api/v1/firm-intel.
type FirmIntelRequest struct {
	FirmName    string `json:"firm_name" binding:"required"`
	FallbackURL string `json:"fallback_url,omitempty"`
}

// FirmTransaction is one extracted deal from a firm's public materials.
type FirmTransaction struct {
	Year      int    `json:"year,omitempty"`
	AssetType string `json:"asset_type,omitempty"`
	Market    string `json:"market,omitempty"`
	Size      string `json:"size,omitempty"`
	Price     string `json:"price,omitempty"`
	Summary   string `json:"summary,omitempty"`
}

// FirmCriteria is the investment criteria inferred for a firm.
type FirmCriteria struct {
	AssetTypes []string `json:"asset_types,omitempty"`
	Markets    []string `json:"markets,omitempty"`
	DealSize   string   `json:"deal_size,omitempty"`
	Strategy   string   `json:"strategy,omitempty"`
}

// FirmIntel is the result of a firm-intelligence lookup.
// NeedsInput is set to "url" when no firm website could be resolved.
type FirmIntel struct {
	FirmURL      string            `json:"firm_url,omitempty"`
	LogoURL      string            `json:"logo_url,omitempty"`
	Snapshot     []string          `json:"snapshot,omitempty"`
	Transactions []FirmTransaction `json:"transactions,omitempty"`
	Criteria     *FirmCriteria     `json:"criteria,omitempty"`
	Queries      []string          `json:"queries,omitempty"`
	NeedsInput   string            `json:"needs_input,omitempty"`
}
