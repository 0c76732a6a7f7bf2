package model

import "encoding/json"

// Intent is the transaction intent behind a buy-box.
type Intent string

// AssetType is the property asset class of a buy-box.
type AssetType string

// Closed intent taxonomy. Free text outside this set maps to IntentOther.
const (
	IntentAcquisition     Intent = "acquisition"
	IntentDisposition     Intent = "disposition"
	IntentRefinance       Intent = "refinance"
	IntentLease           Intent = "lease"
	IntentGroundLease     Intent = "ground_lease"
	IntentSaleLeaseback   Intent = "sale_leaseback"
	IntentMezzanineLoan   Intent = "mezzanine_loan"
	IntentJointVenture    Intent = "joint_venture"
	IntentPreferredEquity Intent = "preferred_equity"
	IntentExchange1031    Intent = "exchange_1031"
	IntentDistress        Intent = "distress_restructuring"
	IntentOther           Intent = "other"
)

// Closed asset-type taxonomy. Free text outside this set maps to AssetOther.
const (
	AssetMultifamily AssetType = "multifamily"
	AssetIndustrial  AssetType = "industrial"
	AssetRetail      AssetType = "retail"
	AssetOffice      AssetType = "office"
	AssetLand        AssetType = "land"
	AssetHospitality AssetType = "hospitality"
	AssetSelfStorage AssetType = "self_storage"
	AssetDataCenter  AssetType = "data_center"
	AssetOther       AssetType = "other"
)

var validIntents = map[Intent]bool{
	IntentAcquisition: true, IntentDisposition: true, IntentRefinance: true,
	IntentLease: true, IntentGroundLease: true, IntentSaleLeaseback: true,
	IntentMezzanineLoan: true, IntentJointVenture: true, IntentPreferredEquity: true,
	IntentExchange1031: true, IntentDistress: true, IntentOther: true,
}

var validAssetTypes = map[AssetType]bool{
	AssetMultifamily: true, AssetIndustrial: true, AssetRetail: true,
	AssetOffice: true, AssetLand: true, AssetHospitality: true,
	AssetSelfStorage: true, AssetDataCenter: true, AssetOther: true,
}

// NormalizeIntent clamps a raw value to the closed taxonomy.
// Empty stays empty (absent); anything unrecognized becomes IntentOther.
func NormalizeIntent(raw string) Intent {
	if raw == "" {
		return ""
	}
	v := Intent(raw)
	if validIntents[v] {
		return v
	}
	return IntentOther
}

// NormalizeAssetType clamps a raw value to the closed taxonomy.
func NormalizeAssetType(raw string) AssetType {
	if raw == "" {
		return ""
	}
	v := AssetType(raw)
	if validAssetTypes[v] {
		return v
	}
	return AssetOther
}

// IntRange is an inclusive integer range. A nil bound is absent, never zero.
type IntRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// FloatRange is an inclusive float range.
type FloatRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// YearRange bounds a build year: After <= year <= Before.
type YearRange struct {
	After  *int `json:"after,omitempty"`
	Before *int `json:"before,omitempty"`
}

// Market identifies a target market.
type Market struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Metro   string `json:"metro,omitempty"`
	Country string `json:"country,omitempty"`
}

// Timing is a transaction-timing hint.
type Timing struct {
	Raw           string `json:"raw,omitempty"`
	MonthsToEvent *int   `json:"months_to_event,omitempty"`
}

// Flags are boolean deal signals extracted from text.
type Flags struct {
	LoanMaturing   bool `json:"loan_maturing"`
	OwnerAge65Plus bool `json:"owner_age_65_plus"`
	OffMarket      bool `json:"off_market"`
}

// Mandate is the canonical structured buy-box record produced by a parse.
// It is immutable once returned; a new parse produces a new record.
type Mandate struct {
	Intent       Intent      `json:"intent,omitempty"`
	AssetType    AssetType   `json:"asset_type,omitempty"`
	Market       *Market     `json:"market,omitempty"`
	Units        *IntRange   `json:"units,omitempty"`
	SizeSf       *IntRange   `json:"size_sf,omitempty"`
	Budget       *IntRange   `json:"budget,omitempty"`
	CapRate      *FloatRange `json:"cap_rate,omitempty"`
	PricePerSf   *FloatRange `json:"price_per_sf,omitempty"`
	PricePerUnit *IntRange   `json:"price_per_unit,omitempty"`
	BuildYear    *YearRange  `json:"build_year,omitempty"`
	OwnerAgeMin  *int        `json:"owner_age_min,omitempty"`
	TenureYears  *int        `json:"tenure_years_min,omitempty"`
	Timing       *Timing     `json:"timing,omitempty"`
	Flags        Flags       `json:"flags"`

	MissingKeys   []string `json:"missing_keys"`
	CoverageScore int      `json:"coverage_score"`
}

// HasMarket reports whether at least a city or metro was extracted.
func (m *Mandate) HasMarket() bool {
	return m.Market != nil && (m.Market.City != "" || m.Market.Metro != "")
}

// HasSize reports whether either a unit-count or square-footage range is set.
func (m *Mandate) HasSize() bool {
	return (m.Units != nil && (m.Units.Min != nil || m.Units.Max != nil)) ||
		(m.SizeSf != nil && (m.SizeSf.Min != nil || m.SizeSf.Max != nil))
}

// HasPriceSignal reports whether any price band was extracted
// (budget, cap rate, price per SF, or price per unit).
func (m *Mandate) HasPriceSignal() bool {
	if m.Budget != nil && (m.Budget.Min != nil || m.Budget.Max != nil) {
		return true
	}
	if m.CapRate != nil && (m.CapRate.Min != nil || m.CapRate.Max != nil) {
		return true
	}
	if m.PricePerSf != nil && (m.PricePerSf.Min != nil || m.PricePerSf.Max != nil) {
		return true
	}
	if m.PricePerUnit != nil && (m.PricePerUnit.Min != nil || m.PricePerUnit.Max != nil) {
		return true
	}
	return false
}

// CanonicalJSON returns the deterministic JSON form of the mandate,
// used for seeding the prospect synthesizer. Field order is fixed by
// the struct declaration, so identical mandates serialize identically.
func (m *Mandate) CanonicalJSON() string {
	b, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return string(b)
}
