package parser

import (
	"regexp"
	"strings"

	"github.com/dealsense/buybox/internal/model"
)

// Extraction regexes. Each field runs its own independent pass; multiple
// passes may populate the same record.
var (
	numToken = `\$?\s*\d[\d,]*(?:\.\d+)?\s*(?:k|mm|m|million|b|bn|billion)?`

	unitsRangeRe  = regexp.MustCompile(`(?i)(\d[\d,]*)\s*(?:–|—|-|to)\s*(\d[\d,]*)\s*(?:units|doors|unit|door|keys|pads|beds)\b`)
	unitsSingleRe = regexp.MustCompile(`(?i)(\d[\d,]*)\s*\+?\s*(?:units|doors|unit|door|keys|pads|beds)\b`)

	sizeRangeRe  = regexp.MustCompile(`(?i)(\d[\d,]*(?:\.\d+)?\s*[km]?)\s*(?:–|—|-|to)\s*(\d[\d,]*(?:\.\d+)?\s*[km]?)\s*(?:sf|sq\.?\s*ft|sqft|square feet)\b`)
	sizeSingleRe = regexp.MustCompile(`(?i)(\d[\d,]*(?:\.\d+)?\s*[km]?)\s*\+?\s*(?:sf|sq\.?\s*ft|sqft|square feet)\b`)

	psfRangeRe  = regexp.MustCompile(`(?i)\$\s*(\d[\d,]*(?:\.\d+)?)\s*(?:–|—|-|to)\s*\$?\s*(\d[\d,]*(?:\.\d+)?)\s*(?:psf|/\s*sf|per\s+(?:sf|sq\.?\s*ft|square foot))`)
	psfSingleRe = regexp.MustCompile(`(?i)(≤|<=|≥|>=|under|below|up to|max|at least|min|over|above)?\s*\$\s*(\d[\d,]*(?:\.\d+)?)\s*(?:psf|/\s*sf|per\s+(?:sf|sq\.?\s*ft|square foot))`)

	perDoorRe = regexp.MustCompile(`(?i)(≤|<=|≥|>=|under|below|up to|max|at least|min|over|above)?\s*\$\s*(\d[\d,]*(?:\.\d+)?\s*[km]?)\s*(?:/\s*(?:door|unit|key|bed)|per\s+(?:door|unit|key|bed))`)

	capRangeRe  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*%?\s*(?:–|—|-|to)\s*(\d+(?:\.\d+)?)\s*%?\s*cap`)
	capAfterRe  = regexp.MustCompile(`(?i)cap(?:\s*rates?)?\s*(?:of|:)?\s*(≤|<=|≥|>=|under|below|at least|above|over)?\s*(\d+(?:\.\d+)?)\s*%?`)
	capBeforeRe = regexp.MustCompile(`(?i)(≤|<=|≥|>=|under|below|at least|above|over)?\s*(\d+(?:\.\d+)?)\s*%\s*(?:\+\s*)?cap`)

	budgetRangeRe  = regexp.MustCompile(`(?i)\$\s*(\d[\d,]*(?:\.\d+)?\s*(?:k|mm|m|million|b|bn|billion)?)\s*(?:–|—|-|to)\s*\$?\s*(\d[\d,]*(?:\.\d+)?\s*(?:k|mm|m|million|b|bn|billion)?)`)
	budgetSingleRe = regexp.MustCompile(`(?i)(≤|<=|≥|>=|under|below|up to|max(?:imum)?|at least|min(?:imum)?|around|budget of|budget:?)?\s*\$\s*(\d[\d,]*(?:\.\d+)?\s*(?:mm|m|million|b|bn|billion))\b`)

	builtRangeRe  = regexp.MustCompile(`(?i)(?:built|vintage|constructed)\s*(?:in|between)?\s*(\d{4})\s*(?:–|—|-|to|and)\s*(\d{4})`)
	builtAfterRe  = regexp.MustCompile(`(?i)(?:built|vintage|constructed)\s*(?:after|post|since)\s*(\d{4})`)
	builtBeforeRe = regexp.MustCompile(`(?i)(?:built|vintage|constructed)\s*(?:before|pre|prior to)\s*(\d{4})`)
	builtSingleRe = regexp.MustCompile(`(?i)(\d{4})s?\s*(?:vintage|construction)`)

	ownerAgeRe = regexp.MustCompile(`(?i)owner[s]?\s*(?:age[d]?\s*)?(?:over|above|older than|)\s*(\d{2})\s*\+?`)
	tenureRe   = regexp.MustCompile(`(?i)(?:owned|held)\s*(?:for\s*)?(\d+)\s*\+?\s*(?:years|yrs)|(\d+)\s*\+?\s*(?:years|yrs)\s*(?:of\s*)?(?:ownership|tenure)`)
	timingRe   = regexp.MustCompile(`(?i)(?:within|in)\s*(?:the\s+next\s+)?(\d+)\s*(months?|mos?\b|quarters?|years?|yrs?)`)

	loanMaturingRe = regexp.MustCompile(`(?i)loan\s+matur|debt\s+matur|maturing\s+(?:loan|debt)|matur\w*\s+in\s+\d|refi\s+deadline|balloon`)
	offMarketRe    = regexp.MustCompile(`(?i)off[\s-]market`)
)

// Parse turns free-text investment criteria into a structured mandate.
// It never fails: unrecognized input yields a mostly-empty record with a
// low coverage score.
func Parse(text string) *model.Mandate {
	m := &model.Mandate{}
	text = strings.TrimSpace(text)
	if text == "" {
		Finalize(m)
		return m
	}

	m.Intent = ClassifyIntent(text)
	m.AssetType = ClassifyAssetType(text)
	m.Market = ExtractMarket(text)

	extractUnits(text, m)
	extractSize(text, m)
	extractPricePerSf(text, m)
	extractPerDoor(text, m)
	extractCapRate(text, m)
	extractBudget(text, m)
	extractBuildYear(text, m)
	extractOwnerSignals(text, m)
	extractTiming(text, m)

	m.Flags.LoanMaturing = loanMaturingRe.MatchString(text)
	m.Flags.OffMarket = offMarketRe.MatchString(text)
	if m.OwnerAgeMin != nil && *m.OwnerAgeMin >= 65 {
		m.Flags.OwnerAge65Plus = true
	}

	Finalize(m)
	return m
}

// Finalize recomputes the derived fields of a mandate: ordered range
// bounds, missing keys and the coverage score. Callers that merge
// remote output into a mandate must re-run it.
func Finalize(m *model.Mandate) {
	if m.Units != nil {
		m.Units.Min, m.Units.Max = orderInt(m.Units.Min, m.Units.Max)
	}
	if m.SizeSf != nil {
		m.SizeSf.Min, m.SizeSf.Max = orderInt(m.SizeSf.Min, m.SizeSf.Max)
	}
	if m.Budget != nil {
		m.Budget.Min, m.Budget.Max = orderInt(m.Budget.Min, m.Budget.Max)
	}
	if m.PricePerUnit != nil {
		m.PricePerUnit.Min, m.PricePerUnit.Max = orderInt(m.PricePerUnit.Min, m.PricePerUnit.Max)
	}
	if m.CapRate != nil {
		m.CapRate.Min, m.CapRate.Max = orderFloat(m.CapRate.Min, m.CapRate.Max)
	}
	if m.PricePerSf != nil {
		m.PricePerSf.Min, m.PricePerSf.Max = orderFloat(m.PricePerSf.Min, m.PricePerSf.Max)
	}
	if m.BuildYear != nil {
		m.BuildYear.After, m.BuildYear.Before = orderInt(m.BuildYear.After, m.BuildYear.Before)
	}

	m.MissingKeys = missingKeys(m)
	m.CoverageScore = coverageScore(m)
}

// missingKeys lists required fields the extractor could not determine,
// in the fixed remediation order.
func missingKeys(m *model.Mandate) []string {
	keys := []string{}
	if m.Intent == "" {
		keys = append(keys, "intent")
	}
	if !m.HasMarket() {
		keys = append(keys, "market")
	}
	if m.AssetType == "" {
		keys = append(keys, "asset_type")
	}
	if !m.HasSize() {
		keys = append(keys, "size")
	}
	if !m.HasPriceSignal() {
		keys = append(keys, "budget")
	}
	return keys
}

// coverageScore is the canonical weighted completeness metric:
// intent +20, asset type +20, market +25, size-or-units +25,
// price-or-cap band +10, capped at 100.
func coverageScore(m *model.Mandate) int {
	score := 0
	if m.Intent != "" {
		score += 20
	}
	if m.AssetType != "" {
		score += 20
	}
	if m.HasMarket() {
		score += 25
	}
	if m.HasSize() {
		score += 25
	}
	if m.HasPriceSignal() {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	return score
}

func extractUnits(text string, m *model.Mandate) {
	if g := unitsRangeRe.FindStringSubmatch(text); g != nil {
		lo := ParseMagnitudeInt(g[1])
		hi := ParseMagnitudeInt(g[2])
		if lo != nil || hi != nil {
			m.Units = &model.IntRange{Min: lo, Max: hi}
		}
		return
	}
	if g := unitsSingleRe.FindStringSubmatch(text); g != nil {
		if v := ParseMagnitudeInt(g[1]); v != nil {
			// "150+ units" leaves the upper bound open.
			if strings.Contains(g[0], "+") {
				m.Units = &model.IntRange{Min: v}
			} else {
				m.Units = &model.IntRange{Min: v, Max: intPtr(*v)}
			}
		}
	}
}

func extractSize(text string, m *model.Mandate) {
	if g := sizeRangeRe.FindStringSubmatch(text); g != nil {
		lo := ParseMagnitudeInt(g[1])
		hi := ParseMagnitudeInt(g[2])
		if lo != nil || hi != nil {
			m.SizeSf = &model.IntRange{Min: lo, Max: hi}
		}
		return
	}
	if g := sizeSingleRe.FindStringSubmatch(text); g != nil {
		if v := ParseMagnitudeInt(g[1]); v != nil {
			if strings.Contains(g[0], "+") {
				m.SizeSf = &model.IntRange{Min: v}
			} else {
				m.SizeSf = &model.IntRange{Min: v, Max: intPtr(*v)}
			}
		}
	}
}

// boundKind interprets a comparator prefix: -1 upper bound, +1 lower
// bound, 0 exact value.
func boundKind(comparator string) int {
	switch strings.ToLower(strings.TrimSpace(comparator)) {
	case "≤", "<=", "under", "below", "up to", "max", "maximum":
		return -1
	case "≥", ">=", "at least", "min", "minimum", "over", "above":
		return 1
	}
	return 0
}

func extractPricePerSf(text string, m *model.Mandate) {
	if g := psfRangeRe.FindStringSubmatch(text); g != nil {
		lo := ParseMagnitude(g[1])
		hi := ParseMagnitude(g[2])
		if lo != nil || hi != nil {
			m.PricePerSf = &model.FloatRange{Min: lo, Max: hi}
		}
		return
	}
	if g := psfSingleRe.FindStringSubmatch(text); g != nil {
		v := ParseMagnitude(g[2])
		if v == nil {
			return
		}
		switch boundKind(g[1]) {
		case -1:
			m.PricePerSf = &model.FloatRange{Max: v}
		case 1:
			m.PricePerSf = &model.FloatRange{Min: v}
		default:
			m.PricePerSf = &model.FloatRange{Min: v, Max: floatPtr(*v)}
		}
	}
}

func extractPerDoor(text string, m *model.Mandate) {
	g := perDoorRe.FindStringSubmatch(text)
	if g == nil {
		return
	}
	v := ParseMagnitudeInt(g[2])
	if v == nil {
		return
	}
	switch boundKind(g[1]) {
	case -1:
		m.PricePerUnit = &model.IntRange{Max: v}
	case 1:
		m.PricePerUnit = &model.IntRange{Min: v}
	default:
		m.PricePerUnit = &model.IntRange{Min: v, Max: intPtr(*v)}
	}
}

func extractCapRate(text string, m *model.Mandate) {
	if g := capRangeRe.FindStringSubmatch(text); g != nil {
		lo := ParsePercent(g[1])
		hi := ParsePercent(g[2])
		if lo != nil || hi != nil {
			m.CapRate = &model.FloatRange{Min: lo, Max: hi}
		}
		return
	}
	apply := func(comparator, value string) bool {
		v := ParsePercent(value)
		if v == nil || *v <= 0 || *v > 20 {
			return false
		}
		switch boundKind(comparator) {
		case -1:
			m.CapRate = &model.FloatRange{Max: v}
		case 1:
			m.CapRate = &model.FloatRange{Min: v}
		default:
			// A bare "6.5% cap" reads as a floor in sourcing language.
			m.CapRate = &model.FloatRange{Min: v}
		}
		return true
	}
	if g := capBeforeRe.FindStringSubmatch(text); g != nil && apply(g[1], g[2]) {
		return
	}
	if g := capAfterRe.FindStringSubmatch(text); g != nil {
		apply(g[1], g[2])
	}
}

func extractBudget(text string, m *model.Mandate) {
	if g := budgetRangeRe.FindStringSubmatch(text); g != nil && !isPerUnitContext(text, g[0]) {
		lo := ParseMagnitudeInt(g[1])
		hi := ParseMagnitudeInt(g[2])
		if lo != nil || hi != nil {
			m.Budget = &model.IntRange{Min: lo, Max: hi}
		}
		return
	}
	if g := budgetSingleRe.FindStringSubmatch(text); g != nil && !isPerUnitContext(text, g[0]) {
		v := ParseMagnitudeInt(g[2])
		if v == nil {
			return
		}
		switch boundKind(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(g[1])), ":")) {
		case -1:
			m.Budget = &model.IntRange{Max: v}
		case 1:
			m.Budget = &model.IntRange{Min: v}
		default:
			m.Budget = &model.IntRange{Min: v, Max: intPtr(*v)}
		}
	}
}

// isPerUnitContext rejects dollar figures that are actually per-door or
// per-SF prices, so "$180k/door" never lands in the budget.
func isPerUnitContext(text, match string) bool {
	idx := strings.Index(text, match)
	if idx < 0 {
		return false
	}
	tail := text[idx+len(match):]
	if len(tail) > 24 {
		tail = tail[:24]
	}
	tail = strings.ToLower(tail)
	for _, marker := range []string{"/door", "/unit", "/key", "/sf", "psf", "per door", "per unit", "per sf", "per square"} {
		if strings.HasPrefix(strings.TrimSpace(tail), strings.TrimPrefix(marker, "/")) || strings.Contains(tail, marker) {
			return true
		}
	}
	return false
}

func extractBuildYear(text string, m *model.Mandate) {
	if g := builtRangeRe.FindStringSubmatch(text); g != nil {
		m.BuildYear = &model.YearRange{After: ParseMagnitudeInt(g[1]), Before: ParseMagnitudeInt(g[2])}
		return
	}
	yr := &model.YearRange{}
	if g := builtAfterRe.FindStringSubmatch(text); g != nil {
		yr.After = ParseMagnitudeInt(g[1])
	}
	if g := builtBeforeRe.FindStringSubmatch(text); g != nil {
		yr.Before = ParseMagnitudeInt(g[1])
	}
	if yr.After == nil && yr.Before == nil {
		if g := builtSingleRe.FindStringSubmatch(text); g != nil {
			v := ParseMagnitudeInt(g[1])
			yr.After = v
			if v != nil && strings.Contains(g[0], "s") {
				// "1980s vintage" spans the decade.
				yr.Before = intPtr(*v + 9)
			}
		}
	}
	if yr.After != nil || yr.Before != nil {
		m.BuildYear = yr
	}
}

func extractOwnerSignals(text string, m *model.Mandate) {
	if g := ownerAgeRe.FindStringSubmatch(text); g != nil {
		if v := ParseMagnitudeInt(g[1]); v != nil && *v >= 40 && *v <= 100 {
			m.OwnerAgeMin = v
		}
	}
	if g := tenureRe.FindStringSubmatch(text); g != nil {
		raw := g[1]
		if raw == "" {
			raw = g[2]
		}
		if v := ParseMagnitudeInt(raw); v != nil && *v > 0 && *v < 80 {
			m.TenureYears = v
		}
	}
}

func extractTiming(text string, m *model.Mandate) {
	g := timingRe.FindStringSubmatch(text)
	if g == nil {
		return
	}
	v := ParseMagnitudeInt(g[1])
	if v == nil {
		return
	}
	months := *v
	unit := strings.ToLower(g[2])
	switch {
	case strings.HasPrefix(unit, "quarter"):
		months *= 3
	case strings.HasPrefix(unit, "year") || strings.HasPrefix(unit, "yr"):
		months *= 12
	}
	m.Timing = &model.Timing{Raw: strings.TrimSpace(g[0]), MonthsToEvent: intPtr(months)}
}
