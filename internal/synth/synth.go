package synth

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dealsense/buybox/internal/model"
)

// Fixed pools. Every generated contact and address comes from here, so
// regenerating with the same seed reproduces the list byte for byte.
var (
	firstNames = []string{
		"Margaret", "Robert", "Linda", "James", "Patricia", "David", "Carol",
		"Richard", "Susan", "Thomas", "Nancy", "Charles", "Diane", "Frank",
		"Janet", "Gerald", "Elaine", "Walter", "Gloria", "Harold",
	}
	lastNames = []string{
		"Whitfield", "Carmichael", "Delgado", "Okafor", "Brennan", "Soto",
		"Lindqvist", "Marchetti", "Huang", "Petrov", "Askew", "Tran",
		"Goldberg", "Navarro", "Fitzpatrick", "Osei", "Kowalski", "Reyes",
	}
	streetNames = []string{
		"Commerce", "Lakeview", "Harrison", "Industrial", "Oakdale",
		"Riverside", "Meridian", "Linden", "Prospect", "Sheridan",
		"Fairfield", "Monroe", "Highland", "Gateway", "Sycamore",
	}
	streetTypes = []string{"Ave", "Blvd", "Dr", "Pkwy", "Rd", "St", "Way"}
	subAreas    = []string{
		"North Corridor", "Midtown", "East End", "South Gateway",
		"Riverside District", "Airport Submarket", "University District",
		"West Loop", "Old Town", "Lakefront",
	}
	areaCodes = []string{"704", "615", "480", "312", "214", "404", "720", "206"}
)

// assetNoun maps an asset type to the noun used in generated titles.
var assetNoun = map[model.AssetType]string{
	model.AssetMultifamily: "Multifamily Community",
	model.AssetIndustrial:  "Industrial Facility",
	model.AssetRetail:      "Retail Center",
	model.AssetOffice:      "Office Building",
	model.AssetLand:        "Development Site",
	model.AssetHospitality: "Hotel Property",
	model.AssetSelfStorage: "Self-Storage Facility",
	model.AssetDataCenter:  "Data Center",
	model.AssetOther:       "Commercial Asset",
}

// Synthesize deterministically generates count synthetic prospects
// consistent with the mandate and partitions them into pipeline buckets.
// The same (mandate, seedText, count) always produces identical output.
func Synthesize(m *model.Mandate, seedText string, count int) model.SynthesisResult {
	if m == nil {
		m = &model.Mandate{}
	}
	if count <= 0 {
		count = 0
	}
	baseSeed := HashSeed(m.CanonicalJSON() + seedText)

	prospects := make([]model.Prospect, 0, count)
	for i := 0; i < count; i++ {
		p := generate(m, baseSeed, i)
		if withinBounds(m, p) {
			prospects = append(prospects, p)
		}
	}

	return partition(prospects)
}

// generate builds prospect i from its own generator, seeded baseSeed+i.
func generate(m *model.Mandate, baseSeed uint32, i int) model.Prospect {
	g := newLCG(baseSeed + uint32(i))

	city, state := "Target City", ""
	if m.Market != nil {
		if m.Market.City != "" {
			city = m.Market.City
		} else if m.Market.Metro != "" {
			city = m.Market.Metro
		}
		state = m.Market.State
	}

	p := model.Prospect{
		ID:      fmt.Sprintf("prospect_%08x_%02d", baseSeed, i),
		City:    city,
		State:   state,
		SubArea: g.pick(subAreas),
		Address: fmt.Sprintf("%d %s %s", g.intBetween(100, 9800), g.pick(streetNames), g.pick(streetTypes)),
	}

	sampleScale(m, g, &p)
	p.BuiltYear = sampleBuiltYear(m, g)
	p.PriceEstimate = samplePrice(m, g, &p)
	p.Title = buildTitle(m.AssetType, &p)
	p.Contact = sampleContact(g)
	p.Outreach = model.OutreachChannels{
		Email:     sampleChannel(g),
		SMS:       sampleChannel(g),
		Call:      sampleChannel(g),
		Voicemail: sampleChannel(g),
	}
	p.MatchReason = matchReason(m, &p)
	return p
}

// sampleScale picks units or square footage inside the mandate's range,
// or a ±40% band around a single declared bound, or a default band.
func sampleScale(m *model.Mandate, g *lcg, p *model.Prospect) {
	useUnits := m.AssetType == model.AssetMultifamily
	if m.Units != nil && (m.Units.Min != nil || m.Units.Max != nil) {
		useUnits = true
	}
	if m.SizeSf != nil && (m.SizeSf.Min != nil || m.SizeSf.Max != nil) && m.Units == nil {
		useUnits = false
	}

	if useUnits {
		lo, hi := rangeBounds(m.Units, 20, 300)
		v := g.intBetween(lo, hi)
		p.Units = &v
		return
	}
	lo, hi := rangeBounds(m.SizeSf, 20_000, 400_000)
	v := g.intBetween(lo, hi)
	p.SizeSf = &v
}

// rangeBounds resolves sampling bounds from a range: both bounds if set,
// a ±40% band around a single bound, or the provided defaults.
func rangeBounds(r *model.IntRange, defLo, defHi int) (int, int) {
	if r == nil || (r.Min == nil && r.Max == nil) {
		return defLo, defHi
	}
	if r.Min != nil && r.Max != nil {
		return *r.Min, *r.Max
	}
	var anchor int
	if r.Min != nil {
		anchor = *r.Min
	} else {
		anchor = *r.Max
	}
	lo := int(float64(anchor) * 0.6)
	hi := int(float64(anchor) * 1.4)
	if r.Min != nil && lo < anchor {
		lo = anchor
	}
	if r.Max != nil && hi > anchor {
		hi = anchor
	}
	if lo < 1 {
		lo = 1
	}
	return lo, hi
}

func sampleBuiltYear(m *model.Mandate, g *lcg) int {
	lo, hi := 1960, time.Now().Year()
	if m.BuildYear != nil {
		if m.BuildYear.After != nil {
			lo = *m.BuildYear.After
		}
		if m.BuildYear.Before != nil {
			hi = *m.BuildYear.Before
		}
	}
	if hi < lo {
		hi = lo
	}
	return g.intBetween(lo, hi)
}

// samplePrice derives a price estimate from the budget, then per-door
// or per-SF bounds, then a synthetic per-square-foot multiplier.
func samplePrice(m *model.Mandate, g *lcg, p *model.Prospect) int {
	if m.Budget != nil && (m.Budget.Min != nil || m.Budget.Max != nil) {
		lo, hi := rangeBounds(m.Budget, 0, 0)
		return roundTo(g.intBetween(lo, hi), 10_000)
	}
	if p.Units != nil {
		if m.PricePerUnit != nil && (m.PricePerUnit.Min != nil || m.PricePerUnit.Max != nil) {
			lo, hi := rangeBounds(m.PricePerUnit, 0, 0)
			return roundTo(*p.Units*g.intBetween(lo, hi), 10_000)
		}
		return roundTo(*p.Units*g.intBetween(120_000, 350_000), 10_000)
	}
	size := 0
	if p.SizeSf != nil {
		size = *p.SizeSf
	}
	if m.PricePerSf != nil && (m.PricePerSf.Min != nil || m.PricePerSf.Max != nil) {
		lo, hi := floatBounds(m.PricePerSf, 80, 260)
		psf := lo + g.float64()*(hi-lo)
		return roundTo(int(float64(size)*psf), 10_000)
	}
	psf := 80 + g.float64()*180
	return roundTo(int(float64(size)*psf), 10_000)
}

func floatBounds(r *model.FloatRange, defLo, defHi float64) (float64, float64) {
	lo, hi := defLo, defHi
	if r.Min != nil {
		lo = *r.Min
	}
	if r.Max != nil {
		hi = *r.Max
	}
	if r.Min != nil && r.Max == nil {
		hi = lo * 1.4
	}
	if r.Max != nil && r.Min == nil {
		lo = hi * 0.6
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func roundTo(v, step int) int {
	if step <= 0 {
		return v
	}
	return ((v + step/2) / step) * step
}

func buildTitle(asset model.AssetType, p *model.Prospect) string {
	noun, ok := assetNoun[asset]
	if !ok {
		noun = "Commercial Asset"
	}
	if p.Units != nil {
		return fmt.Sprintf("%d-Unit %s", *p.Units, noun)
	}
	if p.SizeSf != nil {
		return fmt.Sprintf("%s SF %s", formatThousands(*p.SizeSf), noun)
	}
	return noun
}

func formatThousands(v int) string {
	s := fmt.Sprintf("%d", v)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}

func sampleContact(g *lcg) model.Contact {
	first := g.pick(firstNames)
	last := g.pick(lastNames)
	return model.Contact{
		Name:  first + " " + last,
		Email: fmt.Sprintf("%s.%s@%s-holdings.example.com", strings.ToLower(first), strings.ToLower(last), strings.ToLower(last)),
		// 555-01XX is the reserved fictional number range.
		Phone: fmt.Sprintf("(%s) 555-01%02d", g.pick(areaCodes), g.intBetween(0, 99)),
	}
}

// sampleChannel draws a three-way categorical: ~55% green, ~30% red,
// ~15% gray.
func sampleChannel(g *lcg) model.ChannelStatus {
	r := g.float64()
	switch {
	case r < 0.55:
		return model.ChannelGreen
	case r < 0.85:
		return model.ChannelRed
	default:
		return model.ChannelGray
	}
}

// matchReason explains which mandate constraints the prospect satisfies.
func matchReason(m *model.Mandate, p *model.Prospect) string {
	reasons := []string{}
	if m.HasMarket() {
		reasons = append(reasons, "In "+p.City)
	}
	if m.Units != nil && p.Units != nil {
		reasons = append(reasons, "Unit count in range")
	}
	if m.SizeSf != nil && p.SizeSf != nil {
		reasons = append(reasons, "Size in range")
	}
	if m.BuildYear != nil {
		reasons = append(reasons, fmt.Sprintf("%d vintage", p.BuiltYear))
	}
	if m.Budget != nil {
		reasons = append(reasons, "Price within budget")
	}
	if m.Flags.LoanMaturing {
		reasons = append(reasons, "Loan maturity window")
	}
	if m.Flags.OwnerAge65Plus {
		reasons = append(reasons, "Long-tenure owner profile")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "General market fit")
	}
	return strings.Join(reasons, "; ")
}

// withinBounds is a defensive invariant check: sampling already respects
// the mandate's ranges, but anything that escapes them is discarded.
func withinBounds(m *model.Mandate, p model.Prospect) bool {
	if m.Units != nil && p.Units != nil {
		if m.Units.Min != nil && *p.Units < *m.Units.Min {
			return false
		}
		if m.Units.Max != nil && *p.Units > *m.Units.Max {
			return false
		}
	}
	if m.SizeSf != nil && p.SizeSf != nil {
		if m.SizeSf.Min != nil && *p.SizeSf < *m.SizeSf.Min {
			return false
		}
		if m.SizeSf.Max != nil && *p.SizeSf > *m.SizeSf.Max {
			return false
		}
	}
	return true
}

// partition splits the list by index at the cumulative 50% and 83% cut
// points into prospects / qualified / booked.
func partition(all []model.Prospect) model.SynthesisResult {
	n := len(all)
	c1 := int(math.Round(float64(n) * 0.50))
	c2 := int(math.Round(float64(n) * 0.83))
	if c2 < c1 {
		c2 = c1
	}
	if c2 > n {
		c2 = n
	}
	return model.SynthesisResult{
		Prospects: all[:c1],
		Qualified: all[c1:c2],
		Booked:    all[c2:],
	}
}
