package parser

import (
	"regexp"
	"strings"

	"github.com/dealsense/buybox/internal/model"
)

// cityStateRe matches "Charlotte, NC" / "San Francisco, CA" style tokens
// in the original (non-lowercased) text.
var cityStateRe = regexp.MustCompile(`\b([A-Z][a-z]+(?:[ -][A-Z][a-z]+)*),\s*([A-Z]{2})\b`)

// metroEntry maps a set of lowercase aliases to a canonical market.
// Entries are evaluated in declaration order; first match wins.
type metroEntry struct {
	aliases []string
	market  model.Market
}

var metroGazetteer = []metroEntry{
	{[]string{"bay area", "sf bay", "san francisco"}, model.Market{City: "San Francisco", State: "CA", Metro: "SF Bay Area", Country: "US"}},
	{[]string{"silicon valley", "san jose"}, model.Market{City: "San Jose", State: "CA", Metro: "SF Bay Area", Country: "US"}},
	{[]string{"socal", "southern california", "los angeles", "la metro"}, model.Market{City: "Los Angeles", State: "CA", Metro: "Greater Los Angeles", Country: "US"}},
	{[]string{"dfw", "dallas-fort worth", "dallas fort worth", "dallas"}, model.Market{City: "Dallas", State: "TX", Metro: "Dallas-Fort Worth", Country: "US"}},
	{[]string{"fort worth"}, model.Market{City: "Fort Worth", State: "TX", Metro: "Dallas-Fort Worth", Country: "US"}},
	{[]string{"houston"}, model.Market{City: "Houston", State: "TX", Metro: "Greater Houston", Country: "US"}},
	{[]string{"austin"}, model.Market{City: "Austin", State: "TX", Metro: "Austin Metro", Country: "US"}},
	{[]string{"san antonio"}, model.Market{City: "San Antonio", State: "TX", Metro: "San Antonio Metro", Country: "US"}},
	{[]string{"atlanta", "atl metro"}, model.Market{City: "Atlanta", State: "GA", Metro: "Metro Atlanta", Country: "US"}},
	{[]string{"charlotte"}, model.Market{City: "Charlotte", State: "NC", Metro: "Charlotte Metro", Country: "US"}},
	{[]string{"raleigh", "research triangle", "raleigh-durham"}, model.Market{City: "Raleigh", State: "NC", Metro: "Research Triangle", Country: "US"}},
	{[]string{"nashville"}, model.Market{City: "Nashville", State: "TN", Metro: "Nashville Metro", Country: "US"}},
	{[]string{"phoenix", "valley of the sun"}, model.Market{City: "Phoenix", State: "AZ", Metro: "Phoenix Metro", Country: "US"}},
	{[]string{"tucson"}, model.Market{City: "Tucson", State: "AZ", Metro: "Tucson Metro", Country: "US"}},
	{[]string{"denver", "front range"}, model.Market{City: "Denver", State: "CO", Metro: "Denver Metro", Country: "US"}},
	{[]string{"salt lake", "slc"}, model.Market{City: "Salt Lake City", State: "UT", Metro: "Wasatch Front", Country: "US"}},
	{[]string{"las vegas", "vegas"}, model.Market{City: "Las Vegas", State: "NV", Metro: "Las Vegas Valley", Country: "US"}},
	{[]string{"seattle", "puget sound"}, model.Market{City: "Seattle", State: "WA", Metro: "Puget Sound", Country: "US"}},
	{[]string{"portland"}, model.Market{City: "Portland", State: "OR", Metro: "Portland Metro", Country: "US"}},
	{[]string{"nyc", "new york", "manhattan", "tri-state"}, model.Market{City: "New York", State: "NY", Metro: "New York Metro", Country: "US"}},
	{[]string{"boston"}, model.Market{City: "Boston", State: "MA", Metro: "Greater Boston", Country: "US"}},
	{[]string{"philadelphia", "philly"}, model.Market{City: "Philadelphia", State: "PA", Metro: "Philadelphia Metro", Country: "US"}},
	{[]string{"washington dc", "dc metro", "dmv", "northern virginia", "nova"}, model.Market{City: "Washington", State: "DC", Metro: "DC Metro", Country: "US"}},
	{[]string{"chicago", "chicagoland"}, model.Market{City: "Chicago", State: "IL", Metro: "Chicagoland", Country: "US"}},
	{[]string{"minneapolis", "twin cities"}, model.Market{City: "Minneapolis", State: "MN", Metro: "Twin Cities", Country: "US"}},
	{[]string{"detroit"}, model.Market{City: "Detroit", State: "MI", Metro: "Metro Detroit", Country: "US"}},
	{[]string{"columbus"}, model.Market{City: "Columbus", State: "OH", Metro: "Columbus Metro", Country: "US"}},
	{[]string{"miami", "south florida"}, model.Market{City: "Miami", State: "FL", Metro: "South Florida", Country: "US"}},
	{[]string{"tampa", "tampa bay"}, model.Market{City: "Tampa", State: "FL", Metro: "Tampa Bay", Country: "US"}},
	{[]string{"orlando"}, model.Market{City: "Orlando", State: "FL", Metro: "Orlando Metro", Country: "US"}},
	{[]string{"jacksonville"}, model.Market{City: "Jacksonville", State: "FL", Metro: "Jacksonville Metro", Country: "US"}},
	{[]string{"kansas city"}, model.Market{City: "Kansas City", State: "MO", Metro: "Kansas City Metro", Country: "US"}},
	{[]string{"indianapolis", "indy"}, model.Market{City: "Indianapolis", State: "IN", Metro: "Indianapolis Metro", Country: "US"}},
	{[]string{"sunbelt", "sun belt"}, model.Market{Metro: "Sunbelt", Country: "US"}},
	{[]string{"midwest"}, model.Market{Metro: "Midwest", Country: "US"}},
	{[]string{"southeast"}, model.Market{Metro: "Southeast", Country: "US"}},
	{[]string{"texas triangle"}, model.Market{Metro: "Texas Triangle", Country: "US"}},
}

// ExtractMarket recognizes a market from free text. A "City, ST" token in
// the original casing takes precedence; otherwise the metro gazetteer is
// scanned in declaration order against the lowercased text.
func ExtractMarket(text string) *model.Market {
	if m := cityStateRe.FindStringSubmatch(text); m != nil {
		mk := &model.Market{City: m[1], State: m[2], Country: "US"}
		// Upgrade with metro name when the city is a known gazetteer entry.
		lowerCity := strings.ToLower(m[1])
		for _, entry := range metroGazetteer {
			for _, alias := range entry.aliases {
				if alias == lowerCity {
					mk.Metro = entry.market.Metro
				}
			}
		}
		return mk
	}

	lower := strings.ToLower(text)
	for _, entry := range metroGazetteer {
		for _, alias := range entry.aliases {
			if strings.Contains(lower, alias) {
				mk := entry.market
				return &mk
			}
		}
	}
	return nil
}
