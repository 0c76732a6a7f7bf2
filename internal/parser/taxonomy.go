package parser

import (
	"strings"

	"github.com/dealsense/buybox/internal/model"
)

// synonymRule maps a set of lowercase substrings to one taxonomy category.
// Rules are evaluated in declaration order against the lowercased input;
// the first rule with any matching substring wins. This is a deliberate,
// simple tie-break rather than a longest-match search.
type synonymRule[T ~string] struct {
	patterns []string
	category T
}

var intentRules = []synonymRule[model.Intent]{
	{[]string{"1031", "exchange buyer", "like-kind"}, model.IntentExchange1031},
	{[]string{"sale-leaseback", "sale leaseback", "leaseback"}, model.IntentSaleLeaseback},
	{[]string{"ground lease", "ground-lease"}, model.IntentGroundLease},
	{[]string{"mezz", "mezzanine"}, model.IntentMezzanineLoan},
	{[]string{"pref equity", "preferred equity"}, model.IntentPreferredEquity},
	{[]string{"joint venture", " jv ", "jv partner", "co-gp", "co-invest"}, model.IntentJointVenture},
	{[]string{"distress", "workout", "restructur", "special servic", "foreclos", "reo "}, model.IntentDistress},
	{[]string{"refinanc", "refi ", "recapitaliz", "recap "}, model.IntentRefinance},
	{[]string{"dispos", "selling", "sell ", "divest", "exit ", "list for sale"}, model.IntentDisposition},
	{[]string{"lease up", "leasing", "tenant rep", "for lease", "to lease", "space for"}, model.IntentLease},
	{[]string{"acqui", "buy", "purchas", "looking for", "find ", "seeking", "target", "source", "invest in"}, model.IntentAcquisition},
}

var assetRules = []synonymRule[model.AssetType]{
	{[]string{"multifamily", "multi-family", "apartment", "garden-style", "mid-rise resi", "bfr", "build-to-rent", "btr"}, model.AssetMultifamily},
	{[]string{"self storage", "self-storage", "mini storage"}, model.AssetSelfStorage},
	{[]string{"data center", "data-center", "datacenter", "colocation", "colo facility"}, model.AssetDataCenter},
	{[]string{"industrial", "warehouse", "logistics", "distribution center", "flex space", "light manufacturing"}, model.AssetIndustrial},
	{[]string{"retail", "shopping center", "strip center", "strip mall", "grocery-anchored", "nnn "}, model.AssetRetail},
	{[]string{"office", "cbd tower", "medical office", "mob "}, model.AssetOffice},
	{[]string{"hotel", "hospitality", "resort", "motel", "lodging"}, model.AssetHospitality},
	{[]string{"land", "development site", "entitled site", "acreage", "infill site"}, model.AssetLand},
}

// ClassifyIntent maps free text to the closed intent taxonomy.
// Pure function of the lowercased input; no match returns "".
func ClassifyIntent(text string) model.Intent {
	lower := strings.ToLower(text)
	for _, rule := range intentRules {
		for _, p := range rule.patterns {
			if strings.Contains(lower, p) {
				return rule.category
			}
		}
	}
	return ""
}

// ClassifyAssetType maps free text to the closed asset-type taxonomy.
func ClassifyAssetType(text string) model.AssetType {
	lower := strings.ToLower(text)
	for _, rule := range assetRules {
		for _, p := range rule.patterns {
			if strings.Contains(lower, p) {
				return rule.category
			}
		}
	}
	return ""
}
