// Package refine turns an incomplete mandate into an ordered remediation
// plan the caller can use to prompt for the missing criteria.
package refine

import "github.com/dealsense/buybox/internal/model"

// Item is one missing-field prompt with example completions.
type Item struct {
	Key      string   `json:"key"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Examples []string `json:"examples"`
}

// Plan is the ordered list of remediation items for a mandate.
type Plan struct {
	Items []Item `json:"items"`
}

// BuildPlan inspects a mandate for missing required fields and produces
// a remediation plan. Pure function; a complete mandate yields an empty
// item list. Output order follows the fixed field-check order.
func BuildPlan(m *model.Mandate) Plan {
	plan := Plan{Items: []Item{}}
	if m == nil {
		m = &model.Mandate{}
	}

	if m.Intent == "" {
		plan.Items = append(plan.Items, Item{
			Key:     "intent",
			Title:   "Transaction intent",
			Message: "Are you acquiring, selling, refinancing, or something else?",
			Examples: []string{
				"Acquiring value-add deals",
				"Selling a stabilized asset",
				"Refinancing ahead of maturity",
			},
		})
	}

	if !m.HasMarket() {
		plan.Items = append(plan.Items, Item{
			Key:     "market",
			Title:   "Target market",
			Message: "Which city or metro are you focused on?",
			Examples: []string{
				"Charlotte, NC",
				"DFW metro",
				"Sunbelt secondary markets",
			},
		})
	}

	if m.AssetType == "" {
		plan.Items = append(plan.Items, Item{
			Key:     "asset_type",
			Title:   "Asset type",
			Message: "What property type are you targeting?",
			Examples: []string{
				"Garden-style multifamily",
				"Infill industrial",
				"Grocery-anchored retail",
			},
		})
	}

	// Size branch: multifamily wants unit counts, everything else wants
	// square footage; with no asset type, suggest both.
	if !m.HasSize() {
		switch {
		case m.AssetType == model.AssetMultifamily:
			plan.Items = append(plan.Items, Item{
				Key:     "units",
				Title:   "Unit count",
				Message: "How many units are you looking for?",
				Examples: []string{
					"20–40 units",
					"100+ units",
				},
			})
		case m.AssetType != "":
			plan.Items = append(plan.Items, Item{
				Key:     "size_sf",
				Title:   "Building size",
				Message: "What square footage range fits your strategy?",
				Examples: []string{
					"50k–150k SF",
					"200k+ SF",
				},
			})
		default:
			plan.Items = append(plan.Items, Item{
				Key:     "size",
				Title:   "Deal size",
				Message: "What size range fits: unit count or square footage?",
				Examples: []string{
					"20–40 units",
					"50k–150k SF",
				},
			})
		}
	}

	if !m.HasPriceSignal() {
		plan.Items = append(plan.Items, Item{
			Key:     "budget",
			Title:   "Budget or yield target",
			Message: "What's your budget range or target cap rate?",
			Examples: []string{
				"$5M–$15M",
				"6.5%+ cap",
				"Under $180k/door",
			},
		})
	}

	return plan
}
