package parser

import (
	"testing"

	"github.com/dealsense/buybox/internal/model"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.Intent
	}{
		{"acquisition", "Find value-add multifamily in Charlotte", model.IntentAcquisition},
		{"disposition", "Selling a stabilized retail center", model.IntentDisposition},
		{"refinance", "Refinancing ahead of loan maturity", model.IntentRefinance},
		{"1031 wins over acquisition", "1031 exchange buyer looking for NNN retail", model.IntentExchange1031},
		{"sale-leaseback", "Corporate sale-leaseback on our HQ", model.IntentSaleLeaseback},
		{"mezzanine", "Seeking mezz debt for a development", model.IntentMezzanineLoan},
		{"distress", "Distressed workout opportunities only", model.IntentDistress},
		{"no match", "the weather is nice today", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyIntent(tt.text); got != tt.want {
				t.Errorf("ClassifyIntent(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyAssetType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.AssetType
	}{
		{"multifamily", "garden-style apartment communities", model.AssetMultifamily},
		{"industrial", "warehouse and logistics space", model.AssetIndustrial},
		{"retail", "grocery-anchored shopping center", model.AssetRetail},
		{"office", "CBD office building", model.AssetOffice},
		{"self storage declared before industrial", "self storage facilities", model.AssetSelfStorage},
		{"data center", "hyperscale data center campus", model.AssetDataCenter},
		{"hospitality", "limited-service hotel portfolio", model.AssetHospitality},
		{"land", "entitled site for development", model.AssetLand},
		{"no match", "something unrelated", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyAssetType(tt.text); got != tt.want {
				t.Errorf("ClassifyAssetType(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

// Classification is a pure function of the lowercased input: repeated
// calls on identical text must agree.
func TestClassify_Idempotent(t *testing.T) {
	text := "Buying multifamily in the Sunbelt"
	for i := 0; i < 5; i++ {
		if got := ClassifyIntent(text); got != model.IntentAcquisition {
			t.Fatalf("call %d: ClassifyIntent = %q", i, got)
		}
		if got := ClassifyAssetType(text); got != model.AssetMultifamily {
			t.Fatalf("call %d: ClassifyAssetType = %q", i, got)
		}
	}
}

func TestNormalize_ClosedTaxonomy(t *testing.T) {
	if got := model.NormalizeAssetType("strip_center"); got != model.AssetOther {
		t.Errorf("NormalizeAssetType(strip_center) = %q, want other", got)
	}
	if got := model.NormalizeAssetType("multifamily"); got != model.AssetMultifamily {
		t.Errorf("NormalizeAssetType(multifamily) = %q", got)
	}
	if got := model.NormalizeAssetType(""); got != "" {
		t.Errorf("NormalizeAssetType(empty) = %q, want absent", got)
	}
	if got := model.NormalizeIntent("buy_stuff"); got != model.IntentOther {
		t.Errorf("NormalizeIntent(buy_stuff) = %q, want other", got)
	}
}
