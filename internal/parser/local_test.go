package parser

import (
	"reflect"
	"testing"

	"github.com/dealsense/buybox/internal/model"
)

func wantInt(t *testing.T, name string, got *int, want int) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s: got nil, want %d", name, want)
	}
	if *got != want {
		t.Errorf("%s: got %d, want %d", name, *got, want)
	}
}

func wantFloat(t *testing.T, name string, got *float64, want float64) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s: got nil, want %v", name, want)
	}
	if *got != want {
		t.Errorf("%s: got %v, want %v", name, *got, want)
	}
}

func TestParse_MultifamilyMandate(t *testing.T) {
	m := Parse("Find value-add multifamily, 20–40 units, in Charlotte, built 1980–2005, cap ≥ 6.5%, ≤ $180k/door.")

	if m.Intent != model.IntentAcquisition {
		t.Errorf("intent: got %q", m.Intent)
	}
	if m.AssetType != model.AssetMultifamily {
		t.Errorf("asset type: got %q", m.AssetType)
	}
	if m.Market == nil || m.Market.City != "Charlotte" || m.Market.State != "NC" {
		t.Errorf("market: got %+v", m.Market)
	}
	if m.Units == nil {
		t.Fatal("units: got nil")
	}
	wantInt(t, "units.min", m.Units.Min, 20)
	wantInt(t, "units.max", m.Units.Max, 40)
	if m.BuildYear == nil {
		t.Fatal("build year: got nil")
	}
	wantInt(t, "build_year.after", m.BuildYear.After, 1980)
	wantInt(t, "build_year.before", m.BuildYear.Before, 2005)
	if m.CapRate == nil {
		t.Fatal("cap rate: got nil")
	}
	wantFloat(t, "cap_rate.min", m.CapRate.Min, 6.5)
	if m.CapRate.Max != nil {
		t.Errorf("cap_rate.max: got %v, want open", *m.CapRate.Max)
	}
	if m.PricePerUnit == nil {
		t.Fatal("price per unit: got nil")
	}
	wantInt(t, "price_per_unit.max", m.PricePerUnit.Max, 180000)
	if m.PricePerUnit.Min != nil {
		t.Errorf("price_per_unit.min: got %v, want open", *m.PricePerUnit.Min)
	}
	// "$180k/door" must never land in the budget.
	if m.Budget != nil {
		t.Errorf("budget: got %+v, want nil", m.Budget)
	}
	if len(m.MissingKeys) != 0 {
		t.Errorf("missing keys: got %v, want none", m.MissingKeys)
	}
	if m.CoverageScore != 100 {
		t.Errorf("coverage: got %d, want 100", m.CoverageScore)
	}
}

func TestParse_IndustrialWithBudgetRange(t *testing.T) {
	m := Parse("Targeting industrial 50k–100k SF in Phoenix, $12M–$18M")

	if m.AssetType != model.AssetIndustrial {
		t.Errorf("asset type: got %q", m.AssetType)
	}
	if m.Market == nil || m.Market.City != "Phoenix" {
		t.Errorf("market: got %+v", m.Market)
	}
	if m.SizeSf == nil {
		t.Fatal("size: got nil")
	}
	wantInt(t, "size_sf.min", m.SizeSf.Min, 50000)
	wantInt(t, "size_sf.max", m.SizeSf.Max, 100000)
	if m.Budget == nil {
		t.Fatal("budget: got nil")
	}
	wantInt(t, "budget.min", m.Budget.Min, 12000000)
	wantInt(t, "budget.max", m.Budget.Max, 18000000)
}

func TestParse_OwnerSignalsAndFlags(t *testing.T) {
	m := Parse("Off-market multifamily, owners aged 70+, held 15+ years, loan maturing in 9 months")

	if !m.Flags.OffMarket {
		t.Error("off_market flag not set")
	}
	if !m.Flags.LoanMaturing {
		t.Error("loan_maturing flag not set")
	}
	if !m.Flags.OwnerAge65Plus {
		t.Error("owner_age_65_plus flag not set")
	}
	wantInt(t, "owner_age_min", m.OwnerAgeMin, 70)
	wantInt(t, "tenure_years_min", m.TenureYears, 15)
	if m.Timing == nil {
		t.Fatal("timing: got nil")
	}
	wantInt(t, "timing.months", m.Timing.MonthsToEvent, 9)
}

func TestParse_TimingUnits(t *testing.T) {
	tests := []struct {
		text   string
		months int
	}{
		{"close within 2 quarters", 6},
		{"close within the next 18 months", 18},
		{"deploy in 2 years", 24},
	}
	for _, tt := range tests {
		m := Parse(tt.text)
		if m.Timing == nil {
			t.Fatalf("%q: timing nil", tt.text)
		}
		if got := *m.Timing.MonthsToEvent; got != tt.months {
			t.Errorf("%q: got %d months, want %d", tt.text, got, tt.months)
		}
	}
}

func TestParse_OpenEndedBounds(t *testing.T) {
	m := Parse("150+ units, retail under $250/sf, up to $30M")

	if m.Units == nil || m.Units.Min == nil || *m.Units.Min != 150 {
		t.Errorf("units.min: got %+v", m.Units)
	}
	if m.Units.Max != nil {
		t.Errorf("units.max: got %v, want open", *m.Units.Max)
	}
	if m.PricePerSf == nil || m.PricePerSf.Max == nil || *m.PricePerSf.Max != 250 {
		t.Errorf("price_per_sf: got %+v", m.PricePerSf)
	}
	if m.Budget == nil || m.Budget.Max == nil || *m.Budget.Max != 30000000 {
		t.Errorf("budget: got %+v", m.Budget)
	}
	if m.Budget.Min != nil {
		t.Errorf("budget.min: got %v, want open", *m.Budget.Min)
	}
}

func TestParse_BuildYearVariants(t *testing.T) {
	m := Parse("built after 2000")
	if m.BuildYear == nil || m.BuildYear.After == nil || *m.BuildYear.After != 2000 {
		t.Errorf("built after: got %+v", m.BuildYear)
	}

	m = Parse("1980s vintage product")
	if m.BuildYear == nil {
		t.Fatal("decade vintage: got nil")
	}
	wantInt(t, "build_year.after", m.BuildYear.After, 1980)
	wantInt(t, "build_year.before", m.BuildYear.Before, 1989)
}

func TestParse_ReversedRangeIsReordered(t *testing.T) {
	m := Parse("40–20 units in Austin")
	if m.Units == nil {
		t.Fatal("units: got nil")
	}
	wantInt(t, "units.min", m.Units.Min, 20)
	wantInt(t, "units.max", m.Units.Max, 40)
}

func TestParse_EmptyInput(t *testing.T) {
	m := Parse("   ")
	if m == nil {
		t.Fatal("Parse returned nil")
	}
	if m.CoverageScore != 0 {
		t.Errorf("coverage: got %d, want 0", m.CoverageScore)
	}
	want := []string{"intent", "market", "asset_type", "size", "budget"}
	if !reflect.DeepEqual(m.MissingKeys, want) {
		t.Errorf("missing keys: got %v, want %v", m.MissingKeys, want)
	}
}

// Adding recognized fields never lowers the coverage score.
func TestParse_CoverageMonotonic(t *testing.T) {
	steps := []string{
		"deals",
		"buy multifamily",
		"buy multifamily in Nashville",
		"buy multifamily in Nashville, 100+ units",
		"buy multifamily in Nashville, 100+ units, budget of $40M",
	}
	prev := -1
	for _, text := range steps {
		m := Parse(text)
		if m.CoverageScore < prev {
			t.Errorf("%q: coverage %d dropped below %d", text, m.CoverageScore, prev)
		}
		prev = m.CoverageScore
	}
	if prev != 100 {
		t.Errorf("final coverage: got %d, want 100", prev)
	}
}
