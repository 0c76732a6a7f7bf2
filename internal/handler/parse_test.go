package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dealsense/buybox/internal/service"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	// nil chat client and nil activity log: everything runs locally.
	remote := service.NewRemoteParser(nil, zerolog.Nop())
	h := New(remote, nil, nil, zerolog.Nop(), 12, 60)

	r := gin.New()
	r.GET("/health", h.Health)
	api := r.Group("/api/v1")
	api.POST("/parse", h.Parse)
	api.POST("/prospects", h.Prospects)
	api.POST("/refine-plan", h.RefinePlan)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := doJSON(t, testRouter(), http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
}

func TestParse_EmptyTextIsBadRequest(t *testing.T) {
	r := testRouter()
	for _, body := range []string{`{}`, `{"text": ""}`, `{"text": "   "}`} {
		w := doJSON(t, r, http.MethodPost, "/api/v1/parse", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status got %d, want 400", body, w.Code)
			continue
		}
		var resp struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("body %s: invalid error envelope: %v", body, err)
		}
		if resp.Error.Code != CodeBadRequest {
			t.Errorf("body %s: error code got %q, want %q", body, resp.Error.Code, CodeBadRequest)
		}
	}
}

func TestParse_ReturnsMandate(t *testing.T) {
	w := doJSON(t, testRouter(), http.MethodPost, "/api/v1/parse",
		`{"text": "Find value-add multifamily, 20–40 units, in Charlotte, cap ≥ 6.5%"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	var m struct {
		AssetType     string `json:"asset_type"`
		CoverageScore int    `json:"coverage_score"`
		Market        *struct {
			City string `json:"city"`
		} `json:"market"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("invalid mandate JSON: %v", err)
	}
	if m.AssetType != "multifamily" {
		t.Errorf("asset_type: got %q", m.AssetType)
	}
	if m.Market == nil || m.Market.City != "Charlotte" {
		t.Errorf("market: got %+v", m.Market)
	}
	if m.CoverageScore != 100 {
		t.Errorf("coverage_score: got %d", m.CoverageScore)
	}
}

func TestProspects_DefaultAndCappedCount(t *testing.T) {
	r := testRouter()

	total := func(body []byte) int {
		var res struct {
			Prospects []json.RawMessage `json:"prospects"`
			Qualified []json.RawMessage `json:"qualified"`
			Booked    []json.RawMessage `json:"booked"`
		}
		if err := json.Unmarshal(body, &res); err != nil {
			t.Fatalf("invalid synthesis JSON: %v", err)
		}
		return len(res.Prospects) + len(res.Qualified) + len(res.Booked)
	}

	w := doJSON(t, r, http.MethodPost, "/api/v1/prospects",
		`{"mandate": {"asset_type": "multifamily"}, "seed_text": "abc"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	if got := total(w.Body.Bytes()); got != 12 {
		t.Errorf("default count: got %d, want 12", got)
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/prospects",
		`{"mandate": {"asset_type": "multifamily"}, "seed_text": "abc", "count": 500}`)
	if got := total(w.Body.Bytes()); got != 60 {
		t.Errorf("capped count: got %d, want 60", got)
	}
}

func TestProspects_MissingMandateIsBadRequest(t *testing.T) {
	w := doJSON(t, testRouter(), http.MethodPost, "/api/v1/prospects", `{"seed_text": "abc"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestRefinePlan_ReturnsOrderedItems(t *testing.T) {
	w := doJSON(t, testRouter(), http.MethodPost, "/api/v1/refine-plan",
		`{"mandate": {"asset_type": "office"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	var plan struct {
		Items []struct {
			Key string `json:"key"`
		} `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &plan); err != nil {
		t.Fatalf("invalid plan JSON: %v", err)
	}
	want := []string{"intent", "market", "size_sf", "budget"}
	if len(plan.Items) != len(want) {
		t.Fatalf("items: got %d, want %d", len(plan.Items), len(want))
	}
	for i, it := range plan.Items {
		if it.Key != want[i] {
			t.Errorf("item %d: got %q, want %q", i, it.Key, want[i])
		}
	}
}
