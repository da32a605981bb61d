package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/merchkit/cross-sell-service/internal/catalog"
	"github.com/merchkit/cross-sell-service/internal/domain"
	"github.com/merchkit/cross-sell-service/internal/engine"
	"github.com/merchkit/cross-sell-service/internal/memory"
	"github.com/rs/zerolog"
)

func testCatalog() *catalog.Store {
	return catalog.New([]domain.Product{
		{ID: "prod_1", Name: "UltraBook Pro 14 Laptop", Category: "electronics", Price: 1199.00, CrossSell: []string{"prod_2", "prod_3"}},
		{ID: "prod_2", Name: "Wireless Mouse", Category: "accessories", Price: 24.99},
		{ID: "prod_3", Name: "Laptop Sleeve", Category: "accessories", Price: 35.00},
		{ID: "prod_4", Name: "Monitor", Category: "electronics", Price: 329.00, CrossSell: []string{"prod_2"}},
	})
}

// testRouter wires the handler behind the same routes the service registers,
// without the logging middleware.
func testRouter() (http.Handler, *memory.ShortTerm) {
	cat := testCatalog()
	shortTerm := memory.NewShortTerm(10)
	eng := engine.New(cat, nil, shortTerm, nil, nil, zerolog.Nop())
	h := NewHandler(eng, cat, shortTerm, nil, false, zerolog.Nop())

	r := chi.NewRouter()
	r.Post("/api/recommend", h.Recommend)
	r.Post("/api/recommend/batch", h.BatchRecommend)
	r.Post("/api/search", h.Search)
	r.Get("/api/status", h.Status)
	r.Get("/api/sessions", h.ListSessions)
	r.Get("/api/sessions/{sessionID}/history", h.SessionHistory)
	r.Delete("/api/sessions/{sessionID}", h.ClearSession)
	return r, shortTerm
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
	return out
}

func TestRecommendSuccess(t *testing.T) {
	r, _ := testRouter()
	rec := doJSON(t, r, http.MethodPost, "/api/recommend",
		`{"product_id": "prod_1", "session_id": "s1", "limit": 2}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[RecommendationResponse](t, rec)
	if resp.Status != "success" || resp.Mode != "rule" {
		t.Errorf("unexpected envelope: %+v", resp)
	}
	if len(resp.Recommendations) != 2 || resp.Metadata.TotalCount != 2 {
		t.Errorf("expected 2 recommendations, got %d (count %d)", len(resp.Recommendations), resp.Metadata.TotalCount)
	}
	if resp.Recommendations[0].ProductID != "prod_2" {
		t.Errorf("expected prod_2 first, got %s", resp.Recommendations[0].ProductID)
	}
}

func TestRecommendUnknownProduct(t *testing.T) {
	r, _ := testRouter()
	rec := doJSON(t, r, http.MethodPost, "/api/recommend", `{"product_id": "ghost_99"}`)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	resp := decode[ErrorResponse](t, rec)
	if resp.Error != "product_not_found" {
		t.Errorf("unexpected error code: %q", resp.Error)
	}
	if !strings.Contains(resp.Hint, "/api/search") {
		t.Errorf("expected search hint, got %q", resp.Hint)
	}
}

func TestRecommendValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		code string
	}{
		{"missing product_id", `{"limit": 3}`, "invalid_request"},
		{"limit too low", `{"product_id": "prod_1", "limit": 0}`, "invalid_parameter"},
		{"limit too high", `{"product_id": "prod_1", "limit": 9}`, "invalid_parameter"},
		{"bad mode", `{"product_id": "prod_1", "mode": "psychic"}`, "invalid_parameter"},
		{"malformed body", `{"product_id": `, "invalid_request"},
	}

	r, _ := testRouter()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, r, http.MethodPost, "/api/recommend", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if resp := decode[ErrorResponse](t, rec); resp.Error != tc.code {
				t.Errorf("expected %q, got %q", tc.code, resp.Error)
			}
		})
	}
}

func TestRecommendGenerativeWithoutBackend(t *testing.T) {
	r, _ := testRouter()
	rec := doJSON(t, r, http.MethodPost, "/api/recommend",
		`{"product_id": "prod_1", "mode": "generative"}`)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if resp := decode[ErrorResponse](t, rec); resp.Error != "backend_unavailable" {
		t.Errorf("unexpected error code: %q", resp.Error)
	}
}

func TestSearch(t *testing.T) {
	r, _ := testRouter()
	rec := doJSON(t, r, http.MethodPost, "/api/search", `{"query": "laptop"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decode[SearchResponse](t, rec)
	if resp.Count != 2 {
		t.Errorf("expected 2 results, got %d", resp.Count)
	}

	rec = doJSON(t, r, http.MethodPost, "/api/search", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing query: expected 400, got %d", rec.Code)
	}
}

func TestStatus(t *testing.T) {
	r, _ := testRouter()
	rec := doJSON(t, r, http.MethodGet, "/api/status", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decode[StatusResponse](t, rec)
	if resp.Status != "active" || resp.TotalProducts != 4 {
		t.Errorf("unexpected status payload: %+v", resp)
	}
	if resp.GenerativeBackend {
		t.Error("backend should report disabled")
	}
}

func TestSessionHistoryShortTermFallback(t *testing.T) {
	r, _ := testRouter()

	if rec := doJSON(t, r, http.MethodPost, "/api/recommend",
		`{"product_id": "prod_1", "session_id": "s1", "limit": 2}`); rec.Code != http.StatusOK {
		t.Fatalf("seed request failed: %d", rec.Code)
	}

	rec := doJSON(t, r, http.MethodGet, "/api/sessions/s1/history", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decode[SessionHistoryResponse](t, rec)
	if resp.SessionID != "s1" || resp.Count != 1 {
		t.Errorf("unexpected history: %+v", resp)
	}
	if len(resp.History) != 1 || resp.History[0].ProductID != "prod_1" {
		t.Errorf("unexpected record: %+v", resp.History)
	}
}

func TestClearSession(t *testing.T) {
	r, shortTerm := testRouter()

	if rec := doJSON(t, r, http.MethodPost, "/api/recommend",
		`{"product_id": "prod_1", "session_id": "s1"}`); rec.Code != http.StatusOK {
		t.Fatalf("seed request failed: %d", rec.Code)
	}

	rec := doJSON(t, r, http.MethodDelete, "/api/sessions/s1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := shortTerm.Retrieve("s1", 0); len(got) != 0 {
		t.Errorf("session not cleared, %d records remain", len(got))
	}
}

func TestListSessionsWithoutDurableStore(t *testing.T) {
	r, _ := testRouter()
	rec := doJSON(t, r, http.MethodGet, "/api/sessions", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if resp := decode[ErrorResponse](t, rec); resp.Error != "memory_unavailable" {
		t.Errorf("unexpected error code: %q", resp.Error)
	}
}

func TestBatchRecommendMixedOutcomes(t *testing.T) {
	r, _ := testRouter()
	rec := doJSON(t, r, http.MethodPost, "/api/recommend/batch",
		`{"product_ids": ["prod_1", "ghost_99", "prod_4"], "session_id": "s1", "limit": 2}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[batchResponse](t, rec)
	if resp.Summary.SuccessCount != 2 || resp.Summary.FailedCount != 1 {
		t.Errorf("unexpected summary: %+v", resp.Summary)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(resp.Results))
	}

	// Result order matches the request order regardless of fan-out.
	if resp.Results[0].ProductID != "prod_1" || resp.Results[0].Status != "success" {
		t.Errorf("unexpected first result: %+v", resp.Results[0])
	}
	if resp.Results[1].Status != "failed" || resp.Results[1].Error != "product_not_found" {
		t.Errorf("unexpected second result: %+v", resp.Results[1])
	}
}

func TestBatchRecommendValidation(t *testing.T) {
	r, _ := testRouter()

	rec := doJSON(t, r, http.MethodPost, "/api/recommend/batch", `{"product_ids": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty list: expected 400, got %d", rec.Code)
	}

	ids := make([]string, 21)
	for i := range ids {
		ids[i] = "prod_1"
	}
	body, _ := json.Marshal(map[string]any{"product_ids": ids})
	rec = doJSON(t, r, http.MethodPost, "/api/recommend/batch", string(body))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("oversized list: expected 400, got %d", rec.Code)
	}

	// Mode validation matches the single-product endpoint.
	rec = doJSON(t, r, http.MethodPost, "/api/recommend/batch",
		`{"product_ids": ["prod_1"], "mode": "psychic"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad mode: expected 400, got %d", rec.Code)
	}
	if resp := decode[ErrorResponse](t, rec); resp.Error != "invalid_parameter" {
		t.Errorf("bad mode: expected invalid_parameter, got %q", resp.Error)
	}
}
