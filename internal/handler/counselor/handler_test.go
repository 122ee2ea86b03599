package counselor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/wellnexa/backend/internal/content"
	"github.com/wellnexa/backend/internal/model/counselor"
)

func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()
	c, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default err: %v", err)
	}
	r := chi.NewRouter()
	New(counselor.NewMemoryStore(c.Booking.Counselors)).RegisterRoutes(r)
	return r
}

func TestListCounselors(t *testing.T) {
	r := setupRouter(t)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/counselors", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var list []counselor.Counselor
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 counselors, got %d", len(list))
	}
	if list[0].Name != "Dr. Sarah Johnson" || list[0].Rating != 4.9 {
		t.Fatalf("unexpected first counselor %+v", list[0])
	}
}

func TestGetCounselor(t *testing.T) {
	r := setupRouter(t)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/counselors/2", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var c counselor.Counselor
	if err := json.NewDecoder(resp.Body).Decode(&c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.Specialization != "Academic Performance & Study Skills" {
		t.Fatalf("unexpected counselor %+v", c)
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/counselors/99", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
