package site

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/wellnexa/backend/internal/content"
)

func TestSite(t *testing.T) {
	c, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default err: %v", err)
	}
	r := chi.NewRouter()
	New(c.Site).RegisterRoutes(r)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/site", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var site content.Site
	if err := json.NewDecoder(resp.Body).Decode(&site); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if site.Name != "WellNexa" || len(site.Features) != 4 || len(site.Stats) != 4 {
		t.Fatalf("unexpected site %+v", site)
	}
	if len(site.CrisisContacts) == 0 || site.CrisisContacts[0].Detail != "988" {
		t.Fatalf("expected crisis helpline contact, got %+v", site.CrisisContacts)
	}
}

func TestHealth(t *testing.T) {
	resp := httptest.NewRecorder()
	Health(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}
