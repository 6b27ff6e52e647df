package ui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandler(t *testing.T) {
	h := Handler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /: status=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Task Board") {
		t.Fatal("GET /: expected dashboard page")
	}
}

func TestHandler_fallback(t *testing.T) {
	h := Handler()
	req := httptest.NewRequest(http.MethodGet, "/board/week", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	// Unknown path serves index.html so client-side routing works.
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /board/week (fallback): status=%d", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("fallback: empty body")
	}
}
