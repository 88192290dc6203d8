package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimitBlocksAfterWindowBudget(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	handler := SecurityLoggingMiddleware(nil, detector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/sessions/active", nil)
	req.RemoteAddr = "203.0.113.7:52211"

	for i := 0; i < rateLimitMaxRequests; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d rejected with status %d before the budget ran out", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429 once over budget, got %d", rec.Code)
	}
}

func TestRateLimitIsPerIP(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	handler := SecurityLoggingMiddleware(nil, detector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Exhaust one client's budget directly
	for i := 0; i <= rateLimitMaxRequests; i++ {
		detector.RecordRequest("203.0.113.7")
	}

	req := httptest.NewRequest("GET", "/api/v1/sessions/active", nil)
	req.RemoteAddr = "198.51.100.23:41780"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected another client to be unaffected, got status %d", rec.Code)
	}
}
