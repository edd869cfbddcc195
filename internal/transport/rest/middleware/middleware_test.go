package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour)
	defer rl.Stop()

	for i, want := range []bool{true, true, false} {
		if got := rl.Allow("10.0.0.1"); got != want {
			t.Fatalf("request %d: allow=%v want %v", i, got, want)
		}
	}
	if !rl.Allow("10.0.0.2") {
		t.Fatalf("second client must have its own budget")
	}
	rl.Stop()
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		name       string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{"remote addr", "", "192.0.2.7:5000", "192.0.2.7"},
		{"forwarded chain", "203.0.113.9, 10.0.0.1", "10.0.0.1:80", "203.0.113.9"},
		{"blank forwarded", " ", "192.0.2.7:5000", "192.0.2.7"},
		{"no port", "", "192.0.2.7", "192.0.2.7"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			if got := ClientIP(r); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "abc")
	h.ServeHTTP(rec, r)
	if seen != "abc" || rec.Header().Get(RequestIDHeader) != "abc" {
		t.Fatalf("caller id not propagated: %q", seen)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || seen == "abc" || rec.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("expected a fresh id, got %q", seen)
	}
}
