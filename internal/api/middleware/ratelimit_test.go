package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/sendEstimate", nil)
	req.RemoteAddr = addr
	return req
}

func TestRateLimiter_Handler(t *testing.T) {
	t.Run("rejects requests over the burst", func(t *testing.T) {
		handler := NewRateLimiter(1, 2).Handler(okHandler())

		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, requestFrom("203.0.113.7:5000"))
			if w.Code != http.StatusOK {
				t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
			}
		}

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, requestFrom("203.0.113.7:5001"))

		if w.Code != http.StatusTooManyRequests {
			t.Errorf("Expected 429, got %d", w.Code)
		}
		if got := w.Header().Get("Retry-After"); got != "60" {
			t.Errorf("Expected Retry-After 60, got %q", got)
		}
	})

	t.Run("limits each client separately", func(t *testing.T) {
		handler := NewRateLimiter(1, 1).Handler(okHandler())

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, requestFrom("203.0.113.7:5000"))
		second := httptest.NewRecorder()
		handler.ServeHTTP(second, requestFrom("198.51.100.4:5000"))

		if first.Code != http.StatusOK || second.Code != http.StatusOK {
			t.Errorf("Expected both clients to pass, got %d and %d", first.Code, second.Code)
		}
	})

	t.Run("disabled when rate is zero", func(t *testing.T) {
		handler := NewRateLimiter(0, 1).Handler(okHandler())

		for i := 0; i < 10; i++ {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, requestFrom("203.0.113.7:5000"))
			if w.Code != http.StatusOK {
				t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
			}
		}
	})
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remoteAddr string
		want       string
	}{
		{"203.0.113.7:5000", "203.0.113.7"},
		{"[2001:db8::1]:443", "2001:db8::1"},
		{"203.0.113.7", "203.0.113.7"},
	}
	for _, tt := range tests {
		t.Run(tt.remoteAddr, func(t *testing.T) {
			if got := clientIP(requestFrom(tt.remoteAddr)); got != tt.want {
				t.Errorf("clientIP(%q) = %q, want %q", tt.remoteAddr, got, tt.want)
			}
		})
	}
}
