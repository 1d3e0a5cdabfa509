package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireKey(t *testing.T) {
	h := RequireKey([]string{"scrape_key"})(okHandler())

	cases := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{"no key", "", "", http.StatusUnauthorized},
		{"wrong key", "X-API-Key", "nope", http.StatusUnauthorized},
		{"x-api-key", "X-API-Key", "scrape_key", http.StatusOK},
		{"bearer", "Authorization", "Bearer scrape_key", http.StatusOK},
		{"bearer lowercase", "Authorization", "bearer scrape_key", http.StatusOK},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		if c.header != "" {
			req.Header.Set(c.header, c.value)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != c.want {
			t.Fatalf("%s: expected %d, got %d", c.name, c.want, rr.Code)
		}
	}
}

func TestRequireKey_OpenWhenUnset(t *testing.T) {
	h := RequireKey(nil)(okHandler())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with no keys configured, got %d", rr.Code)
	}
}
