package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsLabelsByRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /gadgets/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Metrics(mux)

	for _, id := range []string{"aaa", "bbb"} {
		req := httptest.NewRequest(http.MethodGet, "/gadgets/"+id, nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	// Both requests land on the single pattern-labeled series; no per-ID
	// series exist.
	got := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "GET /gadgets/{id}", "200"))
	if got != 2 {
		t.Errorf("pattern series count = %v, want 2", got)
	}
	if n := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/gadgets/aaa", "200")); n != 0 {
		t.Errorf("raw path series count = %v, want 0", n)
	}

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if n := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "unmatched", "404")); n != 1 {
		t.Errorf("unmatched series count = %v, want 1", n)
	}
}
