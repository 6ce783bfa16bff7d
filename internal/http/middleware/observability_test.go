package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"fleet-scheduler/internal/logx"
	testlog "fleet-scheduler/internal/testutil"
)

func TestObservability_UsesRoutePatternForLabels(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	r := chi.NewRouter()
	r.Use(Observability(logx.Nop(), m))
	r.Get("/shipments/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shipments/"+id, nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	require.Equal(t, 3.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/shipments/{id}", "204")))
	require.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestObservability_DefaultsStatusAndLogsServerErrors(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	m := NewHTTPMetrics(nil)

	r := chi.NewRouter()
	r.Use(Observability(rec.Logger(), m))
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("fine"))
	})
	r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/ok", "200")))
	require.Equal(t, 1, rec.Count("info"))
	require.Equal(t, 1, rec.Count("error"))

	entries := rec.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, "/ok", fieldValue(t, entries[0], "path"))
	require.Equal(t, 500, fieldValue(t, entries[1], "status"))
}

func fieldValue(t *testing.T, e testlog.Entry, key string) any {
	t.Helper()

	v, ok := e.Field(key)
	require.True(t, ok, "field %q missing", key)
	return v
}
