package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/greenfleet/esb-district-metrics/internal/adapter/http"
	"github.com/greenfleet/esb-district-metrics/internal/domain"
	"github.com/greenfleet/esb-district-metrics/internal/pipeline"
)

type mockProvider struct {
	readyErr error
	result   pipeline.Result
	states   []string
	cities   []string

	lastState string
	lastCity  string
}

func (m *mockProvider) CheckReadiness(_ context.Context) error { return m.readyErr }

func (m *mockProvider) Compute(state, city string) pipeline.Result {
	m.lastState, m.lastCity = state, city
	return m.result
}

func (m *mockProvider) States() []string { return m.states }

func (m *mockProvider) Cities(_ string) []string { return m.cities }

func newTestServer(p *mockProvider) *httpadapter.Server {
	return httpadapter.NewServer(":0", p, slog.Default())
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(&mockProvider{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(&mockProvider{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(&mockProvider{readyErr: fmt.Errorf("dataset snapshot is empty")})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "dataset snapshot is empty", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockProvider{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestSelectionEndpoint(t *testing.T) {
	rate := 23.33
	provider := &mockProvider{
		result: pipeline.Result{
			State:       "CALIFORNIA",
			City:        "Bakersfield",
			CityMetrics: domain.AggregateMetrics{AdoptionRate: &rate, Districts: 3},
		},
	}
	srv := newTestServer(provider)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics?state=CALIFORNIA&city=Bakersfield", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CALIFORNIA", provider.lastState)
	assert.Equal(t, "Bakersfield", provider.lastCity)

	var body pipeline.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.CityMetrics.AdoptionRate)
	assert.InDelta(t, 23.33, *body.CityMetrics.AdoptionRate, 1e-9)
	assert.Nil(t, body.CityMetrics.PM25Mean, "undefined metrics travel as JSON null")
}

func TestSelectionEndpoint_MissingParams(t *testing.T) {
	srv := newTestServer(&mockProvider{})

	for _, target := range []string{
		"/api/v1/metrics",
		"/api/v1/metrics?state=CALIFORNIA",
		"/api/v1/metrics?city=Bakersfield",
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, target, nil)

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestStatesEndpoint(t *testing.T) {
	srv := newTestServer(&mockProvider{states: []string{"CALIFORNIA", "TEXAS"}})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/states", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"CALIFORNIA", "TEXAS"}, body["states"])
}

func TestCitiesEndpoint(t *testing.T) {
	t.Run("with state", func(t *testing.T) {
		srv := newTestServer(&mockProvider{cities: []string{"Bakersfield", "Fresno"}})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cities?state=CALIFORNIA", nil)

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string][]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, []string{"Bakersfield", "Fresno"}, body["cities"])
	})

	t.Run("missing state", func(t *testing.T) {
		srv := newTestServer(&mockProvider{})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cities", nil)

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty list is an array, not null", func(t *testing.T) {
		srv := newTestServer(&mockProvider{})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cities?state=OHIO", nil)

		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"cities":[]}`, rec.Body.String())
	})
}
