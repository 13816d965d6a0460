package caecapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

func TestUpdateIrrigation(t *testing.T) {

	require := require.New(t)

	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(http.MethodPost, r.Method)
		require.Equal(PATH_UPDATE_SYSTEM, r.URL.Path)
		require.NoError(json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","message":"Configuración actualizada"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	resp, err := c.UpdateIrrigation(context.Background(), false, at)
	require.NoError(err)
	require.Equal(STATUS_SUCCESS, resp.Status)
	require.Equal("Configuración actualizada", resp.Message)

	irrigation := received["irrigation"].(map[string]any)
	require.Equal(false, irrigation["status"])
	require.Equal("2025-06-01T10:30:00.000Z", irrigation["timestamp"])
}

func TestUpdateIrrigationConfig(t *testing.T) {

	require := require.New(t)

	var received UpdateIrrigationConfigRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(PATH_UPDATE_IRRIGATION_CONFIG, r.URL.Path)
		require.NoError(json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"status":"success","message":"ok"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.UpdateIrrigationConfig(context.Background(), IrrigationConfig{SavingPower: 70, SavingDuration: 30, AbundantDuration: 10}, at)
	require.NoError(err)
	require.Equal(70, received.Config.SavingPower)
	require.Equal(30, received.Config.SavingDuration)
	require.Equal(10, received.Config.AbundantDuration)
	require.Equal("2025-06-01T10:30:00.000Z", received.Timestamp)
}

func TestFetchSystemData(t *testing.T) {

	require := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(http.MethodGet, r.Method)
		require.Equal(PATH_SYSTEM_DATA, r.URL.Path)
		_ = json.NewEncoder(w).Encode(SystemData{WaterLevel: 75, PHLevel: 6.5, IrrigationActive: true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	data, err := c.FetchSystemData(context.Background())
	require.NoError(err)
	require.Equal(75.0, data.WaterLevel)
	require.True(data.IrrigationActive)
}

func TestBreakerOpensAfterFailures(t *testing.T) {

	assert := assert.New(t)

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	for i := 0; i < BREAKER_FAILURE_THRESHOLD; i++ {
		_, err := c.FetchSystemData(context.Background())
		assert.Error(err)
	}
	assert.Equal(gobreaker.StateOpen, c.BreakerState())

	// open breaker fails fast without reaching the server
	_, err := c.UpdateIrrigation(context.Background(), true, at)
	assert.True(errors.Is(err, gobreaker.ErrOpenState))
	assert.Equal(BREAKER_FAILURE_THRESHOLD, calls)
}
