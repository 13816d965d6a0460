package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/caec/caecdash/internal/core/domain"
	"github.com/caec/caecdash/pkg/caecapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemData(t *testing.T) {

	env := newTestEnv(t, nil)

	rec := env.get(caecapi.PATH_SYSTEM_DATA)
	require.Equal(t, http.StatusOK, rec.Code)

	var data caecapi.SystemData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Equal(t, caecapi.SystemData{
		WaterLevel:       75,
		PHLevel:          6.5,
		WaterTemp:        22,
		NutrientLevel:    85,
		IrrigationActive: true,
		LightActive:      true,
		IrrigationConfig: caecapi.IrrigationConfig{SavingPower: 40, SavingDuration: 15, AbundantDuration: 5},
		Timestamp:        "2025-06-01T10:00:00.000Z",
	}, data)
}

func TestUpdateSystem(t *testing.T) {

	env := newTestEnv(t, nil)

	rec := env.postJSON(caecapi.PATH_UPDATE_SYSTEM, `{"irrigation":{"status":false,"timestamp":"2025-06-01T10:00:00.000Z"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res caecapi.StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, caecapi.StatusResponse{Status: caecapi.STATUS_SUCCESS, Message: MESSAGE_SYSTEM_UPDATED}, res)

	rec = env.postJSON(caecapi.PATH_UPDATE_SYSTEM, `{"irrigation":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateIrrigationConfig(t *testing.T) {

	env := newTestEnv(t, nil)

	rec := env.postJSON(caecapi.PATH_UPDATE_IRRIGATION_CONFIG,
		`{"config":{"savingPower":55,"savingDuration":20,"abundantDuration":8},"timestamp":"2025-06-01T10:00:00.000Z"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res caecapi.StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, MESSAGE_IRRIGATION_UPDATED, res.Message)

	// only the receiving end, the simulation is untouched
	snapshot, err := env.server.snapshot()
	require.NoError(t, err)
	assert.Equal(t, 40, snapshot.Settings.SavingPower)
}

func TestExport(t *testing.T) {

	env := newTestEnv(t, nil)

	rec := env.get(caecapi.PATH_EXPORT)
	require.Equal(t, http.StatusOK, rec.Code)

	var data map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Equal(t, caecapi.FormatTimestamp(serverTime), data["timestamp"])
	for _, key := range []string{"water", "ph", "irrigation", "temperature", "nutrient", "light", "irrigationConfig"} {
		assert.Contains(t, data, key)
	}
	water := data["water"].(map[string]any)
	assert.Equal(t, 75.0, water["value"])
}

func TestSystemDataMapsSnapshot(t *testing.T) {

	env := newTestEnv(t, nil)

	snapshot, err := env.server.simulate(domain.SetLightRequest{Active: false})
	require.NoError(t, err)

	data := SystemData(snapshot)
	assert.False(t, data.LightActive)
	assert.True(t, data.IrrigationActive)
	assert.Equal(t, snapshot.Settings.SavingPower, data.IrrigationConfig.SavingPower)
}
