package caecapi

import (
	"time"
)

// TIMESTAMP_LAYOUT matches the browser's Date.toISOString output.
const TIMESTAMP_LAYOUT = "2006-01-02T15:04:05.000Z"

const (
	PATH_UPDATE_SYSTEM            = "/api/update-system"
	PATH_UPDATE_IRRIGATION_CONFIG = "/api/update-irrigation-config"
	PATH_SYSTEM_DATA              = "/api/system-data"
	PATH_EXPORT                   = "/api/export"

	STATUS_SUCCESS = "success"
)

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TIMESTAMP_LAYOUT)
}

type IrrigationStatus struct {
	Status    bool   `json:"status"`
	Timestamp string `json:"timestamp"`
}

type UpdateSystemRequest struct {
	Irrigation *IrrigationStatus `json:"irrigation,omitempty"`
}

type IrrigationConfig struct {
	SavingPower      int `json:"savingPower"`
	SavingDuration   int `json:"savingDuration"`
	AbundantDuration int `json:"abundantDuration"`
}

type UpdateIrrigationConfigRequest struct {
	Config    IrrigationConfig `json:"config"`
	Timestamp string           `json:"timestamp"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SystemData struct {
	WaterLevel       float64          `json:"waterLevel"`
	PHLevel          float64          `json:"phLevel"`
	WaterTemp        float64          `json:"waterTemp"`
	NutrientLevel    float64          `json:"nutrientLevel"`
	IrrigationActive bool             `json:"irrigationActive"`
	LightActive      bool             `json:"lightActive"`
	IrrigationConfig IrrigationConfig `json:"irrigationConfig"`
	Timestamp        string           `json:"timestamp"`
}
