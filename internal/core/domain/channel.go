package domain

import (
	"time"
)

type ChannelId string

const (
	CHANNEL_WATER       ChannelId = "water"
	CHANNEL_PH          ChannelId = "ph"
	CHANNEL_IRRIGATION  ChannelId = "irrigation"
	CHANNEL_TEMPERATURE ChannelId = "temperature"
	CHANNEL_NUTRIENT    ChannelId = "nutrient"
	CHANNEL_LIGHT       ChannelId = "light"
)

const (
	IRRIGATION_ON_LABEL  = "Activo"
	IRRIGATION_OFF_LABEL = "Inactivo"
	LIGHT_ON_LABEL       = "Encendido"
	LIGHT_OFF_LABEL      = "Apagado"
)

// AllChannels returns the channels in dashboard order.
func AllChannels() []ChannelId {
	return []ChannelId{
		CHANNEL_WATER,
		CHANNEL_PH,
		CHANNEL_IRRIGATION,
		CHANNEL_TEMPERATURE,
		CHANNEL_NUTRIENT,
		CHANNEL_LIGHT,
	}
}

func ParseChannelId(value string) (ChannelId, bool) {
	for _, id := range AllChannels() {
		if string(id) == value {
			return id, true
		}
	}
	return "", false
}

// IsSwitch reports whether the channel is an on/off state rather than a reading.
func (c ChannelId) IsSwitch() bool {
	return c == CHANNEL_IRRIGATION || c == CHANNEL_LIGHT
}

type SensorChannel struct {
	Id     ChannelId `json:"id"`
	Value  float64   `json:"value"`
	Text   string    `json:"text,omitempty"`
	Unit   string    `json:"unit,omitempty"`
	Label  string    `json:"label,omitempty"`
	Min    float64   `json:"min,omitempty"`
	Max    float64   `json:"max,omitempty"`
	Target float64   `json:"target,omitempty"`
	Status bool      `json:"status"`
}

type IrrigationSettings struct {
	SavingPower             int `json:"savingPower" mapstructure:"saving_power"`
	SavingDurationMinutes   int `json:"savingDuration" mapstructure:"saving_duration"`
	AbundantDurationMinutes int `json:"abundantDuration" mapstructure:"abundant_duration"`
}

const (
	DEFAULT_SAVING_POWER      = 40
	DEFAULT_SAVING_DURATION   = 15
	DEFAULT_ABUNDANT_DURATION = 5
)

func DefaultIrrigationSettings() IrrigationSettings {
	return IrrigationSettings{
		SavingPower:             DEFAULT_SAVING_POWER,
		SavingDurationMinutes:   DEFAULT_SAVING_DURATION,
		AbundantDurationMinutes: DEFAULT_ABUNDANT_DURATION,
	}
}

// Snapshot is a copy of the simulation state at one point in time.
type Snapshot struct {
	Water          SensorChannel      `json:"water"`
	PH             SensorChannel      `json:"ph"`
	Irrigation     SensorChannel      `json:"irrigation"`
	Temperature    SensorChannel      `json:"temperature"`
	Nutrient       SensorChannel      `json:"nutrient"`
	Light          SensorChannel      `json:"light"`
	Settings       IrrigationSettings `json:"irrigationConfig"`
	LightIntensity int                `json:"lightIntensity"`
	Alerts         []Alert            `json:"alerts,omitempty"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

func (s Snapshot) Channel(id ChannelId) (SensorChannel, bool) {
	switch id {
	case CHANNEL_WATER:
		return s.Water, true
	case CHANNEL_PH:
		return s.PH, true
	case CHANNEL_IRRIGATION:
		return s.Irrigation, true
	case CHANNEL_TEMPERATURE:
		return s.Temperature, true
	case CHANNEL_NUTRIENT:
		return s.Nutrient, true
	case CHANNEL_LIGHT:
		return s.Light, true
	}
	return SensorChannel{}, false
}

type AlertLevel string

const (
	ALERT_INFO    AlertLevel = "info"
	ALERT_WARNING AlertLevel = "warning"
	ALERT_DANGER  AlertLevel = "danger"
	ALERT_SUCCESS AlertLevel = "success"
)

type Alert struct {
	Level   AlertLevel `json:"level"`
	Message string     `json:"message"`
	Time    string     `json:"time"`
}

func (a Alert) Icon() string {
	switch a.Level {
	case ALERT_WARNING:
		return "⚠️"
	case ALERT_DANGER:
		return "🚨"
	case ALERT_SUCCESS:
		return "✅"
	default:
		return "ℹ️"
	}
}
