package view

import (
	"github.com/caec/caecdash/internal/core/domain"
)

type StatusView struct {
	Icon        string `json:"icon"`
	Text        string `json:"text"`
	ButtonText  string `json:"buttonText"`
	ButtonClass string `json:"buttonClass"`
}

func IrrigationStatus(active bool) StatusView {
	if active {
		return StatusView{Icon: "💧", Text: "Ciclo en progreso", ButtonText: "Detener Irrigación", ButtonClass: "btn-secondary"}
	}
	return StatusView{Icon: "⏸️", Text: "Sistema pausado", ButtonText: "Iniciar Irrigación", ButtonClass: "btn-primary"}
}

func LightStatus(active bool) StatusView {
	if active {
		return StatusView{Icon: "💡", Text: "Ciclo diurno activo", ButtonText: "Apagar Luces", ButtonClass: "btn-secondary"}
	}
	return StatusView{Icon: "🌙", Text: "Ciclo nocturno activo", ButtonText: "Encender Luces", ButtonClass: "btn-primary"}
}

type AlertView struct {
	Level   domain.AlertLevel `json:"level"`
	Icon    string            `json:"icon"`
	Message string            `json:"message"`
	Time    string            `json:"time"`
}

// LegacyView is the metric-bar layout with status panels and the alert list.
type LegacyView struct {
	WaterText        string            `json:"waterText"`
	WaterBar         Bar               `json:"waterBar"`
	PHText           string            `json:"phText"`
	PHIndicatorLeft  float64           `json:"phIndicatorLeft"`
	TemperatureText  string            `json:"temperatureText"`
	TemperatureBar   float64           `json:"temperatureBar"`
	NutrientText     string            `json:"nutrientText"`
	NutrientBar      Bar               `json:"nutrientBar"`
	Irrigation       StatusView        `json:"irrigation"`
	Light            StatusView        `json:"light"`
	Alerts           []AlertView       `json:"alerts"`
	UpdateAges       map[string]string `json:"updateAges,omitempty"`
	IrrigationActive bool              `json:"irrigationActive"`
	LightActive      bool              `json:"lightActive"`
}

func Legacy(snapshot domain.Snapshot, ages map[domain.ChannelId]string) LegacyView {
	l := LegacyView{
		WaterText:        FormatValue(snapshot.Water, VARIANT_LEGACY),
		WaterBar:         WaterBar(snapshot.Water.Value),
		PHText:           FormatValue(snapshot.PH, VARIANT_LEGACY),
		PHIndicatorLeft:  PHIndicatorLeft(snapshot.PH.Value),
		TemperatureText:  FormatValue(snapshot.Temperature, VARIANT_LEGACY),
		TemperatureBar:   TemperatureBarHeight(snapshot.Temperature.Value),
		NutrientText:     FormatValue(snapshot.Nutrient, VARIANT_LEGACY),
		NutrientBar:      NutrientBar(snapshot.Nutrient.Value),
		Irrigation:       IrrigationStatus(snapshot.Irrigation.Status),
		Light:            LightStatus(snapshot.Light.Status),
		Alerts:           Alerts(snapshot.Alerts),
		IrrigationActive: snapshot.Irrigation.Status,
		LightActive:      snapshot.Light.Status,
	}
	if len(ages) > 0 {
		l.UpdateAges = make(map[string]string, len(ages))
		for id, label := range ages {
			l.UpdateAges[string(id)] = label
		}
	}
	return l
}

func Alerts(alerts []domain.Alert) []AlertView {
	views := make([]AlertView, 0, len(alerts))
	for _, a := range alerts {
		views = append(views, AlertView{Level: a.Level, Icon: a.Icon(), Message: a.Message, Time: a.Time})
	}
	return views
}
