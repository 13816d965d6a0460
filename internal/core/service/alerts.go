package service

import (
	"fmt"

	"github.com/caec/caecdash/internal/core/domain"
)

const (
	MAX_ALERTS       = 5
	ALERT_TIME_LABEL = "Ahora"

	WATER_LOW_THRESHOLD         = 30.0
	WATER_HIGH_THRESHOLD        = 90.0
	NUTRIENT_CRITICAL_THRESHOLD = 30.0
	NUTRIENT_LOW_THRESHOLD      = 50.0
)

// AlertBounds are the "optimal" ranges used for alerting only. They are
// independent from the clamp bounds of the simulation.
type AlertBounds struct {
	PHMin          float64 `mapstructure:"ph_min"`
	PHMax          float64 `mapstructure:"ph_max"`
	TemperatureMin float64 `mapstructure:"temperature_min"`
	TemperatureMax float64 `mapstructure:"temperature_max"`
}

func DefaultAlertBounds() AlertBounds {
	return AlertBounds{
		PHMin:          6.0,
		PHMax:          7.5,
		TemperatureMin: 18,
		TemperatureMax: 26,
	}
}

// EvaluateAlerts returns the threshold alerts raised by a snapshot, in
// water, pH, temperature, nutrient order.
func EvaluateAlerts(s domain.Snapshot, bounds AlertBounds) []domain.Alert {
	var alerts []domain.Alert

	if s.Water.Value < WATER_LOW_THRESHOLD {
		alerts = append(alerts, newAlert(domain.ALERT_WARNING, "Nivel de agua bajo. Se recomienda rellenar el tanque."))
	}
	if s.PH.Value < bounds.PHMin || s.PH.Value > bounds.PHMax {
		alerts = append(alerts, newAlert(domain.ALERT_WARNING, fmt.Sprintf("Nivel de pH fuera del rango óptimo: %.1f", s.PH.Value)))
	}
	if s.Temperature.Value < bounds.TemperatureMin || s.Temperature.Value > bounds.TemperatureMax {
		alerts = append(alerts, newAlert(domain.ALERT_WARNING, fmt.Sprintf("Temperatura del agua fuera del rango: %.1f°C", s.Temperature.Value)))
	}
	if s.Nutrient.Value < NUTRIENT_CRITICAL_THRESHOLD {
		alerts = append(alerts, newAlert(domain.ALERT_DANGER, "Nivel de nutrientes crítico. Añadir nutrientes inmediatamente."))
	}
	return alerts
}

func IrrigationToggledAlert(active bool) domain.Alert {
	if active {
		return newAlert(domain.ALERT_SUCCESS, "Sistema de irrigación iniciado")
	}
	return newAlert(domain.ALERT_INFO, "Sistema de irrigación detenido")
}

func LightToggledAlert(active bool) domain.Alert {
	if active {
		return newAlert(domain.ALERT_SUCCESS, "Sistema de iluminación encendido")
	}
	return newAlert(domain.ALERT_INFO, "Sistema de iluminación apagado")
}

func NutrientsAddedAlert() domain.Alert {
	return newAlert(domain.ALERT_SUCCESS, "Nutrientes añadidos al sistema")
}

// AlertLog keeps the most recent alerts, newest first, without duplicated
// messages. Not safe for concurrent use.
type AlertLog struct {
	alerts []domain.Alert
	max    int
}

func NewAlertLog(max int) *AlertLog {
	if max <= 0 {
		max = MAX_ALERTS
	}
	return &AlertLog{max: max}
}

// Add inserts the alert at the head of the log. It returns false when an
// alert with the same message is already listed.
func (l *AlertLog) Add(alert domain.Alert) bool {
	for _, a := range l.alerts {
		if a.Message == alert.Message {
			return false
		}
	}
	l.alerts = append([]domain.Alert{alert}, l.alerts...)
	if len(l.alerts) > l.max {
		l.alerts = l.alerts[:l.max]
	}
	return true
}

func (l *AlertLog) AddAll(alerts []domain.Alert) {
	for _, a := range alerts {
		l.Add(a)
	}
}

func (l *AlertLog) List() []domain.Alert {
	out := make([]domain.Alert, len(l.alerts))
	copy(out, l.alerts)
	return out
}

func newAlert(level domain.AlertLevel, message string) domain.Alert {
	return domain.Alert{
		Level:   level,
		Message: message,
		Time:    ALERT_TIME_LABEL,
	}
}
