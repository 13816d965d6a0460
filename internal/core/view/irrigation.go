package view

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/caec/caecdash/internal/core/domain"
)

// Bounds of the irrigation configuration inputs.
const (
	SAVING_POWER_MIN      = 0
	SAVING_POWER_MAX      = 100
	SAVING_DURATION_MIN   = 1
	SAVING_DURATION_MAX   = 120
	ABUNDANT_DURATION_MIN = 1
	ABUNDANT_DURATION_MAX = 60
)

type IrrigationForm struct {
	Active              bool
	Power               PowerSliderView
	SavingDuration      int
	SavingDurationMin   int
	SavingDurationMax   int
	AbundantDuration    int
	AbundantDurationMin int
	AbundantDurationMax int
}

func NewIrrigationForm(active bool, settings domain.IrrigationSettings) IrrigationForm {
	return IrrigationForm{
		Active:              active,
		Power:               PowerSlider(float64(settings.SavingPower)),
		SavingDuration:      settings.SavingDurationMinutes,
		SavingDurationMin:   SAVING_DURATION_MIN,
		SavingDurationMax:   SAVING_DURATION_MAX,
		AbundantDuration:    settings.AbundantDurationMinutes,
		AbundantDurationMin: ABUNDANT_DURATION_MIN,
		AbundantDurationMax: ABUNDANT_DURATION_MAX,
	}
}

// ParseIrrigationForm reads the raw form inputs. Missing or unparsable
// inputs fall back to the defaults; parsed values are clamped to the input bounds.
func ParseIrrigationForm(power, saving, abundant string) domain.IrrigationSettings {
	return domain.IrrigationSettings{
		SavingPower:             parseBounded(power, domain.DEFAULT_SAVING_POWER, SAVING_POWER_MIN, SAVING_POWER_MAX),
		SavingDurationMinutes:   parseBounded(saving, domain.DEFAULT_SAVING_DURATION, SAVING_DURATION_MIN, SAVING_DURATION_MAX),
		AbundantDurationMinutes: parseBounded(abundant, domain.DEFAULT_ABUNDANT_DURATION, ABUNDANT_DURATION_MIN, ABUNDANT_DURATION_MAX),
	}
}

func parseBounded(raw string, fallback, min, max int) int {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return fallback
	}
	return int(clamp(round(value), float64(min), float64(max)))
}

func ConfirmationText(settings domain.IrrigationSettings) string {
	return fmt.Sprintf("Configuración guardada:\n\n⚡ Potencia en modo ahorro: %d%%\n⏱️ Duración modo ahorro: %d min\n💧 Duración irrigación abundante: %d min",
		settings.SavingPower, settings.SavingDurationMinutes, settings.AbundantDurationMinutes)
}
