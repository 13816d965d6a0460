package view

import (
	"fmt"
	"math"

	"github.com/caec/caecdash/internal/core/domain"
)

// Fill is the y offset and height of an SVG rect growing from a fixed base.
type Fill struct {
	Y      float64
	Height float64
}

// Thermometer column geometry.
const (
	THERMOMETER_MIN_TEMP   = 0.0
	THERMOMETER_MAX_TEMP   = 40.0
	THERMOMETER_MAX_HEIGHT = 180.0
	THERMOMETER_BASE_Y     = 210.0
)

// ThermometerFill maps a temperature to the mercury column.
func ThermometerFill(temperature float64) Fill {
	height := (temperature - THERMOMETER_MIN_TEMP) / (THERMOMETER_MAX_TEMP - THERMOMETER_MIN_TEMP) * THERMOMETER_MAX_HEIGHT
	height = clamp(height, 0, THERMOMETER_MAX_HEIGHT)
	return Fill{Y: THERMOMETER_BASE_Y - height, Height: height}
}

// Modal water tank geometry.
const (
	TANK_MAX_HEIGHT = 196.0
	TANK_BASE_Y     = 250.0
)

func TankFill(percentage float64) Fill {
	height := clamp(percentage, 0, 100) / 100 * TANK_MAX_HEIGHT
	return Fill{Y: TANK_BASE_Y - height, Height: height}
}

// System overview tank geometry, y in [800,1160].
const (
	SYSTEM_TANK_TOP_Y    = 800.0
	SYSTEM_TANK_BOTTOM_Y = 1160.0
	SYSTEM_TANK_HEIGHT   = SYSTEM_TANK_BOTTOM_Y - SYSTEM_TANK_TOP_Y
	SYSTEM_WAVE_SPREAD   = 5.0
)

func SystemTankFill(percentage float64) Fill {
	height := SYSTEM_TANK_HEIGHT * clamp(percentage, 0, 100) / 100
	return Fill{Y: SYSTEM_TANK_BOTTOM_Y - height, Height: height}
}

// SystemWaves returns the cy of the three surface waves.
func SystemWaves(percentage float64) [3]float64 {
	surface := SystemTankFill(percentage).Y
	return [3]float64{surface - SYSTEM_WAVE_SPREAD, surface, surface + SYSTEM_WAVE_SPREAD}
}

// PHMarkerLeft places the marker on a 0-14 scale, as a percentage.
func PHMarkerLeft(ph float64) float64 {
	return clamp(ph/14*100, 0, 100)
}

const (
	GAUGE_RADIUS        = 90.0
	GAUGE_CIRCUMFERENCE = 2 * math.Pi * GAUGE_RADIUS
)

// GaugePercent maps a channel value to the progress ring percentage.
func GaugePercent(id domain.ChannelId, value float64, status bool) float64 {
	var pct float64
	switch id {
	case domain.CHANNEL_PH:
		pct = (value - 5.5) / (8.5 - 5.5) * 100
	case domain.CHANNEL_TEMPERATURE:
		pct = (value - 18) / (26 - 18) * 100
	case domain.CHANNEL_IRRIGATION, domain.CHANNEL_LIGHT:
		if status {
			pct = 100
		}
	default:
		pct = value
	}
	return clamp(pct, 0, 100)
}

func GaugeDashOffset(percentage float64) float64 {
	return GAUGE_CIRCUMFERENCE - percentage/100*GAUGE_CIRCUMFERENCE
}

type PowerSliderView struct {
	Value     int
	Label     string
	FillWidth string
}

func PowerSlider(value float64) PowerSliderView {
	v := clamp(value, 0, 100)
	return PowerSliderView{
		Value:     int(round(v)),
		Label:     fmt.Sprintf("%d%%", int(round(v))),
		FillWidth: fmt.Sprintf("%s%%", FormatNumber(v)),
	}
}

// Legacy metric bars.

const (
	LEVEL_NORMAL  = "normal"
	LEVEL_WARNING = "warning"
	LEVEL_DANGER  = "danger"
)

type Bar struct {
	Percent float64
	Level   string
}

func WaterBar(water float64) Bar {
	level := LEVEL_NORMAL
	if water < 30 {
		level = LEVEL_DANGER
	} else if water > 90 {
		level = LEVEL_WARNING
	}
	return Bar{Percent: clamp(water, 0, 100), Level: level}
}

func NutrientBar(nutrient float64) Bar {
	level := LEVEL_NORMAL
	if nutrient < 30 {
		level = LEVEL_DANGER
	} else if nutrient < 50 {
		level = LEVEL_WARNING
	}
	return Bar{Percent: clamp(nutrient, 0, 100), Level: level}
}

// PHIndicatorLeft places the legacy pH indicator on a 5.5-8.5 scale.
func PHIndicatorLeft(ph float64) float64 {
	return clamp((ph-5.5)/(8.5-5.5)*100, 0, 100)
}

// TemperatureBarHeight maps 18-26°C to 0-100%.
func TemperatureBarHeight(temperature float64) float64 {
	return clamp((temperature-18)/(26-18)*100, 0, 100)
}

func clamp(value, min, max float64) float64 {
	return math.Max(min, math.Min(max, value))
}

// round half up, like the browser did
func round(value float64) float64 {
	return math.Floor(value + 0.5)
}

// FormatNumber prints SVG/CSS numbers with at most two decimals.
func FormatNumber(value float64) string {
	return fmt.Sprintf("%g", math.Round(value*100)/100)
}
