package service

import (
	"time"

	"github.com/caec/caecdash/internal/core/domain"
	"github.com/caec/caecdash/internal/core/port"
)

// Clamp bounds applied after every tick.
const (
	WATER_MIN       = 0.0
	WATER_MAX       = 100.0
	PH_MIN          = 5.0
	PH_MAX          = 8.5
	TEMPERATURE_MIN = 15.0
	TEMPERATURE_MAX = 30.0
	NUTRIENT_MIN    = 0.0
	NUTRIENT_MAX    = 100.0

	NUTRIENT_REFILL = 30.0
)

// Amplitudes of the random walk.
const (
	waterDrift       = 0.5
	phJitter         = 0.1
	temperatureDrift = 0.3
	nutrientDrift    = 0.3
)

// SimulationState is the in-memory record of the six channels. It is not
// safe for concurrent use; a single actor owns it.
type SimulationState struct {
	water            float64
	ph               float64
	temperature      float64
	nutrient         float64
	irrigationActive bool
	lightActive      bool
	lightIntensity   int
	settings         domain.IrrigationSettings
	clock            port.Clock
	updatedAt        time.Time
}

func NewSimulationState(clock port.Clock) *SimulationState {
	if clock == nil {
		clock = port.SystemClock{}
	}
	s := &SimulationState{
		water:            75,
		ph:               6.5,
		temperature:      22,
		nutrient:         85,
		irrigationActive: true,
		lightActive:      true,
		lightIntensity:   80,
		settings:         domain.DefaultIrrigationSettings(),
		clock:            clock,
	}
	s.touch()
	return s
}

// Tick applies one random-walk step to every numeric channel.
func (s *SimulationState) Tick(rnd port.RandomSource) domain.Snapshot {
	s.water = Clamp(s.water-rnd.Float64()*waterDrift, WATER_MIN, WATER_MAX)
	s.ph = Clamp(s.ph+(rnd.Float64()-0.5)*phJitter, PH_MIN, PH_MAX)
	s.temperature = Clamp(s.temperature+(rnd.Float64()-0.5)*temperatureDrift, TEMPERATURE_MIN, TEMPERATURE_MAX)
	s.nutrient = Clamp(s.nutrient-rnd.Float64()*nutrientDrift, NUTRIENT_MIN, NUTRIENT_MAX)
	s.touch()
	return s.Snapshot()
}

func (s *SimulationState) SetIrrigation(active bool) domain.Snapshot {
	s.irrigationActive = active
	s.touch()
	return s.Snapshot()
}

func (s *SimulationState) SetLight(active bool) domain.Snapshot {
	s.lightActive = active
	s.touch()
	return s.Snapshot()
}

func (s *SimulationState) SetIrrigationSettings(settings domain.IrrigationSettings) domain.Snapshot {
	s.settings = settings
	s.touch()
	return s.Snapshot()
}

// AddNutrients refills the nutrient tank, capped at 100%.
func (s *SimulationState) AddNutrients() domain.Snapshot {
	s.nutrient = Clamp(s.nutrient+NUTRIENT_REFILL, NUTRIENT_MIN, NUTRIENT_MAX)
	s.touch()
	return s.Snapshot()
}

func (s *SimulationState) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Water: domain.SensorChannel{
			Id:     domain.CHANNEL_WATER,
			Value:  s.water,
			Unit:   "%",
			Label:  "Nivel Actual",
			Target: 3000,
		},
		PH: domain.SensorChannel{
			Id:    domain.CHANNEL_PH,
			Value: s.ph,
			Unit:  "pH",
			Label: "Nivel Actual",
			Min:   5.5,
			Max:   8.5,
		},
		Irrigation: domain.SensorChannel{
			Id:     domain.CHANNEL_IRRIGATION,
			Value:  boolValue(s.irrigationActive),
			Text:   IrrigationLabel(s.irrigationActive),
			Status: s.irrigationActive,
		},
		Temperature: domain.SensorChannel{
			Id:    domain.CHANNEL_TEMPERATURE,
			Value: s.temperature,
			Unit:  "°C",
			Label: "Temperatura Actual",
			Min:   18,
			Max:   26,
		},
		Nutrient: domain.SensorChannel{
			Id:    domain.CHANNEL_NUTRIENT,
			Value: s.nutrient,
			Unit:  "%",
			Label: "Nivel Actual",
		},
		Light: domain.SensorChannel{
			Id:     domain.CHANNEL_LIGHT,
			Value:  boolValue(s.lightActive),
			Text:   LightLabel(s.lightActive),
			Status: s.lightActive,
		},
		Settings:       s.settings,
		LightIntensity: s.lightIntensity,
		UpdatedAt:      s.updatedAt,
	}
}

func (s *SimulationState) touch() {
	s.updatedAt = s.clock.Now()
}

func IrrigationLabel(active bool) string {
	if active {
		return domain.IRRIGATION_ON_LABEL
	}
	return domain.IRRIGATION_OFF_LABEL
}

func LightLabel(active bool) string {
	if active {
		return domain.LIGHT_ON_LABEL
	}
	return domain.LIGHT_OFF_LABEL
}

func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
