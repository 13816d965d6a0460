package service

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/caec/caecdash/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

// constant random source
type constRandom float64

func (r constRandom) Float64() float64 {
	return float64(r)
}

func TestDefaults(t *testing.T) {

	assert := assert.New(t)

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s := NewSimulationState(fixedClock{t: now}).Snapshot()

	assert.Equal(75.0, s.Water.Value)
	assert.Equal(3000.0, s.Water.Target)
	assert.Equal(6.5, s.PH.Value)
	assert.Equal(22.0, s.Temperature.Value)
	assert.Equal(85.0, s.Nutrient.Value)
	assert.True(s.Irrigation.Status)
	assert.Equal("Activo", s.Irrigation.Text)
	assert.True(s.Light.Status)
	assert.Equal("Encendido", s.Light.Text)
	assert.Equal(80, s.LightIntensity)
	assert.Equal(domain.IrrigationSettings{SavingPower: 40, SavingDurationMinutes: 15, AbundantDurationMinutes: 5}, s.Settings)
	assert.Equal(now, s.UpdatedAt)
}

func TestTickDeltas(t *testing.T) {

	assert := assert.New(t)

	s := NewSimulationState(nil)
	snap := s.Tick(constRandom(1))

	assert.InDelta(74.5, snap.Water.Value, 1e-9)
	assert.InDelta(6.55, snap.PH.Value, 1e-9)
	assert.InDelta(22.15, snap.Temperature.Value, 1e-9)
	assert.InDelta(84.7, snap.Nutrient.Value, 1e-9)

	snap = s.Tick(constRandom(0))

	assert.InDelta(74.5, snap.Water.Value, 1e-9)
	assert.InDelta(6.5, snap.PH.Value, 1e-9)
	assert.InDelta(22.0, snap.Temperature.Value, 1e-9)
	assert.InDelta(84.7, snap.Nutrient.Value, 1e-9)
}

func TestTickStaysWithinBounds(t *testing.T) {

	require := require.New(t)

	rnd := rand.New(rand.NewPCG(1, 2))
	s := NewSimulationState(nil)
	for i := 0; i < 10000; i++ {
		snap := s.Tick(rnd)
		require.GreaterOrEqual(snap.Water.Value, WATER_MIN)
		require.LessOrEqual(snap.Water.Value, WATER_MAX)
		require.GreaterOrEqual(snap.PH.Value, PH_MIN)
		require.LessOrEqual(snap.PH.Value, PH_MAX)
		require.GreaterOrEqual(snap.Temperature.Value, TEMPERATURE_MIN)
		require.LessOrEqual(snap.Temperature.Value, TEMPERATURE_MAX)
		require.GreaterOrEqual(snap.Nutrient.Value, NUTRIENT_MIN)
		require.LessOrEqual(snap.Nutrient.Value, NUTRIENT_MAX)
	}

	// water and nutrients only drain, 10k ticks empty both tanks
	snap := s.Snapshot()
	require.Equal(0.0, snap.Water.Value)
	require.Equal(0.0, snap.Nutrient.Value)
}

func TestTickExtremesClamp(t *testing.T) {

	assert := assert.New(t)

	s := NewSimulationState(nil)
	for i := 0; i < 200; i++ {
		s.Tick(constRandom(0.999999))
	}
	snap := s.Snapshot()
	assert.Equal(PH_MAX, snap.PH.Value)
	assert.Equal(TEMPERATURE_MAX, snap.Temperature.Value)

	for i := 0; i < 400; i++ {
		s.Tick(constRandom(0))
	}
	snap = s.Snapshot()
	assert.Equal(PH_MIN, snap.PH.Value)
	assert.Equal(TEMPERATURE_MIN, snap.Temperature.Value)
}

func TestToggleIrrigationTwice(t *testing.T) {

	assert := assert.New(t)

	s := NewSimulationState(nil)
	before := s.Snapshot()

	off := s.SetIrrigation(false)
	assert.False(off.Irrigation.Status)
	assert.Equal("Inactivo", off.Irrigation.Text)

	on := s.SetIrrigation(true)
	assert.Equal(before.Irrigation.Text, on.Irrigation.Text)
	assert.Equal(before.Irrigation.Status, on.Irrigation.Status)
	assert.Equal(before.Settings, on.Settings)
}

func TestToggleLight(t *testing.T) {

	assert := assert.New(t)

	s := NewSimulationState(nil)
	off := s.SetLight(false)
	assert.False(off.Light.Status)
	assert.Equal("Apagado", off.Light.Text)
	assert.Equal(0.0, off.Light.Value)

	on := s.SetLight(true)
	assert.Equal("Encendido", on.Light.Text)
}

func TestSetIrrigationSettings(t *testing.T) {

	assert := assert.New(t)

	s := NewSimulationState(nil)
	settings := domain.IrrigationSettings{SavingPower: 0, SavingDurationMinutes: 120, AbundantDurationMinutes: 60}
	snap := s.SetIrrigationSettings(settings)
	assert.Equal(settings, snap.Settings)
	assert.True(snap.Irrigation.Status, "status untouched")
}

func TestAddNutrientsCapped(t *testing.T) {

	assert := assert.New(t)

	s := NewSimulationState(nil)
	snap := s.AddNutrients()
	assert.Equal(100.0, snap.Nutrient.Value)

	for i := 0; i < 300; i++ {
		s.Tick(constRandom(1))
	}
	low := s.Snapshot().Nutrient.Value
	snap = s.AddNutrients()
	assert.InDelta(low+30, snap.Nutrient.Value, 1e-9)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 100))
	assert.Equal(t, 100.0, Clamp(101, 0, 100))
	assert.Equal(t, 42.0, Clamp(42, 0, 100))
}
