package view

import (
	"time"

	"github.com/caec/caecdash/internal/core/domain"
)

// Legacy overview splash: played when irrigation turns on, faded after
// SPLASH_FADE_AFTER, removed SPLASH_TEARDOWN_AFTER after it turns off.
const (
	SPLASH_FADE_AFTER     = 2 * time.Second
	SPLASH_TEARDOWN_AFTER = 500 * time.Millisecond
)

type SplashTiming struct {
	FadeAfterMillis     int64 `json:"fadeAfterMillis"`
	TeardownAfterMillis int64 `json:"teardownAfterMillis"`
}

type OverviewView struct {
	WaterText        string        `json:"waterText"`
	PHText           string        `json:"phText"`
	NutrientText     string        `json:"nutrientText"`
	Tank             Fill          `json:"tank"`
	Waves            [3]float64    `json:"waves"`
	IrrigationActive bool          `json:"irrigationActive"`
	LightActive      bool          `json:"lightActive"`
	Splash           *SplashTiming `json:"splash,omitempty"`
}

// Overview renders the system overview. The tank uses the rounded water level.
func Overview(snapshot domain.Snapshot, variant Variant) OverviewView {
	water := round(snapshot.Water.Value)
	o := OverviewView{
		WaterText:        RoundedText(snapshot.Water.Value) + "%",
		PHText:           RoundedText(snapshot.PH.Value),
		NutrientText:     RoundedText(snapshot.Nutrient.Value) + "%",
		Tank:             SystemTankFill(water),
		Waves:            SystemWaves(water),
		IrrigationActive: snapshot.Irrigation.Status,
		LightActive:      snapshot.Light.Status,
	}
	if variant.IsLegacy() {
		o.Splash = &SplashTiming{
			FadeAfterMillis:     SPLASH_FADE_AFTER.Milliseconds(),
			TeardownAfterMillis: SPLASH_TEARDOWN_AFTER.Milliseconds(),
		}
	}
	return o
}
