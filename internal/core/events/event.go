package events

import (
	. "github.com/caec/caecdash/internal/core/domain"
)

// SnapshotToUpdateEvents maps a snapshot to one sensor update per channel
// plus the irrigation settings numbers.
func SnapshotToUpdateEvents(s Snapshot) []any {
	var events []any

	// Water level
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_WATER_LEVEL,
		},
		Value:    s.Water.Value,
		Decimals: 1,
	})
	// pH
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_PH_LEVEL,
		},
		Value:    s.PH.Value,
		Decimals: 2,
	})
	// Water temperature
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_WATER_TEMPERATURE,
		},
		Value:    s.Temperature.Value,
		Decimals: 1,
	})
	// Nutrient level
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_NUTRIENT_LEVEL,
		},
		Value:    s.Nutrient.Value,
		Decimals: 1,
	})
	events = append(events, SwitchStateToUpdateEvents(s)...)
	events = append(events, SettingsToUpdateEvents(s.Settings)...)

	return events
}

func SwitchStateToUpdateEvents(s Snapshot) []any {
	var events []any

	// Irrigation
	events = append(events, SwitchSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SWITCH_ID_IRRIGATION,
		},
		Value: s.Irrigation.Status,
	})
	events = append(events, TextSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_IRRIGATION_STATE,
		},
		Value: s.Irrigation.Text,
	})
	// Light
	events = append(events, SwitchSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SWITCH_ID_LIGHT,
		},
		Value: s.Light.Status,
	})
	events = append(events, TextSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_LIGHT_STATE,
		},
		Value: s.Light.Text,
	})

	return events
}

func SettingsToUpdateEvents(settings IrrigationSettings) []any {
	return []any{
		InputNumberSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: INPUT_NUMBER_ID_SAVING_POWER,
			},
			Value: float64(settings.SavingPower),
		},
		InputNumberSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: INPUT_NUMBER_ID_SAVING_DURATION,
			},
			Value: float64(settings.SavingDurationMinutes),
		},
		InputNumberSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: INPUT_NUMBER_ID_ABUNDANT_DURATION,
			},
			Value: float64(settings.AbundantDurationMinutes),
		},
	}
}
