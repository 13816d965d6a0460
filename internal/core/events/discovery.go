package events

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	. "github.com/caec/caecdash/internal/core/domain"

	"github.com/carlmjohnson/versioninfo"
)

func BridgeDevice(baseTopic string) Device {
	return Device{
		Id:           fmt.Sprintf("caec_bridge_%s", md5HashShort(baseTopic)),
		Manufacturer: "CAEC",
		Model:        "CAEC Dashboard",
		Version:      versioninfo.Short(),
		Name:         fmt.Sprintf("CAEC %s", md5HashShort(baseTopic)),
	}
}

func SystemDevice(baseTopic string) Device {
	return Device{
		Id:           fmt.Sprintf("caec_system_%s", md5HashShort(baseTopic)),
		Manufacturer: "CAEC",
		Model:        "Hydroponic system",
		Name:         fmt.Sprintf("CAEC system %s", md5HashShort(baseTopic)),
	}
}

func IdDevice(device Device) Device {
	return Device{
		Id:   device.Id,
		Name: device.Name,
	}
}

func BridgeSensors(bridgeDevice Device) []GenericSensor {
	return []GenericSensor{
		{
			Device:         bridgeDevice,
			Id:             SENSOR_ID_BRIDGE_STATE,
			SensorType:     SENSOR_TYPE_BINARY,
			Name:           "Connection state",
			DeviceClass:    DEVICE_CLASS_CONNECTIVITY,
			EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
			UniqueId:       uniqueId(bridgeDevice.Id, SENSOR_ID_BRIDGE_STATE),
		},
	}
}

// ChannelSensors describes the four readings and the two switch state texts.
// Only the first sensor carries the full device.
func ChannelSensors(systemDevice Device) []GenericSensor {

	var sensors []GenericSensor

	// Water level
	sensors = append(sensors, GenericSensor{
		Device:            systemDevice,
		Id:                SENSOR_ID_WATER_LEVEL,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Water level",
		StateClass:        STATE_CLASS_MEASUREMENT,
		UnitOfMeasurement: "%",
		Icon:              "mdi:water-percent",
		UniqueId:          uniqueId(systemDevice.Id, SENSOR_ID_WATER_LEVEL),
	})
	// pH
	sensors = append(sensors, GenericSensor{
		Device:            IdDevice(systemDevice),
		Id:                SENSOR_ID_PH_LEVEL,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "pH",
		StateClass:        STATE_CLASS_MEASUREMENT,
		UnitOfMeasurement: "pH",
		Icon:              "mdi:ph",
		UniqueId:          uniqueId(systemDevice.Id, SENSOR_ID_PH_LEVEL),
	})
	// Water temperature
	sensors = append(sensors, GenericSensor{
		Device:            IdDevice(systemDevice),
		Id:                SENSOR_ID_WATER_TEMPERATURE,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Water temperature",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_TEMPERATURE,
		UnitOfMeasurement: "°C",
		UniqueId:          uniqueId(systemDevice.Id, SENSOR_ID_WATER_TEMPERATURE),
	})
	// Nutrient level
	sensors = append(sensors, GenericSensor{
		Device:            IdDevice(systemDevice),
		Id:                SENSOR_ID_NUTRIENT_LEVEL,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Nutrient level",
		StateClass:        STATE_CLASS_MEASUREMENT,
		UnitOfMeasurement: "%",
		Icon:              "mdi:flask",
		UniqueId:          uniqueId(systemDevice.Id, SENSOR_ID_NUTRIENT_LEVEL),
	})
	// Irrigation state text
	sensors = append(sensors, GenericSensor{
		Device:     IdDevice(systemDevice),
		Id:         SENSOR_ID_IRRIGATION_STATE,
		SensorType: SENSOR_TYPE_SENSOR,
		Name:       "Irrigation state",
		Icon:       "mdi:sprinkler",
		UniqueId:   uniqueId(systemDevice.Id, SENSOR_ID_IRRIGATION_STATE),
	})
	// Light state text
	sensors = append(sensors, GenericSensor{
		Device:     IdDevice(systemDevice),
		Id:         SENSOR_ID_LIGHT_STATE,
		SensorType: SENSOR_TYPE_SENSOR,
		Name:       "Light state",
		Icon:       "mdi:lightbulb",
		UniqueId:   uniqueId(systemDevice.Id, SENSOR_ID_LIGHT_STATE),
	})

	return sensors
}

func ControlSwitches(systemDevice Device) []GenericSwitch {

	var switches []GenericSwitch

	// Irrigation
	switches = append(switches, GenericSwitch{
		Device:   systemDevice,
		Id:       SWITCH_ID_IRRIGATION,
		Name:     "Irrigation",
		UniqueId: uniqueId(systemDevice.Id, SWITCH_ID_IRRIGATION),
		Icon:     "mdi:sprinkler-variant",
	})
	// Light
	switches = append(switches, GenericSwitch{
		Device:   systemDevice,
		Id:       SWITCH_ID_LIGHT,
		Name:     "Grow light",
		UniqueId: uniqueId(systemDevice.Id, SWITCH_ID_LIGHT),
		Icon:     "mdi:lightbulb-on",
	})

	return switches
}

func IrrigationInputNumbers(systemDevice Device) []GenericInputNumber {

	var inputNumbers []GenericInputNumber

	// Pump power in saving mode
	inputNumbers = append(inputNumbers, GenericInputNumber{
		Device:       systemDevice,
		Id:           INPUT_NUMBER_ID_SAVING_POWER,
		Name:         "Saving mode pump power",
		UniqueId:     uniqueId(systemDevice.Id, INPUT_NUMBER_ID_SAVING_POWER),
		Icon:         "mdi:pump",
		Unit:         "%",
		Max:          100,
		Min:          0,
		Step:         1,
		Mode:         INPUT_NUMBER_MODE_SLIDER,
		InitialValue: DEFAULT_SAVING_POWER,
	})
	// Saving mode duration
	inputNumbers = append(inputNumbers, GenericInputNumber{
		Device:       systemDevice,
		Id:           INPUT_NUMBER_ID_SAVING_DURATION,
		Name:         "Saving mode duration",
		UniqueId:     uniqueId(systemDevice.Id, INPUT_NUMBER_ID_SAVING_DURATION),
		Icon:         "mdi:timer-sand",
		Unit:         "min",
		Max:          120,
		Min:          1,
		Step:         1,
		Mode:         INPUT_NUMBER_MODE_BOX,
		InitialValue: DEFAULT_SAVING_DURATION,
	})
	// Abundant irrigation duration
	inputNumbers = append(inputNumbers, GenericInputNumber{
		Device:       systemDevice,
		Id:           INPUT_NUMBER_ID_ABUNDANT_DURATION,
		Name:         "Abundant irrigation duration",
		UniqueId:     uniqueId(systemDevice.Id, INPUT_NUMBER_ID_ABUNDANT_DURATION),
		Icon:         "mdi:timer",
		Unit:         "min",
		Max:          60,
		Min:          1,
		Step:         1,
		Mode:         INPUT_NUMBER_MODE_BOX,
		InitialValue: DEFAULT_ABUNDANT_DURATION,
	})

	return inputNumbers
}

func uniqueId(baseId, id string) string {
	return fmt.Sprintf("uid_%s_%s", baseId, id)
}

func md5Hash(text string) string {
	hash := md5.Sum([]byte(text))
	return hex.EncodeToString(hash[:])
}

func md5HashShort(text string) string {
	hash := md5Hash(text)
	return hash[0:8]
}
