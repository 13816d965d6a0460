package domain

const (
	SENSOR_ID_BRIDGE_STATE            = "bridge"
	SENSOR_ID_WATER_LEVEL             = "water_level"
	SENSOR_ID_PH_LEVEL                = "ph_level"
	SENSOR_ID_WATER_TEMPERATURE       = "water_temperature"
	SENSOR_ID_NUTRIENT_LEVEL          = "nutrient_level"
	SENSOR_ID_IRRIGATION_STATE        = "irrigation_state"
	SENSOR_ID_LIGHT_STATE             = "light_state"
	SWITCH_ID_IRRIGATION              = "irrigation"
	SWITCH_ID_LIGHT                   = "light"
	INPUT_NUMBER_ID_SAVING_POWER      = "saving_power"
	INPUT_NUMBER_ID_SAVING_DURATION   = "saving_duration"
	INPUT_NUMBER_ID_ABUNDANT_DURATION = "abundant_duration"
	STATE_CLASS_MEASUREMENT           = "measurement"
	DEVICE_CLASS_TEMPERATURE          = "temperature"
	DEVICE_CLASS_CONNECTIVITY         = "connectivity"
	ENTITY_CLASS_DIAGNOSTIC           = "diagnostic"
	ENTITY_CLASS_CONFIG               = "config"
	SENSOR_TYPE_SENSOR                = "sensor"
	SENSOR_TYPE_BINARY                = "binary_sensor"
	INPUT_NUMBER_MODE_BOX             = "box"
	INPUT_NUMBER_MODE_SLIDER          = "slider"
)

type Device struct {
	Id           string
	Name         string
	Version      string
	Model        string
	Manufacturer string
	ViaDevice    string
}

type GenericSensor struct {
	Device            Device
	Id                string
	SensorType        string
	Name              string
	UniqueId          string
	UnitOfMeasurement string
	StateClass        string
	DeviceClass       string
	EntityCategory    string
	EnabledByDefault  *bool
	Icon              string
}

type GenericSwitch struct {
	Device   Device
	Id       string
	Name     string
	UniqueId string
	Icon     string
}

type GenericInputNumber struct {
	Device       Device
	Id           string
	Name         string
	UniqueId     string
	Icon         string
	Unit         string
	Max          float64
	Min          float64
	Step         float64
	Mode         string
	InitialValue float64
}
