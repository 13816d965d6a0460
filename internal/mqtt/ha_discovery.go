package mqtt

import (
	"fmt"

	"github.com/caec/caecdash/internal/core/domain"
)

type HADiscoveryConfig struct {
	Device            HADiscoveryDevice `json:"device"`
	StateTopic        string            `json:"state_topic"`
	CommandTopic      string            `json:"command_topic,omitempty"`
	StateClass        string            `json:"state_class,omitempty"`
	DeviceClass       string            `json:"device_class,omitempty"`
	UnitOfMeasurement string            `json:"unit_of_measurement,omitempty"`
	AvTopic           string            `json:"availability_topic,omitempty"`
	EntityCategory    string            `json:"entity_category,omitempty"`
	Name              string            `json:"name"`
	UniqueId          string            `json:"unique_id"`
	Platform          string            `json:"platform"`
	EnabledByDefault  *bool             `json:"enabled_by_default,omitempty"`
	PayloadOn         string            `json:"payload_on,omitempty"`
	PayloadOff        string            `json:"payload_off,omitempty"`
	Icon              string            `json:"icon,omitempty"`
	Min               *float64          `json:"min,omitempty"`
	Max               float64           `json:"max,omitempty"`
	Step              float64           `json:"step,omitempty"`
	Mode              string            `json:"mode,omitempty"`
	InitialValue      float64           `json:"initial,omitempty"`
}

type HADiscoveryDevice struct {
	Id           []string `json:"identifiers"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	Version      string   `json:"sw_version,omitempty"`
	Model        string   `json:"model,omitempty"`
	Name         string   `json:"name,omitempty"`
	ViaDevice    string   `json:"via_device,omitempty"`
}

func HADiscoverySensorTopic(prefix string, sensor domain.GenericSensor) string {
	return fmt.Sprintf("%s/%s/%s/%s/config", prefix, sensor.SensorType, sensor.Device.Id, sensor.Id)
}

func HADiscoverySwitchTopic(prefix string, sensor domain.GenericSwitch) string {
	return fmt.Sprintf("%s/switch/%s/%s/config", prefix, sensor.Device.Id, sensor.Id)
}

func HADiscoveryInputNumberTopic(prefix string, sensor domain.GenericInputNumber) string {
	return fmt.Sprintf("%s/number/%s/%s/config", prefix, sensor.Device.Id, sensor.Id)
}

// entity fills the fields shared by every discovery message of the CAEC
// device. Availability follows the bridge state.
func entity(client *MQTTClient, dev domain.Device, name, uniqueId, icon string) HADiscoveryConfig {
	return HADiscoveryConfig{
		Device: HADiscoveryDevice{
			Id:           []string{dev.Id},
			Manufacturer: dev.Manufacturer,
			Version:      dev.Version,
			Model:        dev.Model,
			Name:         dev.Name,
			ViaDevice:    dev.ViaDevice,
		},
		AvTopic:  client.BridgeStateTopic(),
		Name:     name,
		UniqueId: uniqueId,
		Icon:     icon,
		Platform: "mqtt",
	}
}

func GenericSensorToHADiscoveryMessage(client *MQTTClient, sensor domain.GenericSensor) HADiscoveryConfig {
	msg := entity(client, sensor.Device, sensor.Name, sensor.UniqueId, sensor.Icon)
	msg.StateClass = sensor.StateClass
	msg.DeviceClass = sensor.DeviceClass
	msg.UnitOfMeasurement = sensor.UnitOfMeasurement
	msg.EntityCategory = sensor.EntityCategory
	msg.EnabledByDefault = sensor.EnabledByDefault

	switch {
	case sensor.Id == domain.SENSOR_ID_BRIDGE_STATE:
		msg.StateTopic = client.BridgeStateTopic()
		msg.PayloadOn, msg.PayloadOff = MQTT_PAYLOAD_ONLINE, MQTT_PAYLOAD_OFFLINE
	case sensor.SensorType == domain.SENSOR_TYPE_BINARY:
		msg.StateTopic = client.BinarySensorStateTopic(sensor.Id)
		msg.PayloadOn, msg.PayloadOff = MQTT_PAYLOAD_ON, MQTT_PAYLOAD_OFF
	default:
		msg.StateTopic = client.SensorStateTopic(sensor.Id)
	}
	return msg
}

// GenericSwitchToHADiscoveryMessage describes irrigation and light as
// commandable switches.
func GenericSwitchToHADiscoveryMessage(client *MQTTClient, sw domain.GenericSwitch) HADiscoveryConfig {
	msg := entity(client, sw.Device, sw.Name, sw.UniqueId, sw.Icon)
	msg.StateTopic = client.SwitchStateTopic(sw.Id)
	msg.CommandTopic = client.SwitchCommandTopic(sw.Id)
	msg.PayloadOn, msg.PayloadOff = MQTT_PAYLOAD_ON, MQTT_PAYLOAD_OFF
	return msg
}

// GenericInputNumberToHADiscoveryMessage describes one irrigation setting
// with the same bounds the dashboard form enforces.
func GenericInputNumberToHADiscoveryMessage(client *MQTTClient, n domain.GenericInputNumber) HADiscoveryConfig {
	msg := entity(client, n.Device, n.Name, n.UniqueId, n.Icon)
	msg.StateTopic = client.InputNumberStateTopic(n.Id)
	msg.CommandTopic = client.InputNumberCommandTopic(n.Id)
	msg.UnitOfMeasurement = n.Unit
	msg.Min = &n.Min
	msg.Max = n.Max
	msg.Step = n.Step
	msg.Mode = n.Mode
	msg.InitialValue = n.InitialValue
	return msg
}
