package mqtt

import (
	"testing"

	"github.com/caec/caecdash/internal/core/domain"
	"github.com/caec/caecdash/internal/core/events"
	"github.com/caec/caecdash/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestCommandExtractor(t *testing.T) {

	assert := assert.New(t)

	r := commandExtractor("loremTopic")

	m := r.FindStringSubmatch("loremTopic/switch/my_device/command")
	assert.Equal([]string{"loremTopic/switch/my_device/command", "switch", "my_device", "command"}, m)

	m = r.FindStringSubmatch("loremTopic/number/number_name/set")
	assert.Equal("number_name", m[2])

	assert.Nil(r.FindStringSubmatch("loremTopic/switch/my_device/state"))
	assert.Nil(r.FindStringSubmatch("other/loremTopic/switch/my_device/command"))
}

type testMessage struct {
	topic   string
	payload string
}

func (m testMessage) Duplicate() bool   { return false }
func (m testMessage) Qos() byte         { return 1 }
func (m testMessage) Retained() bool    { return false }
func (m testMessage) Topic() string     { return m.topic }
func (m testMessage) MessageID() uint16 { return 1 }
func (m testMessage) Payload() []byte   { return []byte(m.payload) }
func (m testMessage) Ack()              {}

func testClient() *MQTTClient {
	cfg := util.LoadTestConfig()
	return CreateMQTTClient(&cfg, OptsFromConfig(&cfg), nil, nil)
}

func TestParseMQTTCommand(t *testing.T) {

	assert := assert.New(t)

	client := testClient()

	cmd, err := client.ParseMQTTCommand(testMessage{topic: "caec/switch/irrigation/command", payload: "off"})
	assert.NoError(err)
	assert.Equal("irrigation", cmd.DeviceId)
	assert.Equal(COMMAND_SWITCH, cmd.Command)
	assert.Equal("off", cmd.Payload)

	cmd, err = client.ParseMQTTCommand(testMessage{topic: "caec/number/saving_power/set", payload: "55"})
	assert.NoError(err)
	assert.Equal("saving_power", cmd.DeviceId)
	assert.Equal(COMMAND_NUMBER, cmd.Command)

	_, err = client.ParseMQTTCommand(testMessage{topic: "caec/number/saving_power/set", payload: "lots"})
	assert.Error(err)

	_, err = client.ParseMQTTCommand(testMessage{topic: "caec/sensor/water_level/state", payload: "70"})
	assert.Error(err)

	// verb must match the entity
	_, err = client.ParseMQTTCommand(testMessage{topic: "caec/switch/light/set", payload: "on"})
	assert.Error(err)
}

func TestTopics(t *testing.T) {

	assert := assert.New(t)

	client := testClient()
	assert.Equal("caec/bridge/state", client.BridgeStateTopic())
	assert.Equal("caec/sensor/ph_level/state", client.SensorStateTopic(domain.SENSOR_ID_PH_LEVEL))
	assert.Equal("caec/switch/light/command", client.SwitchCommandTopic(domain.SWITCH_ID_LIGHT))
	assert.Equal("caec/number/abundant_duration/set", client.InputNumberCommandTopic(domain.INPUT_NUMBER_ID_ABUNDANT_DURATION))
}

func TestHADiscoveryMessages(t *testing.T) {

	assert := assert.New(t)

	client := testClient()
	system := events.SystemDevice("caec")

	sensors := events.ChannelSensors(system)
	msg := GenericSensorToHADiscoveryMessage(client, sensors[0])
	assert.Equal("caec/sensor/water_level/state", msg.StateTopic)
	assert.Equal("%", msg.UnitOfMeasurement)
	assert.Equal([]string{system.Id}, msg.Device.Id)
	assert.Equal("homeassistant/sensor/"+system.Id+"/water_level/config", HADiscoverySensorTopic(client.DiscoveryPrefix(), sensors[0]))

	bridge := events.BridgeSensors(events.BridgeDevice("caec"))[0]
	msg = GenericSensorToHADiscoveryMessage(client, bridge)
	assert.Equal(MQTT_PAYLOAD_ONLINE, msg.PayloadOn)
	assert.Equal(client.BridgeStateTopic(), msg.StateTopic)

	sw := GenericSwitchToHADiscoveryMessage(client, events.ControlSwitches(system)[0])
	assert.Equal("caec/switch/irrigation/command", sw.CommandTopic)
	assert.Equal(MQTT_PAYLOAD_ON, sw.PayloadOn)

	num := GenericInputNumberToHADiscoveryMessage(client, events.IrrigationInputNumbers(system)[0])
	assert.NotNil(num.Min)
	assert.Equal(0.0, *num.Min)
	assert.Equal(100.0, num.Max)
	assert.Equal("caec/number/saving_power/set", num.CommandTopic)
}
