package actorutil

import (
	"testing"

	"github.com/caec/caecdash/internal/core/domain"
	"github.com/caec/caecdash/internal/mqtt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsedMQTTCommandToCommand(t *testing.T) {

	require := require.New(t)

	current := domain.DefaultIrrigationSettings()

	cmd, err := ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{DeviceId: domain.SWITCH_ID_IRRIGATION, Payload: "off"}, current)
	require.NoError(err)
	require.Equal(domain.SetIrrigationRequest{Active: false}, cmd)

	cmd, err = ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{DeviceId: domain.SWITCH_ID_LIGHT, Payload: "on"}, current)
	require.NoError(err)
	require.Equal(domain.SetLightRequest{Active: true}, cmd)

	cmd, err = ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{DeviceId: domain.INPUT_NUMBER_ID_SAVING_POWER, Payload: "70"}, current)
	require.NoError(err)
	req, ok := cmd.(domain.SetIrrigationSettingsRequest)
	require.True(ok)
	require.Equal(70, req.Settings.SavingPower)
	require.Equal(current.SavingDurationMinutes, req.Settings.SavingDurationMinutes)
	require.Equal(current.AbundantDurationMinutes, req.Settings.AbundantDurationMinutes)

	cmd, err = ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{DeviceId: domain.INPUT_NUMBER_ID_ABUNDANT_DURATION, Payload: "60"}, current)
	require.NoError(err)
	require.Equal(60, cmd.(domain.SetIrrigationSettingsRequest).Settings.AbundantDurationMinutes)
}

func TestParsedMQTTCommandToCommandInvalid(t *testing.T) {

	assert := assert.New(t)

	current := domain.DefaultIrrigationSettings()

	_, err := ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{DeviceId: domain.INPUT_NUMBER_ID_SAVING_DURATION, Payload: "121"}, current)
	assert.Error(err)

	_, err = ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{DeviceId: domain.INPUT_NUMBER_ID_SAVING_POWER, Payload: "x"}, current)
	assert.Error(err)

	cmd, err := ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{DeviceId: "pump_hold", Payload: "on"}, current)
	assert.NoError(err)
	assert.Nil(cmd)
}
