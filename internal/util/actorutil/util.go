package actorutil

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/caec/caecdash/internal/core/domain"
	"github.com/caec/caecdash/internal/mqtt"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/lmittmann/tint"
	"go.uber.org/zap"
)

func PipeToSelfWithRecover(ctx actor.Context, future *actor.Future, mapFn func(error) any) {
	ctx.ReenterAfter(future, func(msg any, err error) {
		if err != nil {
			ctx.Send(ctx.Self(), mapFn(err))
			return
		}
		ctx.Send(ctx.Self(), msg)
	})
}

func NewActorSystemWithZapLogger(logger *zap.Logger) *actor.ActorSystem {
	stdOutLogger := zap.NewStdLog(logger)

	var slogLevel slog.Level = slog.LevelInfo

	switch logger.Level() {
	case zap.DebugLevel:
		slogLevel = slog.LevelDebug
	case zap.InfoLevel:
		slogLevel = slog.LevelInfo
	case zap.WarnLevel:
		slogLevel = slog.LevelWarn
	case zap.ErrorLevel:
		slogLevel = slog.LevelError
	case zap.PanicLevel:
		slogLevel = slog.LevelError
	}

	return actor.NewActorSystem(actor.WithLoggerFactory(func(system *actor.ActorSystem) *slog.Logger {

		// create a new logger
		return slog.New(tint.NewHandler(stdOutLogger.Writer(), &tint.Options{
			Level:      slogLevel,
			TimeFormat: time.DateTime,
		}))
	}))
}

func ActorLogger(actorName string, logger *zap.Logger) *zap.Logger {
	return logger.With(zap.String("actor", actorName))
}

// ParsedMQTTCommandToCommand maps an MQTT switch or number command to a
// simulation request. Settings commands carry only the changed field; the
// caller merges it with the current settings.
func ParsedMQTTCommandToCommand(cmd mqtt.ParsedMQTTCommand, current domain.IrrigationSettings) (domain.SimulationRequest, error) {
	switch cmd.DeviceId {
	case domain.SWITCH_ID_IRRIGATION:
		return domain.SetIrrigationRequest{
			Active: cmd.Payload == mqtt.MQTT_PAYLOAD_ON,
		}, nil
	case domain.SWITCH_ID_LIGHT:
		return domain.SetLightRequest{
			Active: cmd.Payload == mqtt.MQTT_PAYLOAD_ON,
		}, nil
	case domain.INPUT_NUMBER_ID_SAVING_POWER:
		value, err := parseBoundedInt(cmd.Payload, 0, 100)
		if err != nil {
			return nil, err
		}
		current.SavingPower = value
	case domain.INPUT_NUMBER_ID_SAVING_DURATION:
		value, err := parseBoundedInt(cmd.Payload, 1, 120)
		if err != nil {
			return nil, err
		}
		current.SavingDurationMinutes = value
	case domain.INPUT_NUMBER_ID_ABUNDANT_DURATION:
		value, err := parseBoundedInt(cmd.Payload, 1, 60)
		if err != nil {
			return nil, err
		}
		current.AbundantDurationMinutes = value
	default:
		return nil, nil
	}
	return domain.SetIrrigationSettingsRequest{
		Settings: current,
	}, nil
}

func parseBoundedInt(payload string, min, max int) (int, error) {
	value, err := strconv.ParseFloat(payload, 64)
	if err != nil {
		return 0, err
	}
	rounded := int(math.Round(value))
	if rounded < min || rounded > max {
		return 0, fmt.Errorf("value %s out of range [%d,%d]", payload, min, max)
	}
	return rounded, nil
}
