package actor

import (
	"errors"
	"fmt"
	"time"

	"github.com/caec/caecdash/internal/config"
	"github.com/caec/caecdash/internal/core/domain"
	"github.com/caec/caecdash/internal/core/events"
	"github.com/caec/caecdash/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

// HADiscoveryActor publishes the Home Assistant discovery entities once the
// MQTT actor is healthy, then idles.
type HADiscoveryActor struct {
	config    *config.Config
	behavior  actor.Behavior
	stash     *actorutil.Stash
	mqttActor *actor.PID
	published bool

	logger *zap.Logger
}

func NewHADiscoveryActor(config *config.Config, mqttActor *actor.PID, logger *zap.Logger) *HADiscoveryActor {
	act := &HADiscoveryActor{
		config:    config,
		mqttActor: mqttActor,
		behavior:  actor.NewBehavior(),
		stash:     &actorutil.Stash{},
		logger:    actorutil.ActorLogger(domain.ACTOR_ID_HA_DISCOVERY, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *HADiscoveryActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *HADiscoveryActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("hadiscovery@starting started")

		// MQTT Actor Request
		actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.mqttActor, domain.ActorHealthRequest{}, 15*time.Second), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_MQTT,
				Healthy: false,
			}
		})
		state.behavior.Become(state.WaitingHealthyReceive)
	case *actor.Restarting:
	default:
		state.logger.Debug("hadiscovery@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HADiscoveryActor) WaitingHealthyReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthResponse:
		state.logger.Debug("hadiscovery@healthcheck ActorHealthResponse", zap.String("sender", msg.Id), zap.Bool("healthy", msg.Healthy))
		if !msg.Healthy {
			panic(errors.New("MQTT Actor is not healthy"))
		}
		ctx.Send(state.mqttActor, DiscoveryRequest(state.config.MQTT.BaseTopic))
		state.published = true
		state.behavior.Become(state.DoneReceive)
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("hadiscovery@healthcheck: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HADiscoveryActor) DoneReceive(ctx actor.Context) {
	switch ctx.Message().(type) {
	case domain.ActorHealthRequest:
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_HA_DISCOVERY,
			Healthy: state.published,
			State:   "done",
		})
	}
}

// DiscoveryRequest lists the bridge, channel sensors, switches and settings numbers.
func DiscoveryRequest(baseTopic string) domain.PublishDiscoveryRequest {
	var sensors []domain.GenericSensor

	bridgeDevice := events.BridgeDevice(baseTopic)
	sensors = append(sensors, events.BridgeSensors(bridgeDevice)...)

	systemDevice := events.SystemDevice(baseTopic)
	systemDevice.ViaDevice = bridgeDevice.Id
	sensors = append(sensors, events.ChannelSensors(systemDevice)...)

	return domain.PublishDiscoveryRequest{
		Sensors:      sensors,
		Switches:     events.ControlSwitches(events.IdDevice(systemDevice)),
		InputNumbers: events.IrrigationInputNumbers(events.IdDevice(systemDevice)),
	}
}
