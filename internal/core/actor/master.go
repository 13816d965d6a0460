package actor

import (
	"errors"
	"fmt"
	"log"
	"time"

	adactor "github.com/caec/caecdash/internal/adapter/actor"
	"github.com/caec/caecdash/internal/config"
	"github.com/caec/caecdash/internal/core/domain"
	. "github.com/caec/caecdash/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"go.uber.org/zap"
)

type SimulationActorProvider func(*eventstream.EventStream) *SimulationActor

type SyncActorProvider func(*eventstream.EventStream) *adactor.SyncActor

type MQTTActorProvider func(*eventstream.EventStream) *adactor.MQTTActor

const HEALTH_CHECK_TIMEOUT = 1 * time.Second

type MasterOfPuppetsActor struct {
	config   config.Config
	behavior actor.Behavior
	stash    *Stash

	currentHealthCheck      healthCheckResult
	eventStream             *eventstream.EventStream
	simulationActor         *actor.PID
	syncActor               *actor.PID
	mqttActor               *actor.PID
	simulationActorProvider SimulationActorProvider
	syncActorProvider       SyncActorProvider
	mqttActorProvider       MQTTActorProvider
	logger                  *zap.Logger
}

type healthCheckResult struct {
	expected  []string
	healthy   map[string]bool
	received  int
	respondTo *actor.PID
}

// NewMasterOfPuppetsActor supervises the simulation and sync actors and, when
// mqttActorProvider is not nil, the MQTT mirror.
func NewMasterOfPuppetsActor(config config.Config, eventStream *eventstream.EventStream,
	simulationActorProvider SimulationActorProvider, syncActorProvider SyncActorProvider,
	mqttActorProvider MQTTActorProvider, logger *zap.Logger) *MasterOfPuppetsActor {
	act := &MasterOfPuppetsActor{
		config:                  config,
		behavior:                actor.NewBehavior(),
		stash:                   &Stash{},
		logger:                  ActorLogger(domain.ACTOR_ID_MASTER, logger),
		eventStream:             eventStream,
		simulationActorProvider: simulationActorProvider,
		syncActorProvider:       syncActorProvider,
		mqttActorProvider:       mqttActorProvider,
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *MasterOfPuppetsActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *MasterOfPuppetsActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("master@starting started")

		state.currentHealthCheck = healthCheckResult{}

		// start Simulation child
		simulationActorPID, err := state.startSimulationActor(ctx)
		if err != nil {
			panic(err)
		}
		state.simulationActor = simulationActorPID

		// start Sync child
		syncActorPID, err := state.startSyncActor(ctx)
		if err != nil {
			panic(err)
		}
		state.syncActor = syncActorPID

		// start MQTT child
		if state.mqttActorProvider != nil {
			mqttActorPID, err := state.startMQTTActor(ctx)
			if err != nil {
				panic(err)
			}
			state.mqttActor = mqttActorPID

			// start HA Discovery
			if state.config.MQTT.HADiscoveryEnable {
				_, err := state.startHADiscoveryActor(ctx)
				if err != nil {
					panic(err)
				}
			}
		}

		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("master@starting stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MasterOfPuppetsActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("master@default ActorHealthRequest")
		state.currentHealthCheck.reset(state.children())
		state.currentHealthCheck.respondTo = ctx.Sender()
		for id, pid := range state.children() {
			childId := id
			PipeToSelfWithRecover(ctx, ctx.RequestFuture(pid, domain.ActorHealthRequest{}, 500*time.Millisecond), func(err error) any {
				return domain.ActorHealthResponse{
					Id:      childId,
					Healthy: false,
				}
			})
		}

		ctx.SetReceiveTimeout(HEALTH_CHECK_TIMEOUT)

		state.behavior.BecomeStacked(state.HealthCheckReceive)
	case domain.SimulationRequest:
		ctx.Forward(state.simulationActor)
	case domain.SyncRequest:
		ctx.Send(state.syncActor, msg)
	case domain.SimulationResponse:
		// answer to a command issued from MQTT
		if msg.HasResponseError() {
			state.logger.Error("master@default command failed", zap.Error(msg.GetResponseError()))
		}
	case adactor.ParsedCommand:
		// redirect parsedCommand to the simulation
		state.logger.Debug("master@default parsedCommand", zap.Any("command", msg.Command))
		if msg.Command != nil {
			state.applyParsedCommand(ctx, msg)
		}
	case *actor.Terminated:
		// the simulation is the only child the dashboard cannot live without
		if msg.Who.Id == state.simulationActor.Id {
			state.logger.Error("master@default simulation terminated")
			panic(errors.New("simulation terminated"))
		}
	case *actor.Stopping, *actor.Stopped, *actor.Restarting, *actor.ReceiveTimeout:
	default:
		// nothing would ever unstash it here, late health responses included
		state.logger.Debug("master@default unhandled", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *MasterOfPuppetsActor) HealthCheckReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.ReceiveTimeout:
		// if some actor does not respond to healthCheck, assume not healthy
		ctx.CancelReceiveTimeout()
		state.currentHealthCheck.respond(ctx)
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	case domain.ActorHealthResponse:
		state.logger.Debug("master@healthcheck ActorHealthResponse", zap.String("sender", msg.Id), zap.Bool("healthy", msg.Healthy))
		state.currentHealthCheck.received++
		if msg.Healthy {
			state.currentHealthCheck.healthy[msg.Id] = true
		}
		if state.currentHealthCheck.allReceived() {
			ctx.CancelReceiveTimeout()
			state.currentHealthCheck.respond(ctx)

			state.behavior.UnbecomeStacked()
			state.stash.UnstashAll(ctx)
		} else {
			ctx.SetReceiveTimeout(HEALTH_CHECK_TIMEOUT)
		}
	default:
		state.logger.Debug("master@healthcheck stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

// applyParsedCommand reads the current settings first, number commands only
// change one of them.
func (state *MasterOfPuppetsActor) applyParsedCommand(ctx actor.Context, msg adactor.ParsedCommand) {
	future := ctx.RequestFuture(state.simulationActor, domain.GetSnapshotRequest{}, state.config.HTTP.ActorTimeout)
	ctx.ReenterAfter(future, func(res any, err error) {
		if err != nil {
			state.logger.Error("master@default could not read snapshot", zap.Error(err))
			return
		}
		resp, ok := res.(domain.SimulationResponse)
		if !ok {
			return
		}
		cmd, err := ParsedMQTTCommandToCommand(*msg.Command, resp.Snapshot.Settings)
		if err != nil {
			state.logger.Warn("master@default invalid command", zap.Any("command", msg.Command), zap.Error(err))
			return
		}
		if cmd == nil {
			return
		}
		ctx.Request(state.simulationActor, cmd)

		now := time.Now()
		switch pcmd := cmd.(type) {
		case domain.SetIrrigationRequest:
			ctx.Send(state.syncActor, domain.SyncIrrigationStatusRequest{Active: pcmd.Active, Timestamp: now})
		case domain.SetIrrigationSettingsRequest:
			ctx.Send(state.syncActor, domain.SyncIrrigationConfigRequest{Settings: pcmd.Settings, Timestamp: now})
		}
	})
}

func (state *MasterOfPuppetsActor) children() map[string]*actor.PID {
	children := map[string]*actor.PID{
		domain.ACTOR_ID_SIMULATION: state.simulationActor,
		domain.ACTOR_ID_SYNC:       state.syncActor,
	}
	if state.mqttActor != nil {
		children[domain.ACTOR_ID_MQTT] = state.mqttActor
	}
	return children
}

func (state *MasterOfPuppetsActor) startSimulationActor(ctx actor.Context) (*actor.PID, error) {

	decider := func(reason interface{}) actor.Directive {
		log.Printf("handling failure for child. reason: %v", reason)
		return actor.RestartDirective
	}
	supervisor := actor.NewOneForOneStrategy(3, 10*time.Second, decider)

	simulationProps := actor.PropsFromProducer(func() actor.Actor {
		return state.simulationActorProvider(state.eventStream)
	}, actor.WithSupervisor(supervisor))
	return ctx.SpawnNamed(simulationProps, domain.ACTOR_ID_SIMULATION)
}

func (state *MasterOfPuppetsActor) startSyncActor(ctx actor.Context) (*actor.PID, error) {

	decider := func(reason interface{}) actor.Directive {
		log.Printf("handling failure for child. reason: %v", reason)
		return actor.RestartDirective
	}
	supervisor := actor.NewOneForOneStrategy(3, 10*time.Second, decider)

	syncProps := actor.PropsFromProducer(func() actor.Actor {
		return state.syncActorProvider(state.eventStream)
	}, actor.WithSupervisor(supervisor))
	return ctx.SpawnNamed(syncProps, domain.ACTOR_ID_SYNC)
}

func (state *MasterOfPuppetsActor) startHADiscoveryActor(ctx actor.Context) (*actor.PID, error) {

	decider := func(reason interface{}) actor.Directive {
		log.Printf("handling failure for child. reason: %v", reason)
		return actor.RestartDirective
	}
	supervisor := actor.NewOneForOneStrategy(1, 10*time.Second, decider)

	haDiscProps := actor.PropsFromProducer(func() actor.Actor {
		return NewHADiscoveryActor(&state.config, state.mqttActor, state.logger)
	}, actor.WithSupervisor(supervisor))
	return ctx.SpawnNamed(haDiscProps, domain.ACTOR_ID_HA_DISCOVERY)
}

func (state *MasterOfPuppetsActor) startMQTTActor(ctx actor.Context) (*actor.PID, error) {

	supervisor := actor.NewExponentialBackoffStrategy(10*time.Second, 1*time.Second)

	mqttProps := actor.PropsFromProducer(func() actor.Actor {
		return state.mqttActorProvider(state.eventStream)
	}, actor.WithSupervisor(supervisor))
	return ctx.SpawnNamed(mqttProps, domain.ACTOR_ID_MQTT)
}

func (state *healthCheckResult) reset(children map[string]*actor.PID) {
	state.expected = state.expected[:0]
	for id := range children {
		state.expected = append(state.expected, id)
	}
	state.healthy = make(map[string]bool, len(children))
	state.received = 0
}

func (state *healthCheckResult) allReceived() bool {
	return state.received >= len(state.expected)
}

func (state *healthCheckResult) allHealthy() bool {
	for _, id := range state.expected {
		if !state.healthy[id] {
			return false
		}
	}
	return true
}

func (state *healthCheckResult) respond(ctx actor.Context) {
	resp := domain.ActorHealthResponse{
		Id:      domain.ACTOR_ID_MASTER,
		Healthy: state.allHealthy(),
	}
	if !resp.Healthy {
		resp.State = "degraded"
	}
	if state.respondTo != nil {
		ctx.Send(state.respondTo, resp)
	}
}
