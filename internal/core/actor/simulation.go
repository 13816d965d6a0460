package actor

import (
	"fmt"

	"github.com/caec/caecdash/internal/config"
	"github.com/caec/caecdash/internal/core/domain"
	"github.com/caec/caecdash/internal/core/events"
	"github.com/caec/caecdash/internal/core/port"
	"github.com/caec/caecdash/internal/core/service"
	"github.com/caec/caecdash/internal/core/view"
	. "github.com/caec/caecdash/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/asynkron/protoactor-go/scheduler"
	"go.uber.org/zap"
)

// SimulationActor owns the simulation state. Every read and mutation goes
// through its mailbox.
type SimulationActor struct {
	behavior   actor.Behavior
	stash      *Stash
	scheduler  *scheduler.TimerScheduler
	cancelTick scheduler.CancelFunc

	config      *config.Config
	state       *service.SimulationState
	rnd         port.RandomSource
	eventStream *eventstream.EventStream
	alertLog    *service.AlertLog
	alertBounds service.AlertBounds
	stateName   string

	logger *zap.Logger
}

type simulationTick struct {
}

func NewSimulationActor(config *config.Config, state *service.SimulationState, rnd port.RandomSource,
	eventStream *eventstream.EventStream, logger *zap.Logger) *SimulationActor {
	act := &SimulationActor{
		config:      config,
		state:       state,
		rnd:         rnd,
		eventStream: eventStream,
		behavior:    actor.NewBehavior(),
		stash:       &Stash{},
		alertBounds: service.AlertBounds(config.Dashboard.Optimal),
		logger:      ActorLogger(domain.ACTOR_ID_SIMULATION, logger),
	}
	// alerts are only rendered by the legacy dashboard
	if variant, err := view.ParseVariant(config.Dashboard.Variant); err == nil && variant.IsLegacy() {
		act.alertLog = service.NewAlertLog(service.MAX_ALERTS)
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *SimulationActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *SimulationActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("simulation@starting started")
		state.stateName = "starting"

		state.scheduler = scheduler.NewTimerScheduler(ctx)
		state.scheduleTick(ctx)

		state.publish(state.withAlerts(state.state.Snapshot()), domain.SNAPSHOT_CAUSE_STARTUP)

		state.stateName = "running"
		state.behavior.Become(state.RunningReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
		state.stopTick()
	default:
		state.logger.Debug("simulation@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *SimulationActor) RunningReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Stopping:
		state.logger.Debug("simulation@running stopping")
		state.stopTick()
	case *actor.Restarting:
		state.stopTick()
	case domain.ActorHealthRequest:
		state.logger.Debug("simulation@running: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_SIMULATION,
			Healthy: true,
			State:   state.stateName,
		})
	case simulationTick:
		state.logger.Debug("simulation@running tick")
		state.tick()
		state.scheduleTick(ctx)
	case domain.SimulationRequest:
		state.logger.Debug("simulation@running request", zap.String("type", fmt.Sprintf("%T", msg)))
		snapshot, err := state.apply(msg)
		Reply(ctx, msg, domain.SimulationResponse{
			ActorResponseMixIn: domain.ResponseWithError(err),
			Snapshot:           snapshot,
		})
	default:
		state.logger.Debug("simulation@running: unhandled", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *SimulationActor) apply(req domain.SimulationRequest) (domain.Snapshot, error) {
	switch msg := req.(type) {
	case domain.GetSnapshotRequest:
		return state.withAlerts(state.state.Snapshot()), nil
	case domain.TickRequest:
		return state.tick(), nil
	case domain.SetIrrigationRequest:
		state.addAlert(service.IrrigationToggledAlert(msg.Active))
		return state.mutated(state.state.SetIrrigation(msg.Active)), nil
	case domain.SetLightRequest:
		state.addAlert(service.LightToggledAlert(msg.Active))
		return state.mutated(state.state.SetLight(msg.Active)), nil
	case domain.SetIrrigationSettingsRequest:
		return state.mutated(state.state.SetIrrigationSettings(msg.Settings)), nil
	case domain.AddNutrientsRequest:
		state.addAlert(service.NutrientsAddedAlert())
		return state.mutated(state.state.AddNutrients()), nil
	default:
		return state.withAlerts(state.state.Snapshot()), fmt.Errorf("unsupported simulation request %T", req)
	}
}

func (state *SimulationActor) tick() domain.Snapshot {
	snapshot := state.withAlerts(state.state.Tick(state.rnd))
	state.publish(snapshot, domain.SNAPSHOT_CAUSE_TICK)
	return snapshot
}

func (state *SimulationActor) mutated(snapshot domain.Snapshot) domain.Snapshot {
	snapshot = state.withAlerts(snapshot)
	state.publish(snapshot, domain.SNAPSHOT_CAUSE_COMMAND)
	return snapshot
}

func (state *SimulationActor) publish(snapshot domain.Snapshot, cause string) {
	state.eventStream.Publish(domain.SnapshotUpdatedEvent{
		Snapshot: snapshot,
		Cause:    cause,
	})
	for _, ev := range events.SnapshotToUpdateEvents(snapshot) {
		state.eventStream.Publish(ev)
	}
}

func (state *SimulationActor) addAlert(alert domain.Alert) {
	if state.alertLog != nil {
		state.alertLog.Add(alert)
	}
}

// withAlerts evaluates the thresholds against the snapshot and attaches the log.
func (state *SimulationActor) withAlerts(snapshot domain.Snapshot) domain.Snapshot {
	if state.alertLog == nil {
		return snapshot
	}
	state.alertLog.AddAll(service.EvaluateAlerts(snapshot, state.alertBounds))
	snapshot.Alerts = state.alertLog.List()
	return snapshot
}

func (state *SimulationActor) scheduleTick(ctx actor.Context) {
	state.cancelTick = state.scheduler.RequestOnce(state.config.Simulation.TickInterval, ctx.Self(), simulationTick{})
}

func (state *SimulationActor) stopTick() {
	if state.cancelTick != nil {
		state.cancelTick()
		state.cancelTick = nil
	}
}
