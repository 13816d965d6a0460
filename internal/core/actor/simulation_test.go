package actor

import (
	"sync"
	"testing"
	"time"

	"github.com/caec/caecdash/internal/core/domain"
	"github.com/caec/caecdash/internal/core/service"
	"github.com/caec/caecdash/internal/util"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type constRandom float64

func (r constRandom) Float64() float64 {
	return float64(r)
}

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
}

type snapshotRecorder struct {
	mu     sync.Mutex
	events []domain.SnapshotUpdatedEvent
}

func (r *snapshotRecorder) record(evt any) {
	if ev, ok := evt.(domain.SnapshotUpdatedEvent); ok {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, ev)
	}
}

func (r *snapshotRecorder) causes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var causes []string
	for _, ev := range r.events {
		causes = append(causes, ev.Cause)
	}
	return causes
}

func spawnSimulation(t *testing.T, variant string, tick time.Duration) (*actor.ActorSystem, *actor.PID, *snapshotRecorder) {
	as := actor.NewActorSystem()

	cfg := util.LoadTestConfig()
	cfg.Dashboard.Variant = variant
	cfg.Simulation.TickInterval = tick

	es := &eventstream.EventStream{}
	rec := &snapshotRecorder{}
	es.Subscribe(rec.record)

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewSimulationActor(&cfg, service.NewSimulationState(fixedClock{}), constRandom(1), es, zap.NewNop())
	})
	pid, err := as.Root.SpawnNamed(props, domain.ACTOR_ID_SIMULATION)
	require.NoError(t, err)
	return as, pid, rec
}

func requestSnapshot(t *testing.T, as *actor.ActorSystem, pid *actor.PID, req domain.SimulationRequest) domain.Snapshot {
	res, err := as.Root.RequestFuture(pid, req, 2*time.Second).Result()
	require.NoError(t, err)
	resp, ok := res.(domain.SimulationResponse)
	require.True(t, ok)
	require.False(t, resp.HasResponseError())
	return resp.Snapshot
}

func TestSimulationActorCommands(t *testing.T) {

	assert := assert.New(t)

	as, pid, rec := spawnSimulation(t, "extended", time.Hour)
	defer as.Shutdown()

	s := requestSnapshot(t, as, pid, domain.GetSnapshotRequest{})
	assert.Equal(75.0, s.Water.Value)
	assert.True(s.Irrigation.Status)

	s = requestSnapshot(t, as, pid, domain.SetIrrigationRequest{Active: false})
	assert.False(s.Irrigation.Status)
	assert.Equal(domain.IRRIGATION_OFF_LABEL, s.Irrigation.Text)

	s = requestSnapshot(t, as, pid, domain.SetLightRequest{Active: false})
	assert.Equal(domain.LIGHT_OFF_LABEL, s.Light.Text)

	settings := domain.IrrigationSettings{SavingPower: 70, SavingDurationMinutes: 30, AbundantDurationMinutes: 10}
	s = requestSnapshot(t, as, pid, domain.SetIrrigationSettingsRequest{Settings: settings})
	assert.Equal(settings, s.Settings)

	// r = 1 drains water by 0.5 per tick
	s = requestSnapshot(t, as, pid, domain.TickRequest{})
	assert.InDelta(74.5, s.Water.Value, 0.0001)
	assert.InDelta(84.7, s.Nutrient.Value, 0.0001)

	// alerts are not tracked by the extended dashboard
	assert.Empty(s.Alerts)

	assert.Equal([]string{
		domain.SNAPSHOT_CAUSE_STARTUP,
		domain.SNAPSHOT_CAUSE_COMMAND,
		domain.SNAPSHOT_CAUSE_COMMAND,
		domain.SNAPSHOT_CAUSE_COMMAND,
		domain.SNAPSHOT_CAUSE_TICK,
	}, rec.causes())
}

func TestSimulationActorLegacyAlerts(t *testing.T) {

	assert := assert.New(t)

	as, pid, _ := spawnSimulation(t, "legacy", time.Hour)
	defer as.Shutdown()

	s := requestSnapshot(t, as, pid, domain.SetIrrigationRequest{Active: false})
	require.Len(t, s.Alerts, 1)
	assert.Equal("Sistema de irrigación detenido", s.Alerts[0].Message)

	s = requestSnapshot(t, as, pid, domain.AddNutrientsRequest{})
	assert.Equal(100.0, s.Nutrient.Value)
	require.Len(t, s.Alerts, 2)
	assert.Equal("Nutrientes añadidos al sistema", s.Alerts[0].Message)
}

func TestSimulationActorTicks(t *testing.T) {

	as, pid, rec := spawnSimulation(t, "extended", time.Second)
	defer as.Shutdown()

	require.Eventually(t, func() bool {
		for _, c := range rec.causes() {
			if c == domain.SNAPSHOT_CAUSE_TICK {
				return true
			}
		}
		return false
	}, 5*time.Second, 100*time.Millisecond)

	res, err := as.Root.RequestFuture(pid, domain.ActorHealthRequest{}, time.Second).Result()
	require.NoError(t, err)
	health := res.(domain.ActorHealthResponse)
	assert.True(t, health.Healthy)
	assert.Equal(t, "running", health.State)

	require.NoError(t, as.Root.StopFuture(pid).Wait())
}
