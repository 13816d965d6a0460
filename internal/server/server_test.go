package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	adactor "github.com/caec/caecdash/internal/adapter/actor"
	"github.com/caec/caecdash/internal/config"
	cactor "github.com/caec/caecdash/internal/core/actor"
	"github.com/caec/caecdash/internal/core/domain"
	"github.com/caec/caecdash/internal/core/service"
	"github.com/caec/caecdash/internal/countdown"
	"github.com/caec/caecdash/internal/metrics"
	"github.com/caec/caecdash/internal/util"
	"github.com/caec/caecdash/pkg/caecapi"

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

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// the live countdown only emits its first value
func (c fixedClock) NewTicker(_ time.Duration) countdown.Ticker {
	return idleTicker{c: make(chan time.Time)}
}

type idleTicker struct {
	c chan time.Time
}

func (t idleTicker) C() <-chan time.Time {
	return t.c
}

func (t idleTicker) Stop() {}

type fixedAges map[domain.ChannelId]string

func (a fixedAges) Labels() map[domain.ChannelId]string {
	return a
}

var (
	simulationTime = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	serverTime     = time.Date(2025, 12, 19, 18, 0, 0, 0, time.Local)
)

type testEnv struct {
	as      *actor.ActorSystem
	master  *actor.PID
	server  *Server
	handler http.Handler
	metrics *metrics.Metrics
}

func newTestEnv(t *testing.T, configure func(*config.Config)) *testEnv {
	return newTestEnvWithSync(t, configure, nil)
}

// newTestEnvWithSync wires the sync actor to client; nil keeps it disabled.
func newTestEnvWithSync(t *testing.T, configure func(*config.Config), client *caecapi.Client) *testEnv {
	cfg := util.LoadTestConfig()
	cfg.Simulation.TickInterval = time.Hour
	if configure != nil {
		configure(&cfg)
	}
	logger := zap.NewNop()
	as := actor.NewActorSystem()
	es := &eventstream.EventStream{}
	state := service.NewSimulationState(fixedClock{now: simulationTime})

	props := actor.PropsFromProducer(func() actor.Actor {
		return cactor.NewMasterOfPuppetsActor(cfg, es,
			func(es *eventstream.EventStream) *cactor.SimulationActor {
				return cactor.NewSimulationActor(&cfg, state, constRandom(0.5), es, logger)
			},
			func(es *eventstream.EventStream) *adactor.SyncActor {
				return adactor.NewSyncActor(&cfg, client, es, logger)
			},
			nil, logger)
	})
	pid, err := as.Root.SpawnNamed(props, domain.ACTOR_ID_MASTER)
	require.NoError(t, err)

	m := metrics.NewMetrics()
	s, err := New(cfg, Deps{
		RootContext: as.Root,
		MasterActor: pid,
		EventStream: es,
		Metrics:     m,
		UpdateAges:  fixedAges{domain.CHANNEL_WATER: "Hace 3 min", domain.CHANNEL_PH: "Hace 1 min"},
		Clock:       fixedClock{now: serverTime},
	}, logger)
	require.NoError(t, err)

	env := &testEnv{as: as, master: pid, server: s, handler: s.RegisterRoutes(), metrics: m}
	t.Cleanup(func() {
		s.Close()
		as.Shutdown()
	})
	return env
}

func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return env.do(req)
}

func (env *testEnv) postForm(path string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return env.do(req)
}

func (env *testEnv) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return env.do(req)
}

func TestNewValidatesConfig(t *testing.T) {

	as := actor.NewActorSystem()
	defer as.Shutdown()
	pid := as.Root.Spawn(actor.PropsFromFunc(func(actor.Context) {}))
	deps := Deps{RootContext: as.Root, MasterActor: pid}

	cfg := util.LoadTestConfig()
	cfg.Dashboard.Variant = "compact"
	_, err := New(cfg, deps, zap.NewNop())
	assert.Error(t, err)

	cfg = util.LoadTestConfig()
	cfg.Login.Mode = "oauth"
	_, err = New(cfg, deps, zap.NewNop())
	assert.Error(t, err)

	cfg = util.LoadTestConfig()
	cfg.Harvest.Date = "20/12/2025"
	_, err = New(cfg, deps, zap.NewNop())
	assert.Error(t, err)

	_, err = New(util.LoadTestConfig(), Deps{}, zap.NewNop())
	assert.Error(t, err)

	_, err = New(util.LoadTestConfig(), deps, zap.NewNop())
	assert.NoError(t, err)
}

func TestHealthCheck(t *testing.T) {

	env := newTestEnv(t, nil)

	rec := env.get("/healthcheck")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "health_check: OK", rec.Body.String())
}

func TestSimulationTimeout(t *testing.T) {

	as := actor.NewActorSystem()
	defer as.Shutdown()
	// never answers
	pid := as.Root.Spawn(actor.PropsFromFunc(func(actor.Context) {}))

	cfg := util.LoadTestConfig()
	cfg.HTTP.ActorTimeout = 50 * time.Millisecond
	s, err := New(cfg, Deps{RootContext: as.Root, MasterActor: pid}, zap.NewNop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.RegisterRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/system-data", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)

	rec = httptest.NewRecorder()
	s.RegisterRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "health_check: FAIL", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {

	env := newTestEnv(t, nil)

	require.Equal(t, http.StatusOK, env.get("/api/system-data").Code)

	rec := env.get("/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `caec_http_requests_total{route="/api/system-data",status="200"} 1`)
}

func TestStaticFiles(t *testing.T) {

	env := newTestEnv(t, nil)

	rec := env.get("/static/js/dashboard.js")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "function openSensorModal")

	assert.Equal(t, http.StatusOK, env.get("/static/css/caec.css").Code)
	assert.Equal(t, http.StatusOK, env.get("/static/js/login.js").Code)
}
