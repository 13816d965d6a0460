package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/caec/caecdash/internal/config"
	"github.com/caec/caecdash/internal/core/domain"
	"github.com/caec/caecdash/internal/core/login"
	"github.com/caec/caecdash/internal/core/view"
	"github.com/caec/caecdash/internal/countdown"
	"github.com/caec/caecdash/internal/metrics"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/gorilla/sessions"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// UpdateAgeSource provides the legacy "Hace N min" labels.
type UpdateAgeSource interface {
	Labels() map[domain.ChannelId]string
}

// Deps are the collaborators of the HTTP layer. Metrics, UpdateAges and
// Clock are optional.
type Deps struct {
	RootContext *actor.RootContext
	MasterActor *actor.PID
	EventStream *eventstream.EventStream
	Metrics     *metrics.Metrics
	UpdateAges  UpdateAgeSource
	Clock       countdown.Clock
}

type Server struct {
	port         uint
	httpLog      bool
	requireAuth  bool
	actorTimeout time.Duration
	variant      view.Variant
	loginMode    login.Mode
	harvest      time.Time

	rootContext *actor.RootContext
	masterActor *actor.PID
	eventStream *eventstream.EventStream
	sessions    sessions.Store
	metrics     *metrics.Metrics
	updateAges  UpdateAgeSource
	clock       countdown.Clock
	renderer    *Renderer
	hub         *LiveHub
	logger      *zap.Logger
}

func New(cfg config.Config, deps Deps, logger *zap.Logger) (*Server, error) {
	if deps.RootContext == nil || deps.MasterActor == nil {
		return nil, errors.New("server needs the root context and the master actor")
	}
	variant, err := view.ParseVariant(cfg.Dashboard.Variant)
	if err != nil {
		return nil, err
	}
	mode, err := login.ParseMode(cfg.Login.Mode)
	if err != nil {
		return nil, err
	}
	harvest, err := countdown.ParseTarget(cfg.Harvest.Date)
	if err != nil {
		return nil, err
	}
	renderer, err := NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	clock := deps.Clock
	if clock == nil {
		clock = countdown.SystemClock()
	}
	updateAges := deps.UpdateAges
	if !variant.IsLegacy() {
		updateAges = nil
	}

	store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	s := &Server{
		port:         cfg.Port,
		httpLog:      cfg.HttpLog,
		requireAuth:  cfg.Login.RequireAuth,
		actorTimeout: cfg.HTTP.ActorTimeout,
		variant:      variant,
		loginMode:    mode,
		harvest:      harvest,
		rootContext:  deps.RootContext,
		masterActor:  deps.MasterActor,
		eventStream:  deps.EventStream,
		sessions:     store,
		metrics:      deps.Metrics,
		updateAges:   updateAges,
		clock:        clock,
		renderer:     renderer,
		logger:       logger.With(zap.String("component", "server")),
	}
	s.hub = NewLiveHub(s)
	return s, nil
}

// HTTPServer wraps the routes in a net/http server listening on the configured port.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Close drops every live connection.
func (s *Server) Close() {
	s.hub.Close()
}

func (s *Server) ages() map[domain.ChannelId]string {
	if s.updateAges == nil {
		return nil
	}
	return s.updateAges.Labels()
}

// simulate asks the master actor and waits for the resulting snapshot.
func (s *Server) simulate(req domain.SimulationRequest) (domain.Snapshot, error) {
	res, err := s.rootContext.RequestFuture(s.masterActor, req, s.actorTimeout).Result()
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%T: %w", req, err)
	}
	response, ok := res.(domain.SimulationResponse)
	if !ok {
		return domain.Snapshot{}, fmt.Errorf("%T: unexpected response %T", req, res)
	}
	if response.HasResponseError() {
		return domain.Snapshot{}, response.GetResponseError()
	}
	return response.Snapshot, nil
}

func (s *Server) snapshot() (domain.Snapshot, error) {
	return s.simulate(domain.GetSnapshotRequest{})
}

// sync fires a stub notification; the outcome is only logged.
func (s *Server) sync(req domain.SyncRequest) {
	s.rootContext.Send(s.masterActor, req)
}
