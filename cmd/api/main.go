package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	adactor "github.com/caec/caecdash/internal/adapter/actor"
	"github.com/caec/caecdash/internal/config"
	"github.com/caec/caecdash/internal/core/actor"
	"github.com/caec/caecdash/internal/core/domain"
	"github.com/caec/caecdash/internal/core/port"
	"github.com/caec/caecdash/internal/core/service"
	"github.com/caec/caecdash/internal/core/view"
	"github.com/caec/caecdash/internal/metrics"
	"github.com/caec/caecdash/internal/server"
	"github.com/caec/caecdash/internal/util/actorutil"
	"github.com/caec/caecdash/pkg/caecapi"

	pactor "github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *http.Server, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Println("shutting down gracefully, press Ctrl+C again to force")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {

	// load and print config
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		slog.Error("config errors", "error", err)
		return
	}
	slog.Info("Using", "config", cfg.Redacted())

	// zap logger
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)

	logger := zap.Must(zapCfg.Build())
	defer logger.Sync()

	// init actor system
	as := actorutil.NewActorSystemWithZapLogger(logger)
	ctx := as.Root
	es := &eventstream.EventStream{}

	// the simulation state outlives actor restarts
	state := service.NewSimulationState(port.SystemClock{})

	props := pactor.PropsFromProducer(func() pactor.Actor {
		return actor.NewMasterOfPuppetsActor(*cfg, es,
			simulationActorProvider(cfg, state, logger),
			syncActorProvider(cfg, logger),
			mqttActorProvider(cfg, logger),
			logger)
	})
	pid, err := ctx.SpawnNamed(props, domain.ACTOR_ID_MASTER)
	if err != nil {
		logger.Error("cannot spawn master actor", zap.Error(err))
		return
	}

	m := metrics.NewMetrics()
	m.Observe(es)
	defer m.Close()

	deps := server.Deps{
		RootContext: ctx,
		MasterActor: pid,
		EventStream: es,
		Metrics:     m,
	}

	if cfg.Dashboard.Variant == string(view.VARIANT_LEGACY) {
		refresher := service.NewUpdateAgeRefresher(newRandom(), logger)
		if err := refresher.Start(context.Background(), cfg.Dashboard.UpdateAgeInterval); err != nil {
			logger.Error("cannot start update age refresher", zap.Error(err))
			return
		}
		defer refresher.Stop()
		deps.UpdateAges = refresher
	}

	srv, err := server.New(*cfg, deps, logger)
	if err != nil {
		logger.Error("cannot create http server", zap.Error(err))
		return
	}
	httpServer := srv.HTTPServer()

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(httpServer, done)

	logger.Info("http server listening", zap.String("addr", httpServer.Addr))
	err = httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	srv.Close()
	log.Println("Graceful shutdown complete.")

	ctx.Stop(pid)
	as.Shutdown()
}

func newRandom() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func simulationActorProvider(cfg *config.Config, state *service.SimulationState, logger *zap.Logger) actor.SimulationActorProvider {
	return func(es *eventstream.EventStream) *actor.SimulationActor {
		return actor.NewSimulationActor(cfg, state, newRandom(), es, logger)
	}
}

func syncActorProvider(cfg *config.Config, logger *zap.Logger) actor.SyncActorProvider {
	var client *caecapi.Client
	if cfg.Sync.SyncEnabled() {
		client = caecapi.NewClient(cfg.Sync.BaseURL, cfg.Sync.Timeout, caecapi.WithLogger(logger))
	}
	return func(es *eventstream.EventStream) *adactor.SyncActor {
		return adactor.NewSyncActor(cfg, client, es, logger)
	}
}

func mqttActorProvider(cfg *config.Config, logger *zap.Logger) actor.MQTTActorProvider {
	if !cfg.MQTT.Enable {
		return nil
	}
	return func(es *eventstream.EventStream) *adactor.MQTTActor {
		return adactor.NewMQTTActor(cfg, es, logger)
	}
}
