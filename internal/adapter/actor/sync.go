package actor

import (
	"context"
	"fmt"
	"time"

	"github.com/caec/caecdash/internal/config"
	"github.com/caec/caecdash/internal/core/domain"
	"github.com/caec/caecdash/internal/util/actorutil"
	"github.com/caec/caecdash/pkg/caecapi"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"go.uber.org/zap"
)

// SyncActor fires the sync stub calls. Each request is a single background
// call; failures are logged and published, never retried.
type SyncActor struct {
	config      *config.Config
	behavior    actor.Behavior
	client      *caecapi.Client
	eventStream *eventstream.EventStream
	inFlight    int

	logger *zap.Logger
}

type syncResult struct {
	operation string
	response  string
	err       error
}

func NewSyncActor(config *config.Config, client *caecapi.Client, eventStream *eventstream.EventStream, logger *zap.Logger) *SyncActor {
	act := &SyncActor{
		config:      config,
		client:      client,
		eventStream: eventStream,
		behavior:    actor.NewBehavior(),
		logger:      actorutil.ActorLogger(domain.ACTOR_ID_SYNC, logger),
	}
	if client == nil {
		act.behavior.Become(act.DisabledReceive)
	} else {
		act.behavior.Become(act.DefaultReceive)
	}
	return act
}

func (state *SyncActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *SyncActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("sync@default started", zap.String("base_url", state.config.Sync.BaseURL))
	case domain.ActorHealthRequest:
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_SYNC,
			Healthy: true,
			State:   fmt.Sprintf("breaker %s, %d in flight", state.client.BreakerState(), state.inFlight),
		})
	case domain.SyncRequest:
		state.logger.Debug("sync@default request", zap.String("operation", msg.SyncOperation()))
		state.inFlight++
		state.call(ctx, msg)
	case syncResult:
		state.inFlight--
		if msg.err != nil {
			state.logger.Error("sync@default call failed", zap.String("operation", msg.operation), zap.Error(msg.err))
		} else {
			state.logger.Info("sync@default call completed", zap.String("operation", msg.operation), zap.String("response", msg.response))
		}
		state.eventStream.Publish(domain.SyncCompletedEvent{
			Operation: msg.operation,
			Response:  msg.response,
			Error:     msg.err,
		})
	default:
		state.logger.Debug("sync@default: unhandled", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

// DisabledReceive is used when no base url is configured.
func (state *SyncActor) DisabledReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_SYNC,
			Healthy: true,
			State:   "disabled",
		})
	case domain.SyncRequest:
		state.logger.Info("sync@disabled skipped", zap.String("operation", msg.SyncOperation()))
	}
}

func (state *SyncActor) call(ctx actor.Context, req domain.SyncRequest) {
	operation := req.SyncOperation()
	timeout := state.config.Sync.Timeout
	client := state.client

	actorutil.NewBackgroundTask(ctx, func() (*syncResult, error) {
		callCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		response, err := doSync(callCtx, client, req)
		if err != nil {
			return nil, err
		}
		return &syncResult{operation: operation, response: response}, nil
	}).WithTimeout(timeout + time.Second).Recover(func(err error) syncResult {
		return syncResult{operation: operation, err: err}
	}).PipeTo(ctx.Self())
}

func doSync(ctx context.Context, client *caecapi.Client, req domain.SyncRequest) (string, error) {
	switch msg := req.(type) {
	case domain.SyncIrrigationStatusRequest:
		resp, err := client.UpdateIrrigation(ctx, msg.Active, msg.Timestamp)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: %s", resp.Status, resp.Message), nil
	case domain.SyncIrrigationConfigRequest:
		resp, err := client.UpdateIrrigationConfig(ctx, caecapi.IrrigationConfig{
			SavingPower:      msg.Settings.SavingPower,
			SavingDuration:   msg.Settings.SavingDurationMinutes,
			AbundantDuration: msg.Settings.AbundantDurationMinutes,
		}, msg.Timestamp)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: %s", resp.Status, resp.Message), nil
	case domain.FetchSystemDataRequest:
		data, err := client.FetchSystemData(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%+v", *data), nil
	}
	return "", fmt.Errorf("unsupported sync request %T", req)
}
