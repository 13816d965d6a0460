package actorutil

import (
	"github.com/caec/caecdash/internal/core/domain"

	"github.com/asynkron/protoactor-go/actor"
)

// Reply answers req at its reply address, or at the sender.
func Reply(ctx actor.Context, req domain.ActorRequest, resp domain.ActorResponse) {
	if pid := req.ReplyTo(); pid != nil {
		ctx.Send(pid, resp)
		return
	}
	ctx.Respond(resp)
}

// ReplyTarget keeps the destination of a reply that is sent later, once a
// background task completes.
func ReplyTarget(ctx actor.Context, req domain.ActorRequest) *actor.PID {
	if pid := req.ReplyTo(); pid != nil {
		return pid
	}
	return ctx.Sender()
}
