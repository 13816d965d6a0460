package actorutil

import (
	"github.com/asynkron/protoactor-go/actor"
)

// Stash keeps messages an actor cannot handle in its current behavior, with
// their original sender, so RequestFuture callers still get the answer.
type Stash struct {
	pending []stashed
}

type stashed struct {
	msg    any
	sender *actor.PID
}

func (s *Stash) Stash(ctx actor.Context, msg any) {
	s.pending = append(s.pending, stashed{msg: msg, sender: ctx.Sender()})
}

func (s *Stash) Len() int {
	return len(s.pending)
}

func (s *Stash) UnstashAll(ctx actor.Context) {
	for _, m := range s.pending {
		ctx.RequestWithCustomSender(ctx.Self(), m.msg, m.sender)
	}
	s.pending = nil
}

// UnstashOldest replays one message, used when only one in-flight
// operation is allowed.
func (s *Stash) UnstashOldest(ctx actor.Context) {
	if len(s.pending) == 0 {
		return
	}
	m := s.pending[0]
	s.pending = s.pending[1:]
	ctx.RequestWithCustomSender(ctx.Self(), m.msg, m.sender)
}
