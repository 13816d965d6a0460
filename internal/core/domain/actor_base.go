package domain

import (
	"github.com/asynkron/protoactor-go/actor"
)

// ActorRequestMixIn lets a request name the actor that gets the reply. When
// empty the reply goes to the sender.
type ActorRequestMixIn struct {
	ReplyToRef *actor.PID
}

type ActorRequest interface {
	ReplyTo() *actor.PID
}

func (r ActorRequestMixIn) ReplyTo() *actor.PID {
	return r.ReplyToRef
}

type ActorResponseMixIn struct {
	ResponseError error
}

func (r ActorResponseMixIn) GetResponseError() error {
	return r.ResponseError
}

func (r ActorResponseMixIn) HasResponseError() bool {
	return r.ResponseError != nil
}

type ActorResponse interface {
	GetResponseError() error
	HasResponseError() bool
}

func ResponseWithError(err error) ActorResponseMixIn {
	return ActorResponseMixIn{ResponseError: err}
}
