package actorutil

import (
	"errors"
	"testing"
	"time"

	"github.com/asynkron/protoactor-go/actor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taskResult struct {
	value string
}

type pipeActor struct {
	fn      func() (*taskResult, error)
	recover func(error) taskResult
	results chan<- taskResult
}

func (a *pipeActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		task := NewBackgroundTask(ctx, a.fn).WithTimeout(time.Second)
		if a.recover != nil {
			task.Recover(a.recover)
		}
		task.PipeTo(ctx.Self())
	case taskResult:
		a.results <- msg
	}
}

func spawnPipe(t *testing.T, a *pipeActor) <-chan taskResult {
	results := make(chan taskResult, 1)
	a.results = results
	system := actor.NewActorSystem()
	t.Cleanup(system.Shutdown)
	_, err := system.Root.SpawnNamed(actor.PropsFromProducer(func() actor.Actor { return a }), "pipe")
	require.NoError(t, err)
	return results
}

func TestPipeToDeliversAfterReceiveReturns(t *testing.T) {

	release := make(chan struct{})
	results := spawnPipe(t, &pipeActor{
		fn: func() (*taskResult, error) {
			<-release
			return &taskResult{value: "done"}, nil
		},
	})

	// Started has been handled long before the task completes
	time.Sleep(50 * time.Millisecond)
	close(release)

	select {
	case res := <-results:
		assert.Equal(t, "done", res.value)
	case <-time.After(2 * time.Second):
		t.Fatal("task result not delivered")
	}
}

func TestPipeToDeliversRecoveredValue(t *testing.T) {

	results := spawnPipe(t, &pipeActor{
		fn: func() (*taskResult, error) {
			return nil, errors.New("unreachable")
		},
		recover: func(err error) taskResult {
			return taskResult{value: "recovered: " + err.Error()}
		},
	})

	select {
	case res := <-results:
		assert.Equal(t, "recovered: unreachable", res.value)
	case <-time.After(2 * time.Second):
		t.Fatal("recovered result not delivered")
	}
}

func TestPipeToDropsUnrecoveredError(t *testing.T) {

	results := spawnPipe(t, &pipeActor{
		fn: func() (*taskResult, error) {
			return nil, errors.New("unreachable")
		},
	})

	select {
	case res := <-results:
		t.Fatalf("unexpected result %v", res)
	case <-time.After(100 * time.Millisecond):
	}
}
