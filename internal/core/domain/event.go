package domain

import "fmt"

type SensorUpdateEventMixIn struct {
	Id string
}

type SensorUpdateEvent interface {
	SensorUpdateEvent() string
	SensorId() string
}

func (e SensorUpdateEventMixIn) SensorUpdateEvent() string {
	return fmt.Sprintf("%T", e)
}

func (e SensorUpdateEventMixIn) SensorId() string {
	return e.Id
}

type FloatSensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value    float64
	Decimals uint
}

type SwitchSensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value bool
}

type TextSensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value string
}

type BridgeStateUpdateEvent struct {
	SensorUpdateEventMixIn
	Value bool
}

type InputNumberSensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value    float64
	Decimals uint
}

const (
	SNAPSHOT_CAUSE_TICK    = "tick"
	SNAPSHOT_CAUSE_COMMAND = "command"
	SNAPSHOT_CAUSE_STARTUP = "startup"
)

// SnapshotUpdatedEvent is published after every mutation of the simulation.
type SnapshotUpdatedEvent struct {
	Snapshot Snapshot
	Cause    string
}

// SyncCompletedEvent reports the outcome of a fire-and-forget sync call.
type SyncCompletedEvent struct {
	Operation string
	Response  string
	Error     error
}
