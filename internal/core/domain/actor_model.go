package domain

import "time"

const (
	ACTOR_ID_MASTER       = "master"
	ACTOR_ID_SIMULATION   = "simulation"
	ACTOR_ID_MQTT         = "mqtt"
	ACTOR_ID_SYNC         = "sync"
	ACTOR_ID_HA_DISCOVERY = "hadiscovery"
)

type PublishMessageRequest struct {
	ActorRequestMixIn
	Topic   string
	Payload string
	Retain  bool
}

type PublishMessageResponse struct {
	ActorResponseMixIn
}

type PublishSensorUpdateRequest struct {
	ActorRequestMixIn
	Retain bool
	Event  SensorUpdateEvent
}

type PublishSensorUpdateResponse struct {
	ActorResponseMixIn
}

type PublishDiscoveryRequest struct {
	ActorRequestMixIn
	Sensors      []GenericSensor
	Switches     []GenericSwitch
	InputNumbers []GenericInputNumber
}

type PublishDiscoveryResponse struct {
	ActorResponseMixIn
}

type ActorHealthRequest struct {
	ActorRequestMixIn
}

type ActorHealthResponse struct {
	ActorResponseMixIn
	Id      string
	Healthy bool
	State   string
}

// Sync stub operations. They never get a response, the outcome is published
// as a SyncCompletedEvent.

const (
	SYNC_OP_UPDATE_IRRIGATION = "update_irrigation"
	SYNC_OP_UPDATE_CONFIG     = "update_irrigation_config"
	SYNC_OP_FETCH_SYSTEM_DATA = "fetch_system_data"
)

type SyncRequest interface {
	SyncOperation() string
}

type SyncIrrigationStatusRequest struct {
	Active    bool
	Timestamp time.Time
}

func (SyncIrrigationStatusRequest) SyncOperation() string {
	return SYNC_OP_UPDATE_IRRIGATION
}

type SyncIrrigationConfigRequest struct {
	Settings  IrrigationSettings
	Timestamp time.Time
}

func (SyncIrrigationConfigRequest) SyncOperation() string {
	return SYNC_OP_UPDATE_CONFIG
}

type FetchSystemDataRequest struct {
}

func (FetchSystemDataRequest) SyncOperation() string {
	return SYNC_OP_FETCH_SYSTEM_DATA
}

var (
	_ SyncRequest = SyncIrrigationStatusRequest{}
	_ SyncRequest = SyncIrrigationConfigRequest{}
	_ SyncRequest = FetchSystemDataRequest{}
)
