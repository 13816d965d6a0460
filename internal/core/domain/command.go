package domain

import "fmt"

// SimulationRequest

type SimulationRequest interface {
	ActorRequest
	SimulationCommand() string
}

type SimulationRequestMixIn struct {
	ActorRequestMixIn
}

func (r SimulationRequestMixIn) SimulationCommand() string {
	return fmt.Sprintf("%T", r)
}

// SimulationResponse carries the state after the command was applied.
type SimulationResponse struct {
	ActorResponseMixIn
	Snapshot Snapshot
}

// Simulation commands

type GetSnapshotRequest struct {
	SimulationRequestMixIn
}

type TickRequest struct {
	SimulationRequestMixIn
}

type SetIrrigationRequest struct {
	SimulationRequestMixIn
	Active bool
}

type SetLightRequest struct {
	SimulationRequestMixIn
	Active bool
}

type SetIrrigationSettingsRequest struct {
	SimulationRequestMixIn
	Settings IrrigationSettings
}

type AddNutrientsRequest struct {
	SimulationRequestMixIn
}

// ensure interface compliance
var (
	_ SimulationRequest = GetSnapshotRequest{}
	_ SimulationRequest = TickRequest{}
	_ SimulationRequest = SetIrrigationRequest{}
	_ SimulationRequest = SetLightRequest{}
	_ SimulationRequest = SetIrrigationSettingsRequest{}
	_ SimulationRequest = AddNutrientsRequest{}
)
