package view

import (
	"fmt"

	"github.com/caec/caecdash/internal/core/domain"
)

type VisualizationKind string

const (
	VIZ_THERMOMETER VisualizationKind = "thermometer"
	VIZ_TANK        VisualizationKind = "tank"
	VIZ_PH_SCALE    VisualizationKind = "ph_scale"
	VIZ_BEAKER      VisualizationKind = "beaker"
	VIZ_GAUGE       VisualizationKind = "gauge"
)

// VisualizationFor picks the modal visualization by channel identity.
func VisualizationFor(id domain.ChannelId) VisualizationKind {
	switch id {
	case domain.CHANNEL_TEMPERATURE:
		return VIZ_THERMOMETER
	case domain.CHANNEL_WATER:
		return VIZ_TANK
	case domain.CHANNEL_PH:
		return VIZ_PH_SCALE
	case domain.CHANNEL_NUTRIENT:
		return VIZ_BEAKER
	default:
		return VIZ_GAUGE
	}
}

// Animated visualizations are rendered at Start and moved to Target by the page script.
type ThermometerView struct {
	Value  string
	Start  Fill
	Target Fill
}

type TankView struct {
	Value  string
	Start  Fill
	Target Fill
}

type PHScaleView struct {
	Value      string
	MarkerLeft string
}

type BeakerView struct {
	Value string
}

type GaugeView struct {
	Value         string
	Unit          string
	Icon          string
	Color         string
	Percent       float64
	Circumference string
	DashOffset    string
	Irrigation    *IrrigationForm
}

type ModalView struct {
	Channel     domain.ChannelId
	Title       string
	Icon        string
	Color       string
	Kind        VisualizationKind
	Thermometer *ThermometerView
	Tank        *TankView
	PHScale     *PHScaleView
	Beaker      *BeakerView
	Gauge       *GaugeView
	Details     []domain.DetailRow
}

// Modal builds the detail view of a channel. Exactly one visualization is set.
func Modal(id domain.ChannelId, snapshot domain.Snapshot) (ModalView, error) {
	channel, ok := snapshot.Channel(id)
	if !ok {
		return ModalView{}, fmt.Errorf("unknown channel: %s", id)
	}
	cfg, ok := domain.SensorConfigFor(id)
	if !ok {
		return ModalView{}, fmt.Errorf("channel without configuration: %s", id)
	}

	m := ModalView{
		Channel: id,
		Title:   cfg.Title,
		Icon:    cfg.Icon,
		Color:   cfg.Color,
		Kind:    VisualizationFor(id),
		Details: cfg.Details,
	}

	switch m.Kind {
	case VIZ_THERMOMETER:
		m.Thermometer = &ThermometerView{
			Value:  RoundedText(channel.Value),
			Start:  Fill{Y: THERMOMETER_BASE_Y},
			Target: ThermometerFill(channel.Value),
		}
	case VIZ_TANK:
		m.Tank = &TankView{
			Value:  RoundedText(channel.Value),
			Start:  Fill{Y: TANK_BASE_Y},
			Target: TankFill(channel.Value),
		}
	case VIZ_PH_SCALE:
		m.PHScale = &PHScaleView{
			Value:      RoundedText(channel.Value),
			MarkerLeft: FormatNumber(PHMarkerLeft(channel.Value)) + "%",
		}
	case VIZ_BEAKER:
		m.Beaker = &BeakerView{Value: RoundedText(channel.Value)}
	case VIZ_GAUGE:
		pct := GaugePercent(id, channel.Value, channel.Status)
		g := &GaugeView{
			Value:         FormatValue(channel, VARIANT_EXTENDED),
			Unit:          channel.Unit,
			Icon:          cfg.Icon,
			Color:         cfg.Color,
			Percent:       pct,
			Circumference: FormatNumber(GAUGE_CIRCUMFERENCE),
			DashOffset:    FormatNumber(GaugeDashOffset(pct)),
		}
		if id == domain.CHANNEL_IRRIGATION {
			form := NewIrrigationForm(channel.Status, snapshot.Settings)
			g.Irrigation = &form
		}
		m.Gauge = g
	}
	return m, nil
}
