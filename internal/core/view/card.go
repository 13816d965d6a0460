package view

import (
	"fmt"

	"github.com/caec/caecdash/internal/core/domain"
)

type Card struct {
	Id     domain.ChannelId `json:"id"`
	Title  string           `json:"title"`
	Icon   string           `json:"icon"`
	Color  string           `json:"color"`
	Value  string           `json:"value"`
	Unit   string           `json:"unit,omitempty"`
	Label  string           `json:"label,omitempty"`
	Switch bool             `json:"switch"`
	Status bool             `json:"status"`
}

// Cards renders one card per channel, in dashboard order.
func Cards(snapshot domain.Snapshot, variant Variant) []Card {
	cards := make([]Card, 0, len(domain.AllChannels()))
	for _, id := range domain.AllChannels() {
		if card, ok := CardFor(id, snapshot, variant); ok {
			cards = append(cards, card)
		}
	}
	return cards
}

func CardFor(id domain.ChannelId, snapshot domain.Snapshot, variant Variant) (Card, bool) {
	channel, ok := snapshot.Channel(id)
	if !ok {
		return Card{}, false
	}
	cfg, ok := domain.SensorConfigFor(id)
	if !ok {
		return Card{}, false
	}
	return Card{
		Id:     id,
		Title:  cfg.Title,
		Icon:   cfg.Icon,
		Color:  cfg.Color,
		Value:  FormatValue(channel, variant),
		Unit:   channel.Unit,
		Label:  channel.Label,
		Switch: id.IsSwitch(),
		Status: channel.Status,
	}, true
}

// FormatValue rounds readings to integers; switches show their label.
// The legacy layout keeps one decimal for pH.
func FormatValue(channel domain.SensorChannel, variant Variant) string {
	if channel.Id.IsSwitch() {
		return channel.Text
	}
	if channel.Id == domain.CHANNEL_PH && variant.IsLegacy() {
		return fmt.Sprintf("%.1f", channel.Value)
	}
	return RoundedText(channel.Value)
}

func RoundedText(value float64) string {
	return fmt.Sprintf("%d", int(round(value)))
}
