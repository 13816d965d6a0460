package view

import (
	"time"

	"github.com/caec/caecdash/internal/core/domain"
)

const (
	LIVE_TYPE_SNAPSHOT  = "snapshot"
	LIVE_TYPE_COUNTDOWN = "countdown"
)

// LiveUpdate is pushed to the page on every snapshot change.
type LiveUpdate struct {
	Type      string       `json:"type"`
	Cards     []Card       `json:"cards"`
	Overview  OverviewView `json:"overview"`
	Legacy    *LegacyView  `json:"legacy,omitempty"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func NewLiveUpdate(snapshot domain.Snapshot, variant Variant, ages map[domain.ChannelId]string) LiveUpdate {
	u := LiveUpdate{
		Type:      LIVE_TYPE_SNAPSHOT,
		Cards:     Cards(snapshot, variant),
		Overview:  Overview(snapshot, variant),
		UpdatedAt: snapshot.UpdatedAt,
	}
	if variant.IsLegacy() {
		l := Legacy(snapshot, ages)
		u.Legacy = &l
	}
	return u
}
