package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/caec/caecdash/internal/core/domain"
	"github.com/caec/caecdash/internal/core/port"

	"github.com/reugn/go-quartz/job"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/zap"
)

const (
	UPDATE_AGE_REFRESH_INTERVAL = time.Minute
	UPDATE_AGE_MAX_MINUTES      = 5
	updateAgeJobName            = "update-age-refresher"
)

// UpdateAgeRefresher holds the "last update" label shown under every legacy
// card and re-rolls it on a quartz schedule.
type UpdateAgeRefresher struct {
	mu      sync.RWMutex
	minutes map[domain.ChannelId]int
	rnd     port.RandomSource
	sched   quartz.Scheduler
	logger  *zap.Logger
}

func NewUpdateAgeRefresher(rnd port.RandomSource, logger *zap.Logger) *UpdateAgeRefresher {
	r := &UpdateAgeRefresher{
		minutes: make(map[domain.ChannelId]int),
		rnd:     rnd,
		logger:  logger.With(zap.String("service", "update_age")),
	}
	r.Refresh()
	return r
}

// Refresh assigns every channel a random age between 1 and 5 minutes.
func (r *UpdateAgeRefresher) Refresh() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range domain.AllChannels() {
		r.minutes[id] = int(r.rnd.Float64()*UPDATE_AGE_MAX_MINUTES) + 1
	}
}

func (r *UpdateAgeRefresher) Label(id domain.ChannelId) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fmt.Sprintf("Hace %d min", r.minutes[id])
}

func (r *UpdateAgeRefresher) Labels() map[domain.ChannelId]string {
	labels := make(map[domain.ChannelId]string)
	for _, id := range domain.AllChannels() {
		labels[id] = r.Label(id)
	}
	return labels
}

// Start schedules Refresh every interval until ctx is done or Stop is called.
func (r *UpdateAgeRefresher) Start(ctx context.Context, interval time.Duration) error {
	sched := quartz.NewStdScheduler()
	sched.Start(ctx)

	refreshJob := job.NewFunctionJob(func(_ context.Context) (int, error) {
		r.Refresh()
		return len(domain.AllChannels()), nil
	})
	detail := quartz.NewJobDetail(refreshJob, quartz.NewJobKey(updateAgeJobName))
	if err := sched.ScheduleJob(detail, quartz.NewSimpleTrigger(interval)); err != nil {
		sched.Stop()
		return fmt.Errorf("schedule update age job: %w", err)
	}
	r.sched = sched
	r.logger.Debug("update age refresher started", zap.Duration("interval", interval))
	return nil
}

func (r *UpdateAgeRefresher) Stop() {
	if r.sched == nil {
		return
	}
	r.sched.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	r.sched.Wait(ctx)
	r.sched = nil
}
