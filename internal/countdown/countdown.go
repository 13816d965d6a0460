package countdown

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	READY_MESSAGE  = "¡Cosecha Lista!"
	DEFAULT_TARGET = "2025-12-20T18:00:00"
	TARGET_LAYOUT  = "2006-01-02T15:04:05"
	TICK_INTERVAL  = time.Second
)

// Value is one countdown display: zero padded fields, or the terminal message.
type Value struct {
	Days    string `json:"days"`
	Hours   string `json:"hours"`
	Minutes string `json:"minutes"`
	Seconds string `json:"seconds"`
	Ready   bool   `json:"ready"`
	Message string `json:"message,omitempty"`
}

type Sink func(Value)

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

type systemClock struct{}

type systemTicker struct {
	t *time.Ticker
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{t: time.NewTicker(d)}
}

func (s systemTicker) C() <-chan time.Time {
	return s.t.C
}

func (s systemTicker) Stop() {
	s.t.Stop()
}

func SystemClock() Clock {
	return systemClock{}
}

// ParseTarget reads a local wall-clock timestamp like 2025-12-20T18:00:00.
func ParseTarget(value string) (time.Time, error) {
	if value == "" {
		value = DEFAULT_TARGET
	}
	t, err := time.ParseInLocation(TARGET_LAYOUT, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid harvest date %q: %w", value, err)
	}
	return t, nil
}

// DateLabel formats the target as shown under the countdown.
func DateLabel(target time.Time) string {
	return "Fecha: " + target.Format("02/01/2006")
}

// Remaining computes the display value at now. A negative distance is terminal.
func Remaining(target, now time.Time) Value {
	distance := target.Sub(now)
	if distance < 0 {
		return Value{Ready: true, Message: READY_MESSAGE}
	}
	total := int64(distance / time.Second)
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return Value{
		Days:    pad(days),
		Hours:   pad(hours),
		Minutes: pad(minutes),
		Seconds: pad(seconds),
	}
}

func pad(v int64) string {
	return fmt.Sprintf("%02d", v)
}

// Countdown emits the remaining time once per interval until the target is
// reached, then emits the terminal value once and stops its ticker.
type Countdown struct {
	target   time.Time
	clock    Clock
	interval time.Duration

	stopOnce sync.Once
	stop     chan struct{}

	mu       sync.Mutex
	finished bool
}

type Option func(*Countdown)

func WithClock(clock Clock) Option {
	return func(c *Countdown) {
		c.clock = clock
	}
}

func WithInterval(interval time.Duration) Option {
	return func(c *Countdown) {
		c.interval = interval
	}
}

func New(target time.Time, opts ...Option) *Countdown {
	c := &Countdown{
		target:   target,
		clock:    SystemClock(),
		interval: TICK_INTERVAL,
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Countdown) Target() time.Time {
	return c.target
}

func (c *Countdown) Remaining(now time.Time) Value {
	return Remaining(c.target, now)
}

// Run blocks until the countdown finishes, ctx is done or Stop is called.
// The current value is emitted immediately.
func (c *Countdown) Run(ctx context.Context, sink Sink) {
	if c.Finished() {
		return
	}

	ticker := c.clock.NewTicker(c.interval)
	defer ticker.Stop()

	if c.emit(c.clock.Now(), sink) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stop:
			return
		case now := <-ticker.C():
			if c.emit(now, sink) {
				return
			}
		}
	}
}

// Stop tears the countdown down early. Safe to call more than once.
func (c *Countdown) Stop() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
}

func (c *Countdown) Finished() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finished
}

func (c *Countdown) emit(now time.Time, sink Sink) bool {
	c.mu.Lock()
	if c.finished {
		c.mu.Unlock()
		return true
	}
	v := c.Remaining(now)
	if v.Ready {
		c.finished = true
	}
	c.mu.Unlock()

	sink(v)
	return v.Ready
}
