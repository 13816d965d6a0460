package countdown

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTicker struct {
	c       chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (t *fakeTicker) C() <-chan time.Time {
	return t.c
}

func (t *fakeTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *fakeTicker) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

type fakeClock struct {
	now    time.Time
	ticker *fakeTicker
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) NewTicker(_ time.Duration) Ticker {
	return c.ticker
}

type recorder struct {
	mu     sync.Mutex
	values []Value
}

func (r *recorder) sink(v Value) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) all() []Value {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Value{}, r.values...)
}

func TestRemaining(t *testing.T) {

	assert := assert.New(t)

	target := time.Date(2025, 12, 20, 18, 0, 0, 0, time.UTC)
	now := target.Add(-(3*24*time.Hour + 4*time.Hour + 5*time.Minute + 6*time.Second + 500*time.Millisecond))

	v := Remaining(target, now)
	assert.Equal(Value{Days: "03", Hours: "04", Minutes: "05", Seconds: "06"}, v)

	v = Remaining(target, target)
	assert.False(v.Ready)
	assert.Equal("00", v.Seconds)

	v = Remaining(target, target.Add(time.Millisecond))
	assert.True(v.Ready)
	assert.Equal(READY_MESSAGE, v.Message)

	v = Remaining(target, target.Add(-120*24*time.Hour))
	assert.Equal("120", v.Days)
}

func TestParseTarget(t *testing.T) {

	assert := assert.New(t)

	target, err := ParseTarget("")
	assert.NoError(err)
	assert.Equal(2025, target.Year())
	assert.Equal(time.December, target.Month())
	assert.Equal(18, target.Hour())
	assert.Equal("Fecha: 20/12/2025", DateLabel(target))

	_, err = ParseTarget("20/12/2025")
	assert.Error(err)
}

func TestRunReachesTargetOnce(t *testing.T) {

	require := require.New(t)

	target := time.Date(2025, 12, 20, 18, 0, 0, 0, time.UTC)
	ticker := &fakeTicker{c: make(chan time.Time)}
	clock := &fakeClock{now: target.Add(-2 * time.Second), ticker: ticker}
	c := New(target, WithClock(clock))
	rec := &recorder{}

	done := make(chan struct{})
	go func() {
		c.Run(context.Background(), rec.sink)
		close(done)
	}()

	ticker.c <- target.Add(-time.Second)
	ticker.c <- target.Add(time.Second)

	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow("countdown did not stop after reaching the target")
	}

	values := rec.all()
	require.Len(values, 3)
	require.Equal("02", values[0].Seconds)
	require.Equal("01", values[1].Seconds)
	require.True(values[2].Ready)
	require.True(ticker.Stopped())
	require.True(c.Finished())

	// no further emissions after the terminal value
	c.Run(context.Background(), rec.sink)
	require.Len(rec.all(), 3)
}

func TestRunAlreadyPast(t *testing.T) {
	target := time.Date(2025, 12, 20, 18, 0, 0, 0, time.UTC)
	ticker := &fakeTicker{c: make(chan time.Time)}
	c := New(target, WithClock(&fakeClock{now: target.Add(time.Hour), ticker: ticker}))
	rec := &recorder{}

	c.Run(context.Background(), rec.sink)

	values := rec.all()
	require.Len(t, values, 1)
	assert.True(t, values[0].Ready)
	assert.True(t, ticker.Stopped())
}

func TestStop(t *testing.T) {

	require := require.New(t)

	target := time.Date(2025, 12, 20, 18, 0, 0, 0, time.UTC)
	ticker := &fakeTicker{c: make(chan time.Time)}
	c := New(target, WithClock(&fakeClock{now: target.Add(-time.Hour), ticker: ticker}))
	rec := &recorder{}

	done := make(chan struct{})
	go func() {
		c.Run(context.Background(), rec.sink)
		close(done)
	}()

	require.Eventually(func() bool { return len(rec.all()) == 1 }, time.Second, 5*time.Millisecond)
	c.Stop()
	c.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow("countdown did not stop")
	}
	require.True(ticker.Stopped())
	require.False(c.Finished())
}

func TestRunContextCancelled(t *testing.T) {
	target := time.Now().Add(time.Hour)
	c := New(target, WithInterval(10*time.Millisecond))
	rec := &recorder{}

	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()
	c.Run(ctx, rec.sink)

	assert.GreaterOrEqual(t, len(rec.all()), 2)
	assert.False(t, c.Finished())
}
