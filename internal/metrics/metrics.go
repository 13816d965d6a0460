package metrics

import (
	"net/http"
	"strconv"

	"github.com/caec/caecdash/internal/core/domain"

	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "caec"

type Metrics struct {
	registry        *prometheus.Registry
	ticksTotal      prometheus.Counter
	snapshotsTotal  *prometheus.CounterVec
	channelValue    *prometheus.GaugeVec
	syncCallsTotal  *prometheus.CounterVec
	liveConnections prometheus.Gauge
	httpRequests    *prometheus.CounterVec

	eventStream *eventstream.EventStream
	sub         *eventstream.Subscription
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulation_ticks_total",
			Help:      "Total simulation ticks applied.",
		}),
		snapshotsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_total",
			Help:      "Snapshots published by cause.",
		}, []string{"cause"}),
		channelValue: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "channel_value",
			Help:      "Current value per sensor channel (switches are 0/1).",
		}, []string{"channel"}),
		syncCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_calls_total",
			Help:      "Sync stub calls by operation and result.",
		}, []string{"operation", "result"}),
		liveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_connections",
			Help:      "Open live websocket connections.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"route", "status"}),
	}

	m.registry.MustRegister(
		m.ticksTotal,
		m.snapshotsTotal,
		m.channelValue,
		m.syncCallsTotal,
		m.liveConnections,
		m.httpRequests,
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Observe subscribes to the event stream until Close is called.
func (m *Metrics) Observe(eventStream *eventstream.EventStream) {
	m.eventStream = eventStream
	m.sub = eventStream.Subscribe(func(evt any) {
		switch ev := evt.(type) {
		case domain.SnapshotUpdatedEvent:
			m.SnapshotPublished(ev)
		case domain.SyncCompletedEvent:
			m.SyncCompleted(ev.Operation, ev.Error)
		}
	})
}

func (m *Metrics) Close() {
	if m.sub != nil {
		m.eventStream.Unsubscribe(m.sub)
		m.sub = nil
	}
}

func (m *Metrics) SnapshotPublished(ev domain.SnapshotUpdatedEvent) {
	if m == nil {
		return
	}
	if ev.Cause == domain.SNAPSHOT_CAUSE_TICK {
		m.ticksTotal.Inc()
	}
	m.snapshotsTotal.WithLabelValues(ev.Cause).Inc()
	for _, id := range domain.AllChannels() {
		ch, _ := ev.Snapshot.Channel(id)
		value := ch.Value
		if id.IsSwitch() {
			value = 0
			if ch.Status {
				value = 1
			}
		}
		m.channelValue.WithLabelValues(string(id)).Set(value)
	}
}

func (m *Metrics) SyncCompleted(operation string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.syncCallsTotal.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) LiveConnected() {
	if m == nil {
		return
	}
	m.liveConnections.Inc()
}

func (m *Metrics) LiveDisconnected() {
	if m == nil {
		return
	}
	m.liveConnections.Dec()
}

// Middleware counts requests by matched route.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			if m != nil {
				m.httpRequests.WithLabelValues(c.Path(), strconv.Itoa(status)).Inc()
			}
			return err
		}
	}
}
