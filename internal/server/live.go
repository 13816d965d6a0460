package server

import (
	"context"
	"sync"
	"time"

	"github.com/caec/caecdash/internal/core/domain"
	"github.com/caec/caecdash/internal/core/view"
	"github.com/caec/caecdash/internal/countdown"

	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	LIVE_WRITE_TIMEOUT = 10 * time.Second
	LIVE_QUEUE_SIZE    = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type liveCountdown struct {
	Type string `json:"type"`
	countdown.Value
}

type liveClient struct {
	id     uuid.UUID
	conn   *websocket.Conn
	out    chan any
	ctx    context.Context
	cancel context.CancelFunc
}

// push never blocks the publisher; a full queue drops the message.
func (c *liveClient) push(msg any) bool {
	select {
	case <-c.ctx.Done():
		return false
	default:
	}
	select {
	case c.out <- msg:
		return true
	case <-c.ctx.Done():
		return false
	default:
		return false
	}
}

func (c *liveClient) writeLoop(logger *zap.Logger) {
	for {
		select {
		case <-c.ctx.Done():
			return
		case msg := <-c.out:
			c.conn.SetWriteDeadline(time.Now().Add(LIVE_WRITE_TIMEOUT))
			if err := c.conn.WriteJSON(msg); err != nil {
				logger.Debug("live write failed", zap.Stringer("client", c.id), zap.Error(err))
				c.cancel()
				c.conn.Close()
				return
			}
		}
	}
}

// LiveHub keeps the open live connections. Each one gets the current
// snapshot, every new snapshot and its own harvest countdown.
type LiveHub struct {
	server  *Server
	mu      sync.RWMutex
	clients map[uuid.UUID]*liveClient
}

func NewLiveHub(server *Server) *LiveHub {
	return &LiveHub{
		server:  server,
		clients: make(map[uuid.UUID]*liveClient),
	}
}

func (h *LiveHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *LiveHub) Close() {
	h.mu.Lock()
	clients := make([]*liveClient, 0, len(h.clients))
	for _, client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	for _, client := range clients {
		client.cancel()
		client.conn.Close()
	}
}

func (h *LiveHub) register(client *liveClient) {
	h.mu.Lock()
	h.clients[client.id] = client
	h.mu.Unlock()
	h.server.metrics.LiveConnected()
}

func (h *LiveHub) unregister(client *liveClient) {
	h.mu.Lock()
	delete(h.clients, client.id)
	h.mu.Unlock()
	h.server.metrics.LiveDisconnected()
}

// Serve runs one connection until the peer goes away.
func (h *LiveHub) Serve(conn *websocket.Conn) {
	s := h.server
	ctx, cancel := context.WithCancel(context.Background())
	client := &liveClient{
		id:     uuid.New(),
		conn:   conn,
		out:    make(chan any, LIVE_QUEUE_SIZE),
		ctx:    ctx,
		cancel: cancel,
	}
	logger := s.logger.With(zap.Stringer("client", client.id))

	h.register(client)
	logger.Debug("live client connected", zap.Int("clients", h.Count()))

	go client.writeLoop(logger)

	var sub *eventstream.Subscription
	if s.eventStream != nil {
		sub = s.eventStream.Subscribe(func(evt any) {
			if ev, ok := evt.(domain.SnapshotUpdatedEvent); ok {
				client.push(view.NewLiveUpdate(ev.Snapshot, s.variant, s.ages()))
			}
		})
	}

	if snapshot, err := s.snapshot(); err != nil {
		logger.Warn("no initial snapshot", zap.Error(err))
	} else {
		client.push(view.NewLiveUpdate(snapshot, s.variant, s.ages()))
	}

	cd := countdown.New(s.harvest, countdown.WithClock(s.clock))
	go cd.Run(ctx, func(v countdown.Value) {
		client.push(liveCountdown{Type: view.LIVE_TYPE_COUNTDOWN, Value: v})
	})

	// the page never sends anything, reading only detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	if sub != nil {
		s.eventStream.Unsubscribe(sub)
	}
	cd.Stop()
	cancel()
	conn.Close()
	h.unregister(client)
	logger.Debug("live client disconnected", zap.Int("clients", h.Count()))
}

func (s *Server) LiveHandler(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return nil
	}
	s.hub.Serve(conn)
	return nil
}
