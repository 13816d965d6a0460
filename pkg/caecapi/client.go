package caecapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	BREAKER_NAME              = "caec-sync"
	BREAKER_FAILURE_THRESHOLD = 3
	BREAKER_OPEN_TIMEOUT      = 30 * time.Second
)

// Client performs the dashboard sync calls. Calls are never retried: an open
// breaker fails fast with gobreaker.ErrOpenState.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.http = client
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    BREAKER_NAME,
		Timeout: BREAKER_OPEN_TIMEOUT,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= BREAKER_FAILURE_THRESHOLD
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("caecapi: breaker state change", zap.String("breaker", name),
				zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})
	return c
}

func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}

// UpdateIrrigation notifies the irrigation on/off state.
func (c *Client) UpdateIrrigation(ctx context.Context, active bool, at time.Time) (*StatusResponse, error) {
	body := UpdateSystemRequest{
		Irrigation: &IrrigationStatus{
			Status:    active,
			Timestamp: FormatTimestamp(at),
		},
	}
	var resp StatusResponse
	if err := c.do(ctx, http.MethodPost, PATH_UPDATE_SYSTEM, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateIrrigationConfig notifies the irrigation tuning.
func (c *Client) UpdateIrrigationConfig(ctx context.Context, config IrrigationConfig, at time.Time) (*StatusResponse, error) {
	body := UpdateIrrigationConfigRequest{
		Config:    config,
		Timestamp: FormatTimestamp(at),
	}
	var resp StatusResponse
	if err := c.do(ctx, http.MethodPost, PATH_UPDATE_IRRIGATION_CONFIG, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) FetchSystemData(ctx context.Context) (*SystemData, error) {
	var resp SystemData
	if err := c.do(ctx, http.MethodGet, PATH_SYSTEM_DATA, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.roundTrip(ctx, method, path, body, out)
	})
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %s", res.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
