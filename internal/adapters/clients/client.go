package clients

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quoteboard/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quoteboard/internal/platform/config"
	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
	"github.com/jsamuelsen/quoteboard/internal/platform/metrics"
)

const (
	scopeName = "github.com/jsamuelsen/quoteboard/internal/adapters/clients"

	// defaultTimeout applies when Config.Timeout is unset.
	defaultTimeout = 30 * time.Second
)

// Outcome labels recorded on every call.
const (
	outcomeOK          = "ok"
	outcomeRejected    = "rejected"
	outcomeFailed      = "failed"
	outcomeUnreachable = "unreachable"
	outcomeCircuitOpen = "circuit_open"
)

// Config configures a Client.
type Config struct {
	// BaseURL is prefixed to every request path.
	BaseURL string

	// ServiceName names the downstream in logs, spans and metrics.
	ServiceName string

	// Timeout bounds a single attempt. Retries and backoff come on top.
	Timeout time.Duration

	Retry     config.RetryConfig
	Circuit   config.CircuitBreakerConfig
	Transport config.TransportConfig

	// Metrics receives breaker state changes. Optional.
	Metrics *metrics.Recorder

	// AuthFunc decorates each attempt, retries included.
	AuthFunc func(*http.Request)

	Logger *slog.Logger
}

// Client calls one downstream API. A call first passes the circuit breaker,
// then makes up to Retry.MaxAttempts attempts. Transport errors, 429 and 5xx
// are retried; the last such response is handed back to the caller so the
// downstream's own error body can be inspected.
type Client struct {
	name    string
	baseURL string
	http    *http.Client
	retry   config.RetryConfig
	auth    func(*http.Request)
	breaker *CircuitBreaker
	logger  *slog.Logger

	tracer   trace.Tracer
	latency  metric.Float64Histogram
	outcomes metric.Int64Counter

	// wait blocks between attempts. Replaced in tests.
	wait func(ctx context.Context, d time.Duration) error
}

// New builds a client from cfg. The config is copied.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("downstream", cfg.ServiceName))

	meter := otel.Meter(scopeName)

	latency, err := meter.Float64Histogram("http.client.request.duration",
		metric.WithDescription("Wall time of downstream calls including retries"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating latency histogram: %w", err)
	}

	outcomes, err := meter.Int64Counter("http.client.request.total",
		metric.WithDescription("Downstream calls by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating outcome counter: %w", err)
	}

	c := &Client{
		name:    cfg.ServiceName,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: newTransport(cfg.Transport),
		},
		retry:    cfg.Retry,
		auth:     cfg.AuthFunc,
		logger:   logger,
		tracer:   otel.Tracer(scopeName),
		latency:  latency,
		outcomes: outcomes,
		wait:     sleepCtx,
	}

	c.breaker = NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   cfg.Circuit.MaxFailures,
		Timeout:       cfg.Circuit.Timeout,
		HalfOpenLimit: cfg.Circuit.HalfOpenLimit,
	})

	recorder := cfg.Metrics
	recorder.SetCircuitState(c.name, int(StateClosed))
	c.breaker.OnStateChange(func(from, to State) {
		logger.Warn("circuit breaker state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
		recorder.SetCircuitState(c.name, int(to))
	})

	return c, nil
}

// Do sends req. A non-nil response may carry any status; callers map
// non-2xx themselves. The error is non-nil only when no response arrived.
//
// Bodies are replayed on retry through req.GetBody, which http.NewRequest
// sets for bytes, strings and buffers.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger := logging.FromContextOr(ctx, c.logger).With(
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	if !c.breaker.Allow() {
		c.observe(ctx, req.Method, 0, start, outcomeCircuitOpen)
		logger.Warn("downstream call short-circuited")

		return nil, ErrCircuitOpen
	}

	ctx, span := c.tracer.Start(ctx, req.Method+" "+c.name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.path", req.URL.Path),
			attribute.String("peer.service", c.name),
		),
	)
	defer span.End()

	c.propagate(ctx, req)

	resp, attempts, err := c.send(ctx, req, logger)
	span.SetAttributes(attribute.Int("http.request.resend_count", attempts-1))

	if err != nil {
		c.breaker.RecordFailure()
		span.SetStatus(codes.Error, err.Error())
		c.observe(ctx, req.Method, 0, start, outcomeUnreachable)
		logger.Error("downstream call failed",
			slog.Int("attempts", attempts),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)

		return nil, err
	}

	outcome := outcomeOK

	switch {
	case retryableStatus(resp.StatusCode):
		c.breaker.RecordFailure()

		outcome = outcomeFailed
	case resp.StatusCode >= http.StatusBadRequest:
		c.breaker.RecordSuccess()

		outcome = outcomeRejected
	default:
		c.breaker.RecordSuccess()
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if outcome != outcomeOK {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}

	c.observe(ctx, req.Method, resp.StatusCode, start, outcome)
	logger.Debug("downstream call finished",
		slog.Int("status", resp.StatusCode),
		slog.Int("attempts", attempts),
		slog.Duration("duration", time.Since(start)),
	)

	return resp, nil
}

// Get sends a GET for path.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	return c.Do(ctx, req)
}

// Post sends body as JSON to path.
func (c *Client) Post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.Do(ctx, req)
}

// ServiceName returns the downstream name.
func (c *Client) ServiceName() string {
	return c.name
}

// CircuitState reports the breaker state.
func (c *Client) CircuitState() State {
	return c.breaker.State()
}

// propagate copies request and correlation IDs and the trace context onto
// the outbound request.
func (c *Client) propagate(ctx context.Context, req *http.Request) {
	if id := middleware.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderRequestID, id)
	}

	if id := middleware.CorrelationIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderCorrelationID, id)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

func (c *Client) observe(ctx context.Context, method string, status int, start time.Time, outcome string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.request.method", method),
		attribute.String("peer.service", c.name),
		attribute.String("outcome", outcome),
	}

	if status > 0 {
		attrs = append(attrs, attribute.Int("http.response.status_code", status))
	}

	set := metric.WithAttributes(attrs...)
	c.latency.Record(ctx, time.Since(start).Seconds(), set)
	c.outcomes.Add(ctx, 1, set)
}

func newTransport(tc config.TransportConfig) *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        orDefault(tc.MaxIdleConns, config.DefaultTransportMaxIdleConns),
		MaxIdleConnsPerHost: orDefault(tc.MaxIdleConnsPerHost, config.DefaultTransportMaxIdleConnsPerHost),
		IdleConnTimeout:     orDefault(tc.IdleConnTimeout, config.DefaultTransportIdleConnTimeout),
	}
}

func orDefault[T int | time.Duration](v, def T) T {
	if v <= 0 {
		return def
	}

	return v
}
