package telemetry

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/jsamuelsen/quoteboard/telemetry"

	// HeaderTraceID echoes the server span's trace ID to the caller.
	HeaderTraceID = "X-Trace-ID"

	// unmatchedRoute labels requests that hit no route, keeping the route
	// attribute's cardinality bounded.
	unmatchedRoute = "unmatched"
)

// Middleware returns the otelgin server span followed by a handler that
// echoes the trace ID and records request metrics on the global meter
// provider.
func Middleware(serviceName string, opts ...otelgin.Option) gin.HandlersChain {
	return gin.HandlersChain{
		otelgin.Middleware(serviceName, opts...),
		instrumentHandler(otel.GetMeterProvider()),
	}
}

type serverInstruments struct {
	duration metric.Float64Histogram
	inflight metric.Int64UpDownCounter
}

func newServerInstruments(mp metric.MeterProvider) (*serverInstruments, error) {
	meter := mp.Meter(instrumentationName)

	duration, err := meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("Duration of API requests."),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	inflight, err := meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("Requests being served."),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return &serverInstruments{duration: duration, inflight: inflight}, nil
}

// instrumentHandler skips metrics, but still echoes the trace ID, when the
// instruments cannot be created. The error goes to the otel error handler.
func instrumentHandler(mp metric.MeterProvider) gin.HandlerFunc {
	inst, err := newServerInstruments(mp)
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			c.Header(HeaderTraceID, sc.TraceID().String())
		}

		if inst == nil {
			c.Next()

			return
		}

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}

		base := metric.WithAttributes(
			attribute.String("http.request.method", c.Request.Method),
			attribute.String("http.route", route),
		)

		start := time.Now()

		inst.inflight.Add(ctx, 1, base)
		defer inst.inflight.Add(ctx, -1, base)

		c.Next()

		inst.duration.Record(ctx, time.Since(start).Seconds(), base,
			metric.WithAttributes(attribute.Int("http.response.status_code", c.Writer.Status())))
	}
}
