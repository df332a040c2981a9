package benchmark

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	httpadapter "github.com/jsamuelsen/quoteboard/internal/adapters/http"
	"github.com/jsamuelsen/quoteboard/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quoteboard/internal/adapters/store/sqlstore"
	"github.com/jsamuelsen/quoteboard/internal/app"
	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

func init() {
	// Set Gin to release mode for accurate benchmarks
	gin.SetMode(gin.ReleaseMode)
}

// staticRater skips the model so benchmarks measure the service itself.
type staticRater struct{}

func (staticRater) Rate(context.Context, string) domain.Assessment {
	return domain.Assessment{Rating: 4, Feedback: "Strong"}
}

// simpleHealthChecker is a minimal health checker for benchmarking.
type simpleHealthChecker struct {
	name     string
	optional bool
}

func (s *simpleHealthChecker) Name() string { return s.name }

func (s *simpleHealthChecker) Check(context.Context) error { return nil }

func (s *simpleHealthChecker) Optional() bool { return s.optional }

// newBenchRouter wires the full middleware chain over an in-memory store
// seeded with the given number of published quotes.
func newBenchRouter(b *testing.B, quotes int) *gin.Engine {
	b.Helper()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := sqlstore.Open(ctx, sqlstore.DialectSQLite, ":memory:")
	if err != nil {
		b.Fatalf("opening store: %v", err)
	}

	b.Cleanup(func() { _ = store.Close(ctx) })

	if err := store.Migrate(ctx); err != nil {
		b.Fatalf("migrating store: %v", err)
	}

	for i := range quotes {
		if _, err := store.SaveQuote(ctx, domain.NewQuote{
			Text: fmt.Sprintf("Benchmark quote number %d", i), Rating: 4, Published: true,
		}); err != nil {
			b.Fatalf("seeding store: %v", err)
		}
	}

	moderation := app.NewModerationService(app.ModerationServiceConfig{
		Store: store,
		Executor: app.NewExecutor(app.ExecutorConfig{
			Rater:     staticRater{},
			Threshold: domain.DefaultThreshold,
			Logger:    logger,
		}),
		Counters: app.NewCounterUpdater(app.CounterUpdaterConfig{Store: store, Logger: logger}),
	})

	registry := ports.NewHealthRegistry()
	_ = registry.Register(store)

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		Logger:        logger,
		ServiceName:   "quoteboard-bench",
		HealthHandler: handlers.NewHealthHandler(handlers.HealthConfig{Registry: registry}),
		ContentHandler: handlers.NewContentHandler(moderation,
			app.NewFeedService(app.FeedServiceConfig{Store: store, Logger: logger})),
	})

	return engine
}

// BenchmarkLivenessHandler measures the performance of the liveness endpoint.
// This is a critical path for Kubernetes health checks and should be extremely fast.
func BenchmarkLivenessHandler(b *testing.B) {
	handler := handlers.NewHealthHandler(handlers.HealthConfig{Registry: ports.NewHealthRegistry()})
	req := httptest.NewRequest(http.MethodGet, "/-/live", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = req
		handler.Liveness(c)
	}
}

// BenchmarkReadinessHandler_WithChecks measures readiness with a critical
// and an optional dependency registered.
func BenchmarkReadinessHandler_WithChecks(b *testing.B) {
	registry := ports.NewHealthRegistry()
	_ = registry.Register(&simpleHealthChecker{name: "sqlite"})
	_ = registry.Register(&simpleHealthChecker{name: "rating-oracle", optional: true})

	handler := handlers.NewHealthHandler(handlers.HealthConfig{Registry: registry})
	req := httptest.NewRequest(http.MethodGet, "/-/ready", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = req
		handler.Readiness(c)
	}
}

// BenchmarkGetQuotes measures the feed through the full middleware chain.
func BenchmarkGetQuotes(b *testing.B) {
	for _, n := range []int{10, 100} {
		b.Run(fmt.Sprintf("quotes=%d", n), func(b *testing.B) {
			router := newBenchRouter(b, n)
			req := httptest.NewRequest(http.MethodGet, "/api/get-quotes", http.NoBody)

			b.ReportAllocs()

			for b.Loop() {
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)

				if w.Code != http.StatusOK {
					b.Fatalf("unexpected status %d", w.Code)
				}
			}
		})
	}
}

// BenchmarkSubmitQuote measures validation, the publish decision and the
// insert, without the model round trip.
func BenchmarkSubmitQuote(b *testing.B) {
	router := newBenchRouter(b, 0)
	body := `{"text":"Simplicity is the ultimate sophistication."}`

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/submit-quote", strings.NewReader(body)))

		if w.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", w.Code)
		}
	}
}

// BenchmarkSubmitQuote_Invalid measures the rejection path.
func BenchmarkSubmitQuote_Invalid(b *testing.B) {
	router := newBenchRouter(b, 0)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/submit-quote", strings.NewReader(`{"text":"   "}`)))
	}
}

// BenchmarkParseAssessment measures parsing typical model replies.
func BenchmarkParseAssessment(b *testing.B) {
	replies := map[string]string{
		"json":    `{"rating": 4, "feedback": "Clear and thoughtful"}`,
		"fenced":  "```json\n{\"rating\": 2, \"feedback\": \"Weak\"}\n```",
		"labeled": "Rating: 3\nFeedback: fine",
	}

	strategies := app.DefaultParseStrategies()

	for name, reply := range replies {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()

			for b.Loop() {
				app.ParseAssessment(reply, strategies)
			}
		})
	}
}
