package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
	"github.com/jsamuelsen/quoteboard/internal/platform/metrics"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

const (
	instrumentationName = "github.com/jsamuelsen/quoteboard/internal/app"

	cacheKeyPrefix = "rating:v1:"

	defaultCacheTTL = 24 * time.Hour
)

const ratingPrompt = `You are a quality rater for anonymous quotes. Rate the following text on a scale of 1-5 based on:
- Thoughtfulness and depth
- Clarity and readability
- Originality
- Overall quality

Rating scale:
1 - Noise, nonsense, or trash
2 - Weak thought, barely formed
3 - Fine, readable, acceptable
4 - Strong and thoughtful
5 - Sharp, memorable, hits hard

Text to rate: %q

Respond ONLY with a JSON object in this exact format:
{
  "rating": <number 1-5>,
  "feedback": "<brief explanation in one sentence>"
}

Do not include any other text, explanations, or markdown formatting. Only the JSON object.`

// BuildRatingPrompt returns the rubric prompt for text.
func BuildRatingPrompt(text string) string {
	return fmt.Sprintf(ratingPrompt, text)
}

// Rater scores text. Implementations never fail; problems degrade to a
// neutral assessment.
type Rater interface {
	Rate(ctx context.Context, text string) domain.Assessment
}

// QualityRater asks the rating oracle to score text and parses its answer.
type QualityRater struct {
	oracle     ports.RatingOracle
	cache      ports.RatingCache
	cacheTTL   time.Duration
	limiter    *rate.Limiter
	strategies []ParseStrategy
	metrics    *metrics.Recorder
	tracer     trace.Tracer
	logger     *slog.Logger
}

// QualityRaterConfig contains the rater's dependencies.
type QualityRaterConfig struct {
	// Oracle is required.
	Oracle ports.RatingOracle

	// Cache is optional. Only assessments parsed from a real oracle answer
	// are stored.
	Cache    ports.RatingCache
	CacheTTL time.Duration

	// Limiter paces outbound oracle calls to stay inside the API quota.
	// Nil means unlimited.
	Limiter *rate.Limiter

	// Strategies defaults to DefaultParseStrategies.
	Strategies []ParseStrategy

	Metrics *metrics.Recorder
	Logger  *slog.Logger
}

// NewQualityRater creates a rater. It panics if no oracle is given.
func NewQualityRater(cfg QualityRaterConfig) *QualityRater {
	if cfg.Oracle == nil {
		panic("app: QualityRater requires an oracle")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	strategies := cfg.Strategies
	if len(strategies) == 0 {
		strategies = DefaultParseStrategies()
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &QualityRater{
		oracle:     cfg.Oracle,
		cache:      cfg.Cache,
		cacheTTL:   ttl,
		limiter:    cfg.Limiter,
		strategies: strategies,
		metrics:    cfg.Metrics,
		tracer:     otel.Tracer(instrumentationName),
		logger:     logger.With(slog.String("component", "app.QualityRater")),
	}
}

// Rate scores text. It never returns an error: oracle failures yield
// domain.UnavailableAssessment and unparseable answers a neutral rating.
func (r *QualityRater) Rate(ctx context.Context, text string) domain.Assessment {
	ctx, span := r.tracer.Start(ctx, "QualityRater.Rate")
	defer span.End()

	logger := logging.FromContextOr(ctx, r.logger)

	start := time.Now()
	key := ratingCacheKey(text)

	if a, ok := r.cached(ctx, logger, key); ok {
		r.finish(span, a, metrics.SourceCache, start)

		return a
	}

	raw, err := r.ask(ctx, text)
	if err != nil {
		logger.WarnContext(ctx, "rating oracle failed, using fallback rating",
			slog.Any("error", err),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, "rating oracle failed")

		a := domain.UnavailableAssessment()
		r.finish(span, a, metrics.SourceUnavailable, start)

		return a
	}

	a, source := ParseAssessment(raw, r.strategies)
	if source == metrics.SourceDefault {
		logger.WarnContext(ctx, "could not parse rating oracle answer",
			slog.String("snippet", snippet(raw)),
		)
	} else {
		r.store(ctx, logger, key, a)
	}
	r.finish(span, a, source, start)

	logging.Trace(ctx, logger, "rating parsed",
		slog.String("source", source),
		slog.Int("rating", a.Rating),
	)

	return a
}

func (r *QualityRater) ask(ctx context.Context, text string) (string, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("waiting for oracle quota: %w", err)
		}
	}

	raw, err := r.oracle.Score(ctx, BuildRatingPrompt(text))
	if err != nil {
		return "", fmt.Errorf("scoring text: %w", err)
	}

	return raw, nil
}

func (r *QualityRater) cached(ctx context.Context, logger *slog.Logger, key string) (domain.Assessment, bool) {
	if r.cache == nil {
		return domain.Assessment{}, false
	}

	a, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.metrics.ObserveCache(metrics.CacheError)
		logger.DebugContext(ctx, "rating cache read failed", slog.Any("error", err))

		return domain.Assessment{}, false
	}

	if !ok {
		r.metrics.ObserveCache(metrics.CacheMiss)

		return domain.Assessment{}, false
	}

	r.metrics.ObserveCache(metrics.CacheHit)

	// Entries written by another process or an older build get the same
	// bounds as a fresh answer.
	rating := float64(a.Rating)

	return domain.NormalizeAssessment(&rating, a.Feedback), true
}

func (r *QualityRater) store(ctx context.Context, logger *slog.Logger, key string, a domain.Assessment) {
	if r.cache == nil {
		return
	}

	if err := r.cache.Set(ctx, key, a, r.cacheTTL); err != nil {
		r.metrics.ObserveCache(metrics.CacheError)
		logger.DebugContext(ctx, "rating cache write failed", slog.Any("error", err))

		return
	}

	r.metrics.ObserveCache(metrics.CacheSet)
}

func (r *QualityRater) finish(span trace.Span, a domain.Assessment, source string, start time.Time) {
	span.SetAttributes(
		attribute.String("rating.source", source),
		attribute.Int("rating.value", a.Rating),
	)
	r.metrics.ObserveRating(source, time.Since(start))
}

func ratingCacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))

	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

const maxSnippet = 120

func snippet(s string) string {
	runes := []rune(s)
	if len(runes) <= maxSnippet {
		return s
	}

	return string(runes[:maxSnippet]) + "..."
}
