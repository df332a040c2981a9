package acl

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quoteboard/internal/adapters/clients"
	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/platform/config"
)

func newTestOracle(t *testing.T, handler http.HandlerFunc) *GeminiOracle {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := clients.New(&clients.Config{
		ServiceName: "rating-oracle",
		BaseURL:     server.URL,
		Timeout:     5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     100 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       time.Second,
			HalfOpenLimit: 2,
		},
		AuthFunc: APIKeyAuth("test-key"),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	return NewGeminiOracle(GeminiConfig{Client: client, Model: "gemini-pro"})
}

func TestNewGeminiOracle_PanicsWithoutClient(t *testing.T) {
	assert.Panics(t, func() { NewGeminiOracle(GeminiConfig{}) })
}

func TestGeminiOracle_Score(t *testing.T) {
	var (
		gotPath string
		gotKey  string
		gotReq  generateContentRequest
	)

	oracle := newTestOracle(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get(HeaderAPIKey)
		_ = json.NewDecoder(r.Body).Decode(&gotReq)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"rating\": 4, "},{"text":"\"feedback\": \"Sharp\"}"}]},"finishReason":"STOP"}]}`)
	})

	text, err := oracle.Score(context.Background(), "rate this")
	require.NoError(t, err)

	assert.Equal(t, `{"rating": 4, "feedback": "Sharp"}`, text)
	assert.Equal(t, "/v1beta/models/gemini-pro:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	require.Len(t, gotReq.Contents, 1)
	assert.Equal(t, "rate this", gotReq.Contents[0].Parts[0].Text)
}

func TestGeminiOracle_Score_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		reason string
	}{
		{
			name:   "blocked prompt",
			status: http.StatusOK,
			body:   `{"promptFeedback":{"blockReason":"SAFETY"}}`,
			reason: "prompt blocked: SAFETY",
		},
		{
			name:   "no candidates",
			status: http.StatusOK,
			body:   `{"candidates":[]}`,
			reason: "no candidates returned",
		},
		{
			name:   "empty text",
			status: http.StatusOK,
			body:   `{"candidates":[{"content":{"parts":[]},"finishReason":"MAX_TOKENS"}]}`,
			reason: "no reply text: MAX_TOKENS",
		},
		{
			name:   "quota",
			status: http.StatusTooManyRequests,
			body:   `{"error":{"code":429,"message":"Quota exceeded","status":"RESOURCE_EXHAUSTED"}}`,
			reason: "rate limit exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oracle := newTestOracle(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := oracle.Score(context.Background(), "rate this")

			var unavailable *domain.UnavailableError
			require.ErrorAs(t, err, &unavailable)
			assert.Equal(t, tt.reason, unavailable.Reason)
		})
	}
}

func TestGeminiOracle_Score_MalformedBody(t *testing.T) {
	oracle := newTestOracle(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "not json")
	})

	_, err := oracle.Score(context.Background(), "rate this")
	assert.True(t, domain.IsUnavailable(err))
}

func TestGeminiOracle_Health(t *testing.T) {
	var gotPath string

	oracle := newTestOracle(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = io.WriteString(w, `{"name":"models/gemini-pro"}`)
	})

	assert.Equal(t, "rating-oracle", oracle.Name())
	assert.True(t, oracle.Optional())
	require.NoError(t, oracle.Check(context.Background()))
	assert.Equal(t, "/v1beta/models/gemini-pro", gotPath)
}

func TestGeminiOracle_Check_MissingModel(t *testing.T) {
	oracle := newTestOracle(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := oracle.Check(context.Background())
	assert.True(t, domain.IsNotFound(err))
}
