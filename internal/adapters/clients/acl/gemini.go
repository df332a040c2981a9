package acl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/jsamuelsen/quoteboard/internal/adapters/clients"
	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
)

// DefaultModel is used when GeminiConfig.Model is empty.
const DefaultModel = "gemini-pro"

// HeaderAPIKey carries the model API key.
const HeaderAPIKey = "x-goog-api-key"

// APIKeyAuth returns a clients.Config AuthFunc that sends the API key header.
func APIKeyAuth(key string) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set(HeaderAPIKey, key)
	}
}

// GeminiConfig contains configuration for the Gemini oracle.
type GeminiConfig struct {
	// Client is the HTTP client to use for requests. Its BaseURL points at
	// the Generative Language API and its AuthFunc sends the API key.
	Client *clients.Client

	// Model is the model name, e.g. "gemini-pro".
	Model string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// GeminiOracle implements ports.RatingOracle against the Generative
// Language REST API.
type GeminiOracle struct {
	client *clients.Client
	name   string
	model  string
	logger *slog.Logger
}

// NewGeminiOracle creates a new oracle adapter.
// Panics if Client is nil.
func NewGeminiOracle(cfg GeminiConfig) *GeminiOracle {
	if cfg.Client == nil {
		panic("GeminiOracle: Client is required")
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &GeminiOracle{
		client: cfg.Client,
		name:   cfg.Client.ServiceName(),
		model:  model,
		logger: logger,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generateContentRequest struct {
	Contents []geminiContent `json:"contents"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// Score sends the prompt as a single user turn and returns the reply text.
func (o *GeminiOracle) Score(ctx context.Context, prompt string) (string, error) {
	logger := logging.FromContextOr(ctx, o.logger)
	logging.Trace(ctx, logger, "requesting rating", slog.String("model", o.model))

	payload, err := json.Marshal(generateContentRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding prompt: %w", err)
	}

	body, err := o.call(ctx, "generate content", o.modelPath()+":generateContent", payload)
	if err != nil {
		return "", err
	}

	resp, err := decodeReply[generateContentResponse](o.name, body)
	if err != nil {
		return "", err
	}

	text, err := o.replyText(resp)
	if err != nil {
		logger.WarnContext(ctx, "model returned no usable reply", slog.Any("error", err))

		return "", err
	}

	logging.Trace(ctx, logger, "rating reply received", slog.Int("length", len(text)))

	return text, nil
}

// replyText joins the text parts of the first candidate.
func (o *GeminiOracle) replyText(resp *generateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", domain.NewUnavailableError(o.name, "prompt blocked: "+resp.PromptFeedback.BlockReason)
		}

		return "", domain.NewUnavailableError(o.name, "no candidates returned")
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}

	if strings.TrimSpace(sb.String()) == "" {
		reason := resp.Candidates[0].FinishReason
		if reason == "" {
			reason = "empty"
		}

		return "", domain.NewUnavailableError(o.name, "no reply text: "+reason)
	}

	return sb.String(), nil
}

func (o *GeminiOracle) modelPath() string {
	return "/v1beta/models/" + url.PathEscape(o.model)
}

// Name is the oracle's client name, used for health checks and metrics.
func (o *GeminiOracle) Name() string {
	return o.name
}

// Optional reports that a failing oracle degrades the service rather than
// taking it out of rotation. Submissions still succeed with a neutral rating.
func (o *GeminiOracle) Optional() bool {
	return true
}

// Check verifies the model is reachable and the key is accepted.
func (o *GeminiOracle) Check(ctx context.Context) error {
	body, err := o.call(ctx, "get model", o.modelPath(), nil)
	if err != nil {
		return err
	}

	return body.Close()
}
