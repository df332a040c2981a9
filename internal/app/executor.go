package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
	"github.com/jsamuelsen/quoteboard/internal/platform/metrics"
)

// Moderation pipeline: Validate → Rate → Decide → Persist → Respond
//
// Each submission makes exactly one pass through the steps:
//   1. VALIDATE - Check and trim the input. Nothing is stored on failure.
//   2. RATE     - Score the text. Never fails; the rater degrades instead.
//   3. DECIDE   - Compare the rating to the publish threshold.
//   4. PERSIST  - Store the content, published or not.
//   5. RESPOND  - Build the result. Best-effort side effects run here and
//                 cannot fail the submission.

// ExecutionStep represents a step in the moderation pipeline.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepRate     ExecutionStep = "rate"
	StepDecide   ExecutionStep = "decide"
	StepPersist  ExecutionStep = "persist"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError wraps errors with the step where they occurred.
type ExecutionError struct {
	Step    ExecutionStep
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Step, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s failed: %s", e.Step, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// NewExecutionValidationError creates an error for the validate step.
func NewExecutionValidationError(message string, cause error) error {
	return &ExecutionError{Step: StepValidate, Message: message, Cause: cause}
}

// NewPersistError creates an error for the persist step.
func NewPersistError(message string, cause error) error {
	return &ExecutionError{Step: StepPersist, Message: message, Cause: cause}
}

// Verdict is the outcome of the rate and decide steps.
type Verdict struct {
	domain.Assessment
	Published bool
}

// SubmissionResult is returned to the submitter.
type SubmissionResult struct {
	ID        string
	Rating    int
	Feedback  string
	Published bool
	Message   string
}

// Executor runs submissions through the moderation pipeline.
type Executor struct {
	rater     Rater
	threshold int
	metrics   *metrics.Recorder
	logger    *slog.Logger
}

// ExecutorConfig contains the executor's dependencies.
type ExecutorConfig struct {
	Rater     Rater
	Threshold int
	Metrics   *metrics.Recorder
	Logger    *slog.Logger
}

// NewExecutor creates a new executor. It panics if no rater is given.
func NewExecutor(cfg ExecutorConfig) *Executor {
	if cfg.Rater == nil {
		panic("app: Executor requires a rater")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{
		rater:     cfg.Rater,
		threshold: cfg.Threshold,
		metrics:   cfg.Metrics,
		logger:    logger,
	}
}

// Submission defines the kind-specific parts of a pipeline run.
// I is the raw input and V the validated content.
type Submission[I, V any] struct {
	// Name identifies this operation for logging.
	Name string

	Kind domain.ContentKind

	// Validate checks and normalizes the input.
	Validate func(ctx context.Context, input I) (V, error)

	// Text returns the validated text to rate.
	Text func(validated V) string

	// Persist stores the content and returns its id.
	Persist func(ctx context.Context, validated V, verdict Verdict) (string, error)

	// Settle runs best-effort side effects after a successful persist.
	// It has no error return: anything that goes wrong must be handled
	// inside.
	Settle func(ctx context.Context, validated V, verdict Verdict, id string)
}

// execution holds state during one pipeline run.
type execution[I, V any] struct {
	exec   *Executor
	logger *slog.Logger
	sub    Submission[I, V]
}

func (e *execution[I, V]) runValidate(ctx context.Context, input I) (V, error) {
	e.logger.DebugContext(ctx, "starting validation")

	validated, err := e.sub.Validate(ctx, input)
	if err != nil {
		e.logger.WarnContext(ctx, "validation failed", slog.Any("error", err))

		var zero V

		return zero, NewExecutionValidationError("input validation failed", err)
	}

	e.logger.DebugContext(ctx, "validation passed")

	return validated, nil
}

func (e *execution[I, V]) runRate(ctx context.Context, validated V) domain.Assessment {
	e.logger.DebugContext(ctx, "rating content")

	a := e.exec.rater.Rate(ctx, e.sub.Text(validated))

	e.logger.DebugContext(ctx, "content rated", slog.Int("rating", a.Rating))

	return a
}

func (e *execution[I, V]) runDecide(ctx context.Context, a domain.Assessment) Verdict {
	v := Verdict{Assessment: a, Published: domain.Decide(a.Rating, e.exec.threshold)}

	e.exec.metrics.ObserveDecision(string(e.sub.Kind), v.Published)
	e.logger.DebugContext(ctx, "publish decided",
		slog.Int("threshold", e.exec.threshold),
		slog.Bool("published", v.Published),
	)

	return v
}

func (e *execution[I, V]) runPersist(ctx context.Context, validated V, v Verdict) (string, error) {
	e.logger.DebugContext(ctx, "persisting content")

	id, err := e.sub.Persist(ctx, validated, v)
	if err != nil {
		e.logger.ErrorContext(ctx, "persist failed", slog.Any("error", err))

		return "", NewPersistError("storing content failed", err)
	}

	e.logger.DebugContext(ctx, "content persisted", slog.String("id", id))

	return id, nil
}

func (e *execution[I, V]) runRespond(ctx context.Context, validated V, v Verdict, id string) SubmissionResult {
	if e.sub.Settle != nil {
		e.sub.Settle(ctx, validated, v, id)
	}

	return SubmissionResult{
		ID:        id,
		Rating:    v.Rating,
		Feedback:  v.Feedback,
		Published: v.Published,
		Message:   decisionMessage(e.sub.Kind, v.Published),
	}
}

// Execute runs a submission through the full moderation pipeline.
func Execute[I, V any](ctx context.Context, exec *Executor, sub Submission[I, V], input I) (SubmissionResult, error) {
	logger := logging.FromContextOr(ctx, exec.logger).With(slog.String("operation", sub.Name))
	start := time.Now()

	ec := &execution[I, V]{exec: exec, logger: logger, sub: sub}

	// Step 1: Validate.
	validated, err := ec.runValidate(ctx, input)
	if err != nil {
		return SubmissionResult{}, err
	}

	// Step 2: Rate.
	assessment := ec.runRate(ctx, validated)

	// Step 3: Decide.
	verdict := ec.runDecide(ctx, assessment)

	// Step 4: Persist.
	id, err := ec.runPersist(ctx, validated, verdict)
	if err != nil {
		return SubmissionResult{}, err
	}

	// Step 5: Respond.
	result := ec.runRespond(ctx, validated, verdict, id)

	logger.InfoContext(ctx, "submission moderated",
		slog.String("id", id),
		slog.Int("rating", verdict.Rating),
		slog.Bool("published", verdict.Published),
		slog.Duration("duration", time.Since(start)),
	)

	return result, nil
}

func decisionMessage(kind domain.ContentKind, published bool) string {
	if published {
		return kind.Label() + " published successfully"
	}

	return kind.Label() + " rejected - quality threshold not met"
}

// IsExecutionError checks if an error occurred during execution.
func IsExecutionError(err error) bool {
	var execErr *ExecutionError

	return errors.As(err, &execErr)
}

// GetExecutionStep extracts the step from an execution error.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
