package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"time"
)

// drainLimit caps how much of a discarded response is read so the
// connection can be reused.
const drainLimit = 4 << 10

// send makes the attempts for one call and returns the response, the number
// of attempts made and, when no response arrived, the error.
func (c *Client) send(ctx context.Context, req *http.Request, logger *slog.Logger) (*http.Response, int, error) {
	var delay time.Duration

	for attempt := 1; ; attempt++ {
		if attempt > 1 {
			if err := c.wait(ctx, delay); err != nil {
				return nil, attempt - 1, err
			}

			if err := rewindBody(req); err != nil {
				return nil, attempt - 1, err
			}
		}

		if c.auth != nil {
			c.auth(req)
		}

		resp, err := c.http.Do(req.WithContext(ctx))
		final := attempt >= c.retry.MaxAttempts

		if err != nil {
			if !isRetryableError(ctx, err) {
				return nil, attempt, err
			}

			if final {
				return nil, attempt, fmt.Errorf("%w after %d attempts: %v", ErrMaxRetriesExceeded, attempt, err)
			}

			delay = c.backoff(attempt)
			logger.Debug("retrying after transport error",
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay),
				slog.Any("error", err),
			)

			continue
		}

		if final || !retryableStatus(resp.StatusCode) {
			return resp, attempt, nil
		}

		delay = max(c.backoff(attempt), retryAfter(resp.Header, time.Now()))
		delay = min(delay, c.retry.MaxInterval)

		logger.Debug("retrying after downstream status",
			slog.Int("attempt", attempt),
			slog.Int("status", resp.StatusCode),
			slog.Duration("delay", delay),
		)

		discard(resp)
	}
}

// backoff returns the delay after the given attempt (1-based): the initial
// interval grown by the multiplier, capped, then spread by the jitter factor.
func (c *Client) backoff(attempt int) time.Duration {
	d := float64(c.retry.InitialInterval) * math.Pow(c.retry.Multiplier, float64(attempt-1))
	d = min(d, float64(c.retry.MaxInterval))

	if f := c.retry.JitterFactor; f > 0 {
		d += d * f * (rand.Float64()*2 - 1) //nolint:gosec // jitter only
	}

	return time.Duration(d)
}

// retryableStatus reports statuses that say "try again later": quota
// exhaustion and server-side failures.
func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// retryAfter reads a Retry-After header given in seconds or as an HTTP date.
// It returns zero when the header is absent or unparseable.
func retryAfter(h http.Header, now time.Time) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}

	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}

		return time.Duration(secs) * time.Second
	}

	if at, err := http.ParseTime(v); err == nil && at.After(now) {
		return at.Sub(now)
	}

	return 0
}

// isRetryableError reports failures worth another attempt. Nothing is
// retried once the caller's context is done; a per-attempt timeout is.
func isRetryableError(ctx context.Context, err error) bool {
	if err == nil || ctx.Err() != nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}

// rewindBody resets the body for a further attempt.
func rewindBody(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}

	if req.GetBody == nil {
		return ErrBodyNotReplayable
	}

	body, err := req.GetBody()
	if err != nil {
		return fmt.Errorf("rewinding request body: %w", err)
	}

	req.Body = body

	return nil
}

func discard(resp *http.Response) {
	_, _ = io.CopyN(io.Discard, resp.Body, drainLimit)
	_ = resp.Body.Close()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
