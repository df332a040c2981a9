package acl

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/jsamuelsen/quoteboard/internal/domain"
)

// maxReplyBody caps a decoded reply. Rating replies are a few hundred bytes.
const maxReplyBody = 1 << 20

// call sends one request through the resilient client and returns the body
// of a 2xx reply for the caller to close. A nil payload sends a GET.
func (o *GeminiOracle) call(ctx context.Context, op, path string, payload []byte) (io.ReadCloser, error) {
	var (
		resp *http.Response
		err  error
	)

	if payload == nil {
		resp, err = o.client.Get(ctx, path)
	} else {
		resp, err = o.client.Post(ctx, path, payload)
	}

	if err != nil {
		return nil, o.transportError(op, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer func() { _ = resp.Body.Close() }()

		return nil, o.statusError(op, resp)
	}

	return resp.Body, nil
}

// decodeReply decodes and closes body. A reply that does not decode is the
// upstream misbehaving, so it is reported as unavailable.
func decodeReply[T any](service string, body io.ReadCloser) (*T, error) {
	defer func() { _ = body.Close() }()

	var out T
	if err := json.NewDecoder(io.LimitReader(body, maxReplyBody)).Decode(&out); err != nil {
		return nil, domain.WrapUnavailable(service, "malformed reply: "+err.Error(), err)
	}

	return &out, nil
}
