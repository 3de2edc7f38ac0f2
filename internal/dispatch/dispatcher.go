// Package dispatch performs the single outbound query exchange with the AI backend.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"docquery/pkg/utils"
)

// NoResponseFallback is returned when the backend reply carries no answer
// field. A missing answer is tolerated, not treated as an error.
const NoResponseFallback = "No response found"

// Dispatcher sends composed prompts to a configured backend endpoint.
// Exactly one request is made per Ask; there is no retry.
type Dispatcher struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewDispatcher returns a Dispatcher for the given endpoint. A zero timeout
// means the request stays in flight until the backend resolves or the context
// is canceled.
func NewDispatcher(endpoint string, timeout time.Duration, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// askRequest is the backend wire format: the prompt under a fixed key.
type askRequest struct {
	Prompt string `json:"prompt"`
}

// askResponse is the expected reply shape. Any other well-formed JSON shape
// is treated as "no answer found".
type askResponse struct {
	Answer string `json:"answer"`
}

// Ask POSTs the prompt to the backend and returns the answer string. A reply
// without an answer field yields NoResponseFallback. Network failures,
// non-2xx statuses, and malformed bodies are returned as errors; the caller
// is responsible for presenting them.
func (d *Dispatcher) Ask(ctx context.Context, promptText string) (string, error) {
	body, err := json.Marshal(askRequest{Prompt: promptText})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	d.logger.Debug("dispatching prompt",
		zap.String("endpoint", d.endpoint),
		zap.String("prompt", utils.Truncate(promptText, 120)),
	)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("backend returned %d: %s", resp.StatusCode, string(b))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	var out askResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		// Well-formed JSON of the wrong shape (array, string, non-string
		// answer) counts as "no answer", same as a missing field. Only
		// invalid JSON is a decode error.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return NoResponseFallback, nil
		}
		return "", fmt.Errorf("decode response: %w", err)
	}
	if out.Answer == "" {
		return NoResponseFallback, nil
	}
	return out.Answer, nil
}
