package service

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultHost is where a locally running daemon listens.
	DefaultHost = "http://localhost:11434"
	// DefaultTimeout bounds a whole request, including reading a streamed body.
	DefaultTimeout = 300 * time.Second

	// Streamed chat lines can carry long fragments; give the scanner room.
	maxStreamLineSize = 1024 * 1024
)

// Client talks to the model-serving daemon's REST API. It is safe to reuse
// across calls, but the rest of the program issues at most one streaming call
// at a time.
type Client struct {
	host    string
	timeout time.Duration
	httpc   *http.Client
}

func NewClient(host string, timeout time.Duration) *Client {
	if host == "" {
		host = DefaultHost
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		host:    strings.TrimRight(host, "/"),
		timeout: timeout,
		httpc:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) Host() string {
	return c.host
}

// do issues a request and normalizes transport failures into the client's
// error types. A non-2xx response counts as a transport failure; the daemon
// puts {"error": ...} bodies on those, which we surface when present.
func (c *Client) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.host+path, body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() {
			return nil, &TimeoutError{After: c.timeout}
		}
		if errors.Is(err, context.Canceled) {
			return nil, &UserCancelError{Reason: UserCancelReasonInterrupt}
		}
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, &NetworkError{Err: fmt.Errorf("%s %s: %s", method, path, errorFromBody(resp))}
	}
	return resp, nil
}

// errorFromBody pulls the daemon's error message out of a failed response,
// falling back to the HTTP status.
func errorFromBody(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
			return payload.Error
		}
	}
	return resp.Status
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Err: fmt.Errorf("decoding %s response: %w", path, err)}
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, method, path string, payload any) error {
	resp, err := c.do(ctx, method, path, payload)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// StreamLines opens a streaming endpoint and delivers its raw NDJSON lines.
// The line channel closes when the stream ends for any reason; exactly one
// value (possibly nil) arrives on the error channel afterwards. Cancelling
// the context stops the stream between lines, never mid-line.
func (c *Client) StreamLines(ctx context.Context, method, path string, payload any) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)

		resp, err := c.do(ctx, method, path, payload)
		if err != nil {
			errc <- err
			return
		}
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 64*1024), maxStreamLineSize)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		if err := scanner.Err(); err != nil {
			if ctx.Err() != nil {
				errc <- ctx.Err()
				return
			}
			errc <- &NetworkError{Err: err}
			return
		}
		errc <- nil
	}()

	return lines, errc
}

// ListModels returns the models available locally.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var payload struct {
		Models []ModelInfo `json:"models"`
	}
	if err := c.getJSON(ctx, "/api/tags", &payload); err != nil {
		return nil, err
	}
	return payload.Models, nil
}

// ShowModel looks a model up by exact name in the local list.
func (c *Client) ShowModel(ctx context.Context, name string) (*ModelInfo, error) {
	models, err := c.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	for i := range models {
		if models[i].Name == name {
			return &models[i], nil
		}
	}
	return nil, fmt.Errorf("model %q not found", name)
}

// DeleteModel removes a local model.
func (c *Client) DeleteModel(ctx context.Context, name string) error {
	return c.postJSON(ctx, http.MethodDelete, "/api/delete", map[string]any{"name": name})
}

// CopyModel duplicates a local model under a new name.
func (c *Client) CopyModel(ctx context.Context, source, destination string) error {
	return c.postJSON(ctx, http.MethodPost, "/api/copy",
		map[string]any{"source": source, "destination": destination})
}

// UnloadModel asks the daemon to drop a loaded model from memory.
// keep_alive of zero expires the model immediately.
func (c *Client) UnloadModel(ctx context.Context, name string) error {
	return c.postJSON(ctx, http.MethodPost, "/api/generate",
		map[string]any{"model": name, "keep_alive": 0})
}

// Version returns the daemon's version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	var payload struct {
		Version string `json:"version"`
	}
	if err := c.getJSON(ctx, "/api/version", &payload); err != nil {
		return "", err
	}
	return payload.Version, nil
}

// RunningModels returns the models currently loaded in the daemon.
func (c *Client) RunningModels(ctx context.Context) ([]RunningModel, error) {
	var payload struct {
		Models []RunningModel `json:"models"`
	}
	if err := c.getJSON(ctx, "/api/ps", &payload); err != nil {
		return nil, err
	}
	return payload.Models, nil
}
