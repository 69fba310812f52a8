package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/maternion/matollama/internal/ui"
)

type TrackerResult int

const (
	TrackerContinue TrackerResult = iota
	TrackerSuccess
	TrackerFailure
)

// ProgressTracker folds the event stream of one pull/push/create call into a
// single evolving progress display. The daemon drives the phase entirely
// through status strings; the tracker does not validate transition order and
// simply shows whatever phase the daemon last reported.
type ProgressTracker struct {
	Phase     string
	Completed int64
	Total     int64
	Finished  bool
	Failed    string
}

// Update folds one decoded event into the tracker state.
// An error event fails the transfer immediately; a "success" status finishes
// it; anything else refreshes the phase label and byte counters.
func (t *ProgressTracker) Update(ev *StreamEvent) TrackerResult {
	if ev.Err != "" {
		t.Failed = ev.Err
		return TrackerFailure
	}
	if ev.HasBytes {
		t.Completed = ev.Completed
		t.Total = ev.Total
	}
	switch ev.Status {
	case "":
		// keep-alive or bytes-only line, keep the current phase
	case "success":
		t.Phase = "Complete"
		t.Finished = true
		return TrackerSuccess
	default:
		t.Phase = t.describe(ev.Status)
	}
	return TrackerContinue
}

// Percent returns transfer completion as 0..100, and 0 when the total is
// unknown or zero.
func (t *ProgressTracker) Percent() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Completed) / float64(t.Total) * 100
}

// describe maps the daemon's raw status strings onto friendlier phase labels.
// Unknown statuses pass through verbatim.
func (t *ProgressTracker) describe(status string) string {
	switch status {
	case "pulling manifest":
		return "Pulling manifest..."
	case "downloading":
		if t.Total > 0 {
			return fmt.Sprintf("%s/%s (%.1f%%)",
				FormatSize(t.Completed), FormatSize(t.Total), t.Percent())
		}
		return "Downloading..."
	case "verifying sha256 digest":
		return "Verifying..."
	case "writing manifest":
		return "Writing manifest..."
	case "removing any unused layers":
		return "Cleaning up..."
	default:
		return status
	}
}

// runTransfer drives a streaming pull/push/create call to completion,
// updating the indicator with the current phase after every event.
// A stream that ends without an explicit success or error is incomplete and
// reported as failed.
func (c *Client) runTransfer(ctx context.Context, path string, payload any, label string, ind *ui.Indicator) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines, errc := c.StreamLines(ctx, http.MethodPost, path, payload)

	if ind != nil {
		ind.Start(label)
		defer ind.Stop()
	}

	tracker := &ProgressTracker{}
	for line := range lines {
		ev, ok := DecodeStreamLine(line)
		if !ok {
			continue
		}
		switch tracker.Update(ev) {
		case TrackerSuccess:
			// Terminal: stop reading, any further lines are not consumed.
			return nil
		case TrackerFailure:
			return &RemoteError{Message: tracker.Failed}
		}
		if ind != nil && tracker.Phase != "" {
			ind.Update(fmt.Sprintf("%s %s", label, tracker.Phase))
		}
	}
	if err := <-errc; err != nil {
		if ctx.Err() != nil {
			return &UserCancelError{Reason: UserCancelReasonInterrupt}
		}
		return err
	}
	return &RemoteError{Message: "stream ended before completion"}
}

// PullModel downloads a model from the registry, streaming progress.
func (c *Client) PullModel(ctx context.Context, name string, ind *ui.Indicator) error {
	return c.runTransfer(ctx, "/api/pull",
		map[string]any{"name": name},
		fmt.Sprintf("Pulling %s", name), ind)
}

// PushModel uploads a model to the registry, streaming progress.
func (c *Client) PushModel(ctx context.Context, name string, ind *ui.Indicator) error {
	return c.runTransfer(ctx, "/api/push",
		map[string]any{"name": name},
		fmt.Sprintf("Pushing %s", name), ind)
}

// CreateModel builds a model from Modelfile content, streaming progress.
func (c *Client) CreateModel(ctx context.Context, name, modelfile string, ind *ui.Indicator) error {
	return c.runTransfer(ctx, "/api/create",
		map[string]any{"name": name, "modelfile": modelfile},
		fmt.Sprintf("Creating %s", name), ind)
}
