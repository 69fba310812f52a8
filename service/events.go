package service

import (
	"encoding/json"
	"strings"
)

// StreamEvent is the decoded form of one line of a streaming response.
// The daemon frames every streaming endpoint (chat, pull, push, create) as
// newline-delimited JSON objects; this is the common shape across all of them.
type StreamEvent struct {
	Status    string         // progress phase for pull/push/create
	Completed int64          // bytes transferred so far
	Total     int64          // total bytes for the current layer
	HasBytes  bool           // both "completed" and "total" were present and numeric
	Message   string         // chat message fragment, if any
	Done      bool           // terminal marker for the request
	Err       string         // daemon-reported error, if any
	Extra     map[string]any // leftover fields, echoed only in verbose mode
}

// chatEnvelope is the nested message object on /api/chat lines.
type chatEnvelope struct {
	Content string `json:"content"`
}

// DecodeStreamLine turns one raw line into a StreamEvent.
// Empty lines and lines that are not a JSON object are skipped (false):
// the daemon may emit keep-alives or a connection may cut a line short, and
// neither is fatal. The decoder never buffers across lines.
func DecodeStreamLine(line string) (*StreamEvent, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &fields); err != nil {
		return nil, false
	}

	ev := &StreamEvent{}
	if raw, ok := fields["status"]; ok {
		json.Unmarshal(raw, &ev.Status)
	}
	if rawC, okC := fields["completed"]; okC {
		if rawT, okT := fields["total"]; okT {
			var completed, total int64
			errC := json.Unmarshal(rawC, &completed)
			errT := json.Unmarshal(rawT, &total)
			if errC == nil && errT == nil {
				ev.Completed = completed
				ev.Total = total
				ev.HasBytes = true
			}
		}
	}
	if raw, ok := fields["message"]; ok {
		var env chatEnvelope
		if err := json.Unmarshal(raw, &env); err == nil {
			ev.Message = env.Content
		}
	}
	if raw, ok := fields["done"]; ok {
		json.Unmarshal(raw, &ev.Done)
	}
	if raw, ok := fields["error"]; ok {
		json.Unmarshal(raw, &ev.Err)
	}

	for key, raw := range fields {
		switch key {
		case "status", "completed", "total", "message", "done", "error":
			continue
		}
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			continue
		}
		if isEmptyValue(value) {
			continue
		}
		if ev.Extra == nil {
			ev.Extra = make(map[string]any)
		}
		ev.Extra[key] = value
	}

	return ev, true
}

// isEmptyValue reports whether a decoded JSON value carries no information
// worth echoing: null, "", {}, [].
func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return false
}
