package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// ChatSession holds the state of one interactive chat: the active model, the
// generation settings, and the append-only conversation history. It is owned
// by the single consumer loop; no locking is needed because only one
// streaming call is in flight at a time.
type ChatSession struct {
	Client       *Client
	Model        string
	SystemPrompt string
	Temperature  float64
	Verbose      bool
	Think        bool
	History      []ChatMessage
}

func NewChatSession(client *Client) *ChatSession {
	return &ChatSession{
		Client:      client,
		Temperature: 0.7,
		Think:       true,
	}
}

// payload builds the /api/chat request body from the session state.
func (s *ChatSession) payload() map[string]any {
	messages := make([]map[string]string, 0, len(s.History))
	for _, msg := range s.History {
		messages = append(messages, map[string]string{
			"role":    msg.Role,
			"content": msg.Content,
		})
	}
	options := map[string]any{"temperature": s.Temperature}
	if s.Verbose {
		options["verbose"] = true
	}
	payload := map[string]any{
		"model":    s.Model,
		"messages": messages,
		"stream":   true,
		"options":  options,
	}
	if s.SystemPrompt != "" {
		payload["system"] = s.SystemPrompt
	}
	return payload
}

// SendTurn runs one chat turn: it appends the user message to history, opens
// the streaming request, and emits display notifications on proc until the
// turn ends. The channel is closed when the turn is over; the last
// notification before close is terminal (Finished, Error or Canceled).
//
// The user message is appended before sending so a failed call still keeps
// the user's input. The assistant message is appended only on normal
// completion with a non-empty response; an error or cancellation abandons
// the turn without persisting a partial answer.
func (s *ChatSession) SendTurn(ctx context.Context, input string, proc chan<- StreamNotify) {
	defer close(proc)

	s.History = append(s.History, ChatMessage{Role: RoleUser, Content: input, Time: time.Now()})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines, errc := s.Client.StreamLines(ctx, http.MethodPost, "/api/chat", s.payload())
	proc <- StreamNotify{Status: StatusStarted}

	thinking := NewThinkingProcessor()
	var collected strings.Builder
	done := false

	for line := range lines {
		ev, ok := DecodeStreamLine(line)
		if !ok {
			continue
		}
		if ev.Err != "" {
			proc <- StreamNotify{Status: StatusError, Data: ev.Err}
			return
		}
		if s.Verbose && len(ev.Extra) > 0 {
			for _, notice := range formatExtras(ev.Extra) {
				proc <- StreamNotify{Status: StatusVerbose, Data: notice}
			}
		}
		if ev.Message != "" {
			s.processFragment(ev.Message, thinking, &collected, proc)
		}
		if ev.Done {
			done = true
			// The daemon should stop here; cancel so a misbehaving stream
			// cannot keep the producer alive.
			cancel()
			break
		}
	}

	if !done {
		if err := <-errc; err != nil {
			if ctx.Err() != nil {
				proc <- StreamNotify{Status: StatusCanceled, Data: "Generation interrupted"}
				return
			}
			proc <- StreamNotify{Status: StatusError, Data: err.Error()}
			return
		}
	}

	// Release any partial tag the splitter is still holding.
	if tail, visible := thinking.Flush(); tail != "" || visible != "" {
		if visible != "" {
			proc <- StreamNotify{Status: StatusData, Data: visible}
			collected.WriteString(visible)
		}
	}

	if collected.Len() > 0 {
		s.History = append(s.History, ChatMessage{
			Role:    RoleAssistant,
			Content: collected.String(),
			Time:    time.Now(),
		})
	}
	proc <- StreamNotify{Status: StatusFinished}
}

// processFragment routes one message fragment through the thinking splitter
// and forwards the resulting deltas as display notifications.
func (s *ChatSession) processFragment(fragment string, thinking *ThinkingProcessor, collected *strings.Builder, proc chan<- StreamNotify) {
	if !s.Think {
		proc <- StreamNotify{Status: StatusData, Data: fragment}
		collected.WriteString(fragment)
		return
	}

	thinkingDelta, visibleDelta, opened, closed := thinking.ProcessChunk(fragment)
	if opened {
		proc <- StreamNotify{Status: StatusReasoning}
	}
	if thinkingDelta != "" {
		proc <- StreamNotify{Status: StatusReasoning, Data: thinkingDelta}
	}
	if closed {
		proc <- StreamNotify{Status: StatusReasoningOver}
	}
	if visibleDelta != "" {
		proc <- StreamNotify{Status: StatusData, Data: visibleDelta}
		collected.WriteString(visibleDelta)
	}
}

// formatExtras renders verbose debug fields as stable, tagged lines.
func formatExtras(extra map[string]any) []string {
	keys := make([]string, 0, len(extra))
	for key := range extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	notices := make([]string, 0, len(keys))
	for _, key := range keys {
		value, err := json.Marshal(extra[key])
		if err != nil {
			continue
		}
		notices = append(notices, fmt.Sprintf("[DEBUG %s]: %s", key, value))
	}
	return notices
}
