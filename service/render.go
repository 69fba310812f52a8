package service

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer buffers the streamed answer text and optionally re-renders
// it as formatted markdown once the turn is complete. During streaming the
// raw text has already been printed token by token; the markdown pass is a
// readable recap for prose-heavy answers.
type MarkdownRenderer struct {
	buffer  strings.Builder
	enabled bool
}

func NewMarkdownRenderer(enabled bool) *MarkdownRenderer {
	return &MarkdownRenderer{enabled: enabled}
}

// Collect appends a streamed visible delta to the buffer.
func (mr *MarkdownRenderer) Collect(text string) {
	if mr.enabled {
		mr.buffer.WriteString(text)
	}
}

// RenderMarkdown re-renders the collected answer through glamour and resets
// the buffer. It is a no-op when markdown output is disabled or nothing was
// collected.
func (mr *MarkdownRenderer) RenderMarkdown() {
	if !mr.enabled {
		return
	}
	output := mr.buffer.String()
	mr.buffer.Reset()
	if strings.TrimSpace(output) == "" {
		return
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		Warnf("Cannot initialize markdown renderer: %v", err)
		return
	}
	out, err := renderer.Render(output)
	if err != nil {
		Warnf("Cannot render markdown correctly: %v", err)
		return
	}
	fmt.Print(out)
}
