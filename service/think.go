package service

import (
	"strings"
)

const (
	thinkOpenTag  = "<think>"
	thinkCloseTag = "</think>"
)

// ThinkingProcessor splits a streamed chat response into "thinking" text and
// visible answer text. Reasoning models wrap their deliberation in literal
// <think>...</think> markers; the markers may arrive split across fragment
// boundaries, so a trailing partial match is carried over to the next chunk
// instead of being emitted. When a model never opens a thinking block the
// processor is transparent: every fragment flows through as visible text.
type ThinkingProcessor struct {
	active  bool   // inside an open <think> block
	pending string // trailing partial tag match carried between chunks
	block   string // content of the thinking block currently open
	closed  string // content of the most recently closed thinking block
	visible string // accumulated visible text
}

func NewThinkingProcessor() *ThinkingProcessor {
	return &ThinkingProcessor{}
}

// ProcessChunk consumes one streamed fragment and returns the thinking and
// visible deltas it produced, plus whether a block was opened or closed during
// this call. Deltas never contain tag markers.
func (p *ThinkingProcessor) ProcessChunk(chunk string) (thinkingDelta, visibleDelta string, opened, closed bool) {
	text := p.pending + chunk
	p.pending = ""

	for len(text) > 0 {
		if !p.active {
			if pos := strings.Index(text, thinkOpenTag); pos >= 0 {
				visibleDelta += text[:pos]
				text = text[pos+len(thinkOpenTag):]
				p.active = true
				p.block = ""
				opened = true
				continue
			}
			keep := partialTagSuffix(text, thinkOpenTag)
			visibleDelta += text[:len(text)-keep]
			p.pending = text[len(text)-keep:]
			text = ""
		} else {
			if pos := strings.Index(text, thinkCloseTag); pos >= 0 {
				thinkingDelta += text[:pos]
				p.block += text[:pos]
				p.closed = p.block
				p.active = false
				closed = true
				text = text[pos+len(thinkCloseTag):]
				continue
			}
			keep := partialTagSuffix(text, thinkCloseTag)
			thinkingDelta += text[:len(text)-keep]
			p.block += text[:len(text)-keep]
			p.pending = text[len(text)-keep:]
			text = ""
		}
	}

	p.visible += visibleDelta
	return thinkingDelta, visibleDelta, opened, closed
}

// Flush releases whatever partial tag match is still pending once the stream
// has ended. An unfinished match cannot complete anymore, so it belongs to
// whichever side of the split was active.
func (p *ThinkingProcessor) Flush() (thinkingDelta, visibleDelta string) {
	if p.pending == "" {
		return "", ""
	}
	tail := p.pending
	p.pending = ""
	if p.active {
		p.block += tail
		return tail, ""
	}
	p.visible += tail
	return "", tail
}

// Active reports whether a thinking block is currently open.
func (p *ThinkingProcessor) Active() bool {
	return p.active
}

// Visible returns all visible text accumulated this turn.
func (p *ThinkingProcessor) Visible() string {
	return p.visible
}

// Thinking returns the content of the most recently closed thinking block.
func (p *ThinkingProcessor) Thinking() string {
	return p.closed
}

// Reset clears all accumulated and transient state. Call it at the start of
// each new chat turn.
func (p *ThinkingProcessor) Reset() {
	p.active = false
	p.pending = ""
	p.block = ""
	p.closed = ""
	p.visible = ""
}

// partialTagSuffix returns the length of the longest proper prefix of tag
// that the text ends with. That suffix might become a full tag once the next
// fragment arrives, so it must not be emitted yet.
func partialTagSuffix(text, tag string) int {
	max := len(tag) - 1
	if max > len(text) {
		max = len(text)
	}
	for n := max; n > 0; n-- {
		if strings.HasSuffix(text, tag[:n]) {
			return n
		}
	}
	return 0
}
