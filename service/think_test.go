package service

import (
	"testing"
)

func TestThinkingProcessor_SingleFragment(t *testing.T) {
	p := NewThinkingProcessor()

	thinking, visible, opened, closed := p.ProcessChunk("A<think>B</think>C")
	if !opened || !closed {
		t.Errorf("Expected opened and closed in one call, got opened=%v closed=%v", opened, closed)
	}
	if thinking != "B" {
		t.Errorf("Expected thinking delta 'B', got %q", thinking)
	}
	if visible != "AC" {
		t.Errorf("Expected visible delta 'AC', got %q", visible)
	}
	if p.Visible() != "AC" {
		t.Errorf("Expected accumulated visible 'AC', got %q", p.Visible())
	}
	if p.Thinking() != "B" {
		t.Errorf("Expected thinking content 'B', got %q", p.Thinking())
	}
}

func TestThinkingProcessor_OpenTagSplitAcrossFragments(t *testing.T) {
	p := NewThinkingProcessor()

	// "A<th" ends with a possible open-tag prefix; it must be held back, not
	// shown as visible text.
	_, visible, opened, _ := p.ProcessChunk("A<th")
	if visible != "A" {
		t.Errorf("Expected only 'A' visible before tag resolves, got %q", visible)
	}
	if opened {
		t.Error("Block must not open on a partial tag")
	}

	thinking, visible, opened, closed := p.ProcessChunk("ink>B</think>C")
	if !opened || !closed {
		t.Errorf("Expected open and close on second chunk, got opened=%v closed=%v", opened, closed)
	}
	if thinking != "B" {
		t.Errorf("Expected thinking delta 'B', got %q", thinking)
	}
	if visible != "C" {
		t.Errorf("Expected visible delta 'C', got %q", visible)
	}

	// Final state matches the single-fragment case exactly.
	if p.Visible() != "AC" || p.Thinking() != "B" {
		t.Errorf("Expected visible 'AC' / thinking 'B', got %q / %q", p.Visible(), p.Thinking())
	}
}

func TestThinkingProcessor_CloseTagSplitAcrossFragments(t *testing.T) {
	p := NewThinkingProcessor()

	p.ProcessChunk("<think>reasoning</th")
	thinking, visible, _, closed := p.ProcessChunk("ink>answer")
	if !closed {
		t.Error("Expected close on second chunk")
	}
	if thinking != "" {
		t.Errorf("Expected no extra thinking delta, got %q", thinking)
	}
	if visible != "answer" {
		t.Errorf("Expected visible 'answer', got %q", visible)
	}
	if p.Thinking() != "reasoning" {
		t.Errorf("Expected thinking 'reasoning', got %q", p.Thinking())
	}
}

func TestThinkingProcessor_NoTags(t *testing.T) {
	p := NewThinkingProcessor()

	thinking, visible, opened, closed := p.ProcessChunk("plain answer text")
	if opened || closed || thinking != "" {
		t.Errorf("Untagged text must pass through, got thinking=%q opened=%v closed=%v", thinking, opened, closed)
	}
	if visible != "plain answer text" {
		t.Errorf("Expected input unchanged, got %q", visible)
	}
	if p.Thinking() != "" {
		t.Errorf("Expected empty thinking content, got %q", p.Thinking())
	}
}

func TestThinkingProcessor_MultipleBlocksKeepsLast(t *testing.T) {
	p := NewThinkingProcessor()

	p.ProcessChunk("<think>first</think>A<think>second</think>B")
	if p.Thinking() != "second" {
		t.Errorf("Expected most recently closed block 'second', got %q", p.Thinking())
	}
	if p.Visible() != "AB" {
		t.Errorf("Expected visible 'AB', got %q", p.Visible())
	}
}

func TestThinkingProcessor_FlushReleasesPendingTail(t *testing.T) {
	p := NewThinkingProcessor()

	// "<th" alone could still become an open tag; the stream ends before it
	// resolves, so Flush must hand it back as visible text.
	_, visible, _, _ := p.ProcessChunk("text<th")
	if visible != "text" {
		t.Errorf("Expected 'text' visible, got %q", visible)
	}
	thinking, visible := p.Flush()
	if thinking != "" || visible != "<th" {
		t.Errorf("Expected flushed visible '<th', got thinking=%q visible=%q", thinking, visible)
	}

	// Inside a block, an unresolved close-tag prefix belongs to thinking.
	p.Reset()
	p.ProcessChunk("<think>deep</t")
	thinking, visible = p.Flush()
	if thinking != "</t" || visible != "" {
		t.Errorf("Expected flushed thinking '</t', got thinking=%q visible=%q", thinking, visible)
	}
}

func TestThinkingProcessor_Reset(t *testing.T) {
	p := NewThinkingProcessor()
	p.ProcessChunk("A<think>B")

	p.Reset()
	if p.Active() || p.Visible() != "" || p.Thinking() != "" {
		t.Error("Reset must clear all accumulated and transient state")
	}

	_, visible, _, _ := p.ProcessChunk("fresh")
	if visible != "fresh" || p.Visible() != "fresh" {
		t.Errorf("Expected clean state after reset, got delta %q total %q", visible, p.Visible())
	}
}

func TestPartialTagSuffix(t *testing.T) {
	tests := []struct {
		text string
		tag  string
		want int
	}{
		{"abc<", "<think>", 1},
		{"abc<th", "<think>", 3},
		{"abc<think", "<think>", 6},
		{"abc", "<think>", 0},
		{"", "<think>", 0},
		{"<", "<think>", 1},
		{"x</thin", "</think>", 6},
		{"no match>", "</think>", 0},
	}
	for _, tt := range tests {
		if got := partialTagSuffix(tt.text, tt.tag); got != tt.want {
			t.Errorf("partialTagSuffix(%q, %q) = %d, want %d", tt.text, tt.tag, got, tt.want)
		}
	}
}
