// File: cmd/utils_test.go
package cmd

import (
	"fmt"
	"strings"
	"testing"

	"github.com/maternion/matollama/service"
)

// captureRenderer collects everything the command helpers write, so table
// output can be asserted without a terminal.
type captureRenderer struct {
	b strings.Builder
}

func (r *captureRenderer) Writeln(args ...interface{}) {
	r.b.WriteString(fmt.Sprintln(args...))
}

func (r *captureRenderer) Writef(format string, args ...interface{}) {
	r.b.WriteString(fmt.Sprintf(format, args...))
}

func (r *captureRenderer) Write(args ...interface{}) {
	r.b.WriteString(fmt.Sprint(args...))
}

func withCapturedDisplay(t *testing.T) *captureRenderer {
	t.Helper()
	capture := &captureRenderer{}
	previous := display
	display = capture
	t.Cleanup(func() { display = previous })
	return capture
}

func TestRenderModelTable(t *testing.T) {
	capture := withCapturedDisplay(t)

	models := []service.ModelInfo{
		{Name: "llama3.1", Digest: "sha256:0123456789abcdef", Size: 4404019200, ModifiedAt: "2025-06-15T10:30:00Z"},
		{Name: "qwen3-thinking", Digest: "sha256:fedcba9876543210", Size: 1048576, ModifiedAt: "2025-06-01T08:00:00Z"},
	}
	renderModelTable(models, "qwen3-thinking")

	out := capture.b.String()
	for _, want := range []string{"llama3.1", "→ qwen3-thinking", "4.1 GB", "sha256:01234", "2025-06-15 10:30"} {
		if !strings.Contains(out, want) {
			t.Errorf("Table output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "1") || !strings.Contains(out, "2") {
		t.Errorf("Table output missing row numbers:\n%s", out)
	}
}

func TestRenderModelTable_Empty(t *testing.T) {
	capture := withCapturedDisplay(t)

	renderModelTable(nil, "")
	if !strings.Contains(capture.b.String(), "No models found") {
		t.Errorf("Expected empty-list hint, got:\n%s", capture.b.String())
	}
}

func TestRenderRunningTable(t *testing.T) {
	capture := withCapturedDisplay(t)

	models := []service.RunningModel{
		{Name: "llama3.1", Digest: "sha256:0123456789abcdef", Size: 1000, SizeVRAM: 1000, ExpiresAt: "1999-01-01T00:00:00Z"},
	}
	renderRunningTable(models)

	out := capture.b.String()
	for _, want := range []string{"llama3.1", "100% GPU", "expired"} {
		if !strings.Contains(out, want) {
			t.Errorf("Running table missing %q:\n%s", want, out)
		}
	}
}

func TestRenderRunningTable_Empty(t *testing.T) {
	capture := withCapturedDisplay(t)

	renderRunningTable(nil)
	if !strings.Contains(capture.b.String(), "No models currently running") {
		t.Errorf("Expected empty hint, got:\n%s", capture.b.String())
	}
}
