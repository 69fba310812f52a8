package service

import (
	"fmt"
	"strconv"
	"time"
)

// ModelInfo describes one locally available model, as listed by /api/tags.
type ModelInfo struct {
	Name       string `json:"name"`
	Digest     string `json:"digest"`
	Size       int64  `json:"size"`
	ModifiedAt string `json:"modified_at"`
}

// ShortDigest returns the truncated digest used for display, like the
// daemon's own CLI does.
func (m ModelInfo) ShortDigest() string {
	if m.Digest == "" {
		return "-"
	}
	if len(m.Digest) > 12 {
		return m.Digest[:12]
	}
	return m.Digest
}

// RunningModel describes one model currently loaded in the daemon,
// as listed by /api/ps.
type RunningModel struct {
	Name      string `json:"name"`
	Digest    string `json:"digest"`
	Size      int64  `json:"size"`
	SizeVRAM  int64  `json:"size_vram"`
	ExpiresAt string `json:"expires_at"`
}

// Processor summarizes where the model is resident, mirroring `ollama ps`.
func (m RunningModel) Processor() string {
	switch {
	case m.Size == 0 || m.SizeVRAM == 0:
		return "CPU"
	case m.SizeVRAM >= m.Size:
		return "100% GPU"
	default:
		return fmt.Sprintf("%.0f%% GPU", float64(m.SizeVRAM)/float64(m.Size)*100)
	}
}

// ShortDigest returns the truncated digest for display.
func (m RunningModel) ShortDigest() string {
	if m.Digest == "" {
		return "-"
	}
	if len(m.Digest) > 12 {
		return m.Digest[:12]
	}
	return m.Digest
}

// FormatSize renders a byte count in human-readable units.
func FormatSize(size int64) string {
	if size == 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB", "GB", "TB"}
	value := float64(size)
	for _, unit := range units {
		if value < 1024 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.1f PB", value)
}

// FormatModified renders the daemon's RFC3339 modification timestamp as a
// short local date. Unparsable values are truncated rather than rejected.
func FormatModified(modified string) string {
	if modified == "" {
		return ""
	}
	if ts, err := time.Parse(time.RFC3339, modified); err == nil {
		return ts.Format("2006-01-02 15:04")
	}
	if len(modified) > 16 {
		return modified[:16]
	}
	return modified
}

// FormatExpires renders an /api/ps expiry timestamp as a relative duration,
// mirroring `ollama ps` output.
func FormatExpires(expires string) string {
	ts, err := time.Parse(time.RFC3339, expires)
	if err != nil {
		return expires
	}
	diff := time.Until(ts)
	if diff <= 0 {
		return "expired"
	}
	minutes := int(diff.Minutes())
	if minutes < 60 {
		return fmt.Sprintf("%d minutes from now", minutes)
	}
	return fmt.Sprintf("%d hours from now", minutes/60)
}

// ResolveModel maps a user-supplied identifier (a 1-based index into the
// model list or an exact model name) to a model name.
func ResolveModel(models []ModelInfo, arg string) (string, error) {
	if len(models) == 0 {
		return "", fmt.Errorf("no models available")
	}
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(models) {
			return "", fmt.Errorf("invalid model number %d, choose 1-%d", n, len(models))
		}
		return models[n-1].Name, nil
	}
	for _, m := range models {
		if m.Name == arg {
			return m.Name, nil
		}
	}
	return "", fmt.Errorf("model %q not found locally", arg)
}
