package data

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestConfigStoreDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg := NewConfigStore()
	if cfg.Host() != DefaultHost {
		t.Errorf("Expected default host %q, got %q", DefaultHost, cfg.Host())
	}
	if cfg.Timeout() != DefaultTimeoutSecs*time.Second {
		t.Errorf("Expected default timeout, got %v", cfg.Timeout())
	}
	if cfg.Temperature() != DefaultTemperature {
		t.Errorf("Expected default temperature, got %v", cfg.Temperature())
	}
	if cfg.Markdown() {
		t.Error("Markdown must default to off")
	}
	if !cfg.Think() {
		t.Error("Thinking must default to on")
	}
}

func TestConfigStoreOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("host", "http://remote:11434")
	viper.Set("timeout", 12.5)
	viper.Set("default.temperature", 1.2)
	viper.Set("default.markdown", "on")
	viper.Set("default.think", false)
	viper.Set("default.system_prompt", "Be brief.")

	cfg := NewConfigStore()
	if cfg.Host() != "http://remote:11434" {
		t.Errorf("Host override not applied: %q", cfg.Host())
	}
	if cfg.Timeout() != 12500*time.Millisecond {
		t.Errorf("Timeout override not applied: %v", cfg.Timeout())
	}
	if cfg.Temperature() != 1.2 {
		t.Errorf("Temperature override not applied: %v", cfg.Temperature())
	}
	if !cfg.Markdown() {
		t.Error("Markdown override not applied")
	}
	if cfg.Think() {
		t.Error("Think override not applied")
	}
	if cfg.SystemPrompt() != "Be brief." {
		t.Errorf("System prompt override not applied: %q", cfg.SystemPrompt())
	}
}
