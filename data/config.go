package data

import (
	"time"

	"github.com/spf13/viper"
)

// Defaults applied when a key is absent from the config file.
const (
	DefaultHost        = "http://localhost:11434"
	DefaultTimeoutSecs = 300
	DefaultTemperature = 0.7
)

// ConfigStore provides typed access to matollama.yaml configuration.
// It wraps viper internally and exposes only typed accessors, so no
// interface{} values leak to other layers.
type ConfigStore struct {
	v *viper.Viper
}

// NewConfigStore creates a ConfigStore over the viper configuration the root
// command has already loaded.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{v: viper.GetViper()}
}

// Host returns the daemon base URL.
func (c *ConfigStore) Host() string {
	if host := c.v.GetString("host"); host != "" {
		return host
	}
	return DefaultHost
}

// Timeout returns the request timeout for daemon calls.
func (c *ConfigStore) Timeout() time.Duration {
	if secs := c.v.GetFloat64("timeout"); secs > 0 {
		return time.Duration(secs * float64(time.Second))
	}
	return DefaultTimeoutSecs * time.Second
}

// Temperature returns the default sampling temperature for new sessions.
func (c *ConfigStore) Temperature() float64 {
	if c.v.IsSet("default.temperature") {
		return c.v.GetFloat64("default.temperature")
	}
	return DefaultTemperature
}

// Markdown reports whether finished answers get a markdown re-render.
func (c *ConfigStore) Markdown() bool {
	return c.v.GetString("default.markdown") == "on"
}

// Think reports whether thinking-tag splitting starts enabled.
func (c *ConfigStore) Think() bool {
	if c.v.IsSet("default.think") {
		return c.v.GetBool("default.think")
	}
	return true
}

// SystemPrompt returns the default system prompt for new sessions.
func (c *ConfigStore) SystemPrompt() string {
	return c.v.GetString("default.system_prompt")
}
