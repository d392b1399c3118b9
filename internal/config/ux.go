package config

import "time"

// UIConfig holds terminal UI configuration.
type UIConfig struct {
	// LatchDuration disables the like/comment controls briefly after use.
	LatchDuration string `yaml:"latch_duration"`

	// RenderCaptions renders captions as markdown through glamour.
	RenderCaptions bool `yaml:"render_captions"`

	// Width caps the feed column (0 = terminal width)
	Width int `yaml:"width,omitempty"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		LatchDuration:  "300ms",
		RenderCaptions: true,
		Width:          80,
	}
}

// GetLatchDuration returns the control latch duration.
func (u UIConfig) GetLatchDuration() time.Duration {
	return parseDuration(u.LatchDuration, 300*time.Millisecond)
}
