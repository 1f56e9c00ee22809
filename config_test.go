package sdftext

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.TabLength != 4 || c.LineSpacing != 1 || c.Fallback != FallbackSubstitute || c.Substitute != '?' {
		t.Errorf("DefaultConfig() = %+v", c)
	}
	if c.Wrapping.Mode != WrapNone || c.ScaleMode != ScaleNormal || c.Align != 0 {
		t.Errorf("DefaultConfig() = %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"soft wrap", func(c *Config) { c.Wrapping = SoftWrap(100) }, true},
		{"hard wrap zero width", func(c *Config) { c.Wrapping = HardWrap(0) }, false},
		{"softhard NaN width", func(c *Config) { c.Wrapping = SoftHardWrap(math.NaN()) }, false},
		{"unknown wrap mode", func(c *Config) { c.Wrapping.Mode = 9 }, false},
		{"quality", func(c *Config) { c.ScaleMode = ScaleQuality }, true},
		{"unknown scale mode", func(c *Config) { c.ScaleMode = -1 }, false},
		{"zero tab", func(c *Config) { c.TabLength = 0 }, true},
		{"negative tab", func(c *Config) { c.TabLength = -1 }, false},
		{"zero line spacing", func(c *Config) { c.LineSpacing = 0 }, false},
		{"infinite line spacing", func(c *Config) { c.LineSpacing = math.Inf(1) }, false},
		{"unknown fallback", func(c *Config) { c.Fallback = 7 }, false},
		{"non-ASCII substitute", func(c *Config) { c.Substitute = 'é' }, false},
		{"non-ASCII substitute with skip", func(c *Config) { c.Fallback, c.Substitute = FallbackSkip, 'é' }, true},
		{"right align", func(c *Config) { c.Align = 1 }, true},
		{"align over one", func(c *Config) { c.Align = 1.5 }, false},
		{"negative align", func(c *Config) { c.Align = -0.1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(&c)
			err := c.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{WrapSoftHard.String(), "SoftHard"},
		{WrapMode(42).String(), "WrapMode(42)"},
		{ScaleQuality.String(), "Quality"},
		{ScaleMode(3).String(), "ScaleMode(3)"},
		{FallbackSkip.String(), "Skip"},
		{FallbackPolicy(5).String(), "FallbackPolicy(5)"},
		{FormatAlpha8.String(), "Alpha8"},
		{PixelFormat(9).String(), "Unknown"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}
