// Package config handles application configuration loading and management.
package config

import "time"

// Config holds all application settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Story    StoryConfig    `yaml:"story"`
	Scroll   ScrollConfig   `yaml:"scroll"`
	UI       UIConfig       `yaml:"ui"`
	Audio    AudioConfig    `yaml:"audio"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// StoryConfig holds main scene settings.
type StoryConfig struct {
	SectionsFile string `yaml:"sections_file"` // Optional YAML section table
	Drift        string `yaml:"drift"`         // "baseline" or "accumulate"
	Seed         int64  `yaml:"seed"`          // 0 seeds from the clock
}

// ScrollConfig holds page scrolling settings.
type ScrollConfig struct {
	QuietPeriod time.Duration `yaml:"quiet_period"`
	WheelStep   float64       `yaml:"wheel_step"`
}

// UIConfig toggles the optional page controls.
type UIConfig struct {
	GlowButton   bool `yaml:"glow_button"`
	SignalButton bool `yaml:"signal_button"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"`
	ShowFPS       bool   `yaml:"show_fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Story: StoryConfig{
			Drift: "baseline",
		},
		Scroll: ScrollConfig{
			QuietPeriod: 100 * time.Millisecond,
			WheelStep:   100,
		},
		UI: UIConfig{
			GlowButton:   true,
			SignalButton: true,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    0.8,
			Muted:        false,
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
