// Package main is the entry point for Gotham Story.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/gotham-story/internal/app"
	"github.com/Faultbox/gotham-story/internal/config"
	"github.com/Faultbox/gotham-story/internal/engine/audio"
	"github.com/Faultbox/gotham-story/internal/engine/debug"
	"github.com/Faultbox/gotham-story/internal/engine/loop"
	"github.com/Faultbox/gotham-story/internal/engine/renderer"
	"github.com/Faultbox/gotham-story/internal/engine/ui2d"
	"github.com/Faultbox/gotham-story/internal/engine/window"
	"github.com/Faultbox/gotham-story/internal/logger"
	"github.com/Faultbox/gotham-story/internal/page"
	"github.com/Faultbox/gotham-story/internal/story"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Gotham Story ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("fatal", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("closed normally")
}

func run(cfg *config.Config) error {
	var sections []story.SectionConfig
	if path := cfg.Story.SectionsFile; path != "" {
		var err error
		if sections, err = story.LoadSections(path); err != nil {
			return fmt.Errorf("loading sections: %w", err)
		}
	}

	seed := cfg.Story.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	win, err := window.New(window.Config{
		Title:      app.Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	// Renderers need the window's GL context.
	scenes, err := renderer.New()
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer scenes.Close()

	overlay, err := ui2d.New()
	if err != nil {
		return fmt.Errorf("failed to create overlay renderer: %w", err)
	}
	defer overlay.Close()

	opts := app.Options{
		Window:      win,
		Scenes:      scenes,
		Overlay:     overlay,
		Screenshots: debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "gotham"),
		Sections:    sections,
		Rand:        rand.New(rand.NewSource(seed)),
		Drift:       story.DriftMode(cfg.Story.Drift),
		QuietPeriod: cfg.Scroll.QuietPeriod,
		WheelStep:   cfg.Scroll.WheelStep,
		Controls: page.Controls{
			Glow:   cfg.UI.GlowButton,
			Signal: cfg.UI.SignalButton,
		},
	}

	// Muted starts silent; the mute key can still turn the siren on.
	sound := audio.New()
	sound.SetMasterVolume(float64(cfg.Audio.MasterVolume))
	sound.SetSFXVolume(float64(cfg.Audio.SFXVolume))
	sound.SetMuted(cfg.Audio.Muted)
	if err := sound.Init(); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
	} else {
		defer sound.Close()
		opts.Siren = sound
	}

	a, err := app.New(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l := loop.New(a.Frame)
	if cfg.Debug.ShowFPS {
		l.Report = func() []zap.Field {
			s := scenes.Stats()
			return []zap.Field{
				zap.Int("scenes", s.Scenes),
				zap.Int("draw_calls", s.DrawCalls),
				zap.Int("shadow_calls", s.ShadowCalls),
				zap.Int("triangles", s.Triangles),
			}
		}
	}
	if err := l.Run(ctx); err != nil && !errors.Is(err, app.ErrQuit) {
		return fmt.Errorf("frame loop: %w", err)
	}
	logger.Info("frames rendered", zap.Uint64("count", l.Frames()))
	return nil
}
