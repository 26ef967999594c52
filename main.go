package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/getlantern/systray"
	"github.com/lmittmann/tint"

	"github.com/evoleinik/fnkey/config"
	"github.com/evoleinik/fnkey/hotkey"
	"github.com/evoleinik/fnkey/internal/app"
	"github.com/evoleinik/fnkey/llm"
	"github.com/evoleinik/fnkey/paste"
	"github.com/evoleinik/fnkey/recorder"
	"github.com/evoleinik/fnkey/stt"
)

// Menu bar indicator titles.
const (
	titleIdle      = "○"
	titleRecording = "●"
)

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	if cfg.Transcription.APIKey == "" {
		slog.Error("no API key: set GROQ_API_KEY or transcription.api_key in the config file")
		os.Exit(1)
	}

	spec, err := hotkey.ParseSpec(cfg.Hotkey)
	if err != nil {
		slog.Error("invalid hotkey", "error", err)
		os.Exit(1)
	}

	// Prompts the system permission dialog on first launch. Without the
	// grant neither the key hook nor the paste keystroke can work.
	if !hotkey.IsAccessibilityEnabled(true) {
		slog.Warn("accessibility permission not granted; enable it in System Settings, then relaunch")
	}

	rec := recorder.New()
	svc := app.New(cfg, rec,
		stt.NewClient(stt.Config{
			BaseURL: cfg.Transcription.BaseURL,
			APIKey:  cfg.Transcription.APIKey,
			Model:   cfg.Transcription.Model,
		}),
		llm.NewCompleter(llm.Config{
			BaseURL: cfg.Polish.BaseURL,
			APIKey:  cfg.Polish.APIKey,
			Model:   cfg.Polish.Model,
		}),
		paste.NewSystemSink())

	monitor := hotkey.NewMonitor(spec, hotkey.Handlers{
		Down: svc.HandleHotkeyDown,
		Up:   svc.HandleHotkeyUp,
	})

	systray.Run(func() { onReady(rec, monitor) }, func() { monitor.Stop() })
}

func onReady(rec *recorder.Recorder, monitor *hotkey.Monitor) {
	systray.SetTitle(titleIdle)
	systray.SetTooltip("fnkey dictation")

	rec.OnIndicator = func(recording bool) {
		if recording {
			systray.SetTitle(titleRecording)
		} else {
			systray.SetTitle(titleIdle)
		}
	}

	quit := systray.AddMenuItem("Quit fnkey", "Stop dictation and exit")
	go func() {
		<-quit.ClickedCh
		systray.Quit()
	}()

	if err := monitor.Start(); err != nil {
		slog.Error("start hotkey monitor", "error", err)
		systray.Quit()
	}
}
