package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/five82/vista/internal/app"
	"github.com/five82/vista/internal/config"
	"github.com/five82/vista/internal/control"
	"github.com/five82/vista/internal/events"
	"github.com/five82/vista/internal/templates"
)

var CLI struct {
	Config  string `short:"c" help:"Config file path" default:"~/.config/vista/config.toml"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Play struct {
		Template     string `short:"t" help:"Named template (see 'vista templates')"`
		TemplateFile string `short:"f" help:"TOML or YAML template file, reloaded on change" type:"path"`
		Device       string `short:"d" help:"Device class: desktop or mobile"`
		Prefs        string `help:"Preferences file path"`
		Inline       bool   `help:"Stay on the main screen; fullscreen is simulated"`
	} `cmd:"" default:"withargs" help:"Run the player chrome (default)"`

	Templates struct{} `cmd:"" help:"List the built-in templates"`
	Controls  struct{} `cmd:"" help:"List the control icon ids usable in templates"`
	Events    struct{} `cmd:"" help:"Print the event vocabulary"`
}

func main() {
	os.Exit(run())
}

func run() int {
	kctx := kong.Parse(&CLI,
		kong.Name("vista"),
		kong.Description("Terminal video-player chrome."),
	)

	switch kctx.Command() {
	case "templates":
		for _, name := range templates.Names() {
			fmt.Println(name)
		}
		return 0
	case "controls":
		for _, id := range control.IconIDs() {
			fmt.Println(id)
		}
		return 0
	case "events":
		for _, name := range events.Vocabulary() {
			fmt.Println(name)
		}
		return 0
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "vista: %v\n", err)
		return 1
	}

	logger, closeLog, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vista: %v\n", err)
		return 1
	}
	defer closeLog()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err = app.Run(ctx, app.Options{
		Config:      cfg,
		PrefsPath:   CLI.Play.Prefs,
		NoAltScreen: CLI.Play.Inline,
		Logger:      logger,
	})
	if err != nil {
		logger.Error("vista failed", "error", err)
		fmt.Fprintf(os.Stderr, "vista: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(CLI.Play.Template); v != "" {
		cfg.Template = v
	}
	if v := strings.TrimSpace(CLI.Play.TemplateFile); v != "" {
		path, err := config.ExpandPath(v)
		if err != nil {
			return config.Config{}, fmt.Errorf("template file: %w", err)
		}
		cfg.TemplateFile = path
	}
	switch v := strings.ToLower(strings.TrimSpace(CLI.Play.Device)); v {
	case "":
	case config.DeviceDesktop, config.DeviceMobile:
		cfg.Device = v
	default:
		return config.Config{}, fmt.Errorf("--device %q: want desktop or mobile", CLI.Play.Device)
	}
	if CLI.Verbose {
		cfg.LogLevel = slog.LevelDebug
	}
	return cfg, nil
}

// setupLogging opens the log file. The terminal belongs to the UI, so
// nothing is logged to stdout or stderr.
func setupLogging(cfg config.Config) (*slog.Logger, func(), error) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, opts)), func() { _ = f.Close() }, nil
}
