package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	verrors "github.com/five82/vista/internal/errors"
)

// Device classes.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
)

// Config is the resolved vista configuration.
type Config struct {
	Language        string
	Device          string
	Template        string
	TemplateFile    string
	Poster          string
	PlayerAPI       string
	PlayerStateFile string
	PollInterval    time.Duration
	ResizeDebounce  time.Duration
	AutoHide        time.Duration
	LogFile         string
	LogLevel        slog.Level
	MetricsAddr     string
	Width           int
	Height          int
}

const (
	defaultConfigPath     = "~/.config/vista/config.toml"
	defaultLogFile        = "~/.local/state/vista/vista.log"
	defaultLanguage       = "en"
	defaultPollSeconds    = 1
	defaultResizeDebounce = 120
)

type fileConfig struct {
	Language         string `toml:"language"`
	Device           string `toml:"device"`
	Template         string `toml:"template"`
	TemplateFile     string `toml:"template_file"`
	Poster           string `toml:"poster"`
	PlayerAPI        string `toml:"player_api"`
	PlayerStateFile  string `toml:"player_state_file"`
	PollSeconds      int    `toml:"poll_seconds"`
	ResizeDebounceMS int    `toml:"resize_debounce_ms"`
	AutoHideSeconds  int    `toml:"auto_hide_seconds"`
	LogFile          string `toml:"log_file"`
	LogLevel         string `toml:"log_level"`
	MetricsAddr      string `toml:"metrics_addr"`
	Width            int    `toml:"width"`
	Height           int    `toml:"height"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Language:       defaultLanguage,
		Device:         DeviceDesktop,
		PollInterval:   defaultPollSeconds * time.Second,
		ResizeDebounce: defaultResizeDebounce * time.Millisecond,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       slog.LevelInfo,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(bytes)
}

// Parse decodes TOML config data and applies defaults to blank values.
func Parse(data []byte) (Config, error) {
	var raw fileConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	if v := strings.TrimSpace(raw.Language); v != "" {
		cfg.Language = v
	}
	if v := strings.ToLower(strings.TrimSpace(raw.Device)); v != "" {
		if v != DeviceDesktop && v != DeviceMobile {
			return Config{}, verrors.Config("config", verrors.ErrInvalidValue, "device %q: want desktop or mobile", raw.Device)
		}
		cfg.Device = v
	}
	cfg.Template = strings.TrimSpace(raw.Template)
	cfg.Poster = strings.TrimSpace(raw.Poster)
	cfg.PlayerAPI = strings.TrimSpace(raw.PlayerAPI)
	cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)

	if v := strings.TrimSpace(raw.TemplateFile); v != "" {
		cfg.TemplateFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.PlayerStateFile); v != "" {
		cfg.PlayerStateFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, verrors.Config("config", verrors.ErrInvalidValue, "log_level %q", v)
		}
	}

	for name, n := range map[string]int{
		"poll_seconds":       raw.PollSeconds,
		"resize_debounce_ms": raw.ResizeDebounceMS,
		"auto_hide_seconds":  raw.AutoHideSeconds,
		"width":              raw.Width,
		"height":             raw.Height,
	} {
		if n < 0 {
			return Config{}, verrors.Config("config", verrors.ErrInvalidRange, "%s must not be negative", name)
		}
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}
	if raw.ResizeDebounceMS > 0 {
		cfg.ResizeDebounce = time.Duration(raw.ResizeDebounceMS) * time.Millisecond
	}
	cfg.AutoHide = time.Duration(raw.AutoHideSeconds) * time.Second
	cfg.Width = raw.Width
	cfg.Height = raw.Height

	return cfg, nil
}

// Mobile reports whether the device class is mobile.
func (c Config) Mobile() bool {
	return c.Device == DeviceMobile
}

// DefaultPath returns the unexpanded default config path.
func DefaultPath() string {
	return defaultConfigPath
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and makes the path absolute.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
