package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/five82/vista/internal/config"
	verrors "github.com/five82/vista/internal/errors"
	"github.com/five82/vista/internal/metrics"
	"github.com/five82/vista/internal/player"
	"github.com/five82/vista/internal/prefs"
	"github.com/five82/vista/internal/state"
	"github.com/five82/vista/internal/templates"
	"github.com/five82/vista/internal/theme"
	"github.com/five82/vista/internal/ui"
)

// Options configure the vista application.
type Options struct {
	Config    config.Config
	PrefsPath string // empty uses default ~/.config/vista/prefs.toml
	// NoAltScreen keeps the chrome inline; fullscreen is then simulated.
	NoAltScreen bool
	Logger      *slog.Logger
}

// Run boots the vista TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)
	lang := cfg.Language
	if userPrefs.Language != "" {
		lang = userPrefs.Language
	}

	tmpl, err := selectTemplate(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	src, err := selectSource(cfg)
	if err != nil {
		return fmt.Errorf("init player source: %w", err)
	}
	var store *state.Store
	if src != nil {
		store = &state.Store{}
		StartPoller(ctx, store, src, cfg.PollInterval, logger)
	}

	var updates <-chan *templates.Data
	if cfg.TemplateFile != "" {
		w, err := NewTemplateWatcher(cfg.TemplateFile, nil, 0, logger)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			_ = w.Close()
			return err
		}
		defer w.Close()
		updates = w.Templates()
	}

	var rec metrics.Recorder
	if cfg.MetricsAddr != "" {
		pr := metrics.NewPrometheusRecorder(nil)
		if _, err := serveMetrics(ctx, cfg.MetricsAddr, pr.Handler(), logger); err != nil {
			return err
		}
		rec = pr
	}

	logger.Info("starting vista",
		"template", tmpl.Name,
		"device", cfg.Device,
		"lang", lang,
		"player_source", fmt.Sprintf("%T", src),
	)

	return ui.Run(ctx, ui.Options{
		Theme: theme.Options{
			Template:       tmpl,
			Mobile:         cfg.Mobile(),
			Lang:           lang,
			Poster:         cfg.Poster,
			Width:          cfg.Width,
			Height:         cfg.Height,
			ResizeDebounce: cfg.ResizeDebounce,
			AutoHide:       cfg.AutoHide,
			Recorder:       rec,
			Logger:         logger,
		},
		NoAltScreen: opts.NoAltScreen,
		Store:       store,
		Templates:   updates,
		PollTick:    cfg.PollInterval,
		Prefs:       userPrefs,
		PrefsPath:   prefsPath,
		Logger:      logger,
	})
}

// selectTemplate loads template_file when set, otherwise the named template
// or the device default.
func selectTemplate(cfg config.Config) (*templates.Data, error) {
	if cfg.TemplateFile != "" {
		d, err := templates.Load(cfg.TemplateFile)
		if err != nil {
			return nil, fmt.Errorf("load template file: %w", err)
		}
		return d, nil
	}
	name := cfg.Template
	if name == "" {
		name = templates.DefaultName(cfg.Mobile())
	}
	d, ok := templates.Named(name)
	if !ok {
		return nil, verrors.Config("template", verrors.ErrInvalidValue, "unknown template %q", name)
	}
	return d, nil
}

// selectSource prefers the player API over the state file. A nil source
// means no player feed is configured.
func selectSource(cfg config.Config) (player.Source, error) {
	switch {
	case cfg.PlayerAPI != "":
		return player.NewClient(cfg.PlayerAPI)
	case cfg.PlayerStateFile != "":
		return &player.File{Path: cfg.PlayerStateFile}, nil
	}
	return nil, nil
}
