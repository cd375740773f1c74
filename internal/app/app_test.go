package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/vista/internal/config"
	verrors "github.com/five82/vista/internal/errors"
	"github.com/five82/vista/internal/events"
	"github.com/five82/vista/internal/metrics"
	"github.com/five82/vista/internal/player"
	"github.com/five82/vista/internal/templates"
)

func TestSelectTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.toml")
	require.NoError(t, os.WriteFile(path, []byte(watchedTemplate), 0o644))

	tests := []struct {
		name string
		mod  func(*config.Config)
		want string
	}{
		{"desktop default", func(*config.Config) {}, templates.PCLive},
		{"mobile default", func(c *config.Config) { c.Device = config.DeviceMobile }, templates.MobileLive},
		{"named", func(c *config.Config) { c.Template = templates.PCRec }, templates.PCRec},
		{"file wins over name", func(c *config.Config) {
			c.Template = templates.PCRec
			c.TemplateFile = path
		}, "studio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mod(&cfg)
			d, err := selectTemplate(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Name)
		})
	}
}

func TestSelectTemplate_Errors(t *testing.T) {
	cfg := config.Default()
	cfg.Template = "kiosk"
	_, err := selectTemplate(cfg)
	require.Error(t, err)
	assert.True(t, verrors.Is(err, verrors.CategoryConfig))

	cfg = config.Default()
	cfg.TemplateFile = filepath.Join(t.TempDir(), "missing.toml")
	_, err = selectTemplate(cfg)
	assert.Error(t, err)
}

func TestSelectSource(t *testing.T) {
	cfg := config.Default()
	src, err := selectSource(cfg)
	require.NoError(t, err)
	assert.Nil(t, src)

	cfg.PlayerStateFile = "/tmp/player.jsonl"
	src, err = selectSource(cfg)
	require.NoError(t, err)
	assert.Equal(t, &player.File{Path: "/tmp/player.jsonl"}, src)

	cfg.PlayerAPI = "127.0.0.1:7487"
	src, err = selectSource(cfg)
	require.NoError(t, err)
	assert.IsType(t, &player.Client{}, src)
}

func TestServeMetrics(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := metrics.NewPrometheusRecorder(nil)
	rec.IncEvent("theme", events.Name("Theme.resize"), 2)

	addr, err := serveMetrics(ctx, "127.0.0.1:0", rec.Handler(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	resp, err := http.Get("http://" + addr.String() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "vista_events_emitted_total")

	_, err = serveMetrics(ctx, addr.String(), rec.Handler(), slog.Default())
	assert.Error(t, err, "busy port fails fast")
}
