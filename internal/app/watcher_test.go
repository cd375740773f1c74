package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/vista/internal/templates"
)

const watchedTemplate = `
name = "studio"

[[header.items]]
iconId = "deviceName"

[[footer.items]]
iconId = "play"
`

func writeTemplate(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func receive(t *testing.T, ch <-chan *templates.Data) *templates.Data {
	t.Helper()
	select {
	case d := <-ch:
		return d
	case <-time.After(2 * time.Second):
		t.Fatal("no template published")
		return nil
	}
}

func TestTemplateWatcher_DebouncesBursts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.toml")
	writeTemplate(t, path, watchedTemplate)

	clock := clockwork.NewFakeClock()
	w, err := NewTemplateWatcher(path, clock, time.Second, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	w.trigger()
	clock.Advance(500 * time.Millisecond)
	w.trigger()
	clock.Advance(500 * time.Millisecond)
	w.trigger()
	assert.Empty(t, w.Templates())

	clock.Advance(time.Second)
	d := receive(t, w.Templates())
	assert.Equal(t, "studio", d.Name)

	select {
	case extra := <-w.Templates():
		t.Fatalf("unexpected second reload: %v", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTemplateWatcher_ReloadsOnWrite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	path := filepath.Join(dir, "studio.toml")
	writeTemplate(t, path, watchedTemplate)

	w, err := NewTemplateWatcher(path, nil, 50*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))
	t.Cleanup(func() { _ = w.Close() })

	// Unrelated files in the directory are ignored.
	writeTemplate(t, filepath.Join(dir, "other.toml"), watchedTemplate)
	writeTemplate(t, path, watchedTemplate+"\n[[footer.items]]\niconId = \"sound\"\npart = \"right\"\n")

	d := receive(t, w.Templates())
	require.Len(t, d.Footer.Items, 2)
	assert.Equal(t, "sound", d.Footer.Items[1].IconID)
}

func TestTemplateWatcher_KeepsLatestUnread(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.toml")
	writeTemplate(t, path, watchedTemplate)

	w, err := NewTemplateWatcher(path, clockwork.NewFakeClock(), 0, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	w.publish(&templates.Data{Name: "first"})
	w.publish(&templates.Data{Name: "second"})
	assert.Equal(t, "second", receive(t, w.Templates()).Name)
}

func TestTemplateWatcher_BadFileIsNotPublished(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.toml")
	writeTemplate(t, path, "name = [")

	w, err := NewTemplateWatcher(path, clockwork.NewFakeClock(), 0, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	w.reload()
	assert.Empty(t, w.Templates())
}
