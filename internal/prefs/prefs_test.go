package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/vista/internal/style"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p := Load("")
	assert.Equal(t, style.DefaultPalette, p.Palette)
	assert.Empty(t, p.Language)
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "vista")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prefs.toml"), []byte("palette = \"Slate\"\nlanguage = \"zh\"\n"), 0o644))

	p := Load("")
	assert.Equal(t, "Slate", p.Palette)
	assert.Equal(t, "zh", p.Language)
}

func TestLoad_DegradesGracefully(t *testing.T) {
	tests := []struct {
		name, content string
	}{
		{"invalid toml", "palette = "},
		{"blank palette", "palette = \"  \"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prefs.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			assert.Equal(t, style.DefaultPalette, Load(path).Palette)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")

	require.NoError(t, Save(path, Prefs{Palette: "Kanagawa", Language: "en"}))
	assert.Equal(t, Prefs{Palette: "Kanagawa", Language: "en"}, Load(path))
}
