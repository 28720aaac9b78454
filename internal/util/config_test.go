package util

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.SplashDelay)
	assert.Equal(t, 800*time.Millisecond, cfg.StepInterval)
	assert.Equal(t, "en", cfg.Locale)
	assert.True(t, cfg.IsDev())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	raw := "locale = \"ceb\"\ntheme = \"night\"\nsplash_delay = \"1s\"\nskip_onboarding = true\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
	t.Setenv("LAAG_THEME", "day")
	t.Setenv("LAAG_STEP_INTERVAL", "250ms")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ceb", cfg.Locale)
	assert.Equal(t, "day", cfg.Theme, "environment overrides the file")
	assert.Equal(t, time.Second, cfg.SplashDelay)
	assert.Equal(t, 250*time.Millisecond, cfg.StepInterval)
	assert.True(t, cfg.SkipOnboarding)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("locale = "), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.Locale = "fr"
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.TipInterval = 0
	assert.Error(t, cfg.Validate())

	assert.NoError(t, Defaults().Validate())
}

func TestWriterLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, "warn")
	l.Info("hidden")
	l.Warn("shown", "k", "v")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, `"msg":"shown"`), out)

	l.SetRawLogLevel("bogus")
	assert.Equal(t, slog.LevelInfo, l.Level())
	assert.NoError(t, l.Close())
}
