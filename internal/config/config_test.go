package config_test

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vangoframework/vpmshell/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func TestLoadEnvDefaults(t *testing.T) {
	cfg, err := config.LoadEnv(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "en", cfg.Lang)
	assert.Equal(t, "VPM Shell", cfg.Title)
	assert.Equal(t, "Noto Sans JP", cfg.FontFamily)
	assert.Equal(t, []string{"latin"}, cfg.FontSubsets)
	assert.Equal(t, "file:vpmshell.db", cfg.DatabaseURL)
	assert.Equal(t, 365*24*time.Hour, cfg.PrefsMaxAge)
	assert.Equal(t, 500, cfg.LogBufferSize)
	assert.Equal(t, "swap", cfg.FontDisplay)
	assert.Empty(t, cfg.FontWeights)
	assert.Empty(t, cfg.FontFallback)
	assert.NotEmpty(t, cfg.PackageCacheDir)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	// development generates an ephemeral secret
	assert.Len(t, cfg.PrefsSecret, 64)
}

func TestLoadEnvOverrides(t *testing.T) {
	cfg, err := config.LoadEnv(map[string]string{
		"PORT":                "9000",
		"SHELL_LANG":          "ja-jp",
		"SHELL_FONT_SUBSETS":  "latin,japanese",
		"SHELL_FONT_LOCAL":    "true",
		"SHELL_FONT_WEIGHTS":  "400,700",
		"SHELL_FONT_DISPLAY":  "optional",
		"SHELL_FONT_FALLBACK": "Meiryo,sans-serif",
		"PACKAGE_CACHE_DIR":   "/var/cache/vpm",
		"PREFS_SECRET":        testSecret,
		"LOG_LEVEL":           "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "ja-JP", cfg.Lang)
	assert.Equal(t, []string{"latin", "japanese"}, cfg.FontSubsets)
	assert.True(t, cfg.FontLocal)
	assert.Equal(t, []string{"400", "700"}, cfg.FontWeights)
	assert.Equal(t, "optional", cfg.FontDisplay)
	assert.Equal(t, []string{"Meiryo", "sans-serif"}, cfg.FontFallback)
	assert.Equal(t, "/var/cache/vpm", cfg.PackageCacheDir)
	assert.Equal(t, testSecret, cfg.PrefsSecret)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadEnvRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		wantErr error
	}{
		{"bad lang", map[string]string{"SHELL_LANG": "not a tag!"}, config.ErrInvalidLang},
		{"production without secret", map[string]string{"ENVIRONMENT": "production"}, config.ErrMissingSecret},
		{"short secret", map[string]string{"PREFS_SECRET": "short"}, config.ErrShortSecret},
		{"zero buffer", map[string]string{"LOG_BUFFER_SIZE": "0"}, config.ErrInvalidBufferSize},
		{"bad level", map[string]string{"LOG_LEVEL": "loud"}, config.ErrInvalidLogLevel},
		{"bad font display", map[string]string{"SHELL_FONT_DISPLAY": "eventually"}, config.ErrInvalidDisplay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadEnv(tt.vars)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadEnvRejectsMalformedNumbers(t *testing.T) {
	_, err := config.LoadEnv(map[string]string{"LOG_BUFFER_SIZE": "many"})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parse env"))
}
