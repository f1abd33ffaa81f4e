package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/carpicker/internal/common"
	"github.com/Veraticus/carpicker/internal/engine"
	"github.com/Veraticus/carpicker/internal/model"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, model.ModeRelevance, s.Engine.Mode)
	assert.InDelta(t, engine.DefaultTolerance, s.Engine.Tolerance, 1e-9)
	assert.Equal(t, model.DefaultTopK, s.Engine.TopK)
	assert.Equal(t, []string{DefaultCatalogPath, FallbackCatalogPath}, s.Catalog.Paths)
	assert.Equal(t, DefaultServerAddr, s.Server.Addr)
	assert.Equal(t, "*", s.Server.CORSOrigin)
	assert.InDelta(t, DefaultRateLimit, s.Server.RateLimit, 1e-9)
	assert.Equal(t, DefaultRateBurst, s.Server.RateBurst)
	assert.Equal(t, "info", s.Logging.Level)
	assert.Equal(t, "console", s.Logging.Format)
	assert.NotContains(t, s.Database.Path, "~")
	assert.True(t, filepath.IsAbs(s.Database.Path))
}

func TestLoad_Overrides(t *testing.T) {
	v := viper.New()
	v.Set(KeyEngineMode, "price")
	v.Set(KeyEngineTolerance, 0.05)
	v.Set(KeyEngineTopK, 5)
	v.Set(KeyCatalogPath, "/srv/catalogs/lexus.csv")
	v.Set(KeyDatabasePath, "/tmp/carpicker.db")
	v.Set(KeyLoggingLevel, "DEBUG")
	v.Set(KeyLoggingFormat, "json")

	s, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, model.ModeExhaustivePrice, s.Engine.Mode)
	assert.InDelta(t, 0.05, s.Engine.Tolerance, 1e-9)
	assert.Equal(t, 5, s.Engine.TopK)
	assert.Equal(t, []string{"/srv/catalogs/lexus.csv"}, s.Catalog.Paths)
	assert.Equal(t, "/tmp/carpicker.db", s.Database.Path)
	assert.Equal(t, "debug", s.Logging.Level)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`engine:
  tolerance: 0
  mode: exhaustive-price
server:
  addr: "127.0.0.1:9090"
  rate_limit: 0
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, model.ModeExhaustivePrice, s.Engine.Mode)
	assert.Zero(t, s.Engine.Tolerance)
	assert.Equal(t, "127.0.0.1:9090", s.Server.Addr)
	assert.Zero(t, s.Server.RateLimit)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		value   any
		name    string
		key     string
		wantErr error
	}{
		{name: "unknown mode", key: KeyEngineMode, value: "cheapest", wantErr: common.ErrInvalidConfig},
		{name: "tolerance too large", key: KeyEngineTolerance, value: 1.5, wantErr: common.ErrInvalidConfig},
		{name: "negative tolerance", key: KeyEngineTolerance, value: -0.1, wantErr: common.ErrInvalidConfig},
		{name: "negative top_k", key: KeyEngineTopK, value: -1, wantErr: common.ErrInvalidConfig},
		{name: "blank server addr", key: KeyServerAddr, value: "", wantErr: common.ErrMissingConfig},
		{name: "negative rate limit", key: KeyServerRateLimit, value: -2, wantErr: common.ErrInvalidConfig},
		{name: "zero burst", key: KeyServerRateBurst, value: 0, wantErr: common.ErrInvalidConfig},
		{name: "bad log level", key: KeyLoggingLevel, value: "loud", wantErr: common.ErrInvalidConfig},
		{name: "bad log format", key: KeyLoggingFormat, value: "xml", wantErr: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_TLS(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	v := viper.New()
	v.Set(KeyServerTLS, true)

	s, err := Load(v)
	require.NoError(t, err)
	assert.True(t, s.Server.TLS)
	assert.Equal(t, "/home/tester/.local/share/carpicker/certs", s.Server.CertDir)

	v.Set(KeyServerCertDir, "")
	_, err = Load(v)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestLoad_NilViper(t *testing.T) {
	_, err := Load(nil)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestDefaultConfigDir(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/.config/carpicker", dir)
}
