package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/carpicker/internal/common"
	"github.com/Veraticus/carpicker/internal/engine"
	"github.com/Veraticus/carpicker/internal/model"
)

// Configuration keys.
const (
	KeyEngineTolerance  = "engine.tolerance"
	KeyEngineMode       = "engine.mode"
	KeyEngineTopK       = "engine.top_k"
	KeyCatalogPath      = "catalog.path"
	KeyDatabasePath     = "database.path"
	KeyServerAddr       = "server.addr"
	KeyServerCORSOrigin = "server.cors_origin"
	KeyServerRateLimit  = "server.rate_limit"
	KeyServerRateBurst  = "server.rate_burst"
	KeyServerTLS        = "server.tls"
	KeyServerCertDir    = "server.cert_dir"
	KeyLoggingLevel     = "logging.level"
	KeyLoggingFormat    = "logging.format"
)

// Default values for settings that are not configured.
const (
	DefaultCatalogPath  = "toyota.csv"
	FallbackCatalogPath = "data/toyota.csv"
	DefaultServerAddr   = ":8080"
	DefaultCORSOrigin   = "*"
	DefaultRateLimit    = 10.0
	DefaultRateBurst    = 20
	DefaultDatabasePath = "~/.local/share/carpicker/carpicker.db"
	DefaultCertDir      = "~/.local/share/carpicker/certs"
)

// Settings is the typed view of the carpicker configuration.
type Settings struct {
	Catalog  CatalogSettings
	Database DatabaseSettings
	Logging  LoggingSettings
	Server   ServerSettings
	Engine   engine.Config
}

// CatalogSettings locates the CSV catalog.
type CatalogSettings struct {
	// Paths are tried in order; the first existing file wins.
	Paths []string
}

// DatabaseSettings locates the SQLite catalog store.
type DatabaseSettings struct {
	Path string
}

// LoggingSettings configures the process-wide logger.
type LoggingSettings struct {
	Level  string
	Format string
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Addr       string
	CORSOrigin string
	CertDir    string
	RateLimit  float64
	RateBurst  int
	TLS        bool
}

// SetDefaults registers default values for every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyEngineTolerance, engine.DefaultTolerance)
	v.SetDefault(KeyEngineMode, string(model.ModeRelevance))
	v.SetDefault(KeyEngineTopK, model.DefaultTopK)
	v.SetDefault(KeyCatalogPath, DefaultCatalogPath)
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyServerAddr, DefaultServerAddr)
	v.SetDefault(KeyServerCORSOrigin, DefaultCORSOrigin)
	v.SetDefault(KeyServerRateLimit, DefaultRateLimit)
	v.SetDefault(KeyServerRateBurst, DefaultRateBurst)
	v.SetDefault(KeyServerTLS, false)
	v.SetDefault(KeyServerCertDir, DefaultCertDir)
	v.SetDefault(KeyLoggingLevel, "info")
	v.SetDefault(KeyLoggingFormat, "console")
}

// Load reads settings from v, applying defaults for anything unset, and
// validates the result.
func Load(v *viper.Viper) (*Settings, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: viper instance is nil", common.ErrMissingConfig)
	}
	SetDefaults(v)

	mode, err := model.ParseRankMode(v.GetString(KeyEngineMode), model.ModeRelevance)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, KeyEngineMode, err)
	}

	s := &Settings{
		Engine: engine.Config{
			Mode:      mode,
			Tolerance: v.GetFloat64(KeyEngineTolerance),
			TopK:      v.GetInt(KeyEngineTopK),
		},
		Catalog: CatalogSettings{
			Paths: catalogPaths(v.GetString(KeyCatalogPath)),
		},
		Database: DatabaseSettings{
			Path: ExpandPath(v.GetString(KeyDatabasePath)),
		},
		Server: ServerSettings{
			Addr:       v.GetString(KeyServerAddr),
			CORSOrigin: v.GetString(KeyServerCORSOrigin),
			RateLimit:  v.GetFloat64(KeyServerRateLimit),
			RateBurst:  v.GetInt(KeyServerRateBurst),
			TLS:        v.GetBool(KeyServerTLS),
			CertDir:    ExpandPath(v.GetString(KeyServerCertDir)),
		},
		Logging: LoggingSettings{
			Level:  strings.ToLower(v.GetString(KeyLoggingLevel)),
			Format: strings.ToLower(v.GetString(KeyLoggingFormat)),
		},
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// catalogPaths returns the configured catalog path followed by the bundled
// fallback when the default is in use.
func catalogPaths(configured string) []string {
	configured = ExpandPath(strings.TrimSpace(configured))
	if configured == "" || configured == DefaultCatalogPath {
		return []string{DefaultCatalogPath, FallbackCatalogPath}
	}
	return []string{configured}
}

// Validate checks that the settings are usable.
func (s *Settings) Validate() error {
	var errs []error

	if err := s.Engine.Validate(); err != nil {
		errs = append(errs, err)
	}
	if s.Database.Path == "" {
		errs = append(errs, fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyDatabasePath))
	}
	if s.Server.Addr == "" {
		errs = append(errs, fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyServerAddr))
	}
	if s.Server.TLS && s.Server.CertDir == "" {
		errs = append(errs, fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyServerCertDir))
	}
	if s.Server.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("%w: %s must not be negative", common.ErrInvalidConfig, KeyServerRateLimit))
	}
	if s.Server.RateLimit > 0 && s.Server.RateBurst < 1 {
		errs = append(errs, fmt.Errorf("%w: %s must be at least 1", common.ErrInvalidConfig, KeyServerRateBurst))
	}
	if _, err := common.ParseLevel(s.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, KeyLoggingLevel, err))
	}
	switch s.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: %s: unknown format %q", common.ErrInvalidConfig, KeyLoggingFormat, s.Logging.Format))
	}

	return errors.Join(errs...)
}

// DefaultConfigDir returns the directory searched for config.yaml.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "carpicker"), nil
}
