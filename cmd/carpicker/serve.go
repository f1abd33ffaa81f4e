package main

import (
	"crypto/tls"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/carpicker/internal/certs"
	"github.com/Veraticus/carpicker/internal/config"
	"github.com/Veraticus/carpicker/internal/engine"
	"github.com/Veraticus/carpicker/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog query API over HTTP",
		Long: `Start an HTTP server answering POST /api/predict.

The catalog is loaded once at startup and can be swapped without a restart
with POST /api/catalog/reload.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("addr", config.DefaultServerAddr, "address to listen on")
	cmd.Flags().String("source", sourceCSV, "catalog source: csv or db")
	cmd.Flags().Bool("tls", false, "serve HTTPS with a self-signed localhost certificate")

	_ = viper.BindPFlag(config.KeyServerAddr, cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag(config.KeyServerTLS, cmd.Flags().Lookup("tls"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	source, _ := cmd.Flags().GetString("source")

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	eng, err := engine.NewWithConfig(settings.Engine)
	if err != nil {
		return err
	}

	loader, err := catalogLoader(settings, source)
	if err != nil {
		return err
	}
	vehicles, from, err := loader(ctx)
	if err != nil {
		return err
	}

	slog.Info("Catalog loaded", "source", from, "vehicles", len(vehicles))

	var tlsConfig *tls.Config
	if settings.Server.TLS {
		store := certs.NewStore(settings.Server.CertDir)
		if tlsConfig, err = store.TLSConfig(); err != nil {
			return fmt.Errorf("failed to prepare TLS certificate: %w", err)
		}
		slog.Info("Serving HTTPS", "certificate", store.CertFile())
	}

	srv := server.New(eng, engine.NewSnapshot(vehicles, from), loader, server.Options{
		Logger:     slog.Default(),
		TLSConfig:  tlsConfig,
		Addr:       settings.Server.Addr,
		CORSOrigin: settings.Server.CORSOrigin,
		RateLimit:  settings.Server.RateLimit,
		RateBurst:  settings.Server.RateBurst,
	})

	return srv.ListenAndServe(ctx)
}
