package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"stt-relay/internal/api/server"
	"stt-relay/internal/app/api/provider"
	"stt-relay/internal/config"
	"stt-relay/web"

	// Providers register themselves with the factory
	_ "stt-relay/internal/app/api/deepgram"
	_ "stt-relay/internal/app/api/openai/whisper"
)

// provideRegistry creates the metrics registry exposed on /metrics
func provideRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// provideTranscriptionProvider builds the configured provider wrapped with
// call metrics. A provider whose configuration is incomplete still starts;
// each request then fails with a logged cause.
func provideTranscriptionProvider(cfg *config.ServerConfig, registry *prometheus.Registry, logger *zap.Logger) (provider.TranscriptionProvider, error) {
	p, err := provider.CreateProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}

	if err := config.CheckAPIKeyFormat(cfg.Provider.Type, cfg.Provider.Auth.APIKey); err != nil {
		logger.Warn("Provider API key looks malformed, requests may be rejected",
			zap.String("provider", cfg.Provider.Type),
			zap.Error(err),
		)
	}
	if err := p.ValidateConfiguration(); err != nil {
		logger.Warn("Provider is not fully configured, transcription requests will fail",
			zap.String("provider", cfg.Provider.Type),
			zap.Error(err),
		)
	}

	return provider.NewInstrumentedProvider(p, provider.NewPrometheusProviderMetrics(registry)), nil
}

// provideServerConfig maps the file configuration onto the HTTP server
func provideServerConfig(cfg *config.ServerConfig) server.Config {
	return server.Config{
		Address:        cfg.Address(),
		ReadTimeout:    cfg.ReadTimeout(),
		WriteTimeout:   cfg.WriteTimeout(),
		IdleTimeout:    cfg.IdleTimeout(),
		Environment:    cfg.Environment,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		CORSOrigins:    cfg.CORSOrigins,
		Static:         web.Static(),
	}
}
