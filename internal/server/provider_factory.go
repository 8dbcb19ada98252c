package server

import (
	"log/slog"

	"github.com/preston-bernstein/scratchers-service/internal/config"
	"github.com/preston-bernstein/scratchers-service/internal/metrics"
	"github.com/preston-bernstein/scratchers-service/internal/providers"
)

// providerFactory assembles the provider with shared instrumentation.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.RankingProvider {
	base := selectProvider(cfg, f.logger)
	return f.wrap(cfg, base)
}

func (f providerFactory) wrap(cfg config.Config, base providers.RankingProvider) providers.RankingProvider {
	return providers.NewInstrumentedProvider(base, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base))
}
