package server

import (
	"log/slog"

	"github.com/preston-bernstein/scratchers-service/internal/config"
	"github.com/preston-bernstein/scratchers-service/internal/logging"
	"github.com/preston-bernstein/scratchers-service/internal/providers"
	"github.com/preston-bernstein/scratchers-service/internal/providers/fixture"
	"github.com/preston-bernstein/scratchers-service/internal/providers/luckyalgo"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.RankingProvider {
	switch cfg.Provider {
	case config.ProviderFixture:
		return fixture.New()
	case config.ProviderLuckyAlgo, "":
		return luckyalgo.NewClient(luckyalgo.Config{
			BaseURL: cfg.LuckyAlgo.BaseURL,
			Timeout: cfg.LuckyAlgo.Timeout,
		})
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", slog.String(logging.FieldProvider, cfg.Provider))
		return fixture.New()
	}
}
