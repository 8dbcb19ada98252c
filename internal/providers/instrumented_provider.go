package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/scratchers-service/internal/domain/games"
	"github.com/preston-bernstein/scratchers-service/internal/jurisdiction"
	"github.com/preston-bernstein/scratchers-service/internal/logging"
	"github.com/preston-bernstein/scratchers-service/internal/metrics"
)

// instrumentedProvider records latency/errors and logs each upstream call.
// It issues exactly one call per fetch; retry is left to the caller.
type instrumentedProvider struct {
	inner   RankingProvider
	logger  *slog.Logger
	metrics *metrics.Recorder
	name    string
	now     func() time.Time
}

// NewInstrumentedProvider wraps inner with logging and metrics.
func NewInstrumentedProvider(inner RankingProvider, logger *slog.Logger, recorder *metrics.Recorder, name string) RankingProvider {
	return &instrumentedProvider{
		inner:   inner,
		logger:  logger,
		metrics: recorder,
		name:    name,
		now:     time.Now,
	}
}

func (p *instrumentedProvider) FetchRanking(ctx context.Context, code jurisdiction.Code, limit, offset int) ([]games.Game, error) {
	start := p.now()
	list, err := p.inner.FetchRanking(ctx, code, limit, offset)
	elapsed := p.now().Sub(start)

	p.metrics.RecordFetchAttempt(code.String(), elapsed, err)

	if err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "provider fetch failed",
			slog.String(logging.FieldJurisdiction, code.String()),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
			slog.Any("error", err),
		)
		return nil, err
	}

	logWithProvider(ctx, p.logger, slog.LevelInfo, p.name, "provider fetch complete",
		slog.String(logging.FieldJurisdiction, code.String()),
		slog.Int(logging.FieldCount, len(list)),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
	return list, nil
}
