package providers

import (
	"context"

	"github.com/preston-bernstein/scratchers-service/internal/domain/games"
	"github.com/preston-bernstein/scratchers-service/internal/jurisdiction"
)

// RankingProvider fetches one page of upstream game records for a jurisdiction.
// Records are returned in upstream order and without any URL normalization.
type RankingProvider interface {
	FetchRanking(ctx context.Context, code jurisdiction.Code, limit, offset int) ([]games.Game, error)
}
