// Package catalog retrieves, normalizes and ranks scratch-off games per jurisdiction.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/scratchers-service/internal/domain/games"
	"github.com/preston-bernstein/scratchers-service/internal/jurisdiction"
	"github.com/preston-bernstein/scratchers-service/internal/logging"
	"github.com/preston-bernstein/scratchers-service/internal/providers"
)

// Fixed page requested from upstream: top 100 starting at 0.
const (
	PageSize   = 100
	PageOffset = 0
)

// Service coordinates catalog retrieval using a RankingProvider.
type Service struct {
	provider providers.RankingProvider
	registry *jurisdiction.Registry
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs a Service. A nil registry uses the built-in NY/FL set.
func NewService(provider providers.RankingProvider, registry *jurisdiction.Registry, logger *slog.Logger) *Service {
	if registry == nil {
		registry = jurisdiction.Default()
	}
	return &Service{
		provider: provider,
		registry: registry,
		logger:   logger,
		now:      time.Now,
	}
}

// Jurisdictions lists the supported jurisdictions in registry order.
func (s *Service) Jurisdictions() []jurisdiction.Jurisdiction {
	return s.registry.All()
}

// Lookup resolves a raw jurisdiction code against the registry.
func (s *Service) Lookup(raw string) (jurisdiction.Jurisdiction, error) {
	return s.registry.Lookup(raw)
}

// FetchGames returns the ranked, normalized collection for one jurisdiction.
// Every call issues exactly one upstream request; failures are returned as
// *providers.FetchError and never retried here.
func (s *Service) FetchGames(ctx context.Context, code jurisdiction.Code) ([]games.Game, error) {
	j, err := s.registry.Lookup(code.String())
	if err != nil {
		return nil, err
	}

	start := s.now()
	list, err := s.provider.FetchRanking(ctx, j.Code, PageSize, PageOffset)
	if err != nil {
		return nil, &providers.FetchError{Jurisdiction: j.Code, Err: err}
	}

	list = s.normalizeImages(list)
	Rank(list)

	logging.Debug(logging.FromContext(ctx, s.logger), "catalog ranked",
		logging.FieldJurisdiction, j.Code.String(),
		logging.FieldCount, len(list),
		logging.FieldDurationMS, s.now().Sub(start).Milliseconds(),
	)
	return list, nil
}

// FetchAll fetches every supported jurisdiction concurrently and merges the
// results into one ranked list. Ties keep registry order, then upstream order.
func (s *Service) FetchAll(ctx context.Context) ([]games.Game, error) {
	all := s.registry.All()
	pages := make([][]games.Game, len(all))

	g, gctx := errgroup.WithContext(ctx)
	for i, j := range all {
		g.Go(func() error {
			list, err := s.FetchGames(gctx, j.Code)
			if err != nil {
				return err
			}
			pages[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]games.Game, 0)
	for _, page := range pages {
		merged = append(merged, page...)
	}
	Rank(merged)
	return merged, nil
}

// BuildExternalLink returns the official game page for g. Games from a
// jurisdiction outside the registry fail with jurisdiction.ErrUnsupported.
func (s *Service) BuildExternalLink(g games.Game) (string, error) {
	j, err := s.registry.Lookup(g.State.String())
	if err != nil {
		return "", fmt.Errorf("build link for game %s: %w", g.ID, err)
	}
	return j.Link(g.Number)
}

func (s *Service) normalizeImages(list []games.Game) []games.Game {
	for i := range list {
		j, err := s.registry.Lookup(list[i].State.String())
		if err != nil {
			continue
		}
		list[i].Image = j.ImageURL(list[i].Image)
	}
	return list
}

// Rank sorts games by lucky score, highest first. Equal scores keep their
// relative input order.
func Rank(list []games.Game) {
	sort.SliceStable(list, func(a, b int) bool {
		return list[a].LuckyScore > list[b].LuckyScore
	})
}

// Search filters a ranked list by a fuzzy, case-insensitive name match or a
// game-number prefix. Ranking order is preserved; an empty query returns all.
func Search(list []games.Game, query string) []games.Game {
	query = strings.TrimSpace(query)
	out := make([]games.Game, 0, len(list))
	for _, g := range list {
		if query == "" || fuzzy.MatchNormalizedFold(query, g.Name) || strings.HasPrefix(g.Number, query) {
			out = append(out, g)
		}
	}
	return out
}
