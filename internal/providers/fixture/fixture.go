package fixture

import (
	"context"

	"github.com/preston-bernstein/scratchers-service/internal/domain/games"
	"github.com/preston-bernstein/scratchers-service/internal/jurisdiction"
)

const providerName = "fixture"

// Provider returns a static set of games useful for local testing and bootstrapping.
// Records are intentionally unsorted and FL images are relative, matching upstream.
type Provider struct{}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{}
}

// Name identifies the provider in logs and metrics.
func (p *Provider) Name() string { return providerName }

// FetchRanking returns a deterministic page of example games for code.
func (p *Provider) FetchRanking(ctx context.Context, code jurisdiction.Code, limit, offset int) ([]games.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all := catalog()[code]
	if offset < 0 || offset >= len(all) || limit <= 0 {
		return []games.Game{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	out := make([]games.Game, end-offset)
	copy(out, all[offset:end])
	return out, nil
}

func catalog() map[jurisdiction.Code][]games.Game {
	return map[jurisdiction.Code][]games.Game{
		jurisdiction.NY: {
			{
				ID:     "fixture-ny-1",
				State:  jurisdiction.NY,
				Name:   "Lucky 7s",
				Number: "1611",
				Date:   "2024-01-02",
				Results: []games.Result{
					{PrizeAmount: 77777, OddsOfWinning: "1:720,000.00", PrizesRemaining: 4, PrizesPaid: 2, PrizeRemainingPercent: "66.67"},
					{PrizeAmount: 7, OddsOfWinning: "1:10.00", PrizesRemaining: 410000, PrizesPaid: 310000, PrizeRemainingPercent: "56.94"},
				},
				Image:       "https://nylottery.ny.gov/drupal-api/sites/default/files/1611.png",
				LuckyScore:  1.2,
				Rate:        2,
				OverallOdds: 4.12,
			},
			{
				ID:     "fixture-ny-2",
				State:  jurisdiction.NY,
				Name:   "Cash Blast",
				Number: "1620",
				Date:   "2024-02-14",
				Results: []games.Result{
					{PrizeAmount: 2500, OddsOfWinning: "1:12,000.00", PrizesRemaining: 0, PrizesPaid: 60, PrizeRemainingPercent: "0"},
				},
				Image:       "https://nylottery.ny.gov/drupal-api/sites/default/files/1620.png",
				LuckyScore:  -0.3,
				Rate:        5,
				OverallOdds: 3.9,
			},
			{
				ID:     "fixture-ny-3",
				State:  jurisdiction.NY,
				Name:   "Million Dollar Jackpot",
				Number: "1598",
				Date:   "2023-11-20",
				Results: []games.Result{
					{PrizeAmount: 1000000, OddsOfWinning: "1:2,160,000.00", PrizesRemaining: 3, PrizesPaid: 1, PrizeRemainingPercent: "75.00"},
					{PrizeAmount: 30, OddsOfWinning: "1:15.00", PrizesRemaining: 250000, PrizesPaid: 50000, PrizeRemainingPercent: "83.33"},
				},
				Image:       "https://nylottery.ny.gov/drupal-api/sites/default/files/1598.png",
				LuckyScore:  5.0,
				Rate:        30,
				OverallOdds: 3.14,
			},
		},
		jurisdiction.FL: {
			{
				ID:     "fixture-fl-1",
				State:  jurisdiction.FL,
				Name:   "Gold Rush Supreme",
				Number: "1500",
				Date:   "2024-01-08",
				Results: []games.Result{
					{PrizeAmount: 5000000, OddsOfWinning: "1:4,000,000.00", PrizesRemaining: 2, PrizesPaid: 2, PrizeRemainingPercent: "50.00"},
					{PrizeAmount: 20, OddsOfWinning: "1:7.50", PrizesRemaining: 900000, PrizesPaid: 100000, PrizeRemainingPercent: "90.00"},
				},
				Image:       "content/dam/flalottery/scratch/1500.png",
				LuckyScore:  0.8,
				Rate:        20,
				OverallOdds: 2.85,
			},
			{
				ID:     "fixture-fl-2",
				State:  jurisdiction.FL,
				Name:   "Bonus Cash",
				Number: "1512",
				Date:   "2024-03-01",
				Results: []games.Result{
					{PrizeAmount: 50000, OddsOfWinning: "1:480,000.00", PrizesRemaining: 5, PrizesPaid: 5, PrizeRemainingPercent: "50.00"},
				},
				Image:       "content/dam/flalottery/scratch/1512.png",
				LuckyScore:  0,
				Rate:        5,
				OverallOdds: 4.5,
			},
		},
	}
}
