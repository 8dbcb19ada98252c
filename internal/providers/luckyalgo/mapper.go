package luckyalgo

import (
	"github.com/preston-bernstein/scratchers-service/internal/domain/games"
	"github.com/preston-bernstein/scratchers-service/internal/jurisdiction"
)

func mapGame(g gameResponse, requested jurisdiction.Code) games.Game {
	state := jurisdiction.ParseCode(g.State)
	if state == "" {
		state = requested
	}

	results := make([]games.Result, 0, len(g.GameResults))
	for _, r := range g.GameResults {
		results = append(results, mapResult(r))
	}

	return games.Game{
		ID:          g.ID,
		State:       state,
		Name:        g.Name,
		Number:      string(g.Number),
		Date:        g.Date,
		Results:     results,
		Image:       g.GameImage,
		LuckyScore:  g.LuckyAlgoScore,
		Rate:        g.Rate,
		OverallOdds: g.OverallOdds,
	}
}

func mapResult(r resultResponse) games.Result {
	return games.Result{
		PrizeAmount:           r.PrizeAmount,
		OddsOfWinning:         r.OddsOfWinning,
		PrizesRemaining:       r.PrizesRemaining,
		PrizesPaid:            r.PrizesPaid,
		PrizeRemainingPercent: string(r.PrizeRemainingPercent),
	}
}
