package testutil

import (
	"strconv"

	"github.com/preston-bernstein/scratchers-service/internal/domain/games"
	"github.com/preston-bernstein/scratchers-service/internal/jurisdiction"
)

// SampleGame returns a minimal game fixture with the provided id, state and score.
func SampleGame(id string, state jurisdiction.Code, score float64) games.Game {
	return games.Game{
		ID:     id,
		State:  state,
		Name:   "Game " + id,
		Number: "10" + id,
		Date:   "2024-01-01",
		Results: []games.Result{
			{PrizeAmount: 1000000, OddsOfWinning: "1:2,000,000.00", PrizesRemaining: 2, PrizesPaid: 1, PrizeRemainingPercent: "66.67"},
			{PrizeAmount: 20, OddsOfWinning: "1:50.00", PrizesRemaining: 12500, PrizesPaid: 2500, PrizeRemainingPercent: "83.33"},
		},
		Image:       "img/" + id + ".png",
		LuckyScore:  score,
		Rate:        5,
		OverallOdds: 3.62,
	}
}

// SampleGames builds one fixture per score, ids g0, g1, ... in input order.
func SampleGames(state jurisdiction.Code, scores ...float64) []games.Game {
	out := make([]games.Game, 0, len(scores))
	for i, s := range scores {
		out = append(out, SampleGame("g"+strconv.Itoa(i), state, s))
	}
	return out
}
