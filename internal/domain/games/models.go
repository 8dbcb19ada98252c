package games

import "github.com/preston-bernstein/scratchers-service/internal/jurisdiction"

// Result is one prize tier of a scratch-off game.
type Result struct {
	PrizeAmount     float64 `json:"prizeAmount"`
	OddsOfWinning   string  `json:"oddsOfWinning"`
	PrizesRemaining int64   `json:"prizesRemaining"`
	PrizesPaid      int64   `json:"prizesPaid"`
	// PrizeRemainingPercent is passed through from upstream as a numeric string.
	PrizeRemainingPercent string `json:"prizeRemainingPercent"`
}

// Game is the canonical scratch-off game shape exposed by the service.
type Game struct {
	ID     string            `json:"id"`
	State  jurisdiction.Code `json:"state"`
	Name   string            `json:"name"`
	Number string            `json:"number"`
	Date   string            `json:"date"`
	// Results keeps upstream prize-tier order.
	Results     []Result `json:"gameResults"`
	Image       string   `json:"gameImage"`
	LuckyScore  float64  `json:"luckyAlgoScore"`
	Rate        float64  `json:"rate"`
	OverallOdds float64  `json:"overallOdds"`
}

// FindByID returns the game with the given id from a collection.
func FindByID(games []Game, id string) (Game, bool) {
	for _, g := range games {
		if g.ID == id {
			return g, true
		}
	}
	return Game{}, false
}
