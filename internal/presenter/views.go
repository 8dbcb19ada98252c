package presenter

import (
	"github.com/preston-bernstein/scratchers-service/internal/domain/games"
	"github.com/preston-bernstein/scratchers-service/internal/jurisdiction"
)

// Row is one entry of the ranked summary list.
type Row struct {
	ID     string            `json:"id"`
	State  jurisdiction.Code `json:"state"`
	Name   string            `json:"name"`
	Number string            `json:"number"`
	Image  string            `json:"image"`
	Score  string            `json:"score"`
	Tone   Tone              `json:"tone"`
}

// Stat is a labelled value in the detail stats grid.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Tone  Tone   `json:"tone,omitempty"`
}

// PrizeTier is one rendered row of the prize breakdown.
type PrizeTier struct {
	Amount        string  `json:"amount"`
	Odds          string  `json:"odds"`
	FillRatio     float64 `json:"fillRatio"`
	ProgressWidth float64 `json:"progressWidth"`
	Remaining     string  `json:"remaining"`
	Paid          string  `json:"paid"`
}

// Detail is the full view of a single selected game.
type Detail struct {
	Row
	Stats       []Stat      `json:"stats"`
	Prizes      []PrizeTier `json:"prizes"`
	OfficialURL string      `json:"officialUrl,omitempty"`
}

// ListRow builds the summary row for g.
func ListRow(g games.Game) Row {
	return Row{
		ID:     g.ID,
		State:  g.State,
		Name:   g.Name,
		Number: "#" + g.Number,
		Image:  g.Image,
		Score:  FormatScore(g.LuckyScore),
		Tone:   ScoreTone(g.LuckyScore),
	}
}

// ListRows builds rows in input order.
func ListRows(list []games.Game) []Row {
	rows := make([]Row, 0, len(list))
	for _, g := range list {
		rows = append(rows, ListRow(g))
	}
	return rows
}

// Prize renders one prize tier.
func Prize(r games.Result) PrizeTier {
	return PrizeTier{
		Amount:        FormatCurrency(r.PrizeAmount),
		Odds:          r.OddsOfWinning,
		FillRatio:     PrizeFillRatio(r),
		ProgressWidth: ProgressWidth(r),
		Remaining:     FormatCount(r.PrizesRemaining) + " remaining",
		Paid:          FormatCount(r.PrizesPaid) + " paid",
	}
}

// BuildDetail renders the detail view. officialURL may be empty when no link
// can be built for the game's jurisdiction.
func BuildDetail(g games.Game, officialURL string) Detail {
	prizes := make([]PrizeTier, 0, len(g.Results))
	for _, r := range g.Results {
		prizes = append(prizes, Prize(r))
	}

	return Detail{
		Row: ListRow(g),
		Stats: []Stat{
			{Label: "Lucky Score", Value: FormatScore(g.LuckyScore), Tone: ScoreTone(g.LuckyScore)},
			{Label: "Rate", Value: FormatCurrency(g.Rate)},
			{Label: "Overall Odds", Value: FormatOdds(g.OverallOdds)},
		},
		Prizes:      prizes,
		OfficialURL: officialURL,
	}
}
