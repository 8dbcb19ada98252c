package luckyalgo

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type gameResponse struct {
	ID             string           `json:"_id"`
	State          string           `json:"state"`
	Name           string           `json:"name"`
	Number         flexString       `json:"number"`
	Date           string           `json:"date"`
	GameResults    []resultResponse `json:"gameResults"`
	GameImage      string           `json:"gameImage"`
	LuckyAlgoScore float64          `json:"luckyAlgoScore"`
	Rate           float64          `json:"rate"`
	OverallOdds    float64          `json:"overallOdds"`
}

type resultResponse struct {
	PrizeAmount           float64    `json:"prizeAmount"`
	OddsOfWinning         string     `json:"oddsOfWinning"`
	PrizesRemaining       int64      `json:"prizesRemaining"`
	PrizesPaid            int64      `json:"prizesPaid"`
	PrizeRemainingPercent flexString `json:"prizeRemainingPercent"`
}

// flexString accepts either a JSON string or a JSON number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = flexString(n.String())
	return nil
}
