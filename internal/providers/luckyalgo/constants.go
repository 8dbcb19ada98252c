package luckyalgo

import "time"

const (
	providerName       = "luckyalgo"
	defaultBaseURL     = "https://api.luckyalgo.com"
	rankingPath        = "/api/games/result/getRankingByState"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512
)
