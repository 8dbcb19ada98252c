package config

import "time"

// LuckyAlgoConfig controls how we talk to the ranking API.
type LuckyAlgoConfig struct {
	BaseURL string        `envconfig:"LUCKYALGO_BASE_URL" default:"https://api.luckyalgo.com"`
	Timeout time.Duration `envconfig:"LUCKYALGO_TIMEOUT" default:"10s"`
}
