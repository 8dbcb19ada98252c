package config

import "time"

const (
	envPrefix = ""

	defaultPort          = "4000"
	defaultProvider      = ProviderLuckyAlgo
	defaultJurisdiction  = "NY"
	defaultProbeInterval = 5 * time.Minute
	defaultLuckyBaseURL  = "https://api.luckyalgo.com"
	defaultLuckyTimeout  = 10 * time.Second
	defaultMetricsPort   = "9090"
	defaultServiceName   = "scratchers-service"

	// ProviderLuckyAlgo selects the remote ranking API.
	ProviderLuckyAlgo = "luckyalgo"
	// ProviderFixture selects the in-process deterministic catalog.
	ProviderFixture = "fixture"
)
