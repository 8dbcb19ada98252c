package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/scratchers-service/internal/providers"
)

type namedProvider interface {
	Name() string
}

// normalizeProviderName returns a lower-cased provider name, deriving it from
// the instance when not explicitly configured.
func normalizeProviderName(raw string, provider providers.RankingProvider) string {
	if raw = strings.TrimSpace(raw); raw != "" {
		return strings.ToLower(raw)
	}
	if named, ok := provider.(namedProvider); ok {
		return strings.ToLower(named.Name())
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
