package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/scratchers-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/jurisdictions", handler.Jurisdictions)
	mux.HandleFunc("/games", handler.Games)
	mux.HandleFunc("/games/", handler.GameRoutes)
	mux.HandleFunc("/leaderboard", handler.Leaderboard)
	mux.HandleFunc("/ws/session", handler.Session)
	return mux
}
