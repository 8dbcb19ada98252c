package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/scratchers-service/internal/app/catalog"
	"github.com/preston-bernstein/scratchers-service/internal/domain/games"
	"github.com/preston-bernstein/scratchers-service/internal/jurisdiction"
	"github.com/preston-bernstein/scratchers-service/internal/logging"
	"github.com/preston-bernstein/scratchers-service/internal/metrics"
	"github.com/preston-bernstein/scratchers-service/internal/presenter"
	"github.com/preston-bernstein/scratchers-service/internal/probe"
	"github.com/preston-bernstein/scratchers-service/internal/providers"
)

// Options carries the optional collaborators of a Handler.
type Options struct {
	DefaultJurisdiction jurisdiction.Code
	Metrics             *metrics.Recorder
}

// Handler wires HTTP routes to the catalog service.
type Handler struct {
	svc                 *catalog.Service
	logger              *slog.Logger
	statusFn            func() probe.Status
	metrics             *metrics.Recorder
	defaultJurisdiction jurisdiction.Code
	upgrader            websocket.Upgrader
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc *catalog.Service, logger *slog.Logger, statusFn func() probe.Status, opts Options) *Handler {
	def := opts.DefaultJurisdiction
	if def == "" {
		def = jurisdiction.NY
	}
	return &Handler{
		svc:                 svc,
		logger:              logger,
		statusFn:            statusFn,
		metrics:             opts.Metrics,
		defaultJurisdiction: def,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *nethttp.Request) bool { return true },
		},
	}
}

type jurisdictionView struct {
	Code jurisdiction.Code `json:"code"`
	Name string            `json:"name"`
}

type listResponse struct {
	Jurisdiction jurisdiction.Code `json:"jurisdiction,omitempty"`
	Count        int               `json:"count"`
	Games        []presenter.Row   `json:"games"`
}

// ServeHTTP dispatches requests without a router.
func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch {
	case r.URL.Path == "/health":
		h.Health(w, r)
	case r.URL.Path == "/ready":
		h.Ready(w, r)
	case r.URL.Path == "/jurisdictions":
		h.Jurisdictions(w, r)
	case r.URL.Path == "/games":
		h.Games(w, r)
	case strings.HasPrefix(r.URL.Path, "/games/"):
		h.GameRoutes(w, r)
	case r.URL.Path == "/leaderboard":
		h.Leaderboard(w, r)
	case r.URL.Path == "/ws/session":
		h.Session(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the upstream ranking source is answering.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Jurisdictions lists the supported jurisdictions in display order.
func (h *Handler) Jurisdictions(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	all := h.svc.Jurisdictions()
	out := make([]jurisdictionView, 0, len(all))
	for _, j := range all {
		out = append(out, jurisdictionView{Code: j.Code, Name: j.Name})
	}
	writeJSON(w, nethttp.StatusOK, out, h.logger)
}

// Games returns the ranked list for ?state=, optionally filtered by ?q=.
func (h *Handler) Games(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	code, list, ok := h.fetchForRequest(w, r)
	if !ok {
		return
	}
	list = catalog.Search(list, r.URL.Query().Get("q"))
	writeJSON(w, nethttp.StatusOK, listResponse{
		Jurisdiction: code,
		Count:        len(list),
		Games:        presenter.ListRows(list),
	}, h.logger)
}

// Leaderboard returns one ranked list across every supported jurisdiction.
func (h *Handler) Leaderboard(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	list, err := h.svc.FetchAll(r.Context())
	if err != nil {
		h.writeFetchError(w, r, err)
		return
	}
	list = catalog.Search(list, r.URL.Query().Get("q"))
	writeJSON(w, nethttp.StatusOK, listResponse{
		Count: len(list),
		Games: presenter.ListRows(list),
	}, h.logger)
}

// GameRoutes serves /games/{id} and /games/{id}/link.
func (h *Handler) GameRoutes(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/games/")
	link := false
	if trimmed, found := strings.CutSuffix(rest, "/link"); found {
		rest = trimmed
		link = true
	}
	id, err := url.PathUnescape(rest)
	if err != nil || id == "" || strings.ContainsAny(id, " \t/") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.logger)
		return
	}

	_, list, ok := h.fetchForRequest(w, r)
	if !ok {
		return
	}
	game, found := games.FindByID(list, id)
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "game not found", h.logger)
		return
	}

	official, linkErr := h.svc.BuildExternalLink(game)
	if link {
		if linkErr != nil {
			writeError(w, r, nethttp.StatusNotFound, "no official page for game", h.logger)
			return
		}
		nethttp.Redirect(w, r, official, nethttp.StatusFound)
		return
	}
	writeJSON(w, nethttp.StatusOK, presenter.BuildDetail(game, official), h.logger)
}

// fetchForRequest resolves ?state= (or the default jurisdiction) and fetches
// its ranked list, writing the error response itself on failure.
func (h *Handler) fetchForRequest(w nethttp.ResponseWriter, r *nethttp.Request) (jurisdiction.Code, []games.Game, bool) {
	raw := r.URL.Query().Get("state")
	if raw == "" {
		raw = h.defaultJurisdiction.String()
	}
	j, err := h.svc.Lookup(raw)
	if err != nil {
		h.writeFetchError(w, r, err)
		return "", nil, false
	}
	list, err := h.svc.FetchGames(r.Context(), j.Code)
	if err != nil {
		h.writeFetchError(w, r, err)
		return "", nil, false
	}
	return j.Code, list, true
}

func (h *Handler) writeFetchError(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	logger := loggerFromContext(r, h.logger)
	switch {
	case errors.Is(err, jurisdiction.ErrUnsupported):
		writeError(w, r, nethttp.StatusBadRequest, "unsupported jurisdiction", h.logger)
	default:
		if fe, ok := providers.AsFetchError(err); ok {
			logging.Warn(logger, "catalog fetch failed",
				logging.FieldJurisdiction, fe.Jurisdiction.String(),
				"error", err,
			)
			writeError(w, r, nethttp.StatusBadGateway, fe.UserMessage(), h.logger)
			return
		}
		logging.Error(logger, "request failed", err)
		writeError(w, r, nethttp.StatusInternalServerError, providers.UserMessage, h.logger)
	}
}
