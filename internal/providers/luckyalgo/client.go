package luckyalgo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/scratchers-service/internal/domain/games"
	"github.com/preston-bernstein/scratchers-service/internal/jurisdiction"
	"github.com/preston-bernstein/scratchers-service/internal/providers"
)

// Config controls how the client reaches the LuckyAlgo ranking API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client fetches ranked scratch-off games and maps them to domain models.
type Client struct {
	baseURL    string
	httpClient httpDoer
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

// Name identifies the provider in logs and metrics.
func (c *Client) Name() string { return providerName }

// FetchRanking issues a single GET for one page of a jurisdiction's ranking.
func (c *Client) FetchRanking(ctx context.Context, code jurisdiction.Code, limit, offset int) ([]games.Game, error) {
	req, err := c.buildRequest(ctx, code, limit, offset)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var payload []gameResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: decode ranking: %w", providerName, err)
	}

	out := make([]games.Game, 0, len(payload))
	for _, g := range payload {
		out = append(out, mapGame(g, code))
	}
	return out, nil
}

func (c *Client) buildRequest(ctx context.Context, code jurisdiction.Code, limit, offset int) (*http.Request, error) {
	endpoint := strings.Join([]string{
		c.baseURL + rankingPath,
		url.PathEscape(code.String()),
		strconv.Itoa(limit),
		strconv.Itoa(offset),
	}, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}
