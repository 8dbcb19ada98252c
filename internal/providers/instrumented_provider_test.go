package providers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/scratchers-service/internal/domain/games"
	"github.com/preston-bernstein/scratchers-service/internal/jurisdiction"
	"github.com/preston-bernstein/scratchers-service/internal/metrics"
	"github.com/preston-bernstein/scratchers-service/internal/testutil"
)

type countingProvider struct {
	calls int
	err   error
	games []games.Game
}

func (c *countingProvider) FetchRanking(ctx context.Context, code jurisdiction.Code, limit, offset int) ([]games.Game, error) {
	_ = ctx
	_ = code
	_ = limit
	_ = offset
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.games, nil
}

func TestRankingProviderInterfaceImplemented(t *testing.T) {
	var _ RankingProvider = (*countingProvider)(nil)
}

func TestInstrumentedProviderRecordsSuccess(t *testing.T) {
	inner := &countingProvider{games: []games.Game{{ID: "a"}, {ID: "b"}}}
	rec := metrics.NewRecorder()
	logger, buf := testutil.NewBufferLogger()
	p := NewInstrumentedProvider(inner, logger, rec, "luckyalgo")

	list, err := p.FetchRanking(context.Background(), jurisdiction.NY, 100, 0)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 games, got %d", len(list))
	}
	if rec.FetchCalls("NY") != 1 || rec.FetchErrors("NY") != 0 {
		t.Fatalf("unexpected metrics %+v", rec.Snapshot("NY"))
	}
	if !strings.Contains(buf.String(), "provider=luckyalgo") || !strings.Contains(buf.String(), "count=2") {
		t.Fatalf("expected provider and count in log, got %q", buf.String())
	}
}

func TestInstrumentedProviderDoesNotRetry(t *testing.T) {
	inner := &countingProvider{err: errors.New("boom")}
	rec := metrics.NewRecorder()
	p := NewInstrumentedProvider(inner, nil, rec, "luckyalgo")

	if _, err := p.FetchRanking(context.Background(), jurisdiction.FL, 100, 0); err == nil {
		t.Fatal("expected error")
	}
	if inner.calls != 1 {
		t.Fatalf("expected a single upstream call, got %d", inner.calls)
	}
	if rec.FetchErrors("FL") != 1 {
		t.Fatalf("expected error recorded, got %+v", rec.Snapshot("FL"))
	}
}

func TestInstrumentedProviderMeasuresLatency(t *testing.T) {
	inner := &countingProvider{}
	rec := metrics.NewRecorder()
	p := NewInstrumentedProvider(inner, nil, rec, "luckyalgo").(*instrumentedProvider)
	clock := testutil.NewStepClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 25*time.Millisecond)
	p.now = clock.Now

	_, _ = p.FetchRanking(context.Background(), jurisdiction.NY, 100, 0)

	if got := rec.LastCallLatency("NY"); got != 25*time.Millisecond {
		t.Fatalf("expected 25ms latency, got %s", got)
	}
}
