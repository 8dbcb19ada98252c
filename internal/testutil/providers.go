package testutil

import (
	"context"
	"sync"

	"github.com/preston-bernstein/scratchers-service/internal/domain/games"
	"github.com/preston-bernstein/scratchers-service/internal/jurisdiction"
)

// Call records one FetchRanking invocation.
type Call struct {
	Code   jurisdiction.Code
	Limit  int
	Offset int
}

// GoodProvider returns the configured games per jurisdiction with no error.
type GoodProvider struct {
	Games map[jurisdiction.Code][]games.Game
}

func (p GoodProvider) FetchRanking(ctx context.Context, code jurisdiction.Code, limit, offset int) ([]games.Game, error) {
	_ = ctx
	_ = limit
	_ = offset
	return cloneGames(p.Games[code]), nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchRanking(ctx context.Context, code jurisdiction.Code, limit, offset int) ([]games.Game, error) {
	return nil, p.Err
}

// GatedProvider records calls and, when a gate exists for the jurisdiction,
// blocks until the gate is closed. It ignores context cancellation so late
// completions can be simulated.
type GatedProvider struct {
	Games   map[jurisdiction.Code][]games.Game
	Errs    map[jurisdiction.Code]error
	Gates   map[jurisdiction.Code]chan struct{}
	Started chan jurisdiction.Code

	mu    sync.Mutex
	calls []Call
}

func (p *GatedProvider) FetchRanking(ctx context.Context, code jurisdiction.Code, limit, offset int) ([]games.Game, error) {
	_ = ctx
	p.mu.Lock()
	p.calls = append(p.calls, Call{Code: code, Limit: limit, Offset: offset})
	gate := p.Gates[code]
	err := p.Errs[code]
	list := cloneGames(p.Games[code])
	p.mu.Unlock()

	if p.Started != nil {
		p.Started <- code
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return list, nil
}

// SetErr changes the error returned for a jurisdiction.
func (p *GatedProvider) SetErr(code jurisdiction.Code, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Errs == nil {
		p.Errs = make(map[jurisdiction.Code]error)
	}
	p.Errs[code] = err
}

// Calls returns a copy of the recorded calls.
func (p *GatedProvider) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Call, len(p.calls))
	copy(out, p.calls)
	return out
}

func cloneGames(in []games.Game) []games.Game {
	if in == nil {
		return nil
	}
	out := make([]games.Game, len(in))
	copy(out, in)
	return out
}
