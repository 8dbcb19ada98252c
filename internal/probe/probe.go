// Package probe periodically checks that the upstream ranking source answers
// for every supported jurisdiction. Fetched data is discarded; only health is kept.
package probe

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/scratchers-service/internal/domain/games"
	"github.com/preston-bernstein/scratchers-service/internal/logging"
	"github.com/preston-bernstein/scratchers-service/internal/metrics"
)

const (
	defaultInterval = 5 * time.Minute
	maxFailures     = 3
)

// Fetcher loads the merged ranking across all jurisdictions.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]games.Game, error)
}

// Probe runs a fetch on an interval and tracks upstream health.
type Probe struct {
	fetcher  Fetcher
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the upstream source.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastCount           int
}

// IsReady reports whether a probe has succeeded and the upstream is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < maxFailures
}

// New constructs a Probe. A non-positive interval falls back to the default.
func New(fetcher Fetcher, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Probe {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Probe{
		fetcher:  fetcher,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins probing until the context is cancelled or Stop is called.
func (p *Probe) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		logging.Info(p.logger, "probe started", logging.FieldDurationMS, p.interval.Milliseconds())
		p.checkOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "probe stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "probe stopped")
				return
			case <-p.ticker.C:
				p.checkOnce(ctx)
			}
		}
	}()
}

// Stop halts the probe loop.
func (p *Probe) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

func (p *Probe) checkOnce(ctx context.Context) {
	start := p.now()
	p.recordAttempt(start)

	list, err := p.fetcher.FetchAll(ctx)
	elapsed := p.now().Sub(start)
	p.metrics.RecordProbeCycle(elapsed, err)
	if err != nil {
		logging.Error(p.logger, "probe fetch failed", err, logging.FieldDurationMS, elapsed.Milliseconds())
		p.recordFailure(err)
		return
	}

	p.recordSuccess(start, len(list))
	logging.Info(p.logger, "probe succeeded",
		logging.FieldCount, len(list),
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
}

func (p *Probe) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Probe) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Probe) recordSuccess(at time.Time, count int) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.LastCount = count
}

func (p *Probe) recordFailure(err error) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
}

// Status returns a snapshot of the probe's recent health.
func (p *Probe) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
