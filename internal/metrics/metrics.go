package metrics

import (
	"sync"
	"time"
)

type fetchStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about catalog fetches and
// session activity, mirroring them to OpenTelemetry instruments when configured.
type Recorder struct {
	mu            sync.Mutex
	stats         map[string]*fetchStats
	staleDiscards int
	otel          *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*fetchStats),
		otel:  otel,
	}
}

// RecordFetchAttempt increments counters for a catalog fetch and stores the last observed latency.
func (r *Recorder) RecordFetchAttempt(jurisdiction string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(jurisdiction)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFetchAttempt(jurisdiction, duration, err)
	}
}

// RecordStaleDiscard counts a fetch completion dropped because a newer request superseded it.
func (r *Recorder) RecordStaleDiscard(jurisdiction string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.staleDiscards++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStaleDiscard(jurisdiction)
	}
}

// FetchCalls returns the total attempts recorded for a jurisdiction.
func (r *Recorder) FetchCalls(jurisdiction string) int {
	return r.Snapshot(jurisdiction).Calls
}

// FetchErrors returns the total failed attempts recorded for a jurisdiction.
func (r *Recorder) FetchErrors(jurisdiction string) int {
	return r.Snapshot(jurisdiction).Errors
}

// LastCallLatency returns the last recorded latency for a jurisdiction fetch.
func (r *Recorder) LastCallLatency(jurisdiction string) time.Duration {
	return r.Snapshot(jurisdiction).LastCallLatency
}

// StaleDiscards returns how many superseded completions were dropped.
func (r *Recorder) StaleDiscards() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.staleDiscards
}

// Snapshot returns a copy of the current stats for the jurisdiction.
type Snapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(jurisdiction string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[jurisdiction]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordProbeCycle tracks upstream probe cycles and errors.
func (r *Recorder) RecordProbeCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordProbe(duration, err)
}

// RecordSessionDelta adjusts the number of open view sessions.
func (r *Recorder) RecordSessionDelta(delta int64) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordSessions(delta)
}

func (r *Recorder) ensureStatsLocked(jurisdiction string) *fetchStats {
	stats, ok := r.stats[jurisdiction]
	if !ok {
		stats = &fetchStats{}
		r.stats[jurisdiction] = stats
	}
	return stats
}
