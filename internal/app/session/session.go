// Package session drives the client view state: which jurisdiction is shown,
// whether its ranking is loading, loaded or failed, and which game is open.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/preston-bernstein/scratchers-service/internal/app/catalog"
	"github.com/preston-bernstein/scratchers-service/internal/domain/games"
	"github.com/preston-bernstein/scratchers-service/internal/jurisdiction"
	"github.com/preston-bernstein/scratchers-service/internal/logging"
	"github.com/preston-bernstein/scratchers-service/internal/metrics"
	"github.com/preston-bernstein/scratchers-service/internal/providers"
)

var (
	ErrClosed         = errors.New("session closed")
	ErrNoJurisdiction = errors.New("no jurisdiction selected")
	ErrNotLoaded      = errors.New("games not loaded")
	ErrGameNotFound   = errors.New("game not found")
	ErrInvalidLayout  = errors.New("invalid layout")
)

// Catalog is the subset of the catalog service a session needs.
type Catalog interface {
	Lookup(raw string) (jurisdiction.Jurisdiction, error)
	FetchGames(ctx context.Context, code jurisdiction.Code) ([]games.Game, error)
}

// Options configures a Controller.
type Options struct {
	ID      string
	Logger  *slog.Logger
	Metrics *metrics.Recorder
}

// Controller owns one client's view state. Fetches run asynchronously; a
// completion is applied only if no newer fetch was issued after it started.
//
// Listeners are invoked in change order and must not call mutating methods
// synchronously.
type Controller struct {
	catalog Catalog
	logger  *slog.Logger
	metrics *metrics.Recorder

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu           sync.Mutex
	closed       bool
	version      uint64
	seq          uint64
	inflight     context.CancelFunc
	jurisdiction jurisdiction.Code
	state        State
	selected     *games.Game
	layout       Layout
	filter       string
	listeners    []func(Snapshot)

	notifyMu sync.Mutex
}

// New creates an idle Controller.
func New(cat Catalog, opts Options) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	logger := opts.Logger
	if logger != nil && opts.ID != "" {
		logger = logger.With(slog.String(logging.FieldSessionID, opts.ID))
	}
	return &Controller{
		catalog: cat,
		logger:  logger,
		metrics: opts.Metrics,
		ctx:     ctx,
		cancel:  cancel,
		state:   Idle{},
		layout:  LayoutGrid,
	}
}

// OnChange registers a listener that receives a Snapshot after every change.
func (c *Controller) OnChange(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// State returns the current snapshot.
func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SelectJurisdiction switches the shown jurisdiction and starts a fetch for it.
// Unsupported codes leave the session untouched.
func (c *Controller) SelectJurisdiction(raw string) error {
	j, err := c.catalog.Lookup(raw)
	if err != nil {
		return err
	}
	return c.startFetch(j.Code, true)
}

// Retry re-issues the fetch for the current jurisdiction.
func (c *Controller) Retry() error {
	return c.startFetch("", false)
}

// Select opens the detail view for a game from the loaded collection.
func (c *Controller) Select(id string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	loaded, ok := c.state.(Loaded)
	if !ok {
		c.mu.Unlock()
		return ErrNotLoaded
	}
	g, found := games.FindByID(loaded.Games, id)
	if !found {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	c.selected = &g
	c.publishLocked()
	return nil
}

// Dismiss closes the detail view.
func (c *Controller) Dismiss() error {
	return c.mutate(func() { c.selected = nil })
}

// SetLayout switches between grid and list presentation.
func (c *Controller) SetLayout(layout Layout) error {
	if layout != LayoutGrid && layout != LayoutList {
		return fmt.Errorf("%w: %q", ErrInvalidLayout, layout)
	}
	return c.mutate(func() { c.layout = layout })
}

// SetFilter sets the name search applied to the visible list.
func (c *Controller) SetFilter(query string) error {
	return c.mutate(func() { c.filter = query })
}

// Wait blocks until every started fetch has completed.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels outstanding fetches and waits for them to finish.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}

func (c *Controller) mutate(fn func()) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	fn()
	c.publishLocked()
	return nil
}

func (c *Controller) startFetch(code jurisdiction.Code, switching bool) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if switching {
		c.jurisdiction = code
	}
	if c.jurisdiction == "" {
		c.mu.Unlock()
		return ErrNoJurisdiction
	}
	code = c.jurisdiction

	if c.inflight != nil {
		c.inflight()
	}
	ctx, cancel := context.WithCancel(c.ctx)
	c.inflight = cancel
	c.seq++
	seq := c.seq
	c.state = Loading{Jurisdiction: code}

	c.wg.Add(1)
	go c.fetch(ctx, cancel, seq, code)

	c.publishLocked()
	return nil
}

func (c *Controller) fetch(ctx context.Context, cancel context.CancelFunc, seq uint64, code jurisdiction.Code) {
	defer c.wg.Done()
	defer cancel()

	list, err := c.catalog.FetchGames(ctx, code)
	c.complete(seq, code, list, err)
}

func (c *Controller) complete(seq uint64, code jurisdiction.Code, list []games.Game, err error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if seq != c.seq {
		c.mu.Unlock()
		c.metrics.RecordStaleDiscard(code.String())
		logging.Debug(c.logger, "discarded stale fetch",
			logging.FieldSeq, seq,
			logging.FieldJurisdiction, code.String(),
		)
		return
	}
	c.inflight = nil

	if err != nil {
		c.state = Failed{Jurisdiction: code, Message: userMessage(err), Err: err}
		logging.Warn(c.logger, "session fetch failed",
			logging.FieldSeq, seq,
			logging.FieldJurisdiction, code.String(),
			"error", err,
		)
	} else {
		c.state = Loaded{Jurisdiction: code, Games: list}
		logging.Debug(c.logger, "session loaded",
			logging.FieldSeq, seq,
			logging.FieldJurisdiction, code.String(),
			logging.FieldCount, len(list),
		)
	}
	c.publishLocked()
}

// publishLocked must be called with c.mu held; it releases c.mu and delivers
// the new snapshot while holding notifyMu so deliveries keep change order.
func (c *Controller) publishLocked() {
	c.version++
	snap := c.snapshotLocked()
	listeners := slices.Clone(c.listeners)

	c.notifyMu.Lock()
	c.mu.Unlock()
	defer c.notifyMu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Version:      c.version,
		Seq:          c.seq,
		Jurisdiction: c.jurisdiction,
		State:        c.state,
		Layout:       c.layout,
		Filter:       c.filter,
	}
	if c.selected != nil {
		sel := *c.selected
		snap.Selected = &sel
	}
	return snap
}

// Visible returns the loaded games after applying the snapshot's filter, or
// nil when the state is not Loaded.
func (s Snapshot) Visible() []games.Game {
	loaded, ok := s.State.(Loaded)
	if !ok {
		return nil
	}
	return catalog.Search(loaded.Games, s.Filter)
}

func userMessage(err error) string {
	if fe, ok := providers.AsFetchError(err); ok {
		return fe.UserMessage()
	}
	return providers.UserMessage
}
