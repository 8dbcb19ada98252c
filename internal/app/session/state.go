package session

import (
	"github.com/preston-bernstein/scratchers-service/internal/domain/games"
	"github.com/preston-bernstein/scratchers-service/internal/jurisdiction"
)

// Phase names the variant of a State.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseFailed  Phase = "failed"
)

// State is the list-view state. It is exactly one of Idle, Loading, Loaded or Failed.
type State interface {
	Phase() Phase
}

// Idle is the state before any fetch has been requested.
type Idle struct{}

// Loading means a fetch for Jurisdiction is outstanding.
type Loading struct {
	Jurisdiction jurisdiction.Code
}

// Loaded holds the ranked collection for Jurisdiction.
type Loaded struct {
	Jurisdiction jurisdiction.Code
	Games        []games.Game
}

// Failed holds the failure of the latest fetch for Jurisdiction. Message is
// user-facing; Err is the underlying cause.
type Failed struct {
	Jurisdiction jurisdiction.Code
	Message      string
	Err          error
}

func (Idle) Phase() Phase    { return PhaseIdle }
func (Loading) Phase() Phase { return PhaseLoading }
func (Loaded) Phase() Phase  { return PhaseLoaded }
func (Failed) Phase() Phase  { return PhaseFailed }

// Layout is the list presentation mode.
type Layout string

const (
	LayoutGrid Layout = "grid"
	LayoutList Layout = "list"
)

// Snapshot is an immutable copy of a session at one point in time.
type Snapshot struct {
	// Version increases on every change.
	Version uint64
	// Seq is the sequence number of the latest issued fetch.
	Seq          uint64
	Jurisdiction jurisdiction.Code
	State        State
	// Selected is the record shown in the detail view, if any. It is
	// independent of State and survives refetches until dismissed.
	Selected *games.Game
	Layout   Layout
	Filter   string
}
