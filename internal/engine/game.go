// Package engine is the authoritative simulation: per-tick qi accrual and
// aging, the purchase/upgrade economy, time-gated subsystems (travel, sect
// missions, companion cooldowns) and the narrative history log. A single
// Game owns one game.State; callers serialize all operations against it.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/talgya/tu-tien/internal/game"
)

// ErrValidation is the base class for recoverable operation rejections:
// insufficient funds, unknown ids, unmet prerequisites, busy slots, active
// cooldowns. Operations return an error wrapping it and leave the state
// untouched; nothing in this taxonomy ever panics the tick loop.
var ErrValidation = errors.New("validation failed")

var (
	ErrUnknownID         = fmt.Errorf("%w: unknown id", ErrValidation)
	ErrInsufficientFunds = fmt.Errorf("%w: insufficient funds", ErrValidation)
	ErrLocked            = fmt.Errorf("%w: prerequisite not met", ErrValidation)
	ErrBusy              = fmt.Errorf("%w: action already pending", ErrValidation)
	ErrCoolingDown       = fmt.Errorf("%w: cooldown active", ErrValidation)
	ErrAlreadyClaimed    = fmt.Errorf("%w: already claimed", ErrValidation)
	ErrAlreadyOwned      = fmt.Errorf("%w: already owned", ErrValidation)
	ErrNotOwned          = fmt.Errorf("%w: not owned", ErrValidation)
	ErrNotCompanion      = fmt.Errorf("%w: not a companion", ErrValidation)
	ErrNoCredential      = fmt.Errorf("%w: no credential available", ErrValidation)
)

// Game owns the game state and exposes every engine operation as a method.
// It is not internally concurrent: the host serializes the tick timer and
// user commands against it (the Loop does this for the headless runner).
type Game struct {
	st  *game.State
	log *slog.Logger
	now func() time.Time
	rng *rand.Rand

	// Transient session log, not persisted. Most-recent-first.
	session []string
}

// Option configures a Game.
type Option func(*Game)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// WithLogger overrides the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Game) { g.log = l }
}

// WithRand overrides the random source, for deterministic tests.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

// New wraps an existing state. There is no ambient singleton: tests and
// hosts construct as many independent instances as they need.
func New(st *game.State, opts ...Option) *Game {
	g := &Game{
		st:  st,
		log: slog.Default(),
		now: time.Now,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// State returns the underlying aggregate. The UI layer reads snapshots
// through it; mutation stays behind engine operations.
func (g *Game) State() *game.State {
	return g.st
}

// Reset reinstalls the seed state, discarding all progress.
func (g *Game) Reset() {
	g.st = game.NewState()
	g.session = nil
	g.log.Info("game reset to seed state")
}
