package engine

import (
	"context"
	"sync"
	"time"
)

// Default cadences for the headless runner.
const (
	TickInterval     = 100 * time.Millisecond // 10 Hz
	AutosaveInterval = 10 * time.Second
)

// Loop drives a Game at a fixed rate on a single goroutine, serializing
// ticks against an autosave callback so no two mutations interleave.
type Loop struct {
	Game     *Game
	Interval time.Duration // tick interval, TickInterval when zero
	Speed    float64       // multiplier: 1.0 = real-time, 0 = paused

	// OnAutosave runs every AutosaveInterval, between ticks.
	OnAutosave func()

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLoop wires a loop around a game with default cadence.
func NewLoop(g *Game) *Loop {
	return &Loop{
		Game:     g,
		Interval: TickInterval,
		Speed:    1.0,
		stop:     make(chan struct{}),
	}
}

// Run blocks until Stop is called or the context is cancelled. Each wakeup
// advances the game by the elapsed interval (scaled by Speed) and fires the
// autosave callback on its own cadence.
func (l *Loop) Run(ctx context.Context) {
	interval := l.Interval
	if interval <= 0 {
		interval = TickInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastSave := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.stop:
			return
		case <-ticker.C:
			if l.Speed <= 0 {
				continue
			}
			l.Game.Tick(interval.Seconds() * l.Speed)

			if l.OnAutosave != nil && time.Since(lastSave) >= AutosaveInterval {
				l.OnAutosave()
				lastSave = time.Now()
			}
		}
	}
}

// Stop halts a running loop. Safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
