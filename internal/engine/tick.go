package engine

import (
	"fmt"
	"time"

	"github.com/talgya/tu-tien/internal/game"
)

// Tick advances the simulation by delta seconds. It is the single mutating
// entry point for the passage of time: qi accrual, aging, buff decay,
// spirit-vein charge, lazy timer resolution and at most one realm
// breakthrough per call. Correct for arbitrary positive deltas; the same
// path serves the 10 Hz timer and hour-long offline catch-up gaps.
//
// Ticks are cumulative, not idempotent: the caller must invoke it exactly
// once per elapsed interval, with non-overlapping deltas.
func (g *Game) Tick(delta float64) {
	if delta <= 0 {
		return
	}
	st := g.st

	st.Qi += g.QiPerSecond() * delta
	st.Age += delta / game.AgeSecondsPerYear

	// Buff decay. Expired buffs drop; order of the survivors is kept.
	kept := st.Buffs[:0]
	for _, b := range st.Buffs {
		b.Remaining -= delta
		if b.Remaining > 0 {
			kept = append(kept, b)
		} else {
			g.addHistory(fmt.Sprintf("Hiệu quả của %s đã hết.", b.Name))
		}
	}
	st.Buffs = kept

	if st.SpiritVeinCharge+delta < game.SpiritVeinMaxCharge {
		st.SpiritVeinCharge += delta
	} else {
		st.SpiritVeinCharge = game.SpiritVeinMaxCharge
	}

	// Each timer resolves in isolation: a panic in one must not starve
	// the others or kill the loop.
	g.safely(func() { g.resolveTravel() })
	g.safely(func() { g.resolveSectMission() })
	g.safely(func() { g.checkBreakthrough() })

	st.LastUpdate = g.now()
}

// safely runs fn and downgrades a panic to an error log entry.
func (g *Game) safely(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("tick step failed", "panic", r)
		}
	}()
	fn()
}

// checkBreakthrough advances at most one realm level per tick, even when qi
// exceeds several thresholds at once; the rest resolve on later ticks.
func (g *Game) checkBreakthrough() {
	st := g.st
	next := st.RealmLevel + 1
	if next >= len(game.Realms) {
		return
	}
	if st.Qi < game.BreakthroughThreshold(st.RealmLevel) {
		return
	}
	st.RealmLevel = next
	st.RealmName = game.Realms[next].Name
	st.Lifespan = game.Realms[next].Lifespan
	g.addHistory(fmt.Sprintf("Chúc mừng! Bạn đã đột phá tới %s!", st.RealmName))
	g.log.Info("realm breakthrough", "realm", st.RealmName, "level", next)
}

// CatchUp folds in passive gains for the wall-clock time the process was
// not running. The whole gap is applied at the rate computed at load time;
// intermediate breakthroughs and buff expiries are not replayed minute by
// minute. Returns the credited gap.
func (g *Game) CatchUp() time.Duration {
	gap := g.now().Sub(g.st.LastUpdate)
	if gap <= time.Second {
		return 0
	}
	g.Tick(gap.Seconds())
	g.log.Info("offline catch-up applied", "gap", gap.Round(time.Second))
	return gap
}
