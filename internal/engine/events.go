package engine

import (
	"fmt"

	"github.com/talgya/tu-tien/internal/game"
)

// Two independent logs: the durable history ring persists with the
// snapshot, the session log lives only in memory. Both are append-only,
// most-recent-first; entries leave only by cap eviction.

// addHistory prepends one line to both logs.
func (g *Game) addHistory(message string) {
	st := g.st

	entry := game.HistoryEntry{At: g.now(), Message: message}
	st.History = append([]game.HistoryEntry{entry}, st.History...)
	if len(st.History) > game.HistoryCap {
		st.History = st.History[:game.HistoryCap]
	}

	g.session = append([]string{message}, g.session...)
	if len(g.session) > game.SessionLogCap {
		g.session = g.session[:game.SessionLogCap]
	}
}

// AddLog records a host-supplied notable message (generation results,
// external errors) in both logs.
func (g *Game) AddLog(message string) {
	g.addHistory(message)
}

// SessionLog returns the transient log, most recent first.
func (g *Game) SessionLog() []string {
	out := make([]string, len(g.session))
	copy(out, g.session)
	return out
}

// ResolveEventChoice applies the currency deltas of a picked event choice.
// Negative outcomes clamp at zero; currencies never go negative.
func (g *Game) ResolveEventChoice(title string, choice game.EventChoice) {
	st := g.st
	st.Qi += choice.Qi
	if st.Qi < 0 {
		st.Qi = 0
	}
	st.Stones += choice.Stones
	if st.Stones < 0 {
		st.Stones = 0
	}
	g.addHistory(fmt.Sprintf("%s — %s", title, choice.Text))
}

// ToggleEventGeneration flips the random-event toggle.
func (g *Game) ToggleEventGeneration() {
	g.st.Settings.EventsEnabled = !g.st.Settings.EventsEnabled
}

// ToggleMatureMode flips the content-maturity toggle.
func (g *Game) ToggleMatureMode() {
	g.st.Settings.MatureEnabled = !g.st.Settings.MatureEnabled
}
