package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/tu-tien/internal/game"
)

// Timer resolution must survive a panic in one resolver without killing
// the tick or starving the steps that follow.

func TestSafelyRecoversPanic(t *testing.T) {
	g := New(game.NewState())

	ran := false
	assert.NotPanics(t, func() {
		g.safely(func() { panic("resolver blew up") })
		g.safely(func() { ran = true })
	})
	assert.True(t, ran, "steps after a recovered panic must still run")
}

func TestTickSurvivesCorruptTimerState(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	g := New(game.NewState(), WithClock(func() time.Time { return now }))
	st := g.State()

	// An in-flight travel whose destination was removed from the catalog
	// must not take the whole tick down with it.
	dest := "loc_gone"
	done := now.Add(-time.Minute)
	st.TravelDestination = &dest
	st.TravelCompleteAt = &done
	st.Locations = st.Locations[:0]

	before := st.Qi
	require.NotPanics(t, func() { g.Tick(1.0) })
	assert.Greater(t, st.Qi, before, "qi accrual must survive a broken resolver")
}
