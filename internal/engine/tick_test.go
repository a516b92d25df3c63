package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/tu-tien/internal/engine"
	"github.com/talgya/tu-tien/internal/game"
)

// testGame builds an engine over the seed state with a controllable clock.
func testGame(t *testing.T) (*engine.Game, *time.Time) {
	t.Helper()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cur := &now
	g := engine.New(game.NewState(), engine.WithClock(func() time.Time { return *cur }))
	g.State().LastUpdate = now
	return g, cur
}

func advance(cur *time.Time, d time.Duration) {
	*cur = cur.Add(d)
}

func TestSeedRate(t *testing.T) {
	g, _ := testGame(t)
	// Level-1 starting technique at 0.1 qi per level, realm 0 grants no bonus.
	assert.InDelta(t, 0.1, g.QiPerSecond(), 1e-9)
}

func TestTickAccruesQi(t *testing.T) {
	g, _ := testGame(t)
	g.Tick(10)
	assert.InDelta(t, 1.0, g.State().Qi, 1e-9)
}

func TestTickAdditivity(t *testing.T) {
	a, _ := testGame(t)
	b, _ := testGame(t)

	a.Tick(2)
	a.Tick(3)
	b.Tick(5)

	assert.InDelta(t, b.State().Qi, a.State().Qi, 1e-9)
	assert.InDelta(t, b.State().Age, a.State().Age, 1e-9)
}

func TestTickAges(t *testing.T) {
	g, _ := testGame(t)
	start := g.State().Age
	g.Tick(game.AgeSecondsPerYear)
	assert.InDelta(t, start+1, g.State().Age, 1e-9)
}

func TestTickIgnoresNonPositiveDelta(t *testing.T) {
	g, _ := testGame(t)
	g.Tick(0)
	g.Tick(-5)
	assert.Zero(t, g.State().Qi)
}

func TestSpiritVeinChargeCaps(t *testing.T) {
	g, _ := testGame(t)
	g.Tick(game.SpiritVeinMaxCharge * 2)
	assert.Equal(t, game.SpiritVeinMaxCharge, g.State().SpiritVeinCharge)
}

func TestBuffLifecycle(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()
	st.Stones = 20

	require.NoError(t, g.CraftElixir("elixir_1"))
	require.Len(t, st.Inventory, 1)

	before := g.QiPerSecond()
	require.NoError(t, g.UseItem(st.Inventory[0].StackID))

	// Additive +5 applies immediately.
	assert.InDelta(t, before+5, g.QiPerSecond(), 1e-9)
	assert.Empty(t, st.Inventory)

	// After the full duration the buff is gone and the rate reverts.
	g.Tick(300)
	assert.Empty(t, st.Buffs)
	assert.InDelta(t, before, g.QiPerSecond(), 1e-9)
}

func TestBreakthroughAdvancesOneLevelPerTick(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()

	// Enough qi for several realms at once; each tick advances exactly one.
	st.Qi = game.BreakthroughThreshold(3)

	g.Tick(0.1)
	assert.Equal(t, 1, st.RealmLevel)
	assert.Equal(t, game.Realms[1].Name, st.RealmName)
	assert.Equal(t, game.Realms[1].Lifespan, st.Lifespan)

	g.Tick(0.1)
	assert.Equal(t, 2, st.RealmLevel)

	g.Tick(0.1)
	assert.Equal(t, 3, st.RealmLevel)
}

func TestBreakthroughBelowThresholdHolds(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()
	st.Qi = game.BreakthroughThreshold(0) - 1

	// The tick itself accrues a little qi; keep the delta tiny so the
	// total stays below the threshold.
	g.Tick(0.001)
	assert.Equal(t, 0, st.RealmLevel)
}

func TestCatchUpCreditsOfflineGap(t *testing.T) {
	g, cur := testGame(t)
	st := g.State()

	advance(cur, time.Hour)
	gap := g.CatchUp()

	assert.Equal(t, time.Hour, gap)
	assert.InDelta(t, 0.1*3600, st.Qi, 1e-6)
	assert.Equal(t, *cur, st.LastUpdate)
}

func TestCatchUpSkipsShortGap(t *testing.T) {
	g, cur := testGame(t)

	advance(cur, 500*time.Millisecond)
	assert.Zero(t, g.CatchUp())
	assert.Zero(t, g.State().Qi)
}
