package engine_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/tu-tien/internal/engine"
	"github.com/talgya/tu-tien/internal/game"
	"github.com/talgya/tu-tien/internal/gen"
)

func TestHistoryCapAndOrder(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()

	for i := 0; i < game.HistoryCap+20; i++ {
		g.AddLog(fmt.Sprintf("entry %d", i))
	}

	require.Len(t, st.History, game.HistoryCap)
	// Most recent first; the oldest entries were evicted.
	assert.Equal(t, fmt.Sprintf("entry %d", game.HistoryCap+19), st.History[0].Message)
}

func TestSessionLogCap(t *testing.T) {
	g, _ := testGame(t)

	for i := 0; i < game.SessionLogCap+10; i++ {
		g.AddLog(fmt.Sprintf("entry %d", i))
	}

	logs := g.SessionLog()
	require.Len(t, logs, game.SessionLogCap)
	assert.Equal(t, fmt.Sprintf("entry %d", game.SessionLogCap+9), logs[0])
}

func TestSessionLogNotShared(t *testing.T) {
	g, _ := testGame(t)
	g.AddLog("one")
	logs := g.SessionLog()
	logs[0] = "tampered"
	assert.Equal(t, "one", g.SessionLog()[0])
}

func TestResolveEventChoiceClampsAtZero(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()
	st.Qi = 5
	st.Stones = 5

	g.ResolveEventChoice("Kỳ Ngộ", game.EventChoice{Text: "Nhận lấy", Qi: 100, Stones: 10})
	assert.Equal(t, 105.0, st.Qi)
	assert.Equal(t, 15.0, st.Stones)

	g.ResolveEventChoice("Tai Họa", game.EventChoice{Text: "Chống cự", Qi: -1000, Stones: -1000})
	assert.Zero(t, st.Qi)
	assert.Zero(t, st.Stones)
}

func TestSettingToggles(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()

	assert.True(t, st.Settings.EventsEnabled)
	g.ToggleEventGeneration()
	assert.False(t, st.Settings.EventsEnabled)

	assert.False(t, st.Settings.MatureEnabled)
	g.ToggleMatureMode()
	assert.True(t, st.Settings.MatureEnabled)
}

func TestGeneratedContentInstallsOnce(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()

	el := game.Elixir{ID: "elixir_gen", Name: "Cửu Chuyển Đan", Cost: 100, Duration: 60,
		Effect: game.Effect{Kind: game.EffectMultiplicative, Value: 1}}
	require.NoError(t, g.AddGeneratedElixir(el))
	assert.Error(t, g.AddGeneratedElixir(el))
	assert.NotNil(t, st.ElixirByID("elixir_gen"))

	// Missing ids get generated.
	require.NoError(t, g.AddGeneratedChallenge(game.Challenge{Name: "Vô Danh"}))
	assert.NotEmpty(t, st.Challenges[len(st.Challenges)-1].ID)
}

func TestInstallGeneratedDispatch(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()

	loc := &game.Location{Name: "Hắc Phong Cốc", TravelCost: 10, TravelTime: 60}
	require.NoError(t, g.InstallGenerated(loc))
	installed := st.Locations[len(st.Locations)-1]
	assert.NotEmpty(t, installed.ID)
	assert.Equal(t, "Hắc Phong Cốc", installed.Name)

	require.NoError(t, g.InstallGenerated(&gen.Scenery{Description: "Sương mù giăng kín."}))
	require.NotNil(t, st.SceneryDescription)
	assert.Equal(t, "Sương mù giăng kín.", *st.SceneryDescription)

	err := g.InstallGenerated(&gen.Dialogue{Content: "..."})
	assert.ErrorIs(t, err, engine.ErrValidation)
}

func TestPavilionFlow(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()

	assert.Error(t, g.BuyPavilionItem("pav_1"))

	g.SetPavilion(game.Pavilion{
		Description: "Vạn Bảo Lâu rực rỡ ánh đèn.",
		Items: []game.PavilionItem{{
			ID: "pav_1", Name: "Linh Tuyền Lộ", Cost: 30, Duration: 120,
			Effect: game.Effect{Kind: game.EffectAdditive, Value: 2},
		}},
		NPCs: []game.PavilionNPC{{
			ID: "npc_1", Name: "Tô Vân", Realm: "Kim Đan Kỳ", InteractionCost: 5,
		}},
	})
	require.NotNil(t, st.Pavilion)

	st.Stones = 35
	base := g.QiPerSecond()
	require.NoError(t, g.BuyPavilionItem("pav_1"))
	assert.InDelta(t, base+2, g.QiPerSecond(), 1e-9)
	assert.Equal(t, 5.0, st.Stones)

	require.NoError(t, g.InteractPavilionNPC("npc_1"))
	require.NotNil(t, st.PendingFriend)
	assert.Equal(t, "Tô Vân", st.PendingFriend.Name)
	assert.Zero(t, st.Stones)
}
