package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/tu-tien/internal/engine"
	"github.com/talgya/tu-tien/internal/game"
)

func TestUpgradeTechniqueInsufficientQi(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()
	st.Qi = 10

	// tech_1 at level 1 costs 10 × 1.2^1 = 12.
	err := g.UpgradeTechnique("tech_1")
	assert.ErrorIs(t, err, engine.ErrInsufficientFunds)
	assert.Equal(t, 10.0, st.Qi)
	assert.Equal(t, 1, st.TechniqueByID("tech_1").Level)
}

func TestUpgradeTechnique(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()
	st.Qi = 12

	require.NoError(t, g.UpgradeTechnique("tech_1"))
	assert.InDelta(t, 0.0, st.Qi, 1e-9)
	assert.Equal(t, 2, st.TechniqueByID("tech_1").Level)
}

func TestUpgradeTechniqueUnknown(t *testing.T) {
	g, _ := testGame(t)
	assert.ErrorIs(t, g.UpgradeTechnique("tech_nope"), engine.ErrUnknownID)
}

func TestTechniquePrereqGatesOnlyUnlock(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()
	st.Qi = 1e9

	// tech_2 requires realm 1 to unlock.
	assert.ErrorIs(t, g.UpgradeTechnique("tech_2"), engine.ErrLocked)
	assert.Equal(t, 0, st.TechniqueByID("tech_2").Level)

	st.RealmLevel = 1
	require.NoError(t, g.UpgradeTechnique("tech_2"))
	assert.Equal(t, 1, st.TechniqueByID("tech_2").Level)

	// Once unlocked, further upgrades ignore the prerequisite.
	st.RealmLevel = 0
	require.NoError(t, g.UpgradeTechnique("tech_2"))
	assert.Equal(t, 2, st.TechniqueByID("tech_2").Level)
}

func TestBuyTreasure(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()
	st.Stones = 50

	require.NoError(t, g.BuyTreasure("treasure_1"))
	tr := st.TreasureByID("treasure_1")
	assert.Equal(t, 0.0, st.Stones)
	assert.True(t, tr.Owned)
	assert.Equal(t, 1, tr.Level)

	// Buying again is rejected.
	assert.ErrorIs(t, g.BuyTreasure("treasure_1"), engine.ErrAlreadyOwned)
}

func TestUpgradeTreasureCostCurve(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()
	st.Stones = 50 + 25 + 37.5 // buy, then level 1→2 (25×1.5^0), 2→3 (25×1.5^1)

	require.NoError(t, g.BuyTreasure("treasure_1"))
	require.NoError(t, g.UpgradeTreasure("treasure_1"))
	require.NoError(t, g.UpgradeTreasure("treasure_1"))

	assert.InDelta(t, 0.0, st.Stones, 1e-9)
	assert.Equal(t, 3, st.TreasureByID("treasure_1").Level)

	assert.ErrorIs(t, g.UpgradeTreasure("treasure_1"), engine.ErrInsufficientFunds)
}

func TestUpgradeTreasureRequiresOwnership(t *testing.T) {
	g, _ := testGame(t)
	g.State().Stones = 1e6
	assert.ErrorIs(t, g.UpgradeTreasure("treasure_1"), engine.ErrNotOwned)
}

func TestOwnedTreasureFeedsRate(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()
	st.Stones = 75

	base := g.QiPerSecond()
	require.NoError(t, g.BuyTreasure("treasure_1"))
	// Level 1: flat bonus only.
	assert.InDelta(t, base+1, g.QiPerSecond(), 1e-9)

	require.NoError(t, g.UpgradeTreasure("treasure_1"))
	// Level 2: flat 1 + (2-1)×0.5.
	assert.InDelta(t, base+1.5, g.QiPerSecond(), 1e-9)
}

func TestEquipItem(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()
	st.Equipment = []game.Equipment{
		{ID: "sword", Slot: game.SlotWeapon, Level: 2, BaseCost: 100, CostMultiplier: 1.4, BonusMultiplier: 0.05},
		{ID: "saber", Slot: game.SlotWeapon, Level: 1, BaseCost: 100, CostMultiplier: 1.4, BonusMultiplier: 0.05},
	}

	require.NoError(t, g.EquipItem("sword"))
	assert.Equal(t, "sword", st.Equipped[game.SlotWeapon])

	// Equipping with the slot rate: level 2 × 0.05 = +10%.
	assert.InDelta(t, 0.1*1.10, g.QiPerSecond(), 1e-9)

	// A second weapon displaces the first.
	require.NoError(t, g.EquipItem("saber"))
	assert.Equal(t, "saber", st.Equipped[game.SlotWeapon])

	// Re-equipping the occupant is a no-op.
	require.NoError(t, g.EquipItem("saber"))
	assert.Equal(t, "saber", st.Equipped[game.SlotWeapon])
}

func TestUpgradeEquipmentCostCurve(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()
	st.Equipment = []game.Equipment{
		{ID: "sword", Slot: game.SlotWeapon, Level: 1, BaseCost: 100, CostMultiplier: 1.4, BonusMultiplier: 0.05},
	}
	st.Stones = 100 // level 1→2 costs 100×1.4^0

	require.NoError(t, g.UpgradeEquipment("sword"))
	assert.Equal(t, 2, st.EquipmentByID("sword").Level)
	assert.InDelta(t, 0.0, st.Stones, 1e-9)

	// Next level costs 140.
	st.Stones = 139
	assert.ErrorIs(t, g.UpgradeEquipment("sword"), engine.ErrInsufficientFunds)
}

func TestCraftElixirMergesStacks(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()
	st.Stones = 40

	require.NoError(t, g.CraftElixir("elixir_1"))
	require.NoError(t, g.CraftElixir("elixir_1"))

	require.Len(t, st.Inventory, 1)
	assert.Equal(t, 2, st.Inventory[0].Quantity)
	assert.Equal(t, game.ItemElixir, st.Inventory[0].Kind)
	assert.InDelta(t, 0.0, st.Stones, 1e-9)

	assert.ErrorIs(t, g.CraftElixir("elixir_1"), engine.ErrInsufficientFunds)
}

func TestUseItemRefreshesBuffInsteadOfStacking(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()
	st.Stones = 40

	require.NoError(t, g.CraftElixir("elixir_1"))
	require.NoError(t, g.CraftElixir("elixir_1"))
	stackID := st.Inventory[0].StackID

	require.NoError(t, g.UseItem(stackID))
	g.Tick(100)
	require.Len(t, st.Buffs, 1)
	assert.InDelta(t, 200, st.Buffs[0].Remaining, 1e-9)

	// Second use resets the timer; still one buff, rate unchanged.
	require.NoError(t, g.UseItem(stackID))
	require.Len(t, st.Buffs, 1)
	assert.InDelta(t, 300, st.Buffs[0].Remaining, 1e-9)
	assert.InDelta(t, 0.1+5, g.QiPerSecond(), 1e-9)
}

func TestUseItemRejectsNonElixir(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()
	st.Inventory = append(st.Inventory, game.InventoryItem{
		StackID: "stk_1", ItemID: "ore", Name: "Huyền Thiết", Kind: game.ItemMaterial, Quantity: 3,
	})
	assert.ErrorIs(t, g.UseItem("stk_1"), engine.ErrValidation)
	assert.Equal(t, 3, st.StackByID("stk_1").Quantity)
}

func TestDiscardItem(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()
	st.Inventory = append(st.Inventory, game.InventoryItem{
		StackID: "stk_1", ItemID: "ore", Kind: game.ItemMaterial, Quantity: 5,
	})

	require.NoError(t, g.DiscardItem("stk_1", 2))
	assert.Equal(t, 3, st.StackByID("stk_1").Quantity)

	// Clamp past the stack size removes the stack.
	require.NoError(t, g.DiscardItem("stk_1", 99))
	assert.Nil(t, st.StackByID("stk_1"))

	assert.ErrorIs(t, g.DiscardItem("stk_1", 1), engine.ErrUnknownID)
}

func TestDiscardWholeStackByDefault(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()
	st.Inventory = append(st.Inventory, game.InventoryItem{
		StackID: "stk_1", ItemID: "ore", Kind: game.ItemMaterial, Quantity: 5,
	})
	require.NoError(t, g.DiscardItem("stk_1", 0))
	assert.Empty(t, st.Inventory)
}

func withSpecialEffect(st *game.State) *game.SpecialEffect {
	st.Techniques[0].Specials = []game.SpecialEffect{{
		ID: "fx_1", SourceID: "tech_1", Name: "Tiểu Chu Thiên",
		UnlockLevel: 1, Cost: 10, Cooldown: 60,
		Do: game.Action{Kind: game.ActionInstantQi, Value: 500},
	}}
	return &st.Techniques[0].Specials[0]
}

func TestActivateSpecialEffect(t *testing.T) {
	g, cur := testGame(t)
	st := g.State()
	withSpecialEffect(st)
	st.Stones = 20

	require.NoError(t, g.ActivateSpecialEffect("fx_1"))
	assert.Equal(t, 500.0, st.Qi)
	assert.Equal(t, 10.0, st.Stones)
	assert.Equal(t, 60*time.Second, g.EffectCooldownRemaining("fx_1"))

	// Immediate reactivation fails until the cooldown passes, funds or not.
	err := g.ActivateSpecialEffect("fx_1")
	assert.ErrorIs(t, err, engine.ErrCoolingDown)
	assert.Equal(t, 10.0, st.Stones)

	advance(cur, 61*time.Second)
	assert.Zero(t, g.EffectCooldownRemaining("fx_1"))
	require.NoError(t, g.ActivateSpecialEffect("fx_1"))
	assert.InDelta(t, 0.0, st.Stones, 1e-9)
}

func TestActivateSpecialEffectBuffKind(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()
	fx := withSpecialEffect(st)
	fx.Do = game.Action{
		Kind: game.ActionBuff, Duration: 120,
		Buff: game.Effect{Kind: game.EffectMultiplicative, Value: 0.5},
	}
	st.Stones = 10

	base := g.QiPerSecond()
	require.NoError(t, g.ActivateSpecialEffect("fx_1"))
	assert.InDelta(t, base*1.5, g.QiPerSecond(), 1e-9)
}

func TestLockedSpecialEffectInvisible(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()
	fx := withSpecialEffect(st)
	fx.UnlockLevel = 5
	st.Stones = 100

	assert.ErrorIs(t, g.ActivateSpecialEffect("fx_1"), engine.ErrUnknownID)
}

func TestClaimChallengeRewardOnce(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()

	// challenge_1 wants 1 qi/s; seed rate is 0.1.
	assert.ErrorIs(t, g.ClaimChallengeReward("challenge_1"), engine.ErrLocked)

	st.Techniques[0].Level = 10 // rate 1.0
	require.NoError(t, g.ClaimChallengeReward("challenge_1"))
	assert.Equal(t, 100.0, st.Qi)
	assert.Equal(t, 10.0, st.Stones)

	// Second claim grants nothing.
	assert.ErrorIs(t, g.ClaimChallengeReward("challenge_1"), engine.ErrAlreadyClaimed)
	assert.Equal(t, 100.0, st.Qi)
	assert.Equal(t, 10.0, st.Stones)
}

func TestChallengeConditionKinds(t *testing.T) {
	tests := []struct {
		name string
		cond game.Condition
		prep func(st *game.State)
		ok   bool
	}{
		{"total qi met", game.Condition{Kind: game.CondTotalQi, Value: 50}, func(st *game.State) { st.Qi = 60 }, true},
		{"total qi unmet", game.Condition{Kind: game.CondTotalQi, Value: 50}, func(st *game.State) { st.Qi = 40 }, false},
		{"realm met", game.Condition{Kind: game.CondRealmLevel, Value: 2}, func(st *game.State) { st.RealmLevel = 2 }, true},
		{"realm unmet", game.Condition{Kind: game.CondRealmLevel, Value: 2}, func(st *game.State) { st.RealmLevel = 1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := testGame(t)
			st := g.State()
			st.Challenges = append(st.Challenges, game.Challenge{
				ID: "ch_x", Name: "x", Condition: tt.cond, Reward: game.Reward{Qi: 1},
			})
			tt.prep(st)
			err := g.ClaimChallengeReward("ch_x")
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, engine.ErrLocked)
			}
		})
	}
}
