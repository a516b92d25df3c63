package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/tu-tien/internal/game"
)

// Every operation in this file is a guarded state transition: preconditions
// are validated against the current state and either the mutation applies
// atomically or the state is left byte-for-byte untouched. Affordability is
// checked strictly before any deduction, so currencies never go negative.

// UpgradeTechnique spends qi to raise a technique one level. Prerequisites
// (minimum realm, or another technique at a minimum level) gate only the
// initial unlock; once past level 0 the only gate is cost.
func (g *Game) UpgradeTechnique(id string) error {
	st := g.st
	t := st.TechniqueByID(id)
	if t == nil {
		return fmt.Errorf("technique %q: %w", id, ErrUnknownID)
	}
	if t.Level == 0 {
		if err := g.checkPrereqs(t.Prereqs); err != nil {
			return fmt.Errorf("technique %q: %w", id, err)
		}
	}
	cost := t.UpgradeCost()
	if st.Qi < cost {
		return fmt.Errorf("technique %q needs %.0f qi: %w", id, cost, ErrInsufficientFunds)
	}
	st.Qi -= cost
	t.Level++
	if t.Level == 1 {
		g.addHistory(fmt.Sprintf("Bạn đã lĩnh ngộ %s.", t.Name))
	}
	return nil
}

func (g *Game) checkPrereqs(reqs []game.Prerequisite) error {
	for _, req := range reqs {
		switch req.Kind {
		case game.PrereqRealm:
			if g.st.RealmLevel < req.Level {
				return ErrLocked
			}
		case game.PrereqTechnique:
			dep := g.st.TechniqueByID(req.TechniqueID)
			if dep == nil || dep.Level < req.Level {
				return ErrLocked
			}
		}
	}
	return nil
}

// BuyTreasure purchases an unowned treasure for spirit stones. Ownership
// starts at level 1.
func (g *Game) BuyTreasure(id string) error {
	st := g.st
	tr := st.TreasureByID(id)
	if tr == nil {
		return fmt.Errorf("treasure %q: %w", id, ErrUnknownID)
	}
	if tr.Owned {
		return fmt.Errorf("treasure %q: %w", id, ErrAlreadyOwned)
	}
	if st.Stones < tr.BaseCost {
		return fmt.Errorf("treasure %q needs %.0f stones: %w", id, tr.BaseCost, ErrInsufficientFunds)
	}
	st.Stones -= tr.BaseCost
	tr.Owned = true
	tr.Level = 1
	g.addHistory(fmt.Sprintf("Bạn đã thu được pháp bảo %s.", tr.Name))
	return nil
}

// UpgradeTreasure raises an owned treasure one level for spirit stones.
func (g *Game) UpgradeTreasure(id string) error {
	st := g.st
	tr := st.TreasureByID(id)
	if tr == nil {
		return fmt.Errorf("treasure %q: %w", id, ErrUnknownID)
	}
	if !tr.Owned {
		return fmt.Errorf("treasure %q: %w", id, ErrNotOwned)
	}
	cost := tr.UpgradeCost()
	if st.Stones < cost {
		return fmt.Errorf("treasure %q needs %.0f stones: %w", id, cost, ErrInsufficientFunds)
	}
	st.Stones -= cost
	tr.Level++
	return nil
}

// UpgradeEquipment raises an equipment item one level for spirit stones.
func (g *Game) UpgradeEquipment(id string) error {
	st := g.st
	item := st.EquipmentByID(id)
	if item == nil {
		return fmt.Errorf("equipment %q: %w", id, ErrUnknownID)
	}
	cost := item.UpgradeCost()
	if st.Stones < cost {
		return fmt.Errorf("equipment %q needs %.0f stones: %w", id, cost, ErrInsufficientFunds)
	}
	st.Stones -= cost
	item.Level++
	return nil
}

// EquipItem places an item in its slot, displacing any prior occupant.
// Equipping the current occupant is a no-op.
func (g *Game) EquipItem(id string) error {
	st := g.st
	item := st.EquipmentByID(id)
	if item == nil {
		return fmt.Errorf("equipment %q: %w", id, ErrUnknownID)
	}
	if st.Equipped[item.Slot] == item.ID {
		return nil
	}
	st.Equipped[item.Slot] = item.ID
	return nil
}

// CraftElixir spends spirit stones to produce one unit of a recipe, merged
// into an existing stack when one exists.
func (g *Game) CraftElixir(id string) error {
	st := g.st
	rec := st.ElixirByID(id)
	if rec == nil {
		return fmt.Errorf("elixir %q: %w", id, ErrUnknownID)
	}
	if st.Stones < rec.Cost {
		return fmt.Errorf("elixir %q needs %.0f stones: %w", id, rec.Cost, ErrInsufficientFunds)
	}
	st.Stones -= rec.Cost
	g.addStack(rec.ID, rec.Name, rec.Description, game.ItemElixir, 1)
	g.addHistory(fmt.Sprintf("Luyện chế thành công %s.", rec.Name))
	return nil
}

// addStack merges count units into an existing stack of the same item, or
// appends a new stack with a fresh id.
func (g *Game) addStack(itemID, name, desc string, kind game.ItemKind, count int) {
	st := g.st
	for i := range st.Inventory {
		if st.Inventory[i].ItemID == itemID && st.Inventory[i].Kind == kind {
			st.Inventory[i].Quantity += count
			return
		}
	}
	st.Inventory = append(st.Inventory, game.InventoryItem{
		StackID:     uuid.NewString(),
		ItemID:      itemID,
		Name:        name,
		Description: desc,
		Kind:        kind,
		Quantity:    count,
	})
}

// UseItem consumes one unit of an elixir stack, converting it into an
// active buff. A buff from the same source replaces the remaining time of
// the old one instead of stacking.
func (g *Game) UseItem(stackID string) error {
	st := g.st
	stack := st.StackByID(stackID)
	if stack == nil {
		return fmt.Errorf("stack %q: %w", stackID, ErrUnknownID)
	}
	if stack.Kind != game.ItemElixir {
		return fmt.Errorf("stack %q is not usable: %w", stackID, ErrValidation)
	}
	rec := st.ElixirByID(stack.ItemID)
	if rec == nil {
		return fmt.Errorf("recipe %q: %w", stack.ItemID, ErrUnknownID)
	}

	g.applyBuff(game.Buff{
		SourceID:  rec.ID,
		Name:      rec.Name,
		Remaining: rec.Duration,
		Effect:    rec.Effect,
	})

	stack.Quantity--
	if stack.Quantity <= 0 {
		g.removeStack(stackID)
	}
	g.addHistory(fmt.Sprintf("Bạn đã sử dụng %s.", rec.Name))
	return nil
}

// applyBuff installs a buff, last-write-wins per source id.
func (g *Game) applyBuff(b game.Buff) {
	st := g.st
	for i := range st.Buffs {
		if st.Buffs[i].SourceID == b.SourceID {
			st.Buffs[i] = b
			return
		}
	}
	st.Buffs = append(st.Buffs, b)
}

func (g *Game) removeStack(stackID string) {
	st := g.st
	for i := range st.Inventory {
		if st.Inventory[i].StackID == stackID {
			st.Inventory = append(st.Inventory[:i], st.Inventory[i+1:]...)
			return
		}
	}
}

// DiscardItem removes up to quantity units from a stack, clamping to what
// is available. quantity <= 0 discards the whole stack.
func (g *Game) DiscardItem(stackID string, quantity int) error {
	st := g.st
	stack := st.StackByID(stackID)
	if stack == nil {
		return fmt.Errorf("stack %q: %w", stackID, ErrUnknownID)
	}
	if quantity <= 0 || quantity >= stack.Quantity {
		g.removeStack(stackID)
		return nil
	}
	stack.Quantity -= quantity
	return nil
}

// ActivateSpecialEffect fires an unlocked special effect: spends stones,
// starts its cooldown and applies an instant qi grant or a timed buff. An
// absent cooldown entry means ready.
func (g *Game) ActivateSpecialEffect(id string) error {
	st := g.st
	eff := g.specialByID(id)
	if eff == nil {
		return fmt.Errorf("special effect %q: %w", id, ErrUnknownID)
	}
	now := g.now()
	if ready, ok := st.EffectCooldowns[id]; ok && now.Before(ready) {
		return fmt.Errorf("special effect %q ready in %s: %w",
			id, ready.Sub(now).Round(time.Second), ErrCoolingDown)
	}
	if st.Stones < eff.Cost {
		return fmt.Errorf("special effect %q needs %.0f stones: %w", id, eff.Cost, ErrInsufficientFunds)
	}

	st.Stones -= eff.Cost
	st.EffectCooldowns[id] = now.Add(time.Duration(eff.Cooldown * float64(time.Second)))

	switch eff.Do.Kind {
	case game.ActionInstantQi:
		st.Qi += eff.Do.Value
	case game.ActionBuff:
		g.applyBuff(game.Buff{
			SourceID:  eff.ID,
			Name:      eff.Name,
			Remaining: eff.Do.Duration,
			Effect:    eff.Do.Buff,
		})
	}
	g.addHistory(fmt.Sprintf("Bạn đã thi triển %s.", eff.Name))
	return nil
}

// specialByID searches unlocked special effects across techniques and
// treasures. Locked effects (source below the unlock level) are invisible.
func (g *Game) specialByID(id string) *game.SpecialEffect {
	st := g.st
	for i := range st.Techniques {
		t := &st.Techniques[i]
		for j := range t.Specials {
			if t.Specials[j].ID == id && t.Level >= t.Specials[j].UnlockLevel {
				return &t.Specials[j]
			}
		}
	}
	for i := range st.Treasures {
		tr := &st.Treasures[i]
		if !tr.Owned {
			continue
		}
		for j := range tr.Specials {
			if tr.Specials[j].ID == id && tr.Level >= tr.Specials[j].UnlockLevel {
				return &tr.Specials[j]
			}
		}
	}
	return nil
}

// EffectCooldownRemaining reports how long until an effect is ready. Zero
// means ready now.
func (g *Game) EffectCooldownRemaining(id string) time.Duration {
	ready, ok := g.st.EffectCooldowns[id]
	if !ok {
		return 0
	}
	if rem := ready.Sub(g.now()); rem > 0 {
		return rem
	}
	return 0
}

// ClaimChallengeReward grants a challenge's reward once its completion
// predicate holds. Claiming a second time is rejected and grants nothing.
func (g *Game) ClaimChallengeReward(id string) error {
	st := g.st
	ch := st.ChallengeByID(id)
	if ch == nil {
		return fmt.Errorf("challenge %q: %w", id, ErrUnknownID)
	}
	for i := range st.ChallengeStates {
		if st.ChallengeStates[i].ID == id && st.ChallengeStates[i].Claimed {
			return fmt.Errorf("challenge %q: %w", id, ErrAlreadyClaimed)
		}
	}
	if !g.challengeComplete(ch) {
		return fmt.Errorf("challenge %q not complete: %w", id, ErrLocked)
	}

	st.Qi += ch.Reward.Qi
	st.Stones += ch.Reward.Stones
	st.ChallengeStates = append(st.ChallengeStates, game.ChallengeState{ID: id, Claimed: true})
	g.addHistory(fmt.Sprintf("Hoàn thành thử thách %s.", ch.Name))
	return nil
}

func (g *Game) challengeComplete(ch *game.Challenge) bool {
	switch ch.Condition.Kind {
	case game.CondQiPerSecond:
		return g.QiPerSecond() >= ch.Condition.Value
	case game.CondTotalQi:
		return g.st.Qi >= ch.Condition.Value
	case game.CondRealmLevel:
		return float64(g.st.RealmLevel) >= ch.Condition.Value
	}
	return false
}
