package engine

import "github.com/talgya/tu-tien/internal/game"

// QiPerSecond computes the current passive qi rate from scratch. Pure with
// respect to the state: no caching, so any mutation that changes a
// contributing factor is reflected on the next call.
//
//	rate = (techniques + treasures + realm + location flat + rank + additive buffs)
//	       × (1 + equipment + location multiplier + multiplicative buffs)
func (g *Game) QiPerSecond() float64 {
	st := g.st

	base := 0.0
	for i := range st.Techniques {
		t := &st.Techniques[i]
		base += float64(t.Level) * t.QiPerLevel
	}
	for i := range st.Treasures {
		tr := &st.Treasures[i]
		if tr.Owned {
			base += tr.BaseQi + float64(tr.Level-1)*tr.QiPerLevel
		}
	}
	if st.RealmLevel >= 0 && st.RealmLevel < len(game.Realms) {
		base += game.Realms[st.RealmLevel].QiBonus
	}
	if rank := g.SectRank(); rank != nil {
		base += rank.QiBonus
	}

	mult := 1.0
	for _, id := range st.Equipped {
		if item := st.EquipmentByID(id); item != nil {
			mult += float64(item.Level) * item.BonusMultiplier
		}
	}

	// Location effects apply for the current location only, never while
	// the benefit of a pending destination is still in transit.
	if loc := st.LocationByID(st.CurrentLocationID); loc != nil && loc.Effect != nil {
		switch loc.Effect.Kind {
		case game.EffectAdditive:
			base += loc.Effect.Value
		case game.EffectMultiplicative:
			mult += loc.Effect.Value
		}
	}

	// Sect treasury rewards are permanent once bought.
	if st.PlayerSectID != nil {
		if sect := st.SectByID(*st.PlayerSectID); sect != nil {
			for i := range sect.Treasury {
				item := &sect.Treasury[i]
				if item.Effect == nil || !st.TreasuryBought[item.ID] {
					continue
				}
				switch item.Effect.Kind {
				case game.EffectAdditive:
					base += item.Effect.Value
				case game.EffectMultiplicative:
					mult += item.Effect.Value
				}
			}
		}
	}

	for i := range st.Buffs {
		b := &st.Buffs[i]
		switch b.Effect.Kind {
		case game.EffectAdditive:
			base += b.Effect.Value
		case game.EffectMultiplicative:
			mult += b.Effect.Value
		}
	}

	rate := base * mult
	if rate < 0 {
		return 0
	}
	return rate
}
