package engine

import (
	"fmt"
	"time"

	"github.com/talgya/tu-tien/internal/game"
)

// JoinSect enrolls the player. Membership is permanent for the lifetime of
// the character; contribution carries across sessions.
func (g *Game) JoinSect(id string) error {
	st := g.st
	if st.PlayerSectID != nil {
		return fmt.Errorf("already in a sect: %w", ErrBusy)
	}
	sect := st.SectByID(id)
	if sect == nil {
		return fmt.Errorf("sect %q: %w", id, ErrUnknownID)
	}
	st.PlayerSectID = &sect.ID
	g.addHistory(fmt.Sprintf("Bạn đã gia nhập %s.", sect.Name))
	g.log.Info("joined sect", "sect", sect.Name)
	return nil
}

// ContributeToSect converts spirit stones into sect contribution, one for
// one.
func (g *Game) ContributeToSect(amount float64) error {
	st := g.st
	if st.PlayerSectID == nil {
		return fmt.Errorf("no sect: %w", ErrValidation)
	}
	if amount <= 0 {
		return fmt.Errorf("amount must be positive: %w", ErrValidation)
	}
	if st.Stones < amount {
		return fmt.Errorf("contribution of %.0f: %w", amount, ErrInsufficientFunds)
	}
	st.Stones -= amount
	st.Contribution += amount
	return nil
}

// SectRank derives the player's rank: the highest rung whose contribution
// requirement is met. Nil when the player has no sect.
func (g *Game) SectRank() *game.SectRank {
	st := g.st
	if st.PlayerSectID == nil {
		return nil
	}
	sect := st.SectByID(*st.PlayerSectID)
	if sect == nil || len(sect.Ranks) == 0 {
		return nil
	}
	rank := &sect.Ranks[0]
	for i := range sect.Ranks {
		if st.Contribution >= sect.Ranks[i].Contribution {
			rank = &sect.Ranks[i]
		}
	}
	return rank
}

// sectRankIndex returns the derived rank's position in the ladder, -1
// without a sect.
func (g *Game) sectRankIndex() int {
	st := g.st
	if st.PlayerSectID == nil {
		return -1
	}
	sect := st.SectByID(*st.PlayerSectID)
	if sect == nil {
		return -1
	}
	idx := 0
	for i := range sect.Ranks {
		if st.Contribution >= sect.Ranks[i].Contribution {
			idx = i
		}
	}
	return idx
}

// StartSectMission books the single in-flight mission slot.
func (g *Game) StartSectMission(id string) error {
	st := g.st
	if st.PlayerSectID == nil {
		return fmt.Errorf("no sect: %w", ErrValidation)
	}
	if st.ActiveMission != nil {
		return fmt.Errorf("mission already active: %w", ErrBusy)
	}
	mission := st.MissionByID(id)
	if mission == nil {
		return fmt.Errorf("mission %q: %w", id, ErrUnknownID)
	}
	st.ActiveMission = &game.ActiveSectMission{
		MissionID:  mission.ID,
		CompleteAt: g.now().Add(time.Duration(mission.Duration * float64(time.Second))),
	}
	g.addHistory(fmt.Sprintf("Bạn nhận nhiệm vụ %s.", mission.Name))
	return nil
}

// resolveSectMission grants the contribution reward and frees the slot once
// the completion timestamp has passed. Folded into Tick.
func (g *Game) resolveSectMission() {
	st := g.st
	if st.ActiveMission == nil {
		return
	}
	if g.now().Before(st.ActiveMission.CompleteAt) {
		return
	}
	mission := st.MissionByID(st.ActiveMission.MissionID)
	st.ActiveMission = nil
	if mission == nil {
		return
	}
	st.Contribution += mission.Contribution
	g.addHistory(fmt.Sprintf("Hoàn thành nhiệm vụ %s, nhận %.0f cống hiến.",
		mission.Name, mission.Contribution))
	g.log.Info("sect mission complete", "mission", mission.Name, "contribution", mission.Contribution)
}

// MissionRemaining reports time left on the active mission, resolving an
// elapsed one first. Zero means the slot is free.
func (g *Game) MissionRemaining() time.Duration {
	g.resolveSectMission()
	if g.st.ActiveMission == nil {
		return 0
	}
	if rem := g.st.ActiveMission.CompleteAt.Sub(g.now()); rem > 0 {
		return rem
	}
	return 0
}

// BuySectItem spends contribution on a treasury item. Each item sells once;
// the derived rank gates the purchase. Bought items with an Effect
// contribute permanently to the qi rate.
func (g *Game) BuySectItem(id string) error {
	st := g.st
	if st.PlayerSectID == nil {
		return fmt.Errorf("no sect: %w", ErrValidation)
	}
	sect := st.SectByID(*st.PlayerSectID)
	if sect == nil {
		return fmt.Errorf("sect %q: %w", *st.PlayerSectID, ErrUnknownID)
	}
	var item *game.TreasuryItem
	for i := range sect.Treasury {
		if sect.Treasury[i].ID == id {
			item = &sect.Treasury[i]
			break
		}
	}
	if item == nil {
		return fmt.Errorf("treasury item %q: %w", id, ErrUnknownID)
	}
	if st.TreasuryBought[id] {
		return fmt.Errorf("treasury item %q: %w", id, ErrAlreadyOwned)
	}
	if g.sectRankIndex() < item.RankRequired {
		return fmt.Errorf("treasury item %q needs rank %d: %w", id, item.RankRequired, ErrLocked)
	}
	if st.Contribution < item.Cost {
		return fmt.Errorf("treasury item %q needs %.0f contribution: %w", id, item.Cost, ErrInsufficientFunds)
	}
	st.Contribution -= item.Cost
	st.TreasuryBought[id] = true
	g.addHistory(fmt.Sprintf("Bạn đổi được %s từ kho báu tông môn.", item.Name))
	return nil
}
