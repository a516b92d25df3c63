package engine

import (
	"fmt"

	"github.com/talgya/tu-tien/internal/game"
)

// SetPavilion installs a freshly generated pavilion snapshot, replacing any
// previous rotation.
func (g *Game) SetPavilion(p game.Pavilion) {
	g.st.Pavilion = &p
	g.addHistory("Vạn Bảo Lâu đã đổi mới hàng hóa.")
}

// BuyPavilionItem spends spirit stones on a pavilion consumable; its buff
// applies immediately, keyed by the item id.
func (g *Game) BuyPavilionItem(id string) error {
	st := g.st
	if st.Pavilion == nil {
		return fmt.Errorf("pavilion closed: %w", ErrValidation)
	}
	var item *game.PavilionItem
	for i := range st.Pavilion.Items {
		if st.Pavilion.Items[i].ID == id {
			item = &st.Pavilion.Items[i]
			break
		}
	}
	if item == nil {
		return fmt.Errorf("pavilion item %q: %w", id, ErrUnknownID)
	}
	if st.Stones < item.Cost {
		return fmt.Errorf("pavilion item %q needs %.0f stones: %w", id, item.Cost, ErrInsufficientFunds)
	}

	st.Stones -= item.Cost
	g.applyBuff(game.Buff{
		SourceID:  item.ID,
		Name:      item.Name,
		Remaining: item.Duration,
		Effect:    item.Effect,
	})
	g.addHistory(fmt.Sprintf("Bạn mua %s từ Vạn Bảo Lâu.", item.Name))
	return nil
}

// InteractPavilionNPC pays the interaction cost and surfaces the character
// as a pending friend candidate for the player to confirm.
func (g *Game) InteractPavilionNPC(id string) error {
	st := g.st
	if st.Pavilion == nil {
		return fmt.Errorf("pavilion closed: %w", ErrValidation)
	}
	var npc *game.PavilionNPC
	for i := range st.Pavilion.NPCs {
		if st.Pavilion.NPCs[i].ID == id {
			npc = &st.Pavilion.NPCs[i]
			break
		}
	}
	if npc == nil {
		return fmt.Errorf("pavilion character %q: %w", id, ErrUnknownID)
	}
	if st.Stones < npc.InteractionCost {
		return fmt.Errorf("interaction needs %.0f stones: %w", npc.InteractionCost, ErrInsufficientFunds)
	}

	st.Stones -= npc.InteractionCost
	st.PendingFriend = &game.PendingFriend{
		Name:       npc.Name,
		Realm:      npc.Realm,
		Background: npc.Background,
	}
	return nil
}
