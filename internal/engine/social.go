package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/tu-tien/internal/game"
)

// SongTuCooldown is the fixed delay between bonding sessions per companion.
const SongTuCooldown = 12 * time.Hour

// songTuRelationshipGain is the relationship reward for a bonding session.
const songTuRelationshipGain = 5

// ConfirmNewFriend accepts the pending encounter and installs the friend
// with a fresh id and relationship 0.
func (g *Game) ConfirmNewFriend() error {
	st := g.st
	if st.PendingFriend == nil {
		return fmt.Errorf("no pending friend: %w", ErrValidation)
	}
	f := game.Friend{
		ID:         uuid.NewString(),
		Name:       st.PendingFriend.Name,
		Realm:      st.PendingFriend.Realm,
		Background: st.PendingFriend.Background,
	}
	st.Friends = append(st.Friends, f)
	st.PendingFriend = nil
	g.addHistory(fmt.Sprintf("Bạn đã kết giao với %s.", f.Name))
	return nil
}

// CancelNewFriend discards the pending encounter.
func (g *Game) CancelNewFriend() {
	g.st.PendingFriend = nil
}

// SendGift spends spirit stones on a friend; relationship grows one point
// per stone.
func (g *Game) SendGift(friendID string, amount float64) error {
	st := g.st
	f := st.FriendByID(friendID)
	if f == nil {
		return fmt.Errorf("friend %q: %w", friendID, ErrUnknownID)
	}
	if amount <= 0 {
		return fmt.Errorf("amount must be positive: %w", ErrValidation)
	}
	if st.Stones < amount {
		return fmt.Errorf("gift of %.0f: %w", amount, ErrInsufficientFunds)
	}
	st.Stones -= amount
	f.Relationship += amount
	return nil
}

// FormPartnership promotes a friend to companion (đạo lữ) once the
// relationship has crossed the threshold.
func (g *Game) FormPartnership(friendID string) error {
	st := g.st
	f := st.FriendByID(friendID)
	if f == nil {
		return fmt.Errorf("friend %q: %w", friendID, ErrUnknownID)
	}
	if st.IsCompanion(friendID) {
		return fmt.Errorf("friend %q: %w", friendID, ErrAlreadyOwned)
	}
	if f.Relationship < game.CompanionThreshold {
		return fmt.Errorf("friend %q needs relationship %.0f: %w",
			friendID, game.CompanionThreshold, ErrLocked)
	}
	st.CompanionIDs = append(st.CompanionIDs, friendID)
	g.addHistory(fmt.Sprintf("Bạn và %s đã kết thành đạo lữ!", f.Name))
	g.log.Info("partnership formed", "friend", f.Name)
	return nil
}

// StartSongTu begins a bonding session with a companion: 12 hour cooldown
// per companion, rewarding relationship growth and a qi infusion worth one
// hour of the current rate.
func (g *Game) StartSongTu(friendID string) error {
	st := g.st
	f := st.FriendByID(friendID)
	if f == nil {
		return fmt.Errorf("friend %q: %w", friendID, ErrUnknownID)
	}
	if !st.IsCompanion(friendID) {
		return fmt.Errorf("friend %q: %w", friendID, ErrNotCompanion)
	}
	now := g.now()
	if ready, ok := st.SongTuCooldowns[friendID]; ok && now.Before(ready) {
		return fmt.Errorf("song tu with %q ready in %s: %w",
			friendID, ready.Sub(now).Round(time.Second), ErrCoolingDown)
	}

	st.SongTuCooldowns[friendID] = now.Add(SongTuCooldown)
	f.Relationship += songTuRelationshipGain
	st.Qi += g.QiPerSecond() * 3600
	g.addHistory(fmt.Sprintf("Bạn cùng %s song tu, linh khí đại tiến.", f.Name))
	return nil
}

// SongTuRemaining reports the cooldown left for a companion. Zero means
// ready; an absent entry is ready.
func (g *Game) SongTuRemaining(friendID string) time.Duration {
	ready, ok := g.st.SongTuCooldowns[friendID]
	if !ok {
		return 0
	}
	if rem := ready.Sub(g.now()); rem > 0 {
		return rem
	}
	return 0
}

// OpenDialogue installs generated dialogue content into the single slot.
// Opening it does not close the companion chat; only the engine clears
// either slot.
func (g *Game) OpenDialogue(friendName, content string) {
	g.st.ActiveDialogue = &game.Dialogue{FriendName: friendName, Content: content}
}

// CloseDialogue clears the dialogue slot.
func (g *Game) CloseDialogue() {
	g.st.ActiveDialogue = nil
}

// OpenCompanionChat starts a chat transcript with a companion.
func (g *Game) OpenCompanionChat(friendID string) error {
	f := g.st.FriendByID(friendID)
	if f == nil {
		return fmt.Errorf("friend %q: %w", friendID, ErrUnknownID)
	}
	if !g.st.IsCompanion(friendID) {
		return fmt.Errorf("friend %q: %w", friendID, ErrNotCompanion)
	}
	g.st.ActiveChat = &game.CompanionChat{FriendID: friendID, FriendName: f.Name}
	return nil
}

// AppendChatMessage adds one line to the open transcript.
func (g *Game) AppendChatMessage(sender game.ChatSender, text string) error {
	if g.st.ActiveChat == nil {
		return fmt.Errorf("no open chat: %w", ErrValidation)
	}
	g.st.ActiveChat.Messages = append(g.st.ActiveChat.Messages,
		game.ChatMessage{Sender: sender, Text: text})
	return nil
}

// CloseCompanionChat clears the chat slot.
func (g *Game) CloseCompanionChat() {
	g.st.ActiveChat = nil
}

// CollectSpiritVein cashes the accumulated charge: each stored second pays
// one second of the current rate, then the charge resets.
func (g *Game) CollectSpiritVein() error {
	st := g.st
	if st.SpiritVeinCharge <= 0 {
		return fmt.Errorf("spirit vein empty: %w", ErrValidation)
	}
	gained := g.QiPerSecond() * st.SpiritVeinCharge
	st.Qi += gained
	st.SpiritVeinCharge = 0
	g.addHistory("Bạn hấp thu linh mạch, thu được linh khí tích tụ.")
	return nil
}
