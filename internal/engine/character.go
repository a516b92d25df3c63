package engine

import (
	"fmt"

	"github.com/talgya/tu-tien/internal/game"
)

// CreateCharacter fixes the player's identity. It runs exactly once, on a
// fresh state before the first save exists; gender and appearance are
// immutable afterwards. The appearance must come from the catalog.
func (g *Game) CreateCharacter(gender game.Gender, appearance string) error {
	st := g.st
	if st.Created {
		return fmt.Errorf("create character: %w", ErrAlreadyOwned)
	}
	if gender != game.GenderMale && gender != game.GenderFemale {
		return fmt.Errorf("create character: gender %q: %w", gender, ErrUnknownID)
	}
	if !validAppearance(appearance) {
		return fmt.Errorf("create character: appearance %q: %w", appearance, ErrUnknownID)
	}

	st.Created = true
	st.Gender = gender
	st.Appearance = appearance
	st.LastUpdate = g.now()
	return nil
}

func validAppearance(appearance string) bool {
	for _, a := range game.Appearances {
		if a == appearance {
			return true
		}
	}
	return false
}
