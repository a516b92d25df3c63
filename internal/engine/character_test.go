package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/tu-tien/internal/engine"
	"github.com/talgya/tu-tien/internal/game"
)

func TestCreateCharacter(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()
	require.False(t, st.Created)

	require.NoError(t, g.CreateCharacter(game.GenderFemale, "Thanh tú thoát tục"))
	assert.True(t, st.Created)
	assert.Equal(t, game.GenderFemale, st.Gender)
	assert.Equal(t, "Thanh tú thoát tục", st.Appearance)
}

func TestCreateCharacterIdentityImmutable(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()

	require.NoError(t, g.CreateCharacter(game.GenderMale, game.Appearances[0]))

	err := g.CreateCharacter(game.GenderFemale, "Vẻ đẹp yêu dị")
	assert.ErrorIs(t, err, engine.ErrValidation)
	assert.Equal(t, game.GenderMale, st.Gender)
	assert.Equal(t, game.Appearances[0], st.Appearance)
}

func TestCreateCharacterRejectsOffCatalog(t *testing.T) {
	g, _ := testGame(t)
	st := g.State()

	assert.ErrorIs(t, g.CreateCharacter(game.Gender("Khác"), game.Appearances[0]), engine.ErrValidation)
	assert.ErrorIs(t, g.CreateCharacter(game.GenderMale, "tóc tím phát sáng"), engine.ErrValidation)
	assert.False(t, st.Created)
}
