package engine_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/tu-tien/internal/engine"
	"github.com/talgya/tu-tien/internal/game"
)

func TestPickCredentialFallbacks(t *testing.T) {
	g := engine.New(game.NewState(), engine.WithRand(rand.New(rand.NewSource(1))))

	// Empty store.
	_, err := g.PickCredential()
	assert.ErrorIs(t, err, engine.ErrNoCredential)

	// No active group: any stored secret serves.
	g.AddAPIKey("main", "sk-aaa")
	key, err := g.PickCredential()
	require.NoError(t, err)
	assert.Equal(t, "sk-aaa", key)
}

func TestPickCredentialPrefersActiveGroup(t *testing.T) {
	g := engine.New(game.NewState(), engine.WithRand(rand.New(rand.NewSource(1))))

	g.AddAPIKey("outside", "sk-outside")
	inside := g.AddAPIKey("inside", "sk-inside")

	gid := g.CreateAPIKeyGroup("pool")
	require.NoError(t, g.UpdateAPIKeyGroup(gid, "pool", []string{inside}))
	require.NoError(t, g.SetActiveAPIKeyGroup(&gid))

	for i := 0; i < 10; i++ {
		key, err := g.PickCredential()
		require.NoError(t, err)
		assert.Equal(t, "sk-inside", key)
	}
}

func TestDeleteAPIKeyCascades(t *testing.T) {
	g := engine.New(game.NewState())
	st := g.State()

	kid := g.AddAPIKey("main", "sk-aaa")
	gid := g.CreateAPIKeyGroup("pool")
	require.NoError(t, g.UpdateAPIKeyGroup(gid, "pool", []string{kid}))

	g.DeleteAPIKey(kid)
	assert.Empty(t, st.API.Keys)
	assert.Empty(t, st.API.Groups[gid].KeyIDs)
}

func TestDeleteActiveGroupClearsPointer(t *testing.T) {
	g := engine.New(game.NewState())
	st := g.State()

	gid := g.CreateAPIKeyGroup("pool")
	require.NoError(t, g.SetActiveAPIKeyGroup(&gid))
	require.NotNil(t, st.API.ActiveGroupID)

	g.DeleteAPIKeyGroup(gid)
	assert.Nil(t, st.API.ActiveGroupID)
}

func TestSetActiveGroupValidation(t *testing.T) {
	g := engine.New(game.NewState())
	ghost := "no-such-group"
	assert.ErrorIs(t, g.SetActiveAPIKeyGroup(&ghost), engine.ErrUnknownID)
	assert.NoError(t, g.SetActiveAPIKeyGroup(nil))
	assert.ErrorIs(t, g.UpdateAPIKeyGroup(ghost, "x", nil), engine.ErrUnknownID)
}

func TestActiveGroupOfDeletedKeysFallsBack(t *testing.T) {
	g := engine.New(game.NewState(), engine.WithRand(rand.New(rand.NewSource(1))))

	kid := g.AddAPIKey("pooled", "sk-pooled")
	g.AddAPIKey("loose", "sk-loose")
	gid := g.CreateAPIKeyGroup("pool")
	require.NoError(t, g.UpdateAPIKeyGroup(gid, "pool", []string{kid}))
	require.NoError(t, g.SetActiveAPIKeyGroup(&gid))

	g.DeleteAPIKey(kid)
	key, err := g.PickCredential()
	require.NoError(t, err)
	assert.Equal(t, "sk-loose", key)
}
