package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/tu-tien/internal/game"
)

// The credential store is engine-owned: the generation gateway receives a
// picked secret and never sees the store itself.

// AddAPIKey stores a named secret and returns its id.
func (g *Game) AddAPIKey(alias, key string) string {
	id := uuid.NewString()
	g.st.API.Keys[id] = game.APIKey{ID: id, Alias: alias, Key: key}
	return id
}

// DeleteAPIKey removes a secret and strips it from every group.
func (g *Game) DeleteAPIKey(id string) {
	st := g.st
	delete(st.API.Keys, id)
	for gid, grp := range st.API.Groups {
		kept := grp.KeyIDs[:0]
		for _, kid := range grp.KeyIDs {
			if kid != id {
				kept = append(kept, kid)
			}
		}
		grp.KeyIDs = kept
		st.API.Groups[gid] = grp
	}
}

// CreateAPIKeyGroup adds an empty named group and returns its id.
func (g *Game) CreateAPIKeyGroup(name string) string {
	id := uuid.NewString()
	g.st.API.Groups[id] = game.APIKeyGroup{ID: id, Name: name, KeyIDs: []string{}}
	return id
}

// UpdateAPIKeyGroup renames a group and replaces its membership.
func (g *Game) UpdateAPIKeyGroup(id, name string, keyIDs []string) error {
	grp, ok := g.st.API.Groups[id]
	if !ok {
		return fmt.Errorf("group %q: %w", id, ErrUnknownID)
	}
	grp.Name = name
	grp.KeyIDs = append([]string(nil), keyIDs...)
	g.st.API.Groups[id] = grp
	return nil
}

// DeleteAPIKeyGroup removes a group; deleting the active group clears the
// active pointer.
func (g *Game) DeleteAPIKeyGroup(id string) {
	st := g.st
	delete(st.API.Groups, id)
	if st.API.ActiveGroupID != nil && *st.API.ActiveGroupID == id {
		st.API.ActiveGroupID = nil
	}
}

// SetActiveAPIKeyGroup marks at most one group active. Nil clears it.
func (g *Game) SetActiveAPIKeyGroup(id *string) error {
	if id != nil {
		if _, ok := g.st.API.Groups[*id]; !ok {
			return fmt.Errorf("group %q: %w", *id, ErrUnknownID)
		}
	}
	g.st.API.ActiveGroupID = id
	return nil
}

// PickCredential chooses a secret for a generation call: uniformly at
// random within the active group when it has members, otherwise any stored
// secret, otherwise ErrNoCredential.
func (g *Game) PickCredential() (string, error) {
	api := g.st.API

	if api.ActiveGroupID != nil {
		if grp, ok := api.Groups[*api.ActiveGroupID]; ok && len(grp.KeyIDs) > 0 {
			// Dangling references are skipped; a group of only
			// deleted keys falls through to the global fallback.
			ids := make([]string, 0, len(grp.KeyIDs))
			for _, kid := range grp.KeyIDs {
				if _, ok := api.Keys[kid]; ok {
					ids = append(ids, kid)
				}
			}
			if len(ids) > 0 {
				return api.Keys[ids[g.rng.Intn(len(ids))]].Key, nil
			}
		}
	}

	for _, k := range api.Keys {
		return k.Key, nil
	}
	return "", ErrNoCredential
}
