package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/tu-tien/internal/game"
	"github.com/talgya/tu-tien/internal/gen"
)

// Generated-content installation. The generation call itself runs outside
// the engine (it must not block ticks); when it resolves, exactly one of
// these methods performs a single atomic mutation plus a history entry. A
// failed call installs nothing; the host records the failure via AddLog.
// Results arriving after a Reset install harmlessly into the fresh state.

// InstallGenerated routes a gateway result to its installer. Dialogues and
// events are transient presentations and are not installable; the host
// shows them and feeds choices back through ResolveEventChoice.
func (g *Game) InstallGenerated(result any) error {
	switch r := result.(type) {
	case *game.Elixir:
		return g.AddGeneratedElixir(*r)
	case *game.Equipment:
		return g.AddGeneratedEquipment(*r)
	case *game.Challenge:
		return g.AddGeneratedChallenge(*r)
	case *game.Location:
		return g.AddGeneratedLocation(*r)
	case *game.Sect:
		return g.AddGeneratedSect(*r)
	case *game.SectMission:
		return g.AddGeneratedMission(*r)
	case *gen.Scenery:
		g.SetScenery(r.Description)
		return nil
	}
	return fmt.Errorf("result %T is not installable: %w", result, ErrValidation)
}

// ensureID fills a missing id with "prefix_" plus a random 128-bit uuid.
func ensureID(id, prefix string) string {
	if id != "" {
		return id
	}
	return prefix + "_" + uuid.NewString()
}

// AddGeneratedElixir appends a generated recipe to the elixir catalog.
func (g *Game) AddGeneratedElixir(e game.Elixir) error {
	e.ID = ensureID(e.ID, "elixir")
	if g.st.ElixirByID(e.ID) != nil {
		return fmt.Errorf("elixir %q exists: %w", e.ID, ErrValidation)
	}
	g.st.Elixirs = append(g.st.Elixirs, e)
	g.addHistory(fmt.Sprintf("Bạn thu được đan phương mới: %s.", e.Name))
	return nil
}

// AddGeneratedEquipment appends a generated item to the equipment catalog.
func (g *Game) AddGeneratedEquipment(e game.Equipment) error {
	e.ID = ensureID(e.ID, "equip")
	if g.st.EquipmentByID(e.ID) != nil {
		return fmt.Errorf("equipment %q exists: %w", e.ID, ErrValidation)
	}
	if e.Level < 1 {
		e.Level = 1
	}
	g.st.Equipment = append(g.st.Equipment, e)
	g.addHistory(fmt.Sprintf("Bạn thu được trang bị mới: %s.", e.Name))
	return nil
}

// AddGeneratedChallenge appends a generated challenge.
func (g *Game) AddGeneratedChallenge(c game.Challenge) error {
	c.ID = ensureID(c.ID, "challenge")
	if g.st.ChallengeByID(c.ID) != nil {
		return fmt.Errorf("challenge %q exists: %w", c.ID, ErrValidation)
	}
	g.st.Challenges = append(g.st.Challenges, c)
	g.addHistory(fmt.Sprintf("Thử thách mới xuất hiện: %s.", c.Name))
	return nil
}

// AddGeneratedLocation appends a generated map destination.
func (g *Game) AddGeneratedLocation(l game.Location) error {
	l.ID = ensureID(l.ID, "loc")
	if g.st.LocationByID(l.ID) != nil {
		return fmt.Errorf("location %q exists: %w", l.ID, ErrValidation)
	}
	g.st.Locations = append(g.st.Locations, l)
	g.addHistory(fmt.Sprintf("Bạn nghe nói về một vùng đất mới: %s.", l.Name))
	return nil
}

// AddGeneratedSect appends a generated sect.
func (g *Game) AddGeneratedSect(s game.Sect) error {
	s.ID = ensureID(s.ID, "sect")
	if g.st.SectByID(s.ID) != nil {
		return fmt.Errorf("sect %q exists: %w", s.ID, ErrValidation)
	}
	g.st.Sects = append(g.st.Sects, s)
	g.addHistory(fmt.Sprintf("Một tông môn mới xuất hiện: %s.", s.Name))
	return nil
}

// AddGeneratedMission appends a generated sect mission.
func (g *Game) AddGeneratedMission(m game.SectMission) error {
	m.ID = ensureID(m.ID, "mission")
	if g.st.MissionByID(m.ID) != nil {
		return fmt.Errorf("mission %q exists: %w", m.ID, ErrValidation)
	}
	g.st.SectMissions = append(g.st.SectMissions, m)
	return nil
}

// SetScenery installs a generated sect scenery description.
func (g *Game) SetScenery(description string) {
	g.st.SceneryDescription = &description
}

// SetPendingFriend surfaces a generated encounter for confirmation.
func (g *Game) SetPendingFriend(pf game.PendingFriend) {
	g.st.PendingFriend = &pf
}
