// Package gen is the generative content gateway: it turns free-text prompts
// into structured game entities through a chat-completion API. The engine
// picks the credential and pre-validates any cost; this package knows
// nothing about game currencies.
package gen

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/talgya/tu-tien/internal/game"
)

// Kind selects which entity schema a generation call must produce.
type Kind string

const (
	KindElixir    Kind = "elixir"
	KindEquipment Kind = "equipment"
	KindChallenge Kind = "challenge"
	KindLocation  Kind = "location"
	KindSect      Kind = "sect"
	KindMission   Kind = "mission"
	KindDialogue  Kind = "dialogue"
	KindEvent     Kind = "event"
	KindScenery   Kind = "scenery"
)

// Dialogue is the result payload for KindDialogue.
type Dialogue struct {
	FriendName string `json:"friendName" jsonschema:"description=Name of the friend speaking"`
	Content    string `json:"content" jsonschema:"description=The dialogue text,minLength=1"`
}

// Scenery is the result payload for KindScenery.
type Scenery struct {
	Description string `json:"description" jsonschema:"description=Atmospheric description of the sect grounds,minLength=1"`
}

// resultFor returns a zero value to decode a kind's response into.
func resultFor(kind Kind) (any, error) {
	switch kind {
	case KindElixir:
		return &game.Elixir{}, nil
	case KindEquipment:
		return &game.Equipment{}, nil
	case KindChallenge:
		return &game.Challenge{}, nil
	case KindLocation:
		return &game.Location{}, nil
	case KindSect:
		return &game.Sect{}, nil
	case KindMission:
		return &game.SectMission{}, nil
	case KindDialogue:
		return &Dialogue{}, nil
	case KindEvent:
		return &game.Event{}, nil
	case KindScenery:
		return &Scenery{}, nil
	}
	return nil, fmt.Errorf("unknown kind %q", kind)
}

// SchemaFor reflects the kind's result type into a JSON schema, sent with
// every request so the model answers in the exact shape the decoder
// expects.
func SchemaFor(kind Kind) (json.RawMessage, error) {
	target, err := resultFor(kind)
	if err != nil {
		return nil, err
	}

	reflector := jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}
	schema := reflector.Reflect(target)

	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema for %q: %w", kind, err)
	}
	return raw, nil
}

// validate rejects decoded results missing the fields every consumer
// assumes. Shape conformance beyond this is the schema's job.
func validate(kind Kind, result any) error {
	switch r := result.(type) {
	case *game.Elixir:
		if r.Name == "" || r.Duration <= 0 {
			return fmt.Errorf("elixir missing name or duration")
		}
	case *game.Equipment:
		if r.Name == "" || r.Slot == "" {
			return fmt.Errorf("equipment missing name or slot")
		}
	case *game.Challenge:
		if r.Name == "" || r.Condition.Kind == "" {
			return fmt.Errorf("challenge missing name or condition")
		}
	case *game.Location:
		if r.Name == "" {
			return fmt.Errorf("location missing name")
		}
	case *game.Sect:
		if r.Name == "" || len(r.Ranks) == 0 {
			return fmt.Errorf("sect missing name or ranks")
		}
	case *game.SectMission:
		if r.Name == "" || r.Duration <= 0 {
			return fmt.Errorf("mission missing name or duration")
		}
	case *Dialogue:
		if r.Content == "" {
			return fmt.Errorf("dialogue missing content")
		}
	case *game.Event:
		if r.Title == "" || len(r.Choices) == 0 {
			return fmt.Errorf("event missing title or choices")
		}
	case *Scenery:
		if r.Description == "" {
			return fmt.Errorf("scenery missing description")
		}
	}
	return nil
}
