package game

// EffectKind distinguishes how an effect folds into the qi rate.
type EffectKind string

const (
	// EffectAdditive adds its value to the flat qi/s base.
	EffectAdditive EffectKind = "additive"
	// EffectMultiplicative adds its value to the rate multiplier (0.05 = +5%).
	EffectMultiplicative EffectKind = "multiplicative"
)

// Effect is the single tagged-variant modifier shared by every consumer:
// elixirs, buffs, pavilion items, special effects, sect treasury items and
// map locations all carry one of these instead of structurally-similar
// ad hoc shapes.
type Effect struct {
	Kind  EffectKind `json:"kind"`
	Value float64    `json:"value"`
}

// ActionKind distinguishes what activating a special effect does.
type ActionKind string

const (
	ActionInstantQi ActionKind = "instant_qi"
	ActionBuff      ActionKind = "buff"
)

// Action is the payload of a special effect: either a one-shot qi grant or
// a timed buff.
type Action struct {
	Kind     ActionKind `json:"kind"`
	Value    float64    `json:"value"`              // instant qi amount
	Duration float64    `json:"duration,omitempty"` // buff duration, seconds
	Buff     Effect     `json:"buff,omitempty"`     // buff payload
}
