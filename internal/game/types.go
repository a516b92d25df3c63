// Package game holds the data model for the cultivation engine: entity
// catalogs, the shared Effect variant, the realm ladder and the State
// aggregate that owns all mutable player progress.
package game

import "time"

// PrereqKind distinguishes technique unlock requirements.
type PrereqKind string

const (
	PrereqRealm     PrereqKind = "realm"
	PrereqTechnique PrereqKind = "technique"
)

// Prerequisite gates the initial unlock of a technique (level 0 → 1).
// Either a minimum realm level or another technique at a minimum level.
type Prerequisite struct {
	Kind        PrereqKind `json:"kind"`
	Level       int        `json:"level"`
	TechniqueID string     `json:"techniqueId,omitempty"`
}

// SpecialEffect is an activatable ability unlocked by leveling its source
// technique or treasure. Activation costs spirit stones and starts a
// cooldown keyed by the effect id.
type SpecialEffect struct {
	ID          string  `json:"id"`
	SourceID    string  `json:"sourceId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	UnlockLevel int     `json:"unlockLevel"`
	Cost        float64 `json:"cost"`     // spirit stones
	Cooldown    float64 `json:"cooldown"` // seconds
	Do          Action  `json:"do"`
}

// Technique is an upgradeable cultivation method. Level starts at 0; the
// upgrade cost exponent is the current level (0-indexed convention).
type Technique struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Level          int             `json:"level"`
	BaseCost       float64         `json:"baseCost"`
	CostMultiplier float64         `json:"costMultiplier"`
	QiPerLevel     float64         `json:"qiPerLevel"`
	Prereqs        []Prerequisite  `json:"prereqs,omitempty"`
	Specials       []SpecialEffect `json:"specials,omitempty"`
}

// UpgradeCost returns the qi cost of the next level.
func (t *Technique) UpgradeCost() float64 {
	return t.BaseCost * pow(t.CostMultiplier, t.Level)
}

// Treasure is a magic treasure: bought once, then upgradeable. Level starts
// at 1 once owned, so the upgrade cost exponent is level-1.
type Treasure struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Owned             bool            `json:"owned"`
	Level             int             `json:"level"`
	BaseCost          float64         `json:"baseCost"` // purchase, spirit stones
	UpgradeBase       float64         `json:"upgradeBase"`
	UpgradeMultiplier float64         `json:"upgradeMultiplier"`
	BaseQi            float64         `json:"baseQi"`
	QiPerLevel        float64         `json:"qiPerLevel"`
	Specials          []SpecialEffect `json:"specials,omitempty"`
}

// UpgradeCost returns the spirit stone cost of the next level.
func (tr *Treasure) UpgradeCost() float64 {
	return tr.UpgradeBase * pow(tr.UpgradeMultiplier, tr.Level-1)
}

// EquipmentSlot places an equipment item on the body.
type EquipmentSlot string

const (
	SlotWeapon    EquipmentSlot = "weapon"
	SlotArmor     EquipmentSlot = "armor"
	SlotAccessory EquipmentSlot = "accessory"
)

// Equipment is a slot-bound item granting a multiplicative qi bonus while
// equipped. Level starts at 1; upgrade cost exponent is level-1.
type Equipment struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	Slot            EquipmentSlot `json:"slot"`
	Level           int           `json:"level"`
	BaseCost        float64       `json:"baseCost"`
	CostMultiplier  float64       `json:"costMultiplier"`
	BonusMultiplier float64       `json:"bonusMultiplier"` // per level, 0.05 = +5%
}

// UpgradeCost returns the spirit stone cost of the next level.
func (e *Equipment) UpgradeCost() float64 {
	return e.BaseCost * pow(e.CostMultiplier, e.Level-1)
}

// Elixir is a craftable recipe. Crafting adds a unit to the inventory; using
// the unit converts it into a timed Buff.
type Elixir struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`     // spirit stones to craft
	Duration    float64 `json:"duration"` // buff seconds
	Effect      Effect  `json:"effect"`
}

// ItemKind classifies inventory stacks.
type ItemKind string

const (
	ItemElixir   ItemKind = "elixir"
	ItemMaterial ItemKind = "material"
	ItemQuest    ItemKind = "quest"
)

// InventoryItem is an owned stack. StackID is unique per stack; ItemID
// references the catalog entry the stack was produced from.
type InventoryItem struct {
	StackID     string   `json:"stackId"`
	ItemID      string   `json:"itemId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Kind        ItemKind `json:"kind"`
	Quantity    int      `json:"quantity"`
}

// Buff is an active timed modifier. Keyed by SourceID: re-applying a buff
// from the same source replaces the remaining time rather than stacking.
type Buff struct {
	SourceID  string  `json:"sourceId"`
	Name      string  `json:"name"`
	Remaining float64 `json:"remaining"` // seconds
	Effect    Effect  `json:"effect"`
}

// ConditionKind classifies challenge completion predicates.
type ConditionKind string

const (
	CondQiPerSecond ConditionKind = "qi_per_second"
	CondTotalQi     ConditionKind = "total_qi"
	CondRealmLevel  ConditionKind = "realm_level"
)

// Condition is a challenge completion predicate.
type Condition struct {
	Kind  ConditionKind `json:"kind"`
	Value float64       `json:"value"`
}

// Reward is the currency grant for a claimed challenge.
type Reward struct {
	Qi     float64 `json:"qi"`
	Stones float64 `json:"stones"`
}

// Challenge is a static achievement definition; claim state lives in
// ChallengeState so generated challenges merge cleanly into the catalog.
type Challenge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Condition   Condition `json:"condition"`
	Reward      Reward    `json:"reward"`
}

// ChallengeState tracks per-challenge claim status. A reward is granted at
// most once.
type ChallengeState struct {
	ID      string `json:"id"`
	Claimed bool   `json:"claimed"`
}

// SectRank is one rung of a sect hierarchy. The player's rank is derived:
// the highest rank whose contribution requirement is met.
type SectRank struct {
	Name         string  `json:"name"`
	Contribution float64 `json:"contribution"`
	QiBonus      float64 `json:"qiBonus"`
}

// TreasuryItem is a sect treasury reward purchasable once with contribution,
// gated by derived rank.
type TreasuryItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Cost         float64 `json:"cost"` // contribution
	RankRequired int     `json:"rankRequired"`
	Effect       *Effect `json:"effect,omitempty"`
}

// Sect is a joinable faction with a rank ladder and a treasury.
type Sect struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Ranks       []SectRank     `json:"ranks"`
	Treasury    []TreasuryItem `json:"treasury"`
}

// SectMission is a time-gated task rewarding contribution.
type SectMission struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Duration     float64 `json:"duration"` // seconds
	Contribution float64 `json:"contribution"`
}

// ActiveSectMission is the single in-flight mission slot.
type ActiveSectMission struct {
	MissionID  string    `json:"missionId"`
	CompleteAt time.Time `json:"completeAt"`
}

// Location is a map destination. Travel costs stones and takes wall-clock
// time; the current location may contribute an Effect to the qi rate.
type Location struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	TravelCost  float64 `json:"travelCost"`
	TravelTime  float64 `json:"travelTime"` // seconds
	Effect      *Effect `json:"effect,omitempty"`
}

// Friend is an NPC relationship. Past CompanionThreshold the friend can be
// promoted to companion (đạo lữ).
type Friend struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Realm        string  `json:"realm"`
	Background   string  `json:"background"`
	Relationship float64 `json:"relationship"`
}

// PendingFriend is a generated encounter awaiting player confirmation.
type PendingFriend struct {
	Name       string `json:"name"`
	Realm      string `json:"realm"`
	Background string `json:"background"`
}

// Dialogue is a single-slot open conversation panel.
type Dialogue struct {
	FriendName string `json:"friendName"`
	Content    string `json:"content"`
}

// ChatSender identifies who wrote a companion chat message.
type ChatSender string

const (
	SenderUser   ChatSender = "user"
	SenderFriend ChatSender = "friend"
)

// ChatMessage is one line of a companion chat transcript.
type ChatMessage struct {
	Sender ChatSender `json:"sender"`
	Text   string     `json:"text"`
}

// CompanionChat is the single-slot open companion conversation.
type CompanionChat struct {
	FriendID   string        `json:"friendId"`
	FriendName string        `json:"friendName"`
	Messages   []ChatMessage `json:"messages"`
}

// EventChoice is one option of a narrative event. Its currency deltas apply
// when the player picks it; negative deltas clamp at zero.
type EventChoice struct {
	Text   string  `json:"text"`
	Qi     float64 `json:"qi"`
	Stones float64 `json:"stones"`
}

// Event is a random or generated narrative event awaiting resolution. It is
// ephemeral: never persisted, held by the host until a choice resolves.
type Event struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Choices     []EventChoice `json:"choices"`
}

// HistoryEntry is one line of the durable narrative log.
type HistoryEntry struct {
	At      time.Time `json:"at"`
	Message string    `json:"message"`
}

// APIKey is a stored generation credential.
type APIKey struct {
	ID    string `json:"id"`
	Alias string `json:"alias"`
	Key   string `json:"key"`
}

// APIKeyGroup names a set of credential references.
type APIKeyGroup struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	KeyIDs []string `json:"keyIds"`
}

// APISettings is the credential store: named secrets, named groups, and at
// most one active group.
type APISettings struct {
	Keys          map[string]APIKey      `json:"keys"`
	Groups        map[string]APIKeyGroup `json:"groups"`
	ActiveGroupID *string                `json:"activeGroupId"`
}

// Settings holds player-facing toggles.
type Settings struct {
	EventsEnabled bool `json:"eventsEnabled"`
	MatureEnabled bool `json:"matureEnabled"`
}

// PavilionItem is a consumable sold by the rotating pavilion shop. It shares
// the elixir Effect shape: buying one applies a timed buff.
type PavilionItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"` // spirit stones
	Duration    float64 `json:"duration"`
	Effect      Effect  `json:"effect"`
}

// PavilionNPC is a character present in the pavilion snapshot.
type PavilionNPC struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Realm           string  `json:"realm"`
	Background      string  `json:"background"`
	InteractionCost float64 `json:"interactionCost"`
}

// Pavilion is the rotating shop snapshot, regenerated on demand.
type Pavilion struct {
	Description string         `json:"description"`
	Items       []PavilionItem `json:"items"`
	NPCs        []PavilionNPC  `json:"npcs"`
}
