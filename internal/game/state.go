package game

import "time"

// Gender is fixed at character creation.
type Gender string

const (
	GenderMale   Gender = "Nam"
	GenderFemale Gender = "Nữ"
)

// Appearances is the catalog offered at character creation.
var Appearances = []string{
	"Dung mạo bình thường",
	"Thanh tú thoát tục",
	"Anh tuấn bất phàm",
	"Vẻ đẹp yêu dị",
	"Khí chất cổ xưa",
	"Mày kiếm mắt sao",
	"Phượng mắt mày ngài",
	"Oai phong lẫm liệt",
}

// State is the root aggregate: every piece of mutable player progress. One
// instance exists per game; the engine owns it and all mutation goes through
// engine operations. The whole struct round-trips through JSON for
// persistence.
type State struct {
	// Currencies.
	Qi     float64 `json:"qi"`
	Stones float64 `json:"stones"`

	// Progression.
	RealmLevel int     `json:"realmLevel"`
	RealmName  string  `json:"realmName"` // always Realms[RealmLevel].Name
	Age        float64 `json:"age"`       // years
	Lifespan   float64 `json:"lifespan"`
	Vitality   float64 `json:"vitality"` // qi and blood

	// Identity, immutable after creation. Created flips once, when the
	// player picks gender and appearance before the first save exists.
	Created    bool   `json:"created"`
	Gender     Gender `json:"gender"`
	Appearance string `json:"appearance"`

	// Instant of the last authoritative simulation step. Never in the
	// future; the gap to now is folded in by offline catch-up on load.
	LastUpdate time.Time `json:"lastUpdate"`

	// Catalogs and owned collections. Slices preserve catalog insertion
	// order; generated entries append.
	Techniques []Technique     `json:"techniques"`
	Treasures  []Treasure      `json:"treasures"`
	Equipment  []Equipment     `json:"equipment"`
	Equipped   map[EquipmentSlot]string `json:"equipped"`
	Elixirs    []Elixir        `json:"elixirs"`
	Inventory  []InventoryItem `json:"inventory"`
	Buffs      []Buff          `json:"buffs"`

	// Special-effect cooldowns: effect id → absolute ready time.
	EffectCooldowns map[string]time.Time `json:"effectCooldowns"`

	Challenges      []Challenge      `json:"challenges"`
	ChallengeStates []ChallengeState `json:"challengeStates"`

	// Sect membership.
	Sects            []Sect             `json:"sects"`
	PlayerSectID     *string            `json:"playerSectId"`
	Contribution     float64            `json:"contribution"`
	SectMissions     []SectMission      `json:"sectMissions"`
	ActiveMission    *ActiveSectMission `json:"activeMission"`
	TreasuryBought   map[string]bool    `json:"treasuryBought"`
	SceneryDescription *string          `json:"sceneryDescription"`

	// Travel. At most one pending destination.
	Locations         []Location `json:"locations"`
	CurrentLocationID string     `json:"currentLocationId"`
	TravelDestination *string    `json:"travelDestination"`
	TravelCompleteAt  *time.Time `json:"travelCompleteAt"`

	// Social.
	Friends        []Friend             `json:"friends"`
	CompanionIDs   []string             `json:"companionIds"`
	SongTuCooldowns map[string]time.Time `json:"songTuCooldowns"`
	PendingFriend  *PendingFriend       `json:"pendingFriend"`
	ActiveDialogue *Dialogue            `json:"activeDialogue"`
	ActiveChat     *CompanionChat       `json:"activeChat"`

	SpiritVeinCharge float64 `json:"spiritVeinCharge"`

	History []HistoryEntry `json:"history"` // most-recent-first, capped

	API      APISettings `json:"api"`
	Settings Settings    `json:"settings"`
	Pavilion *Pavilion   `json:"pavilion"`
}

// NewState builds the seed aggregate for a fresh character.
func NewState() *State {
	now := time.Now()
	return &State{
		Qi:         0,
		Stones:     0,
		RealmLevel: 0,
		RealmName:  Realms[0].Name,
		Age:        16,
		Lifespan:   Realms[0].Lifespan,
		Vitality:   100,
		Created:    false,
		Gender:     GenderMale,
		Appearance: Appearances[0],
		LastUpdate: now,

		Techniques: []Technique{
			{
				ID: "tech_1", Name: "Nạp Khí Quyết",
				Description:    "Công pháp nhập môn, giúp hấp thu linh khí.",
				Level:          1,
				BaseCost:       10, CostMultiplier: 1.2,
				QiPerLevel:     0.1,
			},
			{
				ID: "tech_2", Name: "Thanh Tâm Quyết",
				Description:    "Giúp tâm thần thanh tịnh, tăng tốc độ tu luyện.",
				Level:          0,
				BaseCost:       100, CostMultiplier: 1.3,
				QiPerLevel:     1,
				Prereqs:        []Prerequisite{{Kind: PrereqRealm, Level: 1}},
			},
		},
		Treasures: []Treasure{
			{
				ID: "treasure_1", Name: "Tụ Linh Châu",
				Description:       "Pháp bảo sơ cấp, giúp hội tụ linh khí.",
				Level:             1,
				BaseCost:          50,
				UpgradeBase:       25, UpgradeMultiplier: 1.5,
				BaseQi:            1, QiPerLevel: 0.5,
			},
		},
		Equipment: []Equipment{},
		Equipped:  map[EquipmentSlot]string{},
		Elixirs: []Elixir{
			{
				ID: "elixir_1", Name: "Tụ Khí Tán",
				Description: "Đan dược cấp thấp, tạm thời tăng tốc độ hấp thu linh khí.",
				Cost:        20, Duration: 300,
				Effect:      Effect{Kind: EffectAdditive, Value: 5},
			},
		},
		Inventory:       []InventoryItem{},
		Buffs:           []Buff{},
		EffectCooldowns: map[string]time.Time{},
		Challenges: []Challenge{
			{
				ID: "challenge_1", Name: "Sơ Nhập Tiên Đồ",
				Description: "Tốc độ tu luyện đạt 1 Linh Khí/giây.",
				Condition:   Condition{Kind: CondQiPerSecond, Value: 1},
				Reward:      Reward{Qi: 100, Stones: 10},
			},
		},
		ChallengeStates: []ChallengeState{},
		Sects: []Sect{
			{
				ID: "sect_1", Name: "Thanh Vân Môn",
				Description: "Chính đạo đại phái, nổi tiếng với kiếm pháp.",
				Ranks: []SectRank{
					{Name: "Đệ Tử Tạp Dịch", Contribution: 0, QiBonus: 0},
					{Name: "Đệ Tử Ngoại Môn", Contribution: 1000, QiBonus: 10},
				},
				Treasury: []TreasuryItem{},
			},
		},
		SectMissions: []SectMission{
			{
				ID: "mission_1", Name: "Quét Dọn Sơn Môn",
				Description:  "Công việc đơn giản cho đệ tử mới.",
				Duration:     300,
				Contribution: 5,
			},
		},
		TreasuryBought: map[string]bool{},
		Locations: []Location{
			{
				ID: "loc_1", Name: "Sơn Thôn Hẻo Lánh",
				Description: "Nơi bạn bắt đầu con đường tu tiên.",
				TravelCost:  0, TravelTime: 0,
			},
		},
		CurrentLocationID: "loc_1",
		Friends:           []Friend{},
		CompanionIDs:      []string{},
		SongTuCooldowns:   map[string]time.Time{},
		History: []HistoryEntry{
			{At: now, Message: "Bạn đã bắt đầu con đường tu tiên của mình."},
		},
		API: APISettings{
			Keys:   map[string]APIKey{},
			Groups: map[string]APIKeyGroup{},
		},
		Settings: Settings{EventsEnabled: true},
	}
}

// TechniqueByID returns the catalog entry or nil.
func (s *State) TechniqueByID(id string) *Technique {
	for i := range s.Techniques {
		if s.Techniques[i].ID == id {
			return &s.Techniques[i]
		}
	}
	return nil
}

// TreasureByID returns the catalog entry or nil.
func (s *State) TreasureByID(id string) *Treasure {
	for i := range s.Treasures {
		if s.Treasures[i].ID == id {
			return &s.Treasures[i]
		}
	}
	return nil
}

// EquipmentByID returns the catalog entry or nil.
func (s *State) EquipmentByID(id string) *Equipment {
	for i := range s.Equipment {
		if s.Equipment[i].ID == id {
			return &s.Equipment[i]
		}
	}
	return nil
}

// ElixirByID returns the recipe or nil.
func (s *State) ElixirByID(id string) *Elixir {
	for i := range s.Elixirs {
		if s.Elixirs[i].ID == id {
			return &s.Elixirs[i]
		}
	}
	return nil
}

// StackByID returns the inventory stack or nil.
func (s *State) StackByID(id string) *InventoryItem {
	for i := range s.Inventory {
		if s.Inventory[i].StackID == id {
			return &s.Inventory[i]
		}
	}
	return nil
}

// ChallengeByID returns the challenge or nil.
func (s *State) ChallengeByID(id string) *Challenge {
	for i := range s.Challenges {
		if s.Challenges[i].ID == id {
			return &s.Challenges[i]
		}
	}
	return nil
}

// SectByID returns the sect or nil.
func (s *State) SectByID(id string) *Sect {
	for i := range s.Sects {
		if s.Sects[i].ID == id {
			return &s.Sects[i]
		}
	}
	return nil
}

// MissionByID returns the mission or nil.
func (s *State) MissionByID(id string) *SectMission {
	for i := range s.SectMissions {
		if s.SectMissions[i].ID == id {
			return &s.SectMissions[i]
		}
	}
	return nil
}

// LocationByID returns the location or nil.
func (s *State) LocationByID(id string) *Location {
	for i := range s.Locations {
		if s.Locations[i].ID == id {
			return &s.Locations[i]
		}
	}
	return nil
}

// FriendByID returns the friend or nil.
func (s *State) FriendByID(id string) *Friend {
	for i := range s.Friends {
		if s.Friends[i].ID == id {
			return &s.Friends[i]
		}
	}
	return nil
}

// IsCompanion reports whether the friend has been promoted to companion.
func (s *State) IsCompanion(friendID string) bool {
	for _, id := range s.CompanionIDs {
		if id == friendID {
			return true
		}
	}
	return false
}
