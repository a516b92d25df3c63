package game

import "math"

// Realm is one tier of the cultivation ladder. The tier gates the player's
// lifespan and contributes a flat qi/s bonus.
type Realm struct {
	Name     string  `json:"name"`
	QiBonus  float64 `json:"qiBonus"`  // flat qi/s granted by the tier
	Lifespan float64 `json:"lifespan"` // years; UnboundedLifespan for the final tier
}

// UnboundedLifespan stands in for an infinite lifespan on the final tier.
// encoding/json cannot represent +Inf, so a finite sentinel persists instead.
const UnboundedLifespan = 1e18

// Realms is the ordered progression ladder. RealmLevel indexes into it.
var Realms = []Realm{
	{Name: "Luyện Khí Kỳ", QiBonus: 0, Lifespan: 100},
	{Name: "Trúc Cơ Kỳ", QiBonus: 10, Lifespan: 200},
	{Name: "Kim Đan Kỳ", QiBonus: 100, Lifespan: 500},
	{Name: "Nguyên Anh Kỳ", QiBonus: 1000, Lifespan: 1000},
	{Name: "Hóa Thần Kỳ", QiBonus: 10000, Lifespan: 5000},
	{Name: "Luyện Hư Kỳ", QiBonus: 100000, Lifespan: 10000},
	{Name: "Hợp Thể Kỳ", QiBonus: 1000000, Lifespan: 50000},
	{Name: "Đại Thừa Kỳ", QiBonus: 10000000, Lifespan: 100000},
	{Name: "Độ Kiếp Kỳ", QiBonus: 100000000, Lifespan: 200000},
	{Name: "Tiên Nhân", QiBonus: 1000000000, Lifespan: UnboundedLifespan},
}

// BreakthroughThreshold returns the cumulative qi required to advance from
// the given realm level to the next. Monotonically increasing in level.
func BreakthroughThreshold(level int) float64 {
	return math.Pow(10, float64(level+2)) * 10
}

// pow is math.Pow with an integer exponent, for cost curves.
func pow(base float64, exp int) float64 {
	return math.Pow(base, float64(exp))
}

// Tuning constants shared across the engine.
const (
	// AgeSecondsPerYear converts simulated seconds into years of age
	// (five real minutes per year).
	AgeSecondsPerYear = 300.0

	// SpiritVeinMaxCharge caps the spirit vein at one hour of charge.
	SpiritVeinMaxCharge = 3600.0

	// CompanionThreshold is the relationship level at which a friend can
	// be promoted to companion (đạo lữ).
	CompanionThreshold = 100.0

	// HistoryCap bounds the durable history ring.
	HistoryCap = 100

	// SessionLogCap bounds the transient session log.
	SessionLogCap = 50
)
