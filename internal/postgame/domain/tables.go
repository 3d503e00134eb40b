package domain

import "strings"

// DiceType names the die a table is rolled on.
type DiceType string

const (
	DiceD6  DiceType = "d6"
	DiceD66 DiceType = "d66"
)

// ModelClass selects which trauma table a casualty rolls on.
type ModelClass string

const (
	ClassElite    ModelClass = "elite"
	ClassNonElite ModelClass = "non-elite"
)

// TraumaOutcome is the effect a trauma entry applies to a casualty.
type TraumaOutcome string

const (
	OutcomeDead      TraumaOutcome = "dead"
	OutcomeRecovered TraumaOutcome = "recovered"
	OutcomeScar      TraumaOutcome = "scar"
)

// TraumaEntry is one row of a trauma table.
type TraumaEntry struct {
	ID      string
	RollMin int
	RollMax int
	Name    string
	Effect  string
	Outcome TraumaOutcome
}

// Range returns the inclusive roll bounds of the entry.
func (e TraumaEntry) Range() (int, int) { return e.RollMin, e.RollMax }

// TraumaTable maps casualty rolls to injuries for one model class.
// Elite models roll the compound d66 table, others a single d6.
type TraumaTable struct {
	ID         string
	Name       string
	DiceType   DiceType
	ModelClass ModelClass
	Entries    []TraumaEntry
}

// SkillEntry is one row of a promotion skill table.
type SkillEntry struct {
	ID          string
	RollMin     int
	RollMax     int
	Name        string
	Description string
}

// Range returns the inclusive roll bounds of the entry.
func (e SkillEntry) Range() (int, int) { return e.RollMin, e.RollMax }

// SkillTable maps promotion rolls to advancements.
type SkillTable struct {
	ID      string
	Name    string
	Entries []SkillEntry
}

// ExplorationTier orders exploration tables by reward quality.
type ExplorationTier string

const (
	TierCommon    ExplorationTier = "common"
	TierRare      ExplorationTier = "rare"
	TierLegendary ExplorationTier = "legendary"
)

// ParseExplorationTier maps a stored tier string to its typed value.
func ParseExplorationTier(value string) (ExplorationTier, bool) {
	switch ExplorationTier(strings.ToLower(strings.TrimSpace(value))) {
	case TierCommon:
		return TierCommon, true
	case TierRare:
		return TierRare, true
	case TierLegendary:
		return TierLegendary, true
	default:
		return "", false
	}
}

// RewardType classifies what an exploration entry grants.
type RewardType string

const (
	RewardDucats    RewardType = "ducats"
	RewardGlory     RewardType = "glory"
	RewardEquipment RewardType = "equipment"
	RewardSpecial   RewardType = "special"
)

// Reward is the payload of an exploration entry. Ducat and glory rewards
// are applied to the campaign counters; equipment and special rewards are
// recorded as log text only.
type Reward struct {
	Type        RewardType
	Value       int
	EquipmentID string
	SpecialText string
}

// ExplorationEntry is one row of an exploration table.
type ExplorationEntry struct {
	ID      string
	RollMin int
	RollMax int
	Name    string
	Reward  Reward
}

// Range returns the inclusive roll bounds of the entry.
func (e ExplorationEntry) Range() (int, int) { return e.RollMin, e.RollMax }

// ExplorationTable maps exploration rolls to rewards for one tier.
type ExplorationTable struct {
	ID      string
	Name    string
	Tier    ExplorationTier
	Entries []ExplorationEntry
}
