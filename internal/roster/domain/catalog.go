package domain

import "strings"

// CostType distinguishes the currency a catalog entry is bought with.
type CostType string

const (
	CostDucats CostType = "ducats"
	CostGlory  CostType = "glory"
)

// ModelTemplate is a faction's unit template. Promotion is the number of
// promotion dice the model earns per battle (0 = never promotes).
type ModelTemplate struct {
	ID        string
	Name      string
	FactionID string
	Tags      []string
	Promotion int
}

// IsElite reports whether the template rolls on the elite trauma table.
func (t ModelTemplate) IsElite() bool {
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), "elite") {
			return true
		}
	}
	return false
}

// FactionModelEntry prices a template inside a faction list and caps how
// many copies a warband may field. LimitMax of 0 means uncapped.
type FactionModelEntry struct {
	TemplateID string
	Cost       int
	CostType   CostType
	LimitMin   int
	LimitMax   int
}

// FactionEquipmentEntry prices an equipment item inside a faction list.
// Limit of 0 means uncapped.
type FactionEquipmentEntry struct {
	EquipmentID string
	Cost        int
	CostType    CostType
	Limit       int
}
