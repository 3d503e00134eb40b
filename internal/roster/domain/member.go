package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/trench-tools/trenchmate/internal/id"
)

// CampaignStatus describes a roster member's campaign availability.
type CampaignStatus int

const (
	// CampaignStatusUnspecified represents an invalid status value.
	CampaignStatusUnspecified CampaignStatus = iota
	// CampaignStatusActive indicates the member can be fielded.
	CampaignStatusActive
	// CampaignStatusDead indicates the member died to a trauma result.
	CampaignStatusDead
	// CampaignStatusRecovering indicates the member sits out the next battle.
	CampaignStatusRecovering
)

func (s CampaignStatus) String() string {
	switch s {
	case CampaignStatusActive:
		return "active"
	case CampaignStatusDead:
		return "dead"
	case CampaignStatusRecovering:
		return "recovering"
	default:
		return "unspecified"
	}
}

// ParseCampaignStatus maps a stored status string to its enum value.
func ParseCampaignStatus(value string) CampaignStatus {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "active", "":
		// Members created before campaign play default to active.
		return CampaignStatusActive
	case "dead":
		return CampaignStatusDead
	case "recovering":
		return CampaignStatusRecovering
	default:
		return CampaignStatusUnspecified
	}
}

var (
	// ErrMemberDead indicates an operation targeting a dead member.
	ErrMemberDead = errors.New("roster member is dead")
	// ErrMemberNotActive indicates an operation scoped to active members
	// targeting one that is sitting out, such as a recovering member.
	ErrMemberNotActive = errors.New("roster member is not active")
	// ErrEmptyTemplateID indicates a missing model template ID.
	ErrEmptyTemplateID = errors.New("template id is required")
)

// Scar is a permanent battle scar appended by a trauma result.
type Scar struct {
	ID         string
	Name       string
	Effect     string
	GameNumber int
}

// Advancement is a skill gained from a promotion roll.
type Advancement struct {
	ID          string
	Name        string
	Description string
	Table       string
	GameNumber  int
}

// Member is one fielded unit of a warband, carrying the campaign fields
// this engine mutates. Scars and advancements are append-only.
type Member struct {
	ID                  string
	WarbandID           string
	TemplateID          string
	CustomName          string
	EquipmentIDs        []string
	CampaignStatus      CampaignStatus
	Scars               []Scar
	Advancements        []Advancement
	PromotionDiceEarned int
	PromotionDiceSpent  int
	Order               int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// CreateMemberInput describes a new roster member.
type CreateMemberInput struct {
	WarbandID  string
	TemplateID string
	CustomName string
	Order      int
}

// CreateMember creates a roster member with a generated ID, active status,
// and zeroed campaign counters.
func CreateMember(input CreateMemberInput, now func() time.Time, idGenerator func() (string, error)) (Member, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	input.WarbandID = strings.TrimSpace(input.WarbandID)
	if input.WarbandID == "" {
		return Member{}, errors.New("warband id is required")
	}
	input.TemplateID = strings.TrimSpace(input.TemplateID)
	if input.TemplateID == "" {
		return Member{}, ErrEmptyTemplateID
	}

	memberID, err := idGenerator()
	if err != nil {
		return Member{}, fmt.Errorf("generate member id: %w", err)
	}

	createdAt := now().UTC()
	return Member{
		ID:             memberID,
		WarbandID:      input.WarbandID,
		TemplateID:     input.TemplateID,
		CustomName:     strings.TrimSpace(input.CustomName),
		CampaignStatus: CampaignStatusActive,
		Order:          input.Order,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}, nil
}

// AddScar appends a scar record with a generated ID.
func (m *Member) AddScar(name, effect string, gameNumber int, now func() time.Time, idGenerator func() (string, error)) error {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}
	scarID, err := idGenerator()
	if err != nil {
		return fmt.Errorf("generate scar id: %w", err)
	}
	m.Scars = append(m.Scars, Scar{ID: scarID, Name: name, Effect: effect, GameNumber: gameNumber})
	m.UpdatedAt = now().UTC()
	return nil
}

// AddAdvancement appends an advancement record with a generated ID.
func (m *Member) AddAdvancement(name, description, table string, gameNumber int, now func() time.Time, idGenerator func() (string, error)) error {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}
	advancementID, err := idGenerator()
	if err != nil {
		return fmt.Errorf("generate advancement id: %w", err)
	}
	m.Advancements = append(m.Advancements, Advancement{
		ID:          advancementID,
		Name:        name,
		Description: description,
		Table:       table,
		GameNumber:  gameNumber,
	})
	m.UpdatedAt = now().UTC()
	return nil
}

// HasTough reports whether the member carries the Tough capability,
// either from its template tags or from an earned advancement.
func (m *Member) HasTough(templateTags []string) bool {
	for _, tag := range templateTags {
		if strings.EqualFold(tag, "tough") {
			return true
		}
	}
	for _, advancement := range m.Advancements {
		if strings.EqualFold(advancement.Name, "tough") {
			return true
		}
	}
	return false
}
