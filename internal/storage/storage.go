package storage

import (
	"context"
	"errors"

	campaigndomain "github.com/trench-tools/trenchmate/internal/campaign/domain"
	gamedomain "github.com/trench-tools/trenchmate/internal/gamesession/domain"
	postgamedomain "github.com/trench-tools/trenchmate/internal/postgame/domain"
	rosterdomain "github.com/trench-tools/trenchmate/internal/roster/domain"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// ErrActiveSessionExists indicates a conflict when starting a game session
// while another one is still active.
var ErrActiveSessionExists = errors.New("active game session exists")

// CampaignStore persists campaign aggregates.
type CampaignStore interface {
	PutCampaign(ctx context.Context, campaign campaigndomain.Campaign) error
	GetCampaign(ctx context.Context, id string) (campaigndomain.Campaign, error)
	ListCampaigns(ctx context.Context) ([]campaigndomain.Campaign, error)
	DeleteCampaign(ctx context.Context, id string) error
}

// RosterStore persists warbands and their members.
type RosterStore interface {
	GetWarband(ctx context.Context, id string) (rosterdomain.Warband, error)
	PutMember(ctx context.Context, member rosterdomain.Member) error
	GetMember(ctx context.Context, id string) (rosterdomain.Member, error)
	// ListMembers returns a warband's members ordered by their roster order.
	ListMembers(ctx context.Context, warbandID string) ([]rosterdomain.Member, error)
}

// CatalogStore serves faction reference data: model templates and the
// faction lists that price and cap them. Read-only for this engine.
type CatalogStore interface {
	GetTemplate(ctx context.Context, id string) (rosterdomain.ModelTemplate, error)
	ListTemplates(ctx context.Context, factionID string) ([]rosterdomain.ModelTemplate, error)
	GetFactionModelEntry(ctx context.Context, factionID, templateID string) (rosterdomain.FactionModelEntry, error)
	ListFactionEquipment(ctx context.Context, factionID string) ([]rosterdomain.FactionEquipmentEntry, error)
}

// TableStore serves the dice tables the post-game steps roll on.
// Reference data, loaded once and never mutated by the engine.
type TableStore interface {
	PutTraumaTable(ctx context.Context, table postgamedomain.TraumaTable) error
	GetTraumaTable(ctx context.Context, class postgamedomain.ModelClass) (postgamedomain.TraumaTable, error)
	PutSkillTable(ctx context.Context, table postgamedomain.SkillTable) error
	GetSkillTable(ctx context.Context, id string) (postgamedomain.SkillTable, error)
	ListSkillTables(ctx context.Context) ([]postgamedomain.SkillTable, error)
	PutExplorationTable(ctx context.Context, table postgamedomain.ExplorationTable) error
	GetExplorationTable(ctx context.Context, tier postgamedomain.ExplorationTier) (postgamedomain.ExplorationTable, error)
}

// PostGameStore persists post-game sessions. While open, a session is
// uniquely keyed by its (campaign, game number) pair.
type PostGameStore interface {
	PutPostGameSession(ctx context.Context, session postgamedomain.Session) error
	GetPostGameSession(ctx context.Context, id string) (postgamedomain.Session, error)
	// GetOpenPostGameSession returns the non-completed session for the
	// pair, or ErrNotFound when none is open.
	GetOpenPostGameSession(ctx context.Context, campaignID string, gameNumber int) (postgamedomain.Session, error)
	DeletePostGameSession(ctx context.Context, id string) error
}

// GameSessionStore persists live game sessions. At most one session with
// active status may exist system-wide; PutGameSession returns
// ErrActiveSessionExists when inserting a second active session.
type GameSessionStore interface {
	PutGameSession(ctx context.Context, session gamedomain.Session) error
	GetGameSession(ctx context.Context, id string) (gamedomain.Session, error)
	// GetActiveGameSession returns the single active session, or
	// ErrNotFound when none is active.
	GetActiveGameSession(ctx context.Context) (gamedomain.Session, error)
	ListGameSessions(ctx context.Context, warbandID string) ([]gamedomain.Session, error)
	DeleteGameSession(ctx context.Context, id string) error
}
