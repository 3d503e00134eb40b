// Package storefakes provides lightweight in-memory storage fakes for
// service tests. State maps are exported so tests can seed and inspect
// them directly.
package storefakes

import (
	"context"
	"sort"

	campaigndomain "github.com/trench-tools/trenchmate/internal/campaign/domain"
	gamedomain "github.com/trench-tools/trenchmate/internal/gamesession/domain"
	postgamedomain "github.com/trench-tools/trenchmate/internal/postgame/domain"
	rosterdomain "github.com/trench-tools/trenchmate/internal/roster/domain"
	"github.com/trench-tools/trenchmate/internal/storage"
)

var (
	_ storage.CampaignStore    = (*CampaignStore)(nil)
	_ storage.RosterStore      = (*RosterStore)(nil)
	_ storage.CatalogStore     = (*CatalogStore)(nil)
	_ storage.TableStore       = (*TableStore)(nil)
	_ storage.PostGameStore    = (*PostGameStore)(nil)
	_ storage.GameSessionStore = (*GameSessionStore)(nil)
)

// CampaignStore is an in-memory CampaignStore fake.
type CampaignStore struct {
	Campaigns map[string]campaigndomain.Campaign
}

// NewCampaignStore constructs a CampaignStore fake with initialized maps.
func NewCampaignStore() *CampaignStore {
	return &CampaignStore{Campaigns: make(map[string]campaigndomain.Campaign)}
}

func (s *CampaignStore) PutCampaign(_ context.Context, campaign campaigndomain.Campaign) error {
	s.Campaigns[campaign.ID] = campaign
	return nil
}

func (s *CampaignStore) GetCampaign(_ context.Context, id string) (campaigndomain.Campaign, error) {
	campaign, ok := s.Campaigns[id]
	if !ok {
		return campaigndomain.Campaign{}, storage.ErrNotFound
	}
	return campaign, nil
}

func (s *CampaignStore) ListCampaigns(_ context.Context) ([]campaigndomain.Campaign, error) {
	result := make([]campaigndomain.Campaign, 0, len(s.Campaigns))
	for _, campaign := range s.Campaigns {
		result = append(result, campaign)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *CampaignStore) DeleteCampaign(_ context.Context, id string) error {
	if _, ok := s.Campaigns[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.Campaigns, id)
	return nil
}

// RosterStore is an in-memory RosterStore fake.
type RosterStore struct {
	Warbands map[string]rosterdomain.Warband
	Members  map[string]rosterdomain.Member
}

// NewRosterStore constructs a RosterStore fake with initialized maps.
func NewRosterStore() *RosterStore {
	return &RosterStore{
		Warbands: make(map[string]rosterdomain.Warband),
		Members:  make(map[string]rosterdomain.Member),
	}
}

func (s *RosterStore) GetWarband(_ context.Context, id string) (rosterdomain.Warband, error) {
	warband, ok := s.Warbands[id]
	if !ok {
		return rosterdomain.Warband{}, storage.ErrNotFound
	}
	return warband, nil
}

func (s *RosterStore) PutMember(_ context.Context, member rosterdomain.Member) error {
	s.Members[member.ID] = member
	return nil
}

func (s *RosterStore) GetMember(_ context.Context, id string) (rosterdomain.Member, error) {
	member, ok := s.Members[id]
	if !ok {
		return rosterdomain.Member{}, storage.ErrNotFound
	}
	return member, nil
}

func (s *RosterStore) ListMembers(_ context.Context, warbandID string) ([]rosterdomain.Member, error) {
	result := make([]rosterdomain.Member, 0)
	for _, member := range s.Members {
		if member.WarbandID == warbandID {
			result = append(result, member)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Order < result[j].Order })
	return result, nil
}

// CatalogStore is an in-memory CatalogStore fake.
type CatalogStore struct {
	Templates    map[string]rosterdomain.ModelTemplate
	ModelEntries map[string]rosterdomain.FactionModelEntry
	Equipment    map[string][]rosterdomain.FactionEquipmentEntry
}

// NewCatalogStore constructs a CatalogStore fake with initialized maps.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		Templates:    make(map[string]rosterdomain.ModelTemplate),
		ModelEntries: make(map[string]rosterdomain.FactionModelEntry),
		Equipment:    make(map[string][]rosterdomain.FactionEquipmentEntry),
	}
}

func (s *CatalogStore) GetTemplate(_ context.Context, id string) (rosterdomain.ModelTemplate, error) {
	template, ok := s.Templates[id]
	if !ok {
		return rosterdomain.ModelTemplate{}, storage.ErrNotFound
	}
	return template, nil
}

func (s *CatalogStore) ListTemplates(_ context.Context, factionID string) ([]rosterdomain.ModelTemplate, error) {
	result := make([]rosterdomain.ModelTemplate, 0)
	for _, template := range s.Templates {
		if template.FactionID == factionID {
			result = append(result, template)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *CatalogStore) GetFactionModelEntry(_ context.Context, factionID, templateID string) (rosterdomain.FactionModelEntry, error) {
	entry, ok := s.ModelEntries[factionID+":"+templateID]
	if !ok {
		return rosterdomain.FactionModelEntry{}, storage.ErrNotFound
	}
	return entry, nil
}

func (s *CatalogStore) ListFactionEquipment(_ context.Context, factionID string) ([]rosterdomain.FactionEquipmentEntry, error) {
	return s.Equipment[factionID], nil
}

// PutFactionModelEntry seeds a faction list entry into the fake.
func (s *CatalogStore) PutFactionModelEntry(factionID string, entry rosterdomain.FactionModelEntry) {
	s.ModelEntries[factionID+":"+entry.TemplateID] = entry
}

// TableStore is an in-memory TableStore fake.
type TableStore struct {
	TraumaTables      map[postgamedomain.ModelClass]postgamedomain.TraumaTable
	SkillTables       map[string]postgamedomain.SkillTable
	ExplorationTables map[postgamedomain.ExplorationTier]postgamedomain.ExplorationTable
}

// NewTableStore constructs a TableStore fake with initialized maps.
func NewTableStore() *TableStore {
	return &TableStore{
		TraumaTables:      make(map[postgamedomain.ModelClass]postgamedomain.TraumaTable),
		SkillTables:       make(map[string]postgamedomain.SkillTable),
		ExplorationTables: make(map[postgamedomain.ExplorationTier]postgamedomain.ExplorationTable),
	}
}

func (s *TableStore) PutTraumaTable(_ context.Context, table postgamedomain.TraumaTable) error {
	s.TraumaTables[table.ModelClass] = table
	return nil
}

func (s *TableStore) GetTraumaTable(_ context.Context, class postgamedomain.ModelClass) (postgamedomain.TraumaTable, error) {
	table, ok := s.TraumaTables[class]
	if !ok {
		return postgamedomain.TraumaTable{}, storage.ErrNotFound
	}
	return table, nil
}

func (s *TableStore) PutSkillTable(_ context.Context, table postgamedomain.SkillTable) error {
	s.SkillTables[table.ID] = table
	return nil
}

func (s *TableStore) GetSkillTable(_ context.Context, id string) (postgamedomain.SkillTable, error) {
	table, ok := s.SkillTables[id]
	if !ok {
		return postgamedomain.SkillTable{}, storage.ErrNotFound
	}
	return table, nil
}

func (s *TableStore) ListSkillTables(_ context.Context) ([]postgamedomain.SkillTable, error) {
	result := make([]postgamedomain.SkillTable, 0, len(s.SkillTables))
	for _, table := range s.SkillTables {
		result = append(result, table)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *TableStore) PutExplorationTable(_ context.Context, table postgamedomain.ExplorationTable) error {
	s.ExplorationTables[table.Tier] = table
	return nil
}

func (s *TableStore) GetExplorationTable(_ context.Context, tier postgamedomain.ExplorationTier) (postgamedomain.ExplorationTable, error) {
	table, ok := s.ExplorationTables[tier]
	if !ok {
		return postgamedomain.ExplorationTable{}, storage.ErrNotFound
	}
	return table, nil
}

// PostGameStore is an in-memory PostGameStore fake.
type PostGameStore struct {
	Sessions map[string]postgamedomain.Session
}

// NewPostGameStore constructs a PostGameStore fake with initialized maps.
func NewPostGameStore() *PostGameStore {
	return &PostGameStore{Sessions: make(map[string]postgamedomain.Session)}
}

func (s *PostGameStore) PutPostGameSession(_ context.Context, session postgamedomain.Session) error {
	s.Sessions[session.ID] = session
	return nil
}

func (s *PostGameStore) GetPostGameSession(_ context.Context, id string) (postgamedomain.Session, error) {
	session, ok := s.Sessions[id]
	if !ok {
		return postgamedomain.Session{}, storage.ErrNotFound
	}
	return session, nil
}

func (s *PostGameStore) GetOpenPostGameSession(_ context.Context, campaignID string, gameNumber int) (postgamedomain.Session, error) {
	for _, session := range s.Sessions {
		if session.CampaignID == campaignID && session.GameNumber == gameNumber && !session.Completed {
			return session, nil
		}
	}
	return postgamedomain.Session{}, storage.ErrNotFound
}

func (s *PostGameStore) DeletePostGameSession(_ context.Context, id string) error {
	if _, ok := s.Sessions[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.Sessions, id)
	return nil
}

// GameSessionStore is an in-memory GameSessionStore fake. It enforces
// the single-active-session constraint the way the SQLite store does.
type GameSessionStore struct {
	Sessions map[string]gamedomain.Session
}

// NewGameSessionStore constructs a GameSessionStore fake with initialized maps.
func NewGameSessionStore() *GameSessionStore {
	return &GameSessionStore{Sessions: make(map[string]gamedomain.Session)}
}

func (s *GameSessionStore) PutGameSession(_ context.Context, session gamedomain.Session) error {
	if session.Status == gamedomain.StatusActive {
		for id, existing := range s.Sessions {
			if id != session.ID && existing.Status == gamedomain.StatusActive {
				return storage.ErrActiveSessionExists
			}
		}
	}
	s.Sessions[session.ID] = session
	return nil
}

func (s *GameSessionStore) GetGameSession(_ context.Context, id string) (gamedomain.Session, error) {
	session, ok := s.Sessions[id]
	if !ok {
		return gamedomain.Session{}, storage.ErrNotFound
	}
	return session, nil
}

func (s *GameSessionStore) GetActiveGameSession(_ context.Context) (gamedomain.Session, error) {
	for _, session := range s.Sessions {
		if session.Status == gamedomain.StatusActive {
			return session, nil
		}
	}
	return gamedomain.Session{}, storage.ErrNotFound
}

func (s *GameSessionStore) ListGameSessions(_ context.Context, warbandID string) ([]gamedomain.Session, error) {
	result := make([]gamedomain.Session, 0)
	for _, session := range s.Sessions {
		if session.WarbandID == warbandID {
			result = append(result, session)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (s *GameSessionStore) DeleteGameSession(_ context.Context, id string) error {
	if _, ok := s.Sessions[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.Sessions, id)
	return nil
}
