// Package service drives the five-step post-game sequence for a
// campaign battle. Rolled effects are applied to the roster and the
// campaign as they happen; the session only journals what was rolled.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/trench-tools/trenchmate/internal/dice"
	"github.com/trench-tools/trenchmate/internal/id"
	"github.com/trench-tools/trenchmate/internal/postgame/domain"
	"github.com/trench-tools/trenchmate/internal/rangetable"
	rosterdomain "github.com/trench-tools/trenchmate/internal/roster/domain"
	"github.com/trench-tools/trenchmate/internal/storage"
)

var (
	// ErrNoPendingPostGame indicates a campaign with no recorded battle
	// awaiting its post-game sequence.
	ErrNoPendingPostGame = errors.New("campaign has no pending post-game")
	// ErrCasualtyNotSelected indicates a trauma roll for a member outside
	// the casualty selection.
	ErrCasualtyNotSelected = errors.New("member is not a selected casualty")
	// ErrTraumaAlreadyRolled indicates a second trauma roll for the same
	// casualty in one session.
	ErrTraumaAlreadyRolled = errors.New("member already rolled trauma")
	// ErrNoPromotionDice indicates a promotion roll with no unresolved
	// dice remaining.
	ErrNoPromotionDice = errors.New("no unresolved promotion dice")
	// ErrFieldStrengthReached indicates a reinforcement that would exceed
	// the campaign's field strength cap.
	ErrFieldStrengthReached = errors.New("field strength cap reached")
	// ErrModelLimitReached indicates a reinforcement that would exceed the
	// faction list's per-template cap.
	ErrModelLimitReached = errors.New("model limit for template reached")
	// ErrEquipmentNotHeld indicates a reassignment of equipment the source
	// member does not carry.
	ErrEquipmentNotHeld = errors.New("member does not hold that equipment")
	// ErrStepsIncomplete indicates a Finish call before every step has
	// been completed.
	ErrStepsIncomplete = errors.New("post-game steps are incomplete")
)

// Stores groups the storage interfaces the post-game sequence depends on.
type Stores struct {
	Campaign storage.CampaignStore
	Roster   storage.RosterStore
	Catalog  storage.CatalogStore
	Tables   storage.TableStore
	PostGame storage.PostGameStore
}

// Service runs post-game sessions.
type Service struct {
	stores      Stores
	roller      dice.Roller
	clock       func() time.Time
	idGenerator func() (string, error)
}

// NewService creates a Service rolling with the given dice.
func NewService(stores Stores, roller dice.Roller) *Service {
	return &Service{
		stores:      stores,
		roller:      roller,
		clock:       time.Now,
		idGenerator: id.NewID,
	}
}

// StartSession opens the post-game sequence for the campaign's pending
// battle. When an open session already exists for that battle it is
// returned instead, so a resumed sequence picks up where it left off.
// The roster is not touched; recovering members return to active status
// only when the operator clears them.
func (s *Service) StartSession(ctx context.Context, campaignID string) (domain.Session, error) {
	campaign, err := s.stores.Campaign.GetCampaign(ctx, campaignID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load campaign: %w", err)
	}
	pending, ok := campaign.PendingPostGame()
	if !ok {
		return domain.Session{}, ErrNoPendingPostGame
	}

	existing, err := s.stores.PostGame.GetOpenPostGameSession(ctx, campaignID, pending.GameNumber)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return domain.Session{}, fmt.Errorf("check open session: %w", err)
	}

	session, err := domain.CreateSession(domain.CreateSessionInput{
		CampaignID: campaignID,
		GameNumber: pending.GameNumber,
	}, s.clock, s.idGenerator)
	if err != nil {
		return domain.Session{}, err
	}
	if err := s.stores.PostGame.PutPostGameSession(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("persist session: %w", err)
	}
	return session, nil
}

// Get returns a post-game session by ID.
func (s *Service) Get(ctx context.Context, sessionID string) (domain.Session, error) {
	return s.stores.PostGame.GetPostGameSession(ctx, sessionID)
}

// SelectCasualties adds members to the trauma casualty selection.
// Selecting an already-selected member is a no-op.
func (s *Service) SelectCasualties(ctx context.Context, sessionID string, memberIDs []string) (domain.Session, error) {
	session, err := s.stores.PostGame.GetPostGameSession(ctx, sessionID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	if session.Completed {
		return domain.Session{}, domain.ErrSessionCompleted
	}
	for _, memberID := range memberIDs {
		if _, err := s.stores.Roster.GetMember(ctx, memberID); err != nil {
			return domain.Session{}, fmt.Errorf("load member %s: %w", memberID, err)
		}
		session.SelectCasualty(memberID, s.clock)
	}
	if err := s.stores.PostGame.PutPostGameSession(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("persist session: %w", err)
	}
	return session, nil
}

// RollTrauma rolls one selected casualty on its trauma table and applies
// the outcome: dead flips the member's campaign status, scar appends a
// permanent scar, recovered leaves the member untouched. Rolls that land
// outside every table entry are still journaled, with an empty entry ID.
func (s *Service) RollTrauma(ctx context.Context, sessionID, memberID string) (domain.Session, domain.TraumaResult, error) {
	session, err := s.stores.PostGame.GetPostGameSession(ctx, sessionID)
	if err != nil {
		return domain.Session{}, domain.TraumaResult{}, fmt.Errorf("load session: %w", err)
	}
	if session.Completed {
		return domain.Session{}, domain.TraumaResult{}, domain.ErrSessionCompleted
	}
	selected := false
	for _, candidate := range session.CasualtySelection {
		if candidate == memberID {
			selected = true
			break
		}
	}
	if !selected {
		return domain.Session{}, domain.TraumaResult{}, fmt.Errorf("%w: %s", ErrCasualtyNotSelected, memberID)
	}
	if session.TraumaRolled(memberID) {
		return domain.Session{}, domain.TraumaResult{}, fmt.Errorf("%w: %s", ErrTraumaAlreadyRolled, memberID)
	}

	member, err := s.stores.Roster.GetMember(ctx, memberID)
	if err != nil {
		return domain.Session{}, domain.TraumaResult{}, fmt.Errorf("load member: %w", err)
	}
	switch member.CampaignStatus {
	case rosterdomain.CampaignStatusDead:
		return domain.Session{}, domain.TraumaResult{}, fmt.Errorf("%s: %w", memberID, rosterdomain.ErrMemberDead)
	case rosterdomain.CampaignStatusActive:
	default:
		return domain.Session{}, domain.TraumaResult{}, fmt.Errorf("%s: %w", memberID, rosterdomain.ErrMemberNotActive)
	}
	template, err := s.stores.Catalog.GetTemplate(ctx, member.TemplateID)
	if err != nil {
		return domain.Session{}, domain.TraumaResult{}, fmt.Errorf("load template: %w", err)
	}

	class := domain.ClassNonElite
	if template.IsElite() {
		class = domain.ClassElite
	}
	table, err := s.stores.Tables.GetTraumaTable(ctx, class)
	if err != nil {
		return domain.Session{}, domain.TraumaResult{}, fmt.Errorf("load trauma table: %w", err)
	}

	roll := s.roller.D6()
	if table.DiceType == domain.DiceD66 {
		roll = s.roller.D66()
	}

	result := domain.TraumaResult{
		MemberID:   member.ID,
		MemberName: member.CustomName,
		Roll:       roll,
	}
	entry, matched := rangetable.Lookup(table.Entries, roll)
	if matched {
		result.EntryID = entry.ID
		result.EntryName = entry.Name
		result.Outcome = entry.Outcome

		switch entry.Outcome {
		case domain.OutcomeDead:
			member.CampaignStatus = rosterdomain.CampaignStatusDead
			member.UpdatedAt = s.clock().UTC()
		case domain.OutcomeScar:
			if err := member.AddScar(entry.Name, entry.Effect, session.GameNumber, s.clock, s.idGenerator); err != nil {
				return domain.Session{}, domain.TraumaResult{}, err
			}
		case domain.OutcomeRecovered:
			// Full recovery, nothing to apply.
		}
		if err := s.stores.Roster.PutMember(ctx, member); err != nil {
			return domain.Session{}, domain.TraumaResult{}, fmt.Errorf("persist member: %w", err)
		}
	}

	session.TraumaResults = append(session.TraumaResults, result)
	session.UpdatedAt = s.clock().UTC()
	if err := s.stores.PostGame.PutPostGameSession(ctx, session); err != nil {
		return domain.Session{}, domain.TraumaResult{}, fmt.Errorf("persist session: %w", err)
	}
	return session, result, nil
}

// UnresolvedPromotionRolls reports how many promotion rolls a member may
// still make this session.
func (s *Service) UnresolvedPromotionRolls(ctx context.Context, sessionID, memberID string) (int, error) {
	session, err := s.stores.PostGame.GetPostGameSession(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("load session: %w", err)
	}
	member, err := s.stores.Roster.GetMember(ctx, memberID)
	if err != nil {
		return 0, fmt.Errorf("load member: %w", err)
	}
	template, err := s.stores.Catalog.GetTemplate(ctx, member.TemplateID)
	if err != nil {
		return 0, fmt.Errorf("load template: %w", err)
	}
	return rosterdomain.UnresolvedPromotionRolls(
		member.PromotionDiceEarned,
		template.Promotion,
		member.PromotionDiceSpent,
		session.PromotionRollsLogged(memberID),
	), nil
}

// RollPromotion spends one unresolved promotion die: a d6 on the chosen
// skill table, appending the matched skill as an advancement. Unspent
// dice survive the session through the member's earned/spent counters.
func (s *Service) RollPromotion(ctx context.Context, sessionID, memberID, tableID string) (domain.Session, domain.PromotionResult, error) {
	session, err := s.stores.PostGame.GetPostGameSession(ctx, sessionID)
	if err != nil {
		return domain.Session{}, domain.PromotionResult{}, fmt.Errorf("load session: %w", err)
	}
	if session.Completed {
		return domain.Session{}, domain.PromotionResult{}, domain.ErrSessionCompleted
	}
	member, err := s.stores.Roster.GetMember(ctx, memberID)
	if err != nil {
		return domain.Session{}, domain.PromotionResult{}, fmt.Errorf("load member: %w", err)
	}
	switch member.CampaignStatus {
	case rosterdomain.CampaignStatusDead:
		return domain.Session{}, domain.PromotionResult{}, fmt.Errorf("%s: %w", memberID, rosterdomain.ErrMemberDead)
	case rosterdomain.CampaignStatusActive:
	default:
		return domain.Session{}, domain.PromotionResult{}, fmt.Errorf("%s: %w", memberID, rosterdomain.ErrMemberNotActive)
	}
	template, err := s.stores.Catalog.GetTemplate(ctx, member.TemplateID)
	if err != nil {
		return domain.Session{}, domain.PromotionResult{}, fmt.Errorf("load template: %w", err)
	}

	unresolved := rosterdomain.UnresolvedPromotionRolls(
		member.PromotionDiceEarned,
		template.Promotion,
		member.PromotionDiceSpent,
		session.PromotionRollsLogged(memberID),
	)
	if unresolved <= 0 {
		return domain.Session{}, domain.PromotionResult{}, fmt.Errorf("%w: %s", ErrNoPromotionDice, memberID)
	}

	table, err := s.stores.Tables.GetSkillTable(ctx, tableID)
	if err != nil {
		return domain.Session{}, domain.PromotionResult{}, fmt.Errorf("load skill table: %w", err)
	}

	roll := s.roller.D6()
	result := domain.PromotionResult{
		MemberID:   member.ID,
		MemberName: member.CustomName,
		TableID:    table.ID,
		TableName:  table.Name,
		Roll:       roll,
	}
	entry, matched := rangetable.Lookup(table.Entries, roll)
	if matched {
		result.EntryID = entry.ID
		result.SkillName = entry.Name
		if err := member.AddAdvancement(entry.Name, entry.Description, table.Name, session.GameNumber, s.clock, s.idGenerator); err != nil {
			return domain.Session{}, domain.PromotionResult{}, err
		}
	}
	member.PromotionDiceSpent++
	member.UpdatedAt = s.clock().UTC()
	if err := s.stores.Roster.PutMember(ctx, member); err != nil {
		return domain.Session{}, domain.PromotionResult{}, fmt.Errorf("persist member: %w", err)
	}

	session.PromotionResults = append(session.PromotionResults, result)
	session.UpdatedAt = s.clock().UTC()
	if err := s.stores.PostGame.PutPostGameSession(ctx, session); err != nil {
		return domain.Session{}, domain.PromotionResult{}, fmt.Errorf("persist session: %w", err)
	}
	return session, result, nil
}

// ReinforcementInput describes a new recruit.
type ReinforcementInput struct {
	TemplateID string
	CustomName string
}

// AddReinforcement recruits a new member from the warband's faction
// list. The living roster must stay within the campaign's field
// strength and the faction list's per-template cap; the listed cost is
// informational and is not deducted from the campaign counters. The
// mutation is applied immediately and is not part of the session
// journal.
func (s *Service) AddReinforcement(ctx context.Context, sessionID string, input ReinforcementInput) (rosterdomain.Member, error) {
	session, err := s.stores.PostGame.GetPostGameSession(ctx, sessionID)
	if err != nil {
		return rosterdomain.Member{}, fmt.Errorf("load session: %w", err)
	}
	if session.Completed {
		return rosterdomain.Member{}, domain.ErrSessionCompleted
	}
	campaign, err := s.stores.Campaign.GetCampaign(ctx, session.CampaignID)
	if err != nil {
		return rosterdomain.Member{}, fmt.Errorf("load campaign: %w", err)
	}
	warband, err := s.stores.Roster.GetWarband(ctx, campaign.WarbandID)
	if err != nil {
		return rosterdomain.Member{}, fmt.Errorf("load warband: %w", err)
	}
	members, err := s.stores.Roster.ListMembers(ctx, warband.ID)
	if err != nil {
		return rosterdomain.Member{}, fmt.Errorf("list members: %w", err)
	}

	living := 0
	sameTemplate := 0
	for _, member := range members {
		if member.CampaignStatus == rosterdomain.CampaignStatusDead {
			continue
		}
		living++
		if member.TemplateID == input.TemplateID {
			sameTemplate++
		}
	}
	if living >= campaign.FieldStrength {
		return rosterdomain.Member{}, fmt.Errorf("%w: %d models", ErrFieldStrengthReached, campaign.FieldStrength)
	}

	entry, err := s.stores.Catalog.GetFactionModelEntry(ctx, warband.FactionID, input.TemplateID)
	if err != nil {
		return rosterdomain.Member{}, fmt.Errorf("load faction entry: %w", err)
	}
	if entry.LimitMax > 0 && sameTemplate >= entry.LimitMax {
		return rosterdomain.Member{}, fmt.Errorf("%w: %s", ErrModelLimitReached, input.TemplateID)
	}

	member, err := rosterdomain.CreateMember(rosterdomain.CreateMemberInput{
		WarbandID:  warband.ID,
		TemplateID: input.TemplateID,
		CustomName: input.CustomName,
		Order:      len(members),
	}, s.clock, s.idGenerator)
	if err != nil {
		return rosterdomain.Member{}, err
	}

	if err := s.stores.Roster.PutMember(ctx, member); err != nil {
		return rosterdomain.Member{}, fmt.Errorf("persist member: %w", err)
	}
	return member, nil
}

// RollExploration rolls a d6 on the chosen tier's exploration table.
// Ducat and glory rewards are credited to the campaign immediately;
// equipment and special rewards are journaled as text only. Multiple
// rolls per session are allowed.
func (s *Service) RollExploration(ctx context.Context, sessionID string, tier domain.ExplorationTier) (domain.Session, domain.ExplorationResult, error) {
	session, err := s.stores.PostGame.GetPostGameSession(ctx, sessionID)
	if err != nil {
		return domain.Session{}, domain.ExplorationResult{}, fmt.Errorf("load session: %w", err)
	}
	if session.Completed {
		return domain.Session{}, domain.ExplorationResult{}, domain.ErrSessionCompleted
	}
	table, err := s.stores.Tables.GetExplorationTable(ctx, tier)
	if err != nil {
		return domain.Session{}, domain.ExplorationResult{}, fmt.Errorf("load exploration table: %w", err)
	}

	roll := s.roller.D6()
	result := domain.ExplorationResult{
		Tier: tier,
		Roll: roll,
	}
	entry, matched := rangetable.Lookup(table.Entries, roll)
	if matched {
		result.EntryID = entry.ID
		result.EntryName = entry.Name
		result.Summary = rewardSummary(entry.Reward)

		switch entry.Reward.Type {
		case domain.RewardDucats, domain.RewardGlory:
			campaign, err := s.stores.Campaign.GetCampaign(ctx, session.CampaignID)
			if err != nil {
				return domain.Session{}, domain.ExplorationResult{}, fmt.Errorf("load campaign: %w", err)
			}
			if entry.Reward.Type == domain.RewardDucats {
				err = campaign.AddDucats(entry.Reward.Value, s.clock)
			} else {
				err = campaign.AddGlory(entry.Reward.Value, s.clock)
			}
			if err != nil {
				return domain.Session{}, domain.ExplorationResult{}, err
			}
			if err := s.stores.Campaign.PutCampaign(ctx, campaign); err != nil {
				return domain.Session{}, domain.ExplorationResult{}, fmt.Errorf("persist campaign: %w", err)
			}
		}
	}

	session.ExplorationResults = append(session.ExplorationResults, result)
	session.UpdatedAt = s.clock().UTC()
	if err := s.stores.PostGame.PutPostGameSession(ctx, session); err != nil {
		return domain.Session{}, domain.ExplorationResult{}, fmt.Errorf("persist session: %w", err)
	}
	return session, result, nil
}

func rewardSummary(reward domain.Reward) string {
	switch reward.Type {
	case domain.RewardDucats:
		return fmt.Sprintf("%d ducats", reward.Value)
	case domain.RewardGlory:
		return fmt.Sprintf("%d glory", reward.Value)
	case domain.RewardEquipment:
		return fmt.Sprintf("equipment: %s", reward.EquipmentID)
	case domain.RewardSpecial:
		return reward.SpecialText
	default:
		return ""
	}
}

// ReassignEquipment moves one equipment item between living members of
// the warband during the quartermaster step.
func (s *Service) ReassignEquipment(ctx context.Context, sessionID, fromMemberID, toMemberID, equipmentID string) error {
	session, err := s.stores.PostGame.GetPostGameSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if session.Completed {
		return domain.ErrSessionCompleted
	}

	from, err := s.stores.Roster.GetMember(ctx, fromMemberID)
	if err != nil {
		return fmt.Errorf("load member: %w", err)
	}
	to, err := s.stores.Roster.GetMember(ctx, toMemberID)
	if err != nil {
		return fmt.Errorf("load member: %w", err)
	}
	if to.CampaignStatus == rosterdomain.CampaignStatusDead {
		return fmt.Errorf("%s: %w", toMemberID, rosterdomain.ErrMemberDead)
	}

	held := -1
	for i, itemID := range from.EquipmentIDs {
		if itemID == equipmentID {
			held = i
			break
		}
	}
	if held < 0 {
		return fmt.Errorf("%w: %s", ErrEquipmentNotHeld, equipmentID)
	}

	from.EquipmentIDs = append(from.EquipmentIDs[:held], from.EquipmentIDs[held+1:]...)
	from.UpdatedAt = s.clock().UTC()
	to.EquipmentIDs = append(to.EquipmentIDs, equipmentID)
	to.UpdatedAt = s.clock().UTC()

	if err := s.stores.Roster.PutMember(ctx, from); err != nil {
		return fmt.Errorf("persist member: %w", err)
	}
	if err := s.stores.Roster.PutMember(ctx, to); err != nil {
		return fmt.Errorf("persist member: %w", err)
	}
	return nil
}

// NavigateTo moves the session's active step.
func (s *Service) NavigateTo(ctx context.Context, sessionID string, step domain.Step) (domain.Session, error) {
	session, err := s.stores.PostGame.GetPostGameSession(ctx, sessionID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	if err := session.NavigateTo(step, s.clock); err != nil {
		return domain.Session{}, err
	}
	if err := s.stores.PostGame.PutPostGameSession(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("persist session: %w", err)
	}
	return session, nil
}

// CompleteStep marks a step done and advances to the next one.
func (s *Service) CompleteStep(ctx context.Context, sessionID string, step domain.Step) (domain.Session, error) {
	session, err := s.stores.PostGame.GetPostGameSession(ctx, sessionID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	if err := session.CompleteStep(step, s.clock); err != nil {
		return domain.Session{}, err
	}
	if err := s.stores.PostGame.PutPostGameSession(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("persist session: %w", err)
	}
	return session, nil
}

// Finish closes the sequence once every step is complete: the battle is
// marked resolved on the campaign ledger, and each living member banks
// this battle's promotion dice at its template's per-battle rate.
func (s *Service) Finish(ctx context.Context, sessionID string) (domain.Session, error) {
	session, err := s.stores.PostGame.GetPostGameSession(ctx, sessionID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	if session.Completed {
		return domain.Session{}, domain.ErrSessionCompleted
	}
	for _, step := range domain.Steps {
		if !session.StepCompleted(step) {
			return domain.Session{}, fmt.Errorf("%w: %s", ErrStepsIncomplete, step)
		}
	}

	campaign, err := s.stores.Campaign.GetCampaign(ctx, session.CampaignID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load campaign: %w", err)
	}

	if err := s.bankPromotionDice(ctx, campaign.WarbandID); err != nil {
		return domain.Session{}, err
	}

	campaign.MarkPostGameCompleted(session.GameNumber, s.clock)
	if err := s.stores.Campaign.PutCampaign(ctx, campaign); err != nil {
		return domain.Session{}, fmt.Errorf("persist campaign: %w", err)
	}

	session.Completed = true
	session.UpdatedAt = s.clock().UTC()
	if err := s.stores.PostGame.PutPostGameSession(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("persist session: %w", err)
	}
	return session, nil
}

func (s *Service) bankPromotionDice(ctx context.Context, warbandID string) error {
	members, err := s.stores.Roster.ListMembers(ctx, warbandID)
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}
	for _, member := range members {
		if member.CampaignStatus == rosterdomain.CampaignStatusDead {
			continue
		}
		template, err := s.stores.Catalog.GetTemplate(ctx, member.TemplateID)
		if err != nil {
			return fmt.Errorf("load template: %w", err)
		}
		if template.Promotion == 0 {
			continue
		}
		member.PromotionDiceEarned += template.Promotion
		member.UpdatedAt = s.clock().UTC()
		if err := s.stores.Roster.PutMember(ctx, member); err != nil {
			return fmt.Errorf("persist member: %w", err)
		}
	}
	return nil
}

// Abandon discards the session's bookkeeping. Effects already applied to
// the roster and campaign remain; a fresh session may be started for the
// same battle later.
func (s *Service) Abandon(ctx context.Context, sessionID string) error {
	if err := s.stores.PostGame.DeletePostGameSession(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
