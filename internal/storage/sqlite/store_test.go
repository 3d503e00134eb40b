package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	campaigndomain "github.com/trench-tools/trenchmate/internal/campaign/domain"
	gamedomain "github.com/trench-tools/trenchmate/internal/gamesession/domain"
	postgamedomain "github.com/trench-tools/trenchmate/internal/postgame/domain"
	rosterdomain "github.com/trench-tools/trenchmate/internal/roster/domain"
	"github.com/trench-tools/trenchmate/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "trenchmate.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return store
}

func testTime(offset int) time.Time {
	return time.Unix(1700000000+int64(offset), 0).UTC()
}

func TestCampaignRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	campaign := campaigndomain.Campaign{
		ID:             "campaign-1",
		WarbandID:      "warband-1",
		Patron:         "The Principality",
		CurrentGame:    2,
		ThresholdValue: 800,
		FieldStrength:  11,
		GloryPoints:    3,
		DucatStash:     120,
		Games: []campaigndomain.CampaignGame{
			{GameNumber: 1, Result: campaigndomain.GameResultWin, OpponentName: "Heretics", CompletedAt: testTime(0)},
		},
		Notes:     "opening skirmish",
		CreatedAt: testTime(0),
		UpdatedAt: testTime(1),
	}
	if err := store.PutCampaign(ctx, campaign); err != nil {
		t.Fatalf("PutCampaign: %v", err)
	}

	got, err := store.GetCampaign(ctx, "campaign-1")
	if err != nil {
		t.Fatalf("GetCampaign: %v", err)
	}
	if got.Patron != campaign.Patron || got.DucatStash != 120 {
		t.Fatalf("unexpected campaign: %+v", got)
	}
	if len(got.Games) != 1 || got.Games[0].Result != campaigndomain.GameResultWin {
		t.Fatalf("games did not round-trip: %+v", got.Games)
	}
	if !got.UpdatedAt.Equal(testTime(1)) {
		t.Fatalf("timestamp did not round-trip: %v", got.UpdatedAt)
	}

	if _, err := store.GetCampaign(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	campaigns, err := store.ListCampaigns(ctx)
	if err != nil {
		t.Fatalf("ListCampaigns: %v", err)
	}
	if len(campaigns) != 1 {
		t.Fatalf("expected 1 campaign, got %d", len(campaigns))
	}

	if err := store.DeleteCampaign(ctx, "campaign-1"); err != nil {
		t.Fatalf("DeleteCampaign: %v", err)
	}
	if err := store.DeleteCampaign(ctx, "campaign-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestRosterRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.PutWarband(ctx, rosterdomain.Warband{ID: "warband-1", Name: "Procession", FactionID: "court"}); err != nil {
		t.Fatalf("PutWarband: %v", err)
	}
	warband, err := store.GetWarband(ctx, "warband-1")
	if err != nil {
		t.Fatalf("GetWarband: %v", err)
	}
	if warband.FactionID != "court" {
		t.Fatalf("unexpected warband: %+v", warband)
	}

	second := rosterdomain.Member{
		ID: "member-2", WarbandID: "warband-1", TemplateID: "template-a",
		CampaignStatus: rosterdomain.CampaignStatusActive, Order: 1,
		CreatedAt: testTime(0), UpdatedAt: testTime(0),
	}
	first := rosterdomain.Member{
		ID: "member-1", WarbandID: "warband-1", TemplateID: "template-a",
		CustomName:   "Yusuf",
		EquipmentIDs: []string{"equip-sword", "equip-shield"},
		Scars: []rosterdomain.Scar{
			{ID: "scar-1", Name: "Lost Eye", Effect: "-1 ranged", GameNumber: 1},
		},
		Advancements: []rosterdomain.Advancement{
			{ID: "adv-1", Name: "Tough", Table: "Combat", GameNumber: 1},
		},
		PromotionDiceEarned: 2,
		PromotionDiceSpent:  1,
		CampaignStatus:      rosterdomain.CampaignStatusRecovering,
		CreatedAt:           testTime(0),
		UpdatedAt:           testTime(2),
	}
	for _, member := range []rosterdomain.Member{second, first} {
		if err := store.PutMember(ctx, member); err != nil {
			t.Fatalf("PutMember %s: %v", member.ID, err)
		}
	}

	got, err := store.GetMember(ctx, "member-1")
	if err != nil {
		t.Fatalf("GetMember: %v", err)
	}
	if got.CampaignStatus != rosterdomain.CampaignStatusRecovering {
		t.Fatalf("status did not round-trip: %v", got.CampaignStatus)
	}
	if len(got.EquipmentIDs) != 2 || len(got.Scars) != 1 || len(got.Advancements) != 1 {
		t.Fatalf("nested slices did not round-trip: %+v", got)
	}
	if got.PromotionDiceEarned != 2 || got.PromotionDiceSpent != 1 {
		t.Fatalf("promotion counters did not round-trip: %+v", got)
	}

	members, err := store.ListMembers(ctx, "warband-1")
	if err != nil {
		t.Fatalf("ListMembers: %v", err)
	}
	if len(members) != 2 || members[0].ID != "member-1" || members[1].ID != "member-2" {
		t.Fatalf("expected roster order, got %v", members)
	}
}

func TestCatalogRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	template := rosterdomain.ModelTemplate{
		ID: "template-champion", Name: "Champion", FactionID: "court",
		Tags: []string{"elite", "tough"}, Promotion: 2,
	}
	if err := store.PutTemplate(ctx, template); err != nil {
		t.Fatalf("PutTemplate: %v", err)
	}
	got, err := store.GetTemplate(ctx, "template-champion")
	if err != nil {
		t.Fatalf("GetTemplate: %v", err)
	}
	if !got.IsElite() || got.Promotion != 2 {
		t.Fatalf("template did not round-trip: %+v", got)
	}

	templates, err := store.ListTemplates(ctx, "court")
	if err != nil {
		t.Fatalf("ListTemplates: %v", err)
	}
	if len(templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(templates))
	}

	entry := rosterdomain.FactionModelEntry{
		TemplateID: "template-champion", Cost: 90,
		CostType: rosterdomain.CostGlory, LimitMax: 1,
	}
	if err := store.PutFactionModelEntry(ctx, "court", entry); err != nil {
		t.Fatalf("PutFactionModelEntry: %v", err)
	}
	gotEntry, err := store.GetFactionModelEntry(ctx, "court", "template-champion")
	if err != nil {
		t.Fatalf("GetFactionModelEntry: %v", err)
	}
	if gotEntry.CostType != rosterdomain.CostGlory || gotEntry.LimitMax != 1 {
		t.Fatalf("entry did not round-trip: %+v", gotEntry)
	}

	if err := store.PutFactionEquipmentEntry(ctx, "court", rosterdomain.FactionEquipmentEntry{
		EquipmentID: "equip-sword", Cost: 10, CostType: rosterdomain.CostDucats,
	}); err != nil {
		t.Fatalf("PutFactionEquipmentEntry: %v", err)
	}
	equipment, err := store.ListFactionEquipment(ctx, "court")
	if err != nil {
		t.Fatalf("ListFactionEquipment: %v", err)
	}
	if len(equipment) != 1 || equipment[0].EquipmentID != "equip-sword" {
		t.Fatalf("equipment did not round-trip: %v", equipment)
	}
}

func TestTablesRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	trauma := postgamedomain.TraumaTable{
		ID: "trauma-elite", Name: "Elite Trauma",
		DiceType: postgamedomain.DiceD66, ModelClass: postgamedomain.ClassElite,
		Entries: []postgamedomain.TraumaEntry{
			{ID: "te-dead", RollMin: 11, RollMax: 16, Name: "Dead", Outcome: postgamedomain.OutcomeDead},
		},
	}
	if err := store.PutTraumaTable(ctx, trauma); err != nil {
		t.Fatalf("PutTraumaTable: %v", err)
	}
	gotTrauma, err := store.GetTraumaTable(ctx, postgamedomain.ClassElite)
	if err != nil {
		t.Fatalf("GetTraumaTable: %v", err)
	}
	if gotTrauma.DiceType != postgamedomain.DiceD66 || len(gotTrauma.Entries) != 1 {
		t.Fatalf("trauma table did not round-trip: %+v", gotTrauma)
	}

	skill := postgamedomain.SkillTable{
		ID: "skill-combat", Name: "Combat",
		Entries: []postgamedomain.SkillEntry{
			{ID: "s-strong", RollMin: 1, RollMax: 6, Name: "Strong"},
		},
	}
	if err := store.PutSkillTable(ctx, skill); err != nil {
		t.Fatalf("PutSkillTable: %v", err)
	}
	skills, err := store.ListSkillTables(ctx)
	if err != nil {
		t.Fatalf("ListSkillTables: %v", err)
	}
	if len(skills) != 1 || skills[0].ID != "skill-combat" {
		t.Fatalf("skill tables did not round-trip: %v", skills)
	}

	exploration := postgamedomain.ExplorationTable{
		ID: "explore-rare", Name: "Rare Finds", Tier: postgamedomain.TierRare,
		Entries: []postgamedomain.ExplorationEntry{
			{ID: "e-glory", RollMin: 1, RollMax: 6, Name: "Shrine", Reward: postgamedomain.Reward{Type: postgamedomain.RewardGlory, Value: 2}},
		},
	}
	if err := store.PutExplorationTable(ctx, exploration); err != nil {
		t.Fatalf("PutExplorationTable: %v", err)
	}
	gotExploration, err := store.GetExplorationTable(ctx, postgamedomain.TierRare)
	if err != nil {
		t.Fatalf("GetExplorationTable: %v", err)
	}
	if gotExploration.Entries[0].Reward.Type != postgamedomain.RewardGlory {
		t.Fatalf("exploration table did not round-trip: %+v", gotExploration)
	}

	if _, err := store.GetTraumaTable(ctx, postgamedomain.ClassNonElite); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostGameSessionRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	session := postgamedomain.Session{
		ID:                "session-1",
		CampaignID:        "campaign-1",
		GameNumber:        3,
		CurrentStep:       postgamedomain.StepPromotions,
		CompletedSteps:    []postgamedomain.Step{postgamedomain.StepTrauma},
		CasualtySelection: []string{"member-1"},
		TraumaResults: []postgamedomain.TraumaResult{
			{MemberID: "member-1", Roll: 3, EntryID: "t-scar", Outcome: postgamedomain.OutcomeScar},
		},
		CreatedAt: testTime(0),
		UpdatedAt: testTime(1),
	}
	if err := store.PutPostGameSession(ctx, session); err != nil {
		t.Fatalf("PutPostGameSession: %v", err)
	}

	open, err := store.GetOpenPostGameSession(ctx, "campaign-1", 3)
	if err != nil {
		t.Fatalf("GetOpenPostGameSession: %v", err)
	}
	if open.ID != "session-1" || open.CurrentStep != postgamedomain.StepPromotions {
		t.Fatalf("unexpected open session: %+v", open)
	}
	if len(open.TraumaResults) != 1 || open.TraumaResults[0].Outcome != postgamedomain.OutcomeScar {
		t.Fatalf("results did not round-trip: %+v", open.TraumaResults)
	}

	session.Completed = true
	if err := store.PutPostGameSession(ctx, session); err != nil {
		t.Fatalf("PutPostGameSession completed: %v", err)
	}
	if _, err := store.GetOpenPostGameSession(ctx, "campaign-1", 3); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected no open session after completion, got %v", err)
	}

	if err := store.DeletePostGameSession(ctx, "session-1"); err != nil {
		t.Fatalf("DeletePostGameSession: %v", err)
	}
}

func TestGameSessionActiveConstraint(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := gamedomain.Session{
		ID: "game-1", WarbandID: "warband-1", Turn: 1,
		Models: []gamedomain.ModelState{
			{ModelID: "member-1", Status: gamedomain.ModelActive, BloodMarkers: 2},
		},
		Status:    gamedomain.StatusActive,
		CreatedAt: testTime(0), UpdatedAt: testTime(0),
	}
	if err := store.PutGameSession(ctx, first); err != nil {
		t.Fatalf("PutGameSession: %v", err)
	}

	second := first
	second.ID = "game-2"
	if err := store.PutGameSession(ctx, second); !errors.Is(err, storage.ErrActiveSessionExists) {
		t.Fatalf("expected ErrActiveSessionExists, got %v", err)
	}

	// Updating the active session itself is allowed.
	first.Turn = 2
	first.UpdatedAt = testTime(5)
	if err := store.PutGameSession(ctx, first); err != nil {
		t.Fatalf("update active session: %v", err)
	}

	active, err := store.GetActiveGameSession(ctx)
	if err != nil {
		t.Fatalf("GetActiveGameSession: %v", err)
	}
	if active.ID != "game-1" || active.Turn != 2 {
		t.Fatalf("unexpected active session: %+v", active)
	}
	if active.Models[0].BloodMarkers != 2 {
		t.Fatalf("models did not round-trip: %+v", active.Models)
	}

	// Completing the first session frees the active slot.
	first.Status = gamedomain.StatusCompleted
	if err := store.PutGameSession(ctx, first); err != nil {
		t.Fatalf("complete session: %v", err)
	}
	if err := store.PutGameSession(ctx, second); err != nil {
		t.Fatalf("PutGameSession after completion: %v", err)
	}

	sessions, err := store.ListGameSessions(ctx, "warband-1")
	if err != nil {
		t.Fatalf("ListGameSessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
}
