package domain

import (
	"errors"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
}

func sequenceIDs(ids ...string) func() (string, error) {
	index := 0
	return func() (string, error) {
		if index >= len(ids) {
			return "", errors.New("id sequence exhausted")
		}
		generated := ids[index]
		index++
		return generated, nil
	}
}

func TestCreateMemberDefaults(t *testing.T) {
	member, err := CreateMember(CreateMemberInput{WarbandID: "warband-1", TemplateID: "tpl-yeoman"}, fixedClock, sequenceIDs("member-1"))
	if err != nil {
		t.Fatalf("CreateMember returned error: %v", err)
	}
	if member.CampaignStatus != CampaignStatusActive {
		t.Fatalf("expected new member active, got %v", member.CampaignStatus)
	}
	if member.PromotionDiceEarned != 0 || member.PromotionDiceSpent != 0 {
		t.Fatalf("expected zeroed promotion counters")
	}
}

func TestCreateMemberRequiresTemplate(t *testing.T) {
	_, err := CreateMember(CreateMemberInput{WarbandID: "warband-1"}, fixedClock, sequenceIDs("member-1"))
	if !errors.Is(err, ErrEmptyTemplateID) {
		t.Fatalf("expected ErrEmptyTemplateID, got %v", err)
	}
}

func TestAddScarAppends(t *testing.T) {
	member, err := CreateMember(CreateMemberInput{WarbandID: "warband-1", TemplateID: "tpl-yeoman"}, fixedClock, sequenceIDs("member-1"))
	if err != nil {
		t.Fatalf("CreateMember returned error: %v", err)
	}

	if err := member.AddScar("Shell Shock", "-1 to ranged attacks", 2, fixedClock, sequenceIDs("scar-1")); err != nil {
		t.Fatalf("AddScar returned error: %v", err)
	}
	if err := member.AddScar("Lame Leg", "-1 movement", 3, fixedClock, sequenceIDs("scar-2")); err != nil {
		t.Fatalf("AddScar returned error: %v", err)
	}
	if len(member.Scars) != 2 {
		t.Fatalf("expected 2 scars, got %d", len(member.Scars))
	}
	if member.Scars[0].Name != "Shell Shock" || member.Scars[1].GameNumber != 3 {
		t.Fatalf("scars appended out of order: %+v", member.Scars)
	}
}

func TestHasTough(t *testing.T) {
	member, err := CreateMember(CreateMemberInput{WarbandID: "warband-1", TemplateID: "tpl-brute"}, fixedClock, sequenceIDs("member-1"))
	if err != nil {
		t.Fatalf("CreateMember returned error: %v", err)
	}

	if member.HasTough(nil) {
		t.Fatalf("expected no tough without tag or advancement")
	}
	if !member.HasTough([]string{"ELITE", "Tough"}) {
		t.Fatalf("expected tough from template tag")
	}

	if err := member.AddAdvancement("Tough", "Shrug off one out-of-action result", "Strength", 4, fixedClock, sequenceIDs("adv-1")); err != nil {
		t.Fatalf("AddAdvancement returned error: %v", err)
	}
	if !member.HasTough(nil) {
		t.Fatalf("expected tough from advancement")
	}
}

func TestParseCampaignStatus(t *testing.T) {
	if got := ParseCampaignStatus(""); got != CampaignStatusActive {
		t.Fatalf("expected empty status to default active, got %v", got)
	}
	if got := ParseCampaignStatus("Dead"); got != CampaignStatusDead {
		t.Fatalf("expected dead, got %v", got)
	}
	if got := ParseCampaignStatus("bogus"); got != CampaignStatusUnspecified {
		t.Fatalf("expected unspecified, got %v", got)
	}
}

func TestIsElite(t *testing.T) {
	elite := ModelTemplate{Tags: []string{"Elite", "Infantry"}}
	if !elite.IsElite() {
		t.Fatalf("expected elite template")
	}
	line := ModelTemplate{Tags: []string{"Infantry"}}
	if line.IsElite() {
		t.Fatalf("expected non-elite template")
	}
}
