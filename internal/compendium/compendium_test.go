package compendium

import (
	"context"
	"testing"

	"github.com/trench-tools/trenchmate/internal/postgame/domain"
	"github.com/trench-tools/trenchmate/internal/testkit/storefakes"
)

func TestLoadValidatesEmbeddedData(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.TraumaTables) != 2 {
		t.Fatalf("expected trauma tables for both model classes, got %d", len(c.TraumaTables))
	}
	if len(c.SkillTables) == 0 {
		t.Fatalf("expected skill tables")
	}
	if len(c.ExplorationTables) != 3 {
		t.Fatalf("expected one exploration table per tier, got %d", len(c.ExplorationTables))
	}

	classes := make(map[domain.ModelClass]domain.DiceType)
	for _, table := range c.TraumaTables {
		classes[table.ModelClass] = table.DiceType
	}
	if classes[domain.ClassElite] != domain.DiceD66 {
		t.Fatalf("expected elite trauma on d66, got %s", classes[domain.ClassElite])
	}
	if classes[domain.ClassNonElite] != domain.DiceD6 {
		t.Fatalf("expected non-elite trauma on d6, got %s", classes[domain.ClassNonElite])
	}
}

func TestSeedFillsTableStore(t *testing.T) {
	store := storefakes.NewTableStore()
	if err := Seed(context.Background(), store); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	if _, err := store.GetTraumaTable(context.Background(), domain.ClassElite); err != nil {
		t.Fatalf("elite trauma table not seeded: %v", err)
	}
	for _, tier := range []domain.ExplorationTier{domain.TierCommon, domain.TierRare, domain.TierLegendary} {
		if _, err := store.GetExplorationTable(context.Background(), tier); err != nil {
			t.Fatalf("exploration tier %s not seeded: %v", tier, err)
		}
	}
	tables, err := store.ListSkillTables(context.Background())
	if err != nil {
		t.Fatalf("ListSkillTables: %v", err)
	}
	if len(tables) != 3 {
		t.Fatalf("expected 3 skill tables, got %d", len(tables))
	}

	// Reseeding overwrites in place rather than duplicating.
	if err := Seed(context.Background(), store); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	tables, err = store.ListSkillTables(context.Background())
	if err != nil {
		t.Fatalf("ListSkillTables: %v", err)
	}
	if len(tables) != 3 {
		t.Fatalf("expected reseed to keep 3 skill tables, got %d", len(tables))
	}
}
